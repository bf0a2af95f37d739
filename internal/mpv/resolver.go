package mpv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ytget/ytdlp/v2"
)

// Resolver turns a watch URL into a direct media URL mpv can open
type Resolver interface {
	Resolve(ctx context.Context, watchURL string) (string, error)
}

// ResolverFunc adapts a function to Resolver
type ResolverFunc func(ctx context.Context, watchURL string) (string, error)

// Resolve calls f
func (f ResolverFunc) Resolve(ctx context.Context, watchURL string) (string, error) {
	return f(ctx, watchURL)
}

var errEmptyStream = errors.New("resolver returned an empty stream url")

// StreamResolver resolves watch URLs with the ytdlp extractor
type StreamResolver struct {
	downloader *ytdlp.Downloader
	logger     *slog.Logger
}

// NewStreamResolver creates a resolver. An empty format keeps the
// extractor's default selection.
func NewStreamResolver(format, ext string, logger *slog.Logger) *StreamResolver {
	if logger == nil {
		logger = slog.Default()
	}
	d := ytdlp.New()
	if format != "" || ext != "" {
		d = d.WithFormat(format, ext)
	}
	return &StreamResolver{downloader: d, logger: logger}
}

// Resolve fetches the player response and returns the selected stream URL
func (r *StreamResolver) Resolve(ctx context.Context, watchURL string) (string, error) {
	stream, info, err := r.downloader.ResolveURL(ctx, watchURL)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", watchURL, err)
	}
	if strings.TrimSpace(stream) == "" {
		return "", errEmptyStream
	}
	if info != nil {
		r.logger.Debug("stream resolved", "video_id", info.ID, "title", info.Title, "formats", len(info.Formats))
	}
	return stream, nil
}

// watchHosts are the page hosts the extractor understands
var watchHosts = []string{"youtube.com", "youtu.be"}

// isWatchPage reports whether target is a video page rather than a local
// file or a direct stream
func isWatchPage(target string) bool {
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	for _, h := range watchHosts {
		if host == h {
			return true
		}
	}
	return false
}
