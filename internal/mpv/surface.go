package mpv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ytget/eizo/internal/model"
	"github.com/ytget/eizo/internal/playback"
)

const (
	// DefaultBinary is the mpv executable looked up in PATH
	DefaultBinary = "mpv"
	// DefaultURLTemplate turns a source id into a playable URL
	DefaultURLTemplate = "https://www.youtube.com/watch?v=%s"
	// DefaultCommandTimeout bounds one IPC round trip
	DefaultCommandTimeout = 2 * time.Second
	// DefaultLoadTimeout bounds the wait for a loaded file
	DefaultLoadTimeout = 15 * time.Second
	// DefaultStartupTimeout bounds the wait for the IPC socket
	DefaultStartupTimeout = time.Second
)

var errSocketTimeout = errors.New("mpv socket not created after timeout")

// Options configures spawned mpv processes
type Options struct {
	Binary      string
	SocketDir   string
	URLTemplate string
	ExtraArgs   []string
	// Resolver, when set, turns watch pages into direct stream URLs
	// before they reach mpv
	Resolver       Resolver
	CommandTimeout time.Duration
	LoadTimeout    time.Duration
	StartupTimeout time.Duration
}

func (o Options) withDefaults() Options {
	if o.Binary == "" {
		o.Binary = DefaultBinary
	}
	if o.SocketDir == "" {
		o.SocketDir = os.TempDir()
	}
	if o.URLTemplate == "" {
		o.URLTemplate = DefaultURLTemplate
	}
	if o.CommandTimeout <= 0 {
		o.CommandTimeout = DefaultCommandTimeout
	}
	if o.LoadTimeout <= 0 {
		o.LoadTimeout = DefaultLoadTimeout
	}
	if o.StartupTimeout <= 0 {
		o.StartupTimeout = DefaultStartupTimeout
	}
	return o
}

// Available reports whether the mpv binary can be found
func Available(binary string) bool {
	if binary == "" {
		binary = DefaultBinary
	}
	_, err := exec.LookPath(binary)
	return err == nil
}

// NewFactory returns a factory spawning one mpv process per surface
func NewFactory(opts Options, logger *slog.Logger) playback.SurfaceFactory {
	opts = opts.withDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return func(id string) (playback.Surface, error) {
		s := newSurface(socketPath(opts.SocketDir, id), opts, logger)
		if err := s.start(); err != nil {
			return nil, err
		}
		return s, nil
	}
}

// Surface is a playback surface driving a single mpv process
type Surface struct {
	opts       Options
	socketPath string
	logger     *slog.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	loaded bool
	closed bool
}

var _ playback.Surface = (*Surface)(nil)

func newSurface(path string, opts Options, logger *slog.Logger) *Surface {
	return &Surface{
		opts:       opts,
		socketPath: path,
		logger:     logger.With("socket", path),
	}
}

func socketPath(dir, id string) string {
	if len(id) > 12 {
		id = id[len(id)-12:]
	}
	return filepath.Join(dir, fmt.Sprintf("eizo-mpv-%d-%s.sock", os.Getpid(), id))
}

// start spawns mpv in idle mode and waits for its socket
func (s *Surface) start() error {
	_ = os.Remove(s.socketPath)

	args := []string{
		"--idle=yes",
		"--force-window=yes",
		"--keep-open=yes",
		"--no-terminal",
		"--really-quiet",
		"--title=eizo",
		fmt.Sprintf("--input-ipc-server=%s", s.socketPath),
	}
	args = append(args, s.opts.ExtraArgs...)

	cmd := exec.Command(s.opts.Binary, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start mpv: %w", err)
	}

	if err := waitForSocket(s.socketPath, s.opts.StartupTimeout); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return err
	}

	s.mu.Lock()
	s.cmd = cmd
	s.mu.Unlock()

	s.logger.Debug("mpv started", "pid", cmd.Process.Pid)
	return nil
}

func waitForSocket(path string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		if _, err := os.Stat(path); err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return errSocketTimeout
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (s *Surface) send(args ...interface{}) (*response, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, playback.ErrSurfaceClosed
	}
	return send(s.socketPath, s.opts.CommandTimeout, args...)
}

// URL maps a source id to what mpv should open. Paths and URLs pass through.
func (s *Surface) URL(sourceID string) string {
	if strings.Contains(sourceID, "://") || strings.HasPrefix(sourceID, "/") {
		return sourceID
	}
	return fmt.Sprintf(s.opts.URLTemplate, sourceID)
}

// resolve maps a watch page to its stream URL when a resolver is configured
func (s *Surface) resolve(ctx context.Context, target string) (string, error) {
	if s.opts.Resolver == nil || !isWatchPage(target) {
		return target, nil
	}
	stream, err := s.opts.Resolver.Resolve(ctx, target)
	if err != nil {
		return "", err
	}
	s.logger.Debug("resolved stream", "page", target)
	return stream, nil
}

// Load opens sourceID at start and waits until mpv reports a position
func (s *Surface) Load(ctx context.Context, sourceID string, start float64) error {
	if sourceID == "" {
		return errors.New("empty source id")
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.LoadTimeout)
	defer cancel()

	target, err := s.resolve(ctx, s.URL(sourceID))
	if err != nil {
		return err
	}

	if _, err := s.send("set_property", "start", formatSeconds(start)); err != nil {
		return fmt.Errorf("failed to set start: %w", err)
	}
	if _, err := s.send("loadfile", target, "replace"); err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		if _, err := s.position(); err == nil {
			s.mu.Lock()
			s.loaded = true
			s.mu.Unlock()
			return nil
		} else if !errors.Is(err, ErrPropertyUnavailable) {
			return err
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for %s: %w", sourceID, ctx.Err())
		case <-ticker.C:
		}
	}
}

// Seek jumps to an absolute position
func (s *Surface) Seek(seconds float64) error {
	if _, err := s.send("seek", seconds, "absolute"); err != nil {
		return fmt.Errorf("failed to seek: %w", err)
	}
	return nil
}

// SetStyle maps an aspect mode to mpv's panscan crop
func (s *Surface) SetStyle(mode string) error {
	if _, err := s.send("set_property", "panscan", panscan(model.ParseAspectMode(mode))); err != nil {
		return fmt.Errorf("failed to set style: %w", err)
	}
	return nil
}

// SetPaused pauses or resumes playback
func (s *Surface) SetPaused(paused bool) error {
	if _, err := s.send("set_property", "pause", paused); err != nil {
		return fmt.Errorf("failed to set pause: %w", err)
	}
	return nil
}

// CurrentTime returns mpv's time-pos
func (s *Surface) CurrentTime() (float64, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()
	if !loaded {
		return 0, playback.ErrNotLoaded
	}

	pos, err := s.position()
	if errors.Is(err, ErrPropertyUnavailable) {
		return 0, playback.ErrNotLoaded
	}
	return pos, err
}

func (s *Surface) position() (float64, error) {
	resp, err := s.send("get_property", "time-pos")
	if err != nil {
		return 0, err
	}
	pos, ok := resp.Data.(float64)
	if !ok {
		return 0, ErrPropertyUnavailable
	}
	return pos, nil
}

// Close quits mpv, killing it if it does not exit promptly
func (s *Surface) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	cmd := s.cmd
	s.mu.Unlock()

	// quit must go out before the surface is marked closed
	_, _ = send(s.socketPath, s.opts.CommandTimeout, "quit")

	s.mu.Lock()
	s.closed = true
	s.loaded = false
	s.cmd = nil
	s.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		done := make(chan error, 1)
		go func() {
			done <- cmd.Wait()
		}()

		select {
		case <-done:
		case <-time.After(500 * time.Millisecond):
			s.logger.Warn("force killing mpv", "pid", cmd.Process.Pid)
			if err := cmd.Process.Kill(); err != nil {
				s.logger.Error("failed to kill mpv", "error", err)
			}
			<-done
		}
	}

	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove socket: %w", err)
	}
	return nil
}

// panscan returns the crop amount for mode: 1 fills the window, 0 letterboxes
func panscan(mode model.AspectMode) float64 {
	switch mode {
	case model.AspectFullBleed:
		return 1.0
	case model.AspectOriginal:
		return 0.0
	default:
		return 0.5
	}
}

func formatSeconds(t float64) string {
	return strconv.FormatFloat(t, 'f', 3, 64)
}
