package playback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ytget/eizo/internal/logging"
	"github.com/ytget/eizo/internal/model"
)

type commandKind int

const (
	cmdLoad commandKind = iota
	cmdStyle
	cmdPause
	cmdRewind
)

type command struct {
	kind   commandKind
	aspect model.AspectMode
	paused bool
}

// runner owns one surface for the lifetime of a visible slot. Only the
// runner goroutine touches the surface.
type runner struct {
	handle  Handle
	clip    model.Clip
	factory SurfaceFactory
	cfg     Config
	logger  *slog.Logger

	cmds chan command
	out  chan<- Event

	surface Surface
	loaded  bool
	aspect  model.AspectMode
	paused  bool
}

func newRunner(h Handle, clip model.Clip, factory SurfaceFactory, cfg Config, out chan<- Event, logger *slog.Logger) *runner {
	return &runner{
		handle:  h,
		clip:    clip,
		factory: factory,
		cfg:     cfg,
		logger:  logging.WithSourceID(logger, clip.SourceID).With("handle", string(h)),
		cmds:    make(chan command, cfg.CommandBuffer),
		out:     out,
	}
}

// enqueue queues a command without blocking the caller
func (r *runner) enqueue(cmd command) bool {
	select {
	case r.cmds <- cmd:
		return true
	default:
		r.logger.Warn("command queue full, dropping command", "kind", int(cmd.kind))
		return false
	}
}

// run serialises commands and polls until ctx is cancelled
func (r *runner) run(ctx context.Context) {
	defer r.close()

	r.load(ctx)

	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-r.cmds:
			r.handleCommand(ctx, cmd)
		case <-ticker.C:
			r.poll(ctx)
		}
	}
}

func (r *runner) handleCommand(ctx context.Context, cmd command) {
	switch cmd.kind {
	case cmdLoad:
		if r.loaded {
			return
		}
		r.load(ctx)
	case cmdStyle:
		r.aspect = cmd.aspect
		if r.loaded {
			r.applyStyle()
		}
	case cmdPause:
		r.paused = cmd.paused
		if r.loaded {
			r.applyPause()
		}
	case cmdRewind:
		if !r.loaded {
			return
		}
		if err := r.surface.Seek(r.clip.Start); err != nil {
			r.logger.Warn("rewind failed", "error", err)
			return
		}
		r.emitTime(ctx, r.clip.Start)
	}
}

// load issues the load command with bounded retry and reports the outcome
func (r *runner) load(ctx context.Context) {
	if r.loaded {
		return
	}
	r.emitStatus(ctx, model.SurfaceLoading, nil)

	err := r.loadWithRetry(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.Error("surface load failed", "error", err)
		r.emitStatus(ctx, model.SurfaceFailed, err)
		return
	}

	r.loaded = true
	if r.aspect != model.AspectSquare {
		r.applyStyle()
	}
	if r.paused {
		r.applyPause()
	}
	r.emitStatus(ctx, model.SurfaceReady, nil)
}

// loadWithRetry attempts the load with a fixed backoff between attempts
func (r *runner) loadWithRetry(ctx context.Context) error {
	var lastErr error

	for attempt := 0; attempt < r.cfg.MaxLoadAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(r.cfg.RetryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}

			r.logger.Info("retrying load", "attempt", attempt+1)
		}

		if r.surface == nil {
			s, err := r.factory(string(r.handle))
			if err != nil {
				lastErr = fmt.Errorf("create surface: %w", err)
				r.logger.Warn("surface creation failed", "attempt", attempt+1, "error", err)
				continue
			}
			r.surface = s
		}

		err := r.surface.Load(ctx, r.clip.SourceID, r.clip.Start)
		if err == nil {
			return nil
		}

		lastErr = err
		r.logger.Warn("load attempt failed", "attempt", attempt+1, "error", err)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return lastErr
}

// poll samples the surface time. Any time at or past the loop end is
// answered with a seek to the loop start before the next poll, and the
// event reports the post-seek time.
func (r *runner) poll(ctx context.Context) {
	if !r.loaded {
		return
	}

	t, err := r.surface.CurrentTime()
	if err != nil {
		if !errors.Is(err, ErrNotLoaded) {
			r.logger.Debug("time query failed", "error", err)
		}
		return
	}

	if t >= r.clip.End {
		if err := r.surface.Seek(r.clip.Start); err != nil {
			r.logger.Warn("loop seek failed", "error", err)
			return
		}
		t = r.clip.Start
	}

	r.emitTime(ctx, t)
}

func (r *runner) applyStyle() {
	if err := r.surface.SetStyle(r.aspect.String()); err != nil {
		r.logger.Warn("set style failed", "mode", r.aspect.String(), "error", err)
	}
}

func (r *runner) applyPause() {
	if err := r.surface.SetPaused(r.paused); err != nil {
		r.logger.Warn("set paused failed", "paused", r.paused, "error", err)
	}
}

// emitTime drops the update when the host is behind; a newer one follows
func (r *runner) emitTime(ctx context.Context, t float64) {
	if ctx.Err() != nil {
		return
	}
	select {
	case r.out <- Event{Handle: r.handle, Kind: EventTimeUpdate, Time: t}:
	default:
	}
}

func (r *runner) emitStatus(ctx context.Context, status model.SurfaceStatus, err error) {
	select {
	case r.out <- Event{Handle: r.handle, Kind: EventStatus, Status: status, Err: err}:
	case <-ctx.Done():
	}
}

func (r *runner) close() {
	if r.surface == nil {
		return
	}
	if err := r.surface.Close(); err != nil {
		r.logger.Warn("surface close failed", "error", err)
	}
	r.surface = nil
	r.loaded = false
}
