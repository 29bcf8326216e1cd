package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hupe1980/onlyalpha/internal/runner"
)

// RunFunc performs one filter run.
type RunFunc func(ctx context.Context) (*runner.Result, error)

// Options configures the watch behaviour.
type Options struct {
	// Path is the input file to watch.
	Path string

	// Debounce is the quiet period before triggering a run.
	Debounce time.Duration

	// Logger is used for structured logging.
	Logger *slog.Logger

	// Out is the writer for user-facing status messages.
	Out io.Writer
}

// DefaultOptions returns sensible default watch options.
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Logger:   slog.Default(),
		Out:      os.Stderr,
	}
}

// Run performs an initial run and then one run per debounced change of
// opts.Path. It blocks until ctx is cancelled or SIGINT/SIGTERM arrives.
// Failed runs are reported on opts.Out and do not stop the watcher.
func Run(ctx context.Context, opts Options, runFn RunFunc) error {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	if opts.Out == nil {
		opts.Out = io.Discard
	}

	target, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", opts.Path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic saves (write temp, rename over) are seen.
	dir := filepath.Dir(target)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching directory %q: %w", dir, err)
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(opts.Out, "watching %s (debounce=%s)\n", opts.Path, opts.Debounce)

	runCtx, cancel := context.WithCancel(sigCtx)

	s := &session{opts: opts, runFn: runFn}

	s.run(runCtx, "(initial)")

	debouncer := NewDebouncer(opts.Debounce, func(path string) {
		s.run(runCtx, path)
	})

	// Nothing is written to opts.Out once Run has returned.
	defer func() {
		cancel()
		debouncer.Stop()
	}()

	for {
		select {
		case <-sigCtx.Done():
			fmt.Fprintln(opts.Out, "\nshutting down watcher")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			if !isRelevant(event, target) {
				continue
			}

			opts.Logger.Debug("input changed", slog.String("event", event.Op.String()))
			debouncer.Trigger(opts.Path)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			opts.Logger.Error("watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

// session serializes runs so at most one filter run is active.
type session struct {
	mu    sync.Mutex
	opts  Options
	runFn RunFunc
}

func (s *session) run(ctx context.Context, trigger string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	now := time.Now().Format("15:04:05")

	result, err := s.runFn(ctx)
	if err != nil {
		fmt.Fprintf(s.opts.Out, "[%s] %s → ERROR: %v\n", now, trigger, err)
		return
	}

	fmt.Fprintf(s.opts.Out, "[%s] %s → OK (%d of %d bytes kept, wrote %s)\n",
		now, trigger, result.Stats.Kept, result.Stats.Read, result.OutputPath)
}

// isRelevant reports whether event is a write or (re)creation of target.
func isRelevant(event fsnotify.Event, target string) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}

	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	return name == target
}
