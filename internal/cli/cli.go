// Package cli implements the seqviz command-line interface.
//
// This package provides commands for rendering dendrograms from Newick or
// linkage input, previewing trees in the terminal, serving the layout API,
// and managing the artifact cache. The CLI is built using cobra and
// supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Generate SVG, PDF, PNG, or JSON visualizations
//   - preview: Interactive terminal dendrogram viewer
//   - serve: Run the HTTP layout API
//   - cache: Manage the rendered artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/t0mdavid-m/seqviz/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/t0mdavid-m/seqviz/pkg/cache"
	"github.com/t0mdavid-m/seqviz/pkg/config"
	"github.com/t0mdavid-m/seqviz/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = "seqviz"

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. Safe for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 3 artifacts (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx. If no logger is
// attached, it returns log.Default() so commands always have a valid
// logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// newRunner creates a pipeline runner backed by the configured cache.
// Cache failures degrade to a null cache rather than failing the command.
func newRunner(ctx context.Context, cfg *config.Config) *pipeline.Runner {
	logger := loggerFromContext(ctx)

	var c cache.Cache
	switch {
	case cfg.Cache.Disabled:
		c = cache.NewNullCache()
	case cfg.Cache.RedisAddr != "":
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.Cache.RedisAddr})
		if err != nil {
			logger.Warn("redis cache unavailable, continuing without cache", "error", err)
			c = cache.NewNullCache()
		} else {
			c = rc
		}
	default:
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				logger.Warn("cache dir unavailable, continuing without cache", "error", err)
				c = cache.NewNullCache()
				break
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			logger.Warn("file cache unavailable, continuing without cache", "error", err)
			c = cache.NewNullCache()
		} else {
			c = fc
		}
	}

	return pipeline.NewRunner(c, logger)
}

// cacheDir returns the artifact cache directory,
// e.g. ~/.cache/seqviz on Linux.
func cacheDir() (string, error) {
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appName), nil
}
