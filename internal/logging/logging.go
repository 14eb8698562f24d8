// Package logging keeps the process default slog logger. Components fetch it
// with L() at call time so a later Configure takes effect everywhere.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
)

type Options struct {
	Level  string
	JSON   bool
	Output io.Writer
}

var def atomic.Pointer[slog.Logger]

func init() {
	def.Store(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})))
}

func Configure(opts Options) {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	cfg := &slog.HandlerOptions{Level: ParseLevel(opts.Level)}
	var h slog.Handler
	if opts.JSON {
		h = slog.NewJSONHandler(out, cfg)
	} else {
		h = slog.NewTextHandler(out, cfg)
	}
	def.Store(slog.New(h))
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func L() *slog.Logger { return def.Load() }

// Component returns the default logger tagged with a component name.
func Component(name string) *slog.Logger { return L().With("component", name) }

// InitFromEnv reads TASKRT_LOG_LEVEL and TASKRT_LOG_JSON.
func InitFromEnv() {
	json := false
	if b, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("TASKRT_LOG_JSON"))); err == nil {
		json = b
	}
	Configure(Options{Level: os.Getenv("TASKRT_LOG_LEVEL"), JSON: json})
}
