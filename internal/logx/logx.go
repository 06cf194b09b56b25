// Package logx builds the structured logger shared by every heartswarm
// command.
package logx

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const Prefix = "heartswarm"

// New returns a timestamped logger writing to w at the named level. An
// unknown level falls back to info.
func New(w io.Writer, level string) *log.Logger {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          Prefix,
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
