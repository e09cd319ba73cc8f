package logger

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Params configures a console logger.
type Params struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level  string
	Writer io.Writer
	Prefix string
}

// New creates a logger writing to stderr unless Params.Writer is set.
func New(params Params) (*log.Logger, error) {
	level := log.InfoLevel
	if params.Level != "" {
		lvl, err := log.ParseLevel(params.Level)
		if err != nil {
			return nil, err
		}
		level = lvl
	}

	w := params.Writer
	if w == nil {
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          params.Prefix,
	}), nil
}

// Discard returns a logger that drops everything. Used as the default for
// library components constructed without a logger.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
