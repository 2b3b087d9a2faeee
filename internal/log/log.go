// Package log builds the slog loggers used by the decoder and the sfv command.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"braces.dev/errtrace"
	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/sfv/internal/constraints"
	"github.com/ghettovoice/sfv/internal/errorutil"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(e interface{ Pos() int }) slog.Value {
		return slog.GroupValue(
			slog.String("type", fmt.Sprintf("%T", e)),
			slog.Int("pos", e.Pos()),
		)
	}),
)

func newConsoleHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return newHandler(console.NewHandler(w, &console.HandlerOptions{
		AddSource:  true,
		Level:      lvl,
		TimeFormat: time.RFC3339Nano,
	}))
}

func newDevHandler(w io.Writer, lvl slog.Leveler) slog.Handler {
	return newHandler(devslog.NewHandler(w, &devslog.Options{
		HandlerOptions: &slog.HandlerOptions{
			AddSource: true,
			Level:     lvl,
		},
		SortKeys:   true,
		TimeFormat: time.RFC3339Nano,
	}))
}

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

// Format names accepted by [New].
const (
	FormatConsole = "console"
	FormatDev     = "dev"
	FormatNone    = "none"
)

// New builds a logger writing to w in the given format.
// An empty format is treated as [FormatNone].
func New(format string, lvl slog.Leveler, w io.Writer) (*slog.Logger, error) {
	switch format {
	case FormatConsole:
		return slog.New(newConsoleHandler(w, lvl)), nil
	case FormatDev:
		return slog.New(newDevHandler(w, lvl)), nil
	case FormatNone, "":
		return Noop, nil
	default:
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown log format %q", format))
	}
}

// ParseLevel parses level names like "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError(err))
	}
	return lvl, nil
}

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(string(v.v))
}

// StringValue returns a value logger that formats v as string.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
