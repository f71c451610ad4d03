package pkglog

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	slogseq "github.com/sokkalf/slog-seq"
)

const serviceName = "datavalidator"

// Options controls the log level and the optional Seq shipping target.
type Options struct {
	Level     string
	SeqURL    string
	SeqAPIKey string
}

// InitLogging configures the default slog logger for the application.
//
// The logger writes JSON to stdout and normalizes a few common fields to make
// logs easier to query (for example, "ts" and "severity"). It runs before the
// configuration is loaded; Configure upgrades the logger once config is known.
func InitLogging() {
	slog.SetDefault(slog.New(&contextHandler{Handler: jsonHandler(slog.LevelInfo)}))
}

// Configure re-initializes the default logger from configuration.
//
// When a Seq URL is set, records are fanned out to both stdout and Seq. The
// returned closer flushes the Seq handler; without Seq it is a no-op.
func Configure(opts Options) func(context.Context) error {
	level := parseLevel(opts.Level)

	var handler slog.Handler = jsonHandler(level)
	closer := func(context.Context) error { return nil }

	if opts.SeqURL != "" {
		_, seqHandler := slogseq.NewLogger(
			opts.SeqURL,
			slogseq.WithAPIKey(opts.SeqAPIKey),
			slogseq.WithBatchSize(50),
			slogseq.WithFlushInterval(2*time.Second),
			slogseq.WithHandlerOptions(&slog.HandlerOptions{Level: level}),
		)
		if seqHandler != nil {
			handler = &multiHandler{handlers: []slog.Handler{handler, seqHandler}}
			closer = func(context.Context) error {
				seqHandler.Close()
				return nil
			}
		}
	}

	slog.SetDefault(slog.New(&contextHandler{Handler: handler}))

	return closer
}

func jsonHandler(level slog.Level) slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     level,
		AddSource: true,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			switch a.Key {
			case slog.TimeKey:
				a.Key = "ts"
			case slog.LevelKey:
				a.Key = "severity"
			case slog.SourceKey:
				if src, ok := a.Value.Any().(*slog.Source); ok {
					if strings.Contains(src.File, "/internal/") {
						relPath := filepath.Join("internal", strings.SplitAfter(src.File, "/internal/")[1])
						return slog.Attr{
							Key:   "file",
							Value: slog.StringValue(fmt.Sprintf("%s:%d", relPath, src.Line)),
						}
					}
					return slog.Attr{}
				}
			}
			return a
		},
	})
}

func parseLevel(value string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(value)) {
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

type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if cID := GetCorrelationID(ctx); cID != "" && cID != "[invalid_chain_id]" {
		r.AddAttrs(slog.String("_cID", cID))
	}
	r.AddAttrs(slog.String("service", serviceName))

	return h.Handler.Handle(ctx, r)
}
