package snatcher

import (
	"io"
	"log/slog"

	"github.com/hazyhaar/snatch/snatcher/internal/sink"
)

// Sink is the output interface for extraction reports.
type Sink = sink.Sink

// ReportFunc handles one report in-process.
type ReportFunc = sink.ReportFunc

// NewStdoutSink creates a stdout JSON-lines sink.
func NewStdoutSink(w io.Writer) Sink {
	return sink.NewStdout(w)
}

// NewWebhookSink creates a webhook POST sink with retry.
func NewWebhookSink(url string, logger *slog.Logger) Sink {
	return sink.NewWebhook(url, sink.WithWebhookLogger(logger))
}

// NewCallbackSink creates an in-process callback sink.
func NewCallbackSink(fn ReportFunc) Sink {
	return sink.NewCallback(fn)
}

func buildSinks(cfgs []SinkConfig, logger *slog.Logger) []Sink {
	var out []Sink
	for _, c := range cfgs {
		switch c.Type {
		case "stdout":
			out = append(out, sink.NewStdout(nil))
		case "webhook":
			out = append(out, sink.NewWebhook(c.URL,
				sink.WithWebhookRetries(c.Retries),
				sink.WithWebhookLogger(logger)))
		}
	}
	return out
}
