// Package sink delivers finished extractions to output backends.
package sink

import (
	"context"

	"github.com/hazyhaar/snatch/stylesnap"
)

// Sink is the output interface. Implementations deliver extraction reports
// to stdout, a webhook or an in-process callback.
type Sink interface {
	Send(ctx context.Context, rep stylesnap.Report) error
	Close() error
}

type envelope struct {
	Type string           `json:"type"`
	Data stylesnap.Report `json:"data"`
}

const typeExtraction = "extraction"
