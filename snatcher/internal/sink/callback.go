package sink

import (
	"context"

	"github.com/hazyhaar/snatch/stylesnap"
)

// ReportFunc handles one report in-process.
type ReportFunc func(ctx context.Context, rep stylesnap.Report) error

// Callback delivers reports via a Go function call, with no serialisation.
type Callback struct {
	fn ReportFunc
}

// NewCallback creates a Callback sink. fn may be nil.
func NewCallback(fn ReportFunc) *Callback {
	return &Callback{fn: fn}
}

func (c *Callback) Send(ctx context.Context, rep stylesnap.Report) error {
	if c.fn != nil {
		return c.fn(ctx, rep)
	}
	return nil
}

func (c *Callback) Close() error { return nil }
