package edispec

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/reoring/edispec/model"
)

// Options configures an import. The zero value is ready to use.
type Options struct {
	// IDs generates entity identifiers; defaults to random UUIDs.
	IDs model.IDGenerator
	// Now stamps creation and modification dates; defaults to time.Now.
	Now func() time.Time
	// Logger receives debug records; defaults to discarding them.
	Logger *slog.Logger
	// MaxDepth bounds nesting of the input document; 0 selects the parser default.
	MaxDepth int
}

func (o Options) withDefaults() Options {
	if o.IDs == nil {
		o.IDs = model.NewID
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}

// Diag carries non-fatal warnings produced during import.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

type simpleDiag struct{ ws []string }

func (d *simpleDiag) HasWarnings() bool        { return len(d.ws) > 0 }
func (d *simpleDiag) Warnings() []string       { return append([]string(nil), d.ws...) }
func (d *simpleDiag) warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
