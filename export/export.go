// Package export sequences the computation components and hands their output to a
// sink or a print surface.
//
// It is the only package of the module with side effects. Every invocation works on its
// own bounded copy of the snapshot and returns its own Result: a Driver can be shared
// between goroutines.
package export

import (
	"context"
	"time"

	"github.com/etnz/folio"
	"github.com/etnz/folio/renderer"
	"github.com/etnz/folio/risk"
	"github.com/etnz/folio/tabular"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// State is a step of an export invocation.
type State string

const (
	Idle State = "idle"

	// tabular path
	Computing  State = "computing"
	Serialized State = "serialized"
	Delivered  State = "delivered"

	// narrative path
	Rendering      State = "rendering"
	Presented      State = "presented"
	PrintRequested State = "print_requested"
	Closed         State = "closed"

	Failed State = "failed"
)

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Delivered || s == Closed || s == Failed
}

// Result is the outcome of an export invocation.
type Result struct {
	ID          string  // invocation id, also logged as export_id
	Kind        string  // tabular kind name or "report"
	State       State   // terminal state
	Trail       []State // every state visited, starting with Idle
	Artifact    string  // location of the delivered artifact, if any
	ContentType string  // media type of the delivered artifact
	Err         error   // a *Failure when State is Failed
}

// Failed reports whether the export ended in the Failed state.
func (r *Result) Failed() bool { return r.State == Failed }

func (r *Result) enter(log zerolog.Logger, s State) {
	r.State = s
	r.Trail = append(r.Trail, s)
	log.Debug().Str("state", string(s)).Msg("export state")
}

func (r *Result) fail(log zerolog.Logger, f *Failure) *Result {
	r.Err = f
	r.enter(log, Failed)
	log.Error().Err(f.Err).Str("op", f.Op).Str("class", f.Class.String()).Msg("export failed")
	return r
}

// Driver runs exports.
type Driver struct {
	Calculator risk.Calculator
	Limits     folio.Limits
	Log        zerolog.Logger
	Now        func() time.Time // generation time of reports, time.Now when nil
}

// NewDriver returns a Driver with the default calculator and limits.
func NewDriver(log zerolog.Logger) *Driver {
	return &Driver{
		Calculator: risk.Default(),
		Limits:     folio.DefaultLimits,
		Log:        log,
	}
}

func (d *Driver) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

func (d *Driver) start(kind string) (*Result, zerolog.Logger) {
	r := &Result{ID: uuid.NewString(), Kind: kind}
	log := d.Log.With().Str("export_id", r.ID).Str("kind", kind).Logger()
	r.enter(log, Idle)
	return r, log
}

// bounded applies the input limits, logging a truncation.
func (d *Driver) bounded(log zerolog.Logger, p *folio.Portfolio) *folio.Portfolio {
	q, truncated := p.Bounded(d.Limits)
	if truncated {
		log.Warn().
			Int("transactions", len(p.Transactions)).
			Int("history", len(p.PerformanceHistory)).
			Int("max_transactions", d.Limits.MaxTransactions).
			Int("max_history", d.Limits.MaxHistory).
			Msg("snapshot truncated to the most recent entries")
	}
	return q
}

// Tabular serializes p as the export of the given kind and delivers it to sink.
//
// Idle -> Computing -> Serialized -> Delivered, or Failed.
func (d *Driver) Tabular(ctx context.Context, p *folio.Portfolio, kind tabular.Kind, sink Sink) *Result {
	r, log := d.start(kind.String())

	r.enter(log, Computing)
	data, err := tabular.Bytes(kind, d.bounded(log, p))
	if err != nil {
		return r.fail(log, internal("serialize", err))
	}
	r.enter(log, Serialized)

	artifact := Artifact{Name: kind.Filename(), ContentType: tabular.ContentType, Data: data}
	location, err := sink.Put(ctx, artifact)
	if err != nil {
		return r.fail(log, blocked("deliver", err))
	}
	r.Artifact = location
	r.ContentType = artifact.ContentType
	r.enter(log, Delivered)
	log.Info().Str("artifact", location).Str("content_type", artifact.ContentType).Int("bytes", len(data)).Msg("export delivered")
	return r
}

// Report renders the narrative report of p and prints it on a surface opened by printer.
// The surface is always released once opened.
//
// Idle -> Rendering -> Presented -> PrintRequested -> Closed, or Failed.
func (d *Driver) Report(ctx context.Context, p *folio.Portfolio, printer Printer) *Result {
	r, log := d.start("report")

	r.enter(log, Rendering)
	q := d.bounded(log, p)
	doc := renderer.NewReport(q, d.Calculator.Compute(q.PerformanceHistory), d.now())

	surface, err := printer.Open(ctx)
	if err != nil {
		return r.fail(log, blocked("open", err))
	}
	if err := surface.Present(ctx, doc); err != nil {
		closeSurface(log, surface)
		return r.fail(log, blocked("present", err))
	}
	r.enter(log, Presented)

	if err := surface.Print(ctx); err != nil {
		closeSurface(log, surface)
		return r.fail(log, blocked("print", err))
	}
	r.enter(log, PrintRequested)

	if err := surface.Close(); err != nil {
		return r.fail(log, blocked("close", err))
	}
	r.enter(log, Closed)
	log.Info().Msg("report printed")
	return r
}

func closeSurface(log zerolog.Logger, s Surface) {
	if err := s.Close(); err != nil {
		log.Warn().Err(err).Msg("cannot release print surface")
	}
}
