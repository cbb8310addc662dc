// Package dashboard runs one render pass: selection check, cached fetch,
// reshape and chart render, behind a guard that turns every failure into
// a single user-facing message.
package dashboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"PriceBoard/internal/calculator"
	"PriceBoard/internal/chart"
	"PriceBoard/internal/controls"
	"PriceBoard/internal/model"
	"PriceBoard/internal/recorder"
)

// PriceSource produces the wide price table; usually a *cache.PriceCache.
type PriceSource interface {
	FetchPrices(ctx context.Context, months int, reg model.Registry) (*model.WideTable, error)
}

// View is the successful result of a render pass.
type View struct {
	Selection model.Selection
	Table     *model.WideTable // selected rows sorted by name
	Summary   []calculator.Summary
	Long      []model.LongRow
	Chart     *chart.Spec
	PNG       []byte
}

// Pipeline wires the pass together.
type Pipeline struct {
	Source   PriceSource
	Renderer chart.Renderer
	Controls *controls.Controls
	Recorder recorder.Recorder
	Text     Text
	Opacity  float64
}

// New creates a Pipeline. A nil recorder records nothing.
func New(src PriceSource, r chart.Renderer, c *controls.Controls, rec recorder.Recorder, text Text, opacity float64) *Pipeline {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Pipeline{
		Source:   src,
		Renderer: r,
		Controls: c,
		Recorder: rec,
		Text:     text.WithDefaults(),
		Opacity:  opacity,
	}
}

// Run executes one pass for sel. An empty selection fails with
// model.ErrInvalidSelection before anything is fetched or rendered.
func (p *Pipeline) Run(ctx context.Context, sel model.Selection) (*View, error) {
	if err := p.Controls.Check(sel); err != nil {
		return nil, err
	}

	tbl, err := p.Source.FetchPrices(ctx, sel.Months, p.Controls.Registry)
	if err != nil {
		if errors.Is(err, model.ErrPriceFetchFailed) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrPriceFetchFailed, err)
	}

	selected := tbl.Filter(sel.Companies)
	if len(selected.Rows) == 0 {
		return nil, fmt.Errorf("%w: none of %v is in the fetched table", model.ErrInvalidSelection, sel.Companies)
	}

	long, err := calculator.Melt(selected)
	if err != nil {
		return nil, err
	}
	if want := len(selected.Rows) * len(selected.Dates); len(long) != want {
		return nil, fmt.Errorf("%w: reshape produced %d rows, want %d", model.ErrRenderFailure, len(long), want)
	}

	reg := p.Controls.Registry
	spec, err := chart.Build(long, chart.Options{
		XField:     "Date",
		YField:     p.Text.PriceAxis,
		ColorField: "Name",
		YMin:       sel.YMin,
		YMax:       sel.YMax,
		Opacity:    p.Opacity,
		ColorIndex: reg.Index,
	})
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := p.Renderer.Render(spec, &buf); err != nil {
		if errors.Is(err, model.ErrRenderFailure) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", model.ErrRenderFailure, err)
	}

	audit := selected.SortedByName()
	return &View{
		Selection: sel,
		Table:     audit,
		Summary:   calculator.Summarize(audit),
		Long:      long,
		Chart:     spec,
		PNG:       buf.Bytes(),
	}, nil
}

// Page is what the user sees after a pass: either a View or one message.
type Page struct {
	Title     string
	Heading   string
	Selection model.Selection
	View      *View
	Error     string
	Outcome   string
}

// Failed reports whether the pass ended in an error message.
func (p *Page) Failed() bool { return p.Error != "" }

// Guarded runs the pass and never fails: an empty selection gets its
// corrective message, every other error (panics included) gets the
// generic one. Error details go to the log only.
func (p *Pipeline) Guarded(ctx context.Context, sel model.Selection) (page *Page) {
	started := time.Now()
	page = &Page{
		Title:     p.Text.Title,
		Heading:   p.Text.Heading(sel.Months),
		Selection: sel,
	}

	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", model.ErrRenderFailure, r)
			page.View = nil
		}
		page.Outcome = Classify(err)
		switch page.Outcome {
		case OutcomeOK:
		case OutcomeInvalidSelection:
			log.Printf("[INFO] render refused: %v", err)
			page.Error = p.Text.InvalidSelection
		default:
			log.Printf("[ERROR] render pass failed (%s): %v", page.Outcome, err)
			page.Error = p.Text.GenericError
		}
		p.record(sel, page, err, time.Since(started))
	}()

	page.View, err = p.Run(ctx, sel)
	return page
}

// Render outcomes.
const (
	OutcomeOK               = "OK"
	OutcomeInvalidSelection = "INVALID_SELECTION"
	OutcomeFetchFailed      = "FETCH_FAILED"
	OutcomeRenderFailed     = "RENDER_FAILED"
	OutcomeError            = "ERROR"
)

// Classify maps a pass error to its outcome.
func Classify(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, model.ErrInvalidSelection):
		return OutcomeInvalidSelection
	case errors.Is(err, model.ErrPriceFetchFailed):
		return OutcomeFetchFailed
	case errors.Is(err, model.ErrRenderFailure):
		return OutcomeRenderFailed
	default:
		return OutcomeError
	}
}

func (p *Pipeline) record(sel model.Selection, page *Page, err error, d time.Duration) {
	evt := &recorder.RenderEvent{
		Months:    sel.Months,
		YMin:      sel.YMin,
		YMax:      sel.YMax,
		Companies: sel.Companies,
		Outcome:   page.Outcome,
		Duration:  d,
	}
	if page.View != nil {
		evt.Points = page.View.Chart.PointCount()
	}
	if err != nil {
		evt.Err = err.Error()
	}
	if rerr := p.Recorder.RecordRender(evt); rerr != nil {
		log.Printf("[ERROR] record render: %v", rerr)
	}
}
