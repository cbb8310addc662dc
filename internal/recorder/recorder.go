package recorder

import "time"

// FetchEvent records one uncached price fetch.
type FetchEvent struct {
	Provider    string
	Months      int
	RegistryKey string
	Companies   int // rows in the resulting table
	Dates       int
	Duration    time.Duration
	Err         string
}

// RenderEvent records one dashboard render pass.
type RenderEvent struct {
	Months    int
	YMin      float64
	YMax      float64
	Companies []string
	Points    int
	Outcome   string // "OK", "INVALID_SELECTION", "FETCH_FAILED", "RENDER_FAILED", "ERROR"
	Duration  time.Duration
	Err       string
}

// Recorder persists fetch and render history for later analysis.
type Recorder interface {
	RecordFetch(evt *FetchEvent) error
	RecordRender(evt *RenderEvent) error
	Close() error
}
