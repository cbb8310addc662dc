package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_RecordsEvents(t *testing.T) {
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	if err := r.RecordFetch(&FetchEvent{Provider: "mock", Months: 3, RegistryKey: "A=AAA", Companies: 1, Dates: 60, Duration: 20 * time.Millisecond}); err != nil {
		t.Fatalf("record fetch: %v", err)
	}
	for _, outcome := range []string{"OK", "OK", "INVALID_SELECTION"} {
		if err := r.RecordRender(&RenderEvent{Months: 3, YMin: 1000, YMax: 4000, Companies: []string{"A"}, Outcome: outcome}); err != nil {
			t.Fatalf("record render: %v", err)
		}
	}

	if n, err := r.CountRenders(""); err != nil || n != 3 {
		t.Errorf("all renders = %d, %v", n, err)
	}
	if n, err := r.CountRenders("OK"); err != nil || n != 2 {
		t.Errorf("OK renders = %d, %v", n, err)
	}
}

func TestSQLiteRecorder_ReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	r, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatal(err)
	}
	r.RecordRender(&RenderEvent{Outcome: "ERROR"})
	r.Close()

	r2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer r2.Close()
	if n, _ := r2.CountRenders("ERROR"); n != 1 {
		t.Errorf("expected persisted event, got %d", n)
	}
}
