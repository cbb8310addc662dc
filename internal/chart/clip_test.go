package chart

import (
	"math"
	"testing"
	"time"
)

func day(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }

func TestClipSeries_OnlyMiddlePointInside(t *testing.T) {
	pts := []Point{{day(1), 500}, {day(2), 1500}, {day(3), 4500}}
	runs := ClipSeries(pts, 1000, 4000)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	run := runs[0]
	if len(run) != 3 {
		t.Fatalf("expected entry crossing, data point, exit crossing; got %+v", run)
	}
	if run[0].Price != 1000 || !run[0].Date.Equal(day(1).Add(12*time.Hour)) {
		t.Errorf("entry = %+v", run[0])
	}
	if run[1] != pts[1] {
		t.Errorf("data point = %+v", run[1])
	}
	if math.Abs(run[2].Price-4000) > 1e-9 {
		t.Errorf("exit = %+v", run[2])
	}

	inside := 0
	for _, p := range pts {
		if p.Price >= 1000 && p.Price <= 4000 {
			inside++
		}
	}
	if inside != 1 {
		t.Errorf("expected exactly one data point within bounds, got %d", inside)
	}
}

func TestClipSeries_Gaps(t *testing.T) {
	pts := []Point{{day(1), 10}, {day(2), 10}, {day(3), 100}, {day(4), 100}, {day(5), 10}}
	runs := ClipSeries(pts, 0, 50)
	if len(runs) != 2 {
		t.Fatalf("expected the excursion to split the line, got %d runs", len(runs))
	}
	if got := runs[0][0]; got != pts[0] {
		t.Errorf("first run starts at %+v", got)
	}
	if got := runs[1][len(runs[1])-1]; got != pts[4] {
		t.Errorf("second run ends at %+v", got)
	}
}

func TestClipSeries_AllOutside(t *testing.T) {
	pts := []Point{{day(1), 5000}, {day(2), 6000}}
	if runs := ClipSeries(pts, 0, 4000); len(runs) != 0 {
		t.Errorf("expected no runs, got %+v", runs)
	}
}

func TestClipSeries_SinglePoint(t *testing.T) {
	if runs := ClipSeries([]Point{{day(1), 5}}, 0, 10); len(runs) != 1 || len(runs[0]) != 1 {
		t.Errorf("in-range single point: %+v", runs)
	}
	if runs := ClipSeries([]Point{{day(1), 50}}, 0, 10); len(runs) != 0 {
		t.Errorf("out-of-range single point: %+v", runs)
	}
}
