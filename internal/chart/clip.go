package chart

import "time"

// ClipSeries cuts a polyline to the horizontal band lo <= y <= hi.
// Segments crossing the band edge are cut at the interpolated crossing,
// so each returned run lies fully inside the band.
func ClipSeries(points []Point, lo, hi float64) [][]Point {
	if len(points) == 1 {
		if p := points[0]; p.Price >= lo && p.Price <= hi {
			return [][]Point{{p}}
		}
		return nil
	}
	var runs [][]Point
	for i := 1; i < len(points); i++ {
		a, b, ok := clipSegment(points[i-1], points[i], lo, hi)
		if !ok {
			continue
		}
		if n := len(runs); n > 0 {
			run := runs[n-1]
			last := run[len(run)-1]
			if last.Date.Equal(a.Date) && last.Price == a.Price {
				runs[n-1] = append(run, b)
				continue
			}
		}
		runs = append(runs, []Point{a, b})
	}
	return runs
}

func clipSegment(p, q Point, lo, hi float64) (Point, Point, bool) {
	dy := q.Price - p.Price
	if dy == 0 {
		if p.Price < lo || p.Price > hi {
			return Point{}, Point{}, false
		}
		return p, q, true
	}
	t0 := (lo - p.Price) / dy
	t1 := (hi - p.Price) / dy
	if t0 > t1 {
		t0, t1 = t1, t0
	}
	if t0 < 0 {
		t0 = 0
	}
	if t1 > 1 {
		t1 = 1
	}
	if t0 > t1 {
		return Point{}, Point{}, false
	}
	return lerp(p, q, t0, lo, hi), lerp(p, q, t1, lo, hi), true
}

func lerp(p, q Point, t, lo, hi float64) Point {
	switch t {
	case 0:
		return p
	case 1:
		return q
	}
	span := q.Date.Sub(p.Date)
	y := p.Price + t*(q.Price-p.Price)
	if y < lo {
		y = lo
	} else if y > hi {
		y = hi
	}
	return Point{Date: p.Date.Add(time.Duration(t * float64(span))), Price: y}
}
