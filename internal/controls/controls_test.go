package controls

import (
	"errors"
	"net/url"
	"testing"

	"PriceBoard/internal/model"
)

func newControls() *Controls {
	return New(DefaultBounds(), model.DefaultRegistry())
}

func TestDefault(t *testing.T) {
	sel := newControls().Default()
	if sel.Months != 3 || sel.YMin != 1000 || sel.YMax != 4000 {
		t.Errorf("defaults = %+v", sel)
	}
	if len(sel.Companies) != 4 {
		t.Errorf("default selection should be every registry name, got %v", sel.Companies)
	}
}

func TestResolve_Months(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 3},
		{"abc", 3},
		{"0", 1},
		{"-4", 1},
		{"1", 1},
		{"6", 6},
		{"12", 6},
		{" 5 ", 5},
	}
	c := newControls()
	for _, tt := range tests {
		if got := c.Resolve(Input{Months: tt.in}).Months; got != tt.want {
			t.Errorf("months %q: got %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestResolve_PriceWindow(t *testing.T) {
	tests := []struct {
		ymin, ymax string
		wantMin    float64
		wantMax    float64
	}{
		{"", "", 1000, 4000},
		{"-10", "9999", 0, 5000},
		{"3000", "2000", 2000, 3000},
		{"NaN", "Inf", 1000, 4000},
		{"2500", "2500", 2500, 2500},
	}
	c := newControls()
	for _, tt := range tests {
		sel := c.Resolve(Input{YMin: tt.ymin, YMax: tt.ymax})
		if sel.YMin != tt.wantMin || sel.YMax != tt.wantMax {
			t.Errorf("(%q,%q): got [%v,%v], want [%v,%v]", tt.ymin, tt.ymax, sel.YMin, sel.YMax, tt.wantMin, tt.wantMax)
		}
	}
}

func TestResolve_Companies(t *testing.T) {
	c := newControls()
	sel := c.Resolve(Input{CompaniesSet: true, Companies: []string{"小田急電鉄", "unknown", "良品計画", "小田急電鉄"}})
	if len(sel.Companies) != 2 || sel.Companies[0] != "小田急電鉄" || sel.Companies[1] != "良品計画" {
		t.Errorf("companies = %v", sel.Companies)
	}

	empty := c.Resolve(Input{CompaniesSet: true})
	if !errors.Is(c.Check(empty), model.ErrInvalidSelection) {
		t.Errorf("submitted empty selection should be invalid: %v", empty.Companies)
	}
	if err := c.Check(c.Resolve(Input{})); err != nil {
		t.Errorf("absent selection defaults to all companies: %v", err)
	}
}

func TestFromQuery(t *testing.T) {
	q, _ := url.ParseQuery("months=2&ymin=100&ymax=900&company=A&company=B")
	in := FromQuery(q)
	if in.Months != "2" || in.YMin != "100" || in.YMax != "900" {
		t.Errorf("input = %+v", in)
	}
	if !in.CompaniesSet || len(in.Companies) != 2 {
		t.Errorf("companies = %v (set=%v)", in.Companies, in.CompaniesSet)
	}

	q, _ = url.ParseQuery("form=1&months=4")
	if in := FromQuery(q); !in.CompaniesSet || len(in.Companies) != 0 {
		t.Errorf("submitted form without companies: %+v", in)
	}

	if in := FromQuery(url.Values{}); in.CompaniesSet {
		t.Error("plain page load should not mark companies as set")
	}
}

func TestFromQuery_NameWithComma(t *testing.T) {
	reg := model.Registry{{Name: "Foo, Inc.", Symbol: "FOO"}, {Name: "Bar", Symbol: "BAR"}}
	c := New(DefaultBounds(), reg)

	q := url.Values{"form": {"1"}, "company": {"Foo, Inc."}}
	sel := c.Resolve(FromQuery(q))
	if len(sel.Companies) != 1 || sel.Companies[0] != "Foo, Inc." {
		t.Fatalf("companies = %v", sel.Companies)
	}
	if err := c.Check(sel); err != nil {
		t.Errorf("Check() = %v", err)
	}
}
