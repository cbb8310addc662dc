package model

import (
	"encoding/json"
	"math"
	"testing"
)

func sampleTable() *WideTable {
	return &WideTable{
		Dates: []string{"01 March 2024", "04 March 2024"},
		Rows: []Row{
			{Name: "森永製菓", Prices: []float64{2700, 2710}},
			{Name: "良品計画", Prices: []float64{2400, math.NaN()}},
			{Name: "小田急電鉄", Prices: []float64{2000, 2020}},
		},
	}
}

func TestFilter_SelectionOrderAndUnknowns(t *testing.T) {
	tbl := sampleTable()
	got := tbl.Filter([]string{"小田急電鉄", "unknown", "森永製菓", "小田急電鉄"})
	names := got.Names()
	if len(names) != 2 || names[0] != "小田急電鉄" || names[1] != "森永製菓" {
		t.Fatalf("unexpected rows: %v", names)
	}
	got.Rows[0].Prices[0] = -1
	if r, _ := tbl.Row("小田急電鉄"); r.Prices[0] != 2000 {
		t.Error("filter must not share price slices with the source table")
	}
}

func TestFilter_Empty(t *testing.T) {
	got := sampleTable().Filter(nil)
	if len(got.Rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(got.Rows))
	}
	if len(got.Dates) != 2 {
		t.Errorf("dates should be kept, got %v", got.Dates)
	}
}

func TestSortedByName(t *testing.T) {
	tbl := sampleTable()
	sorted := tbl.SortedByName()
	names := sorted.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("rows not sorted: %v", names)
		}
	}
	if tbl.Rows[0].Name != "森永製菓" {
		t.Error("source table must keep its order")
	}
}

func TestEqual_NaNCells(t *testing.T) {
	if !sampleTable().Equal(sampleTable()) {
		t.Error("identical tables with NaN cells should be equal")
	}
	other := sampleTable()
	other.Rows[2].Prices[1] = 2021
	if sampleTable().Equal(other) {
		t.Error("tables with different prices should differ")
	}
}

func TestDateLabelRoundTrip(t *testing.T) {
	d, err := ParseDateLabel("05 February 2024")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := FormatDateLabel(d); got != "05 February 2024" {
		t.Errorf("got %q", got)
	}
}

func TestRegistryKey(t *testing.T) {
	r := Registry{{Name: "A", Symbol: "AAA"}, {Name: "B", Symbol: "BBB"}}
	if got := r.Key(); got != "A=AAA;B=BBB" {
		t.Errorf("key = %q", got)
	}
	reordered := Registry{r[1], r[0]}
	if reordered.Key() == r.Key() {
		t.Error("registry order must be part of the key")
	}
	if s, ok := r.Symbol("B"); !ok || s != "BBB" {
		t.Errorf("symbol lookup = %q, %v", s, ok)
	}
	if r.Index("C") != -1 {
		t.Error("unknown name should have index -1")
	}
}

func TestMarshalJSON_MissingPricesAreNull(t *testing.T) {
	row := Row{Name: "A", Prices: []float64{100, math.NaN()}}
	got, err := json.Marshal(row)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `{"name":"A","prices":[100,null]}` {
		t.Errorf("Row JSON = %s", got)
	}

	got, err = json.Marshal([]LongRow{{Date: "01 March 2024", Name: "A", Price: math.NaN()}})
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != `[{"date":"01 March 2024","name":"A","price":null}]` {
		t.Errorf("LongRow JSON = %s", got)
	}
}
