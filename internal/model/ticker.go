package model

import "strings"

// CompanyTicker maps a display name to an exchange ticker symbol.
type CompanyTicker struct {
	Name   string `yaml:"name" json:"name"`
	Symbol string `yaml:"symbol" json:"symbol"`
}

// Registry is an ordered, read-only list of company tickers.
type Registry []CompanyTicker

// DefaultRegistry returns the four Tokyo-listed companies shown by default.
func DefaultRegistry() Registry {
	return Registry{
		{Name: "良品計画", Symbol: "7453.T"},
		{Name: "森永製菓", Symbol: "2201.T"},
		{Name: "明治ホールディングス", Symbol: "2269.T"},
		{Name: "小田急電鉄", Symbol: "9007.T"},
	}
}

// Names returns the company names in registry order.
func (r Registry) Names() []string {
	names := make([]string, len(r))
	for i, t := range r {
		names[i] = t.Name
	}
	return names
}

// Symbol looks up the ticker symbol for a company name.
func (r Registry) Symbol(name string) (string, bool) {
	for _, t := range r {
		if t.Name == name {
			return t.Symbol, true
		}
	}
	return "", false
}

// Index returns the registry position of name, or -1.
func (r Registry) Index(name string) int {
	for i, t := range r {
		if t.Name == name {
			return i
		}
	}
	return -1
}

// Key identifies the registry contents, order included. Two registries
// with equal keys fetch identical tables.
func (r Registry) Key() string {
	var b strings.Builder
	for i, t := range r {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(t.Name)
		b.WriteByte('=')
		b.WriteString(t.Symbol)
	}
	return b.String()
}
