package web

import (
	"encoding/base64"
	"html/template"
	"math"
	"strconv"

	"PriceBoard/internal/dashboard"
)

type companyOption struct {
	Name    string
	Checked bool
}

type summaryLine struct {
	Name      string
	Last      string
	High      string
	Low       string
	ChangePct string
}

type pageData struct {
	Text         dashboard.Text
	Title        string
	Heading      string
	TableHeading string
	Error        string
	Months       int
	MonthsMin    int
	MonthsMax    int
	YMin         string
	YMax         string
	PriceMin     string
	PriceMax     string
	Companies    []companyOption
	Dates        []string
	Rows         [][]string // company name followed by one cell per date
	Summary      []summaryLine
	ChartURI     template.URL
}

func newPageData(p *dashboard.Pipeline, page *dashboard.Page) pageData {
	b := p.Controls.Bounds
	d := pageData{
		Text:         p.Text,
		Title:        page.Title,
		Heading:      page.Heading,
		TableHeading: p.Text.TableHeading,
		Error:        page.Error,
		Months:       page.Selection.Months,
		MonthsMin:    b.MonthsMin,
		MonthsMax:    b.MonthsMax,
		YMin:         num(page.Selection.YMin),
		YMax:         num(page.Selection.YMax),
		PriceMin:     num(b.PriceMin),
		PriceMax:     num(b.PriceMax),
	}
	for _, name := range p.Controls.Registry.Names() {
		d.Companies = append(d.Companies, companyOption{Name: name, Checked: page.Selection.Has(name)})
	}
	if page.View == nil {
		return d
	}

	d.Dates = page.View.Table.Dates
	for _, r := range page.View.Table.Rows {
		cells := make([]string, 0, len(r.Prices)+1)
		cells = append(cells, r.Name)
		for _, v := range r.Prices {
			cells = append(cells, price(v))
		}
		d.Rows = append(d.Rows, cells)
	}
	for _, s := range page.View.Summary {
		d.Summary = append(d.Summary, summaryLine{
			Name:      s.Name,
			Last:      price(s.Last),
			High:      price(s.High),
			Low:       price(s.Low),
			ChangePct: pct(s.ChangePct),
		})
	}
	d.ChartURI = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(page.View.PNG))
	return d
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func price(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	s := strconv.FormatFloat(v, 'f', 2, 64) + "%"
	if v > 0 {
		s = "+" + s
	}
	return s
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="ja">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 0; display: flex; }
aside { width: 260px; padding: 1rem; background: #f0f2f6; min-height: 100vh; }
main { flex: 1; padding: 1rem 2rem; overflow-x: auto; }
table { border-collapse: collapse; font-size: 0.85rem; }
th, td { border: 1px solid #ddd; padding: 0.2rem 0.5rem; text-align: right; white-space: nowrap; }
th:first-child, td:first-child { text-align: left; }
.error { color: #b00020; background: #fde7e9; padding: 0.75rem; }
label { display: block; margin: 0.4rem 0; }
</style>
</head>
<body>
<aside>
<h2>{{.Text.SidebarTitle}}</h2>
<p>{{.Text.SidebarIntro}}</p>
<form method="get" action="/">
<input type="hidden" name="form" value="1">
<h3>{{.Text.MonthsHeading}}</h3>
<label>{{.Text.MonthsLabel}}
<input type="range" name="months" min="{{.MonthsMin}}" max="{{.MonthsMax}}" value="{{.Months}}" oninput="this.nextElementSibling.value=this.value">
<output>{{.Months}}</output>
</label>
<h3>{{.Text.RangeHeading}}</h3>
<p>{{.Text.RangeLabel}}</p>
<label>{{.Text.RangeMinLabel}} <input type="number" name="ymin" min="{{.PriceMin}}" max="{{.PriceMax}}" step="any" value="{{.YMin}}"></label>
<label>{{.Text.RangeMaxLabel}} <input type="number" name="ymax" min="{{.PriceMin}}" max="{{.PriceMax}}" step="any" value="{{.YMax}}"></label>
<fieldset>
<legend>{{.Text.CompaniesLabel}}</legend>
{{range .Companies}}<label><input type="checkbox" name="company" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
{{end}}</fieldset>
<button type="submit">{{.Text.Submit}}</button>
</form>
</aside>
<main>
<h1>{{.Title}}</h1>
<h2>{{.Heading}}</h2>
{{if .Error}}<p class="error">{{.Error}}</p>{{else}}
<h3>{{.TableHeading}}</h3>
<table>
<tr><th></th>{{range .Dates}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<table>
<tr><th></th><th>Last</th><th>High</th><th>Low</th><th>Change</th></tr>
{{range .Summary}}<tr><td>{{.Name}}</td><td>{{.Last}}</td><td>{{.High}}</td><td>{{.Low}}</td><td>{{.ChangePct}}</td></tr>
{{end}}</table>
<img alt="chart" src="{{.ChartURI}}">
{{end}}
</main>
</body>
</html>
`))
