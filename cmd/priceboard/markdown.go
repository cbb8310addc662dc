package main

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"

	"PriceBoard/internal/dashboard"
)

// printMarkdown renders md for the terminal, falling back to plain text.
func printMarkdown(md string) {
	out, err := glamour.Render(md, "dark")
	if err != nil {
		fmt.Fprint(os.Stdout, md)
		return
	}
	fmt.Fprint(os.Stdout, out)
}

// pageMarkdown renders a page as a title, the audit table transposed to
// one line per date, and the period summary.
func pageMarkdown(page *dashboard.Page, tableHeading string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n## %s\n\n", page.Title, page.Heading)
	if page.Failed() {
		fmt.Fprintf(&b, "> %s\n", page.Error)
		return b.String()
	}

	tbl := page.View.Table
	fmt.Fprintf(&b, "### %s\n\n| Date |", tableHeading)
	for _, r := range tbl.Rows {
		fmt.Fprintf(&b, " %s |", r.Name)
	}
	b.WriteString("\n|---|")
	for range tbl.Rows {
		b.WriteString("---:|")
	}
	b.WriteString("\n")
	for i, d := range tbl.Dates {
		fmt.Fprintf(&b, "| %s |", d)
		for _, r := range tbl.Rows {
			fmt.Fprintf(&b, " %s |", formatPrice(r.Prices[i]))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n| Company | Last | High | Low | Change |\n|---|---:|---:|---:|---:|\n")
	for _, s := range page.View.Summary {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			s.Name, formatPrice(s.Last), formatPrice(s.High), formatPrice(s.Low), formatChange(s.ChangePct))
	}
	return b.String()
}

func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func formatChange(v float64) string {
	if math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%+.2f%%", v)
}
