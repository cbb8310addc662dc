package dashboard

import "fmt"

// Text holds the user-visible, localized strings of the dashboard.
type Text struct {
	Title            string `yaml:"title"`
	HeadingFormat    string `yaml:"heading_format"` // takes the month count
	TableHeading     string `yaml:"table_heading"`
	PriceAxis        string `yaml:"price_axis"`
	InvalidSelection string `yaml:"invalid_selection"`
	GenericError     string `yaml:"generic_error"`

	SidebarTitle   string `yaml:"sidebar_title"`
	SidebarIntro   string `yaml:"sidebar_intro"`
	MonthsHeading  string `yaml:"months_heading"`
	MonthsLabel    string `yaml:"months_label"`
	RangeHeading   string `yaml:"range_heading"`
	RangeLabel     string `yaml:"range_label"`
	RangeMinLabel  string `yaml:"range_min_label"`
	RangeMaxLabel  string `yaml:"range_max_label"`
	CompaniesLabel string `yaml:"companies_label"`
	Submit         string `yaml:"submit"`
}

// DefaultText returns the Japanese strings of the original dashboard.
func DefaultText() Text {
	return Text{
		Title:            "たきお 保有株価可視化アプリ",
		HeadingFormat:    "過去 %dヶ月間 の国内株価",
		TableHeading:     "株価 (Yen)",
		PriceAxis:        "Stock Prices(Yen)",
		InvalidSelection: "少なくとも一社は選んでください。",
		GenericError:     "おっと！なにかエラーが起きているようです。",

		SidebarTitle:   "国内株価",
		SidebarIntro:   "こちらは株価可視化ツールです。以下のオプションから表示日数を指定できます。",
		MonthsHeading:  "表示日数選択",
		MonthsLabel:    "月数",
		RangeHeading:   "株価の範囲指定",
		RangeLabel:     "範囲を指定してください。",
		RangeMinLabel:  "下限",
		RangeMaxLabel:  "上限",
		CompaniesLabel: "会社名を選択してください。",
		Submit:         "表示",
	}
}

// WithDefaults fills every empty field from DefaultText.
func (t Text) WithDefaults() Text {
	d := DefaultText()
	fill := func(v *string, def string) {
		if *v == "" {
			*v = def
		}
	}
	fill(&t.Title, d.Title)
	fill(&t.HeadingFormat, d.HeadingFormat)
	fill(&t.TableHeading, d.TableHeading)
	fill(&t.PriceAxis, d.PriceAxis)
	fill(&t.InvalidSelection, d.InvalidSelection)
	fill(&t.GenericError, d.GenericError)
	fill(&t.SidebarTitle, d.SidebarTitle)
	fill(&t.SidebarIntro, d.SidebarIntro)
	fill(&t.MonthsHeading, d.MonthsHeading)
	fill(&t.MonthsLabel, d.MonthsLabel)
	fill(&t.RangeHeading, d.RangeHeading)
	fill(&t.RangeLabel, d.RangeLabel)
	fill(&t.RangeMinLabel, d.RangeMinLabel)
	fill(&t.RangeMaxLabel, d.RangeMaxLabel)
	fill(&t.CompaniesLabel, d.CompaniesLabel)
	fill(&t.Submit, d.Submit)
	return t
}

// Heading renders the sub-title for a lookback of months.
func (t Text) Heading(months int) string {
	return fmt.Sprintf(t.HeadingFormat, months)
}
