// Package report renders a Top-N result as a table.
package report

import (
	"fmt"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pivolan/mbti_top10/domain/models"
)

// MissingValue is shown in place of NaN.
const MissingValue = "n/a"

// Table is the raw Top-N data, one row per ranked country.
type Table struct {
	Category models.Category
	Rows     []Row
}

type Row struct {
	Rank    int
	Country string
	Value   string
}

func BuildTable(cat models.Category, entries []models.RankedEntry) Table {
	t := Table{Category: cat, Rows: make([]Row, 0, len(entries))}
	for i, e := range entries {
		t.Rows = append(t.Rows, Row{Rank: i + 1, Country: e.Country, Value: FormatValue(e.Value)})
	}
	return t
}

// FormatValue prints a proportion with four decimals.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return MissingValue
	}
	return fmt.Sprintf("%.4f", v)
}

func (t Table) writer() table.Writer {
	w := table.NewWriter()
	w.AppendHeader(table.Row{"#", models.CountryColumn, t.Category.String()})
	for _, r := range t.Rows {
		w.AppendRow(table.Row{r.Rank, r.Country, r.Value})
	}
	w.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
	})
	w.SetStyle(table.StyleDefault)
	return w
}

// RenderText returns the table drawn with ASCII borders.
func (t Table) RenderText() string {
	return t.writer().Render()
}

func (t Table) RenderMarkdown() string {
	return t.writer().RenderMarkdown()
}

// RenderHTML returns an HTML table fragment.
func (t Table) RenderHTML() string {
	w := t.writer()
	w.Style().HTML.CSSClass = "top-table"
	return w.RenderHTML()
}
