package report

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/mbti_top10/domain/models"
)

func sampleTable() Table {
	return BuildTable(models.ISTJ, []models.RankedEntry{
		{Country: "Romania", Value: 0.12345},
		{Country: "Samoa", Value: 0.1},
		{Country: "Togo", Value: math.NaN()},
	})
}

func TestBuildTable(t *testing.T) {
	tbl := sampleTable()
	require.Len(t, tbl.Rows, 3)
	assert.Equal(t, Row{Rank: 1, Country: "Romania", Value: "0.1235"}, tbl.Rows[0])
	assert.Equal(t, Row{Rank: 3, Country: "Togo", Value: "n/a"}, tbl.Rows[2])
}

func TestRenderText(t *testing.T) {
	out := sampleTable().RenderText()
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 7)
	assert.Contains(t, lines[1], "COUNTRY")
	assert.Contains(t, lines[1], "ISTJ")
	assert.Contains(t, lines[3], "Romania")
	assert.Contains(t, lines[3], "0.1235")
	assert.Contains(t, lines[5], "n/a")
}

func TestRenderMarkdown(t *testing.T) {
	out := sampleTable().RenderMarkdown()
	assert.True(t, strings.HasPrefix(out, "|"), out)
	assert.Contains(t, out, "Samoa")
	assert.Contains(t, out, "0.1000")
	assert.Len(t, strings.Split(out, "\n"), 5)
}

func TestRenderHTML(t *testing.T) {
	out := sampleTable().RenderHTML()
	assert.Contains(t, out, `class="top-table"`)
	assert.Contains(t, out, "Romania")
	assert.Contains(t, out, "<thead>")
}

func TestRenderEmpty(t *testing.T) {
	tbl := BuildTable(models.INFJ, nil)
	assert.Empty(t, tbl.Rows)
	assert.Contains(t, tbl.RenderText(), "INFJ")
}
