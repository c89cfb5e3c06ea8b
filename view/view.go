// Package view turns the current selection into everything a page displays.
// It has no knowledge of HTTP or terminals.
package view

import (
	"errors"
	"fmt"

	"github.com/pivolan/mbti_top10/domain/models"
	"github.com/pivolan/mbti_top10/plot"
	"github.com/pivolan/mbti_top10/ranking"
	"github.com/pivolan/mbti_top10/report"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// MissingDataText is shown when there is nothing to load.
const MissingDataText = "A data file is required. Please upload a CSV file."

type Notice struct {
	Level Level
	Text  string
}

// State is the input of one render cycle.
type State struct {
	Dataset  *models.Dataset
	Source   string
	Category models.Category
	LoadErr  error
	// Limit defaults to ranking.DefaultLimit.
	Limit int
}

// View is the output of one render cycle. When Halted is set only the notice
// is meaningful.
type View struct {
	Notice     Notice
	Halted     bool
	Category   models.Category
	Categories []models.Category
	Entries    []models.RankedEntry
	Chart      plot.ChartSpec
	Table      report.Table
}

// Render is a pure function of s.
func Render(s State) View {
	v := View{Category: s.Category, Categories: models.Categories()}

	switch {
	case errors.Is(s.LoadErr, models.ErrMissingData), s.LoadErr == nil && s.Dataset == nil:
		return halt(v, LevelWarning, MissingDataText)
	case s.LoadErr != nil:
		return halt(v, LevelError, fmt.Sprintf("Could not read the data file: %v", s.LoadErr))
	}

	limit := s.Limit
	if limit <= 0 {
		limit = ranking.DefaultLimit
	}
	entries, err := ranking.SelectTop(s.Dataset, s.Category, limit)
	if err != nil {
		return halt(v, LevelError, err.Error())
	}

	v.Notice = Notice{Level: LevelSuccess, Text: fmt.Sprintf("Loaded %s.", s.Source)}
	v.Entries = entries
	v.Chart = plot.BuildBarChart(s.Category, entries)
	v.Table = report.BuildTable(s.Category, entries)
	return v
}

func halt(v View, level Level, text string) View {
	v.Notice = Notice{Level: level, Text: text}
	v.Halted = true
	return v
}

// Failed is a halted view for problems found before a render cycle starts,
// such as an unknown type code or a rejected upload.
func Failed(err error) View {
	return halt(View{Categories: models.Categories()}, LevelError, err.Error())
}
