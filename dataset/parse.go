package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pivolan/mbti_top10/domain/models"
)

// Parse reads a comma separated table whose first row is the header.
// Empty, non numeric or infinite type cells become NaN. When a country appears more
// than once only its first row is kept.
func Parse(r io.Reader) (*models.Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: no header row", models.ErrLoad)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrLoad, err)
	}
	layout, err := analyzeHeader(header)
	if err != nil {
		return nil, err
	}

	ds := &models.Dataset{}
	seen := map[string]bool{}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrLoad, err)
		}

		row := models.Row{Country: strings.TrimSpace(record[layout.country])}
		if seen[row.Country] {
			ds.Duplicates++
			continue
		}
		seen[row.Country] = true
		for c, i := range layout.categories {
			row.Values[c] = parseValue(record[i])
		}
		ds.Rows = append(ds.Rows, row)
	}
	return ds, nil
}

func parseValue(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
