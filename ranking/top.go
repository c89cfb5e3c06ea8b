// Package ranking selects the countries with the highest share of a type.
package ranking

import (
	"fmt"
	"math"
	"sort"

	"github.com/pivolan/mbti_top10/domain/models"
)

// DefaultLimit is the number of countries shown for a type.
const DefaultLimit = 10

// SelectTop10 returns the ten countries with the highest value for cat.
func SelectTop10(ds *models.Dataset, cat models.Category) ([]models.RankedEntry, error) {
	return SelectTop(ds, cat, DefaultLimit)
}

// SelectTop projects ds onto (country, cat), sorts it by value descending and
// keeps the first n entries. Equal values keep their dataset order and NaN
// values sort after every number.
func SelectTop(ds *models.Dataset, cat models.Category, n int) ([]models.RankedEntry, error) {
	if !cat.Valid() {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidCategory, cat)
	}
	if n < 0 {
		n = 0
	}

	entries := make([]models.RankedEntry, 0, ds.Len())
	if ds != nil {
		for _, row := range ds.Rows {
			entries = append(entries, models.RankedEntry{Country: row.Country, Value: row.Value(cat)})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return before(entries[i].Value, entries[j].Value)
	})

	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

func before(a, b float64) bool {
	if math.IsNaN(a) {
		return false
	}
	if math.IsNaN(b) {
		return true
	}
	return a > b
}

// MaxValue returns the largest finite value, or 0 when there is none.
func MaxValue(entries []models.RankedEntry) float64 {
	max := 0.0
	found := false
	for _, e := range entries {
		if math.IsNaN(e.Value) || math.IsInf(e.Value, 0) {
			continue
		}
		if !found || e.Value > max {
			max = e.Value
			found = true
		}
	}
	return max
}
