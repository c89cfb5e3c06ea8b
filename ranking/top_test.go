package ranking

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pivolan/mbti_top10/domain/models"
)

func datasetOf(cat models.Category, pairs ...interface{}) *models.Dataset {
	ds := &models.Dataset{}
	for i := 0; i < len(pairs); i += 2 {
		row := models.Row{Country: pairs[i].(string)}
		row.Values[cat] = pairs[i+1].(float64)
		ds.Rows = append(ds.Rows, row)
	}
	return ds
}

func TestSelectTop10StableTies(t *testing.T) {
	ds := datasetOf(models.INTP, "A", 0.9, "B", 0.5, "C", 0.9)

	got, err := SelectTop10(ds, models.INTP)
	require.NoError(t, err)
	assert.Equal(t, []models.RankedEntry{
		{Country: "A", Value: 0.9},
		{Country: "C", Value: 0.9},
		{Country: "B", Value: 0.5},
	}, got)
}

func TestSelectTop10FewerRows(t *testing.T) {
	ds := datasetOf(models.ESTJ, "A", 0.1, "B", 0.3, "C", 0.2)

	got, err := SelectTop10(ds, models.ESTJ)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "B", got[0].Country)
	assert.Equal(t, "A", got[2].Country)
}

func TestSelectTop10Empty(t *testing.T) {
	got, err := SelectTop10(&models.Dataset{}, models.INFJ)
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = SelectTop10(nil, models.INFJ)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSelectTop10InvalidCategory(t *testing.T) {
	_, err := SelectTop10(&models.Dataset{}, models.Category(42))
	assert.ErrorIs(t, err, models.ErrInvalidCategory)
}

func TestSelectTopNaNSortsLast(t *testing.T) {
	ds := datasetOf(models.ENFJ, "A", math.NaN(), "B", 0.2, "C", 0.0, "D", math.NaN(), "E", 0.4)

	got, err := SelectTop(ds, models.ENFJ, 10)
	require.NoError(t, err)
	countries := make([]string, len(got))
	for i, e := range got {
		countries[i] = e.Country
	}
	assert.Equal(t, []string{"E", "B", "C", "A", "D"}, countries)
}

func TestSelectTopUsesOnlySelectedColumn(t *testing.T) {
	ds := &models.Dataset{Rows: []models.Row{{Country: "A"}, {Country: "B"}}}
	ds.Rows[0].Values[models.ISTP] = 0.9
	ds.Rows[1].Values[models.ISTP] = 0.1
	ds.Rows[0].Values[models.ISFJ] = 0.1
	ds.Rows[1].Values[models.ISFJ] = 0.9

	got, err := SelectTop10(ds, models.ISFJ)
	require.NoError(t, err)
	assert.Equal(t, "B", got[0].Country)
	assert.Equal(t, 0.9, got[0].Value)
}

func TestSelectTopDoesNotMutateDataset(t *testing.T) {
	ds := datasetOf(models.INFP, "A", 0.1, "B", 0.9)
	_, err := SelectTop10(ds, models.INFP)
	require.NoError(t, err)
	assert.Equal(t, "A", ds.Rows[0].Country)
}

func TestSelectTop10Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for _, size := range []int{0, 1, 9, 10, 11, 50, 200} {
		ds := &models.Dataset{}
		for i := 0; i < size; i++ {
			row := models.Row{Country: fmt.Sprintf("C%03d", i)}
			for c := range row.Values {
				// coarse values so ties are frequent
				row.Values[c] = float64(rnd.Intn(5)) / 10
			}
			ds.Rows = append(ds.Rows, row)
		}
		position := map[string]int{}
		for i, row := range ds.Rows {
			position[row.Country] = i
		}

		for _, cat := range models.Categories() {
			got, err := SelectTop10(ds, cat)
			require.NoError(t, err)

			want := size
			if want > 10 {
				want = 10
			}
			require.Len(t, got, want)

			seen := map[string]bool{}
			for i := range got {
				assert.False(t, seen[got[i].Country], "duplicate %s", got[i].Country)
				seen[got[i].Country] = true
				if i == 0 {
					continue
				}
				assert.GreaterOrEqual(t, got[i-1].Value, got[i].Value)
				if got[i-1].Value == got[i].Value {
					assert.Less(t, position[got[i-1].Country], position[got[i].Country])
				}
			}

			again, err := SelectTop10(ds, cat)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		}
	}
}

func TestMaxValue(t *testing.T) {
	assert.Equal(t, 0.0, MaxValue(nil))
	assert.Equal(t, 0.0, MaxValue([]models.RankedEntry{{Value: math.NaN()}}))
	assert.Equal(t, 0.7, MaxValue([]models.RankedEntry{{Value: math.NaN()}, {Value: 0.2}, {Value: 0.7}}))
	assert.Equal(t, 0.5, MaxValue([]models.RankedEntry{{Value: math.Inf(1)}, {Value: 0.5}, {Value: math.Inf(-1)}}))
}
