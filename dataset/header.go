package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/pivolan/mbti_top10/domain/models"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
	regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
	regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
	regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s\d{2}:\d{2}:\d{2}$`),
}

// columnLayout holds the position of the country column and of every
// category column inside a record.
type columnLayout struct {
	country    int
	categories [models.CategoryCount]int
}

// analyzeHeader checks that the first record is a header and locates the
// required columns in it.
func analyzeHeader(firstRow []string) (*columnLayout, error) {
	if len(firstRow) == 0 {
		return nil, fmt.Errorf("%w: empty header", models.ErrLoad)
	}
	headers := make([]string, len(firstRow))
	for i, field := range firstRow {
		headers[i] = cleanHeaderName(field, i)
	}
	headers = validateHeaders(headers)

	index := make(map[string]int, len(headers))
	for i, h := range headers {
		index[h] = i
	}
	layout := &columnLayout{}
	var missing []string
	country, ok := index[models.CountryColumn]
	if !ok {
		missing = append(missing, models.CountryColumn)
	}
	layout.country = country
	for _, c := range models.Categories() {
		i, ok := index[c.String()]
		if !ok {
			missing = append(missing, c.String())
			continue
		}
		layout.categories[c] = i
	}
	if len(missing) == 0 {
		return layout, nil
	}

	// only explain a missing column by a headerless file when the row
	// really reads like values
	if !looksLikeHeaderRow(firstRow) {
		return nil, fmt.Errorf("%w: first row looks like data, a header row is required", models.ErrLoad)
	}
	return nil, fmt.Errorf("%w: missing columns %s", models.ErrLoad, strings.Join(missing, ", "))
}

// looksLikeHeaderRow reports whether at least half of the fields read like
// column names.
func looksLikeHeaderRow(row []string) bool {
	headerLikeCount := 0
	for _, field := range row {
		if isLikelyHeader(strings.TrimPrefix(field, "\ufeff")) {
			headerLikeCount++
		}
	}
	return float64(headerLikeCount)/float64(len(row)) >= 0.5
}

// cleanHeaderName trims spaces and a leading byte order mark. Names are kept
// case sensitive since columns are matched exactly.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	if header == "" {
		return generateColumnName(index)
	}
	return header
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// isLikelyHeader reports whether text reads like a column name rather than a value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, pattern := range datePatterns {
		if pattern.MatchString(text) {
			return false
		}
	}

	letters, total := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
			total++
		case unicode.IsSpace(r):
		default:
			total++
		}
	}
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}

// validateHeaders renames repeated headers with a numeric suffix, so the
// first column with a given name is the one that gets used.
func validateHeaders(headers []string) []string {
	seen := make(map[string]bool, len(headers))
	result := make([]string, len(headers))
	for i, header := range headers {
		name := header
		for counter := 1; seen[name]; counter++ {
			name = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}
