package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingData is returned when neither the default file nor an upload is available.
	ErrMissingData = errors.New("data file required")
	// ErrLoad marks content that cannot be read as a country/type table.
	ErrLoad = errors.New("cannot load dataset")
	// ErrInvalidCategory marks a type code outside of the sixteen known ones.
	ErrInvalidCategory = errors.New("invalid personality type")
)

// CountryColumn is the identifier column every dataset must carry.
const CountryColumn = "Country"

// Category is one of the sixteen personality type codes. The zero value is INFJ.
type Category uint8

const (
	INFJ Category = iota
	ISFJ
	INTP
	ISFP
	ENTP
	INFP
	ENTJ
	INTJ
	ESFP
	ESTJ
	ENFP
	ESTP
	ISTJ
	ENFJ
	ESFJ
	ISTP

	CategoryCount = 16
)

var categoryCodes = [CategoryCount]string{
	"INFJ", "ISFJ", "INTP", "ISFP", "ENTP", "INFP", "ENTJ", "INTJ",
	"ESFP", "ESTJ", "ENFP", "ESTP", "ISTJ", "ENFJ", "ESFJ", "ISTP",
}

// Categories returns every category in selection order.
func Categories() []Category {
	list := make([]Category, CategoryCount)
	for i := range list {
		list[i] = Category(i)
	}
	return list
}

// ParseCategory converts a type code such as "ENFP" into a Category.
// Surrounding spaces and letter case are ignored.
func ParseCategory(code string) (Category, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for i, c := range categoryCodes {
		if c == code {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidCategory, code)
}

func (c Category) Valid() bool {
	return c < CategoryCount
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", uint8(c))
	}
	return categoryCodes[c]
}

// Row is one country with a proportion for every category.
// Missing values are stored as NaN.
type Row struct {
	Country string
	Values  [CategoryCount]float64
}

func (r Row) Value(c Category) float64 {
	return r.Values[c]
}

// Dataset is an immutable, ordered table of rows.
type Dataset struct {
	Rows []Row
	// Duplicates counts rows dropped because their country was already present.
	Duplicates int
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Rows)
}

// RankedEntry is one element of a Top-N result.
type RankedEntry struct {
	Country string
	Value   float64
}
