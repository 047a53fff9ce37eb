// Package tabular provides the dataset model shared by every repair stage:
// typed cell values, rows with stable synthetic identifiers, ordered
// datasets, and a CSV codec.
package tabular

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Kind classifies a parsed cell value.
type Kind string

const (
	// KindMissing marks a cell with no usable value.
	KindMissing Kind = "missing"
	// KindString marks a free-text value.
	KindString Kind = "string"
	// KindNumber marks a numeric value.
	KindNumber Kind = "number"
)

// missingSentinels are the raw spellings treated as absent values,
// compared case-insensitively after trimming.
var missingSentinels = map[string]bool{
	"":     true,
	"na":   true,
	"n/a":  true,
	"#n/a": true,
	"nan":  true,
	"null": true,
	"none": true,
}

// Value is a single cell value tagged with its parsed kind.
// The zero value is a missing cell.
type Value struct {
	kind Kind
	text string
	num  float64
}

// Missing returns a value representing an absent cell.
func Missing() Value {
	return Value{kind: KindMissing}
}

// String returns a free-text value. The text is stored as given.
func String(s string) Value {
	return Value{kind: KindString, text: s}
}

// Number returns a numeric value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// Parse trims the raw cell text and classifies it. Empty cells and
// common not-available sentinels parse as missing, numeric text parses
// as a number, and everything else is kept as a string.
func Parse(raw string) Value {
	s := strings.TrimSpace(raw)
	if missingSentinels[strings.ToLower(s)] {
		return Missing()
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(f) {
			return Missing()
		}
		if !math.IsInf(f, 0) {
			return Number(f)
		}
	}
	return String(s)
}

// Kind returns the value's classification.
func (v Value) Kind() Kind {
	if v.kind == "" {
		return KindMissing
	}
	return v.kind
}

// IsMissing reports whether the cell has no usable value.
func (v Value) IsMissing() bool {
	return v.Kind() == KindMissing
}

// String returns the text form of the value. Numbers format without a
// fractional part when they carry none, so "34" survives a round trip
// as "34". Missing values format as the empty string.
func (v Value) String() string {
	switch v.Kind() {
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return v.text
	default:
		return ""
	}
}

// Float returns the numeric value and whether the cell holds a number.
func (v Value) Float() (float64, bool) {
	if v.Kind() != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Int returns the value as an integer and whether the cell holds a
// whole number.
func (v Value) Int() (int, bool) {
	f, ok := v.Float()
	if !ok || math.Trunc(f) != f {
		return 0, false
	}
	return int(f), true
}

// Norm returns the normalized comparison key for the value: lower-cased
// text with runs of whitespace collapsed to single spaces. Missing
// values normalize to the empty string.
func (v Value) Norm() string {
	return Normalize(v.String())
}

// Equal reports whether two values share a kind and a text form.
func (v Value) Equal(other Value) bool {
	return v.Kind() == other.Kind() && v.String() == other.String()
}

// Normalize lower-cases s, trims it, and collapses internal whitespace.
// Matching and duplicate detection compare these keys rather than raw
// text.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// TitleCase returns s word-by-word title-cased, the canonical form for
// name columns. Validation and repair share this so a repaired name is
// never re-flagged.
func TitleCase(s string) string {
	return cases.Title(language.English).String(s)
}
