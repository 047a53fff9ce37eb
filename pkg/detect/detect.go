// Package detect finds data quality issues in customer datasets. The
// engine reads and never writes: malformed or missing values are
// findings, not failures, and an empty report is the signal that the
// dataset has converged.
package detect

import (
	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/logging"
	"github.com/agentstation/scrub/pkg/refdata"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Engine validates datasets against field rules and canonical
// reference sets.
type Engine struct {
	countries        *refdata.Set
	cities           *refdata.Set
	genders          *refdata.Set
	maritalStatuses  *refdata.Set
	countryThreshold float64
	cityThreshold    float64
}

// Option configures a detection engine.
type Option func(*Engine)

// WithCountries overrides the canonical country set.
func WithCountries(set *refdata.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.countries = set
		}
	}
}

// WithCities overrides the canonical city set.
func WithCities(set *refdata.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.cities = set
		}
	}
}

// WithGenders overrides the gender vocabulary.
func WithGenders(set *refdata.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.genders = set
		}
	}
}

// WithMaritalStatuses overrides the marital-status vocabulary.
func WithMaritalStatuses(set *refdata.Set) Option {
	return func(e *Engine) {
		if set != nil {
			e.maritalStatuses = set
		}
	}
}

// WithCountryThreshold overrides the minimum similarity for a country
// suggestion.
func WithCountryThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.countryThreshold = threshold
	}
}

// WithCityThreshold overrides the minimum similarity for a city
// suggestion.
func WithCityThreshold(threshold float64) Option {
	return func(e *Engine) {
		e.cityThreshold = threshold
	}
}

// New creates a detection engine with the embedded reference data and
// default thresholds.
func New(opts ...Option) *Engine {
	e := &Engine{
		countries:        refdata.Countries(),
		cities:           refdata.Cities(),
		genders:          refdata.Genders(),
		maritalStatuses:  refdata.MaritalStatuses(),
		countryThreshold: constants.CountrySimilarityThreshold,
		cityThreshold:    constants.CitySimilarityThreshold,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Detect validates every recognized cell and flags duplicate rows.
// The dataset is never mutated; running Detect on a dataset that
// produced an empty report produces an empty report again.
func (e *Engine) Detect(d *tabular.Dataset) *Report {
	report := NewReport()
	columns := d.Columns()

	for _, row := range d.Rows() {
		for _, column := range columns {
			canonical, ok := tabular.Canonical(column)
			if !ok {
				continue
			}
			for _, issue := range e.check(canonical, row.Get(column)) {
				issue.Column = column
				report.Add(row.ID(), issue)
			}
		}
	}

	// Hash-group rows by normalized fingerprint. The first occurrence
	// of each group is canonical, later occurrences are flagged in
	// dataset order.
	seen := make(map[string]bool, d.Len())
	for _, row := range d.Rows() {
		fingerprint := row.Fingerprint(columns)
		if seen[fingerprint] {
			report.AddDuplicate(row.ID())
			continue
		}
		seen[fingerprint] = true
	}

	logging.Debug().
		Int("rows", d.Len()).
		Int("issues", report.IssueCount()).
		Int("duplicates", len(report.duplicates)).
		Msg("detection pass complete")

	return report
}

// check applies the column's rules to one cell. Rules are independent
// and multiple kinds may co-occur, but a missing cell is only ever
// missing.
func (e *Engine) check(canonical string, v tabular.Value) []Issue {
	if v.IsMissing() {
		return []Issue{{Kind: KindMissing}}
	}

	switch canonical {
	case tabular.ColumnFirstName, tabular.ColumnLastName, tabular.ColumnFullName:
		return checkName(v)
	case tabular.ColumnEmail:
		return checkEmail(v)
	case tabular.ColumnPhone:
		return checkPhone(v)
	case tabular.ColumnGender:
		return checkVocabulary(v, e.genders)
	case tabular.ColumnMaritalStatus:
		return checkVocabulary(v, e.maritalStatuses)
	case tabular.ColumnAge:
		return checkAge(v)
	case tabular.ColumnLoyaltyPoints:
		return checkLoyaltyPoints(v)
	case tabular.ColumnCountry:
		return checkCanonical(v, e.countries, e.countryThreshold)
	case tabular.ColumnCity:
		return checkCanonical(v, e.cities, e.cityThreshold)
	}
	return nil
}
