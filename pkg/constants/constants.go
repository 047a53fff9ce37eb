// Package constants provides shared constants used throughout the scrub codebase.
// This includes repair policy values, timeouts, file permissions, and other
// configuration values that should be consistent across the application.
package constants

import "time"

// Pipeline constants bound the convergence loop
const (
	// DefaultMaxIterations is the number of detect/correct/enrich passes the
	// pipeline runs before returning a best-effort result
	DefaultMaxIterations = 3

	// MaxIterationsLimit is the hard upper bound accepted from configuration
	MaxIterationsLimit = 25
)

// Similarity constants govern fuzzy matching against canonical reference sets.
// Scores are normalized Levenshtein similarity in [0, 1]. These are documented
// policy values, not tunable heuristics.
const (
	// CountrySimilarityThreshold is the minimum similarity for a country value
	// to be corrected to its closest canonical entry
	CountrySimilarityThreshold = 0.80

	// CitySimilarityThreshold is the minimum similarity for a city value to be
	// corrected to its closest canonical entry. The city list is short and
	// includes fictional entries, so the looser historical policy is kept.
	CitySimilarityThreshold = 0.40
)

// Plausibility constants bound numeric customer fields
const (
	// AgeMin is the exclusive lower bound for a plausible age
	AgeMin = 0

	// AgeMax is the inclusive upper bound for a plausible age
	AgeMax = 120

	// LoyaltyMin is the minimum valid loyalty points balance
	LoyaltyMin = 0

	// LoyalCustomerPoints is the loyalty points balance at or above which a
	// customer is considered loyal when deriving is_loyal_customer
	LoyalCustomerPoints = 500

	// PhoneDigits is the digit count of a normalized phone number (XXXX-XXXX)
	PhoneDigits = 8
)

// Enrichment constants configure the external fill capability
const (
	// DefaultFillTimeout is the per-field timeout for enrichment calls
	DefaultFillTimeout = 30 * time.Second

	// DefaultEnrichModel is the Gemini model used to fill missing values
	DefaultEnrichModel = "gemini-2.5-flash"

	// DefaultFillerName selects the filler used when none is configured
	DefaultFillerName = "gemini"

	// MaxFillValueLength is the maximum accepted length for a filled value
	MaxFillValueLength = 256
)

// Timeout constants define general operation timeouts
const (
	// RepairTimeout is the timeout for a full repair run including enrichment
	RepairTimeout = 30 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Default path and filename constants
const (
	// DefaultChangelogName is the default filename for the append-only change log
	DefaultChangelogName = "scrub_changes.log"

	// DefaultOutputSuffix is appended to the input filename stem when no
	// output path is given
	DefaultOutputSuffix = "_scrubbed"
)

// Format constants
const (
	// TimeFormatRunHeader is the format used in change log run headers
	TimeFormatRunHeader = time.RFC3339
)

// Vocabulary fallback constants used by deterministic correction
const (
	// GenderFallback replaces gender values outside the vocabulary
	GenderFallback = "Other"

	// MaritalStatusFallback replaces marital status values outside the vocabulary
	MaritalStatusFallback = "Single"

	// PhoneFallback replaces phone values that yield no digits at all
	PhoneFallback = "0000-0000"
)
