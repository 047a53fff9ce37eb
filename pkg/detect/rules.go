package detect

import (
	"regexp"

	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/refdata"
	"github.com/agentstation/scrub/pkg/tabular"
)

var (
	// emailPattern is the required local@domain shape.
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

	// phonePattern is the normalized phone shape: 3 or 4 digits, a
	// dash, then 4 digits.
	phonePattern = regexp.MustCompile(`^\d{3,4}-\d{4}$`)
)

// checkName flags name values that are not already in canonical title
// case. Repair title-cases exactly this way, so a repaired name passes
// the next pass.
func checkName(v tabular.Value) []Issue {
	s := v.String()
	if tabular.TitleCase(s) != s {
		return []Issue{{Kind: KindMalformed, Value: s}}
	}
	return nil
}

func checkEmail(v tabular.Value) []Issue {
	if !emailPattern.MatchString(v.String()) {
		return []Issue{{Kind: KindMalformed, Value: v.String()}}
	}
	return nil
}

func checkPhone(v tabular.Value) []Issue {
	if !phonePattern.MatchString(v.String()) {
		return []Issue{{Kind: KindMalformed, Value: v.String()}}
	}
	return nil
}

// checkVocabulary flags values outside a closed vocabulary. Matching
// is exact: case drift is a finding so repair can restore the
// canonical spelling.
func checkVocabulary(v tabular.Value, set *refdata.Set) []Issue {
	if !set.ContainsExact(v.String()) {
		return []Issue{{Kind: KindMalformed, Value: v.String()}}
	}
	return nil
}

// checkAge requires a whole number in the plausible human range.
// Unparseable values are malformed; parseable values out of range are
// implausible.
func checkAge(v tabular.Value) []Issue {
	n, ok := v.Int()
	if !ok {
		return []Issue{{Kind: KindMalformed, Value: v.String()}}
	}
	if n <= constants.AgeMin || n > constants.AgeMax {
		return []Issue{{Kind: KindImplausible, Value: v.String()}}
	}
	return nil
}

// checkLoyaltyPoints requires a non-negative number.
func checkLoyaltyPoints(v tabular.Value) []Issue {
	f, ok := v.Float()
	if !ok {
		return []Issue{{Kind: KindMalformed, Value: v.String()}}
	}
	if f < constants.LoyaltyMin {
		return []Issue{{Kind: KindImplausible, Value: v.String()}}
	}
	return nil
}

// checkCanonical flags values with no normalized exact match in their
// reference set. When the best fuzzy match clears the threshold the
// issue carries it as a suggestion; otherwise the suggestion stays
// empty and the value is left for enrichment or manual review.
func checkCanonical(v tabular.Value, set *refdata.Set, threshold float64) []Issue {
	if set.Contains(v.String()) {
		return nil
	}

	issue := Issue{Kind: KindNonCanonical, Value: v.String()}
	if match, ok := set.BestMatch(v.String()); ok && match.Score >= threshold {
		issue.Suggestion = match.Canonical
	}
	return []Issue{issue}
}
