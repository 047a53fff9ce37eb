package correct

import (
	"strings"

	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/refdata"
	"github.com/agentstation/scrub/pkg/tabular"
)

// formatPhone strips everything but digits, left-pads with zeros to
// the normalized length and formats the last eight digits as
// XXXX-XXXX. Values with no digits at all get the fallback number.
func formatPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if digits == "" {
		return constants.PhoneFallback
	}
	if n := constants.PhoneDigits - len(digits); n > 0 {
		digits = strings.Repeat("0", n) + digits
	}

	last := digits[len(digits)-constants.PhoneDigits:]
	return last[:4] + "-" + last[4:]
}

// normalizeVocabulary restores the canonical spelling when the value
// matches a vocabulary entry under normalization, and falls back to
// the vocabulary's default otherwise.
func normalizeVocabulary(s string, set *refdata.Set, fallback string) tabular.Value {
	if canonical, ok := set.Canonical(s); ok {
		return tabular.String(canonical)
	}
	return tabular.String(fallback)
}

// repairLoyaltyPoints clamps negative balances to zero and nulls out
// unparseable ones.
func repairLoyaltyPoints(issues []detect.Issue) (tabular.Value, bool) {
	for _, issue := range issues {
		switch issue.Kind {
		case detect.KindImplausible:
			return tabular.Number(constants.LoyaltyMin), true
		case detect.KindMalformed:
			return tabular.Missing(), true
		}
	}
	return tabular.Value{}, false
}

// applySuggestion adopts the canonical value detection suggested for a
// non-canonical country or city. Issues without a suggestion stay
// unresolved and surface again on the next pass.
func applySuggestion(issues []detect.Issue) (tabular.Value, bool) {
	for _, issue := range issues {
		if issue.Kind == detect.KindNonCanonical && issue.Suggestion != "" {
			return tabular.String(issue.Suggestion), true
		}
	}
	return tabular.Value{}, false
}
