// Package refdata ships the canonical reference sets used to validate
// and repair customer records: country and city spellings plus the
// closed gender and marital-status vocabularies. Sets are immutable
// once built and safe for concurrent use.
package refdata

import (
	"fmt"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"

	"github.com/agentstation/scrub/pkg/tabular"
)

// Set is an immutable named collection of canonical entries. Lookups
// compare normalized keys, so case and stray whitespace never affect a
// match.
type Set struct {
	name    string
	entries []entry
	byKey   map[string]string
	metric  *metrics.Levenshtein
}

type entry struct {
	canonical string
	key       string
}

// Match is a fuzzy lookup result: the canonical entry and its
// similarity to the query in [0, 1].
type Match struct {
	Canonical string
	Score     float64
}

// New builds a set from canonical values. Values must be non-empty and
// distinct under normalization.
func New(name string, values ...string) (*Set, error) {
	s := &Set{
		name:    name,
		entries: make([]entry, 0, len(values)),
		byKey:   make(map[string]string, len(values)),
		metric:  metrics.NewLevenshtein(),
	}
	for _, v := range values {
		key := tabular.Normalize(v)
		if key == "" {
			return nil, fmt.Errorf("set %s: empty value", name)
		}
		if _, exists := s.byKey[key]; exists {
			return nil, fmt.Errorf("set %s: duplicate value %s", name, v)
		}
		s.entries = append(s.entries, entry{canonical: v, key: key})
		s.byKey[key] = v
	}
	return s, nil
}

// Name returns the set's name.
func (s *Set) Name() string {
	return s.name
}

// Len returns the number of canonical entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Values returns the canonical entries in authored order.
func (s *Set) Values() []string {
	out := make([]string, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.canonical
	}
	return out
}

// Contains reports whether v matches a canonical entry exactly under
// normalization.
func (s *Set) Contains(v string) bool {
	_, ok := s.byKey[tabular.Normalize(v)]
	return ok
}

// ContainsExact reports whether v equals a canonical spelling byte for
// byte. Closed vocabularies are validated this way so case drift still
// gets repaired.
func (s *Set) ContainsExact(v string) bool {
	for _, e := range s.entries {
		if e.canonical == v {
			return true
		}
	}
	return false
}

// Canonical returns the canonical spelling for v when v matches an
// entry exactly under normalization.
func (s *Set) Canonical(v string) (string, bool) {
	canonical, ok := s.byKey[tabular.Normalize(v)]
	return canonical, ok
}

// BestMatch returns the entry most similar to v by normalized
// Levenshtein similarity. Ties go to the shortest canonical entry and
// then to lexical order, so the result never depends on authored
// order. The second return is false when the set is empty or v
// normalizes to nothing.
func (s *Set) BestMatch(v string) (Match, bool) {
	key := tabular.Normalize(v)
	if key == "" || len(s.entries) == 0 {
		return Match{}, false
	}

	var best Match
	found := false
	for _, e := range s.entries {
		candidate := Match{
			Canonical: e.canonical,
			Score:     strutil.Similarity(key, e.key, s.metric),
		}
		if !found || better(candidate, best) {
			best = candidate
			found = true
		}
	}
	return best, found
}

func better(candidate, best Match) bool {
	if candidate.Score != best.Score {
		return candidate.Score > best.Score
	}
	if len(candidate.Canonical) != len(best.Canonical) {
		return len(candidate.Canonical) < len(best.Canonical)
	}
	return candidate.Canonical < best.Canonical
}
