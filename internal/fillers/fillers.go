// Package fillers constructs the external fill capabilities the
// enrichment engine can use, keyed by name.
package fillers

import (
	"sort"

	"github.com/agentstation/scrub/internal/fillers/gemini"
	"github.com/agentstation/scrub/pkg/enrich"
	"github.com/agentstation/scrub/pkg/errors"
)

// None is the filler name that disables enrichment fills.
const None = "none"

// factories maps filler names to constructors. A nil filler means
// fills are disabled; derivation still runs.
var factories = map[string]func() enrich.Filler{
	None:     func() enrich.Filler { return nil },
	"gemini": func() enrich.Filler { return gemini.New() },
}

// New returns the filler registered under name.
func New(name string) (enrich.Filler, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, &errors.ValidationError{
			Field:   "filler",
			Value:   name,
			Message: "unknown filler, expected one of: " + names(),
		}
	}
	return factory(), nil
}

// Names returns the registered filler names in sorted order.
func Names() []string {
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func names() string {
	joined := ""
	for i, name := range Names() {
		if i > 0 {
			joined += ", "
		}
		joined += name
	}
	return joined
}
