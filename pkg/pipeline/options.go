package pipeline

import (
	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/correct"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/enrich"
	"github.com/agentstation/scrub/pkg/errors"
)

type options struct {
	detector      *detect.Engine
	corrector     *correct.Engine
	enricher      *enrich.Engine
	maxIterations int
	hooks         []PassHook
}

func defaultOptions() *options {
	return &options{
		detector:      detect.New(),
		corrector:     correct.New(),
		enricher:      enrich.New(),
		maxIterations: constants.DefaultMaxIterations,
	}
}

// Option configures a pipeline.
type Option func(*options) error

func newOptions(opts ...Option) (*options, error) {
	options := defaultOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// WithDetector replaces the detection engine.
func WithDetector(engine *detect.Engine) Option {
	return func(o *options) error {
		if engine == nil {
			return &errors.ValidationError{Field: "detector", Message: "cannot be nil"}
		}
		o.detector = engine
		return nil
	}
}

// WithCorrector replaces the correction engine.
func WithCorrector(engine *correct.Engine) Option {
	return func(o *options) error {
		if engine == nil {
			return &errors.ValidationError{Field: "corrector", Message: "cannot be nil"}
		}
		o.corrector = engine
		return nil
	}
}

// WithEnricher replaces the enrichment engine.
func WithEnricher(engine *enrich.Engine) Option {
	return func(o *options) error {
		if engine == nil {
			return &errors.ValidationError{Field: "enricher", Message: "cannot be nil"}
		}
		o.enricher = engine
		return nil
	}
}

// WithMaxIterations sets the iteration budget.
func WithMaxIterations(n int) Option {
	return func(o *options) error {
		if n < 1 || n > constants.MaxIterationsLimit {
			return &errors.ValidationError{
				Field:   "max-iterations",
				Value:   n,
				Message: "must be between 1 and 25",
			}
		}
		o.maxIterations = n
		return nil
	}
}

// WithPassHook registers a hook observing each stage of the loop.
// Hooks run in registration order on the loop's goroutine.
func WithPassHook(hook PassHook) Option {
	return func(o *options) error {
		if hook != nil {
			o.hooks = append(o.hooks, hook)
		}
		return nil
	}
}
