package scrub

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/scrub/pkg/constants"
	"github.com/agentstation/scrub/pkg/correct"
	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/enrich"
	"github.com/agentstation/scrub/pkg/errors"
	"github.com/agentstation/scrub/pkg/pipeline"
	"github.com/agentstation/scrub/pkg/tabular"
)

// config collects the options a Scrub is built from.
type config struct {
	dataset          *tabular.Dataset
	file             string
	filler           enrich.Filler
	fillTimeout      time.Duration
	maxIterations    int
	countryThreshold float64
	cityThreshold    float64
	hooks            []pipeline.PassHook
	logger           *zerolog.Logger
}

func defaultConfig() *config {
	return &config{
		fillTimeout:      constants.DefaultFillTimeout,
		maxIterations:    constants.DefaultMaxIterations,
		countryThreshold: constants.CountrySimilarityThreshold,
		cityThreshold:    constants.CitySimilarityThreshold,
	}
}

// Option configures a Scrub instance.
type Option func(*config) error

func (c *config) apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// load resolves the dataset source.
func (c *config) load() (*tabular.Dataset, error) {
	switch {
	case c.dataset != nil:
		return c.dataset, nil
	case c.file != "":
		return tabular.DecodeFile(c.file)
	default:
		return nil, &errors.ValidationError{
			Field:   "dataset",
			Message: "a dataset source is required, use WithDataset or WithFile",
		}
	}
}

// detector builds the detection engine the configured thresholds
// imply.
func (c *config) detector() *detect.Engine {
	return detect.New(
		detect.WithCountryThreshold(c.countryThreshold),
		detect.WithCityThreshold(c.cityThreshold),
	)
}

// pipelineOptions translates the config into pipeline options.
func (c *config) pipelineOptions() []pipeline.Option {
	opts := []pipeline.Option{
		pipeline.WithDetector(c.detector()),
		pipeline.WithCorrector(correct.New()),
		pipeline.WithEnricher(enrich.New(
			enrich.WithFiller(c.filler),
			enrich.WithTimeout(c.fillTimeout),
		)),
		pipeline.WithMaxIterations(c.maxIterations),
	}
	for _, hook := range c.hooks {
		opts = append(opts, pipeline.WithPassHook(hook))
	}
	return opts
}

// WithDataset uses an already loaded dataset.
func WithDataset(dataset *tabular.Dataset) Option {
	return func(c *config) error {
		if dataset == nil {
			return &errors.ValidationError{Field: "dataset", Message: "cannot be nil"}
		}
		c.dataset = dataset
		return nil
	}
}

// WithFile loads the dataset from a CSV file.
func WithFile(path string) Option {
	return func(c *config) error {
		if path == "" {
			return &errors.ValidationError{Field: "file", Message: "cannot be empty"}
		}
		c.file = path
		return nil
	}
}

// WithFiller sets the external fill capability used by enrichment.
// Without one, enrichment skips fills and only derives columns.
func WithFiller(filler enrich.Filler) Option {
	return func(c *config) error {
		c.filler = filler
		return nil
	}
}

// WithFillTimeout bounds each enrichment call.
func WithFillTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout <= 0 {
			return &errors.ValidationError{Field: "fill-timeout", Message: "must be positive"}
		}
		c.fillTimeout = timeout
		return nil
	}
}

// WithMaxIterations sets the repair loop's iteration budget.
func WithMaxIterations(n int) Option {
	return func(c *config) error {
		c.maxIterations = n
		return nil
	}
}

// WithCountryThreshold overrides the minimum similarity for country
// corrections.
func WithCountryThreshold(threshold float64) Option {
	return thresholdOption("country-threshold", func(c *config) { c.countryThreshold = threshold }, threshold)
}

// WithCityThreshold overrides the minimum similarity for city
// corrections.
func WithCityThreshold(threshold float64) Option {
	return thresholdOption("city-threshold", func(c *config) { c.cityThreshold = threshold }, threshold)
}

func thresholdOption(field string, set func(*config), threshold float64) Option {
	return func(c *config) error {
		if threshold < 0 || threshold > 1 {
			return &errors.ValidationError{
				Field:   field,
				Value:   threshold,
				Message: "must be in [0, 1]",
			}
		}
		set(c)
		return nil
	}
}

// WithLogger routes the run's log events to the given logger instead
// of the package default.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return &errors.ValidationError{Field: "logger", Message: "cannot be nil"}
		}
		c.logger = logger
		return nil
	}
}

// WithPassHook registers a hook observing each stage of the repair
// loop.
func WithPassHook(hook pipeline.PassHook) Option {
	return func(c *config) error {
		if hook != nil {
			c.hooks = append(c.hooks, hook)
		}
		return nil
	}
}
