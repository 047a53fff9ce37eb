// Package scrub repairs messy tabular customer records. A Scrub wraps
// one dataset and the repair pipeline around it: detection finds
// issues, correction fixes what has a deterministic repair, enrichment
// fills the rest through an external capability, and the loop repeats
// until the data converges or the iteration budget runs out.
package scrub

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/pipeline"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Scrub repairs a customer dataset.
type Scrub interface {
	// Dataset returns the current dataset. Before Repair this is the
	// loaded input; afterwards it is the repaired version.
	Dataset() *tabular.Dataset

	// Detect runs a single read-only detection pass over the current
	// dataset.
	Detect(ctx context.Context) *detect.Report

	// Repair runs the full convergence loop and advances the current
	// dataset to the result.
	Repair(ctx context.Context) (*pipeline.Result, error)
}

// scrub is the internal implementation of the Scrub interface.
type scrub struct {
	mu       sync.RWMutex
	dataset  *tabular.Dataset
	detector *detect.Engine
	pipeline *pipeline.Pipeline
	logger   *zerolog.Logger
}

// New creates a Scrub instance. A dataset source is required: either
// WithDataset or WithFile.
func New(opts ...Option) (Scrub, error) {
	config := defaultConfig()
	if err := config.apply(opts...); err != nil {
		return nil, err
	}

	dataset, err := config.load()
	if err != nil {
		return nil, err
	}

	p, err := pipeline.New(config.pipelineOptions()...)
	if err != nil {
		return nil, err
	}

	return &scrub{
		dataset:  dataset,
		detector: config.detector(),
		pipeline: p,
		logger:   config.logger,
	}, nil
}
