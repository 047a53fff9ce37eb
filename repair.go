package scrub

import (
	"context"

	"github.com/agentstation/scrub/pkg/detect"
	"github.com/agentstation/scrub/pkg/logging"
	"github.com/agentstation/scrub/pkg/pipeline"
	"github.com/agentstation/scrub/pkg/tabular"
)

// Dataset returns the current dataset.
func (s *scrub) Dataset() *tabular.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Detect runs one read-only detection pass over the current dataset.
func (s *scrub) Detect(_ context.Context) *detect.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.detector.Detect(s.dataset)
}

// Repair runs the convergence loop. On success the current dataset
// advances to the repaired version; the result also carries the final
// report, the change log, and whether the run converged.
func (s *scrub) Repair(ctx context.Context) (*pipeline.Result, error) {
	s.mu.RLock()
	dataset := s.dataset
	s.mu.RUnlock()

	if s.logger != nil {
		ctx = logging.WithLogger(ctx, s.logger)
	}

	result, err := s.pipeline.Run(ctx, dataset)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.dataset = result.Dataset
	s.mu.Unlock()

	return result, nil
}
