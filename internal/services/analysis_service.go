package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ogacli/internal/analytics"
	"ogacli/internal/config"
	"ogacli/internal/errors"
	"ogacli/internal/pipeline"
)

// AnalysisService runs the cleaning pipeline and serves aggregation
// queries over the resulting canonical table.
type AnalysisService struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	logger   *slog.Logger

	mu       sync.RWMutex
	analyzer *analytics.Analyzer
	result   *pipeline.Result
	loadedAt time.Time
}

// NewAnalysisService creates an analysis service. The service starts
// empty; call Load before serving queries.
func NewAnalysisService(cfg *config.Config, p *pipeline.Pipeline, logger *slog.Logger) *AnalysisService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalysisService{
		cfg:      cfg,
		pipeline: p,
		logger:   logger,
	}
}

// Load runs the pipeline over the configured sources and swaps in the
// new snapshot. Concurrent readers keep the previous snapshot until the
// swap completes.
func (s *AnalysisService) Load(ctx context.Context) error {
	start := time.Now()
	s.logger.InfoContext(ctx, "loading canonical table",
		slog.String("athletes", s.cfg.Dataset.AthletesPath),
		slog.String("regions", s.cfg.Dataset.RegionsPath))

	result, err := s.pipeline.Run(ctx, s.cfg.Dataset.AthletesPath, s.cfg.Dataset.RegionsPath)
	if err != nil {
		return fmt.Errorf("run pipeline: %w", err)
	}
	analyzer := analytics.New(result.Canonical, s.logger)

	s.mu.Lock()
	s.result = result
	s.analyzer = analyzer
	s.loadedAt = time.Now()
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "canonical table loaded",
		slog.Int("rows", len(result.Canonical)),
		slog.Duration("elapsed", time.Since(start)))
	return nil
}

// Analyzer returns the current analyzer, or a NotFound error when no
// snapshot has been loaded yet.
func (s *AnalysisService) Analyzer() (*analytics.Analyzer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.analyzer == nil {
		return nil, errors.NewNotFoundError("canonical table")
	}
	return s.analyzer, nil
}

// Result returns the current pipeline result, or a NotFound error when
// no snapshot has been loaded yet.
func (s *AnalysisService) Result() (*pipeline.Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return nil, errors.NewNotFoundError("canonical table")
	}
	return s.result, nil
}

// Status describes the loaded snapshot for health reporting.
type Status struct {
	Loaded       int       `json:"loaded"`
	Discontinued int       `json:"discontinued_sports"`
	DroppedNOCs  int       `json:"dropped_nocs"`
	LoadedAt     time.Time `json:"loaded_at"`
	Ready        bool      `json:"ready"`
}

// Status reports snapshot readiness and headline counts.
func (s *AnalysisService) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.result == nil {
		return Status{}
	}
	return Status{
		Loaded:       len(s.result.Canonical),
		Discontinued: len(s.result.Discontinued),
		DroppedNOCs:  len(s.result.DroppedByNOC),
		LoadedAt:     s.loadedAt,
		Ready:        true,
	}
}
