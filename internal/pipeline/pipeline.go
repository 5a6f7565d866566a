package pipeline

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"ogacli/internal/config"
	"ogacli/internal/dataset"
	"ogacli/internal/infrastructure"
	"ogacli/pkg/contracts/domain"
)

// StageCount records the row flow through one stage.
type StageCount struct {
	Stage   string        `json:"stage"`
	RowsIn  int           `json:"rows_in"`
	RowsOut int           `json:"rows_out"`
	Elapsed time.Duration `json:"elapsed"`
}

// Result is the outcome of one pipeline run.
type Result struct {
	// Canonical is the cleaned table. Built once, immutable afterwards;
	// every aggregation is a pure read over it.
	Canonical domain.Table

	// Discontinued maps each removed sport to its last inclusion year.
	Discontinued map[string]int

	// DroppedByNOC counts the rows the inner join excluded, per NOC code.
	DroppedByNOC map[string]int

	// Stages holds per-stage row counts and durations, in execution order.
	Stages []StageCount
}

// Pipeline builds the canonical athlete-event table from the two raw
// sources.
type Pipeline struct {
	cfg     config.PipelineConfig
	loader  *dataset.Loader
	logger  *slog.Logger
	metrics *infrastructure.PipelineMetrics
	tracer  trace.Tracer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the pipeline logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// WithMetrics wires the OTel pipeline instruments.
func WithMetrics(metrics *infrastructure.PipelineMetrics) Option {
	return func(p *Pipeline) { p.metrics = metrics }
}

// WithTracer enables a span per run.
func WithTracer(tracer trace.Tracer) Option {
	return func(p *Pipeline) { p.tracer = tracer }
}

// New creates a pipeline over the given loader.
func New(cfg config.PipelineConfig, loader *dataset.Loader, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:    cfg,
		loader: loader,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes the full cleaning sequence and returns the canonical table.
// The run either completes or fails outright; there is no partial result.
func (p *Pipeline) Run(ctx context.Context, athletesPath, regionsPath string) (*Result, error) {
	if p.tracer != nil {
		var span trace.Span
		ctx, span = p.tracer.Start(ctx, "pipeline.run")
		defer span.End()
	}

	result := &Result{}

	// Load. The two sources are read once, untransformed.
	start := time.Now()
	athletes, err := p.loader.LoadAthletes(ctx, athletesPath)
	if err != nil {
		return nil, err
	}
	regions, err := p.loader.LoadRegions(ctx, regionsPath)
	if err != nil {
		return nil, err
	}
	p.endStage(ctx, result, "load", len(athletes), len(athletes), start)

	// Join on NOC and prune team/notes.
	start = time.Now()
	joined, dropped := JoinRegions(athletes, regions)
	p.endStage(ctx, result, "join", len(athletes), len(joined), start)

	result.DroppedByNOC = make(map[string]int)
	for _, r := range dropped {
		result.DroppedByNOC[r.NOC]++
	}

	// The join silently excluding rows is only acceptable if every dropped
	// row belongs to a sport the next stage removes anyway. Verify that
	// against the raw records rather than assuming it.
	if err := ValidateDropped(ctx, p.logger, dropped, lastInclusionOfRecords(athletes), p.cfg.CutoffYear, p.cfg.OrphanTolerance); err != nil {
		return nil, err
	}

	// Remove sports no longer on the modern program.
	start = time.Now()
	filtered, discontinued := FilterDiscontinued(joined, p.cfg.CutoffYear)
	p.endStage(ctx, result, "filter_discontinued", len(joined), len(filtered), start)
	result.Discontinued = discontinued

	// Patch the known null-region NOC codes.
	start = time.Now()
	patched, err := PatchRegions(filtered, p.cfg.RegionPatches)
	if err != nil {
		return nil, err
	}
	p.endStage(ctx, result, "patch_regions", len(filtered), len(patched), start)

	// Make "did not medal" an explicit category.
	start = time.Now()
	canonical := NormalizeMedals(patched)
	p.endStage(ctx, result, "normalize_medals", len(patched), len(canonical), start)

	if err := CheckInvariants(canonical); err != nil {
		return nil, err
	}

	result.Canonical = canonical
	p.metrics.RecordCanonicalSize(ctx, len(canonical))

	p.logger.InfoContext(ctx, "pipeline completed",
		slog.Int("canonical_rows", len(canonical)),
		slog.Int("dropped_rows", len(dropped)),
		slog.Int("discontinued_sports", len(discontinued)))

	return result, nil
}

// endStage logs and records one completed stage.
func (p *Pipeline) endStage(ctx context.Context, result *Result, stage string, rowsIn, rowsOut int, start time.Time) {
	elapsed := time.Since(start)

	result.Stages = append(result.Stages, StageCount{
		Stage:   stage,
		RowsIn:  rowsIn,
		RowsOut: rowsOut,
		Elapsed: elapsed,
	})
	p.metrics.RecordStage(ctx, stage, rowsIn, rowsOut, elapsed)

	p.logger.InfoContext(ctx, "pipeline stage completed",
		slog.String("stage", stage),
		slog.Int("rows_in", rowsIn),
		slog.Int("rows_out", rowsOut),
		slog.Duration("elapsed", elapsed))
}
