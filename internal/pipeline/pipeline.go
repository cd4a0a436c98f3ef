package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/domain"
	"github.com/pdrew32/hurdat2-cyclone-analysis/internal/observability"
)

// BatchExtractor produces composite records from the source, up to batchSize
// at a time, returning io.EOF once the input is exhausted. Headers exposes
// the declared entry counts for post-run validation.
type BatchExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]domain.CompositeRecord, error)
	Headers() []domain.HeaderRecord
}

// Transformer normalizes a composite record into a typed track point.
type Transformer interface {
	Transform(ctx context.Context, rec domain.CompositeRecord) (domain.TrackPoint, error)
}

// BatchLoader writes a batch of track points to the destination.
type BatchLoader interface {
	LoadBatch(ctx context.Context, points []domain.TrackPoint) error
}

// MultiLoader fans each batch out to every sink in order.
type MultiLoader []BatchLoader

func (m MultiLoader) LoadBatch(ctx context.Context, points []domain.TrackPoint) error {
	for _, l := range m {
		if err := l.LoadBatch(ctx, points); err != nil {
			return err
		}
	}
	return nil
}

// Pipeline orchestrates the assemble-normalize-load run over one input file.
type Pipeline struct {
	extractor   BatchExtractor
	transformer Transformer
	loader      BatchLoader
	validator   *Validator
	logger      *slog.Logger
	metrics     *observability.Metrics
	ready       atomic.Bool
	batchSize   int
	strict      bool
	report      []CountCheck
}

// New creates a Pipeline. With strict set, unexpected entry-count mismatches
// fail the run after the input has been fully processed.
func New(e BatchExtractor, t Transformer, l BatchLoader, logger *slog.Logger, metrics *observability.Metrics, batchSize int, strict bool) *Pipeline {
	return &Pipeline{
		extractor:   e,
		transformer: t,
		loader:      l,
		validator:   NewValidator(),
		logger:      logger,
		metrics:     metrics,
		batchSize:   batchSize,
		strict:      strict,
	}
}

// CheckReadiness returns nil once the pipeline has loaded at least one batch,
// or an error describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("pipeline has not loaded any rows yet")
	}
	return nil
}

// Report returns the validator's mismatch report from the last Run.
func (p *Pipeline) Report() []CountCheck {
	return p.report
}

// Run drains the input to completion. Structural parse errors abort
// immediately: they indicate a wrong offset table or a corrupt file, and
// recovering silently would load bad data. Entry-count mismatches are the one
// recoverable class; they are reported at the end and fail the run only in
// strict mode when unexpected.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("pipeline started", "batch_size", p.batchSize, "strict", p.strict)
	p.metrics.PipelineRunning.Set(1)
	defer p.metrics.PipelineRunning.Set(0)

	total := 0
	for {
		batch, err := p.extractor.ExtractBatch(ctx, p.batchSize)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("extract: %w", err)
		}

		start := time.Now()
		p.metrics.BatchSize.Observe(float64(len(batch)))

		points := make([]domain.TrackPoint, 0, len(batch))
		for _, rec := range batch {
			p.validator.ObserveRecord(rec)

			tp, err := p.transformer.Transform(ctx, rec)
			if err != nil {
				p.metrics.TransformErrors.Inc()
				return fmt.Errorf("transform: %w", err)
			}
			points = append(points, tp)
		}

		if err := p.loader.LoadBatch(ctx, points); err != nil {
			return fmt.Errorf("load: %w", err)
		}

		p.metrics.RowsLoaded.Add(float64(len(points)))
		p.metrics.BatchProcessingDuration.Observe(time.Since(start).Seconds())
		p.ready.Store(true)
		total += len(points)
	}

	p.validator.ObserveHeaders(p.extractor.Headers())
	p.report = p.validator.Report()

	unexpected := 0
	for _, c := range p.report {
		if c.Expected {
			p.metrics.CountMismatches.WithLabelValues("expected").Inc()
			p.logger.Warn("entry count mismatch from cross-year split",
				"storm", c.Identity.UniqueID(), "name", c.Identity.Name,
				"declared", c.Declared, "observed", c.Observed)
		} else {
			unexpected++
			p.metrics.CountMismatches.WithLabelValues("unexpected").Inc()
			p.logger.Warn("unexpected entry count mismatch",
				"storm", c.Identity.UniqueID(), "name", c.Identity.Name,
				"declared", c.Declared, "observed", c.Observed)
		}
	}

	p.logger.Info("pipeline finished",
		"rows", total,
		"headers", len(p.extractor.Headers()),
		"mismatches", len(p.report))

	if p.strict && unexpected > 0 {
		return fmt.Errorf("%d unexpected entry count mismatch(es)", unexpected)
	}
	return nil
}
