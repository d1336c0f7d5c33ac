package service

import (
	"context"
	"errors"
	"fmt"

	"corrlab/internal/correlation"
	"corrlab/internal/domain"
	"corrlab/internal/source"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// SourceResolver maps source identifiers to series producers.
type SourceResolver interface {
	Resolve(id string) (domain.Source, source.Producer, error)
}

// AnalysisRecorder counts finished analyses.
type AnalysisRecorder interface {
	RecordAnalysis(outcome string)
}

// AnalysisService validates a request, gathers both series and correlates them.
type AnalysisService struct {
	tracer   trace.Tracer
	resolver SourceResolver
	recorder AnalysisRecorder
}

func NewAnalysisService(tracer trace.Tracer, resolver SourceResolver, recorder AnalysisRecorder) *AnalysisService {
	return &AnalysisService{
		tracer:   tracer,
		resolver: resolver,
		recorder: recorder,
	}
}

// Analyze runs one stateless analysis. Errors carry a domain.UserError when
// they are the caller's to see.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResult, error) {
	ctx, span := s.tracer.Start(ctx, "analysis-service.analyze")
	defer span.End()

	result, err := s.analyze(ctx, req)
	s.record(err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Float64("correlation", result.Correlation))
	return result, nil
}

func (s *AnalysisService) analyze(ctx context.Context, req AnalysisRequest) (*domain.AnalysisResult, error) {
	dr, err := ValidateRequest(req)
	if err != nil {
		return nil, err
	}

	// Both identifiers are checked before either producer runs.
	src1, produce1, err := s.resolver.Resolve(req.DataSource1)
	if err != nil {
		return nil, err
	}
	src2, produce2, err := s.resolver.Resolve(req.DataSource2)
	if err != nil {
		return nil, err
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("source1", src1.ID()),
		attribute.String("source2", src2.ID()),
		attribute.String("range", dr.String()),
	)

	var series1, series2 domain.Series
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		series1, err = produce1(gctx, dr)
		return err
	})
	g.Go(func() error {
		var err error
		series2, err = produce2(gctx, dr)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("produce series: %w", err)
	}

	sum, err := correlation.Summarize(series1, series2)
	if err != nil {
		return nil, fmt.Errorf("correlate %s and %s: %w", src1, src2, err)
	}

	log.Info().
		Str("source1", src1.ID()).
		Str("source2", src2.ID()).
		Str("range", dr.String()).
		Int("n", sum.N).
		Float64("r", sum.R).
		Float64("mean1", sum.Mean1).
		Float64("mean2", sum.Mean2).
		Msg("analysis complete")

	return &domain.AnalysisResult{
		Correlation: sum.R,
		Series1:     series1,
		Series2:     series2,
		Name1:       series1.Name,
		Name2:       series2.Name,
	}, nil
}

func (s *AnalysisService) record(err error) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordAnalysis(outcome(err))
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrValidation):
		return "invalid"
	case errors.Is(err, domain.ErrUnknownSource):
		return "unknown_source"
	case errors.Is(err, domain.ErrInsufficientOverlap):
		return "insufficient_overlap"
	case errors.Is(err, domain.ErrDegenerateCorrelation):
		return "degenerate"
	default:
		return "error"
	}
}
