package handler

import (
	"context"

	"corrlab/internal/commentary"
	"corrlab/internal/domain"
	"corrlab/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Analyzer interface {
	Analyze(ctx context.Context, req service.AnalysisRequest) (*domain.AnalysisResult, error)
}

type Commentator interface {
	Interpret(ctx context.Context, p commentary.Payload) commentary.Result
}

// Limiter decides whether the caller identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type Handler struct {
	tracer      trace.Tracer
	analyzer    Analyzer
	commentator Commentator
	limiter     Limiter
}

func New(tracer trace.Tracer, analyzer Analyzer, commentator Commentator) *Handler {
	return &Handler{
		tracer:      tracer,
		analyzer:    analyzer,
		commentator: commentator,
	}
}

// SetCommentaryLimiter enables per-client rate limiting on /api/analyze-ai.
func (h *Handler) SetCommentaryLimiter(l Limiter) {
	h.limiter = l
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.Use(RequestID(), AccessLog())
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/sources", h.ListSources)
	api.POST("/analyze", h.Analyze)
	api.POST("/analyze-ai", RateLimit(h.limiter), h.AnalyzeAI)
}
