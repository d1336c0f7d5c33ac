package handler

import (
	"errors"
	"net/http"

	"corrlab/internal/domain"
	"corrlab/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

type analyzeResponse struct {
	Correlation     float64              `json:"correlation"`
	Data1           []domain.Observation `json:"data1"`
	Data2           []domain.Observation `json:"data2"`
	DataSource1Name string               `json:"dataSource1Name"`
	DataSource2Name string               `json:"dataSource2Name"`
}

// Analyze godoc
// @Summary      Correlate two data sources
// @Description  Aligns both sources by date over the range and returns the Pearson coefficient with the series used
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      service.AnalysisRequest  true  "Sources and date range"
// @Success      200      {object}  analyzeResponse
// @Failure      400      {object}  map[string]string
// @Failure      500      {object}  map[string]string
// @Router       /api/analyze [post]
func (h *Handler) Analyze(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze")
	defer span.End()

	var req service.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgMissingParams})
		return
	}
	span.SetAttributes(
		attribute.String("source1", req.DataSource1),
		attribute.String("source2", req.DataSource2),
	)

	result, err := h.analyzer.Analyze(ctx, req)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("analysis failed")
		}
		c.JSON(status, gin.H{"error": domain.UserMessage(err)})
		return
	}

	c.JSON(http.StatusOK, analyzeResponse{
		Correlation:     result.Correlation,
		Data1:           nonNil(result.Series1.Observations),
		Data2:           nonNil(result.Series2.Observations),
		DataSource1Name: result.Name1,
		DataSource2Name: result.Name2,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnknownSource),
		errors.Is(err, domain.ErrInsufficientOverlap),
		errors.Is(err, domain.ErrDegenerateCorrelation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func nonNil(obs []domain.Observation) []domain.Observation {
	if obs == nil {
		return []domain.Observation{}
	}
	return obs
}
