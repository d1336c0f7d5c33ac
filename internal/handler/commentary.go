package handler

import (
	"net/http"

	"corrlab/internal/commentary"
	"corrlab/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// commentaryRequest uses pointers so an absent field can be told apart from a zero value.
type commentaryRequest struct {
	Source1   *string  `json:"source1"`
	Source2   *string  `json:"source2"`
	R         *float64 `json:"r"`
	N         *int     `json:"n"`
	StartDate string   `json:"startDate"`
	EndDate   string   `json:"endDate"`
}

func (r commentaryRequest) missingField() string {
	switch {
	case r.Source1 == nil:
		return "source1"
	case r.Source2 == nil:
		return "source2"
	case r.R == nil:
		return "r"
	case r.N == nil:
		return "n"
	}
	return ""
}

// AnalyzeAI godoc
// @Summary      Comment on a correlation result
// @Description  Returns a short Korean commentary from the LLM, or a rule-based one when the LLM is unavailable
// @Tags         analysis
// @Accept       json
// @Produce      json
// @Param        request  body      commentaryRequest  true  "Correlation result"
// @Success      200      {object}  commentary.Result
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /api/analyze-ai [post]
func (h *Handler) AnalyzeAI(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.analyze-ai")
	defer span.End()

	var req commentaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgMissingParams})
		return
	}
	if field := req.missingField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.MsgMissingFieldPrefix + field})
		return
	}

	p := commentary.Payload{
		Source1:   *req.Source1,
		Source2:   *req.Source2,
		R:         *req.R,
		N:         *req.N,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	span.SetAttributes(attribute.Float64("r", p.R), attribute.Int("n", p.N))

	result := h.commentator.Interpret(ctx, p)
	span.SetAttributes(attribute.String("origin", result.Origin))
	c.JSON(http.StatusOK, result)
}
