package handler

import (
	"net/http"

	"corrlab/internal/domain"

	"github.com/gin-gonic/gin"
)

type sourceInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Live bool   `json:"live"`
}

// ListSources godoc
// @Summary      List data sources
// @Description  Returns every source id accepted by /api/analyze and whether it has a live feed
// @Tags         analysis
// @Produce      json
// @Success      200  {array}  sourceInfo
// @Router       /api/sources [get]
func (h *Handler) ListSources(c *gin.Context) {
	out := make([]sourceInfo, 0, len(domain.AllSources))
	for _, s := range domain.AllSources {
		out = append(out, sourceInfo{ID: s.ID(), Name: s.DisplayName(), Live: s.HasLiveFeed()})
	}
	c.JSON(http.StatusOK, out)
}
