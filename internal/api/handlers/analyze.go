package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hybrid-bess-sim/internal/analysis"
	"hybrid-bess-sim/internal/api/models"
	"hybrid-bess-sim/internal/model"
)

// AnalyzeHandler serves price statistics over a supplied series.
type AnalyzeHandler struct{}

func NewAnalyzeHandler() *AnalyzeHandler { return &AnalyzeHandler{} }

// Analyze handles POST /api/v1/analyze.
func (h *AnalyzeHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	series, err := req.Series.ToSeries()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_SERIES", err)
		return
	}

	c.JSON(http.StatusOK, models.AnalyzeResponse{
		Stats:     analysis.ComputePriceStats(series),
		Suggested: analysis.SuggestWindows(series, req.WindowHours),
	})
}

// ListRegions handles GET /api/v1/regions.
func ListRegions(c *gin.Context) {
	regions := make([]string, 0, len(model.Regions()))
	for _, r := range model.Regions() {
		regions = append(regions, string(r))
	}
	c.JSON(http.StatusOK, models.RegionsResponse{Regions: regions})
}
