// Package handlers wires the simulation core to the HTTP API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hybrid-bess-sim/internal/api/models"
	"hybrid-bess-sim/internal/data"
	"hybrid-bess-sim/internal/model"
	"hybrid-bess-sim/internal/scenario"
)

// SimulateHandler serves simulation and comparison requests. Comparison
// results are cached content-addressed so a dashboard re-submitting unchanged
// inputs doesn't re-run the engine.
type SimulateHandler struct {
	cache *data.ResultCache
}

func NewSimulateHandler(cache *data.ResultCache) *SimulateHandler {
	return &SimulateHandler{cache: cache}
}

// RunSimulate handles POST /api/v1/simulate.
func (h *SimulateHandler) RunSimulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	req.Config.ApplyDefaults()
	cfg, err := req.Config.ToModel()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeSimError(c, err)
		return
	}

	series, err := req.Series.ToSeries()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_SERIES", err)
		return
	}

	res, err := scenario.Run(cfg, series)
	if err != nil {
		writeSimError(c, err)
		return
	}

	resp := models.SimulateResponse{
		ID:      uuid.NewString(),
		Status:  "completed",
		Metrics: res.Metrics,
	}
	if req.Options.IncludeLedger {
		resp.Ledger = res.Records
	}
	c.JSON(http.StatusOK, resp)
}

// RunCompare handles POST /api/v1/compare.
func (h *SimulateHandler) RunCompare(c *gin.Context) {
	var req models.CompareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err)
		return
	}

	req.Config.ApplyDefaults()
	cfg, err := req.Config.ToModel()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_CONFIG", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		writeSimError(c, err)
		return
	}

	series, err := req.Series.ToSeries()
	if err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_SERIES", err)
		return
	}

	key := data.CacheKey(cfg, series)
	comp, cached := h.cache.Get(key)
	if !cached {
		comp, err = scenario.Compare(cfg, series)
		if err != nil {
			writeSimError(c, err)
			return
		}
		h.cache.Set(key, comp)
	}

	c.JSON(http.StatusOK, models.CompareResponse{
		ID:          uuid.NewString(),
		Status:      "completed",
		Cached:      cached,
		BatteryOnly: models.NewScenarioPayload(comp.BatteryOnly, req.Options.IncludeLedger),
		Hybrid:      models.NewScenarioPayload(comp.Hybrid, req.Options.IncludeLedger),
		Delta:       comp.Delta,
	})
}

// writeSimError maps the core's typed errors onto HTTP statuses and stable
// error codes.
func writeSimError(c *gin.Context, err error) {
	var cfgErr *model.ConfigError
	var gapErr *model.DataGapError
	var invErr *model.InvariantError
	switch {
	case errors.As(err, &cfgErr):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "INVALID_CONFIG",
			Message: cfgErr.Error(),
			Details: map[string]any{"param": cfgErr.Param},
		}})
	case errors.As(err, &gapErr):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "DATA_UNAVAILABLE",
			Message: gapErr.Error(),
			Details: map[string]any{"timestamp": gapErr.Timestamp, "series": gapErr.Series},
		}})
	case errors.As(err, &invErr):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "INVARIANT_VIOLATION",
			Message: invErr.Error(),
			Details: map[string]any{"timestamp": invErr.Timestamp},
		}})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: models.ErrorDetail{
			Code:    "SIMULATION_ERROR",
			Message: err.Error(),
		}})
	}
}

func writeError(c *gin.Context, status int, code string, err error) {
	c.JSON(status, models.ErrorResponse{Error: models.ErrorDetail{
		Code:    code,
		Message: err.Error(),
	}})
}
