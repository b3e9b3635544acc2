package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hybrid-bess-sim/internal/config"
)

// PresetHandler lists the YAML configuration presets shipped with the server,
// so the dashboard can offer them as starting points.
type PresetHandler struct {
	dir string
	log *zap.Logger
}

// PresetInfo describes one preset file.
type PresetInfo struct {
	ID     string        `json:"id"`
	File   string        `json:"file"`
	Config config.Config `json:"config"`
}

func NewPresetHandler(log *zap.Logger) *PresetHandler {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "./examples/configs"
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &PresetHandler{dir: dir, log: log}
}

// ListPresets handles GET /api/v1/presets.
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []PresetInfo{}

	entries, err := os.ReadDir(h.dir)
	if err != nil {
		// Missing preset dir is not an API error; the list is just empty.
		h.log.Warn("preset directory unavailable", zap.String("dir", h.dir), zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		cfg, err := config.LoadUnchecked(filepath.Join(h.dir, name))
		if err != nil {
			h.log.Warn("skipping unreadable preset", zap.String("file", name), zap.Error(err))
			continue
		}
		presets = append(presets, PresetInfo{
			ID:     strings.TrimSuffix(name, ".yaml"),
			File:   name,
			Config: *cfg,
		})
	}

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}
