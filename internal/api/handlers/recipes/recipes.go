package recipes

import (
	"net/http"

	"grocery-parser/internal/core/image"
	"grocery-parser/internal/core/pipeline"
	"grocery-parser/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves the recipe parsing endpoints.
type Handler struct {
	pipeline *pipeline.Service
	images   *image.Resolver
}

// NewHandler creates a recipes handler.
func NewHandler(p *pipeline.Service, images *image.Resolver) *Handler {
	return &Handler{
		pipeline: p,
		images:   images,
	}
}

// ParseRequest is the parse endpoint's request body.
type ParseRequest struct {
	URL string `json:"url" binding:"required"`
}

// ParseResponse is the parse endpoint's response body.
type ParseResponse struct {
	Success bool           `json:"success"`
	Recipe  *common.Recipe `json:"recipe,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// HandleParse runs the parsing pipeline for one URL.
func (h *Handler) HandleParse(c *gin.Context) {
	var req ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "request body must carry a url field",
			Details: err.Error(),
		})
		return
	}

	result, err := h.pipeline.ParseRecipe(c.Request.Context(), req.URL)
	if err != nil {
		common.LogWarn("parse request failed",
			zap.String("url", req.URL),
			zap.Error(err))
		c.JSON(common.ErrorStatus(err), common.ErrorResponse{
			Code:    common.ErrorCode(err),
			Message: err.Error(),
		})
		return
	}

	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, ParseResponse{
		Success: result.Success,
		Recipe:  result.Recipe,
		Error:   result.Error,
	})
}

// HandleStats returns the pipeline counters.
func (h *Handler) HandleStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.pipeline.PerformanceStats())
}

// HandleResetStats zeroes the pipeline counters.
func (h *Handler) HandleResetStats(c *gin.Context) {
	h.pipeline.ResetPerformanceStats()
	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}

// HandleClearCache empties the result cache.
func (h *Handler) HandleClearCache(c *gin.Context) {
	cleared := h.pipeline.ClearCache()
	common.LogInfo("result cache cleared", zap.Int("entries", cleared))
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}

// HandleIngredientImage resolves one ingredient name to an image URL.
func (h *Handler) HandleIngredientImage(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "name query parameter is required",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name": name,
		"slug": image.Slug(name),
		"url":  h.images.Resolve(name),
	})
}

// PrefetchRequest is the image prefetch request body.
type PrefetchRequest struct {
	Names []string `json:"names" binding:"required"`
}

// HandlePrefetchImages resolves a batch of ingredient names at once.
func (h *Handler) HandlePrefetchImages(c *gin.Context) {
	var req PrefetchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, common.ErrorResponse{
			Code:    common.ErrCodeInvalidRequest,
			Message: "request body must carry a names array",
			Details: err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"urls": h.images.Prefetch(req.Names)})
}
