// Package handler exposes the scheduling engine over HTTP.
package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prodsight-server/internal/models"
	"prodsight-server/internal/optimizer"
	"prodsight-server/internal/scheduler"
	"prodsight-server/internal/store"
)

const previewSceneLimit = 5

// AIHandler serves the AI scheduling endpoints.
type AIHandler struct {
	store     *store.Store
	optimizer *optimizer.Optimizer
	scheduler *scheduler.Scheduler
	log       *zap.Logger
}

func NewAIHandler(st *store.Store, opt *optimizer.Optimizer, sch *scheduler.Scheduler, log *zap.Logger) *AIHandler {
	return &AIHandler{
		store:     st,
		optimizer: opt,
		scheduler: sch,
		log:       log.Named("ai_handler"),
	}
}

func (h *AIHandler) RegisterRoutes(router *gin.Engine) {
	aiGroup := router.Group("/api/ai")
	{
		aiGroup.POST("/schedule/sort", h.sortSchedule)
		aiGroup.GET("/schedule/preview", h.previewSchedule)
		aiGroup.POST("/schedule/generate", h.generateSchedule)
		aiGroup.GET("/schedule/analysis", h.scheduleAnalysis)
	}
}

// sortSchedule reorders the production schedule with the heuristic optimizer
// and persists the result as optimized_schedule.json.
func (h *AIHandler) sortSchedule(c *gin.Context) {
	var production models.ProductionSchedule
	if err := h.store.Load(store.ProductionScheduleFile, &production); err != nil {
		h.respondStoreError(c, err)
		return
	}

	if len(production.Scenes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("No scenes found in %s", store.ProductionScheduleFile),
		})
		return
	}

	optimized := h.optimizer.Optimize(production.Scenes)

	artifact := models.OptimizedSchedule{
		ProjectInfo: production.ProjectInfo,
		OptimizationInfo: models.OptimizationInfo{
			OptimizedAt:        time.Now().Format(time.RFC3339),
			OptimizationMethod: "AI-assisted location clustering and time sorting",
			TotalScenes:        len(optimized),
		},
		Scenes:               optimized,
		ActorScheduleSummary: production.ActorScheduleSummary,
		LocationSummary:      production.LocationSummary,
		ExtrasSummary:        production.ExtrasSummary,
	}

	if err := h.store.Save(store.OptimizedScheduleFile, artifact); err != nil {
		h.log.Error("Failed to save optimized schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Internal server error: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        "success",
		"message":       "Schedule optimized successfully",
		"total_scenes":  len(optimized),
		"sorted_scenes": simplifyScenes(optimized),
		"saved_file":    store.OptimizedScheduleFile,
	})
}

// previewSchedule returns the first few optimized scenes for the UI preview,
// without persisting anything.
func (h *AIHandler) previewSchedule(c *gin.Context) {
	var production models.ProductionSchedule
	if err := h.store.Load(store.ProductionScheduleFile, &production); err != nil {
		h.respondStoreError(c, err)
		return
	}

	if len(production.Scenes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("No scenes found in %s", store.ProductionScheduleFile),
		})
		return
	}

	optimized := h.optimizer.Optimize(production.Scenes)

	preview := optimized
	if len(preview) > previewSceneLimit {
		preview = preview[:previewSceneLimit]
	}

	previewScenes := make([]gin.H, 0, len(preview))
	for _, scene := range preview {
		previewScenes = append(previewScenes, gin.H{
			"scene_number":       scene.SceneNumber,
			"scene_title":        scene.SceneTitle,
			"location":           scene.Location,
			"time_of_day":        scene.TimeOfDay,
			"estimated_duration": scene.EstimatedDurationMinutes,
			"actor_count":        len(scene.Actors),
			"extras_count":       len(scene.Extras),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"status":                 "success",
		"message":                "Schedule preview generated",
		"total_scenes_available": len(optimized),
		"preview_count":          len(previewScenes),
		"preview_scenes":         previewScenes,
	})
}

// generateSchedule runs the AI scheduling pipeline over the shooting
// schedule. The AI path persists the artifact; the fallback path answers with
// a warning status so the UI can say which algorithm produced the plan.
func (h *AIHandler) generateSchedule(c *gin.Context) {
	var shooting models.ShootingSchedule
	if err := h.store.Load(store.ShootingScheduleFile, &shooting); err != nil {
		h.respondStoreError(c, err)
		return
	}

	if len(shooting.Schedule.Scenes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("No scenes found in %s", store.ShootingScheduleFile),
		})
		return
	}

	result := h.scheduler.GenerateSchedule(c.Request.Context(), &shooting)

	if result.IsMock {
		c.JSON(http.StatusOK, gin.H{
			"status":          "warning",
			"message":         fmt.Sprintf("AI service unavailable, using fallback algorithm: %s", result.GenerationInfo.FallbackReason),
			"schedule_data":   result.OptimizedSchedule,
			"generation_info": result.GenerationInfo,
			"is_mock":         true,
		})
		return
	}

	if err := h.store.Save(store.AIScheduleFile, result); err != nil {
		h.log.Error("Failed to save AI schedule", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Schedule generation failed: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":              "success",
		"message":             "AI schedule generated successfully",
		"schedule_data":       result.OptimizedSchedule,
		"generation_info":     result.GenerationInfo,
		"saved_file":          store.AIScheduleFile,
		"total_shooting_days": result.OptimizedSchedule.TotalShootingDays,
	})
}

// scheduleAnalysis reports insights over the current shooting schedule.
func (h *AIHandler) scheduleAnalysis(c *gin.Context) {
	var shooting models.ShootingSchedule
	if err := h.store.Load(store.ShootingScheduleFile, &shooting); err != nil {
		h.respondStoreError(c, err)
		return
	}

	scenes := shooting.Schedule.Scenes
	if len(scenes) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("No scenes found in %s", store.ShootingScheduleFile),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      "success",
		"analysis":    h.optimizer.Analyze(scenes),
		"data_source": store.ShootingScheduleFile,
	})
}

func (h *AIHandler) respondStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": err.Error()})
	case errors.Is(err, store.ErrInvalidJSON):
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
	default:
		h.log.Error("Store access failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": fmt.Sprintf("Internal server error: %v", err),
		})
	}
}

func simplifyScenes(scenes []models.Scene) []gin.H {
	simplified := make([]gin.H, 0, len(scenes))
	for _, scene := range scenes {
		simplified = append(simplified, gin.H{
			"scene_number": scene.SceneNumber,
			"scene_title":  scene.SceneTitle,
			"location":     scene.Location,
			"time_of_day":  scene.TimeOfDay,
			"actors":       scene.ActorNames(),
			"extras":       scene.ExtraNames(),
		})
	}
	return simplified
}
