// Package scheduler implements the AI schedule generation pipeline: prompt
// construction, the rate-limited model call with its failure taxonomy, and
// the deterministic fallback that guarantees a usable schedule when the model
// cannot produce one.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"prodsight-server/internal/models"
)

// tokenEncoding is used only for the prompt size estimate in metadata; the
// Gemini model name is unknown to tiktoken, so a fixed encoding is close
// enough.
const tokenEncoding = "cl100k_base"

// Scheduler is the public entry point for AI schedule generation.
type Scheduler struct {
	client   ScheduleClient
	prompts  *PromptBuilder
	fallback *FallbackGenerator
	model    string
	log      *zap.Logger
}

func NewScheduler(client ScheduleClient, model string, log *zap.Logger) *Scheduler {
	return &Scheduler{
		client:   client,
		prompts:  NewPromptBuilder(),
		fallback: NewFallbackGenerator(),
		model:    model,
		log:      log.Named("scheduler"),
	}
}

// GenerateSchedule runs the full pipeline: build the prompt, try the model,
// validate its answer, and fall back to the deterministic generator on any
// failure. It always returns a well-formed result; the only way it can fail
// is the caller's context being unusable before work starts.
func (s *Scheduler) GenerateSchedule(ctx context.Context, doc *models.ShootingSchedule) (result *models.GenerationResult) {
	scenes := doc.Schedule.Scenes

	// Defense in depth: even an unexpected panic inside the pipeline must
	// still yield a displayable fallback schedule.
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("Schedule generation panicked, returning fallback", zap.Any("panic", r))
			fallbacksTotal.With(prometheus.Labels{"reason": "internal"}).Inc()
			result = s.fallbackResult(scenes, "", fmt.Sprintf("internal error: %v", r))
		}
	}()

	prompt := s.prompts.Build(doc.ProjectTitle, scenes)

	schedule, err := s.client.GenerateSchedule(ctx, prompt)
	if err != nil {
		s.log.Warn("AI path unavailable, generating fallback schedule",
			zap.Int("scenes", len(scenes)),
			zap.Error(err))
		fallbacksTotal.With(prometheus.Labels{"reason": failureReason(err)}).Inc()
		return s.fallbackResult(scenes, prompt, err.Error())
	}

	s.log.Info("AI schedule generated",
		zap.Int("scenes", len(scenes)),
		zap.Int("shootingDays", schedule.TotalShootingDays))

	return &models.GenerationResult{
		OptimizedSchedule: schedule,
		GenerationInfo:    s.generationInfo(len(scenes), prompt),
		IsMock:            false,
	}
}

func (s *Scheduler) fallbackResult(scenes []models.Scene, prompt, reason string) *models.GenerationResult {
	info := s.generationInfo(len(scenes), prompt)
	info.FallbackUsed = true
	info.FallbackReason = reason

	return &models.GenerationResult{
		OptimizedSchedule: s.fallback.Generate(scenes),
		GenerationInfo:    info,
		IsMock:            true,
	}
}

func (s *Scheduler) generationInfo(sceneCount int, prompt string) models.GenerationInfo {
	return models.GenerationInfo{
		GeneratedAt:  time.Now().Format(time.RFC3339),
		InputScenes:  sceneCount,
		AIModel:      s.model,
		PromptLength: len(prompt),
		PromptTokens: estimateTokens(prompt),
	}
}

// estimateTokens is best effort; 0 means the estimate was unavailable.
func estimateTokens(prompt string) int {
	if prompt == "" {
		return 0
	}
	enc, err := tiktoken.GetEncoding(tokenEncoding)
	if err != nil {
		return 0
	}
	return len(enc.Encode(prompt, nil, nil))
}
