package models

import "encoding/json"

// ShootingSchedule mirrors shooting_schedule.json: the scene list the AI
// scheduler works from.
type ShootingSchedule struct {
	ProjectTitle string    `json:"project_title"`
	Schedule     SceneList `json:"shooting_schedule"`
}

// SceneList wraps the scenes array inside a shooting schedule document.
type SceneList struct {
	Scenes []Scene `json:"scenes"`
}

// ProductionSchedule mirrors production_schedule.json. The summary blocks are
// kept opaque and written back untouched.
type ProductionSchedule struct {
	ProjectInfo          json.RawMessage `json:"project_info,omitempty"`
	Scenes               []Scene         `json:"shooting_schedule"`
	ActorScheduleSummary json.RawMessage `json:"actor_schedule_summary,omitempty"`
	LocationSummary      json.RawMessage `json:"location_summary,omitempty"`
	ExtrasSummary        json.RawMessage `json:"extras_summary,omitempty"`
}

// OptimizationInfo records how and when a heuristic reorder was produced.
type OptimizationInfo struct {
	OptimizedAt        string `json:"optimized_at"`
	OptimizationMethod string `json:"optimization_method"`
	TotalScenes        int    `json:"total_scenes"`
}

// OptimizedSchedule is the artifact saved by the heuristic sort endpoint.
type OptimizedSchedule struct {
	ProjectInfo          json.RawMessage  `json:"project_info,omitempty"`
	OptimizationInfo     OptimizationInfo `json:"optimization_info"`
	Scenes               []Scene          `json:"optimized_schedule"`
	ActorScheduleSummary json.RawMessage  `json:"actor_schedule_summary,omitempty"`
	LocationSummary      json.RawMessage  `json:"location_summary,omitempty"`
	ExtrasSummary        json.RawMessage  `json:"extras_summary,omitempty"`
}

// ScheduledScene is one scene slotted into a shooting day.
type ScheduledScene struct {
	SceneNumber              int      `json:"scene_number"`
	SceneTitle               string   `json:"scene_title"`
	Location                 string   `json:"location"`
	TimeOfDay                string   `json:"time_of_day"`
	EstimatedDurationMinutes int      `json:"estimated_duration_minutes"`
	ActorsNeeded             []string `json:"actors_needed"`
	ExtrasNeeded             []string `json:"extras_needed"`
	CallTime                 string   `json:"call_time"`
	EstimatedWrap            string   `json:"estimated_wrap"`
	SetupNotes               string   `json:"setup_notes"`
}

// DailySummary aggregates one shooting day.
type DailySummary struct {
	TotalScenes          int      `json:"total_scenes"`
	TotalDurationMinutes int      `json:"total_duration_minutes"`
	PrimaryActors        []string `json:"primary_actors"`
	LocationChanges      int      `json:"location_changes"`
	SpecialRequirements  []string `json:"special_requirements"`
}

// DailySchedule is one day of the shooting plan.
type DailySchedule struct {
	Day           int              `json:"day"`
	Date          string           `json:"date"`
	LocationFocus string           `json:"location_focus"`
	Scenes        []ScheduledScene `json:"scenes"`
	DailySummary  DailySummary     `json:"daily_summary"`
}

// ActorSchedule summarizes one actor's involvement across the plan.
type ActorSchedule struct {
	TotalWorkingDays int    `json:"total_working_days"`
	Scenes           []int  `json:"scenes"`
	ScheduleNotes    string `json:"schedule_notes"`
}

// LocationSchedule summarizes shooting days spent at one location.
type LocationSchedule struct {
	DaysNeeded        []int  `json:"days_needed"`
	TotalScenes       int    `json:"total_scenes"`
	SetupRequirements string `json:"setup_requirements"`
}

// ScheduleResult is the full day-by-day shooting plan, whether AI-generated
// or produced by the deterministic fallback.
type ScheduleResult struct {
	SchedulingStrategy   string                      `json:"scheduling_strategy"`
	TotalShootingDays    int                         `json:"total_shooting_days"`
	DailySchedules       []DailySchedule             `json:"daily_schedules"`
	ActorSchedules       map[string]ActorSchedule    `json:"actor_schedules"`
	LocationSchedule     map[string]LocationSchedule `json:"location_schedule"`
	OptimizationBenefits []string                    `json:"optimization_benefits"`
	PotentialRisks       []string                    `json:"potential_risks"`
}

// GenerationInfo records metadata about one generation attempt.
type GenerationInfo struct {
	GeneratedAt    string `json:"generated_at"`
	InputScenes    int    `json:"input_scenes"`
	AIModel        string `json:"ai_model"`
	PromptLength   int    `json:"prompt_length"`
	PromptTokens   int    `json:"prompt_tokens,omitempty"`
	FallbackUsed   bool   `json:"fallback_used,omitempty"`
	FallbackReason string `json:"fallback_reason,omitempty"`
}

// GenerationResult is what the orchestrator hands back to callers and what
// gets persisted as gemini_optimized_schedule.json. IsMock is true whenever
// the deterministic fallback produced the schedule.
type GenerationResult struct {
	OptimizedSchedule *ScheduleResult `json:"optimized_schedule"`
	GenerationInfo    GenerationInfo  `json:"generation_info"`
	IsMock            bool            `json:"is_mock"`
}
