package scheduler

import (
	"fmt"
	"sort"

	"prodsight-server/internal/models"
	"prodsight-server/internal/optimizer"
)

// FallbackGenerator builds a full shooting plan from real scene data without
// any external dependency. It is the bulletproof tier: pure in-memory
// computation that succeeds for any well-formed input, including an empty
// one.
//
// Unlike the heuristic optimizer it groups scenes by exact location string,
// not by similarity. Surprising cross-location merges are acceptable when the
// AI proposes them, not when the safety net does.
type FallbackGenerator struct{}

func NewFallbackGenerator() *FallbackGenerator {
	return &FallbackGenerator{}
}

// Shooting day timeline constants: first call at 09:00, a fixed break
// between consecutive scenes.
const (
	dayStartMinutes         = 9 * 60
	sceneBreakMinutes       = 30
	fallbackDatePlaceholder = "TBD"
)

// Generate builds the day-by-day schedule. One day per distinct location in
// first-seen order; within a day scenes run DAY → DUSK → NIGHT in a simulated
// timeline. Empty input yields a labeled zero-day schedule rather than demo
// data.
func (g *FallbackGenerator) Generate(scenes []models.Scene) *models.ScheduleResult {
	if len(scenes) == 0 {
		return g.emptySchedule()
	}

	dailySchedules := g.buildDailySchedules(scenes)

	return &models.ScheduleResult{
		SchedulingStrategy: "Heuristic schedule from real scene data with location grouping and time-of-day sorting",
		TotalShootingDays:  len(dailySchedules),
		DailySchedules:     dailySchedules,
		ActorSchedules:     buildActorSchedules(dailySchedules),
		LocationSchedule:   buildLocationSchedule(dailySchedules),
		OptimizationBenefits: []string{
			"Grouped scenes by location to minimize setup time",
			"Sorted scenes by time of day for natural progression",
			"Optimized actor schedules to minimize working days",
			"Used real scene titles and data from script",
		},
		PotentialRisks: []string{
			"Weather dependency for outdoor scenes",
			"Actor availability conflicts",
			"Equipment scheduling conflicts",
		},
	}
}

func (g *FallbackGenerator) buildDailySchedules(scenes []models.Scene) []models.DailySchedule {
	groups := groupByLocation(scenes)

	dailySchedules := make([]models.DailySchedule, 0, len(groups))
	for dayIdx, group := range groups {
		ordered := sortByTimePriority(group.scenes)

		day := models.DailySchedule{
			Day:           dayIdx + 1,
			Date:          fallbackDatePlaceholder,
			LocationFocus: group.location,
			Scenes:        make([]models.ScheduledScene, 0, len(ordered)),
		}

		current := dayStartMinutes
		totalDuration := 0
		requirements := make([]string, 0, len(ordered))

		for _, scene := range ordered {
			duration := scene.EffectiveDuration()
			wrap := current + duration

			day.Scenes = append(day.Scenes, models.ScheduledScene{
				SceneNumber:              scene.SceneNumber,
				SceneTitle:               sceneTitleOrDefault(scene),
				Location:                 scene.Location,
				TimeOfDay:                scene.TimeOfDay,
				EstimatedDurationMinutes: duration,
				ActorsNeeded:             scene.ActorNames(),
				ExtrasNeeded:             scene.ExtraNames(),
				CallTime:                 clockTime(current),
				EstimatedWrap:            clockTime(wrap),
				SetupNotes:               fmt.Sprintf("Setup for %s - %s scene", scene.Location, scene.TimeOfDay),
			})

			totalDuration += duration
			requirements = append(requirements, fmt.Sprintf("%s lighting setup", scene.TimeOfDay))
			current = wrap + sceneBreakMinutes
		}

		day.DailySummary = models.DailySummary{
			TotalScenes:          len(day.Scenes),
			TotalDurationMinutes: totalDuration,
			PrimaryActors:        dedupeActors(day.Scenes),
			LocationChanges:      1,
			SpecialRequirements:  requirements,
		}

		dailySchedules = append(dailySchedules, day)
	}

	return dailySchedules
}

// emptySchedule is the degenerate well-formed result for "no scene data":
// zero days, clearly labeled, never an error.
func (g *FallbackGenerator) emptySchedule() *models.ScheduleResult {
	return &models.ScheduleResult{
		SchedulingStrategy:   "No scene data available - empty schedule",
		TotalShootingDays:    0,
		DailySchedules:       []models.DailySchedule{},
		ActorSchedules:       map[string]models.ActorSchedule{},
		LocationSchedule:     map[string]models.LocationSchedule{},
		OptimizationBenefits: []string{},
		PotentialRisks:       []string{"No scenes to schedule - add scenes to the shooting schedule"},
	}
}

type locationGroup struct {
	location string
	scenes   []models.Scene
}

// groupByLocation partitions scenes by exact location string, groups ordered
// by first occurrence.
func groupByLocation(scenes []models.Scene) []locationGroup {
	index := make(map[string]int)
	groups := make([]locationGroup, 0)

	for _, scene := range scenes {
		location := scene.Location
		if location == "" {
			location = "Unknown Location"
		}
		i, ok := index[location]
		if !ok {
			i = len(groups)
			index[location] = i
			groups = append(groups, locationGroup{location: location})
		}
		groups[i].scenes = append(groups[i].scenes, scene)
	}

	return groups
}

// sortByTimePriority orders scenes DAY → DUSK → NIGHT, stable, ties keeping
// input order.
func sortByTimePriority(scenes []models.Scene) []models.Scene {
	ordered := make([]models.Scene, len(scenes))
	copy(ordered, scenes)
	sort.SliceStable(ordered, func(i, j int) bool {
		return optimizer.TimePriority(ordered[i].TimeOfDay) < optimizer.TimePriority(ordered[j].TimeOfDay)
	})
	return ordered
}

func buildActorSchedules(days []models.DailySchedule) map[string]models.ActorSchedule {
	schedules := make(map[string]models.ActorSchedule)

	for _, day := range days {
		for _, scene := range day.Scenes {
			for _, actor := range scene.ActorsNeeded {
				if actor == "" {
					continue
				}
				entry, ok := schedules[actor]
				if !ok {
					entry = models.ActorSchedule{
						Scenes:        []int{},
						ScheduleNotes: "Character appears in multiple scenes",
					}
				}
				if !containsInt(entry.Scenes, scene.SceneNumber) {
					entry.Scenes = append(entry.Scenes, scene.SceneNumber)
				}
				schedules[actor] = entry
			}
		}
	}

	// Working days are counted as distinct days the actor appears on.
	for actor, entry := range schedules {
		workingDays := 0
		for _, day := range days {
			for _, scene := range day.Scenes {
				if containsString(scene.ActorsNeeded, actor) {
					workingDays++
					break
				}
			}
		}
		entry.TotalWorkingDays = workingDays
		schedules[actor] = entry
	}

	return schedules
}

func buildLocationSchedule(days []models.DailySchedule) map[string]models.LocationSchedule {
	schedule := make(map[string]models.LocationSchedule)

	for _, day := range days {
		entry, ok := schedule[day.LocationFocus]
		if !ok {
			entry = models.LocationSchedule{
				DaysNeeded:        []int{},
				SetupRequirements: fmt.Sprintf("Standard setup for %s", day.LocationFocus),
			}
		}
		entry.DaysNeeded = append(entry.DaysNeeded, day.Day)
		entry.TotalScenes += len(day.Scenes)
		schedule[day.LocationFocus] = entry
	}

	return schedule
}

// dedupeActors collects the distinct non-empty actor names across a day's
// scenes, first-seen order.
func dedupeActors(scenes []models.ScheduledScene) []string {
	seen := make(map[string]struct{})
	actors := make([]string, 0)
	for _, scene := range scenes {
		for _, name := range scene.ActorsNeeded {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			actors = append(actors, name)
		}
	}
	return actors
}

func sceneTitleOrDefault(scene models.Scene) string {
	if scene.SceneTitle == "" {
		return "Untitled Scene"
	}
	return scene.SceneTitle
}

// clockTime formats minutes-since-midnight as HH:MM.
func clockTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func containsInt(items []int, v int) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}

func containsString(items []string, v string) bool {
	for _, item := range items {
		if item == v {
			return true
		}
	}
	return false
}
