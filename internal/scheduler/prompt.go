package scheduler

import (
	"fmt"
	"strings"

	"prodsight-server/internal/models"
)

// PromptBuilder renders scene data into the scheduling request sent to the
// model. The render is fully deterministic and embeds every scene verbatim,
// so prompt length grows linearly with scene count.
type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

const defaultProjectTitle = "Film Project"

// Build produces the complete prompt: project data, every scene, the fixed
// scheduling constraints and the required JSON output schema.
func (b *PromptBuilder) Build(projectTitle string, scenes []models.Scene) string {
	if projectTitle == "" {
		projectTitle = defaultProjectTitle
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, `
You are an expert film production scheduler. Create an optimal shooting schedule for %q based on the following constraints and data:

## PROJECT DATA:
Total Scenes: %d
Locations: %s
Main Actors: %s

## SCENES TO SCHEDULE:
`, projectTitle, len(scenes), strings.Join(distinctLocations(scenes), ", "), strings.Join(distinctActors(scenes), ", "))

	for _, scene := range scenes {
		fmt.Fprintf(&sb, `
Scene %d: %s
- Location: %s
- Time of Day: %s
- Duration: %d minutes
- Actors: %s
- Extras: %s
`, scene.SceneNumber, scene.SceneTitle, scene.Location, scene.TimeOfDay,
			scene.EstimatedDurationMinutes,
			joinOrNone(scene.ActorNames()), joinOrNone(scene.ExtraNames()))
	}

	sb.WriteString(`

## SCHEDULING CONSTRAINTS:
1. **Location Efficiency**: Group scenes by location to minimize setup/teardown time and costs
2. **Actor Availability**: Consider actor scheduling conflicts and minimize their total working days
3. **Time of Day Logic**: Schedule DAY scenes first, then DUSK, then NIGHT within each location
4. **Equipment Sharing**: Consider shared equipment needs between similar scenes
5. **Weather Dependencies**: Outdoor scenes should be grouped and have backup indoor options
6. **Crew Efficiency**: Minimize crew overtime by balancing daily workloads

## ADDITIONAL CONSIDERATIONS:
- Radio Station scenes (Control Room, Parking Area, Abandoned) should be scheduled together
- Maya appears in multiple scenes - optimize her schedule to minimize her working days
- Government facility scenes may require special permissions/security clearance
- Desert highway scenes are weather-dependent

## REQUIRED OUTPUT FORMAT:
Please provide a JSON response with the following structure:

` + "```json" + `
{
  "optimized_schedule": {
    "scheduling_strategy": "Brief explanation of the optimization strategy used",
    "total_shooting_days": number,
    "daily_schedules": [...],
    "actor_schedules": {...},
    "location_schedule": {...},
    "optimization_benefits": [...],
    "potential_risks": [...]
  }
}
` + "```" + `
Generate the most efficient shooting schedule considering all constraints and provide detailed reasoning for your scheduling decisions.
`)

	return sb.String()
}

// distinctLocations returns each location once, in first-seen order.
func distinctLocations(scenes []models.Scene) []string {
	seen := make(map[string]struct{})
	locations := make([]string, 0, len(scenes))
	for _, scene := range scenes {
		if _, ok := seen[scene.Location]; ok {
			continue
		}
		seen[scene.Location] = struct{}{}
		locations = append(locations, scene.Location)
	}
	return locations
}

// distinctActors returns each non-empty actor name once, in first-seen order.
func distinctActors(scenes []models.Scene) []string {
	seen := make(map[string]struct{})
	actors := make([]string, 0)
	for _, scene := range scenes {
		for _, name := range scene.ActorNames() {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			actors = append(actors, name)
		}
	}
	return actors
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}
