package optimizer

import (
	"sort"

	"prodsight-server/internal/models"
)

// OptimizationPotential estimates how much location grouping could save.
type OptimizationPotential struct {
	CanGroupLocations bool `json:"can_group_locations"`
	LocationSavings   int  `json:"location_savings"`
}

// ActorWorkload is one actor's scene count.
type ActorWorkload struct {
	Name       string `json:"name"`
	SceneCount int    `json:"scene_count"`
}

// ScheduleAnalysis is a read-only breakdown of the current schedule.
// BusiestActors is ordered busiest first so the UI can render it as-is.
type ScheduleAnalysis struct {
	TotalScenes                int                   `json:"total_scenes"`
	UniqueLocations            int                   `json:"unique_locations"`
	LocationClustersIdentified int                   `json:"location_clusters_identified"`
	TimeDistribution           map[string]int        `json:"time_distribution"`
	BusiestActors              []ActorWorkload       `json:"busiest_actors"`
	LocationsBreakdown         map[string]int        `json:"locations_breakdown"`
	OptimizationPotential      OptimizationPotential `json:"optimization_potential"`
}

const busiestActorsLimit = 5

// Analyze summarizes the scene list: location spread, time-of-day mix, the
// five busiest actors and how many distinct locations clustering would fold
// together.
func (o *Optimizer) Analyze(scenes []models.Scene) ScheduleAnalysis {
	locations := make(map[string]int)
	timeDistribution := map[string]int{
		models.TimeDay:   0,
		models.TimeDusk:  0,
		models.TimeNight: 0,
	}
	actorWorkload := make(map[string]int)

	for _, scene := range scenes {
		location := scene.Location
		if location == "" {
			location = "Unknown"
		}
		locations[location]++

		timeOfDay := scene.TimeOfDay
		if _, known := timeDistribution[timeOfDay]; !known {
			timeOfDay = models.TimeDay
		}
		timeDistribution[timeOfDay]++

		for _, name := range scene.ActorNames() {
			actorWorkload[name]++
		}
	}

	clusters := ClusterByLocation(scenes)

	return ScheduleAnalysis{
		TotalScenes:                len(scenes),
		UniqueLocations:            len(locations),
		LocationClustersIdentified: len(clusters),
		TimeDistribution:           timeDistribution,
		BusiestActors:              topActors(actorWorkload, busiestActorsLimit),
		LocationsBreakdown:         locations,
		OptimizationPotential: OptimizationPotential{
			CanGroupLocations: len(clusters) < len(locations),
			LocationSavings:   len(locations) - len(clusters),
		},
	}
}

// topActors ranks actors by scene count descending, names breaking ties, and
// keeps the first limit entries.
func topActors(workload map[string]int, limit int) []ActorWorkload {
	ranked := make([]ActorWorkload, 0, len(workload))
	for name, count := range workload {
		ranked = append(ranked, ActorWorkload{Name: name, SceneCount: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].SceneCount != ranked[j].SceneCount {
			return ranked[i].SceneCount > ranked[j].SceneCount
		}
		return ranked[i].Name < ranked[j].Name
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
