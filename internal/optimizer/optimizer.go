// Package optimizer implements the heuristic schedule optimization engine:
// location-keyword similarity, greedy scene clustering and time-of-day
// ordering within each cluster.
package optimizer

import "prodsight-server/internal/models"

// Optimizer reorders a scene list for shooting efficiency.
type Optimizer struct{}

func New() *Optimizer {
	return &Optimizer{}
}

// Optimize returns a permutation of the input: clusters in discovery order,
// each cluster internally sorted DAY → DUSK → NIGHT and by scene number.
// No scene is created, dropped or duplicated.
func (o *Optimizer) Optimize(scenes []models.Scene) []models.Scene {
	clusters := ClusterByLocation(scenes)

	optimized := make([]models.Scene, 0, len(scenes))
	for _, cluster := range clusters {
		optimized = append(optimized, SortScenes(cluster.Scenes)...)
	}

	return optimized
}
