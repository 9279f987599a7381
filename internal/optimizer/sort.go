package optimizer

import (
	"sort"

	"prodsight-server/internal/models"
)

// TimePriority maps a time-of-day marker to its shooting order. DAY shoots
// first, then DUSK, then NIGHT; anything unrecognized is treated as DAY.
func TimePriority(timeOfDay string) int {
	switch timeOfDay {
	case models.TimeDusk:
		return 2
	case models.TimeNight:
		return 3
	default:
		return 1
	}
}

// SortScenes orders a cluster's scenes by (time-of-day priority, scene
// number), ascending and stable. The input slice is not modified.
func SortScenes(scenes []models.Scene) []models.Scene {
	sorted := make([]models.Scene, len(scenes))
	copy(sorted, scenes)

	sort.SliceStable(sorted, func(i, j int) bool {
		pi, pj := TimePriority(sorted[i].TimeOfDay), TimePriority(sorted[j].TimeOfDay)
		if pi != pj {
			return pi < pj
		}
		return sorted[i].SceneNumber < sorted[j].SceneNumber
	})

	return sorted
}
