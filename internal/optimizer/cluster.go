package optimizer

import (
	"fmt"

	"prodsight-server/internal/models"
)

// Similarity thresholds for the greedy clustering pass. Above joinThreshold
// two scenes shoot as one location group; above mergeKeyThreshold the group
// is renamed to a composite of both location names.
const (
	joinThreshold     = 0.3
	mergeKeyThreshold = 0.5
)

// LocationCluster is one group of scenes judged to share a location. Key is
// either the seed scene's location or a "{locA} & {locB}" composite.
type LocationCluster struct {
	Key    string
	Scenes []models.Scene
}

// ClusterByLocation groups scenes into location clusters with a single greedy
// pass: each unconsumed scene seeds a cluster and pulls in every later
// unconsumed scene whose location similarity exceeds the join threshold.
// Clusters are returned in seed order, so the result depends on input order;
// there is no iterative refinement. Every input scene lands in exactly one
// cluster.
func ClusterByLocation(scenes []models.Scene) []LocationCluster {
	clusters := make([]LocationCluster, 0, len(scenes))
	consumed := make([]bool, len(scenes))

	for i, seed := range scenes {
		if consumed[i] {
			continue
		}
		consumed[i] = true

		cluster := LocationCluster{
			Key:    seed.Location,
			Scenes: []models.Scene{seed},
		}

		for j, other := range scenes {
			if consumed[j] || i == j {
				continue
			}

			similarity := LocationSimilarity(seed.Location, other.Location)
			if similarity > joinThreshold {
				cluster.Scenes = append(cluster.Scenes, other)
				consumed[j] = true
				if similarity > mergeKeyThreshold {
					// Last qualifying pair wins the composite name.
					cluster.Key = fmt.Sprintf("%s & %s", seed.Location, other.Location)
				}
			}
		}

		clusters = append(clusters, cluster)
	}

	return clusters
}
