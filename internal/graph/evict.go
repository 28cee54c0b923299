package graph

import (
	"log"
	"math"
	"sort"
	"time"
)

// evictionIdleHalfLife controls how quickly an untouched node's
// retention score halves. Combined with stored confidence this makes
// stale, low-confidence facts the first to go.
const evictionIdleHalfLife = 30 * 24 * time.Hour

func retentionScore(n *KnowledgeNode, now time.Time) float64 {
	idle := now.Sub(n.LastAccessedAt)
	if idle < 0 {
		idle = 0
	}
	halves := float64(idle) / float64(evictionIdleHalfLife)
	return n.Confidence * math.Pow(0.5, halves)
}

// evictLocked enforces the capacity bound by removing the lowest-scoring
// nodes until the graph is back under capacity. Edge cascades come for
// free via removeNodeLocked.
func (g *Graph) evictLocked() {
	if len(g.nodes) <= g.capacity {
		return
	}

	now := time.Now()
	candidates := make([]*KnowledgeNode, 0, len(g.nodes))
	for _, n := range g.nodes {
		candidates = append(candidates, n)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return retentionScore(candidates[i], now) < retentionScore(candidates[j], now)
	})

	evicted := 0
	for _, n := range candidates {
		if len(g.nodes) <= g.capacity {
			break
		}
		g.removeNodeLocked(n.ID)
		evicted++
	}
	if evicted > 0 {
		log.Printf("graph: evicted %d nodes (capacity %d)", evicted, g.capacity)
	}
}
