package graph

import (
	"math"
	"time"
)

// DailyDecayRate is the fraction of confidence lost per day of age.
// Facts never decay below MinConfidence.
const DailyDecayRate = 0.01

// decayedConfidence discounts a stored confidence by elapsed time since
// the node was last written. The stored value is never mutated.
func decayedConfidence(confidence float64, lastUpdated, now time.Time) float64 {
	days := now.Sub(lastUpdated).Hours() / 24
	if days <= 0 {
		return confidence
	}
	decayed := confidence * math.Pow(1-DailyDecayRate, days)
	if decayed < MinConfidence {
		return MinConfidence
	}
	return decayed
}

// GetNode returns a copy of the node with its confidence decayed for
// age, or nil if the id is unknown. This is a read that mutates state:
// it bumps the access count and refreshes the last-access time, so it
// takes the write lock. Bulk reads (Query, BestApproach, Stats, Export)
// deliberately use the stored, undecayed confidence instead.
func (g *Graph) GetNode(nodeID string) *KnowledgeNode {
	g.mu.Lock()
	defer g.mu.Unlock()

	node, ok := g.nodes[nodeID]
	if !ok {
		return nil
	}

	now := time.Now()
	node.AccessCount++
	node.LastAccessedAt = now

	out := node.clone()
	out.Confidence = decayedConfidence(node.Confidence, node.LastUpdatedAt, now)
	return out
}
