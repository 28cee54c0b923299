package graph

import "sort"

// Contributor is a writer ranked by how many nodes it authored (or most
// recently reinforced).
type Contributor struct {
	BotID   string `json:"botId"`
	BotName string `json:"botName"`
	Nodes   int    `json:"nodes"`
}

// GraphStats is a point-in-time summary of the whole graph.
type GraphStats struct {
	TotalNodes        int            `json:"totalNodes"`
	TotalEdges        int            `json:"totalEdges"`
	AverageConfidence float64        `json:"averageConfidence"`
	NodesByCategory   map[string]int `json:"nodesByCategory"`
	TopContributors   []Contributor  `json:"topContributors"`
	TotalQueries      int64          `json:"totalQueries"`
}

// Stats aggregates counts, the mean stored confidence, the per-category
// breakdown, and the top contributing writers.
func (g *Graph) Stats() GraphStats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	stats := GraphStats{
		TotalNodes:      len(g.nodes),
		TotalEdges:      len(g.edges),
		NodesByCategory: make(map[string]int),
		TotalQueries:    g.totalQueries.Load(),
	}

	byBot := make(map[string]*Contributor)
	sum := 0.0
	for _, n := range g.nodes {
		sum += n.Confidence
		stats.NodesByCategory[n.Category]++

		c, ok := byBot[n.Source.BotID]
		if !ok {
			c = &Contributor{BotID: n.Source.BotID, BotName: n.Source.BotName}
			byBot[n.Source.BotID] = c
		}
		c.Nodes++
	}
	if stats.TotalNodes > 0 {
		stats.AverageConfidence = sum / float64(stats.TotalNodes)
	}

	for _, c := range byBot {
		stats.TopContributors = append(stats.TopContributors, *c)
	}
	sort.Slice(stats.TopContributors, func(i, j int) bool {
		if stats.TopContributors[i].Nodes != stats.TopContributors[j].Nodes {
			return stats.TopContributors[i].Nodes > stats.TopContributors[j].Nodes
		}
		return stats.TopContributors[i].BotID < stats.TopContributors[j].BotID
	})

	return stats
}
