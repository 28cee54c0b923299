package graph

import (
	"sort"
	"time"
)

// KnowledgeEdge is a directed, optionally bidirectional, weighted
// relationship between two nodes.
type KnowledgeEdge struct {
	ID            string    `json:"id"`
	FromNodeID    string    `json:"fromNodeId"`
	ToNodeID      string    `json:"toNodeId"`
	Relation      string    `json:"relation"`
	Weight        float64   `json:"weight"`
	Bidirectional bool      `json:"bidirectional"`
	CreatedAt     time.Time `json:"createdAt"`
}

func clampWeight(w float64) float64 {
	if w < 0 {
		return 0
	}
	if w > 1 {
		return 1
	}
	return w
}

// AddEdge links two existing nodes. Returns nil if either endpoint is
// unknown — a soft failure, not an error. Weight is clamped to [0, 1].
// A bidirectional edge is discoverable from both endpoints without a
// second AddEdge call.
func (g *Graph) AddEdge(fromID, toID, relation string, weight float64, bidirectional bool) *KnowledgeEdge {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addEdgeLocked(fromID, toID, relation, weight, bidirectional)
}

func (g *Graph) addEdgeLocked(fromID, toID, relation string, weight float64, bidirectional bool) *KnowledgeEdge {
	if _, ok := g.nodes[fromID]; !ok {
		return nil
	}
	if _, ok := g.nodes[toID]; !ok {
		return nil
	}

	id := EdgeID(relation, fromID, toID)
	edge, ok := g.edges[id]
	if !ok {
		edge = &KnowledgeEdge{
			ID:         id,
			FromNodeID: fromID,
			ToNodeID:   toID,
			Relation:   relation,
			CreatedAt:  time.Now(),
		}
		g.edges[id] = edge
	}
	edge.Weight = clampWeight(weight)
	edge.Bidirectional = bidirectional

	g.indexEdgeLocked(edge)

	out := *edge
	return &out
}

func (g *Graph) indexEdgeLocked(edge *KnowledgeEdge) {
	for _, nodeID := range []string{edge.FromNodeID, edge.ToNodeID} {
		set, ok := g.adjacency[nodeID]
		if !ok {
			set = make(map[string]struct{})
			g.adjacency[nodeID] = set
		}
		set[edge.ID] = struct{}{}
	}
}

// GetEdgesForNode returns every edge touching the node in either
// direction, including the reverse direction of bidirectional edges.
func (g *Graph) GetEdgesForNode(nodeID string) []KnowledgeEdge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	var out []KnowledgeEdge
	for edgeID := range g.adjacency[nodeID] {
		edge, ok := g.edges[edgeID]
		if !ok {
			continue
		}
		// Incoming direction of a one-way edge is still "touching".
		out = append(out, *edge)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// GetRelatedNodes returns the deduplicated first-hop neighbors reachable
// from any of the given node ids via any edge.
func (g *Graph) GetRelatedNodes(nodeIDs []string) []*KnowledgeNode {
	g.mu.RLock()
	defer g.mu.RUnlock()

	input := make(map[string]struct{}, len(nodeIDs))
	for _, id := range nodeIDs {
		input[id] = struct{}{}
	}

	seen := make(map[string]struct{})
	var out []*KnowledgeNode
	for id := range input {
		for edgeID := range g.adjacency[id] {
			edge, ok := g.edges[edgeID]
			if !ok {
				continue
			}
			neighbor := edge.ToNodeID
			if neighbor == id {
				neighbor = edge.FromNodeID
			}
			if _, dup := seen[neighbor]; dup {
				continue
			}
			node, ok := g.nodes[neighbor]
			if !ok {
				continue
			}
			seen[neighbor] = struct{}{}
			out = append(out, node.clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
