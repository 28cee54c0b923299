package graph

import (
	"sync"
	"sync/atomic"
	"time"
)

// Graph is a bounded, process-local working memory shared by many bot
// agents. Nodes are deduplicated facts keyed by their triple identity;
// edges live in an adjacency index owned by the graph, never as direct
// references between nodes.
type Graph struct {
	mu        sync.RWMutex
	nodes     map[string]*KnowledgeNode
	edges     map[string]*KnowledgeEdge
	adjacency map[string]map[string]struct{} // node id -> edge ids touching it

	capacity     int
	totalQueries atomic.Int64
}

// New creates an empty graph with the default node capacity.
func New() *Graph {
	return NewWithCapacity(DefaultCapacity)
}

// NewWithCapacity creates an empty graph bounded to at most capacity nodes.
func NewWithCapacity(capacity int) *Graph {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Graph{
		nodes:     make(map[string]*KnowledgeNode),
		edges:     make(map[string]*KnowledgeEdge),
		adjacency: make(map[string]map[string]struct{}),
		capacity:  capacity,
	}
}

// RecordExperience writes one observation into the graph. A triple that
// already exists is reinforced: confidences are averaged plus a fixed
// bonus, tags are unioned, context keys are merged with the newest write
// winning, and category/source follow the latest writer. A new triple
// creates a node. Declared relations are resolved by subject and added
// as edges; unresolvable subjects are skipped silently. The whole
// sequence is one atomic unit.
func (g *Graph) RecordExperience(obs Observation) MergeResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	id := NodeID(obs.Subject, obs.Predicate, obs.Object)

	var result MergeResult
	existing, ok := g.nodes[id]
	if !ok {
		node := &KnowledgeNode{
			ID:             id,
			Category:       obs.Category,
			Subject:        obs.Subject,
			Predicate:      obs.Predicate,
			Object:         obs.Object,
			Confidence:     clampConfidence(obs.Confidence),
			Context:        make(map[string]any, len(obs.Context)),
			Source:         obs.Source,
			CreatedAt:      now,
			LastUpdatedAt:  now,
			LastAccessedAt: now,
		}
		for _, tag := range obs.Tags {
			if !node.hasTag(tag) {
				node.Tags = append(node.Tags, tag)
			}
		}
		for k, v := range obs.Context {
			node.Context[k] = v
		}
		if obs.MapID != nil {
			m := *obs.MapID
			node.MapID = &m
		}
		if obs.ZoneID != nil {
			z := *obs.ZoneID
			node.ZoneID = &z
		}
		g.nodes[id] = node
		result = MergeResult{
			NodeID:        id,
			Action:        ActionCreated,
			NewConfidence: node.Confidence,
		}
	} else {
		prev := existing.Confidence
		existing.Confidence = clampConfidence((prev+obs.Confidence)/2 + ReinforcementBonus)
		for _, tag := range obs.Tags {
			if !existing.hasTag(tag) {
				existing.Tags = append(existing.Tags, tag)
			}
		}
		if existing.Context == nil {
			existing.Context = make(map[string]any, len(obs.Context))
		}
		for k, v := range obs.Context {
			existing.Context[k] = v
		}
		existing.Category = obs.Category
		existing.Source = obs.Source
		if obs.MapID != nil {
			m := *obs.MapID
			existing.MapID = &m
		}
		if obs.ZoneID != nil {
			z := *obs.ZoneID
			existing.ZoneID = &z
		}
		existing.LastUpdatedAt = now
		result = MergeResult{
			NodeID:             id,
			Action:             ActionUpdated,
			PreviousConfidence: &prev,
			NewConfidence:      existing.Confidence,
		}
	}

	for _, rel := range obs.RelatedTo {
		target := g.findBySubjectLocked(rel.Subject)
		if target == nil || target.ID == id {
			continue
		}
		weight := DefaultEdgeWeight
		if rel.Weight != nil {
			weight = *rel.Weight
		}
		g.addEdgeLocked(id, target.ID, rel.Relation, weight, rel.Bidirectional)
	}

	g.evictLocked()

	return result
}

// findBySubjectLocked resolves a subject to the highest-confidence node
// carrying it. Comparison is case-insensitive.
func (g *Graph) findBySubjectLocked(subject string) *KnowledgeNode {
	want := normalizeTerm(subject)
	var best *KnowledgeNode
	for _, n := range g.nodes {
		if normalizeTerm(n.Subject) != want {
			continue
		}
		if best == nil || n.Confidence > best.Confidence {
			best = n
		}
	}
	return best
}

// RemoveNode deletes a node and every edge referencing it. Returns false
// if the node does not exist.
func (g *Graph) RemoveNode(nodeID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.removeNodeLocked(nodeID)
}

func (g *Graph) removeNodeLocked(nodeID string) bool {
	if _, ok := g.nodes[nodeID]; !ok {
		return false
	}
	for edgeID := range g.adjacency[nodeID] {
		edge, ok := g.edges[edgeID]
		if !ok {
			continue
		}
		delete(g.edges, edgeID)
		delete(g.adjacency[edge.FromNodeID], edgeID)
		delete(g.adjacency[edge.ToNodeID], edgeID)
	}
	delete(g.adjacency, nodeID)
	delete(g.nodes, nodeID)
	return true
}

// Clear empties the graph and resets the query counter.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes = make(map[string]*KnowledgeNode)
	g.edges = make(map[string]*KnowledgeEdge)
	g.adjacency = make(map[string]map[string]struct{})
	g.totalQueries.Store(0)
}

// Len returns the current node count.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.nodes)
}
