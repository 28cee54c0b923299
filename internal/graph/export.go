package graph

import "fmt"

// Export is the lossless wire form of a graph: raw nodes and edges with
// stored (undecayed) confidences.
type Export struct {
	Nodes []*KnowledgeNode `json:"nodes"`
	Edges []*KnowledgeEdge `json:"edges"`
}

// ImportResult counts what Import actually inserted.
type ImportResult struct {
	NodesImported int `json:"nodesImported"`
	EdgesImported int `json:"edgesImported"`
}

// Export returns a deep copy of every node and edge.
func (g *Graph) Export() *Export {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := &Export{
		Nodes: make([]*KnowledgeNode, 0, len(g.nodes)),
		Edges: make([]*KnowledgeEdge, 0, len(g.edges)),
	}
	for _, n := range g.nodes {
		out.Nodes = append(out.Nodes, n.clone())
	}
	for _, e := range g.edges {
		edge := *e
		out.Edges = append(out.Edges, &edge)
	}
	return out
}

// Import inserts nodes and edges from an export that are not already
// present. Nodes are inserted verbatim. Edges are inserted only when
// both endpoints exist after the node pass; dangling edges are skipped
// silently. Re-importing a fully present export is a no-op. A
// structurally invalid payload is rejected whole, before anything is
// inserted, so a failed import never leaves a partial graph behind.
func (g *Graph) Import(data *Export) (ImportResult, error) {
	var result ImportResult
	if data == nil {
		return result, fmt.Errorf("import: nil payload")
	}
	for _, n := range data.Nodes {
		if n == nil || n.ID == "" {
			return result, fmt.Errorf("import: node missing id")
		}
	}
	for _, e := range data.Edges {
		if e == nil || e.ID == "" {
			return result, fmt.Errorf("import: edge missing id")
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	for _, n := range data.Nodes {
		if _, ok := g.nodes[n.ID]; ok {
			continue
		}
		g.nodes[n.ID] = n.clone()
		result.NodesImported++
	}

	for _, e := range data.Edges {
		if _, ok := g.edges[e.ID]; ok {
			continue
		}
		if _, ok := g.nodes[e.FromNodeID]; !ok {
			continue
		}
		if _, ok := g.nodes[e.ToNodeID]; !ok {
			continue
		}
		edge := *e
		g.edges[edge.ID] = &edge
		g.indexEdgeLocked(&edge)
		result.EdgesImported++
	}

	g.evictLocked()

	return result, nil
}
