package graph

import "sort"

// Filter selects nodes for Query. All set fields must match (AND
// semantics); the zero filter matches everything. Subject comparison is
// case-insensitive; everything else is exact. MinConfidence is an
// inclusive lower bound on the stored confidence.
type Filter struct {
	Category      string   `json:"category,omitempty"`
	Subject       string   `json:"subject,omitempty"`
	BotID         string   `json:"botId,omitempty"`
	Tags          []string `json:"tags,omitempty"` // node must carry all of these
	MapID         *int     `json:"mapId,omitempty"`
	ZoneID        *int     `json:"zoneId,omitempty"`
	Predicate     string   `json:"predicate,omitempty"`
	Object        string   `json:"object,omitempty"`
	MinConfidence float64  `json:"minConfidence,omitempty"`
	Limit         int      `json:"limit,omitempty"`
}

func (f *Filter) matches(n *KnowledgeNode) bool {
	if f.Category != "" && n.Category != f.Category {
		return false
	}
	if f.Subject != "" && normalizeTerm(n.Subject) != normalizeTerm(f.Subject) {
		return false
	}
	if f.BotID != "" && n.Source.BotID != f.BotID {
		return false
	}
	for _, tag := range f.Tags {
		if !n.hasTag(tag) {
			return false
		}
	}
	if f.MapID != nil && (n.MapID == nil || *n.MapID != *f.MapID) {
		return false
	}
	if f.ZoneID != nil && (n.ZoneID == nil || *n.ZoneID != *f.ZoneID) {
		return false
	}
	if f.Predicate != "" && n.Predicate != f.Predicate {
		return false
	}
	if f.Object != "" && n.Object != f.Object {
		return false
	}
	if f.MinConfidence > 0 && n.Confidence < f.MinConfidence {
		return false
	}
	return true
}

// Query returns copies of all nodes matching the filter, sorted by
// stored confidence descending. Ranking uses stored confidence, not the
// decayed value — the decay discount applies only to single-node reads.
func (g *Graph) Query(filter Filter) []*KnowledgeNode {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.totalQueries.Add(1)

	var out []*KnowledgeNode
	for _, n := range g.nodes {
		if filter.matches(n) {
			out = append(out, n.clone())
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Confidence != out[j].Confidence {
			return out[i].Confidence > out[j].Confidence
		}
		return out[i].ID < out[j].ID
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out
}

// Approach is the result of BestApproach: the single best-known fact for
// a (category, subject) pair plus the ranked runners-up.
type Approach struct {
	Best         *KnowledgeNode   `json:"bestApproach"`
	Alternatives []*KnowledgeNode `json:"alternatives"`
	TotalKnown   int              `json:"totalKnown"`
}

// BestApproach returns the highest-confidence fact matching the category
// and subject, the remaining matches in confidence order, and the total
// match count. An unknown pair yields a nil Best and empty alternatives.
func (g *Graph) BestApproach(category, subject string) Approach {
	matches := g.Query(Filter{Category: category, Subject: subject})

	approach := Approach{Alternatives: []*KnowledgeNode{}, TotalKnown: len(matches)}
	if len(matches) == 0 {
		return approach
	}
	approach.Best = matches[0]
	approach.Alternatives = matches[1:]
	return approach
}
