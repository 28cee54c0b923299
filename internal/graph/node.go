package graph

import "time"

// Confidence bounds and tuning constants for the knowledge graph.
const (
	MinConfidence      = 0.1
	MaxConfidence      = 1.0
	ReinforcementBonus = 0.05
	DefaultCapacity    = 10000
	DefaultEdgeWeight  = 0.5
)

// Source identifies the bot that wrote (or most recently reinforced) a node.
type Source struct {
	BotID   string `json:"botId"`
	BotName string `json:"botName"`
}

// KnowledgeNode is one deduplicated fact, keyed by its
// (subject, predicate, object) identity.
type KnowledgeNode struct {
	ID             string         `json:"id"`
	Category       string         `json:"category"`
	Subject        string         `json:"subject"`
	Predicate      string         `json:"predicate"`
	Object         string         `json:"object"`
	Confidence     float64        `json:"confidence"`
	Tags           []string       `json:"tags"`
	Context        map[string]any `json:"context"`
	Source         Source         `json:"source"`
	CreatedAt      time.Time      `json:"createdAt"`
	LastUpdatedAt  time.Time      `json:"lastUpdatedAt"`
	LastAccessedAt time.Time      `json:"lastAccessedAt"`
	AccessCount    int            `json:"accessCount"`
	MapID          *int           `json:"mapId,omitempty"`
	ZoneID         *int           `json:"zoneId,omitempty"`
}

// clone returns a deep copy safe to hand out past the graph lock.
func (n *KnowledgeNode) clone() *KnowledgeNode {
	c := *n
	c.Tags = append([]string(nil), n.Tags...)
	if n.Context != nil {
		c.Context = make(map[string]any, len(n.Context))
		for k, v := range n.Context {
			c.Context[k] = v
		}
	}
	if n.MapID != nil {
		m := *n.MapID
		c.MapID = &m
	}
	if n.ZoneID != nil {
		z := *n.ZoneID
		c.ZoneID = &z
	}
	return &c
}

func (n *KnowledgeNode) hasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Relation declares a link from a freshly recorded observation to an
// existing node, resolved by subject. A nil Weight means "use the
// default"; an explicit 0 is kept.
type Relation struct {
	Subject       string   `json:"subject"`
	Relation      string   `json:"relation"`
	Weight        *float64 `json:"weight,omitempty"`
	Bidirectional bool     `json:"bidirectional"`
}

// Observation is one bot's report of something it saw or did.
type Observation struct {
	Subject    string         `json:"subject"`
	Predicate  string         `json:"predicate"`
	Object     string         `json:"object"`
	Category   string         `json:"category"`
	Confidence float64        `json:"confidence"`
	Tags       []string       `json:"tags"`
	Context    map[string]any `json:"context"`
	Source     Source         `json:"source"`
	MapID      *int           `json:"mapId,omitempty"`
	ZoneID     *int           `json:"zoneId,omitempty"`
	RelatedTo  []Relation     `json:"relatedTo,omitempty"`
}

// Merge actions reported by RecordExperience.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
)

// MergeResult describes what RecordExperience did with an observation.
type MergeResult struct {
	NodeID             string   `json:"nodeId"`
	Action             string   `json:"action"`
	PreviousConfidence *float64 `json:"previousConfidence,omitempty"`
	NewConfidence      float64  `json:"newConfidence"`
}

func clampConfidence(c float64) float64 {
	if c < MinConfidence {
		return MinConfidence
	}
	if c > MaxConfidence {
		return MaxConfidence
	}
	return c
}
