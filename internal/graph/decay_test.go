package graph

import (
	"fmt"
	"math"
	"testing"
	"time"
)

func TestGetNodeFreshShowsNegligibleDecay(t *testing.T) {
	g := New()
	res := g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	node := g.GetNode(res.NodeID)
	if node == nil {
		t.Fatal("expected node")
	}
	if math.Abs(node.Confidence-0.8) > 0.001 {
		t.Errorf("confidence = %f, want ~0.8 for a fresh node", node.Confidence)
	}
}

func TestGetNodeDecaysOldNode(t *testing.T) {
	g := New()
	res := g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	// Backdate the stored node to simulate age.
	g.mu.Lock()
	g.nodes[res.NodeID].LastUpdatedAt = time.Now().Add(-30 * 24 * time.Hour)
	g.mu.Unlock()

	node := g.GetNode(res.NodeID)
	want := 0.8 * math.Pow(1-DailyDecayRate, 30)
	if math.Abs(node.Confidence-want) > 0.01 {
		t.Errorf("confidence = %f, want ~%f after 30 days", node.Confidence, want)
	}

	// Stored value must be untouched.
	g.mu.RLock()
	stored := g.nodes[res.NodeID].Confidence
	g.mu.RUnlock()
	if stored != 0.8 {
		t.Errorf("stored confidence = %f, want 0.8 (decay is read-time only)", stored)
	}
}

func TestGetNodeDecayFloor(t *testing.T) {
	g := New()
	res := g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	g.mu.Lock()
	g.nodes[res.NodeID].LastUpdatedAt = time.Now().Add(-10 * 365 * 24 * time.Hour)
	g.mu.Unlock()

	if node := g.GetNode(res.NodeID); node.Confidence != MinConfidence {
		t.Errorf("confidence = %f, want floor %f", node.Confidence, MinConfidence)
	}
}

func TestGetNodeBumpsAccess(t *testing.T) {
	g := New()
	res := g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	g.GetNode(res.NodeID)
	node := g.GetNode(res.NodeID)
	if node.AccessCount != 2 {
		t.Errorf("accessCount = %d, want 2", node.AccessCount)
	}
}

func TestGetNodeUnknown(t *testing.T) {
	g := New()
	if g.GetNode("kn_nope") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestQueryUsesStoredConfidence(t *testing.T) {
	g := New()
	res := g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	g.mu.Lock()
	g.nodes[res.NodeID].LastUpdatedAt = time.Now().Add(-365 * 24 * time.Hour)
	g.mu.Unlock()

	got := g.Query(Filter{Category: "combat"})
	if len(got) != 1 {
		t.Fatal("expected one match")
	}
	if got[0].Confidence != 0.8 {
		t.Errorf("query confidence = %f, want stored 0.8 (bulk reads skip decay)", got[0].Confidence)
	}
}

func TestEvictionEnforcesCapacity(t *testing.T) {
	g := NewWithCapacity(10)

	for i := 0; i < 25; i++ {
		g.RecordExperience(Observation{
			Subject:    fmt.Sprintf("Mob %d", i),
			Predicate:  "defeated_with",
			Object:     "melee",
			Category:   "combat",
			Confidence: 0.5,
			Source:     Source{BotID: "bot-1"},
		})
	}

	if g.Len() > 10 {
		t.Errorf("len = %d, want <= capacity 10", g.Len())
	}
}

func TestEvictionPrefersStaleLowConfidence(t *testing.T) {
	g := NewWithCapacity(2)

	keep := g.RecordExperience(Observation{
		Subject: "Hogger", Predicate: "defeated_with", Object: "kiting",
		Category: "combat", Confidence: 0.95, Source: Source{BotID: "bot-1"},
	})
	doomed := g.RecordExperience(Observation{
		Subject: "Kobold", Predicate: "fled_from", Object: "candles",
		Category: "combat", Confidence: 0.15, Source: Source{BotID: "bot-1"},
	})

	// Make the low-confidence node stale as well.
	g.mu.Lock()
	g.nodes[doomed.NodeID].LastAccessedAt = time.Now().Add(-90 * 24 * time.Hour)
	g.mu.Unlock()

	g.RecordExperience(Observation{
		Subject: "Murloc", Predicate: "defeated_with", Object: "ranged",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	g.mu.RLock()
	_, keptOK := g.nodes[keep.NodeID]
	_, doomedOK := g.nodes[doomed.NodeID]
	g.mu.RUnlock()

	if !keptOK {
		t.Error("high-confidence fresh node should survive eviction")
	}
	if doomedOK {
		t.Error("stale low-confidence node should be evicted first")
	}
}

func TestEvictionCascadesEdges(t *testing.T) {
	g := NewWithCapacity(2)

	a := g.RecordExperience(Observation{
		Subject: "Frostbolt", Predicate: "slows", Object: "melee",
		Category: "combat", Confidence: 0.9, Source: Source{BotID: "bot-1"},
	})
	b := g.RecordExperience(Observation{
		Subject: "Kobold", Predicate: "fled_from", Object: "candles",
		Category: "combat", Confidence: 0.15, Source: Source{BotID: "bot-1"},
	})
	g.AddEdge(a.NodeID, b.NodeID, "related", 0.5, false)

	g.mu.Lock()
	g.nodes[b.NodeID].LastAccessedAt = time.Now().Add(-90 * 24 * time.Hour)
	g.mu.Unlock()

	g.RecordExperience(Observation{
		Subject: "Murloc", Predicate: "defeated_with", Object: "ranged",
		Category: "combat", Confidence: 0.8, Source: Source{BotID: "bot-1"},
	})

	for _, edge := range g.GetEdgesForNode(a.NodeID) {
		if edge.ToNodeID == b.NodeID || edge.FromNodeID == b.NodeID {
			t.Error("edge to evicted node should be gone")
		}
	}
}
