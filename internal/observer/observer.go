// Package observer is the layer bot agents call to write domain events
// into the shared knowledge graph. It resolves numeric game entity ids
// to display names, falls back to synthetic labels on lookup failure,
// and shapes each event into an observation for the graph's merge
// engine. It consumes the graph strictly through its public contract.
package observer

import (
	"fmt"

	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/world"
)

// Categories used by the built-in recorders.
const (
	CategoryCombat      = "combat"
	CategoryQuest       = "quest"
	CategoryExploration = "exploration"
	CategoryEconomy     = "economy"
)

// Observer records one bot's experiences into a shared graph.
type Observer struct {
	graph *graph.Graph
	names world.Resolver // may be nil; all lookups then use synthetic labels
	src   graph.Source
}

// New creates an Observer writing on behalf of the given bot.
func New(g *graph.Graph, names world.Resolver, botID, botName string) *Observer {
	return &Observer{
		graph: g,
		names: names,
		src:   graph.Source{BotID: botID, BotName: botName},
	}
}

func (o *Observer) creatureLabel(entry int) string {
	if o.names != nil {
		if name, ok := o.names.CreatureName(entry); ok {
			return name
		}
	}
	return fmt.Sprintf("Creature %d", entry)
}

func (o *Observer) questLabel(entry int) string {
	if o.names != nil {
		if title, ok := o.names.QuestName(entry); ok {
			return title
		}
	}
	return fmt.Sprintf("Quest %d", entry)
}

func (o *Observer) zoneLabel(entry int) string {
	if o.names != nil {
		if name, ok := o.names.ZoneName(entry); ok {
			return name
		}
	}
	return fmt.Sprintf("Zone %d", entry)
}

// CombatOutcome is one fight's result against a creature.
type CombatOutcome struct {
	CreatureEntry int
	Strategy      string
	Victory       bool
	DamageDealt   int
	DamageTaken   int
	DurationSec   float64
	MapID         *int
	ZoneID        *int
}

// RecordCombat writes a combat outcome. Victories land as
// "<creature> defeated_with <strategy>", losses as "lost_to".
func (o *Observer) RecordCombat(c CombatOutcome) graph.MergeResult {
	predicate := "defeated_with"
	tags := []string{"combat", "victory"}
	confidence := 0.8
	if !c.Victory {
		predicate = "lost_to"
		tags = []string{"combat", "defeat"}
		confidence = 0.7
	}

	return o.graph.RecordExperience(graph.Observation{
		Subject:    o.creatureLabel(c.CreatureEntry),
		Predicate:  predicate,
		Object:     c.Strategy,
		Category:   CategoryCombat,
		Confidence: confidence,
		Tags:       tags,
		Context: map[string]any{
			"damageDealt": float64(c.DamageDealt),
			"damageTaken": float64(c.DamageTaken),
			"duration":    c.DurationSec,
		},
		Source: o.src,
		MapID:  c.MapID,
		ZoneID: c.ZoneID,
	})
}

// QuestOutcome is one attempt at a quest.
type QuestOutcome struct {
	QuestEntry int
	Approach   string
	Completed  bool
	ZoneID     *int
}

// RecordQuest writes a quest outcome.
func (o *Observer) RecordQuest(q QuestOutcome) graph.MergeResult {
	predicate := "completed_by"
	tags := []string{"quest", "completed"}
	confidence := 0.8
	if !q.Completed {
		predicate = "failed_with"
		tags = []string{"quest", "failed"}
		confidence = 0.6
	}

	return o.graph.RecordExperience(graph.Observation{
		Subject:    o.questLabel(q.QuestEntry),
		Predicate:  predicate,
		Object:     q.Approach,
		Category:   CategoryQuest,
		Confidence: confidence,
		Tags:       tags,
		Source:     o.src,
		ZoneID:     q.ZoneID,
	})
}

// Discovery is a newly found location of interest.
type Discovery struct {
	LocationName string
	ZoneEntry    int
	MapID        *int
	ZoneID       *int
}

// RecordDiscovery writes a discovered location as
// "<location> located_in <zone>".
func (o *Observer) RecordDiscovery(d Discovery) graph.MergeResult {
	return o.graph.RecordExperience(graph.Observation{
		Subject:    d.LocationName,
		Predicate:  "located_in",
		Object:     o.zoneLabel(d.ZoneEntry),
		Category:   CategoryExploration,
		Confidence: 0.9,
		Tags:       []string{"discovery", "location"},
		Source:     o.src,
		MapID:      d.MapID,
		ZoneID:     d.ZoneID,
	})
}

// PriceObservation is one sighting of an item price at a vendor or on
// the auction house.
type PriceObservation struct {
	ItemName    string
	Seller      string
	PriceCopper int
	MapID       *int
	ZoneID      *int
}

// RecordPrice writes an observed price as "<item> sold_by <seller>".
func (o *Observer) RecordPrice(p PriceObservation) graph.MergeResult {
	return o.graph.RecordExperience(graph.Observation{
		Subject:    p.ItemName,
		Predicate:  "sold_by",
		Object:     p.Seller,
		Category:   CategoryEconomy,
		Confidence: 0.7,
		Tags:       []string{"economy", "price"},
		Context: map[string]any{
			"priceCopper": float64(p.PriceCopper),
		},
		Source: o.src,
		MapID:  p.MapID,
		ZoneID: p.ZoneID,
	})
}

// LinkResult reports whether a relation between two known subjects could
// be built.
type LinkResult struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Edge    *graph.KnowledgeEdge `json:"edge,omitempty"`
}

// Link builds a relationship edge between the best-known nodes for two
// subjects. An unresolvable subject is a soft failure, not an error.
func (o *Observer) Link(fromSubject, relation, toSubject string, weight float64, bidirectional bool) LinkResult {
	from := o.graph.Query(graph.Filter{Subject: fromSubject, Limit: 1})
	if len(from) == 0 {
		return LinkResult{Error: fmt.Sprintf("No knowledge found for subject %q", fromSubject)}
	}
	to := o.graph.Query(graph.Filter{Subject: toSubject, Limit: 1})
	if len(to) == 0 {
		return LinkResult{Error: fmt.Sprintf("No knowledge found for subject %q", toSubject)}
	}

	edge := o.graph.AddEdge(from[0].ID, to[0].ID, relation, weight, bidirectional)
	if edge == nil {
		return LinkResult{Error: "edge endpoints vanished during linking"}
	}
	return LinkResult{Success: true, Edge: edge}
}

// BestApproach asks the graph for the best-known approach to a subject
// in a category. Thin passthrough kept here so bots depend on one
// package.
func (o *Observer) BestApproach(category, subject string) graph.Approach {
	return o.graph.BestApproach(category, subject)
}
