package server

import (
	"encoding/json"
	"net/http"

	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/observer"
)

// observerFor builds a per-request observer writing on behalf of the
// given bot. The bot name is filled from the agent registry when the
// caller only sent an id.
func (s *Server) observerFor(botID, botName string) *observer.Observer {
	if botID != "" && botName == "" {
		s.mu.Lock()
		botName = s.agents[botID]
		s.mu.Unlock()
	}
	return observer.New(s.graph, s.names, botID, botName)
}

func writeMergeResult(w http.ResponseWriter, result graph.MergeResult) {
	status := http.StatusOK
	if result.Action == graph.ActionCreated {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

func (s *Server) handleCombatEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotID         string  `json:"botId"`
		BotName       string  `json:"botName"`
		CreatureEntry int     `json:"creatureEntry"`
		Strategy      string  `json:"strategy"`
		Victory       bool    `json:"victory"`
		DamageDealt   int     `json:"damageDealt"`
		DamageTaken   int     `json:"damageTaken"`
		DurationSec   float64 `json:"durationSec"`
		MapID         *int    `json:"mapId"`
		ZoneID        *int    `json:"zoneId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.CreatureEntry <= 0 || req.Strategy == "" {
		writeError(w, http.StatusBadRequest, "creatureEntry and strategy required")
		return
	}

	obs := s.observerFor(req.BotID, req.BotName)
	writeMergeResult(w, obs.RecordCombat(observer.CombatOutcome{
		CreatureEntry: req.CreatureEntry,
		Strategy:      req.Strategy,
		Victory:       req.Victory,
		DamageDealt:   req.DamageDealt,
		DamageTaken:   req.DamageTaken,
		DurationSec:   req.DurationSec,
		MapID:         req.MapID,
		ZoneID:        req.ZoneID,
	}))
}

func (s *Server) handleQuestEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotID      string `json:"botId"`
		BotName    string `json:"botName"`
		QuestEntry int    `json:"questEntry"`
		Approach   string `json:"approach"`
		Completed  bool   `json:"completed"`
		ZoneID     *int   `json:"zoneId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.QuestEntry <= 0 || req.Approach == "" {
		writeError(w, http.StatusBadRequest, "questEntry and approach required")
		return
	}

	obs := s.observerFor(req.BotID, req.BotName)
	writeMergeResult(w, obs.RecordQuest(observer.QuestOutcome{
		QuestEntry: req.QuestEntry,
		Approach:   req.Approach,
		Completed:  req.Completed,
		ZoneID:     req.ZoneID,
	}))
}

func (s *Server) handleDiscoveryEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotID        string `json:"botId"`
		BotName      string `json:"botName"`
		LocationName string `json:"locationName"`
		ZoneEntry    int    `json:"zoneEntry"`
		MapID        *int   `json:"mapId"`
		ZoneID       *int   `json:"zoneId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.LocationName == "" || req.ZoneEntry <= 0 {
		writeError(w, http.StatusBadRequest, "locationName and zoneEntry required")
		return
	}

	obs := s.observerFor(req.BotID, req.BotName)
	writeMergeResult(w, obs.RecordDiscovery(observer.Discovery{
		LocationName: req.LocationName,
		ZoneEntry:    req.ZoneEntry,
		MapID:        req.MapID,
		ZoneID:       req.ZoneID,
	}))
}

func (s *Server) handlePriceEvent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotID       string `json:"botId"`
		BotName     string `json:"botName"`
		ItemName    string `json:"itemName"`
		Seller      string `json:"seller"`
		PriceCopper int    `json:"priceCopper"`
		MapID       *int   `json:"mapId"`
		ZoneID      *int   `json:"zoneId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.ItemName == "" || req.Seller == "" {
		writeError(w, http.StatusBadRequest, "itemName and seller required")
		return
	}

	obs := s.observerFor(req.BotID, req.BotName)
	writeMergeResult(w, obs.RecordPrice(observer.PriceObservation{
		ItemName:    req.ItemName,
		Seller:      req.Seller,
		PriceCopper: req.PriceCopper,
		MapID:       req.MapID,
		ZoneID:      req.ZoneID,
	}))
}

func (s *Server) handleLink(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BotID         string   `json:"botId"`
		BotName       string   `json:"botName"`
		FromSubject   string   `json:"fromSubject"`
		Relation      string   `json:"relation"`
		ToSubject     string   `json:"toSubject"`
		Weight        *float64 `json:"weight"`
		Bidirectional bool     `json:"bidirectional"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.FromSubject == "" || req.Relation == "" || req.ToSubject == "" {
		writeError(w, http.StatusBadRequest, "fromSubject, relation and toSubject required")
		return
	}

	weight := graph.DefaultEdgeWeight
	if req.Weight != nil {
		weight = *req.Weight
	}

	obs := s.observerFor(req.BotID, req.BotName)
	result := obs.Link(req.FromSubject, req.Relation, req.ToSubject, weight, req.Bidirectional)
	if !result.Success {
		writeJSON(w, http.StatusNotFound, result)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}
