package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/report"
)

func (s *Server) handleRegisterAgent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name required")
		return
	}

	botID := uuid.NewString()
	s.mu.Lock()
	s.agents[botID] = req.Name
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{
		"botId":   botID,
		"botName": req.Name,
	})
}

func (s *Server) handleRecordExperience(w http.ResponseWriter, r *http.Request) {
	var obs graph.Observation
	if err := json.NewDecoder(r.Body).Decode(&obs); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if obs.Subject == "" || obs.Predicate == "" || obs.Object == "" {
		writeError(w, http.StatusBadRequest, "subject, predicate and object required")
		return
	}

	// Fill the bot name from the registry when the caller only sent an id.
	if obs.Source.BotID != "" && obs.Source.BotName == "" {
		s.mu.Lock()
		obs.Source.BotName = s.agents[obs.Source.BotID]
		s.mu.Unlock()
	}

	result := s.graph.RecordExperience(obs)
	status := http.StatusOK
	if result.Action == graph.ActionCreated {
		status = http.StatusCreated
	}
	writeJSON(w, status, result)
}

// filterFromQuery builds a graph.Filter from URL parameters. Unknown or
// malformed numeric params are rejected by the caller via the error.
func filterFromQuery(r *http.Request) (graph.Filter, error) {
	q := r.URL.Query()
	f := graph.Filter{
		Category:  q.Get("category"),
		Subject:   q.Get("subject"),
		BotID:     q.Get("botId"),
		Predicate: q.Get("predicate"),
		Object:    q.Get("object"),
	}
	if tags := q.Get("tags"); tags != "" {
		f.Tags = strings.Split(tags, ",")
	}
	if v := q.Get("mapId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.MapID = &n
	}
	if v := q.Get("zoneId"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.ZoneID = &n
	}
	if v := q.Get("minConfidence"); v != "" {
		c, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return f, err
		}
		f.MinConfidence = c
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, err
		}
		f.Limit = n
	}
	return f, nil
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid filter parameter")
		return
	}

	nodes := s.graph.Query(filter)
	if nodes == nil {
		nodes = []*graph.KnowledgeNode{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleGetNode(w http.ResponseWriter, r *http.Request) {
	node := s.graph.GetNode(chi.URLParam(r, "nodeID"))
	if node == nil {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	writeJSON(w, http.StatusOK, node)
}

func (s *Server) handleRemoveNode(w http.ResponseWriter, r *http.Request) {
	removed := s.graph.RemoveNode(chi.URLParam(r, "nodeID"))
	if !removed {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"removed": true})
}

func (s *Server) handleGetEdges(w http.ResponseWriter, r *http.Request) {
	edges := s.graph.GetEdgesForNode(chi.URLParam(r, "nodeID"))
	if edges == nil {
		edges = []graph.KnowledgeEdge{}
	}
	writeJSON(w, http.StatusOK, edges)
}

func (s *Server) handleRelated(w http.ResponseWriter, r *http.Request) {
	ids := r.URL.Query().Get("ids")
	if ids == "" {
		writeError(w, http.StatusBadRequest, "ids required")
		return
	}

	nodes := s.graph.GetRelatedNodes(strings.Split(ids, ","))
	if nodes == nil {
		nodes = []*graph.KnowledgeNode{}
	}
	writeJSON(w, http.StatusOK, nodes)
}

func (s *Server) handleAddEdge(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FromNodeID    string   `json:"fromNodeId"`
		ToNodeID      string   `json:"toNodeId"`
		Relation      string   `json:"relation"`
		Weight        *float64 `json:"weight"`
		Bidirectional bool     `json:"bidirectional"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Relation == "" {
		writeError(w, http.StatusBadRequest, "relation required")
		return
	}

	weight := graph.DefaultEdgeWeight
	if req.Weight != nil {
		weight = *req.Weight
	}

	edge := s.graph.AddEdge(req.FromNodeID, req.ToNodeID, req.Relation, weight, req.Bidirectional)
	if edge == nil {
		writeError(w, http.StatusNotFound, "edge endpoint not found")
		return
	}
	writeJSON(w, http.StatusCreated, edge)
}

func (s *Server) handleBestApproach(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	subject := r.URL.Query().Get("subject")
	if subject == "" {
		writeError(w, http.StatusBadRequest, "subject required")
		return
	}

	writeJSON(w, http.StatusOK, s.graph.BestApproach(category, subject))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Stats())
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Write([]byte(report.Stats(s.graph.Stats())))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.graph.Export())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var data graph.Export
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	result, err := s.graph.Import(&data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.graph.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleListSnapshots(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshots not configured")
		return
	}

	snaps, err := s.snapshots.ListSnapshots()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, snaps)
}

func (s *Server) handleSaveSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshots not configured")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.Name == "" {
		req.Name = "manual"
	}

	snap, err := s.snapshots.SaveSnapshot(req.Name, s.graph.Export())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (s *Server) handleRestoreSnapshot(w http.ResponseWriter, r *http.Request) {
	if s.snapshots == nil {
		writeError(w, http.StatusServiceUnavailable, "snapshots not configured")
		return
	}

	name := chi.URLParam(r, "name")
	data, err := s.snapshots.LoadSnapshot(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if data == nil {
		writeError(w, http.StatusNotFound, "snapshot not found")
		return
	}

	result, err := s.graph.Import(data)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}
