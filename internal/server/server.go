package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/duskhelm/hivemind/internal/graph"
	"github.com/duskhelm/hivemind/internal/store"
	"github.com/duskhelm/hivemind/internal/world"
)

// Server is the hivemind HTTP API. It fronts one shared graph instance
// that all connected bot agents write into and query.
type Server struct {
	graph     *graph.Graph
	names     world.Resolver // nil when no world database is available
	snapshots *store.DB      // nil when snapshot persistence is disabled
	router    chi.Router
	version   string
	started   time.Time

	mu     sync.Mutex
	agents map[string]string // bot id -> bot name
}

// New creates a new Server over the given graph. names and snapshots
// may be nil; event recording then falls back to synthetic entity
// labels, and snapshot routes report unavailable.
func New(g *graph.Graph, names world.Resolver, snapshots *store.DB, version string) *Server {
	s := &Server{
		graph:     g,
		names:     names,
		snapshots: snapshots,
		version:   version,
		started:   time.Now(),
		agents:    make(map[string]string),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/agents", s.handleRegisterAgent)

		r.Post("/experiences", s.handleRecordExperience)
		r.Post("/events/combat", s.handleCombatEvent)
		r.Post("/events/quest", s.handleQuestEvent)
		r.Post("/events/discovery", s.handleDiscoveryEvent)
		r.Post("/events/price", s.handlePriceEvent)
		r.Post("/links", s.handleLink)
		r.Get("/knowledge", s.handleQuery)
		r.Get("/knowledge/{nodeID}", s.handleGetNode)
		r.Delete("/knowledge/{nodeID}", s.handleRemoveNode)
		r.Get("/knowledge/{nodeID}/edges", s.handleGetEdges)
		r.Get("/related", s.handleRelated)
		r.Post("/edges", s.handleAddEdge)

		r.Get("/approach", s.handleBestApproach)
		r.Get("/stats", s.handleStats)
		r.Get("/report", s.handleReport)

		r.Get("/export", s.handleExport)
		r.Post("/import", s.handleImport)
		r.Post("/clear", s.handleClear)

		r.Get("/snapshots", s.handleListSnapshots)
		r.Post("/snapshots", s.handleSaveSnapshot)
		r.Post("/snapshots/{name}/restore", s.handleRestoreSnapshot)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	stats := s.graph.Stats()

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": s.version,
		"uptime":  time.Since(s.started).Seconds(),
		"nodes":   stats.TotalNodes,
		"edges":   stats.TotalEdges,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
