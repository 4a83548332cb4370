package httpserver

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/lutefd/pokedex-api/internal/arena"
	"github.com/lutefd/pokedex-api/internal/auth"
	"github.com/lutefd/pokedex-api/internal/browse"
	"github.com/lutefd/pokedex-api/internal/detail"
	"github.com/lutefd/pokedex-api/internal/domain/pokemon"
	"github.com/lutefd/pokedex-api/internal/events"
	"github.com/lutefd/pokedex-api/internal/history"
	"github.com/lutefd/pokedex-api/internal/live"
	"github.com/lutefd/pokedex-api/internal/metrics"
	"github.com/lutefd/pokedex-api/internal/storage"
	"github.com/lutefd/pokedex-api/internal/team"
)

type Dependencies struct {
	Catalog  browse.Catalog
	Store    storage.Store
	Bus      *events.Bus
	APIToken string
}

type detailResponse struct {
	pokemon.Entry
	CanAdd bool `json:"canAdd"`
}

type Server struct {
	catalog browse.Catalog
	browse  *browse.Service
	team    *team.Manager
	arena   *arena.Service
	history *history.Service
	hub     *live.Hub
	auth    auth.Middleware
}

func NewServer(deps Dependencies) *Server {
	bus := deps.Bus
	if bus == nil {
		bus = events.NewBus()
	}
	hub := live.NewHub()
	bus.Subscribe(events.BattleRecorded, hub.OnBattleRecorded)

	return &Server{
		catalog: deps.Catalog,
		browse:  browse.NewService(deps.Catalog),
		team:    team.NewManager(deps.Store),
		arena:   arena.NewService(deps.Store, bus),
		history: history.NewService(deps.Store, deps.Catalog),
		hub:     hub,
		auth:    auth.NewMiddleware(deps.APIToken),
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /v1/types", s.handleTypes)
	mux.HandleFunc("GET /v1/pokemon", s.handleBrowse)
	mux.HandleFunc("GET /v1/pokemon/{nameOrId}", s.handleDetail)
	mux.HandleFunc("GET /v1/team", s.handleListTeam)
	mux.HandleFunc("POST /v1/team", s.handleAddToTeam)
	mux.HandleFunc("DELETE /v1/team/{id}", s.handleRemoveFromTeam)
	mux.HandleFunc("POST /v1/battles", s.handleFight)
	mux.HandleFunc("GET /v1/battles", s.handleListBattles)
	mux.Handle("GET /v1/battles/live", s.hub)
	mux.HandleFunc("GET /v1/history", s.handleHistory)

	return s.auth.Guard(loggingMiddleware(mux))
}

// Shutdown waits for pending battle saves and disconnects live clients.
func (s *Server) Shutdown() {
	s.arena.Wait()
	s.hub.Close()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTypes(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"types": pokemon.TypeTags})
}

func (s *Server) handleBrowse(w http.ResponseWriter, r *http.Request) {
	q := browse.Query{
		Type:   r.URL.Query().Get("type"),
		Search: r.URL.Query().Get("search"),
	}
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			http.Error(w, "page must be a non-negative integer", http.StatusBadRequest)
			return
		}
		q.Page = page
	}

	page, err := s.browse.Page(r.Context(), q)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (s *Server) handleDetail(w http.ResponseWriter, r *http.Request) {
	view, err := detail.Open(r.Context(), s.catalog, s.team, r.PathValue("nameOrId"))
	if err != nil {
		writeError(w, err)
		return
	}
	roster, err := s.team.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detailResponse{
		Entry:  view.Entry,
		CanAdd: view.CanAdd() && len(roster) < team.MaxSize,
	})
}

func (s *Server) handleListTeam(w http.ResponseWriter, r *http.Request) {
	members, err := s.team.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"team": members})
}

func (s *Server) handleAddToTeam(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Pokemon string `json:"pokemon"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	view, err := detail.Open(r.Context(), s.catalog, s.team, payload.Pokemon)
	if err != nil {
		writeError(w, err)
		return
	}
	member, err := view.AddToTeam(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, member)
}

func (s *Server) handleRemoveFromTeam(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "invalid team member id", http.StatusBadRequest)
		return
	}
	roster, err := s.team.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	remaining, err := s.team.RemoveFrom(r.Context(), roster, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"team": remaining})
}

func (s *Server) handleFight(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Pokemon1ID uuid.UUID `json:"pokemon1Id"`
		Pokemon2ID uuid.UUID `json:"pokemon2Id"`
	}
	if err := decodeJSON(r, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.Pokemon1ID == uuid.Nil || payload.Pokemon2ID == uuid.Nil {
		http.Error(w, "please select two pokemon to battle", http.StatusBadRequest)
		return
	}

	result, err := s.arena.Fight(r.Context(), payload.Pokemon1ID, payload.Pokemon2ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListBattles(w http.ResponseWriter, r *http.Request) {
	records, err := s.arena.Records(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"battles": records})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	items, err := s.history.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": items})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := metrics.NewStatusRecorder(w)
		next.ServeHTTP(rec, r)
		sample := metrics.Sample(r, rec.Status, start)
		log.Printf("%s %s status=%d duration=%s", sample.Method, sample.Path, sample.Status, sample.Latency)
	})
}
