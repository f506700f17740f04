package rest

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/store"
	"github.com/luciengaly/football-scraping/internal/store/repository"
)

const maxBatchBytes = 4 << 20

// RecordStore reads stored match records
type RecordStore interface {
	LatestByMatchID(ctx context.Context, matchID string) (*match.Record, error)
	ListBySeason(ctx context.Context, season, league string) ([]*store.MatchRow, error)
}

// MatchSummary is one entry of a season listing
type MatchSummary struct {
	MatchID     string    `json:"match_id"`
	Season      string    `json:"season"`
	Country     string    `json:"country"`
	League      string    `json:"league"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	HomeGoals   *int64    `json:"home_goals,omitempty"`
	AwayGoals   *int64    `json:"away_goals,omitempty"`
	Bookmakers  []string  `json:"bookmakers"`
	Diagnostics int       `json:"diagnostics"`
	InsertedAt  time.Time `json:"inserted_at"`
}

func newMatchSummary(row *store.MatchRow) MatchSummary {
	s := MatchSummary{
		MatchID:     row.MatchID,
		Season:      row.Season,
		Country:     row.Country,
		League:      row.League,
		HomeTeam:    row.HomeTeam,
		AwayTeam:    row.AwayTeam,
		Bookmakers:  row.Bookmakers,
		Diagnostics: row.Diagnostics,
		InsertedAt:  row.InsertedAt,
	}
	if row.HomeGoals.Valid {
		s.HomeGoals = &row.HomeGoals.Int64
	}
	if row.AwayGoals.Valid {
		s.AwayGoals = &row.AwayGoals.Int64
	}
	return s
}

// Dispatcher sends a record to the configured sinks
type Dispatcher interface {
	Dispatch(ctx context.Context, rec *match.Record) error
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	assembler  *extract.Assembler
	store      RecordStore
	dispatcher Dispatcher
	version    string
}

// NewHandler creates a new handler. records and dispatcher may be nil when the
// process runs without them.
func NewHandler(assembler *extract.Assembler, records RecordStore, dispatcher Dispatcher, version string) *Handler {
	return &Handler{
		assembler:  assembler,
		store:      records,
		dispatcher: dispatcher,
		version:    version,
	}
}

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"service": "fscraper",
		"version": h.version,
		"store":   h.store != nil,
	})
}

// ExtractMatch assembles a record from a posted batch of text blocks.
// With ?dispatch=true the record is also sent to the sinks.
func (h *Handler) ExtractMatch(w http.ResponseWriter, r *http.Request) {
	var batch extract.Batch
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBatchBytes)).Decode(&batch); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rec, err := h.assembler.Assemble(&batch)
	if errors.Is(err, extract.ErrMissingMatchID) {
		respondError(w, http.StatusUnprocessableEntity, "match_id is required", err)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to assemble match", err)
		return
	}

	if dispatch, _ := strconv.ParseBool(r.URL.Query().Get("dispatch")); dispatch {
		if h.dispatcher == nil {
			respondError(w, http.StatusServiceUnavailable, "No sinks configured", nil)
			return
		}
		if err := h.dispatcher.Dispatch(r.Context(), rec); err != nil {
			respondError(w, http.StatusBadGateway, "Failed to dispatch match", err)
			return
		}
	}

	respondJSON(w, http.StatusOK, rec)
}

// GetMatch returns the latest stored record of a match
func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "No record store configured", nil)
		return
	}

	matchID := mux.Vars(r)["matchID"]
	rec, err := h.store.LatestByMatchID(r.Context(), matchID)
	if errors.Is(err, repository.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Match not found", nil)
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch match", err)
		return
	}

	respondJSON(w, http.StatusOK, rec)
}

// ListSeasonMatches lists the latest record of every stored match of a
// season, optionally filtered by ?league=
func (h *Handler) ListSeasonMatches(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "No record store configured", nil)
		return
	}

	season := mux.Vars(r)["season"]
	league := r.URL.Query().Get("league")
	rows, err := h.store.ListBySeason(r.Context(), season, league)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to list matches", err)
		return
	}

	matches := make([]MatchSummary, 0, len(rows))
	for _, row := range rows {
		matches = append(matches, newMatchSummary(row))
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"season":  season,
		"league":  league,
		"count":   len(matches),
		"matches": matches,
	})
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}

	if err != nil {
		response["details"] = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
