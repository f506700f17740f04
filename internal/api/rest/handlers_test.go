package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/luciengaly/football-scraping/internal/extract"
	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/metrics"
	"github.com/luciengaly/football-scraping/internal/store"
	"github.com/luciengaly/football-scraping/internal/store/repository"
)

type memoryStore map[string]*match.Record

func (s memoryStore) LatestByMatchID(_ context.Context, id string) (*match.Record, error) {
	rec, ok := s[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, id)
	}
	return rec, nil
}

func (s memoryStore) ListBySeason(_ context.Context, season, league string) ([]*store.MatchRow, error) {
	var rows []*store.MatchRow
	for _, rec := range s {
		if rec.Season != season || (league != "" && rec.League != league) {
			continue
		}
		row, err := store.NewMatchRow(rec)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].MatchID < rows[j].MatchID })
	return rows, nil
}

type recordingDispatcher struct {
	records []*match.Record
}

func (d *recordingDispatcher) Dispatch(_ context.Context, rec *match.Record) error {
	d.records = append(d.records, rec)
	return nil
}

const batchJSON = `{
	"match_id": "AbCd1234",
	"season": "2023-2024",
	"context": {"context": "France: Ligue 1 - Journee 12", "score": "2\n-\n1", "team_names": ["PSG", "Lyon"]},
	"incidents": ["45'\n1 - 0\nMartin"],
	"odds": {"header": "Bookmaker\n1\nX\n2", "rows": ["1.50\n3.20\n5.00"], "bookmakers": ["Bwin"]}
}`

func newTestRouter(records RecordStore, dispatcher Dispatcher) http.Handler {
	h := NewHandler(extract.NewAssembler(nil), records, dispatcher, "test")
	return NewRouter(h, metrics.New())
}

func TestExtractMatch(t *testing.T) {
	dispatcher := &recordingDispatcher{}
	router := newTestRouter(nil, dispatcher)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/matches/extract?dispatch=true", strings.NewReader(batchJSON))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	var got map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["country"] != "france" || got["home_team_goals"] != float64(2) {
		t.Errorf("response = %v", got)
	}
	if !bytes.Contains(rec.Body.Bytes(), []byte(`"odds":{"1x2":{"regular_time":{"bwin":{"1":1.5,"X":3.2,"2":5}}}}`)) {
		t.Errorf("odds missing or reordered in %s", rec.Body)
	}
	if len(dispatcher.records) != 1 || dispatcher.records[0].ID != "AbCd1234" {
		t.Errorf("dispatched = %v", dispatcher.records)
	}
}

func TestExtractMatchErrors(t *testing.T) {
	router := newTestRouter(nil, nil)
	tests := []struct {
		name string
		url  string
		body string
		want int
	}{
		{"bad json", "/api/v1/matches/extract", "{", http.StatusBadRequest},
		{"no match id", "/api/v1/matches/extract", `{"season": "2023-2024"}`, http.StatusUnprocessableEntity},
		{"dispatch without sinks", "/api/v1/matches/extract?dispatch=true", `{"match_id": "AbCd1234"}`, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.url, strings.NewReader(tt.body)))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
		})
	}
}

func TestGetMatch(t *testing.T) {
	records := memoryStore{"AbCd1234": {ID: "AbCd1234", Season: "2023-2024"}}
	router := newTestRouter(records, nil)

	tests := []struct {
		id   string
		want int
	}{
		{"AbCd1234", http.StatusOK},
		{"ZzZz9999", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matches/"+tt.id, nil))
		if rec.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.id, rec.Code, tt.want)
		}
	}

	rec := httptest.NewRecorder()
	newTestRouter(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/matches/AbCd1234", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without store = %d, want 503", rec.Code)
	}
}

func TestListSeasonMatches(t *testing.T) {
	two, one := 2, 1
	records := memoryStore{
		"AbCd1234": {ID: "AbCd1234", Season: "2023-2024", League: "ligue 1", HomeTeamName: "psg", AwayTeamName: "lyon", HomeTeamGoals: &two, AwayTeamGoals: &one},
		"EfGh5678": {ID: "EfGh5678", Season: "2023-2024", League: "ligue 2"},
		"IjKl9012": {ID: "IjKl9012", Season: "2022-2023", League: "ligue 1"},
	}
	router := newTestRouter(records, nil)

	tests := []struct {
		url  string
		want []string
	}{
		{"/api/v1/seasons/2023-2024/matches", []string{"AbCd1234", "EfGh5678"}},
		{"/api/v1/seasons/2023-2024/matches?league=ligue+1", []string{"AbCd1234"}},
		{"/api/v1/seasons/2019-2020/matches", []string{}},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.url, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d %s", tt.url, rec.Code, rec.Body)
		}
		var body struct {
			Count   int            `json:"count"`
			Matches []MatchSummary `json:"matches"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode %s: %v", tt.url, err)
		}
		ids := []string{}
		for _, m := range body.Matches {
			ids = append(ids, m.MatchID)
		}
		if fmt.Sprint(ids) != fmt.Sprint(tt.want) || body.Count != len(tt.want) {
			t.Errorf("GET %s = %q (count %d), want %q", tt.url, ids, body.Count, tt.want)
		}
		if len(body.Matches) > 0 && body.Matches[0].MatchID == "AbCd1234" {
			if g := body.Matches[0].HomeGoals; g == nil || *g != 2 {
				t.Errorf("home goals = %v, want 2", g)
			}
		}
	}

	rec := httptest.NewRecorder()
	newTestRouter(nil, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/seasons/2023-2024/matches", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("without store = %d, want 503", rec.Code)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	router := newTestRouter(nil, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"healthy"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `route="/health"`) {
		t.Errorf("metrics = %d, body lacks the health route:\n%s", rec.Code, rec.Body)
	}
}
