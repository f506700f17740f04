package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/luciengaly/football-scraping/internal/match"
)

func TestStreamValues(t *testing.T) {
	home, away := 1, 1
	rec := &match.Record{ID: "AbCd1234", Season: "2023-2024", HomeTeamGoals: &home, AwayTeamGoals: &away}
	now := time.Unix(1700000000, 0)

	values, err := streamValues(rec, now)
	if err != nil {
		t.Fatalf("streamValues: %v", err)
	}
	if values["match_id"] != "AbCd1234" || values["season"] != "2023-2024" {
		t.Errorf("keys = %v", values)
	}
	if values["timestamp"] != int64(1700000000) {
		t.Errorf("timestamp = %v", values["timestamp"])
	}

	var back match.Record
	if err := json.Unmarshal([]byte(values["data"].(string)), &back); err != nil {
		t.Fatalf("data is not a JSON record: %v", err)
	}
	if h, a, ok := back.Goals(); !ok || h != 1 || a != 1 {
		t.Errorf("decoded goals = %d, %d, %v", h, a, ok)
	}
}
