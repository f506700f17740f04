package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/luciengaly/football-scraping/internal/match"
)

// MatchRow is one row of match_records. Document holds the full record as
// JSON; the other columns are copies for filtering.
type MatchRow struct {
	ID          int64
	MatchID     string
	Season      string
	Country     string
	League      string
	HomeTeam    string
	AwayTeam    string
	HomeGoals   sql.NullInt64
	AwayGoals   sql.NullInt64
	Bookmakers  []string
	Absentees   []string
	Diagnostics int
	Document    []byte
	InsertedAt  time.Time
}

// NewMatchRow flattens rec into its table columns.
func NewMatchRow(rec *match.Record) (*MatchRow, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("marshal match %s: %w", rec.ID, err)
	}

	row := &MatchRow{
		MatchID:     rec.ID,
		Season:      rec.Season,
		Country:     rec.Country,
		League:      rec.League,
		HomeTeam:    rec.HomeTeamName,
		AwayTeam:    rec.AwayTeamName,
		Bookmakers:  rec.Bookmakers(),
		Diagnostics: len(rec.Diagnostics),
		Document:    doc,
	}
	if home, away, ok := rec.Goals(); ok {
		row.HomeGoals = sql.NullInt64{Int64: int64(home), Valid: true}
		row.AwayGoals = sql.NullInt64{Int64: int64(away), Valid: true}
	}
	row.Absentees = append(row.Absentees, rec.HomeAbsents...)
	row.Absentees = append(row.Absentees, rec.AwayAbsents...)
	if row.Bookmakers == nil {
		row.Bookmakers = []string{}
	}
	if row.Absentees == nil {
		row.Absentees = []string{}
	}
	return row, nil
}

// Record decodes the stored document.
func (r *MatchRow) Record() (*match.Record, error) {
	var rec match.Record
	if err := json.Unmarshal(r.Document, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal match %s: %w", r.MatchID, err)
	}
	return &rec, nil
}
