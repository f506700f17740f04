package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/luciengaly/football-scraping/internal/match"
	"github.com/luciengaly/football-scraping/internal/store"
)

// ErrNotFound is returned when no record exists for a match.
var ErrNotFound = errors.New("match record not found")

// MatchRepository handles match record data access
type MatchRepository struct {
	db *store.Database
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *store.Database) *MatchRepository {
	return &MatchRepository{db: db}
}

const selectColumns = `
	SELECT id, match_id, season, country, league, home_team, away_team,
		home_goals, away_goals, bookmakers, absentees, diagnostics, document, inserted_at
	FROM match_records
`

// Insert appends rec as a new row. Earlier rows for the same match are kept.
func (r *MatchRepository) Insert(ctx context.Context, rec *match.Record) (int64, error) {
	row, err := store.NewMatchRow(rec)
	if err != nil {
		return 0, err
	}

	query := `
		INSERT INTO match_records (
			match_id, season, country, league, home_team, away_team,
			home_goals, away_goals, bookmakers, absentees, diagnostics, document
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id int64
	err = r.db.DB().QueryRowContext(ctx, query,
		row.MatchID, row.Season, row.Country, row.League, row.HomeTeam, row.AwayTeam,
		row.HomeGoals, row.AwayGoals, pq.Array(row.Bookmakers), pq.Array(row.Absentees),
		row.Diagnostics, row.Document,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting match %s: %w", rec.ID, err)
	}
	return id, nil
}

// LatestByMatchID returns the most recently inserted record of matchID
func (r *MatchRepository) LatestByMatchID(ctx context.Context, matchID string) (*match.Record, error) {
	query := selectColumns + `
		WHERE match_id = $1
		ORDER BY inserted_at DESC, id DESC
		LIMIT 1
	`

	row, err := scanRow(r.db.DB().QueryRowContext(ctx, query, matchID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying match %s: %w", matchID, err)
	}
	return row.Record()
}

// ListBySeason returns the latest row of every match of a season. An empty
// league matches every league.
func (r *MatchRepository) ListBySeason(ctx context.Context, season, league string) ([]*store.MatchRow, error) {
	query := `
		SELECT id, match_id, season, country, league, home_team, away_team,
			home_goals, away_goals, bookmakers, absentees, diagnostics, document, inserted_at
		FROM latest_match_records
		WHERE season = $1 AND ($2::text = '' OR league = $2)
		ORDER BY match_id
	`

	rows, err := r.db.DB().QueryContext(ctx, query, season, league)
	if err != nil {
		return nil, fmt.Errorf("querying season %s: %w", season, err)
	}
	defer rows.Close()

	var out []*store.MatchRow
	for rows.Next() {
		row, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning match row: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRow(s scanner) (*store.MatchRow, error) {
	row := &store.MatchRow{}
	err := s.Scan(
		&row.ID, &row.MatchID, &row.Season, &row.Country, &row.League, &row.HomeTeam, &row.AwayTeam,
		&row.HomeGoals, &row.AwayGoals, pq.Array(&row.Bookmakers), pq.Array(&row.Absentees),
		&row.Diagnostics, &row.Document, &row.InsertedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// RecordSink stores records through a MatchRepository
type RecordSink struct {
	repo *MatchRepository
}

// NewRecordSink wraps repo as a sink
func NewRecordSink(repo *MatchRepository) *RecordSink {
	return &RecordSink{repo: repo}
}

func (s *RecordSink) Name() string { return "postgres" }

func (s *RecordSink) Write(ctx context.Context, rec *match.Record) error {
	_, err := s.repo.Insert(ctx, rec)
	return err
}
