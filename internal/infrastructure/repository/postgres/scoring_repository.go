package postgres

import (
	"context"
	"fmt"

	"github.com/gridironpool/survivor-league/internal/domain/scoring"
	qb "github.com/gridironpool/survivor-league/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type ScoringRepository struct {
	db *sqlx.DB
}

func NewScoringRepository(db *sqlx.DB) *ScoringRepository {
	return &ScoringRepository{db: db}
}

func (r *ScoringRepository) UpsertWeeklyPoints(ctx context.Context, rows []scoring.WeeklyPoints) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert weekly points tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, row := range rows {
		query, args, err := qb.InsertModel("weekly_points", weeklyPointsInsertModel{
			LeagueID:     row.LeagueID,
			Season:       row.Season,
			Week:         row.Week,
			ProfileID:    row.ProfileID,
			Points:       row.Points,
			DecidedPicks: row.DecidedPicks,
			CorrectPicks: row.CorrectPicks,
			CalculatedAt: row.CalculatedAt,
		}, `ON CONFLICT (league_public_id, season, week, profile_id) WHERE deleted_at IS NULL
DO UPDATE SET
    points = EXCLUDED.points,
    decided_picks = EXCLUDED.decided_picks,
    correct_picks = EXCLUDED.correct_picks,
    calculated_at = EXCLUDED.calculated_at`)
		if err != nil {
			return fmt.Errorf("build upsert weekly points query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert weekly points league=%s week=%d profile=%s: %w",
				row.LeagueID, row.Week, row.ProfileID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert weekly points tx: %w", err)
	}
	return nil
}

func (r *ScoringRepository) ListWeeklyPoints(ctx context.Context, leagueID string, season, week int) ([]scoring.WeeklyPoints, error) {
	query, args, err := qb.Select("*").From("weekly_points").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("profile_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list weekly points query: %w", err)
	}

	var rows []weeklyPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list weekly points: %w", err)
	}

	out := make([]scoring.WeeklyPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyPointsFromRow(row))
	}
	return out, nil
}

func (r *ScoringRepository) ListSeasonWeeklyPoints(ctx context.Context, leagueID string, season int) ([]scoring.WeeklyPoints, error) {
	query, args, err := qb.Select("*").From("weekly_points").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "profile_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season weekly points query: %w", err)
	}

	var rows []weeklyPointsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season weekly points: %w", err)
	}

	out := make([]scoring.WeeklyPoints, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeklyPointsFromRow(row))
	}
	return out, nil
}
