package postgres

import (
	"context"
	"fmt"

	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
	"github.com/jmoiron/sqlx"
)

// BootstrapSeed loads the demo league, teams, and schedule into an empty
// database. It is a no-op once any league exists.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM leagues WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count leagues for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, l := range memory.SeedLeagues() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO leagues (public_id, name, season, invite_code, created_by)
VALUES (:public_id, :name, :season, :invite_code, :created_by)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":   l.ID,
			"name":        l.Name,
			"season":      l.Season,
			"invite_code": l.InviteCode,
			"created_by":  l.CreatedBy,
		})
		if err != nil {
			return fmt.Errorf("bind seed league %s query: %w", l.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed league %s: %w", l.ID, err)
		}
	}

	for _, m := range memory.SeedMemberships() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO league_members (league_public_id, profile_id, display_name, role, joined_at)
VALUES (:league_public_id, :profile_id, :display_name, :role, :joined_at)
ON CONFLICT (league_public_id, profile_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
			"league_public_id": m.LeagueID,
			"profile_id":       m.ProfileID,
			"display_name":     m.DisplayName,
			"role":             string(m.Role),
			"joined_at":        m.JoinedAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed membership %s query: %w", m.ProfileID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed membership %s: %w", m.ProfileID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, abbreviation, name, location)
VALUES (:public_id, :abbreviation, :name, :location)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    t.ID,
			"abbreviation": t.Abbreviation,
			"name":         t.Name,
			"location":     t.Location,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, g := range memory.SeedGames() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO games (public_id, season, week, home_team_id, away_team_id, kickoff_at, status, home_score, away_score)
VALUES (:public_id, :season, :week, :home_team_id, :away_team_id, :kickoff_at, :status, :home_score, :away_score)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":    g.ID,
			"season":       g.Season,
			"week":         g.Week,
			"home_team_id": g.HomeTeamID,
			"away_team_id": g.AwayTeamID,
			"kickoff_at":   g.KickoffAt,
			"status":       g.Status,
			"home_score":   intPtrToNullInt64(g.HomeScore),
			"away_score":   intPtrToNullInt64(g.AwayScore),
		})
		if err != nil {
			return fmt.Errorf("bind seed game %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed game %s: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}
	return nil
}
