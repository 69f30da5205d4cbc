package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gridironpool/survivor-league/internal/domain/pick"
	qb "github.com/gridironpool/survivor-league/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

// submitRetries bounds serializable transaction retries under contention.
const submitRetries = 3

type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

// Submit re-reads the member's picks and runs check inside a serializable
// transaction, so two concurrent submissions cannot both pass the quota and
// team-reuse checks. The partial unique indexes on picks back the same
// guarantees at the storage level.
func (r *PickRepository) Submit(ctx context.Context, leagueID, profileID string, season, week int, check pick.SubmitCheck) (pick.Pick, error) {
	var lastErr error
	for attempt := 0; attempt < submitRetries; attempt++ {
		submitted, err := r.submitOnce(ctx, leagueID, profileID, season, week, check)
		if err == nil {
			return submitted, nil
		}
		if isSerializationFailure(err) {
			lastErr = err
			continue
		}
		if isUniqueViolation(err) {
			if uniqueConstraint(err) == "picks_league_profile_season_team_key" {
				return pick.Pick{}, fmt.Errorf("%w: concurrent submission detected", pick.ErrTeamAlreadyUsed)
			}
			return pick.Pick{}, fmt.Errorf("%w: concurrent submission detected", pick.ErrQuotaExceeded)
		}
		return pick.Pick{}, err
	}
	return pick.Pick{}, fmt.Errorf("submit pick after %d retries: %w", submitRetries, lastErr)
}

func (r *PickRepository) submitOnce(ctx context.Context, leagueID, profileID string, season, week int, check pick.SubmitCheck) (pick.Pick, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return pick.Pick{}, fmt.Errorf("begin submit pick tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seasonPicks, err := r.listSeasonPicksTx(ctx, tx, leagueID, profileID, season)
	if err != nil {
		return pick.Pick{}, err
	}

	weekPicks := make([]pick.Pick, 0, len(seasonPicks))
	for _, p := range seasonPicks {
		if p.Week == week {
			weekPicks = append(weekPicks, p)
		}
	}

	submitted, err := check(weekPicks, seasonPicks)
	if err != nil {
		return pick.Pick{}, err
	}
	if err := submitted.Validate(); err != nil {
		return pick.Pick{}, fmt.Errorf("validate pick: %w", err)
	}

	query, args, err := qb.InsertModel("picks", pickInsertModel{
		PublicID:  submitted.ID,
		LeagueID:  submitted.LeagueID,
		ProfileID: submitted.ProfileID,
		Season:    submitted.Season,
		Week:      submitted.Week,
		Slot:      submitted.Slot,
		TeamID:    submitted.TeamID,
		GameID:    submitted.GameID,
	}, `ON CONFLICT (public_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    game_id = EXCLUDED.game_id,
    updated_at = NOW()`)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("build upsert pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return pick.Pick{}, fmt.Errorf("upsert pick %s: %w", submitted.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return pick.Pick{}, fmt.Errorf("commit submit pick tx: %w", err)
	}
	return submitted, nil
}

func (r *PickRepository) listSeasonPicksTx(ctx context.Context, tx *sqlx.Tx, leagueID, profileID string, season int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("profile_id", profileID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season picks query: %w", err)
	}

	var rows []pickTableModel
	if err := tx.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) GetByID(ctx context.Context, pickID string) (pick.Pick, bool, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("public_id", pickID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick by id query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick by id: %w", err)
	}

	return pickFromRow(row), true, nil
}

func (r *PickRepository) ListByWeek(ctx context.Context, leagueID, profileID string, season, week int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("profile_id", profileID),
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list week picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list week picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ListBySeason(ctx context.Context, leagueID, profileID string, season int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("profile_id", profileID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) ListLeagueSeason(ctx context.Context, leagueID string, season int) ([]pick.Pick, error) {
	query, args, err := qb.Select("*").From("picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("profile_id", "week", "slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league picks query: %w", err)
	}

	var rows []pickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league picks: %w", err)
	}

	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(row))
	}
	return out, nil
}

func (r *PickRepository) Delete(ctx context.Context, pickID string) error {
	query, args, err := qb.Update("picks").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("public_id", pickID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pick %s: %w", pickID, err)
	}
	return nil
}
