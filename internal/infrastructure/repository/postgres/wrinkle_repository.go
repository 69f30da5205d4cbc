package postgres

import (
	"context"
	"fmt"

	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	qb "github.com/gridironpool/survivor-league/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type WrinkleRepository struct {
	db *sqlx.DB
}

func NewWrinkleRepository(db *sqlx.DB) *WrinkleRepository {
	return &WrinkleRepository{db: db}
}

func (r *WrinkleRepository) Create(ctx context.Context, w wrinkle.Wrinkle) error {
	query, args, err := qb.InsertModel("wrinkles", wrinkleInsertModel{
		PublicID:   w.ID,
		LeagueID:   w.LeagueID,
		Season:     w.Season,
		Week:       w.Week,
		Kind:       w.Kind,
		Status:     w.Status,
		ExtraPicks: w.ExtraPicks,
		GameIDs:    pq.StringArray(w.GameIDs),
	}, "")
	if err != nil {
		return fmt.Errorf("build insert wrinkle query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert wrinkle %s: %w", w.ID, err)
	}
	return nil
}

func (r *WrinkleRepository) Update(ctx context.Context, w wrinkle.Wrinkle) error {
	query, args, err := qb.Update("wrinkles").
		Set("kind", w.Kind).
		Set("status", w.Status).
		Set("extra_picks", w.ExtraPicks).
		Set("game_ids", pq.StringArray(w.GameIDs)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("public_id", w.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update wrinkle query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update wrinkle %s: %w", w.ID, err)
	}
	return nil
}

func (r *WrinkleRepository) GetByID(ctx context.Context, wrinkleID string) (wrinkle.Wrinkle, bool, error) {
	query, args, err := qb.Select("*").From("wrinkles").
		Where(
			qb.Eq("public_id", wrinkleID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return wrinkle.Wrinkle{}, false, fmt.Errorf("build get wrinkle by id query: %w", err)
	}

	var row wrinkleTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return wrinkle.Wrinkle{}, false, nil
		}
		return wrinkle.Wrinkle{}, false, fmt.Errorf("get wrinkle by id: %w", err)
	}

	return wrinkleFromRow(row), true, nil
}

func (r *WrinkleRepository) ListByWeek(ctx context.Context, leagueID string, season, week int) ([]wrinkle.Wrinkle, error) {
	query, args, err := qb.Select("*").From("wrinkles").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list wrinkles query: %w", err)
	}

	var rows []wrinkleTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list wrinkles: %w", err)
	}

	out := make([]wrinkle.Wrinkle, 0, len(rows))
	for _, row := range rows {
		out = append(out, wrinkleFromRow(row))
	}
	return out, nil
}

func (r *WrinkleRepository) UpsertPick(ctx context.Context, p wrinkle.Pick) error {
	query, args, err := qb.InsertModel("wrinkle_picks", wrinklePickInsertModel{
		PublicID:  p.ID,
		WrinkleID: p.WrinkleID,
		LeagueID:  p.LeagueID,
		ProfileID: p.ProfileID,
		Season:    p.Season,
		Week:      p.Week,
		TeamID:    p.TeamID,
		GameID:    p.GameID,
	}, `ON CONFLICT (public_id)
DO UPDATE SET
    team_id = EXCLUDED.team_id,
    game_id = EXCLUDED.game_id`)
	if err != nil {
		return fmt.Errorf("build upsert wrinkle pick query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert wrinkle pick %s: %w", p.ID, err)
	}
	return nil
}

func (r *WrinkleRepository) ListPicks(ctx context.Context, wrinkleID, profileID string) ([]wrinkle.Pick, error) {
	query, args, err := qb.Select("*").From("wrinkle_picks").
		Where(
			qb.Eq("wrinkle_public_id", wrinkleID),
			qb.Eq("profile_id", profileID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list wrinkle picks query: %w", err)
	}

	var rows []wrinklePickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list wrinkle picks: %w", err)
	}

	out := make([]wrinkle.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, wrinklePickFromRow(row))
	}
	return out, nil
}

func (r *WrinkleRepository) ListPicksBySeason(ctx context.Context, leagueID, profileID string, season int) ([]wrinkle.Pick, error) {
	query, args, err := qb.Select("*").From("wrinkle_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("profile_id", profileID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list season wrinkle picks query: %w", err)
	}

	var rows []wrinklePickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list season wrinkle picks: %w", err)
	}

	out := make([]wrinkle.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, wrinklePickFromRow(row))
	}
	return out, nil
}

func (r *WrinkleRepository) ListLeaguePicksByWeek(ctx context.Context, leagueID string, season, week int) ([]wrinkle.Pick, error) {
	query, args, err := qb.Select("*").From("wrinkle_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.IsNull("deleted_at"),
		).
		OrderBy("profile_id", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league wrinkle picks query: %w", err)
	}

	var rows []wrinklePickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league wrinkle picks: %w", err)
	}

	out := make([]wrinkle.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, wrinklePickFromRow(row))
	}
	return out, nil
}

func (r *WrinkleRepository) ListLeagueSeasonPicks(ctx context.Context, leagueID string, season int) ([]wrinkle.Pick, error) {
	query, args, err := qb.Select("*").From("wrinkle_picks").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("week", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list league season wrinkle picks query: %w", err)
	}

	var rows []wrinklePickTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list league season wrinkle picks: %w", err)
	}

	out := make([]wrinkle.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, wrinklePickFromRow(row))
	}
	return out, nil
}
