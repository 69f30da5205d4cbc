package postgres

import (
	"context"
	"fmt"

	"github.com/gridironpool/survivor-league/internal/domain/league"
	qb "github.com/gridironpool/survivor-league/internal/platform/querybuilder"
	"github.com/jmoiron/sqlx"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func leagueFromRow(row leagueTableModel) league.League {
	return league.League{
		ID:         row.PublicID,
		Name:       row.Name,
		Season:     row.Season,
		InviteCode: row.InviteCode,
		CreatedBy:  row.CreatedBy,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func membershipFromRow(row membershipTableModel) league.Membership {
	return league.Membership{
		LeagueID:    row.LeagueID,
		ProfileID:   row.ProfileID,
		DisplayName: row.DisplayName,
		Role:        league.Role(row.Role),
		JoinedAt:    row.JoinedAt,
	}
}

func (r *LeagueRepository) Create(ctx context.Context, l league.League, owner league.Membership) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create league tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	leagueQuery, leagueArgs, err := qb.InsertModel("leagues", leagueInsertModel{
		PublicID:   l.ID,
		Name:       l.Name,
		Season:     l.Season,
		InviteCode: l.InviteCode,
		CreatedBy:  l.CreatedBy,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, leagueQuery, leagueArgs...); err != nil {
		return fmt.Errorf("insert league: %w", err)
	}

	memberQuery, memberArgs, err := qb.InsertModel("league_members", membershipInsertModel{
		LeagueID:    owner.LeagueID,
		ProfileID:   owner.ProfileID,
		DisplayName: owner.DisplayName,
		Role:        string(owner.Role),
		JoinedAt:    owner.JoinedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert owner membership query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, memberQuery, memberArgs...); err != nil {
		return fmt.Errorf("insert owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create league tx: %w", err)
	}
	return nil
}

func (r *LeagueRepository) GetByID(ctx context.Context, leagueID string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by id query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by id: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) GetByInviteCode(ctx context.Context, inviteCode string) (league.League, bool, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(
			qb.Eq("invite_code", inviteCode),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.League{}, false, fmt.Errorf("build get league by invite code query: %w", err)
	}

	var row leagueTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.League{}, false, nil
		}
		return league.League{}, false, fmt.Errorf("get league by invite code: %w", err)
	}

	return leagueFromRow(row), true, nil
}

func (r *LeagueRepository) ListByProfile(ctx context.Context, profileID string) ([]league.League, error) {
	query := `
SELECT l.* FROM leagues l
JOIN league_members m ON m.league_public_id = l.public_id
WHERE m.profile_id = $1
  AND m.deleted_at IS NULL
  AND l.deleted_at IS NULL
ORDER BY l.public_id`

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, profileID); err != nil {
		return nil, fmt.Errorf("list leagues by profile: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) ListAll(ctx context.Context) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list leagues query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, leagueFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) GetMembership(ctx context.Context, leagueID, profileID string) (league.Membership, bool, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("profile_id", profileID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return league.Membership{}, false, fmt.Errorf("build get membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return league.Membership{}, false, nil
		}
		return league.Membership{}, false, fmt.Errorf("get membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *LeagueRepository) ListMemberships(ctx context.Context, leagueID string) ([]league.Membership, error) {
	query, args, err := qb.Select("*").From("league_members").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("profile_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]league.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}
	return out, nil
}

func (r *LeagueRepository) UpsertMembership(ctx context.Context, m league.Membership) error {
	query, args, err := qb.InsertModel("league_members", membershipInsertModel{
		LeagueID:    m.LeagueID,
		ProfileID:   m.ProfileID,
		DisplayName: m.DisplayName,
		Role:        string(m.Role),
		JoinedAt:    m.JoinedAt,
	}, `ON CONFLICT (league_public_id, profile_id) WHERE deleted_at IS NULL
DO UPDATE SET
    display_name = EXCLUDED.display_name,
    role = EXCLUDED.role,
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert membership league=%s profile=%s: %w", m.LeagueID, m.ProfileID, err)
	}
	return nil
}

func (r *LeagueRepository) DeleteMembership(ctx context.Context, leagueID, profileID string) error {
	query, args, err := qb.Update("league_members").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("league_public_id", leagueID),
			qb.Eq("profile_id", profileID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete membership query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete membership league=%s profile=%s: %w", leagueID, profileID, err)
	}
	return nil
}
