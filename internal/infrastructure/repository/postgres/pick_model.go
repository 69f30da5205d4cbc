package postgres

import (
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/pick"
)

type pickTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	LeagueID  string     `db:"league_public_id"`
	ProfileID string     `db:"profile_id"`
	Season    int        `db:"season"`
	Week      int        `db:"week"`
	Slot      int        `db:"slot"`
	TeamID    string     `db:"team_id"`
	GameID    string     `db:"game_id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type pickInsertModel struct {
	PublicID  string `db:"public_id"`
	LeagueID  string `db:"league_public_id"`
	ProfileID string `db:"profile_id"`
	Season    int    `db:"season"`
	Week      int    `db:"week"`
	Slot      int    `db:"slot"`
	TeamID    string `db:"team_id"`
	GameID    string `db:"game_id"`
}

func pickFromRow(row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:        row.PublicID,
		LeagueID:  row.LeagueID,
		ProfileID: row.ProfileID,
		Season:    row.Season,
		Week:      row.Week,
		Slot:      row.Slot,
		TeamID:    row.TeamID,
		GameID:    row.GameID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
