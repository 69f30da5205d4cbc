package postgres

import (
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	"github.com/lib/pq"
)

type wrinkleTableModel struct {
	ID         int64          `db:"id"`
	PublicID   string         `db:"public_id"`
	LeagueID   string         `db:"league_public_id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	Kind       string         `db:"kind"`
	Status     string         `db:"status"`
	ExtraPicks int            `db:"extra_picks"`
	GameIDs    pq.StringArray `db:"game_ids"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
	DeletedAt  *time.Time     `db:"deleted_at"`
}

type wrinkleInsertModel struct {
	PublicID   string         `db:"public_id"`
	LeagueID   string         `db:"league_public_id"`
	Season     int            `db:"season"`
	Week       int            `db:"week"`
	Kind       string         `db:"kind"`
	Status     string         `db:"status"`
	ExtraPicks int            `db:"extra_picks"`
	GameIDs    pq.StringArray `db:"game_ids"`
}

type wrinklePickTableModel struct {
	ID        int64      `db:"id"`
	PublicID  string     `db:"public_id"`
	WrinkleID string     `db:"wrinkle_public_id"`
	LeagueID  string     `db:"league_public_id"`
	ProfileID string     `db:"profile_id"`
	Season    int        `db:"season"`
	Week      int        `db:"week"`
	TeamID    string     `db:"team_id"`
	GameID    string     `db:"game_id"`
	CreatedAt time.Time  `db:"created_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type wrinklePickInsertModel struct {
	PublicID  string `db:"public_id"`
	WrinkleID string `db:"wrinkle_public_id"`
	LeagueID  string `db:"league_public_id"`
	ProfileID string `db:"profile_id"`
	Season    int    `db:"season"`
	Week      int    `db:"week"`
	TeamID    string `db:"team_id"`
	GameID    string `db:"game_id"`
}

func wrinkleFromRow(row wrinkleTableModel) wrinkle.Wrinkle {
	return wrinkle.Wrinkle{
		ID:         row.PublicID,
		LeagueID:   row.LeagueID,
		Season:     row.Season,
		Week:       row.Week,
		Kind:       row.Kind,
		Status:     row.Status,
		ExtraPicks: row.ExtraPicks,
		GameIDs:    append([]string(nil), row.GameIDs...),
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}

func wrinklePickFromRow(row wrinklePickTableModel) wrinkle.Pick {
	return wrinkle.Pick{
		ID:        row.PublicID,
		WrinkleID: row.WrinkleID,
		LeagueID:  row.LeagueID,
		ProfileID: row.ProfileID,
		Season:    row.Season,
		Week:      row.Week,
		TeamID:    row.TeamID,
		GameID:    row.GameID,
		CreatedAt: row.CreatedAt,
	}
}
