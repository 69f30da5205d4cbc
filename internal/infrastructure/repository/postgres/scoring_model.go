package postgres

import (
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/scoring"
)

type weeklyPointsTableModel struct {
	ID           int64      `db:"id"`
	LeagueID     string     `db:"league_public_id"`
	Season       int        `db:"season"`
	Week         int        `db:"week"`
	ProfileID    string     `db:"profile_id"`
	Points       float64    `db:"points"`
	DecidedPicks int        `db:"decided_picks"`
	CorrectPicks int        `db:"correct_picks"`
	CalculatedAt time.Time  `db:"calculated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type weeklyPointsInsertModel struct {
	LeagueID     string    `db:"league_public_id"`
	Season       int       `db:"season"`
	Week         int       `db:"week"`
	ProfileID    string    `db:"profile_id"`
	Points       float64   `db:"points"`
	DecidedPicks int       `db:"decided_picks"`
	CorrectPicks int       `db:"correct_picks"`
	CalculatedAt time.Time `db:"calculated_at"`
}

func weeklyPointsFromRow(row weeklyPointsTableModel) scoring.WeeklyPoints {
	return scoring.WeeklyPoints{
		LeagueID:     row.LeagueID,
		Season:       row.Season,
		Week:         row.Week,
		ProfileID:    row.ProfileID,
		Points:       row.Points,
		DecidedPicks: row.DecidedPicks,
		CorrectPicks: row.CorrectPicks,
		CalculatedAt: row.CalculatedAt,
	}
}
