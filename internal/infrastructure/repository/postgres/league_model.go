package postgres

import "time"

type leagueTableModel struct {
	ID         int64      `db:"id"`
	PublicID   string     `db:"public_id"`
	Name       string     `db:"name"`
	Season     int        `db:"season"`
	InviteCode string     `db:"invite_code"`
	CreatedBy  string     `db:"created_by"`
	CreatedAt  time.Time  `db:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at"`
	DeletedAt  *time.Time `db:"deleted_at"`
}

type leagueInsertModel struct {
	PublicID   string `db:"public_id"`
	Name       string `db:"name"`
	Season     int    `db:"season"`
	InviteCode string `db:"invite_code"`
	CreatedBy  string `db:"created_by"`
}

type membershipTableModel struct {
	ID          int64      `db:"id"`
	LeagueID    string     `db:"league_public_id"`
	ProfileID   string     `db:"profile_id"`
	DisplayName string     `db:"display_name"`
	Role        string     `db:"role"`
	JoinedAt    time.Time  `db:"joined_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type membershipInsertModel struct {
	LeagueID    string    `db:"league_public_id"`
	ProfileID   string    `db:"profile_id"`
	DisplayName string    `db:"display_name"`
	Role        string    `db:"role"`
	JoinedAt    time.Time `db:"joined_at"`
}
