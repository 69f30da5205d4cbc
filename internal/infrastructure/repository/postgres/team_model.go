package postgres

import "time"

type teamTableModel struct {
	ID           int64      `db:"id"`
	PublicID     string     `db:"public_id"`
	Abbreviation string     `db:"abbreviation"`
	Name         string     `db:"name"`
	Location     string     `db:"location"`
	CreatedAt    time.Time  `db:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at"`
	DeletedAt    *time.Time `db:"deleted_at"`
}

type teamInsertModel struct {
	PublicID     string `db:"public_id"`
	Abbreviation string `db:"abbreviation"`
	Name         string `db:"name"`
	Location     string `db:"location"`
}
