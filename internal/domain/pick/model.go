package pick

import (
	"fmt"
	"time"
)

// Pick is one member's bet on a team winning its game in a given week.
// Slot is the 1-based quota slot the pick occupies inside the week.
type Pick struct {
	ID        string
	LeagueID  string
	ProfileID string
	Season    int
	Week      int
	Slot      int
	TeamID    string
	GameID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Pick) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("pick id is required")
	}
	if p.LeagueID == "" {
		return fmt.Errorf("pick league id is required")
	}
	if p.ProfileID == "" {
		return fmt.Errorf("pick profile id is required")
	}
	if p.Season <= 0 {
		return fmt.Errorf("pick season must be a positive year")
	}
	if p.Week <= 0 {
		return fmt.Errorf("pick week must be a positive number")
	}
	if p.Slot <= 0 {
		return fmt.Errorf("pick slot must be a positive number")
	}
	if p.TeamID == "" {
		return fmt.Errorf("pick team id is required")
	}
	if p.GameID == "" {
		return fmt.Errorf("pick game id is required")
	}

	return nil
}
