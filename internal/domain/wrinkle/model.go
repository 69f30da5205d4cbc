package wrinkle

import (
	"fmt"
	"time"
)

const (
	KindExtraPick    = "extra_pick"
	KindDoublePoints = "double_points"
	KindSpread       = "spread"
)

const (
	StatusPending  = "pending"
	StatusActive   = "active"
	StatusComplete = "complete"
)

// Wrinkle is a one-week twist on the normal rules of a league.
type Wrinkle struct {
	ID         string
	LeagueID   string
	Season     int
	Week       int
	Kind       string
	Status     string
	ExtraPicks int
	GameIDs    []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Pick is a wrinkle pick slot, held outside the ordinary weekly quota.
type Pick struct {
	ID        string
	WrinkleID string
	LeagueID  string
	ProfileID string
	Season    int
	Week      int
	TeamID    string
	GameID    string
	CreatedAt time.Time
}

func (w Wrinkle) Validate() error {
	if w.ID == "" {
		return fmt.Errorf("wrinkle id is required")
	}
	if w.LeagueID == "" {
		return fmt.Errorf("wrinkle league id is required")
	}
	if w.Season <= 0 {
		return fmt.Errorf("wrinkle season must be a positive year")
	}
	if w.Week <= 0 {
		return fmt.Errorf("wrinkle week must be a positive number")
	}
	switch w.Kind {
	case KindExtraPick, KindDoublePoints, KindSpread:
	default:
		return fmt.Errorf("wrinkle kind %q is unknown", w.Kind)
	}
	switch w.Status {
	case StatusPending, StatusActive, StatusComplete:
	default:
		return fmt.Errorf("wrinkle status %q is unknown", w.Status)
	}
	if w.Kind == KindExtraPick && w.ExtraPicks <= 0 {
		return fmt.Errorf("extra_pick wrinkle needs a positive slot count")
	}

	return nil
}

// IsOpen reports whether the wrinkle currently accepts picks.
func (w Wrinkle) IsOpen() bool {
	return w.Status == StatusActive
}
