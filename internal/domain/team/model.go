package team

import "fmt"

// Team is an NFL club, kept as read-only reference data.
type Team struct {
	ID           string
	Abbreviation string
	Name         string
	Location     string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.Abbreviation == "" {
		return fmt.Errorf("team abbreviation is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
