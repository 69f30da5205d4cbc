package league

import (
	"fmt"
	"time"
)

// Role is a member's standing inside a league.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// League is one survivor pool for one NFL season.
type League struct {
	ID         string
	Name       string
	Season     int
	InviteCode string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Membership ties a profile to a league with a role.
type Membership struct {
	LeagueID    string
	ProfileID   string
	DisplayName string
	Role        Role
	JoinedAt    time.Time
}

// CanAdminister reports whether the member may act on other members' data.
func (m Membership) CanAdminister() bool {
	return m.Role == RoleOwner || m.Role == RoleAdmin
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.Season <= 0 {
		return fmt.Errorf("league season must be a positive year")
	}
	if l.InviteCode == "" {
		return fmt.Errorf("league invite code is required")
	}

	return nil
}

func (m Membership) Validate() error {
	if m.LeagueID == "" {
		return fmt.Errorf("membership league id is required")
	}
	if m.ProfileID == "" {
		return fmt.Errorf("membership profile id is required")
	}
	switch m.Role {
	case RoleOwner, RoleAdmin, RoleMember:
	default:
		return fmt.Errorf("membership role %q is unknown", m.Role)
	}

	return nil
}
