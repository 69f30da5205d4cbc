package game

import (
	"strings"
	"time"
)

const (
	StatusUpcoming = "UPCOMING"
	StatusLive     = "LIVE"
	StatusFinal    = "FINAL"
)

// Game represents one scheduled NFL game.
type Game struct {
	ID         string
	Season     int
	Week       int
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Status     string
	HomeScore  *int
	AwayScore  *int
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusUpcoming
	}
	return status
}

func (g Game) IsFinal() bool {
	return NormalizeStatus(g.Status) == StatusFinal
}

// IsLocked reports whether picks against this game can no longer change.
// Kickoff is the lock boundary; a game already live or final is locked even
// if its stored kickoff drifted.
func (g Game) IsLocked(now time.Time) bool {
	if !now.Before(g.KickoffAt) {
		return true
	}
	switch NormalizeStatus(g.Status) {
	case StatusLive, StatusFinal:
		return true
	default:
		return false
	}
}

// Involves reports whether the team plays in this game.
func (g Game) Involves(teamID string) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// OpponentOf returns the other side of the game, or "" when the team does
// not play in it.
func (g Game) OpponentOf(teamID string) string {
	switch teamID {
	case g.HomeTeamID:
		return g.AwayTeamID
	case g.AwayTeamID:
		return g.HomeTeamID
	default:
		return ""
	}
}
