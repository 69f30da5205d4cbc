package memory

import (
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/team"
)

// Seed identifiers reused across tests and demo mode.
const (
	LeagueIDSundaySurvivors = "lg-sunday-survivors"
	SeedSeason              = 2025

	ProfileIDOwner  = "pr-owner"
	ProfileIDMember = "pr-member"
)

var seedKickoff = time.Date(2025, time.September, 7, 17, 0, 0, 0, time.UTC)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:         LeagueIDSundaySurvivors,
			Name:       "Sunday Survivors",
			Season:     SeedSeason,
			InviteCode: "sunday-survivors-2025",
			CreatedBy:  ProfileIDOwner,
			CreatedAt:  seedKickoff.AddDate(0, -1, 0),
			UpdatedAt:  seedKickoff.AddDate(0, -1, 0),
		},
	}
}

func SeedMemberships() []league.Membership {
	joined := seedKickoff.AddDate(0, -1, 0)
	return []league.Membership{
		{
			LeagueID:    LeagueIDSundaySurvivors,
			ProfileID:   ProfileIDOwner,
			DisplayName: "Commissioner",
			Role:        league.RoleOwner,
			JoinedAt:    joined,
		},
		{
			LeagueID:    LeagueIDSundaySurvivors,
			ProfileID:   ProfileIDMember,
			DisplayName: "Underdog",
			Role:        league.RoleMember,
			JoinedAt:    joined,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "KC", Abbreviation: "KC", Name: "Chiefs", Location: "Kansas City"},
		{ID: "LV", Abbreviation: "LV", Name: "Raiders", Location: "Las Vegas"},
		{ID: "BUF", Abbreviation: "BUF", Name: "Bills", Location: "Buffalo"},
		{ID: "MIA", Abbreviation: "MIA", Name: "Dolphins", Location: "Miami"},
		{ID: "DAL", Abbreviation: "DAL", Name: "Cowboys", Location: "Dallas"},
		{ID: "PHI", Abbreviation: "PHI", Name: "Eagles", Location: "Philadelphia"},
		{ID: "SF", Abbreviation: "SF", Name: "49ers", Location: "San Francisco"},
		{ID: "SEA", Abbreviation: "SEA", Name: "Seahawks", Location: "Seattle"},
	}
}

// SeedGames covers two weeks: week 1 is FINAL with scores, week 2 is still
// upcoming relative to seedKickoff.
func SeedGames() []game.Game {
	score := func(n int) *int { return &n }
	week2 := seedKickoff.AddDate(0, 0, 7)

	return []game.Game{
		{
			ID: "gm-w1-kc-lv", Season: SeedSeason, Week: 1,
			HomeTeamID: "KC", AwayTeamID: "LV",
			KickoffAt: seedKickoff, Status: game.StatusFinal,
			HomeScore: score(24), AwayScore: score(17),
		},
		{
			ID: "gm-w1-buf-mia", Season: SeedSeason, Week: 1,
			HomeTeamID: "BUF", AwayTeamID: "MIA",
			KickoffAt: seedKickoff, Status: game.StatusFinal,
			HomeScore: score(21), AwayScore: score(21),
		},
		{
			ID: "gm-w1-dal-phi", Season: SeedSeason, Week: 1,
			HomeTeamID: "DAL", AwayTeamID: "PHI",
			KickoffAt: seedKickoff, Status: game.StatusFinal,
			HomeScore: score(10), AwayScore: score(28),
		},
		{
			ID: "gm-w2-kc-buf", Season: SeedSeason, Week: 2,
			HomeTeamID: "KC", AwayTeamID: "BUF",
			KickoffAt: week2, Status: game.StatusUpcoming,
		},
		{
			ID: "gm-w2-sf-sea", Season: SeedSeason, Week: 2,
			HomeTeamID: "SF", AwayTeamID: "SEA",
			KickoffAt: week2, Status: game.StatusUpcoming,
		},
		{
			ID: "gm-w2-dal-lv", Season: SeedSeason, Week: 2,
			HomeTeamID: "DAL", AwayTeamID: "LV",
			KickoffAt: week2, Status: game.StatusUpcoming,
		},
	}
}
