package usecase

import (
	"testing"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/scoring"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
	"github.com/gridironpool/survivor-league/internal/platform/cache"
)

func TestStandingsService_GetStandings(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	scoringRepo := memory.NewScoringRepository()

	rows := []scoring.WeeklyPoints{
		{LeagueID: memory.LeagueIDSundaySurvivors, Season: memory.SeedSeason, Week: 1, ProfileID: memory.ProfileIDMember, Points: 34.5, DecidedPicks: 2, CorrectPicks: 1},
		{LeagueID: memory.LeagueIDSundaySurvivors, Season: memory.SeedSeason, Week: 1, ProfileID: memory.ProfileIDOwner, Points: 28, DecidedPicks: 1, CorrectPicks: 1},
		{LeagueID: memory.LeagueIDSundaySurvivors, Season: memory.SeedSeason, Week: 2, ProfileID: memory.ProfileIDOwner, Points: 20, DecidedPicks: 1, CorrectPicks: 1},
	}
	if err := scoringRepo.UpsertWeeklyPoints(t.Context(), rows); err != nil {
		t.Fatalf("seed weekly points failed: %v", err)
	}

	svc := NewStandingsService(leagueRepo, scoringRepo, nil, cache.NewStore(time.Minute))

	season, err := svc.GetStandings(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 0)
	if err != nil {
		t.Fatalf("season standings failed: %v", err)
	}
	if len(season) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(season))
	}
	// Owner has 48 season points to the member's 34.5.
	if season[0].ProfileID != memory.ProfileIDOwner || season[0].Rank != 1 {
		t.Fatalf("unexpected leader: %+v", season[0])
	}
	if season[1].BackFromFirst != 13.5 {
		t.Fatalf("expected 13.5 back from first, got %v", season[1].BackFromFirst)
	}
	if season[0].DisplayName != "Commissioner" {
		t.Fatalf("expected membership display name, got %s", season[0].DisplayName)
	}

	week, err := svc.GetStandings(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("week standings failed: %v", err)
	}
	if week[0].ProfileID != memory.ProfileIDMember {
		t.Fatalf("expected member to lead week 1, got %s", week[0].ProfileID)
	}

	// Cached reads do not see later writes within the TTL.
	more := []scoring.WeeklyPoints{
		{LeagueID: memory.LeagueIDSundaySurvivors, Season: memory.SeedSeason, Week: 3, ProfileID: memory.ProfileIDMember, Points: 100, DecidedPicks: 1, CorrectPicks: 1},
	}
	if err := scoringRepo.UpsertWeeklyPoints(t.Context(), more); err != nil {
		t.Fatalf("seed more weekly points failed: %v", err)
	}
	cached, err := svc.GetStandings(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 0)
	if err != nil {
		t.Fatalf("cached standings failed: %v", err)
	}
	if cached[0].ProfileID != memory.ProfileIDOwner {
		t.Fatalf("expected cached leader to stay the owner, got %s", cached[0].ProfileID)
	}
}
