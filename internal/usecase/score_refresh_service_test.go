package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
)

func TestScoreRefreshService_IngestResults(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	scorer := NewScoringService(leagueRepo, gameRepo, memory.NewPickRepository(), memory.NewWrinkleRepository(), memory.NewScoringRepository())
	svc := NewScoreRefreshService(leagueRepo, gameRepo, scorer)

	score := func(n int) *int { return &n }
	n, err := svc.IngestResults(t.Context(), IngestResultsInput{Games: []game.Game{
		{
			ID: "gm-w2-kc-buf", Season: memory.SeedSeason, Week: 2,
			HomeTeamID: "KC", AwayTeamID: "BUF",
			KickoffAt: time.Date(2025, time.September, 14, 17, 0, 0, 0, time.UTC),
			Status:    "final", HomeScore: score(27), AwayScore: score(20),
		},
	}})
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 game upserted, got %d", n)
	}

	g, exists, err := gameRepo.GetByID(t.Context(), "gm-w2-kc-buf")
	if err != nil || !exists {
		t.Fatalf("expected upserted game, exists=%v err=%v", exists, err)
	}
	if !g.IsFinal() {
		t.Fatalf("status should be normalized to FINAL, got %s", g.Status)
	}
}

func TestScoreRefreshService_IngestResults_RejectsInvalidRows(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	gameRepo := memory.NewGameRepository(nil)
	scorer := NewScoringService(leagueRepo, gameRepo, memory.NewPickRepository(), memory.NewWrinkleRepository(), memory.NewScoringRepository())
	svc := NewScoreRefreshService(leagueRepo, gameRepo, scorer)

	_, err := svc.IngestResults(t.Context(), IngestResultsInput{Games: []game.Game{
		{ID: "gm-bad", Season: memory.SeedSeason, Week: 0, HomeTeamID: "KC", AwayTeamID: "LV"},
	}})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestScoreRefreshService_RefreshAll(t *testing.T) {
	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	pickRepo := memory.NewPickRepository()
	scoringRepo := memory.NewScoringRepository()
	scorer := NewScoringService(leagueRepo, gameRepo, pickRepo, memory.NewWrinkleRepository(), scoringRepo)
	svc := NewScoreRefreshService(leagueRepo, gameRepo, scorer)

	seedPick(t, pickRepo, "pk-1", memory.ProfileIDMember, "KC", "gm-w1-kc-lv", 1, 1)

	result, err := svc.RefreshAll(t.Context())
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if result.LeagueCount != 1 || result.RescoredCount != 1 || result.FailedCount != 0 {
		t.Fatalf("unexpected result: %+v", result)
	}

	rows, err := scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("list weekly points failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Points != 24 {
		t.Fatalf("expected rescored 24 points, got %+v", rows)
	}
}
