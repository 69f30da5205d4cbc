package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
)

type scoringFixture struct {
	svc         *ScoringService
	gameRepo    *memory.GameRepository
	pickRepo    *memory.PickRepository
	wrinkleRepo *memory.WrinkleRepository
	scoringRepo *memory.ScoringRepository
}

func newScoringFixture(t *testing.T) scoringFixture {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	pickRepo := memory.NewPickRepository()
	wrinkleRepo := memory.NewWrinkleRepository()
	scoringRepo := memory.NewScoringRepository()

	svc := NewScoringService(leagueRepo, gameRepo, pickRepo, wrinkleRepo, scoringRepo)
	svc.now = func() time.Time { return beforeWeek2Kickoff }

	return scoringFixture{
		svc:         svc,
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		wrinkleRepo: wrinkleRepo,
		scoringRepo: scoringRepo,
	}
}

func seedPick(t *testing.T, repo *memory.PickRepository, id, profileID, teamID, gameID string, week, slot int) {
	t.Helper()

	p := pick.Pick{
		ID:        id,
		LeagueID:  memory.LeagueIDSundaySurvivors,
		ProfileID: profileID,
		Season:    memory.SeedSeason,
		Week:      week,
		Slot:      slot,
		TeamID:    teamID,
		GameID:    gameID,
	}
	if _, err := repo.Submit(context.Background(), p.LeagueID, p.ProfileID, p.Season, p.Week,
		func(_, _ []pick.Pick) (pick.Pick, error) { return p, nil }); err != nil {
		t.Fatalf("seed pick %s: %v", id, err)
	}
}

func TestScoringService_ScoreWeek(t *testing.T) {
	fx := newScoringFixture(t)

	seedPick(t, fx.pickRepo, "pk-1", memory.ProfileIDMember, "KC", "gm-w1-kc-lv", 1, 1)
	seedPick(t, fx.pickRepo, "pk-2", memory.ProfileIDMember, "BUF", "gm-w1-buf-mia", 1, 2)
	seedPick(t, fx.pickRepo, "pk-3", memory.ProfileIDOwner, "LV", "gm-w1-kc-lv", 1, 1)

	n, err := fx.svc.ScoreWeek(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("score week failed: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 rows upserted, got %d", n)
	}

	rows, err := fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("list weekly points failed: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}

	member := rows[0]
	if member.ProfileID != memory.ProfileIDMember {
		member = rows[1]
	}
	// KC win 24 points plus half of BUF's 21 in the tie.
	if member.Points != 34.5 {
		t.Fatalf("expected 34.5 points, got %v", member.Points)
	}
	if member.DecidedPicks != 2 || member.CorrectPicks != 1 {
		t.Fatalf("unexpected counts: %+v", member)
	}

	owner := rows[0]
	if owner.ProfileID != memory.ProfileIDOwner {
		owner = rows[1]
	}
	if owner.Points != 0 || owner.DecidedPicks != 1 || owner.CorrectPicks != 0 {
		t.Fatalf("unexpected loser row: %+v", owner)
	}
}

func TestScoringService_ScoreWeek_DoublePointsWrinkle(t *testing.T) {
	fx := newScoringFixture(t)

	seedPick(t, fx.pickRepo, "pk-1", memory.ProfileIDMember, "KC", "gm-w1-kc-lv", 1, 1)
	if err := fx.wrinkleRepo.Create(t.Context(), wrinkle.Wrinkle{
		ID:       "wr-double",
		LeagueID: memory.LeagueIDSundaySurvivors,
		Season:   memory.SeedSeason,
		Week:     1,
		Kind:     wrinkle.KindDoublePoints,
		Status:   wrinkle.StatusActive,
		GameIDs:  []string{"gm-w1-kc-lv"},
	}); err != nil {
		t.Fatalf("seed wrinkle failed: %v", err)
	}

	if _, err := fx.svc.ScoreWeek(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1); err != nil {
		t.Fatalf("score week failed: %v", err)
	}

	rows, _ := fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Points != 48 {
		t.Fatalf("expected doubled 48 points, got %v", rows[0].Points)
	}
}

func TestScoringService_ScoreWeek_IncludesWrinklePicks(t *testing.T) {
	fx := newScoringFixture(t)

	if err := fx.wrinkleRepo.UpsertPick(t.Context(), wrinkle.Pick{
		ID:        "wp-1",
		WrinkleID: "wr-extra",
		LeagueID:  memory.LeagueIDSundaySurvivors,
		ProfileID: memory.ProfileIDMember,
		Season:    memory.SeedSeason,
		Week:      1,
		TeamID:    "PHI",
		GameID:    "gm-w1-dal-phi",
	}); err != nil {
		t.Fatalf("seed wrinkle pick failed: %v", err)
	}

	if _, err := fx.svc.ScoreWeek(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1); err != nil {
		t.Fatalf("score week failed: %v", err)
	}

	rows, _ := fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	// PHI won 28-10 on the road.
	if rows[0].Points != 28 || rows[0].CorrectPicks != 1 {
		t.Fatalf("unexpected wrinkle scoring row: %+v", rows[0])
	}
}

func TestScoringService_WrinkleOnlyWeekGetsScored(t *testing.T) {
	fx := newScoringFixture(t)

	// No ordinary picks at all this season; the only activity is a wrinkle pick.
	if err := fx.wrinkleRepo.UpsertPick(t.Context(), wrinkle.Pick{
		ID:        "wp-1",
		WrinkleID: "wr-extra",
		LeagueID:  memory.LeagueIDSundaySurvivors,
		ProfileID: memory.ProfileIDMember,
		Season:    memory.SeedSeason,
		Week:      1,
		TeamID:    "KC",
		GameID:    "gm-w1-kc-lv",
	}); err != nil {
		t.Fatalf("seed wrinkle pick failed: %v", err)
	}

	if err := fx.svc.EnsureLeagueUpToDate(t.Context(), memory.LeagueIDSundaySurvivors); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	rows, err := fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if err != nil {
		t.Fatalf("list weekly points failed: %v", err)
	}
	if len(rows) != 1 || rows[0].Points != 24 {
		t.Fatalf("expected the wrinkle week to be scored for 24 points, got %+v", rows)
	}

	boards, err := fx.svc.Leaderboards(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason)
	if err != nil {
		t.Fatalf("leaderboards failed: %v", err)
	}
	if len(boards.ByAvgPoints) != 1 || boards.ByAvgPoints[0].Points != 24 {
		t.Fatalf("expected wrinkle points on the leaderboard, got %+v", boards.ByAvgPoints)
	}
}

func TestScoringService_SeasonTotalsAndLeaderboards(t *testing.T) {
	fx := newScoringFixture(t)

	seedPick(t, fx.pickRepo, "pk-1", memory.ProfileIDMember, "KC", "gm-w1-kc-lv", 1, 1)
	seedPick(t, fx.pickRepo, "pk-2", memory.ProfileIDMember, "BUF", "gm-w1-buf-mia", 1, 2)
	seedPick(t, fx.pickRepo, "pk-3", memory.ProfileIDOwner, "PHI", "gm-w1-dal-phi", 1, 1)

	if _, err := fx.svc.ScoreWeek(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1); err != nil {
		t.Fatalf("score week failed: %v", err)
	}

	totals, err := fx.svc.SeasonTotals(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason)
	if err != nil {
		t.Fatalf("season totals failed: %v", err)
	}
	if len(totals) != 2 {
		t.Fatalf("expected 2 totals, got %d", len(totals))
	}
	if totals[0].ProfileID != memory.ProfileIDMember || totals[0].Points != 34.5 {
		t.Fatalf("unexpected leading total: %+v", totals[0])
	}

	boards, err := fx.svc.Leaderboards(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason)
	if err != nil {
		t.Fatalf("leaderboards failed: %v", err)
	}
	if len(boards.ByAccuracy) != 2 {
		t.Fatalf("expected 2 accuracy entries, got %d", len(boards.ByAccuracy))
	}
	// The owner went 1-for-1; the member's tie drags accuracy to 0.5.
	if boards.ByAccuracy[0].ProfileID != memory.ProfileIDOwner {
		t.Fatalf("expected owner to lead accuracy, got %s", boards.ByAccuracy[0].ProfileID)
	}
	// 28 average beats 17.25.
	if boards.ByAvgPoints[0].ProfileID != memory.ProfileIDOwner {
		t.Fatalf("expected owner to lead avg points, got %s", boards.ByAvgPoints[0].ProfileID)
	}
}

func TestScoringService_EnsureLeagueUpToDate_SkipsWithinInterval(t *testing.T) {
	fx := newScoringFixture(t)

	seedPick(t, fx.pickRepo, "pk-1", memory.ProfileIDMember, "KC", "gm-w1-kc-lv", 1, 1)

	if err := fx.svc.EnsureLeagueUpToDate(t.Context(), memory.LeagueIDSundaySurvivors); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	rows, _ := fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if len(rows) != 1 || rows[0].Points != 24 {
		t.Fatalf("unexpected rows after first ensure: %+v", rows)
	}

	// A score correction within the ensure interval is not picked up yet.
	games, _ := fx.gameRepo.ListByWeek(t.Context(), memory.SeedSeason, 1)
	for i := range games {
		if games[i].ID == "gm-w1-kc-lv" {
			bigger := 31
			games[i].HomeScore = &bigger
		}
	}
	if err := fx.gameRepo.UpsertResults(t.Context(), games); err != nil {
		t.Fatalf("upsert results failed: %v", err)
	}
	if err := fx.svc.EnsureLeagueUpToDate(t.Context(), memory.LeagueIDSundaySurvivors); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	rows, _ = fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if rows[0].Points != 24 {
		t.Fatalf("ensure inside interval should skip, got %v points", rows[0].Points)
	}

	// Past the interval the correction lands.
	fx.svc.now = func() time.Time { return beforeWeek2Kickoff.Add(time.Minute) }
	if err := fx.svc.EnsureLeagueUpToDate(t.Context(), memory.LeagueIDSundaySurvivors); err != nil {
		t.Fatalf("third ensure failed: %v", err)
	}
	rows, _ = fx.scoringRepo.ListWeeklyPoints(t.Context(), memory.LeagueIDSundaySurvivors, memory.SeedSeason, 1)
	if rows[0].Points != 31 {
		t.Fatalf("expected corrected 31 points, got %v", rows[0].Points)
	}
}
