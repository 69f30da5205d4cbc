package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/user"
	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
	"github.com/gridironpool/survivor-league/internal/platform/id"
)

func newWrinkleService(t *testing.T, rules pick.Rules) (*WrinkleService, *PickService) {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	pickRepo := memory.NewPickRepository()
	wrinkleRepo := memory.NewWrinkleRepository()
	gen := id.NewRandomGenerator()

	wsvc := NewWrinkleService(leagueRepo, gameRepo, pickRepo, wrinkleRepo, gen, rules)
	wsvc.now = func() time.Time { return beforeWeek2Kickoff }
	psvc := NewPickService(leagueRepo, gameRepo, pickRepo, gen, rules)
	psvc.now = func() time.Time { return beforeWeek2Kickoff }

	return wsvc, psvc
}

func activeExtraPickWrinkle(t *testing.T, svc *WrinkleService, extraPicks int) wrinkle.Wrinkle {
	t.Helper()
	owner := user.Principal{ProfileID: memory.ProfileIDOwner}

	w, err := svc.Create(t.Context(), CreateWrinkleInput{
		LeagueID:   memory.LeagueIDSundaySurvivors,
		Season:     memory.SeedSeason,
		Week:       2,
		Kind:       wrinkle.KindExtraPick,
		ExtraPicks: extraPicks,
		Actor:      owner,
	})
	if err != nil {
		t.Fatalf("create wrinkle failed: %v", err)
	}
	w, err = svc.SetStatus(t.Context(), w.ID, wrinkle.StatusActive, owner)
	if err != nil {
		t.Fatalf("activate wrinkle failed: %v", err)
	}

	return w
}

func TestWrinkleService_Create_AdminOnly(t *testing.T) {
	svc, _ := newWrinkleService(t, pick.DefaultRules())

	_, err := svc.Create(t.Context(), CreateWrinkleInput{
		LeagueID: memory.LeagueIDSundaySurvivors,
		Season:   memory.SeedSeason,
		Week:     2,
		Kind:     wrinkle.KindExtraPick,
		Actor:    user.Principal{ProfileID: memory.ProfileIDMember},
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member, got %v", err)
	}
}

func TestWrinkleService_SubmitPick_OutsideQuota(t *testing.T) {
	wsvc, psvc := newWrinkleService(t, pick.DefaultRules())
	member := user.Principal{ProfileID: memory.ProfileIDMember}
	w := activeExtraPickWrinkle(t, wsvc, 1)

	// Fill the ordinary quota first.
	for _, teamID := range []string{"KC", "SF"} {
		input := memberInput(teamID)
		if _, err := psvc.Submit(t.Context(), input); err != nil {
			t.Fatalf("ordinary submit %s failed: %v", teamID, err)
		}
	}

	// The wrinkle slot still accepts a pick.
	wp, err := wsvc.SubmitPick(t.Context(), SubmitWrinklePickInput{
		WrinkleID: w.ID,
		TeamID:    "DAL",
		Actor:     member,
	})
	if err != nil {
		t.Fatalf("wrinkle pick failed: %v", err)
	}
	if wp.GameID != "gm-w2-dal-lv" {
		t.Fatalf("unexpected resolved game: %s", wp.GameID)
	}

	// And the wrinkle's own slot budget is enforced.
	_, err = wsvc.SubmitPick(t.Context(), SubmitWrinklePickInput{
		WrinkleID: w.ID,
		TeamID:    "SEA",
		Actor:     member,
	})
	if !errors.Is(err, pick.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded for second wrinkle pick, got %v", err)
	}
}

func TestWrinkleService_SubmitPick_ReusePolicy(t *testing.T) {
	// Default rules exempt wrinkle picks from the season reuse rule.
	wsvc, psvc := newWrinkleService(t, pick.DefaultRules())
	member := user.Principal{ProfileID: memory.ProfileIDMember}
	w := activeExtraPickWrinkle(t, wsvc, 1)

	if _, err := psvc.Submit(t.Context(), memberInput("DAL")); err != nil {
		t.Fatalf("ordinary submit failed: %v", err)
	}
	if _, err := wsvc.SubmitPick(t.Context(), SubmitWrinklePickInput{WrinkleID: w.ID, TeamID: "DAL", Actor: member}); err != nil {
		t.Fatalf("exempt wrinkle pick may reuse a season team, got %v", err)
	}

	// With the exemption off, a previously used team is rejected.
	strict := pick.DefaultRules()
	strict.WrinkleReuseExempt = false
	wsvc, psvc = newWrinkleService(t, strict)
	w = activeExtraPickWrinkle(t, wsvc, 1)

	if _, err := psvc.Submit(t.Context(), memberInput("KC")); err != nil {
		t.Fatalf("ordinary submit failed: %v", err)
	}
	_, err := wsvc.SubmitPick(t.Context(), SubmitWrinklePickInput{WrinkleID: w.ID, TeamID: "KC", Actor: member})
	if !errors.Is(err, pick.ErrTeamAlreadyUsed) {
		t.Fatalf("expected ErrTeamAlreadyUsed under strict rules, got %v", err)
	}
}

func TestWrinkleService_SubmitPick_InactiveWrinkleLocked(t *testing.T) {
	wsvc, _ := newWrinkleService(t, pick.DefaultRules())
	owner := user.Principal{ProfileID: memory.ProfileIDOwner}

	w, err := wsvc.Create(t.Context(), CreateWrinkleInput{
		LeagueID: memory.LeagueIDSundaySurvivors,
		Season:   memory.SeedSeason,
		Week:     2,
		Kind:     wrinkle.KindExtraPick,
		Actor:    owner,
	})
	if err != nil {
		t.Fatalf("create wrinkle failed: %v", err)
	}

	_, err = wsvc.SubmitPick(t.Context(), SubmitWrinklePickInput{
		WrinkleID: w.ID,
		TeamID:    "SEA",
		Actor:     user.Principal{ProfileID: memory.ProfileIDMember},
	})
	if !errors.Is(err, pick.ErrLocked) {
		t.Fatalf("expected ErrLocked for pending wrinkle, got %v", err)
	}
}
