package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/user"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
	"github.com/gridironpool/survivor-league/internal/platform/id"
)

// week 2 of the seed schedule kicks off 2025-09-14 17:00 UTC.
var beforeWeek2Kickoff = time.Date(2025, time.September, 14, 12, 0, 0, 0, time.UTC)

func newPickService(t *testing.T) (*PickService, *memory.PickRepository) {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	pickRepo := memory.NewPickRepository()

	svc := NewPickService(leagueRepo, gameRepo, pickRepo, id.NewRandomGenerator(), pick.DefaultRules())
	svc.now = func() time.Time { return beforeWeek2Kickoff }

	return svc, pickRepo
}

func memberInput(teamID string) SubmitPickInput {
	return SubmitPickInput{
		LeagueID:  memory.LeagueIDSundaySurvivors,
		ProfileID: memory.ProfileIDMember,
		Season:    memory.SeedSeason,
		Week:      2,
		TeamID:    teamID,
		Actor:     user.Principal{ProfileID: memory.ProfileIDMember},
	}
}

func TestPickService_Submit_ResolvesGame(t *testing.T) {
	svc, _ := newPickService(t)

	p, err := svc.Submit(t.Context(), memberInput("KC"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if p.GameID != "gm-w2-kc-buf" {
		t.Fatalf("unexpected resolved game: %s", p.GameID)
	}
	if p.Slot != 1 {
		t.Fatalf("expected slot 1, got %d", p.Slot)
	}
}

func TestPickService_Submit_QuotaExceeded(t *testing.T) {
	svc, _ := newPickService(t)

	if _, err := svc.Submit(t.Context(), memberInput("KC")); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.Submit(t.Context(), memberInput("SF")); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	_, err := svc.Submit(t.Context(), memberInput("DAL"))
	if !errors.Is(err, pick.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestPickService_Submit_TeamAlreadyUsed(t *testing.T) {
	svc, _ := newPickService(t)

	week1 := memberInput("KC")
	week1.Week = 1
	week1.Force = true
	week1.Actor = user.Principal{ProfileID: memory.ProfileIDOwner}
	if _, err := svc.Submit(t.Context(), week1); err != nil {
		t.Fatalf("seed week 1 pick failed: %v", err)
	}

	_, err := svc.Submit(t.Context(), memberInput("KC"))
	if !errors.Is(err, pick.ErrTeamAlreadyUsed) {
		t.Fatalf("expected ErrTeamAlreadyUsed, got %v", err)
	}
}

func TestPickService_Submit_Locked(t *testing.T) {
	svc, _ := newPickService(t)

	input := memberInput("KC")
	input.Week = 1
	_, err := svc.Submit(t.Context(), input)
	if !errors.Is(err, pick.ErrLocked) {
		t.Fatalf("expected ErrLocked for finished week, got %v", err)
	}
}

func TestPickService_Submit_ForceBypassesLockAndQuotaOnly(t *testing.T) {
	svc, _ := newPickService(t)
	admin := user.Principal{ProfileID: memory.ProfileIDOwner}

	// Fill the quota, then force a third pick past it.
	if _, err := svc.Submit(t.Context(), memberInput("KC")); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.Submit(t.Context(), memberInput("SF")); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}
	forced := memberInput("DAL")
	forced.Force = true
	forced.Actor = admin
	p, err := svc.Submit(t.Context(), forced)
	if err != nil {
		t.Fatalf("forced submit failed: %v", err)
	}
	if p.Slot != 3 {
		t.Fatalf("expected forced pick in slot 3, got %d", p.Slot)
	}

	// Force also bypasses the lock on a finished game.
	locked := memberInput("PHI")
	locked.Week = 1
	locked.Force = true
	locked.Actor = admin
	if _, err := svc.Submit(t.Context(), locked); err != nil {
		t.Fatalf("forced locked submit failed: %v", err)
	}

}

func TestPickService_Submit_ForceNeverBypassesTeamReuse(t *testing.T) {
	svc, _ := newPickService(t)
	admin := user.Principal{ProfileID: memory.ProfileIDOwner}

	week1 := memberInput("KC")
	week1.Week = 1
	week1.Force = true
	week1.Actor = admin
	if _, err := svc.Submit(t.Context(), week1); err != nil {
		t.Fatalf("seed week 1 pick failed: %v", err)
	}

	reuse := memberInput("KC")
	reuse.Force = true
	reuse.Actor = admin
	if _, err := svc.Submit(t.Context(), reuse); !errors.Is(err, pick.ErrTeamAlreadyUsed) {
		t.Fatalf("expected ErrTeamAlreadyUsed despite force, got %v", err)
	}
}

func TestPickService_Submit_ForceRequiresAdmin(t *testing.T) {
	svc, _ := newPickService(t)

	input := memberInput("KC")
	input.Force = true
	_, err := svc.Submit(t.Context(), input)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for member force, got %v", err)
	}
}

func TestPickService_Submit_NotMember(t *testing.T) {
	svc, _ := newPickService(t)

	input := memberInput("KC")
	input.ProfileID = "pr-stranger"
	input.Actor = user.Principal{ProfileID: "pr-stranger"}
	_, err := svc.Submit(t.Context(), input)
	if !errors.Is(err, pick.ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}

func TestPickService_Submit_InvalidWeek(t *testing.T) {
	svc, _ := newPickService(t)

	input := memberInput("KC")
	input.Week = 0
	if _, err := svc.Submit(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for week 0, got %v", err)
	}
	input.Week = -3
	if _, err := svc.Submit(t.Context(), input); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative week, got %v", err)
	}
}

func TestPickService_Submit_SameGameReplaces(t *testing.T) {
	svc, _ := newPickService(t)

	first, err := svc.Submit(t.Context(), memberInput("KC"))
	if err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := svc.Submit(t.Context(), memberInput("SF")); err != nil {
		t.Fatalf("second submit failed: %v", err)
	}

	// Flipping to the other side of the same game must not hit the quota.
	flipped, err := svc.Submit(t.Context(), memberInput("BUF"))
	if err != nil {
		t.Fatalf("side flip failed: %v", err)
	}
	if flipped.ID != first.ID || flipped.Slot != first.Slot {
		t.Fatalf("expected replacement of %s slot %d, got %s slot %d", first.ID, first.Slot, flipped.ID, flipped.Slot)
	}
	if flipped.TeamID != "BUF" {
		t.Fatalf("expected team BUF, got %s", flipped.TeamID)
	}

	mine, err := svc.ListMine(t.Context(), memory.LeagueIDSundaySurvivors, user.Principal{ProfileID: memory.ProfileIDMember}, memory.SeedSeason)
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 picks after replacement, got %d", len(mine))
	}
}

func TestPickService_Delete_IdempotentAndLocked(t *testing.T) {
	svc, _ := newPickService(t)
	member := user.Principal{ProfileID: memory.ProfileIDMember}

	if err := svc.Delete(t.Context(), "pk-missing", member); err != nil {
		t.Fatalf("deleting a missing pick should succeed, got %v", err)
	}

	p, err := svc.Submit(t.Context(), memberInput("KC"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	// Another member without admin rights deleting a foreign pick is a
	// silent no-op.
	stranger := user.Principal{ProfileID: "pr-stranger"}
	if err := svc.Delete(t.Context(), p.ID, stranger); err != nil {
		t.Fatalf("foreign delete should be idempotent, got %v", err)
	}
	if _, exists, _ := svcPick(t, svc, p.ID); !exists {
		t.Fatalf("pick should survive a foreign delete")
	}

	// The owner may delete before kickoff.
	if err := svc.Delete(t.Context(), p.ID, member); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if _, exists, _ := svcPick(t, svc, p.ID); exists {
		t.Fatalf("pick should be gone after owner delete")
	}
}

func TestPickService_Delete_LockedAfterKickoff(t *testing.T) {
	svc, _ := newPickService(t)
	member := user.Principal{ProfileID: memory.ProfileIDMember}
	admin := user.Principal{ProfileID: memory.ProfileIDOwner}

	p, err := svc.Submit(t.Context(), memberInput("KC"))
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	svc.now = func() time.Time { return beforeWeek2Kickoff.AddDate(0, 0, 1) }
	if err := svc.Delete(t.Context(), p.ID, member); !errors.Is(err, pick.ErrLocked) {
		t.Fatalf("expected ErrLocked after kickoff, got %v", err)
	}

	// Admins may delete at any time.
	if err := svc.Delete(t.Context(), p.ID, admin); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

func svcPick(t *testing.T, svc *PickService, pickID string) (pick.Pick, bool, error) {
	t.Helper()
	return svc.pickRepo.GetByID(t.Context(), pickID)
}
