package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/user"
	"github.com/gridironpool/survivor-league/internal/platform/id"
)

type SubmitPickInput struct {
	LeagueID  string
	ProfileID string
	Season    int
	Week      int
	TeamID    string
	// GameID is optional; when empty the game is resolved from the team's
	// schedule for the week.
	GameID string
	// Force bypasses the lock and quota checks. Only league admins and
	// site admins may set it, and it never bypasses the season team-reuse
	// rule.
	Force bool
	Actor user.Principal
}

type PickService struct {
	leagueRepo league.Repository
	gameRepo   game.Repository
	pickRepo   pick.Repository
	idGen      id.Generator
	rules      pick.Rules
	now        func() time.Time
}

func NewPickService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	idGen id.Generator,
	rules pick.Rules,
) *PickService {
	return &PickService{
		leagueRepo: leagueRepo,
		gameRepo:   gameRepo,
		pickRepo:   pickRepo,
		idGen:      idGen,
		rules:      rules,
		now:        time.Now,
	}
}

// Submit validates and persists one weekly pick. The quota and team-reuse
// checks run again inside the repository transaction, so two concurrent
// submissions cannot both land past the quota.
func (s *PickService) Submit(ctx context.Context, input SubmitPickInput) (pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Submit")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.ProfileID = strings.TrimSpace(input.ProfileID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.GameID = strings.TrimSpace(input.GameID)

	if input.LeagueID == "" {
		return pick.Pick{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if input.ProfileID == "" {
		return pick.Pick{}, fmt.Errorf("%w: profile_id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return pick.Pick{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if input.Season <= 0 {
		return pick.Pick{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	if input.Week <= 0 {
		return pick.Pick{}, fmt.Errorf("%w: week must be a positive number", ErrInvalidInput)
	}

	if _, exists, err := s.leagueRepo.GetMembership(ctx, input.LeagueID, input.ProfileID); err != nil {
		return pick.Pick{}, fmt.Errorf("get target membership: %w", err)
	} else if !exists {
		return pick.Pick{}, fmt.Errorf("%w: league=%s profile=%s", pick.ErrNotMember, input.LeagueID, input.ProfileID)
	}

	if err := s.authorizeSubmit(ctx, input); err != nil {
		return pick.Pick{}, err
	}

	weekGames, err := s.gameRepo.ListByWeek(ctx, input.Season, input.Week)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("list games for week: %w", err)
	}
	g, err := s.resolveGame(weekGames, input)
	if err != nil {
		return pick.Pick{}, err
	}
	if err := pick.CheckLock(g, s.now().UTC(), input.Force); err != nil {
		return pick.Pick{}, err
	}

	created, err := s.pickRepo.Submit(ctx, input.LeagueID, input.ProfileID, input.Season, input.Week,
		func(weekPicks, seasonPicks []pick.Pick) (pick.Pick, error) {
			return s.buildPick(input, g, weekPicks, seasonPicks)
		})
	if err != nil {
		return pick.Pick{}, err
	}

	return created, nil
}

// buildPick is the transactional core: it sees the picks visible inside the
// repository transaction and decides between replacing a same-game pick and
// inserting into a fresh slot.
func (s *PickService) buildPick(input SubmitPickInput, g game.Game, weekPicks, seasonPicks []pick.Pick) (pick.Pick, error) {
	now := s.now().UTC()

	if existing, ok := pick.FindSameGame(weekPicks, g.ID); ok {
		// Flipping sides on one game replaces the old pick and keeps its
		// slot, so the quota is untouched.
		others := make([]pick.Pick, 0, len(seasonPicks))
		for _, p := range seasonPicks {
			if p.ID != existing.ID {
				others = append(others, p)
			}
		}
		if err := pick.CheckTeamReuse(others, input.TeamID); err != nil {
			return pick.Pick{}, err
		}
		existing.TeamID = input.TeamID
		existing.UpdatedAt = now
		return existing, nil
	}

	if err := pick.CheckQuota(weekPicks, s.rules, input.Force); err != nil {
		return pick.Pick{}, err
	}
	if err := pick.CheckTeamReuse(seasonPicks, input.TeamID); err != nil {
		return pick.Pick{}, err
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}

	return pick.Pick{
		ID:        pickID,
		LeagueID:  input.LeagueID,
		ProfileID: input.ProfileID,
		Season:    input.Season,
		Week:      input.Week,
		Slot:      pick.NextSlot(weekPicks),
		TeamID:    input.TeamID,
		GameID:    g.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (s *PickService) authorizeSubmit(ctx context.Context, input SubmitPickInput) error {
	actorID := strings.TrimSpace(input.Actor.ProfileID)
	if actorID == "" {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if actorID == input.ProfileID && !input.Force {
		return nil
	}
	if input.Actor.SiteAdmin {
		return nil
	}

	m, exists, err := s.leagueRepo.GetMembership(ctx, input.LeagueID, actorID)
	if err != nil {
		return fmt.Errorf("get actor membership: %w", err)
	}
	if !exists || !m.CanAdminister() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	return nil
}

func (s *PickService) resolveGame(weekGames []game.Game, input SubmitPickInput) (game.Game, error) {
	if input.GameID == "" {
		return pick.ResolveGame(weekGames, input.TeamID)
	}
	for _, g := range weekGames {
		if g.ID == input.GameID {
			if !g.Involves(input.TeamID) {
				return game.Game{}, fmt.Errorf("%w: team=%s does not play game=%s", pick.ErrGameNotFound, input.TeamID, input.GameID)
			}
			return g, nil
		}
	}

	return game.Game{}, fmt.Errorf("%w: game=%s", pick.ErrGameNotFound, input.GameID)
}

// Delete removes a pick before its game locks. Deleting a missing pick, or
// another member's pick without admin rights, succeeds without effect.
// Admins may delete any pick at any time.
func (s *PickService) Delete(ctx context.Context, pickID string, actor user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.Delete")
	defer span.End()

	pickID = strings.TrimSpace(pickID)
	if pickID == "" {
		return fmt.Errorf("%w: pick_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(actor.ProfileID) == "" {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	p, exists, err := s.pickRepo.GetByID(ctx, pickID)
	if err != nil {
		return fmt.Errorf("get pick: %w", err)
	}
	if !exists {
		return nil
	}

	isAdmin := actor.SiteAdmin
	if !isAdmin {
		m, memberExists, err := s.leagueRepo.GetMembership(ctx, p.LeagueID, actor.ProfileID)
		if err != nil {
			return fmt.Errorf("get actor membership: %w", err)
		}
		isAdmin = memberExists && m.CanAdminister()
	}

	if p.ProfileID != actor.ProfileID {
		if !isAdmin {
			return nil
		}
	} else if !isAdmin {
		g, gameExists, err := s.gameRepo.GetByID(ctx, p.GameID)
		if err != nil {
			return fmt.Errorf("get pick game: %w", err)
		}
		if gameExists {
			if err := pick.CheckLock(g, s.now().UTC(), false); err != nil {
				return err
			}
		}
	}

	if err := s.pickRepo.Delete(ctx, p.ID); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}

	return nil
}

// ListMine returns the caller's picks for a season in one league.
func (s *PickService) ListMine(ctx context.Context, leagueID string, actor user.Principal, season int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListMine")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	if strings.TrimSpace(actor.ProfileID) == "" {
		return nil, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	if _, exists, err := s.leagueRepo.GetMembership(ctx, leagueID, actor.ProfileID); err != nil {
		return nil, fmt.Errorf("get membership: %w", err)
	} else if !exists {
		return nil, fmt.Errorf("%w: league=%s profile=%s", pick.ErrNotMember, leagueID, actor.ProfileID)
	}

	picks, err := s.pickRepo.ListBySeason(ctx, leagueID, actor.ProfileID, season)
	if err != nil {
		return nil, fmt.Errorf("list picks by season: %w", err)
	}

	return picks, nil
}
