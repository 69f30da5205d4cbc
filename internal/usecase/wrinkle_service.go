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
	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	"github.com/gridironpool/survivor-league/internal/platform/id"
)

type CreateWrinkleInput struct {
	LeagueID   string
	Season     int
	Week       int
	Kind       string
	ExtraPicks int
	GameIDs    []string
	Actor      user.Principal
}

type SubmitWrinklePickInput struct {
	WrinkleID string
	TeamID    string
	GameID    string
	Actor     user.Principal
}

type WrinkleService struct {
	leagueRepo  league.Repository
	gameRepo    game.Repository
	pickRepo    pick.Repository
	wrinkleRepo wrinkle.Repository
	idGen       id.Generator
	rules       pick.Rules
	now         func() time.Time
}

func NewWrinkleService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	wrinkleRepo wrinkle.Repository,
	idGen id.Generator,
	rules pick.Rules,
) *WrinkleService {
	return &WrinkleService{
		leagueRepo:  leagueRepo,
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		wrinkleRepo: wrinkleRepo,
		idGen:       idGen,
		rules:       rules,
		now:         time.Now,
	}
}

// Create registers a pending wrinkle for one week. Admin only.
func (s *WrinkleService) Create(ctx context.Context, input CreateWrinkleInput) (wrinkle.Wrinkle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WrinkleService.Create")
	defer span.End()

	input.LeagueID = strings.TrimSpace(input.LeagueID)
	input.Kind = strings.TrimSpace(input.Kind)
	if input.LeagueID == "" {
		return wrinkle.Wrinkle{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if input.Season <= 0 || input.Week <= 0 {
		return wrinkle.Wrinkle{}, fmt.Errorf("%w: season and week must be positive numbers", ErrInvalidInput)
	}
	if err := s.requireAdmin(ctx, input.LeagueID, input.Actor); err != nil {
		return wrinkle.Wrinkle{}, err
	}

	wrinkleID, err := s.idGen.NewID()
	if err != nil {
		return wrinkle.Wrinkle{}, fmt.Errorf("generate wrinkle id: %w", err)
	}

	now := s.now().UTC()
	w := wrinkle.Wrinkle{
		ID:         wrinkleID,
		LeagueID:   input.LeagueID,
		Season:     input.Season,
		Week:       input.Week,
		Kind:       input.Kind,
		Status:     wrinkle.StatusPending,
		ExtraPicks: input.ExtraPicks,
		GameIDs:    input.GameIDs,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if w.Kind == wrinkle.KindExtraPick && w.ExtraPicks == 0 {
		w.ExtraPicks = 1
	}
	if err := w.Validate(); err != nil {
		return wrinkle.Wrinkle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.wrinkleRepo.Create(ctx, w); err != nil {
		return wrinkle.Wrinkle{}, fmt.Errorf("create wrinkle: %w", err)
	}

	return w, nil
}

// SetStatus moves a wrinkle between pending, active and complete. Admin only.
func (s *WrinkleService) SetStatus(ctx context.Context, wrinkleID, status string, actor user.Principal) (wrinkle.Wrinkle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WrinkleService.SetStatus")
	defer span.End()

	wrinkleID = strings.TrimSpace(wrinkleID)
	status = strings.TrimSpace(status)
	if wrinkleID == "" || status == "" {
		return wrinkle.Wrinkle{}, fmt.Errorf("%w: wrinkle_id and status are required", ErrInvalidInput)
	}

	w, exists, err := s.wrinkleRepo.GetByID(ctx, wrinkleID)
	if err != nil {
		return wrinkle.Wrinkle{}, fmt.Errorf("get wrinkle: %w", err)
	}
	if !exists {
		return wrinkle.Wrinkle{}, fmt.Errorf("%w: wrinkle=%s", ErrNotFound, wrinkleID)
	}
	if err := s.requireAdmin(ctx, w.LeagueID, actor); err != nil {
		return wrinkle.Wrinkle{}, err
	}

	w.Status = status
	w.UpdatedAt = s.now().UTC()
	if err := w.Validate(); err != nil {
		return wrinkle.Wrinkle{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.wrinkleRepo.Update(ctx, w); err != nil {
		return wrinkle.Wrinkle{}, fmt.Errorf("update wrinkle: %w", err)
	}

	return w, nil
}

// ListByWeek returns a league's wrinkles for one week. Members only.
func (s *WrinkleService) ListByWeek(ctx context.Context, leagueID string, season, week int, actor user.Principal) ([]wrinkle.Wrinkle, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WrinkleService.ListByWeek")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if season <= 0 || week <= 0 {
		return nil, fmt.Errorf("%w: season and week must be positive numbers", ErrInvalidInput)
	}
	if err := s.requireMember(ctx, leagueID, actor); err != nil {
		return nil, err
	}

	wrinkles, err := s.wrinkleRepo.ListByWeek(ctx, leagueID, season, week)
	if err != nil {
		return nil, fmt.Errorf("list wrinkles by week: %w", err)
	}

	return wrinkles, nil
}

// SubmitPick places a wrinkle pick. Wrinkle picks live outside the ordinary
// weekly quota; each wrinkle grants its own slot budget. Whether they respect
// the season team-reuse rule follows the configured rules.
func (s *WrinkleService) SubmitPick(ctx context.Context, input SubmitWrinklePickInput) (wrinkle.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WrinkleService.SubmitPick")
	defer span.End()

	input.WrinkleID = strings.TrimSpace(input.WrinkleID)
	input.TeamID = strings.TrimSpace(input.TeamID)
	input.GameID = strings.TrimSpace(input.GameID)
	if input.WrinkleID == "" {
		return wrinkle.Pick{}, fmt.Errorf("%w: wrinkle_id is required", ErrInvalidInput)
	}
	if input.TeamID == "" {
		return wrinkle.Pick{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Actor.ProfileID) == "" {
		return wrinkle.Pick{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	w, exists, err := s.wrinkleRepo.GetByID(ctx, input.WrinkleID)
	if err != nil {
		return wrinkle.Pick{}, fmt.Errorf("get wrinkle: %w", err)
	}
	if !exists {
		return wrinkle.Pick{}, fmt.Errorf("%w: wrinkle=%s", ErrNotFound, input.WrinkleID)
	}
	if !w.IsOpen() {
		return wrinkle.Pick{}, fmt.Errorf("%w: wrinkle is not active", pick.ErrLocked)
	}
	if err := s.requireMember(ctx, w.LeagueID, input.Actor); err != nil {
		return wrinkle.Pick{}, err
	}

	mine, err := s.wrinkleRepo.ListPicks(ctx, w.ID, input.Actor.ProfileID)
	if err != nil {
		return wrinkle.Pick{}, fmt.Errorf("list wrinkle picks: %w", err)
	}
	slots := w.ExtraPicks
	if slots <= 0 {
		slots = 1
	}

	g, err := s.resolveWrinkleGame(ctx, w, input)
	if err != nil {
		return wrinkle.Pick{}, err
	}
	if existing, ok := findWrinklePickByGame(mine, g.ID); ok {
		// Same-game resubmission replaces the old wrinkle pick.
		existing.TeamID = input.TeamID
		if err := s.checkWrinkleReuse(ctx, w, input.Actor.ProfileID, input.TeamID); err != nil {
			return wrinkle.Pick{}, err
		}
		if err := pick.CheckLock(g, s.now().UTC(), false); err != nil {
			return wrinkle.Pick{}, err
		}
		if err := s.wrinkleRepo.UpsertPick(ctx, existing); err != nil {
			return wrinkle.Pick{}, fmt.Errorf("upsert wrinkle pick: %w", err)
		}
		return existing, nil
	}

	if len(mine) >= slots {
		return wrinkle.Pick{}, fmt.Errorf("%w: wrinkle slots=%d used=%d", pick.ErrQuotaExceeded, slots, len(mine))
	}
	if err := pick.CheckLock(g, s.now().UTC(), false); err != nil {
		return wrinkle.Pick{}, err
	}
	if err := s.checkWrinkleReuse(ctx, w, input.Actor.ProfileID, input.TeamID); err != nil {
		return wrinkle.Pick{}, err
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return wrinkle.Pick{}, fmt.Errorf("generate wrinkle pick id: %w", err)
	}
	wp := wrinkle.Pick{
		ID:        pickID,
		WrinkleID: w.ID,
		LeagueID:  w.LeagueID,
		ProfileID: input.Actor.ProfileID,
		Season:    w.Season,
		Week:      w.Week,
		TeamID:    input.TeamID,
		GameID:    g.ID,
		CreatedAt: s.now().UTC(),
	}
	if err := s.wrinkleRepo.UpsertPick(ctx, wp); err != nil {
		return wrinkle.Pick{}, fmt.Errorf("upsert wrinkle pick: %w", err)
	}

	return wp, nil
}

// checkWrinkleReuse applies the season team-reuse rule to wrinkle picks when
// the configured rules do not exempt them.
func (s *WrinkleService) checkWrinkleReuse(ctx context.Context, w wrinkle.Wrinkle, profileID, teamID string) error {
	if s.rules.WrinkleReuseExempt {
		return nil
	}

	seasonPicks, err := s.pickRepo.ListBySeason(ctx, w.LeagueID, profileID, w.Season)
	if err != nil {
		return fmt.Errorf("list season picks: %w", err)
	}
	if err := pick.CheckTeamReuse(seasonPicks, teamID); err != nil {
		return err
	}

	wrinklePicks, err := s.wrinkleRepo.ListPicksBySeason(ctx, w.LeagueID, profileID, w.Season)
	if err != nil {
		return fmt.Errorf("list season wrinkle picks: %w", err)
	}
	for _, wp := range wrinklePicks {
		if wp.TeamID == teamID && wp.WrinkleID != w.ID {
			return fmt.Errorf("%w: team=%s week=%d", pick.ErrTeamAlreadyUsed, teamID, wp.Week)
		}
	}

	return nil
}

func (s *WrinkleService) resolveWrinkleGame(ctx context.Context, w wrinkle.Wrinkle, input SubmitWrinklePickInput) (game.Game, error) {
	weekGames, err := s.gameRepo.ListByWeek(ctx, w.Season, w.Week)
	if err != nil {
		return game.Game{}, fmt.Errorf("list games for week: %w", err)
	}
	if len(w.GameIDs) > 0 {
		scoped := make([]game.Game, 0, len(w.GameIDs))
		allowed := make(map[string]struct{}, len(w.GameIDs))
		for _, id := range w.GameIDs {
			allowed[id] = struct{}{}
		}
		for _, g := range weekGames {
			if _, ok := allowed[g.ID]; ok {
				scoped = append(scoped, g)
			}
		}
		weekGames = scoped
	}
	if input.GameID != "" {
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

	return pick.ResolveGame(weekGames, input.TeamID)
}

func findWrinklePickByGame(picks []wrinkle.Pick, gameID string) (wrinkle.Pick, bool) {
	for _, p := range picks {
		if p.GameID == gameID {
			return p, true
		}
	}

	return wrinkle.Pick{}, false
}

func (s *WrinkleService) requireAdmin(ctx context.Context, leagueID string, actor user.Principal) error {
	if strings.TrimSpace(actor.ProfileID) == "" {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if actor.SiteAdmin {
		return nil
	}

	m, exists, err := s.leagueRepo.GetMembership(ctx, leagueID, actor.ProfileID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if !exists || !m.CanAdminister() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	return nil
}

func (s *WrinkleService) requireMember(ctx context.Context, leagueID string, actor user.Principal) error {
	if strings.TrimSpace(actor.ProfileID) == "" {
		return fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	_, exists, err := s.leagueRepo.GetMembership(ctx, leagueID, actor.ProfileID)
	if err != nil {
		return fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s profile=%s", pick.ErrNotMember, leagueID, actor.ProfileID)
	}

	return nil
}
