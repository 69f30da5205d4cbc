package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/user"
	"github.com/gridironpool/survivor-league/internal/platform/id"
)

type CreateLeagueInput struct {
	Name        string
	Season      int
	DisplayName string
	Actor       user.Principal
}

type LeagueService struct {
	leagueRepo league.Repository
	idGen      id.Generator
	now        func() time.Time
}

func NewLeagueService(leagueRepo league.Repository, idGen id.Generator) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
		idGen:      idGen,
		now:        time.Now,
	}
}

// Create opens a new league and enrolls the creator as its owner.
func (s *LeagueService) Create(ctx context.Context, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.Create")
	defer span.End()

	input.Name = strings.TrimSpace(input.Name)
	input.DisplayName = strings.TrimSpace(input.DisplayName)
	if input.Name == "" {
		return league.League{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Season <= 0 {
		return league.League{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Actor.ProfileID) == "" {
		return league.League{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}
	if input.DisplayName == "" {
		input.DisplayName = input.Actor.Email
	}

	leagueID, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate league id: %w", err)
	}
	inviteCode, err := s.idGen.NewID()
	if err != nil {
		return league.League{}, fmt.Errorf("generate invite code: %w", err)
	}

	now := s.now().UTC()
	l := league.League{
		ID:         leagueID,
		Name:       input.Name,
		Season:     input.Season,
		InviteCode: inviteCode,
		CreatedBy:  input.Actor.ProfileID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	owner := league.Membership{
		LeagueID:    leagueID,
		ProfileID:   input.Actor.ProfileID,
		DisplayName: input.DisplayName,
		Role:        league.RoleOwner,
		JoinedAt:    now,
	}
	if err := l.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagueRepo.Create(ctx, l, owner); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	return l, nil
}

// JoinByInviteCode enrolls the caller as a member. Joining a league twice
// keeps the existing role.
func (s *LeagueService) JoinByInviteCode(ctx context.Context, inviteCode, displayName string, actor user.Principal) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.JoinByInviteCode")
	defer span.End()

	inviteCode = strings.TrimSpace(inviteCode)
	displayName = strings.TrimSpace(displayName)
	if inviteCode == "" {
		return league.League{}, fmt.Errorf("%w: invite_code is required", ErrInvalidInput)
	}
	if strings.TrimSpace(actor.ProfileID) == "" {
		return league.League{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	l, exists, err := s.leagueRepo.GetByInviteCode(ctx, inviteCode)
	if err != nil {
		return league.League{}, fmt.Errorf("get league by invite code: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: invite code does not match a league", ErrNotFound)
	}

	if _, member, err := s.leagueRepo.GetMembership(ctx, l.ID, actor.ProfileID); err != nil {
		return league.League{}, fmt.Errorf("get membership: %w", err)
	} else if member {
		return l, nil
	}

	if displayName == "" {
		displayName = actor.Email
	}
	m := league.Membership{
		LeagueID:    l.ID,
		ProfileID:   actor.ProfileID,
		DisplayName: displayName,
		Role:        league.RoleMember,
		JoinedAt:    s.now().UTC(),
	}
	if err := s.leagueRepo.UpsertMembership(ctx, m); err != nil {
		return league.League{}, fmt.Errorf("upsert membership: %w", err)
	}

	return l, nil
}

// ListMine returns the leagues the caller belongs to.
func (s *LeagueService) ListMine(ctx context.Context, actor user.Principal) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMine")
	defer span.End()

	if strings.TrimSpace(actor.ProfileID) == "" {
		return nil, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	leagues, err := s.leagueRepo.ListByProfile(ctx, actor.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("list leagues by profile: %w", err)
	}

	return leagues, nil
}

// GetByID returns one league the caller belongs to.
func (s *LeagueService) GetByID(ctx context.Context, leagueID string, actor user.Principal) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.GetByID")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return league.League{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return league.League{}, fmt.Errorf("get league: %w", err)
	}
	if !exists {
		return league.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if _, err := s.requireMembership(ctx, leagueID, actor); err != nil {
		return league.League{}, err
	}

	return l, nil
}

// ListMembers returns the league roster. Only members may see it.
func (s *LeagueService) ListMembers(ctx context.Context, leagueID string, actor user.Principal) ([]league.Membership, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMembers")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if _, err := s.requireMembership(ctx, leagueID, actor); err != nil {
		return nil, err
	}

	members, err := s.leagueRepo.ListMemberships(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	return members, nil
}

// RemoveMember drops a member from the league. Admin only; the owner cannot
// be removed.
func (s *LeagueService) RemoveMember(ctx context.Context, leagueID, profileID string, actor user.Principal) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.RemoveMember")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	profileID = strings.TrimSpace(profileID)
	if leagueID == "" || profileID == "" {
		return fmt.Errorf("%w: league_id and profile_id are required", ErrInvalidInput)
	}

	actorMembership, err := s.requireMembership(ctx, leagueID, actor)
	if err != nil {
		return err
	}
	if !actor.SiteAdmin && !actorMembership.CanAdminister() {
		return fmt.Errorf("%w: admin role required", ErrForbidden)
	}

	target, exists, err := s.leagueRepo.GetMembership(ctx, leagueID, profileID)
	if err != nil {
		return fmt.Errorf("get target membership: %w", err)
	}
	if !exists {
		return nil
	}
	if target.Role == league.RoleOwner {
		return fmt.Errorf("%w: the league owner cannot be removed", ErrForbidden)
	}

	if err := s.leagueRepo.DeleteMembership(ctx, leagueID, profileID); err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}

	return nil
}

func (s *LeagueService) requireMembership(ctx context.Context, leagueID string, actor user.Principal) (league.Membership, error) {
	if strings.TrimSpace(actor.ProfileID) == "" {
		return league.Membership{}, fmt.Errorf("%w: caller identity is required", ErrUnauthorized)
	}

	m, exists, err := s.leagueRepo.GetMembership(ctx, leagueID, actor.ProfileID)
	if err != nil {
		return league.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	if !exists {
		if actor.SiteAdmin {
			return league.Membership{LeagueID: leagueID, ProfileID: actor.ProfileID, Role: league.RoleAdmin}, nil
		}
		return league.Membership{}, fmt.Errorf("%w: profile is not a league member", ErrForbidden)
	}

	return m, nil
}
