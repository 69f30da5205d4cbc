package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/scoring"
	"github.com/gridironpool/survivor-league/internal/platform/cache"
)

// leagueScoringUpdater keeps standings reads from serving stale points.
type leagueScoringUpdater interface {
	EnsureLeagueUpToDate(ctx context.Context, leagueID string) error
}

type StandingsService struct {
	leagueRepo  league.Repository
	scoringRepo scoring.Repository
	scorer      leagueScoringUpdater
	store       *cache.Store
}

func NewStandingsService(
	leagueRepo league.Repository,
	scoringRepo scoring.Repository,
	scorer leagueScoringUpdater,
	store *cache.Store,
) *StandingsService {
	return &StandingsService{
		leagueRepo:  leagueRepo,
		scoringRepo: scoringRepo,
		scorer:      scorer,
		store:       store,
	}
}

// GetStandings returns the points-ordered table for a season, or for one
// week when week > 0. Rows carry dense ranks plus margins behind the leader
// and the playoff cutoff.
func (s *StandingsService) GetStandings(ctx context.Context, leagueID string, season, week int) ([]scoring.StandingRow, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingsService.GetStandings")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}
	if week < 0 {
		return nil, fmt.Errorf("%w: week must be a positive number", ErrInvalidInput)
	}

	if s.scorer != nil {
		if err := s.scorer.EnsureLeagueUpToDate(ctx, leagueID); err != nil {
			return nil, fmt.Errorf("ensure league scoring before standings: %w", err)
		}
	}

	key := fmt.Sprintf("standings:%s:%d:%d", leagueID, season, week)
	load := func(ctx context.Context) (any, error) {
		return s.buildStandings(ctx, leagueID, season, week)
	}
	if s.store == nil {
		rows, err := s.buildStandings(ctx, leagueID, season, week)
		if err != nil {
			return nil, err
		}
		return rows, nil
	}

	value, err := s.store.GetOrLoad(ctx, key, load)
	if err != nil {
		return nil, err
	}
	rows, ok := value.([]scoring.StandingRow)
	if !ok {
		return nil, fmt.Errorf("unexpected standings cache entry type %T", value)
	}

	return rows, nil
}

func (s *StandingsService) buildStandings(ctx context.Context, leagueID string, season, week int) ([]scoring.StandingRow, error) {
	var (
		weekly []scoring.WeeklyPoints
		err    error
	)
	if week > 0 {
		weekly, err = s.scoringRepo.ListWeeklyPoints(ctx, leagueID, season, week)
	} else {
		weekly, err = s.scoringRepo.ListSeasonWeeklyPoints(ctx, leagueID, season)
	}
	if err != nil {
		return nil, fmt.Errorf("list weekly points: %w", err)
	}

	members, err := s.leagueRepo.ListMemberships(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ProfileID] = m.DisplayName
	}

	byProfile := make(map[string]*scoring.SeasonLine)
	for _, row := range weekly {
		line, ok := byProfile[row.ProfileID]
		if !ok {
			name := names[row.ProfileID]
			if name == "" {
				name = row.ProfileID
			}
			line = &scoring.SeasonLine{ProfileID: row.ProfileID, DisplayName: name}
			byProfile[row.ProfileID] = line
		}
		line.Points += row.Points
		line.DecidedPicks += row.DecidedPicks
		line.CorrectPicks += row.CorrectPicks
	}

	lines := make([]scoring.SeasonLine, 0, len(byProfile))
	for _, line := range byProfile {
		lines = append(lines, *line)
	}

	return scoring.ComputeStandings(lines), nil
}
