package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/scoring"
	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	"github.com/gridironpool/survivor-league/internal/platform/resilience"
)

const defaultScoringEnsureInterval = 30 * time.Second

type ScoringService struct {
	leagueRepo     league.Repository
	gameRepo       game.Repository
	pickRepo       pick.Repository
	wrinkleRepo    wrinkle.Repository
	scoringRepo    scoring.Repository
	now            func() time.Time
	ensureFlight   resilience.SingleFlight
	ensureMu       sync.Mutex
	lastEnsureAt   map[string]time.Time
	ensureInterval time.Duration
}

func NewScoringService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	pickRepo pick.Repository,
	wrinkleRepo wrinkle.Repository,
	scoringRepo scoring.Repository,
) *ScoringService {
	return &ScoringService{
		leagueRepo:     leagueRepo,
		gameRepo:       gameRepo,
		pickRepo:       pickRepo,
		wrinkleRepo:    wrinkleRepo,
		scoringRepo:    scoringRepo,
		now:            time.Now,
		lastEnsureAt:   make(map[string]time.Time),
		ensureInterval: defaultScoringEnsureInterval,
	}
}

// EnsureLeagueUpToDate rescores every week of the league's season that has
// picks. Concurrent callers collapse into one run, and a league scored within
// the ensure interval is skipped.
func (s *ScoringService) EnsureLeagueUpToDate(ctx context.Context, leagueID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.EnsureLeagueUpToDate")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}

	now := s.now().UTC()
	if s.shouldSkipEnsure(leagueID, now) {
		return nil
	}

	key := "scoring:ensure:" + leagueID
	_, err, _ := s.ensureFlight.Do(key, func() (any, error) {
		runNow := s.now().UTC()
		if s.shouldSkipEnsure(leagueID, runNow) {
			return nil, nil
		}

		if runErr := s.ensureLeagueUpToDateOnce(ctx, leagueID); runErr != nil {
			return nil, runErr
		}
		s.markEnsure(leagueID, runNow)
		return nil, nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (s *ScoringService) ensureLeagueUpToDateOnce(ctx context.Context, leagueID string) error {
	l, exists, err := s.leagueRepo.GetByID(ctx, leagueID)
	if err != nil {
		return fmt.Errorf("get league for scoring: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}

	weeks, err := s.pickedWeeks(ctx, leagueID, l.Season)
	if err != nil {
		return err
	}
	ordered := make([]int, 0, len(weeks))
	for w := range weeks {
		ordered = append(ordered, w)
	}
	sort.Ints(ordered)

	for _, week := range ordered {
		if _, err := s.ScoreWeek(ctx, leagueID, l.Season, week); err != nil {
			return err
		}
	}

	return nil
}

func (s *ScoringService) shouldSkipEnsure(leagueID string, now time.Time) bool {
	s.ensureMu.Lock()
	defer s.ensureMu.Unlock()

	last, ok := s.lastEnsureAt[leagueID]
	return ok && now.Sub(last) < s.ensureInterval
}

func (s *ScoringService) markEnsure(leagueID string, now time.Time) {
	s.ensureMu.Lock()
	s.lastEnsureAt[leagueID] = now
	s.ensureMu.Unlock()
}

// ScoreWeek recomputes and upserts one WeeklyPoints row per profile that has
// a decided pick in the week. Re-running is idempotent, so score corrections
// after FINAL are picked up by the next run.
func (s *ScoringService) ScoreWeek(ctx context.Context, leagueID string, season, week int) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ScoreWeek")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return 0, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if season <= 0 || week <= 0 {
		return 0, fmt.Errorf("%w: season and week must be positive numbers", ErrInvalidInput)
	}

	results, err := s.weekResults(ctx, leagueID, season, week)
	if err != nil {
		return 0, err
	}

	byProfile := make(map[string]*scoring.WeeklyPoints)
	for _, r := range results {
		if !r.Decided {
			continue
		}
		row, ok := byProfile[r.ProfileID]
		if !ok {
			row = &scoring.WeeklyPoints{
				LeagueID:  leagueID,
				Season:    season,
				Week:      week,
				ProfileID: r.ProfileID,
			}
			byProfile[r.ProfileID] = row
		}
		row.Points += r.Points
		row.DecidedPicks++
		if r.Correct {
			row.CorrectPicks++
		}
	}

	if len(byProfile) == 0 {
		return 0, nil
	}

	now := s.now().UTC()
	rows := make([]scoring.WeeklyPoints, 0, len(byProfile))
	for _, row := range byProfile {
		row.CalculatedAt = now
		rows = append(rows, *row)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ProfileID < rows[j].ProfileID
	})

	if err := s.scoringRepo.UpsertWeeklyPoints(ctx, rows); err != nil {
		return 0, fmt.Errorf("upsert weekly points: %w", err)
	}

	return len(rows), nil
}

// weekResults computes per-pick outcomes for one week, wrinkle picks
// included. A double_points wrinkle doubles the points of picks on its games
// (every game of the week when it names none).
func (s *ScoringService) weekResults(ctx context.Context, leagueID string, season, week int) ([]scoring.PickResult, error) {
	games, err := s.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list games for week: %w", err)
	}
	gamesByID := make(map[string]game.Game, len(games))
	for _, g := range games {
		gamesByID[g.ID] = g
	}

	seasonPicks, err := s.pickRepo.ListLeagueSeason(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list league picks: %w", err)
	}

	wrinklePicks, err := s.wrinkleRepo.ListLeaguePicksByWeek(ctx, leagueID, season, week)
	if err != nil {
		return nil, fmt.Errorf("list wrinkle picks for week: %w", err)
	}

	wrinkles, err := s.wrinkleRepo.ListByWeek(ctx, leagueID, season, week)
	if err != nil {
		return nil, fmt.Errorf("list wrinkles for week: %w", err)
	}
	doubled := doubledGames(wrinkles, games)

	var results []scoring.PickResult
	for _, p := range seasonPicks {
		if p.Week != week {
			continue
		}
		g, ok := gamesByID[p.GameID]
		if !ok {
			continue
		}
		points, decided := scoring.PointsForPick(p.TeamID, g)
		if _, double := doubled[g.ID]; double {
			points *= 2
		}
		results = append(results, scoring.PickResult{
			ProfileID: p.ProfileID,
			Week:      p.Week,
			Slot:      p.Slot,
			Points:    points,
			Decided:   decided,
			Correct:   scoring.IsCorrect(p.TeamID, g),
		})
	}

	for _, wp := range wrinklePicks {
		g, ok := gamesByID[wp.GameID]
		if !ok {
			continue
		}
		points, decided := scoring.PointsForPick(wp.TeamID, g)
		if _, double := doubled[g.ID]; double {
			points *= 2
		}
		results = append(results, scoring.PickResult{
			ProfileID: wp.ProfileID,
			Week:      wp.Week,
			// Wrinkle slots sort after the ordinary quota slots in streak
			// ordering.
			Slot:    100,
			Points:  points,
			Decided: decided,
			Correct: scoring.IsCorrect(wp.TeamID, g),
		})
	}

	return results, nil
}

func doubledGames(wrinkles []wrinkle.Wrinkle, games []game.Game) map[string]struct{} {
	doubled := make(map[string]struct{})
	for _, w := range wrinkles {
		if w.Kind != wrinkle.KindDoublePoints || w.Status == wrinkle.StatusPending {
			continue
		}
		if len(w.GameIDs) == 0 {
			for _, g := range games {
				doubled[g.ID] = struct{}{}
			}
			continue
		}
		for _, id := range w.GameIDs {
			doubled[id] = struct{}{}
		}
	}

	return doubled
}

// SeasonTotals sums the season's weekly rows per profile. Totals are always
// rebuilt from the weekly rows rather than maintained incrementally.
func (s *ScoringService) SeasonTotals(ctx context.Context, leagueID string, season int) ([]scoring.SeasonPoints, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.SeasonTotals")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return nil, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}

	weekly, err := s.scoringRepo.ListSeasonWeeklyPoints(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list season weekly points: %w", err)
	}

	byProfile := make(map[string]*scoring.SeasonPoints)
	for _, row := range weekly {
		total, ok := byProfile[row.ProfileID]
		if !ok {
			total = &scoring.SeasonPoints{
				LeagueID:  leagueID,
				Season:    season,
				ProfileID: row.ProfileID,
			}
			byProfile[row.ProfileID] = total
		}
		total.Points += row.Points
		total.DecidedPicks += row.DecidedPicks
		total.CorrectPicks += row.CorrectPicks
	}

	totals := make([]scoring.SeasonPoints, 0, len(byProfile))
	for _, total := range byProfile {
		totals = append(totals, *total)
	}
	sort.SliceStable(totals, func(i, j int) bool {
		if totals[i].Points != totals[j].Points {
			return totals[i].Points > totals[j].Points
		}
		return totals[i].ProfileID < totals[j].ProfileID
	})

	return totals, nil
}

// Leaderboards recomputes the season's per-pick results and derives the
// average, accuracy and streak orderings.
func (s *ScoringService) Leaderboards(ctx context.Context, leagueID string, season int) (scoring.Leaderboards, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Leaderboards")
	defer span.End()

	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return scoring.Leaderboards{}, fmt.Errorf("%w: league_id is required", ErrInvalidInput)
	}
	if season <= 0 {
		return scoring.Leaderboards{}, fmt.Errorf("%w: season must be a positive year", ErrInvalidInput)
	}

	results, err := s.seasonResults(ctx, leagueID, season)
	if err != nil {
		return scoring.Leaderboards{}, err
	}
	names, err := s.displayNames(ctx, leagueID)
	if err != nil {
		return scoring.Leaderboards{}, err
	}

	lines := scoring.BuildSeasonLines(results, names)
	return scoring.ComputeLeaderboards(lines), nil
}

func (s *ScoringService) seasonResults(ctx context.Context, leagueID string, season int) ([]scoring.PickResult, error) {
	weeks, err := s.pickedWeeks(ctx, leagueID, season)
	if err != nil {
		return nil, err
	}

	var results []scoring.PickResult
	for week := range weeks {
		weekResults, err := s.weekResults(ctx, leagueID, season, week)
		if err != nil {
			return nil, err
		}
		results = append(results, weekResults...)
	}

	return results, nil
}

// pickedWeeks collects every week the league has activity in, counting
// wrinkle picks as well as ordinary ones so wrinkle-only weeks get scored.
func (s *ScoringService) pickedWeeks(ctx context.Context, leagueID string, season int) (map[int]struct{}, error) {
	picks, err := s.pickRepo.ListLeagueSeason(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list league picks: %w", err)
	}
	wrinklePicks, err := s.wrinkleRepo.ListLeagueSeasonPicks(ctx, leagueID, season)
	if err != nil {
		return nil, fmt.Errorf("list league wrinkle picks: %w", err)
	}

	weeks := make(map[int]struct{}, len(picks)+len(wrinklePicks))
	for _, p := range picks {
		weeks[p.Week] = struct{}{}
	}
	for _, p := range wrinklePicks {
		weeks[p.Week] = struct{}{}
	}

	return weeks, nil
}

func (s *ScoringService) displayNames(ctx context.Context, leagueID string) (map[string]string, error) {
	members, err := s.leagueRepo.ListMemberships(ctx, leagueID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	names := make(map[string]string, len(members))
	for _, m := range members {
		names[m.ProfileID] = m.DisplayName
	}

	return names, nil
}
