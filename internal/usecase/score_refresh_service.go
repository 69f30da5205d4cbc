package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/sourcegraph/conc/pool"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/league"
)

const (
	defaultRefreshWorkers    = 4
	defaultIngestBatchSize   = 25
	defaultIngestConcurrency = 4
	refreshJobPath           = "/v1/internal/jobs/refresh-scores"
)

// jobPublisher schedules the next score refresh run through the job queue.
type jobPublisher interface {
	Enqueue(ctx context.Context, path string, payload any, delay time.Duration, deduplicationID string) error
}

type IngestResultsInput struct {
	Games []game.Game
}

type RefreshScoresResult struct {
	GamesUpserted  int   `json:"games_upserted"`
	LeagueCount    int   `json:"league_count"`
	RescoredCount  int   `json:"rescored_count"`
	FailedCount    int   `json:"failed_count"`
	WorkerCount    int   `json:"worker_count"`
	DurationMs     int64 `json:"duration_ms"`
	NextRunQueued  bool  `json:"next_run_queued"`
	NextRunDelayMs int64 `json:"next_run_delay_ms,omitempty"`
}

// ScoreRefreshService ingests finalized game results and fans the rescore out
// across leagues. Both halves are idempotent, so the surrounding scheduler
// retries by re-running the whole job.
type ScoreRefreshService struct {
	leagueRepo   league.Repository
	gameRepo     game.Repository
	scorer       leagueScoringUpdater
	publisher    jobPublisher
	workers      int
	refreshEvery time.Duration
	now          func() time.Time
}

func NewScoreRefreshService(
	leagueRepo league.Repository,
	gameRepo game.Repository,
	scorer leagueScoringUpdater,
) *ScoreRefreshService {
	return &ScoreRefreshService{
		leagueRepo: leagueRepo,
		gameRepo:   gameRepo,
		scorer:     scorer,
		workers:    defaultRefreshWorkers,
		now:        time.Now,
	}
}

// SetPublisher enables self-scheduling of the next refresh run.
func (s *ScoreRefreshService) SetPublisher(p jobPublisher, every time.Duration) {
	s.publisher = p
	s.refreshEvery = every
}

func (s *ScoreRefreshService) SetWorkers(n int) {
	if n > 0 {
		s.workers = n
	}
}

// IngestResults upserts a batch of game rows, typically the output of a
// schedule/score sync. Batches are written in parallel.
func (s *ScoreRefreshService) IngestResults(ctx context.Context, input IngestResultsInput) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreRefreshService.IngestResults")
	defer span.End()

	if len(input.Games) == 0 {
		return 0, nil
	}
	for i := range input.Games {
		g := &input.Games[i]
		g.Status = game.NormalizeStatus(g.Status)
		if g.ID == "" {
			return 0, fmt.Errorf("%w: game id is required", ErrInvalidInput)
		}
		if g.Season <= 0 || g.Week <= 0 {
			return 0, fmt.Errorf("%w: game %s needs positive season and week", ErrInvalidInput, g.ID)
		}
		if g.HomeTeamID == "" || g.AwayTeamID == "" {
			return 0, fmt.Errorf("%w: game %s needs both team ids", ErrInvalidInput, g.ID)
		}
	}

	batches := batchGames(input.Games, defaultIngestBatchSize)
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(defaultIngestConcurrency)
	for _, batch := range batches {
		batch := batch
		p.Go(func(ctx context.Context) error {
			if err := s.gameRepo.UpsertResults(ctx, batch); err != nil {
				return fmt.Errorf("upsert game results: %w", err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return 0, err
	}

	return len(input.Games), nil
}

func batchGames(games []game.Game, size int) [][]game.Game {
	if size <= 0 {
		size = len(games)
	}
	var batches [][]game.Game
	for start := 0; start < len(games); start += size {
		end := start + size
		if end > len(games) {
			end = len(games)
		}
		batches = append(batches, games[start:end])
	}

	return batches
}

// RefreshAll rescores every league over a shared worker pool, then queues the
// next run when a publisher is configured.
func (s *ScoreRefreshService) RefreshAll(ctx context.Context) (RefreshScoresResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoreRefreshService.RefreshAll")
	defer span.End()

	started := s.now()

	leagues, err := s.leagueRepo.ListAll(ctx)
	if err != nil {
		return RefreshScoresResult{}, fmt.Errorf("list leagues: %w", err)
	}
	sort.SliceStable(leagues, func(i, j int) bool { return leagues[i].ID < leagues[j].ID })

	workerCount := s.workers
	if workerCount > len(leagues) && len(leagues) > 0 {
		workerCount = len(leagues)
	}

	result := RefreshScoresResult{
		LeagueCount: len(leagues),
		WorkerCount: workerCount,
	}

	if len(leagues) > 0 {
		workerPool, err := ants.NewPool(workerCount)
		if err != nil {
			return RefreshScoresResult{}, fmt.Errorf("create worker pool: %w", err)
		}
		defer workerPool.Release()

		var wg sync.WaitGroup
		var rescored, failed atomic.Int64
		for _, l := range leagues {
			leagueID := l.ID
			wg.Add(1)
			if err := workerPool.Submit(func() {
				defer wg.Done()
				if runErr := s.scorer.EnsureLeagueUpToDate(ctx, leagueID); runErr != nil {
					failed.Add(1)
					return
				}
				rescored.Add(1)
			}); err != nil {
				wg.Done()
				return RefreshScoresResult{}, fmt.Errorf("submit task to worker pool: %w", err)
			}
		}
		wg.Wait()

		result.RescoredCount = int(rescored.Load())
		result.FailedCount = int(failed.Load())
	}

	result.DurationMs = s.now().Sub(started).Milliseconds()

	if s.publisher != nil && s.refreshEvery > 0 {
		dedupID := fmt.Sprintf("refresh-scores-%d", s.now().Add(s.refreshEvery).Unix())
		if err := s.publisher.Enqueue(ctx, refreshJobPath, nil, s.refreshEvery, dedupID); err != nil {
			return result, fmt.Errorf("%w: queue next refresh run: %v", ErrDependencyUnavailable, err)
		}
		result.NextRunQueued = true
		result.NextRunDelayMs = s.refreshEvery.Milliseconds()
	}

	return result, nil
}
