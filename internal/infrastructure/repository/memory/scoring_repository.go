package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironpool/survivor-league/internal/domain/scoring"
)

type weeklyKey struct {
	leagueID  string
	season    int
	week      int
	profileID string
}

type ScoringRepository struct {
	mu     sync.RWMutex
	weekly map[weeklyKey]scoring.WeeklyPoints
}

func NewScoringRepository() *ScoringRepository {
	return &ScoringRepository{weekly: make(map[weeklyKey]scoring.WeeklyPoints)}
}

func (r *ScoringRepository) UpsertWeeklyPoints(_ context.Context, rows []scoring.WeeklyPoints) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range rows {
		r.weekly[weeklyKey{row.LeagueID, row.Season, row.Week, row.ProfileID}] = row
	}

	return nil
}

func (r *ScoringRepository) ListWeeklyPoints(_ context.Context, leagueID string, season, week int) ([]scoring.WeeklyPoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyPoints, 0)
	for key, row := range r.weekly {
		if key.leagueID == leagueID && key.season == season && key.week == week {
			out = append(out, row)
		}
	}
	sortWeekly(out)

	return out, nil
}

func (r *ScoringRepository) ListSeasonWeeklyPoints(_ context.Context, leagueID string, season int) ([]scoring.WeeklyPoints, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]scoring.WeeklyPoints, 0)
	for key, row := range r.weekly {
		if key.leagueID == leagueID && key.season == season {
			out = append(out, row)
		}
	}
	sortWeekly(out)

	return out, nil
}

func sortWeekly(rows []scoring.WeeklyPoints) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Week != rows[j].Week {
			return rows[i].Week < rows[j].Week
		}
		return rows[i].ProfileID < rows[j].ProfileID
	})
}
