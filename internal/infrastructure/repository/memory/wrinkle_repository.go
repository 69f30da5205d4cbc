package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
)

type WrinkleRepository struct {
	mu    sync.RWMutex
	items map[string]wrinkle.Wrinkle
	picks map[string]wrinkle.Pick
}

func NewWrinkleRepository() *WrinkleRepository {
	return &WrinkleRepository{
		items: make(map[string]wrinkle.Wrinkle),
		picks: make(map[string]wrinkle.Pick),
	}
}

func (r *WrinkleRepository) Create(_ context.Context, w wrinkle.Wrinkle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[w.ID] = w

	return nil
}

func (r *WrinkleRepository) Update(_ context.Context, w wrinkle.Wrinkle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[w.ID] = w

	return nil
}

func (r *WrinkleRepository) GetByID(_ context.Context, wrinkleID string) (wrinkle.Wrinkle, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.items[wrinkleID]
	if !ok {
		return wrinkle.Wrinkle{}, false, nil
	}

	return w, true, nil
}

func (r *WrinkleRepository) ListByWeek(_ context.Context, leagueID string, season, week int) ([]wrinkle.Wrinkle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wrinkle.Wrinkle, 0)
	for _, w := range r.items {
		if w.LeagueID == leagueID && w.Season == season && w.Week == week {
			out = append(out, w)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *WrinkleRepository) UpsertPick(_ context.Context, p wrinkle.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.picks[p.ID] = p

	return nil
}

func (r *WrinkleRepository) ListPicks(_ context.Context, wrinkleID, profileID string) ([]wrinkle.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wrinkle.Pick, 0)
	for _, p := range r.picks {
		if p.WrinkleID == wrinkleID && p.ProfileID == profileID {
			out = append(out, p)
		}
	}
	sortWrinklePicks(out)

	return out, nil
}

func (r *WrinkleRepository) ListPicksBySeason(_ context.Context, leagueID, profileID string, season int) ([]wrinkle.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wrinkle.Pick, 0)
	for _, p := range r.picks {
		if p.LeagueID == leagueID && p.ProfileID == profileID && p.Season == season {
			out = append(out, p)
		}
	}
	sortWrinklePicks(out)

	return out, nil
}

func (r *WrinkleRepository) ListLeaguePicksByWeek(_ context.Context, leagueID string, season, week int) ([]wrinkle.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wrinkle.Pick, 0)
	for _, p := range r.picks {
		if p.LeagueID == leagueID && p.Season == season && p.Week == week {
			out = append(out, p)
		}
	}
	sortWrinklePicks(out)

	return out, nil
}

func (r *WrinkleRepository) ListLeagueSeasonPicks(_ context.Context, leagueID string, season int) ([]wrinkle.Pick, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]wrinkle.Pick, 0)
	for _, p := range r.picks {
		if p.LeagueID == leagueID && p.Season == season {
			out = append(out, p)
		}
	}
	sortWrinklePicks(out)

	return out, nil
}

func sortWrinklePicks(picks []wrinkle.Pick) {
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Week != picks[j].Week {
			return picks[i].Week < picks[j].Week
		}
		return picks[i].ID < picks[j].ID
	})
}
