package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironpool/survivor-league/internal/domain/pick"
)

// PickRepository keeps picks under one mutex so the submit check and the
// write are atomic, mirroring the serializable transaction the postgres
// implementation uses.
type PickRepository struct {
	mu    sync.Mutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) Submit(_ context.Context, leagueID, profileID string, season, week int, check pick.SubmitCheck) (pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var weekPicks, seasonPicks []pick.Pick
	for _, p := range r.items {
		if p.LeagueID != leagueID || p.ProfileID != profileID || p.Season != season {
			continue
		}
		seasonPicks = append(seasonPicks, p)
		if p.Week == week {
			weekPicks = append(weekPicks, p)
		}
	}
	sortPicks(weekPicks)
	sortPicks(seasonPicks)

	created, err := check(weekPicks, seasonPicks)
	if err != nil {
		return pick.Pick{}, err
	}
	if err := created.Validate(); err != nil {
		return pick.Pick{}, err
	}
	r.items[created.ID] = created

	return created, nil
}

func (r *PickRepository) GetByID(_ context.Context, pickID string) (pick.Pick, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.items[pickID]
	if !ok {
		return pick.Pick{}, false, nil
	}

	return p, true, nil
}

func (r *PickRepository) ListByWeek(_ context.Context, leagueID, profileID string, season, week int) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID && p.ProfileID == profileID && p.Season == season && p.Week == week {
			out = append(out, p)
		}
	}
	sortPicks(out)

	return out, nil
}

func (r *PickRepository) ListBySeason(_ context.Context, leagueID, profileID string, season int) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID && p.ProfileID == profileID && p.Season == season {
			out = append(out, p)
		}
	}
	sortPicks(out)

	return out, nil
}

func (r *PickRepository) ListLeagueSeason(_ context.Context, leagueID string, season int) ([]pick.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if p.LeagueID == leagueID && p.Season == season {
			out = append(out, p)
		}
	}
	sortPicks(out)

	return out, nil
}

func (r *PickRepository) Delete(_ context.Context, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, pickID)

	return nil
}

func sortPicks(picks []pick.Pick) {
	sort.SliceStable(picks, func(i, j int) bool {
		if picks[i].Week != picks[j].Week {
			return picks[i].Week < picks[j].Week
		}
		if picks[i].Slot != picks[j].Slot {
			return picks[i].Slot < picks[j].Slot
		}
		return picks[i].ID < picks[j].ID
	})
}
