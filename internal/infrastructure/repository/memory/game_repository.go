package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironpool/survivor-league/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, g := range games {
		items[g.ID] = g
	}

	return &GameRepository{items: items}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}

	return g, true, nil
}

func (r *GameRepository) ListByWeek(_ context.Context, season, week int) ([]game.Game, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if g.Season == season && g.Week == week {
			out = append(out, g)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *GameRepository) ListFinalByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	games, err := r.ListByWeek(ctx, season, week)
	if err != nil {
		return nil, err
	}

	out := make([]game.Game, 0, len(games))
	for _, g := range games {
		if g.IsFinal() {
			out = append(out, g)
		}
	}

	return out, nil
}

func (r *GameRepository) UpsertResults(_ context.Context, games []game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, g := range games {
		r.items[g.ID] = g
	}

	return nil
}
