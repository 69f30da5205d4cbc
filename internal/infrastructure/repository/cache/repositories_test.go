package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/team"
	gamemock "github.com/gridironpool/survivor-league/internal/mocks/domain/game"
	teammock "github.com/gridironpool/survivor-league/internal/mocks/domain/team"
	basecache "github.com/gridironpool/survivor-league/internal/platform/cache"
)

func TestTeamRepository_ListServedFromCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.
		On("List", mock.Anything).
		Return([]team.Team{{ID: "nfl-phi", Abbreviation: "PHI", Name: "Eagles"}}, nil).
		Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		teams, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(teams) != 1 || teams[0].ID != "nfl-phi" {
			t.Fatalf("unexpected teams: %v", teams)
		}
	}
}

func TestTeamRepository_GetByIDCachesMisses(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := teammock.NewRepository(t)
	next.
		On("GetByID", mock.Anything, "nfl-xyz").
		Return(team.Team{}, false, nil).
		Once()

	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(ctx, "nfl-xyz")
		if err != nil {
			t.Fatalf("get team: %v", err)
		}
		if exists {
			t.Fatalf("expected missing team")
		}
	}
}

func TestGameRepository_UpsertResultsInvalidatesSchedule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	stale := []game.Game{{ID: "gm-1", Season: 2025, Week: 1, Status: game.StatusUpcoming}}
	fresh := []game.Game{{ID: "gm-1", Season: 2025, Week: 1, Status: game.StatusFinal}}

	next := gamemock.NewRepository(t)
	next.On("ListByWeek", mock.Anything, 2025, 1).Return(stale, nil).Once()
	next.On("UpsertResults", mock.Anything, fresh).Return(nil).Once()
	next.On("ListByWeek", mock.Anything, 2025, 1).Return(fresh, nil).Once()

	repo := NewGameRepository(next, basecache.NewStore(time.Minute))

	games, err := repo.ListByWeek(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if games[0].Status != game.StatusUpcoming {
		t.Fatalf("unexpected status before upsert: %s", games[0].Status)
	}

	// Cached read does not hit the backend again.
	if _, err := repo.ListByWeek(ctx, 2025, 1); err != nil {
		t.Fatalf("cached list: %v", err)
	}

	if err := repo.UpsertResults(ctx, fresh); err != nil {
		t.Fatalf("upsert results: %v", err)
	}

	games, err = repo.ListByWeek(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("list games after upsert: %v", err)
	}
	if games[0].Status != game.StatusFinal {
		t.Fatalf("expected invalidated cache to serve final status, got %s", games[0].Status)
	}
}
