package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/gridironpool/survivor-league/internal/config"
	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/scoring"
	"github.com/gridironpool/survivor-league/internal/domain/team"
	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
	cacherepo "github.com/gridironpool/survivor-league/internal/infrastructure/repository/cache"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/postgres"
	basecache "github.com/gridironpool/survivor-league/internal/platform/cache"
)

const dbConnectTimeout = 10 * time.Second

type repositories struct {
	leagues  league.Repository
	teams    team.Repository
	games    game.Repository
	picks    pick.Repository
	wrinkles wrinkle.Repository
	scoring  scoring.Repository
}

// buildRepositories picks the storage backend. An empty DB_URL runs on the
// in-memory fixture store, which is enough for local development and tests.
func buildRepositories(cfg config.Config, logger *slog.Logger) (repositories, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		logger.Info("storage backend selected", "backend", "memory")
		return repositories{
			leagues:  memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships()),
			teams:    memory.NewTeamRepository(memory.SeedTeams()),
			games:    memory.NewGameRepository(memory.SeedGames()),
			picks:    memory.NewPickRepository(),
			wrinkles: memory.NewWrinkleRepository(),
			scoring:  memory.NewScoringRepository(),
		}, nil
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return repositories{}, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), dbConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return repositories{}, fmt.Errorf("ping database: %w", err)
	}
	if err := postgres.BootstrapSeed(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
	}

	logger.Info("storage backend selected", "backend", "postgres", "db_name", dbNameFromURL(cfg.DBURL))

	repos := repositories{
		leagues:  postgres.NewLeagueRepository(db),
		teams:    postgres.NewTeamRepository(db),
		games:    postgres.NewGameRepository(db),
		picks:    postgres.NewPickRepository(db),
		wrinkles: postgres.NewWrinkleRepository(db),
		scoring:  postgres.NewScoringRepository(db),
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cacherepo.NewTeamRepository(repos.teams, store)
		repos.games = cacherepo.NewGameRepository(repos.games, store)
	}

	return repos, nil
}
