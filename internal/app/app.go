// Package app wires configuration, repositories, services, and the HTTP
// surface into a runnable server.
package app

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gridironpool/survivor-league/external/jobqueue"
	"github.com/gridironpool/survivor-league/internal/config"
	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/infrastructure/account/gatekeeper"
	"github.com/gridironpool/survivor-league/internal/interfaces/httpapi"
	"github.com/gridironpool/survivor-league/internal/platform/cache"
	idgen "github.com/gridironpool/survivor-league/internal/platform/id"
	"github.com/gridironpool/survivor-league/internal/platform/resilience"
	"github.com/gridironpool/survivor-league/internal/usecase"
)

func NewHTTPServer(cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	repos, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build repositories: %w", err)
	}

	rules := pick.DefaultRules()
	rules.WeeklyQuota = cfg.PickWeeklyQuota
	rules.WrinkleReuseExempt = cfg.WrinkleReuseExempt

	idGen := idgen.NewRandomGenerator()

	leagueSvc := usecase.NewLeagueService(repos.leagues, idGen)
	pickSvc := usecase.NewPickService(repos.leagues, repos.games, repos.picks, idGen, rules)
	wrinkleSvc := usecase.NewWrinkleService(repos.leagues, repos.games, repos.picks, repos.wrinkles, idGen, rules)
	scoringSvc := usecase.NewScoringService(repos.leagues, repos.games, repos.picks, repos.wrinkles, repos.scoring)
	standingsSvc := usecase.NewStandingsService(repos.leagues, repos.scoring, scoringSvc, cache.NewStore(cfg.CacheTTL))
	refreshSvc := usecase.NewScoreRefreshService(repos.leagues, repos.games, scoringSvc)
	refreshSvc.SetWorkers(cfg.ScoreRefreshWorkers)

	if cfg.QStashEnabled {
		publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			},
		}, logger)
		refreshSvc.SetPublisher(publisher, cfg.ScoreRefreshInterval)
	}

	verifier := gatekeeper.NewClient(
		&http.Client{Timeout: cfg.GatekeeperTimeout},
		cfg.GatekeeperBaseURL,
		cfg.GatekeeperIntrospectPath,
		cfg.GatekeeperAdminKey,
		resilience.CircuitBreakerConfig{
			Enabled:          cfg.GatekeeperCircuitEnabled,
			FailureThreshold: cfg.GatekeeperCircuitFailureCount,
			OpenTimeout:      cfg.GatekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.GatekeeperCircuitHalfOpenMaxReq,
		},
		cfg.SiteAdminProfileIDs,
		logger,
	)

	handler := httpapi.NewHandler(
		leagueSvc,
		pickSvc,
		wrinkleSvc,
		scoringSvc,
		standingsSvc,
		refreshSvc,
		repos.teams,
		repos.games,
		logger,
	)
	router := httpapi.NewRouter(handler, verifier, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
