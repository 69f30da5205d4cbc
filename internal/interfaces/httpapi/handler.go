package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/team"
	"github.com/gridironpool/survivor-league/internal/usecase"
)

// Handler exposes the HTTP surface of the survivor pool API.
type Handler struct {
	leagueService       *usecase.LeagueService
	pickService         *usecase.PickService
	wrinkleService      *usecase.WrinkleService
	scoringService      *usecase.ScoringService
	standingsService    *usecase.StandingsService
	scoreRefreshService *usecase.ScoreRefreshService

	teamRepo team.Repository
	gameRepo game.Repository

	logger   *slog.Logger
	validate *validator.Validate
}

func NewHandler(
	leagueService *usecase.LeagueService,
	pickService *usecase.PickService,
	wrinkleService *usecase.WrinkleService,
	scoringService *usecase.ScoringService,
	standingsService *usecase.StandingsService,
	scoreRefreshService *usecase.ScoreRefreshService,
	teamRepo team.Repository,
	gameRepo game.Repository,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		leagueService:       leagueService,
		pickService:         pickService,
		wrinkleService:      wrinkleService,
		scoringService:      scoringService,
		standingsService:    standingsService,
		scoreRefreshService: scoreRefreshService,
		teamRepo:            teamRepo,
		gameRepo:            gameRepo,
		logger:              logger,
		validate:            validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeJSONBody(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed request body: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, req any) error {
	if err := h.validate.StructCtx(ctx, req); err != nil {
		return fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// queryInt parses an optional integer query parameter. A missing or empty
// value yields the fallback.
func queryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: query parameter %q must be an integer", usecase.ErrInvalidInput, key)
	}
	return value, nil
}

func (h *Handler) handleError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, op+" failed", "error", err)
	} else {
		h.logger.WarnContext(ctx, op+" rejected", "error", err)
	}
	writeError(ctx, w, err)
}
