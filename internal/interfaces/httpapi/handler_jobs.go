package httpapi

import (
	"net/http"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/usecase"
)

func (h *Handler) RefreshScoresJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshScoresJob")
	defer span.End()

	result, err := h.scoreRefreshService.RefreshAll(ctx)
	if err != nil {
		h.handleError(ctx, w, "refresh scores job", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type ingestGameResultRow struct {
	ID         string    `json:"id" validate:"required"`
	Season     int       `json:"season" validate:"required,gt=0"`
	Week       int       `json:"week" validate:"required,gt=0"`
	HomeTeamID string    `json:"homeTeamId" validate:"required"`
	AwayTeamID string    `json:"awayTeamId" validate:"required"`
	KickoffAt  time.Time `json:"kickoffAt" validate:"required"`
	Status     string    `json:"status" validate:"required"`
	HomeScore  *int      `json:"homeScore"`
	AwayScore  *int      `json:"awayScore"`
}

type ingestGameResultsRequest struct {
	Games []ingestGameResultRow `json:"games" validate:"required,min=1,dive"`
}

func (h *Handler) IngestGameResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.IngestGameResults")
	defer span.End()

	var req ingestGameResultsRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "ingest game results", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "ingest game results", err)
		return
	}

	games := make([]game.Game, 0, len(req.Games))
	for _, row := range req.Games {
		games = append(games, game.Game{
			ID:         row.ID,
			Season:     row.Season,
			Week:       row.Week,
			HomeTeamID: row.HomeTeamID,
			AwayTeamID: row.AwayTeamID,
			KickoffAt:  row.KickoffAt,
			Status:     row.Status,
			HomeScore:  row.HomeScore,
			AwayScore:  row.AwayScore,
		})
	}

	upserted, err := h.scoreRefreshService.IngestResults(ctx, usecase.IngestResultsInput{Games: games})
	if err != nil {
		h.handleError(ctx, w, "ingest game results", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]int{"gamesUpserted": upserted})
}
