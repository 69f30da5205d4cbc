package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gridironpool/survivor-league/internal/usecase"
)

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	leagueID := r.PathValue("leagueID")
	if _, err := h.leagueService.GetByID(ctx, leagueID, principal); err != nil {
		h.handleError(ctx, w, "get standings", err)
		return
	}

	season, err := queryInt(r, "season", 0)
	if err != nil {
		h.handleError(ctx, w, "get standings", err)
		return
	}
	// week 0 means full-season standings.
	week, err := queryInt(r, "week", 0)
	if err != nil {
		h.handleError(ctx, w, "get standings", err)
		return
	}

	rows, err := h.standingsService.GetStandings(ctx, leagueID, season, week)
	if err != nil {
		h.handleError(ctx, w, "get standings", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toStandingRowResponses(rows))
}

func (h *Handler) GetLeaderboards(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboards")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	leagueID := r.PathValue("leagueID")
	if _, err := h.leagueService.GetByID(ctx, leagueID, principal); err != nil {
		h.handleError(ctx, w, "get leaderboards", err)
		return
	}

	season, err := queryInt(r, "season", 0)
	if err != nil {
		h.handleError(ctx, w, "get leaderboards", err)
		return
	}

	if err := h.scoringService.EnsureLeagueUpToDate(ctx, leagueID); err != nil {
		h.handleError(ctx, w, "get leaderboards", err)
		return
	}

	boards, err := h.scoringService.Leaderboards(ctx, leagueID, season)
	if err != nil {
		h.handleError(ctx, w, "get leaderboards", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeaderboardsResponse(boards))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	teams, err := h.teamRepo.List(ctx)
	if err != nil {
		h.handleError(ctx, w, "list teams", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toTeamResponses(teams))
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	season, err := queryInt(r, "season", 0)
	if err != nil {
		h.handleError(ctx, w, "list games", err)
		return
	}
	week, err := queryInt(r, "week", 0)
	if err != nil {
		h.handleError(ctx, w, "list games", err)
		return
	}
	if season <= 0 || week <= 0 {
		h.handleError(ctx, w, "list games",
			fmt.Errorf("%w: season and week query parameters are required", usecase.ErrInvalidInput))
		return
	}

	games, err := h.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		h.handleError(ctx, w, "list games", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toGameResponses(games))
}
