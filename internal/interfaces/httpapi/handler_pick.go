package httpapi

import (
	"net/http"

	"github.com/gridironpool/survivor-league/internal/usecase"
)

type submitPickRequest struct {
	ProfileID string `json:"profileId" validate:"omitempty,max=64"`
	Season    int    `json:"season" validate:"required,gt=0"`
	Week      int    `json:"week" validate:"required,gt=0"`
	TeamID    string `json:"teamId" validate:"required"`
	GameID    string `json:"gameId" validate:"omitempty,max=64"`
	Force     bool   `json:"force"`
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	var req submitPickRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "submit pick", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "submit pick", err)
		return
	}

	// Omitting profileId submits for the caller; admins may submit for
	// another member.
	profileID := req.ProfileID
	if profileID == "" {
		profileID = principal.ProfileID
	}

	submitted, err := h.pickService.Submit(ctx, usecase.SubmitPickInput{
		LeagueID:  r.PathValue("leagueID"),
		ProfileID: profileID,
		Season:    req.Season,
		Week:      req.Week,
		TeamID:    req.TeamID,
		GameID:    req.GameID,
		Force:     req.Force,
		Actor:     principal,
	})
	if err != nil {
		h.handleError(ctx, w, "submit pick", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPickResponse(submitted))
}

func (h *Handler) DeletePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeletePick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	if err := h.pickService.Delete(ctx, r.PathValue("pickID"), principal); err != nil {
		h.handleError(ctx, w, "delete pick", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListMyPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyPicks")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	season, err := queryInt(r, "season", 0)
	if err != nil {
		h.handleError(ctx, w, "list picks", err)
		return
	}

	picks, err := h.pickService.ListMine(ctx, r.PathValue("leagueID"), principal, season)
	if err != nil {
		h.handleError(ctx, w, "list picks", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toPickResponses(picks))
}
