package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gridironpool/survivor-league/internal/usecase"
)

type createLeagueRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=80"`
	Season      int    `json:"season" validate:"required,gt=0"`
	DisplayName string `json:"displayName" validate:"omitempty,max=40"`
}

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	var req createLeagueRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "create league", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "create league", err)
		return
	}

	created, err := h.leagueService.Create(ctx, usecase.CreateLeagueInput{
		Name:        req.Name,
		Season:      req.Season,
		DisplayName: req.DisplayName,
		Actor:       principal,
	})
	if err != nil {
		h.handleError(ctx, w, "create league", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toLeagueResponse(created))
}

type joinLeagueRequest struct {
	InviteCode  string `json:"inviteCode" validate:"required"`
	DisplayName string `json:"displayName" validate:"omitempty,max=40"`
}

func (h *Handler) JoinLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	var req joinLeagueRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "join league", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "join league", err)
		return
	}

	joined, err := h.leagueService.JoinByInviteCode(ctx, req.InviteCode, req.DisplayName, principal)
	if err != nil {
		h.handleError(ctx, w, "join league", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponse(joined))
}

func (h *Handler) ListMyLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyLeagues")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	leagues, err := h.leagueService.ListMine(ctx, principal)
	if err != nil {
		h.handleError(ctx, w, "list leagues", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponses(leagues))
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	found, err := h.leagueService.GetByID(ctx, r.PathValue("leagueID"), principal)
	if err != nil {
		h.handleError(ctx, w, "get league", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toLeagueResponse(found))
}

func (h *Handler) ListLeagueMembers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagueMembers")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	members, err := h.leagueService.ListMembers(ctx, r.PathValue("leagueID"), principal)
	if err != nil {
		h.handleError(ctx, w, "list league members", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toMembershipResponses(members))
}

func (h *Handler) RemoveLeagueMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveLeagueMember")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	leagueID := r.PathValue("leagueID")
	profileID := r.PathValue("profileID")
	if leagueID == "" || profileID == "" {
		h.handleError(ctx, w, "remove league member",
			fmt.Errorf("%w: league id and profile id are required", usecase.ErrInvalidInput))
		return
	}

	if err := h.leagueService.RemoveMember(ctx, leagueID, profileID, principal); err != nil {
		h.handleError(ctx, w, "remove league member", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "removed"})
}
