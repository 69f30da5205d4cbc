package httpapi

import (
	"net/http"

	"github.com/gridironpool/survivor-league/internal/usecase"
)

type createWrinkleRequest struct {
	Season     int      `json:"season" validate:"required,gt=0"`
	Week       int      `json:"week" validate:"required,gt=0"`
	Kind       string   `json:"kind" validate:"required,oneof=extra_pick double_points spread"`
	ExtraPicks int      `json:"extraPicks" validate:"omitempty,gte=0,lte=5"`
	GameIDs    []string `json:"gameIds" validate:"omitempty,dive,required"`
}

func (h *Handler) CreateWrinkle(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateWrinkle")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	var req createWrinkleRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "create wrinkle", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "create wrinkle", err)
		return
	}

	created, err := h.wrinkleService.Create(ctx, usecase.CreateWrinkleInput{
		LeagueID:   r.PathValue("leagueID"),
		Season:     req.Season,
		Week:       req.Week,
		Kind:       req.Kind,
		ExtraPicks: req.ExtraPicks,
		GameIDs:    req.GameIDs,
		Actor:      principal,
	})
	if err != nil {
		h.handleError(ctx, w, "create wrinkle", err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, toWrinkleResponse(created))
}

type setWrinkleStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active complete"`
}

func (h *Handler) SetWrinkleStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetWrinkleStatus")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	var req setWrinkleStatusRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "set wrinkle status", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "set wrinkle status", err)
		return
	}

	updated, err := h.wrinkleService.SetStatus(ctx, r.PathValue("wrinkleID"), req.Status, principal)
	if err != nil {
		h.handleError(ctx, w, "set wrinkle status", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toWrinkleResponse(updated))
}

func (h *Handler) ListWrinkles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListWrinkles")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	season, err := queryInt(r, "season", 0)
	if err != nil {
		h.handleError(ctx, w, "list wrinkles", err)
		return
	}
	week, err := queryInt(r, "week", 0)
	if err != nil {
		h.handleError(ctx, w, "list wrinkles", err)
		return
	}

	wrinkles, err := h.wrinkleService.ListByWeek(ctx, r.PathValue("leagueID"), season, week, principal)
	if err != nil {
		h.handleError(ctx, w, "list wrinkles", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toWrinkleResponses(wrinkles))
}

type submitWrinklePickRequest struct {
	TeamID string `json:"teamId" validate:"required"`
	GameID string `json:"gameId" validate:"omitempty,max=64"`
}

func (h *Handler) SubmitWrinklePick(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitWrinklePick")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, usecase.ErrUnauthorized)
		return
	}

	var req submitWrinklePickRequest
	if err := h.decodeJSONBody(r, &req); err != nil {
		h.handleError(ctx, w, "submit wrinkle pick", err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		h.handleError(ctx, w, "submit wrinkle pick", err)
		return
	}

	submitted, err := h.wrinkleService.SubmitPick(ctx, usecase.SubmitWrinklePickInput{
		WrinkleID: r.PathValue("wrinkleID"),
		TeamID:    req.TeamID,
		GameID:    req.GameID,
		Actor:     principal,
	})
	if err != nil {
		h.handleError(ctx, w, "submit wrinkle pick", err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toWrinklePickResponse(submitted))
}
