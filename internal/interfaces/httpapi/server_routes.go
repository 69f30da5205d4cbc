package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /healthz", h.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /v1/teams", h.ListTeams)
	mux.HandleFunc("GET /v1/games", h.ListGames)
}

func registerAuthorizedRoutes(mux *http.ServeMux, h *Handler, verifier TokenVerifier) {
	authorized := func(handlerFunc http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, handlerFunc)
	}

	mux.Handle("POST /v1/leagues", authorized(h.CreateLeague))
	mux.Handle("POST /v1/leagues/join", authorized(h.JoinLeague))
	mux.Handle("GET /v1/leagues", authorized(h.ListMyLeagues))
	mux.Handle("GET /v1/leagues/{leagueID}", authorized(h.GetLeague))
	mux.Handle("GET /v1/leagues/{leagueID}/members", authorized(h.ListLeagueMembers))
	mux.Handle("DELETE /v1/leagues/{leagueID}/members/{profileID}", authorized(h.RemoveLeagueMember))

	mux.Handle("POST /v1/leagues/{leagueID}/picks", authorized(h.SubmitPick))
	mux.Handle("DELETE /v1/leagues/{leagueID}/picks/{pickID}", authorized(h.DeletePick))
	mux.Handle("GET /v1/leagues/{leagueID}/picks", authorized(h.ListMyPicks))

	mux.Handle("POST /v1/leagues/{leagueID}/wrinkles", authorized(h.CreateWrinkle))
	mux.Handle("PATCH /v1/leagues/{leagueID}/wrinkles/{wrinkleID}/status", authorized(h.SetWrinkleStatus))
	mux.Handle("GET /v1/leagues/{leagueID}/wrinkles", authorized(h.ListWrinkles))
	mux.Handle("POST /v1/leagues/{leagueID}/wrinkles/{wrinkleID}/picks", authorized(h.SubmitWrinklePick))

	mux.Handle("GET /v1/leagues/{leagueID}/standings", authorized(h.GetStandings))
	mux.Handle("GET /v1/leagues/{leagueID}/leaderboards", authorized(h.GetLeaderboards))
}

func registerInternalJobRoutes(mux *http.ServeMux, h *Handler, internalJobToken string) {
	internal := func(handlerFunc http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, handlerFunc)
	}

	mux.Handle("POST /v1/internal/jobs/refresh-scores", internal(h.RefreshScoresJob))
	mux.Handle("POST /v1/internal/ingestion/game-results", internal(h.IngestGameResults))
}
