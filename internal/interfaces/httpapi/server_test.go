package httpapi

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/user"
	"github.com/gridironpool/survivor-league/internal/infrastructure/repository/memory"
	"github.com/gridironpool/survivor-league/internal/platform/cache"
	"github.com/gridironpool/survivor-league/internal/platform/id"
	"github.com/gridironpool/survivor-league/internal/usecase"
)

func newTestRouter(t *testing.T, principal user.Principal) http.Handler {
	t.Helper()

	leagueRepo := memory.NewLeagueRepository(memory.SeedLeagues(), memory.SeedMemberships())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	gameRepo := memory.NewGameRepository(memory.SeedGames())
	pickRepo := memory.NewPickRepository()
	wrinkleRepo := memory.NewWrinkleRepository()
	scoringRepo := memory.NewScoringRepository()

	idGen := id.NewRandomGenerator()
	rules := pick.DefaultRules()

	leagueService := usecase.NewLeagueService(leagueRepo, idGen)
	pickService := usecase.NewPickService(leagueRepo, gameRepo, pickRepo, idGen, rules)
	wrinkleService := usecase.NewWrinkleService(leagueRepo, gameRepo, pickRepo, wrinkleRepo, idGen, rules)
	scoringService := usecase.NewScoringService(leagueRepo, gameRepo, pickRepo, wrinkleRepo, scoringRepo)
	standingsService := usecase.NewStandingsService(leagueRepo, scoringRepo, scoringService, cache.NewStore(time.Minute))
	scoreRefreshService := usecase.NewScoreRefreshService(leagueRepo, gameRepo, scoringService)

	handler := NewHandler(
		leagueService,
		pickService,
		wrinkleService,
		scoringService,
		standingsService,
		scoreRefreshService,
		teamRepo,
		gameRepo,
		slog.New(slog.DiscardHandler),
	)

	return NewRouter(handler, stubVerifier{principal: principal}, slog.New(slog.DiscardHandler), RouterConfig{
		CORSAllowedOrigins: []string{"*"},
		InternalJobToken:   "job-secret",
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestRouter_Healthz(t *testing.T) {
	router := newTestRouter(t, user.Principal{ProfileID: memory.ProfileIDMember})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func TestRouter_PublicTeamsNeedNoAuth(t *testing.T) {
	router := newTestRouter(t, user.Principal{})

	req := httptest.NewRequest(http.MethodGet, "/v1/teams", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec)
	teams, ok := body["data"].([]any)
	if !ok || len(teams) == 0 {
		t.Fatalf("expected seeded teams in response, got %v", body["data"])
	}
}

func TestRouter_AuthorizedRoutesRejectMissingToken(t *testing.T) {
	router := newTestRouter(t, user.Principal{ProfileID: memory.ProfileIDMember})

	req := httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestRouter_CreateAndListLeagues(t *testing.T) {
	router := newTestRouter(t, user.Principal{ProfileID: "pr-new", Email: "new@example.com"})

	payload := `{"name":"Backyard Survivors","season":2025,"displayName":"Rookie"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/leagues", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected league object, got %v", body["data"])
	}
	if data["name"] != "Backyard Survivors" {
		t.Fatalf("unexpected league name: %v", data["name"])
	}
	if invite, _ := data["inviteCode"].(string); invite == "" {
		t.Fatalf("expected generated invite code")
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/leagues", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body = decodeEnvelope(t, rec)
	leagues, ok := body["data"].([]any)
	if !ok || len(leagues) != 1 {
		t.Fatalf("expected one league for new profile, got %v", body["data"])
	}
}

func TestRouter_CreateLeagueRejectsUnknownFields(t *testing.T) {
	router := newTestRouter(t, user.Principal{ProfileID: "pr-new"})

	payload := `{"name":"Backyard Survivors","season":2025,"commissioner":"me"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/leagues", strings.NewReader(payload))
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestRouter_StandingsForMember(t *testing.T) {
	router := newTestRouter(t, user.Principal{ProfileID: memory.ProfileIDMember})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/leagues/"+memory.LeagueIDSundaySurvivors+"/standings?season=2025", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_StandingsForStranger(t *testing.T) {
	router := newTestRouter(t, user.Principal{ProfileID: "pr-stranger"})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/leagues/"+memory.LeagueIDSundaySurvivors+"/standings?season=2025", nil)
	req.Header.Set("Authorization", "Bearer token")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", rec.Code)
	}
}

func TestRouter_InternalRefreshJob(t *testing.T) {
	router := newTestRouter(t, user.Principal{})

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/refresh-scores", nil)
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected refresh result object, got %v", body["data"])
	}
	if _, ok := data["league_count"]; !ok {
		t.Fatalf("expected league_count in refresh result, got %v", data)
	}
}
