package httpapi

import (
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
	"github.com/gridironpool/survivor-league/internal/domain/league"
	"github.com/gridironpool/survivor-league/internal/domain/pick"
	"github.com/gridironpool/survivor-league/internal/domain/scoring"
	"github.com/gridironpool/survivor-league/internal/domain/team"
	"github.com/gridironpool/survivor-league/internal/domain/wrinkle"
)

type leagueResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Season     int       `json:"season"`
	InviteCode string    `json:"inviteCode"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toLeagueResponse(l league.League) leagueResponse {
	return leagueResponse{
		ID:         l.ID,
		Name:       l.Name,
		Season:     l.Season,
		InviteCode: l.InviteCode,
		CreatedBy:  l.CreatedBy,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

func toLeagueResponses(leagues []league.League) []leagueResponse {
	out := make([]leagueResponse, 0, len(leagues))
	for _, l := range leagues {
		out = append(out, toLeagueResponse(l))
	}
	return out
}

type membershipResponse struct {
	LeagueID    string    `json:"leagueId"`
	ProfileID   string    `json:"profileId"`
	DisplayName string    `json:"displayName"`
	Role        string    `json:"role"`
	JoinedAt    time.Time `json:"joinedAt"`
}

func toMembershipResponses(memberships []league.Membership) []membershipResponse {
	out := make([]membershipResponse, 0, len(memberships))
	for _, m := range memberships {
		out = append(out, membershipResponse{
			LeagueID:    m.LeagueID,
			ProfileID:   m.ProfileID,
			DisplayName: m.DisplayName,
			Role:        string(m.Role),
			JoinedAt:    m.JoinedAt,
		})
	}
	return out
}

type pickResponse struct {
	ID        string    `json:"id"`
	LeagueID  string    `json:"leagueId"`
	ProfileID string    `json:"profileId"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	Slot      int       `json:"slot"`
	TeamID    string    `json:"teamId"`
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toPickResponse(p pick.Pick) pickResponse {
	return pickResponse{
		ID:        p.ID,
		LeagueID:  p.LeagueID,
		ProfileID: p.ProfileID,
		Season:    p.Season,
		Week:      p.Week,
		Slot:      p.Slot,
		TeamID:    p.TeamID,
		GameID:    p.GameID,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func toPickResponses(picks []pick.Pick) []pickResponse {
	out := make([]pickResponse, 0, len(picks))
	for _, p := range picks {
		out = append(out, toPickResponse(p))
	}
	return out
}

type wrinkleResponse struct {
	ID         string    `json:"id"`
	LeagueID   string    `json:"leagueId"`
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	Kind       string    `json:"kind"`
	Status     string    `json:"status"`
	ExtraPicks int       `json:"extraPicks"`
	GameIDs    []string  `json:"gameIds,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func toWrinkleResponse(w wrinkle.Wrinkle) wrinkleResponse {
	return wrinkleResponse{
		ID:         w.ID,
		LeagueID:   w.LeagueID,
		Season:     w.Season,
		Week:       w.Week,
		Kind:       w.Kind,
		Status:     w.Status,
		ExtraPicks: w.ExtraPicks,
		GameIDs:    w.GameIDs,
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.UpdatedAt,
	}
}

func toWrinkleResponses(wrinkles []wrinkle.Wrinkle) []wrinkleResponse {
	out := make([]wrinkleResponse, 0, len(wrinkles))
	for _, w := range wrinkles {
		out = append(out, toWrinkleResponse(w))
	}
	return out
}

type wrinklePickResponse struct {
	ID        string    `json:"id"`
	WrinkleID string    `json:"wrinkleId"`
	LeagueID  string    `json:"leagueId"`
	ProfileID string    `json:"profileId"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	TeamID    string    `json:"teamId"`
	GameID    string    `json:"gameId"`
	CreatedAt time.Time `json:"createdAt"`
}

func toWrinklePickResponse(p wrinkle.Pick) wrinklePickResponse {
	return wrinklePickResponse{
		ID:        p.ID,
		WrinkleID: p.WrinkleID,
		LeagueID:  p.LeagueID,
		ProfileID: p.ProfileID,
		Season:    p.Season,
		Week:      p.Week,
		TeamID:    p.TeamID,
		GameID:    p.GameID,
		CreatedAt: p.CreatedAt,
	}
}

type teamResponse struct {
	ID           string `json:"id"`
	Abbreviation string `json:"abbreviation"`
	Name         string `json:"name"`
	Location     string `json:"location"`
}

func toTeamResponses(teams []team.Team) []teamResponse {
	out := make([]teamResponse, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamResponse{
			ID:           t.ID,
			Abbreviation: t.Abbreviation,
			Name:         t.Name,
			Location:     t.Location,
		})
	}
	return out
}

type gameResponse struct {
	ID         string    `json:"id"`
	Season     int       `json:"season"`
	Week       int       `json:"week"`
	HomeTeamID string    `json:"homeTeamId"`
	AwayTeamID string    `json:"awayTeamId"`
	KickoffAt  time.Time `json:"kickoffAt"`
	Status     string    `json:"status"`
	HomeScore  *int      `json:"homeScore,omitempty"`
	AwayScore  *int      `json:"awayScore,omitempty"`
}

func toGameResponses(games []game.Game) []gameResponse {
	out := make([]gameResponse, 0, len(games))
	for _, g := range games {
		out = append(out, gameResponse{
			ID:         g.ID,
			Season:     g.Season,
			Week:       g.Week,
			HomeTeamID: g.HomeTeamID,
			AwayTeamID: g.AwayTeamID,
			KickoffAt:  g.KickoffAt,
			Status:     g.Status,
			HomeScore:  g.HomeScore,
			AwayScore:  g.AwayScore,
		})
	}
	return out
}

type standingRowResponse struct {
	Rank           int     `json:"rank"`
	ProfileID      string  `json:"profileId"`
	DisplayName    string  `json:"displayName"`
	Points         float64 `json:"points"`
	BackFromFirst  float64 `json:"backFromFirst"`
	BackToPlayoffs float64 `json:"backToPlayoffs"`
}

func toStandingRowResponses(rows []scoring.StandingRow) []standingRowResponse {
	out := make([]standingRowResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, standingRowResponse{
			Rank:           row.Rank,
			ProfileID:      row.ProfileID,
			DisplayName:    row.DisplayName,
			Points:         row.Points,
			BackFromFirst:  row.BackFromFirst,
			BackToPlayoffs: row.BackToPlayoffs,
		})
	}
	return out
}

type leaderboardEntryResponse struct {
	Rank          int     `json:"rank"`
	ProfileID     string  `json:"profileId"`
	DisplayName   string  `json:"displayName"`
	Points        float64 `json:"points"`
	AvgPoints     float64 `json:"avgPoints"`
	Accuracy      float64 `json:"accuracy"`
	LongestStreak int     `json:"longestStreak"`
}

type leaderboardsResponse struct {
	ByAvgPoints     []leaderboardEntryResponse `json:"byAvgPoints"`
	ByAccuracy      []leaderboardEntryResponse `json:"byAccuracy"`
	ByLongestStreak []leaderboardEntryResponse `json:"byLongestStreak"`
}

func toLeaderboardEntryResponses(entries []scoring.LeaderboardEntry) []leaderboardEntryResponse {
	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			Rank:          e.Rank,
			ProfileID:     e.ProfileID,
			DisplayName:   e.DisplayName,
			Points:        e.Points,
			AvgPoints:     e.AvgPoints,
			Accuracy:      e.Accuracy,
			LongestStreak: e.LongestStreak,
		})
	}
	return out
}

func toLeaderboardsResponse(boards scoring.Leaderboards) leaderboardsResponse {
	return leaderboardsResponse{
		ByAvgPoints:     toLeaderboardEntryResponses(boards.ByAvgPoints),
		ByAccuracy:      toLeaderboardEntryResponses(boards.ByAccuracy),
		ByLongestStreak: toLeaderboardEntryResponses(boards.ByLongestStreak),
	}
}
