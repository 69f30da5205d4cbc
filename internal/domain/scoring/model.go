package scoring

import "time"

// WeeklyPoints is the persisted per-profile aggregate for one week.
type WeeklyPoints struct {
	LeagueID     string
	Season       int
	Week         int
	ProfileID    string
	Points       float64
	DecidedPicks int
	CorrectPicks int
	CalculatedAt time.Time
}

// SeasonPoints is derived by summing weekly rows, never maintained
// incrementally, so score corrections stay consistent.
type SeasonPoints struct {
	LeagueID     string
	Season       int
	ProfileID    string
	Points       float64
	DecidedPicks int
	CorrectPicks int
}

// PickResult is the outcome of one decided pick, the unit the leaderboard
// metrics are computed from.
type PickResult struct {
	ProfileID string
	Week      int
	Slot      int
	Points    float64
	Decided   bool
	// Correct means an outright win. A tie awards partial points but is not
	// correct.
	Correct bool
}

// SeasonLine is one profile's season aggregate used for leaderboards.
type SeasonLine struct {
	ProfileID     string
	DisplayName   string
	Points        float64
	DecidedPicks  int
	CorrectPicks  int
	LongestStreak int
}

// LeaderboardEntry is one ranked leaderboard row.
type LeaderboardEntry struct {
	Rank          int
	ProfileID     string
	DisplayName   string
	Points        float64
	AvgPoints     float64
	Accuracy      float64
	LongestStreak int
}

// Leaderboards bundles the three orderings served to clients.
type Leaderboards struct {
	ByAvgPoints     []LeaderboardEntry
	ByAccuracy      []LeaderboardEntry
	ByLongestStreak []LeaderboardEntry
}

// StandingRow is one row of the points-ordered league table.
type StandingRow struct {
	Rank           int
	ProfileID      string
	DisplayName    string
	Points         float64
	BackFromFirst  float64
	BackToPlayoffs float64
}
