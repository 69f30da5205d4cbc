package scoring

import "github.com/gridironpool/survivor-league/internal/domain/game"

// PointsForPick converts one game result into points for the picked team.
// decided is false until the game is FINAL. Scoring is points-for: a win
// awards the winner's own score, a loss awards nothing, a tie awards half the
// picked team's score. A FINAL game with missing score data counts as decided
// with zero points.
func PointsForPick(teamID string, g game.Game) (points float64, decided bool) {
	if !g.IsFinal() {
		return 0, false
	}
	if g.HomeScore == nil || g.AwayScore == nil {
		return 0, true
	}

	var teamScore, oppScore int
	switch teamID {
	case g.HomeTeamID:
		teamScore, oppScore = *g.HomeScore, *g.AwayScore
	case g.AwayTeamID:
		teamScore, oppScore = *g.AwayScore, *g.HomeScore
	default:
		return 0, true
	}

	switch {
	case teamScore > oppScore:
		return float64(teamScore), true
	case teamScore < oppScore:
		return 0, true
	default:
		return float64(teamScore) / 2, true
	}
}

// IsCorrect reports whether a decided pick was an outright win.
func IsCorrect(teamID string, g game.Game) bool {
	if !g.IsFinal() || g.HomeScore == nil || g.AwayScore == nil {
		return false
	}
	switch teamID {
	case g.HomeTeamID:
		return *g.HomeScore > *g.AwayScore
	case g.AwayTeamID:
		return *g.AwayScore > *g.HomeScore
	default:
		return false
	}
}
