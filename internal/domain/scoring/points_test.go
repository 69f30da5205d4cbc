package scoring

import (
	"testing"

	"github.com/gridironpool/survivor-league/internal/domain/game"
)

func finalGame(home, away string, homeScore, awayScore int) game.Game {
	return game.Game{
		ID:         "gm-1",
		HomeTeamID: home,
		AwayTeamID: away,
		Status:     game.StatusFinal,
		HomeScore:  &homeScore,
		AwayScore:  &awayScore,
	}
}

func TestPointsForPick(t *testing.T) {
	tests := []struct {
		name        string
		teamID      string
		game        game.Game
		wantPoints  float64
		wantDecided bool
	}{
		{
			name:        "win awards own score",
			teamID:      "KC",
			game:        finalGame("KC", "LV", 24, 17),
			wantPoints:  24,
			wantDecided: true,
		},
		{
			name:        "loss awards nothing",
			teamID:      "LV",
			game:        finalGame("KC", "LV", 24, 17),
			wantPoints:  0,
			wantDecided: true,
		},
		{
			name:        "tie awards half own score",
			teamID:      "KC",
			game:        finalGame("KC", "LV", 21, 21),
			wantPoints:  10.5,
			wantDecided: true,
		},
		{
			name:        "away win awards away score",
			teamID:      "LV",
			game:        finalGame("KC", "LV", 17, 24),
			wantPoints:  24,
			wantDecided: true,
		},
		{
			name:        "not final is undecided",
			teamID:      "KC",
			game:        game.Game{HomeTeamID: "KC", AwayTeamID: "LV", Status: game.StatusLive},
			wantPoints:  0,
			wantDecided: false,
		},
		{
			name:        "final with missing scores is decided zero",
			teamID:      "KC",
			game:        game.Game{HomeTeamID: "KC", AwayTeamID: "LV", Status: game.StatusFinal},
			wantPoints:  0,
			wantDecided: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			points, decided := PointsForPick(tc.teamID, tc.game)
			if points != tc.wantPoints || decided != tc.wantDecided {
				t.Fatalf("expected (%v, %v), got (%v, %v)", tc.wantPoints, tc.wantDecided, points, decided)
			}
		})
	}
}

func TestIsCorrect(t *testing.T) {
	if !IsCorrect("KC", finalGame("KC", "LV", 24, 17)) {
		t.Fatalf("outright win should be correct")
	}
	if IsCorrect("KC", finalGame("KC", "LV", 21, 21)) {
		t.Fatalf("tie must not count as correct")
	}
	if IsCorrect("LV", finalGame("KC", "LV", 24, 17)) {
		t.Fatalf("loss must not count as correct")
	}
}
