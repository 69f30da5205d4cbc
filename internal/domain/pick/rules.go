package pick

import (
	"errors"
	"fmt"
	"time"

	"github.com/gridironpool/survivor-league/internal/domain/game"
)

var (
	ErrNotMember       = errors.New("profile is not a league member")
	ErrQuotaExceeded   = errors.New("weekly pick quota exceeded")
	ErrTeamAlreadyUsed = errors.New("team already used this season")
	ErrGameNotFound    = errors.New("no game for team this week")
	ErrLocked          = errors.New("pick is locked")
)

// Rules stores pick validation parameters.
type Rules struct {
	// WeeklyQuota is the number of ordinary picks a member may hold per week.
	WeeklyQuota int
	// WrinkleReuseExempt exempts wrinkle picks from the season team-reuse
	// rule when true.
	WrinkleReuseExempt bool
}

func DefaultRules() Rules {
	return Rules{
		WeeklyQuota:        2,
		WrinkleReuseExempt: true,
	}
}

// CheckQuota rejects a new ordinary pick once the member already holds a full
// week. An admin force submission bypasses the quota.
func CheckQuota(weekPicks []Pick, rules Rules, force bool) error {
	if force {
		return nil
	}
	if len(weekPicks) >= rules.WeeklyQuota {
		return fmt.Errorf("%w: quota=%d used=%d", ErrQuotaExceeded, rules.WeeklyQuota, len(weekPicks))
	}

	return nil
}

// CheckTeamReuse rejects picking a team the member already used this season.
// There is no force bypass; the season reuse rule is absolute.
func CheckTeamReuse(seasonPicks []Pick, teamID string) error {
	for _, p := range seasonPicks {
		if p.TeamID == teamID {
			return fmt.Errorf("%w: team=%s week=%d", ErrTeamAlreadyUsed, teamID, p.Week)
		}
	}

	return nil
}

// ResolveGame finds the week's game involving the picked team.
func ResolveGame(weekGames []game.Game, teamID string) (game.Game, error) {
	for _, g := range weekGames {
		if g.Involves(teamID) {
			return g, nil
		}
	}

	return game.Game{}, fmt.Errorf("%w: team=%s", ErrGameNotFound, teamID)
}

// CheckLock rejects changes at or after kickoff. An admin force submission
// bypasses the lock.
func CheckLock(g game.Game, now time.Time, force bool) error {
	if force {
		return nil
	}
	if g.IsLocked(now) {
		return fmt.Errorf("%w: game=%s kickoff=%s", ErrLocked, g.ID, g.KickoffAt.Format(time.RFC3339))
	}

	return nil
}

// FindSameGame returns the member's existing pick on the given game, if any.
// Resubmitting against the same game replaces that pick instead of consuming
// a new quota slot.
func FindSameGame(weekPicks []Pick, gameID string) (Pick, bool) {
	for _, p := range weekPicks {
		if p.GameID == gameID {
			return p, true
		}
	}

	return Pick{}, false
}

// NextSlot returns the first free 1-based quota slot for the week.
func NextSlot(weekPicks []Pick) int {
	used := make(map[int]struct{}, len(weekPicks))
	for _, p := range weekPicks {
		used[p.Slot] = struct{}{}
	}
	slot := 1
	for {
		if _, taken := used[slot]; !taken {
			return slot
		}
		slot++
	}
}
