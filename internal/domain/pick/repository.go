package pick

import "context"

// SubmitCheck re-validates quota and team reuse against the rows visible
// inside the repository's transaction, so concurrent submissions cannot both
// pass. Implementations call it after reading the member's current picks and
// abort the write when it errors.
type SubmitCheck func(weekPicks, seasonPicks []Pick) (Pick, error)

// Repository describes pick persistence needs from use cases.
type Repository interface {
	// Submit runs check inside a transaction and persists the pick it
	// returns. Replacement of an existing same-game pick reuses its row.
	Submit(ctx context.Context, leagueID, profileID string, season, week int, check SubmitCheck) (Pick, error)
	GetByID(ctx context.Context, pickID string) (Pick, bool, error)
	ListByWeek(ctx context.Context, leagueID, profileID string, season, week int) ([]Pick, error)
	ListBySeason(ctx context.Context, leagueID, profileID string, season int) ([]Pick, error)
	ListLeagueSeason(ctx context.Context, leagueID string, season int) ([]Pick, error)
	Delete(ctx context.Context, pickID string) error
}
