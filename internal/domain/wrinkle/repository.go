package wrinkle

import "context"

// Repository describes wrinkle persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, w Wrinkle) error
	Update(ctx context.Context, w Wrinkle) error
	GetByID(ctx context.Context, wrinkleID string) (Wrinkle, bool, error)
	ListByWeek(ctx context.Context, leagueID string, season, week int) ([]Wrinkle, error)

	UpsertPick(ctx context.Context, p Pick) error
	ListPicks(ctx context.Context, wrinkleID, profileID string) ([]Pick, error)
	ListPicksBySeason(ctx context.Context, leagueID, profileID string, season int) ([]Pick, error)
	ListLeaguePicksByWeek(ctx context.Context, leagueID string, season, week int) ([]Pick, error)
	ListLeagueSeasonPicks(ctx context.Context, leagueID string, season int) ([]Pick, error)
}
