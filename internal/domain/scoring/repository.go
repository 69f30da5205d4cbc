package scoring

import "context"

// Repository describes scoring persistence needs from use cases.
type Repository interface {
	UpsertWeeklyPoints(ctx context.Context, rows []WeeklyPoints) error
	ListWeeklyPoints(ctx context.Context, leagueID string, season, week int) ([]WeeklyPoints, error)
	ListSeasonWeeklyPoints(ctx context.Context, leagueID string, season int) ([]WeeklyPoints, error)
}
