package game

import "context"

// Repository describes game persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByWeek(ctx context.Context, season, week int) ([]Game, error)
	ListFinalByWeek(ctx context.Context, season, week int) ([]Game, error)
	UpsertResults(ctx context.Context, games []Game) error
}
