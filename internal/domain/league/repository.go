package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, l League, owner Membership) error
	GetByID(ctx context.Context, leagueID string) (League, bool, error)
	GetByInviteCode(ctx context.Context, inviteCode string) (League, bool, error)
	ListByProfile(ctx context.Context, profileID string) ([]League, error)
	ListAll(ctx context.Context) ([]League, error)

	GetMembership(ctx context.Context, leagueID, profileID string) (Membership, bool, error)
	ListMemberships(ctx context.Context, leagueID string) ([]Membership, error)
	UpsertMembership(ctx context.Context, m Membership) error
	DeleteMembership(ctx context.Context, leagueID, profileID string) error
}
