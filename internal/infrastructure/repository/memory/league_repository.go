package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/gridironpool/survivor-league/internal/domain/league"
)

type membershipKey struct {
	leagueID  string
	profileID string
}

type LeagueRepository struct {
	mu          sync.RWMutex
	items       map[string]league.League
	orders      []string
	memberships map[membershipKey]league.Membership
}

func NewLeagueRepository(leagues []league.League, memberships []league.Membership) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))
	for _, l := range leagues {
		items[l.ID] = l
		orders = append(orders, l.ID)
	}

	members := make(map[membershipKey]league.Membership, len(memberships))
	for _, m := range memberships {
		members[membershipKey{m.LeagueID, m.ProfileID}] = m
	}

	return &LeagueRepository{
		items:       items,
		orders:      orders,
		memberships: members,
	}
}

func (r *LeagueRepository) Create(_ context.Context, l league.League, owner league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[l.ID]; !ok {
		r.orders = append(r.orders, l.ID)
	}
	r.items[l.ID] = l
	r.memberships[membershipKey{owner.LeagueID, owner.ProfileID}] = owner

	return nil
}

func (r *LeagueRepository) GetByID(_ context.Context, leagueID string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	l, ok := r.items[leagueID]
	if !ok {
		return league.League{}, false, nil
	}

	return l, true, nil
}

func (r *LeagueRepository) GetByInviteCode(_ context.Context, inviteCode string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.orders {
		if r.items[id].InviteCode == inviteCode {
			return r.items[id], true, nil
		}
	}

	return league.League{}, false, nil
}

func (r *LeagueRepository) ListByProfile(_ context.Context, profileID string) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0)
	for _, id := range r.orders {
		if _, ok := r.memberships[membershipKey{id, profileID}]; ok {
			out = append(out, r.items[id])
		}
	}

	return out, nil
}

func (r *LeagueRepository) ListAll(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, id := range r.orders {
		out = append(out, r.items[id])
	}

	return out, nil
}

func (r *LeagueRepository) GetMembership(_ context.Context, leagueID, profileID string) (league.Membership, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.memberships[membershipKey{leagueID, profileID}]
	if !ok {
		return league.Membership{}, false, nil
	}

	return m, true, nil
}

func (r *LeagueRepository) ListMemberships(_ context.Context, leagueID string) ([]league.Membership, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.Membership, 0)
	for key, m := range r.memberships {
		if key.leagueID == leagueID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ProfileID < out[j].ProfileID })

	return out, nil
}

func (r *LeagueRepository) UpsertMembership(_ context.Context, m league.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.memberships[membershipKey{m.LeagueID, m.ProfileID}] = m

	return nil
}

func (r *LeagueRepository) DeleteMembership(_ context.Context, leagueID, profileID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.memberships, membershipKey{leagueID, profileID})

	return nil
}
