package engine

import (
	"fmt"
	"sort"

	"github.com/tehsmeely/rogue-haddock/internal/domain"
)

// Store is the in-memory actor store backing a level. The scheduling model
// is cooperative and single-threaded (systems run to completion one after
// another), so there is no locking here.
type Store struct {
	actors map[domain.ActorID]*domain.Actor
	ids    *domain.IDSource
}

func NewStore(ids *domain.IDSource) *Store {
	return &Store{
		actors: make(map[domain.ActorID]*domain.Actor),
		ids:    ids,
	}
}

// Spawn registers the actor under a fresh ID and returns it.
func (s *Store) Spawn(a domain.Actor) domain.ActorID {
	a.ID = s.ids.Next()
	s.actors[a.ID] = &a
	return a.ID
}

// Remove deletes the actor. Removing an unknown id is a no-op.
func (s *Store) Remove(id domain.ActorID) {
	delete(s.actors, id)
}

// Actors returns a snapshot of all actors, sorted by ID (creation order).
func (s *Store) Actors() []domain.Actor {
	out := make([]domain.Actor, 0, len(s.actors))
	for _, a := range s.actors {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActorsByRole returns a snapshot of actors with the given role, sorted by ID.
func (s *Store) ActorsByRole(role domain.Role) []domain.Actor {
	var out []domain.Actor
	for _, a := range s.actors {
		if a.Role == role {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// ActorsAt returns the actors occupying the given tile.
func (s *Store) ActorsAt(p domain.Position) []domain.Actor {
	var out []domain.Actor
	for _, a := range s.actors {
		if a.Pos == p {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get returns a copy of the actor with the given id.
func (s *Store) Get(id domain.ActorID) (domain.Actor, bool) {
	a, ok := s.actors[id]
	if !ok {
		return domain.Actor{}, false
	}
	return *a, true
}

// Player is the single-expected-match query for the player actor; zero or
// multiple players is a loud error rather than a silent pick.
func (s *Store) Player() (domain.Actor, error) {
	players := s.ActorsByRole(domain.RolePlayer)
	if len(players) != 1 {
		return domain.Actor{}, fmt.Errorf("expected exactly one player, found %d", len(players))
	}
	return players[0], nil
}

func (s *Store) SetPosition(id domain.ActorID, p domain.Position) error {
	a, ok := s.actors[id]
	if !ok {
		return fmt.Errorf("no actor with id %s", id)
	}
	a.Pos = p
	return nil
}

func (s *Store) SetFacing(id domain.ActorID, d domain.Direction) error {
	a, ok := s.actors[id]
	if !ok {
		return fmt.Errorf("no actor with id %s", id)
	}
	a.Facing = d
	return nil
}

func (s *Store) Damage(id domain.ActorID, amount int) (int, error) {
	a, ok := s.actors[id]
	if !ok {
		return 0, fmt.Errorf("no actor with id %s", id)
	}
	if amount < 0 {
		amount = 0
	}
	a.Health -= amount
	if a.Health < 0 {
		a.Health = 0
	}
	return a.Health, nil
}

func (s *Store) AddCharges(id domain.ActorID, delta int) (int, error) {
	a, ok := s.actors[id]
	if !ok {
		return 0, fmt.Errorf("no actor with id %s", id)
	}
	a.Charges += delta
	if a.Charges < 0 {
		a.Charges = 0
	}
	return a.Charges, nil
}

var _ domain.ActorStore = (*Store)(nil)
