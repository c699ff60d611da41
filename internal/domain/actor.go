package domain

import (
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
)

// ActorID identifies an actor. IDs are ULIDs, so sorting them lexicographically
// sorts actors by creation order; batch operations rely on this for a
// deterministic application order.
type ActorID string

// IDSource hands out monotonically increasing ActorIDs. The entropy source is
// the injected RNG so that a seeded game produces a reproducible ID sequence.
type IDSource struct {
	entropy *ulid.MonotonicEntropy
}

func NewIDSource(rng *rand.Rand) *IDSource {
	return &IDSource{entropy: ulid.Monotonic(rng, 0)}
}

// Next returns a fresh ActorID. Panics only if the entropy source is
// exhausted, which cannot happen with a monotonic reader.
func (s *IDSource) Next() ActorID {
	return ActorID(ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String())
}

// Role tags what an actor is to the combat rules.
type Role uint8

const (
	RolePlayer Role = iota
	RoleEnemy
	RoleCollectible
)

func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleEnemy:
		return "enemy"
	case RoleCollectible:
		return "collectible"
	}
	return "unknown"
}

// EnemyKind selects an enemy's movement profile and special behaviour.
type EnemyKind uint8

const (
	KindNone EnemyKind = iota
	KindShark
	KindCrab
	KindJellyfish
)

func (k EnemyKind) String() string {
	switch k {
	case KindShark:
		return "shark"
	case KindCrab:
		return "crab"
	case KindJellyfish:
		return "jellyfish"
	}
	return "none"
}

// MoveDistance returns the maximum tiles the kind may cover in one move in
// the given direction. Crabs scuttle: two tiles sideways, one vertically.
// Jellyfish drift in place.
func (k EnemyKind) MoveDistance(d Direction) int {
	switch k {
	case KindShark:
		return 1
	case KindCrab:
		if d.Vertical() {
			return 1
		}
		return 2
	case KindJellyfish:
		return 0
	}
	return 0
}

// MoveWeights returns the per-direction weights (ordered as AllDirections)
// used when the kind picks a random move direction.
func (k EnemyKind) MoveWeights() [4]float64 {
	switch k {
	case KindCrab:
		// up, right, down, left; crabs strongly prefer sideways movement
		return [4]float64{0.1, 1.0, 0.1, 1.0}
	default:
		return [4]float64{1.0, 1.0, 1.0, 1.0}
	}
}

// Actor is the explicit read model for "an entity with a position and a role
// tag". The simulation core iterates and point-looks-up actors; it never
// needs a generic component store.
type Actor struct {
	ID     ActorID
	Pos    Position
	Facing Direction
	Role   Role
	Kind   EnemyKind
	Health int
	// Charges counts stored power: the player's ranged shots, a jellyfish's
	// lightning charge-up.
	Charges int
}

// Alive reports whether the actor still has health.
func (a Actor) Alive() bool {
	return a.Health > 0
}
