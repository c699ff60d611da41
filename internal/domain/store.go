package domain

// ActorReader is the query side of the entity store the core consumes.
// Implementations return copies; mutation goes through ActorWriter.
type ActorReader interface {
	// Actors returns a snapshot of all actors.
	Actors() []Actor
	// ActorsByRole returns a snapshot of actors with the given role tag.
	ActorsByRole(Role) []Actor
	// Get returns the actor with the given id.
	Get(ActorID) (Actor, bool)
	// Player returns the single player actor. It is a "single expected
	// match" query: zero or multiple players is an error.
	Player() (Actor, error)
}

// ActorWriter is the mutation side of the entity store.
type ActorWriter interface {
	SetPosition(ActorID, Position) error
	SetFacing(ActorID, Direction) error
	// Damage reduces health by the given amount (floored at zero) and
	// returns the remaining health.
	Damage(ActorID, int) (int, error)
	// AddCharges adjusts the actor's charge counter by delta, clamped at
	// zero, and returns the new value.
	AddCharges(ActorID, int) (int, error)
}

// ActorStore is the full read/write surface.
type ActorStore interface {
	ActorReader
	ActorWriter
}
