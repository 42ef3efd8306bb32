package event

// Scene lifecycle events. IDs are the scene-assigned entity ids at the time
// the event was emitted; they stay meaningful after the entity leaves.

type EntityAdmitted struct {
	EntityID int64
	Name     string
}

type EntityRemoved struct {
	EntityID int64
	Name     string
}

// CollisionStarted is emitted once when two colliders begin to overlap.
// A is always the entity admitted first.
type CollisionStarted struct {
	A, B int64
}

// CollisionEnded is emitted once when a touching pair separates or one side
// leaves the scene.
type CollisionEnded struct {
	A, B int64
}

// Game events.

type CharacterDied struct {
	EntityID int64
	Name     string
}

type CharacterDamaged struct {
	EntityID int64
	Amount   int
	Health   int
}
