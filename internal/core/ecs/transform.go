package ecs

import "github.com/l1jgo/platformer/internal/geom"

// Transform places an entity in the world. Position is a value; assign a new
// vector instead of sharing one between entities.
type Transform struct {
	Position geom.Vector2
	Rotation float64 // degrees
	Scale    float64
}

func DefaultTransform() Transform {
	return Transform{Scale: 1}
}
