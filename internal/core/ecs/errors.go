package ecs

import "errors"

var (
	// ErrAlreadyInScene is returned when an entity that already has an id, a
	// scene, or a place in the spawn queue is queued again.
	ErrAlreadyInScene = errors.New("entity already in a scene")
	// ErrNotFound is returned when removing an entity that is neither queued
	// nor active in the scene.
	ErrNotFound = errors.New("entity not found in scene")
)
