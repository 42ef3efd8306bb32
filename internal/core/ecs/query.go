package ecs

// GetComponent returns the first component of e assignable to T, in attach
// order. T is usually a capability interface or a concrete pointer type.
func GetComponent[T any](e *Entity) (T, bool) {
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// GetComponents returns every component of e assignable to T.
func GetComponents[T any](e *Entity) []T {
	var out []T
	for _, c := range e.components {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func HasComponent[T any](e *Entity) bool {
	_, ok := GetComponent[T](e)
	return ok
}

// FirstComponent returns the first T found scanning active entities in
// admission order.
func FirstComponent[T any](s *Scene) (T, bool) {
	for _, e := range s.Entities() {
		if v, ok := GetComponent[T](e); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// AllComponents returns the first T of every active entity that has one, in
// admission order.
func AllComponents[T any](s *Scene) []T {
	var out []T
	for _, e := range s.Entities() {
		if v, ok := GetComponent[T](e); ok {
			out = append(out, v)
		}
	}
	return out
}
