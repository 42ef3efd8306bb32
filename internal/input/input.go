// Package input tracks per-key status and maps binding names to keys.
package input

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/text/cases"
)

var ErrBindingNotFound = errors.New("binding not found")

// Key names a physical key, e.g. "a", "space", "left".
type Key string

// KeyStatus is the per-frame state of a key.
type KeyStatus int

const (
	Idle KeyStatus = iota
	ReleasedThisFrame
	PressedThisFrame
	Held
)

func (s KeyStatus) String() string {
	switch s {
	case Idle:
		return "idle"
	case ReleasedThisFrame:
		return "released"
	case PressedThisFrame:
		return "pressed"
	case Held:
		return "held"
	}
	return "unknown"
}

// Pressed reports whether the key is down this frame.
func (s KeyStatus) Pressed() bool { return s == PressedThisFrame || s == Held }

// State holds bindings and key statuses. Binding names are case-folded.
// Not safe for concurrent use; the simulation goroutine owns it.
type State struct {
	fold     cases.Caser
	bindings map[string]Key
	status   map[Key]KeyStatus
	seen     map[Key]time.Time
}

func New() *State {
	return &State{
		fold:     cases.Fold(),
		bindings: make(map[string]Key),
		status:   make(map[Key]KeyStatus),
		seen:     make(map[Key]time.Time),
	}
}

// Bind maps a binding name to a key, replacing any previous mapping.
func (s *State) Bind(name string, k Key) {
	s.bindings[s.fold.String(name)] = k
}

// Binding returns the key bound to name.
func (s *State) Binding(name string) (Key, error) {
	k, ok := s.bindings[s.fold.String(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBindingNotFound, name)
	}
	return k, nil
}

// KeyStatus returns the status of a raw key. Unknown keys are Idle.
func (s *State) KeyStatus(k Key) KeyStatus { return s.status[k] }

// Status returns the status of the key bound to name.
func (s *State) Status(name string) (KeyStatus, error) {
	k, err := s.Binding(name)
	if err != nil {
		return Idle, err
	}
	return s.status[k], nil
}

// IsPressed reports whether the bound key is pressed or held.
func (s *State) IsPressed(name string) (bool, error) {
	st, err := s.Status(name)
	return st.Pressed(), err
}

// IsReleased reports whether the bound key is idle or was released this frame.
func (s *State) IsReleased(name string) (bool, error) {
	st, err := s.Status(name)
	if err != nil {
		return false, err
	}
	return !st.Pressed(), nil
}

// Advance settles the transient statuses of the previous frame. Call it once
// per frame before applying new key events.
func (s *State) Advance() {
	for k, st := range s.status {
		switch st {
		case PressedThisFrame:
			s.status[k] = Held
		case ReleasedThisFrame:
			s.status[k] = Idle
		}
	}
}

// Press marks k as pressed at now. Repeated presses of a held key only
// refresh its timestamp.
func (s *State) Press(k Key, now time.Time) {
	s.seen[k] = now
	if !s.status[k].Pressed() {
		s.status[k] = PressedThisFrame
	}
}

// Release marks k as released.
func (s *State) Release(k Key) {
	delete(s.seen, k)
	if s.status[k].Pressed() {
		s.status[k] = ReleasedThisFrame
	}
}

// ReleaseStale releases keys not pressed again within hold. Terminals report
// key repeats but no key-up, so a key counts as held while repeats arrive.
func (s *State) ReleaseStale(now time.Time, hold time.Duration) {
	for k, t := range s.seen {
		if now.Sub(t) >= hold {
			s.Release(k)
		}
	}
}

// Reset clears all key statuses. Bindings are kept.
func (s *State) Reset() {
	clear(s.status)
	clear(s.seen)
}
