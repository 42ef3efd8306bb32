// Package level builds scenes from loaded maps: it owns the registry of
// component factories addressed by object directives.
package level

import (
	"errors"
	"fmt"
	"slices"

	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/data"
	"github.com/l1jgo/platformer/internal/game"
	"github.com/l1jgo/platformer/internal/input"
	"github.com/l1jgo/platformer/internal/tilemap"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
)

var ErrUnknownComponent = errors.New("unknown component")

// Deps are the shared services component factories may wire in.
type Deps struct {
	Log     *zap.Logger
	Input   *input.State
	Scripts game.Behavior

	Gravity     float64
	Epsilon     float64
	GroundProbe float64
}

// Factory builds one component for a map object from directive arguments.
type Factory func(d Deps, obj tilemap.Object, args data.Args) (ecs.Component, error)

// Registry maps case-folded component identifiers to factories.
type Registry struct {
	fold      cases.Caser
	factories map[string]Factory
	log       *zap.Logger
}

func NewRegistry(log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		fold:      cases.Fold(),
		factories: make(map[string]Factory),
		log:       log,
	}
}

// Register maps name to f, replacing any previous factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[r.fold.String(name)] = f
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.factories[r.fold.String(name)]
	return ok
}

// Names returns the registered identifiers, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Build runs the factory registered for name.
func (r *Registry) Build(name string, d Deps, obj tilemap.Object, args data.Args) (ecs.Component, error) {
	f, ok := r.factories[r.fold.String(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownComponent, name)
	}
	return r.safeCall(name, f, d, obj, args)
}

// safeCall executes a factory with panic recovery so one bad object cannot
// abort the whole level.
func (r *Registry) safeCall(name string, f Factory, d Deps, obj tilemap.Object, args data.Args) (c ecs.Component, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("component factory panic recovered",
				zap.String("component", name),
				zap.String("object", obj.Name),
				zap.Any("panic", rec),
			)
			c, err = nil, fmt.Errorf("component %s panic: %v", name, rec)
		}
	}()
	c, err = f(d, obj, args)
	if err == nil && c == nil {
		err = fmt.Errorf("component %s: factory returned nothing", name)
	}
	return c, err
}
