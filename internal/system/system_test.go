package system

import (
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/l1jgo/platformer/internal/component"
	"github.com/l1jgo/platformer/internal/core/ecs"
	"github.com/l1jgo/platformer/internal/core/event"
	coresys "github.com/l1jgo/platformer/internal/core/system"
	"github.com/l1jgo/platformer/internal/input"
	"github.com/l1jgo/platformer/internal/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeRenderer struct {
	frames []render.Frame
	err    error
}

func (r *fakeRenderer) Render(f render.Frame) error {
	r.frames = append(r.frames, f)
	return r.err
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time                { return c.t }
func (c *clock) advance(d time.Duration)       { c.t = c.t.Add(d) }
func newClock() *clock                         { return &clock{t: time.Unix(1000, 0)} }
func keyEvent(r rune) *tcell.EventKey          { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }
func specialEvent(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func TestInputSystemPressHoldRelease(t *testing.T) {
	events := make(chan tcell.Event, 8)
	keys := input.New()
	keys.Bind("jump", "space")
	clk := newClock()

	s := NewInputSystem(events, keys, 100*time.Millisecond, nil, zap.NewNop())
	s.now = clk.now

	events <- keyEvent(' ')
	s.Update(0)
	st, err := keys.Status("jump")
	require.NoError(t, err)
	assert.Equal(t, input.PressedThisFrame, st)

	// A repeat within the hold window keeps the key down.
	clk.advance(60 * time.Millisecond)
	events <- keyEvent(' ')
	s.Update(0)
	st, _ = keys.Status("jump")
	assert.Equal(t, input.Held, st)

	clk.advance(60 * time.Millisecond)
	s.Update(0)
	st, _ = keys.Status("jump")
	assert.Equal(t, input.Held, st)

	clk.advance(60 * time.Millisecond)
	s.Update(0)
	st, _ = keys.Status("jump")
	assert.Equal(t, input.ReleasedThisFrame, st)

	s.Update(0)
	st, _ = keys.Status("jump")
	assert.Equal(t, input.Idle, st)
}

func TestInputSystemSpecialKeysAndQuit(t *testing.T) {
	events := make(chan tcell.Event, 8)
	keys := input.New()
	quits, resizes := 0, 0

	s := NewInputSystem(events, keys, time.Second, func() { quits++ }, zap.NewNop())
	s.OnResize(func() { resizes++ })

	events <- specialEvent(tcell.KeyLeft)
	events <- tcell.NewEventResize(80, 24)
	events <- specialEvent(tcell.KeyEscape)
	s.Update(0)

	assert.Equal(t, input.PressedThisFrame, keys.KeyStatus("left"))
	assert.Equal(t, input.Idle, keys.KeyStatus("esc"), "quit keys are not recorded")
	assert.Equal(t, 1, quits)
	assert.Equal(t, 1, resizes)
}

func TestInputSystemClosedChannel(t *testing.T) {
	events := make(chan tcell.Event)
	close(events)
	s := NewInputSystem(events, input.New(), time.Second, nil, zap.NewNop())
	assert.NotPanics(t, func() { s.Update(0) })
}

func TestInputSystemNilLogger(t *testing.T) {
	events := make(chan tcell.Event, 1)
	quits := 0
	s := NewInputSystem(events, input.New(), time.Second, func() { quits++ }, nil)

	events <- specialEvent(tcell.KeyEscape)
	assert.NotPanics(t, func() { s.Update(0) })
	assert.Equal(t, 1, quits)
}

// recorder logs the pass it was called in.
type recorder struct {
	ecs.Base
	log *[]string
}

func (r *recorder) Update(float64)          { *r.log = append(*r.log, "update") }
func (r *recorder) UpdatePostFrame(float64) { *r.log = append(*r.log, "post") }
func (r *recorder) ShouldRender() bool      { return true }

type renderSpy struct {
	log *[]string
}

func (r *renderSpy) Render(render.Frame) error {
	*r.log = append(*r.log, "render")
	return nil
}

func TestFramePhasesRunInOrder(t *testing.T) {
	bus := event.NewBus()
	scene := ecs.NewScene(zap.NewNop(), bus)
	var calls []string
	require.NoError(t, scene.QueueAdd(ecs.NewEntity("r", &recorder{log: &calls})))

	var admitted []event.EntityAdmitted
	event.Subscribe(bus, func(ev event.EntityAdmitted) {
		admitted = append(admitted, ev)
		calls = append(calls, "event")
	})

	runner := coresys.NewRunner()
	// Registered out of order on purpose; the runner buckets by phase.
	runner.Register(NewEventSystem(bus))
	runner.Register(NewPostFrameSystem(scene))
	runner.Register(NewRenderSystem(scene, &renderSpy{log: &calls}, nil, zap.NewNop()))
	runner.Register(NewPreFrameSystem(scene))
	runner.Register(NewSetupSystem(scene, zap.NewNop()))

	runner.Tick(40 * time.Millisecond)

	assert.Equal(t, []string{"update", "render", "post", "event"}, calls)
	require.Len(t, admitted, 1)
	assert.Equal(t, "r", admitted[0].Name)
	assert.InDelta(t, 0.04, scene.DT(), 1e-9)
	assert.InDelta(t, 0.04, scene.Time(), 1e-9)
}

func TestSetupSystemLogsAdmissionFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	scene := ecs.NewScene(zap.NewNop(), nil)
	other := ecs.NewScene(zap.NewNop(), nil)

	e := ecs.NewEntity("shared")
	require.NoError(t, other.QueueAdd(e))
	require.NoError(t, scene.QueueAdd(e))
	require.NoError(t, other.Setup(0))

	s := NewSetupSystem(scene, zap.New(core))
	s.Update(10 * time.Millisecond)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "entity admission failed", logs.All()[0].Message)
	assert.Zero(t, scene.Len())
	assert.InDelta(t, 0.01, scene.Time(), 1e-9, "the clock advances anyway")
}

func TestRenderSystemStatusAndFailures(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	scene := ecs.NewScene(zap.NewNop(), nil)
	require.NoError(t, scene.QueueAdd(ecs.NewEntity("hero", component.NewSpriteRenderer("hero.png", '@'))))
	require.NoError(t, scene.Setup(0))

	r := &fakeRenderer{err: errors.New("screen gone")}
	s := NewRenderSystem(scene, r, func(s *ecs.Scene) string { return "entities" }, zap.New(core))

	s.Update(0)
	s.Update(0)
	require.Len(t, r.frames, 2)
	assert.Equal(t, "entities", r.frames[0].Status)
	require.Len(t, r.frames[0].Sprites, 1)
	assert.Equal(t, 1, logs.Len(), "a failure streak is logged once")

	r.err = nil
	s.Update(0)
	r.err = errors.New("again")
	s.Update(0)
	assert.Equal(t, 2, logs.Len())
}
