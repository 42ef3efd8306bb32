package ecs

import "github.com/l1jgo/platformer/internal/geom"

// tracer records every hook invocation into a shared log.
type tracer struct {
	Base
	tag  string
	log  *[]string
	onUp func()
}

func newTracer(tag string, log *[]string) *tracer { return &tracer{tag: tag, log: log} }

func (p *tracer) record(hook string) {
	if p.log != nil {
		*p.log = append(*p.log, p.tag+":"+hook)
	}
}

func (p *tracer) OnAdd()                    { p.record("add") }
func (p *tracer) Spawn()                    { p.record("spawn") }
func (p *tracer) Start()                    { p.record("start") }
func (p *tracer) UpdatePostFrame(_ float64) { p.record("post") }
func (p *tracer) Update(_ float64) {
	p.record("update")
	if p.onUp != nil {
		p.onUp()
	}
}

// box is a collider with fixed world rectangles that records collision edges.
type box struct {
	Base
	rects  []geom.Rect
	starts []startCall
	ends   []*Entity
}

type startCall struct {
	other  *Entity
	shapes []geom.Rect
}

func newBox(rects ...geom.Rect) *box { return &box{rects: rects} }

func (b *box) CollisionShapes(_ *Entity) []geom.Rect { return b.rects }

func (b *box) StartCollision(other *Entity, shapes []geom.Rect) {
	b.starts = append(b.starts, startCall{other: other, shapes: shapes})
}

func (b *box) EndCollision(other *Entity) { b.ends = append(b.ends, other) }

// marker has no capabilities at all.
type marker struct{ Base }

// touching reports whether a and b are currently a touching collider pair.
func touching(s *Scene, a, b *Entity) bool {
	x, y := a.id, b.id
	if x > y {
		x, y = y, x
	}
	_, ok := s.touching[pair{a: x, b: y}]
	return ok
}
