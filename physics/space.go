package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/kamstrup/intmap"
)

type collider struct {
	body    *cp.Body
	shape   *cp.Shape
	kind    Kind
	tracked bool
	stepped bool
}

// Space delegates overlap tests to a Chipmunk2D space. Every body becomes a
// sensor circle on a dynamic body in a zero-gravity space; positions are set
// from Track and velocities are kept at zero so Step never moves anything.
// Begin and separate callbacks maintain the set of touching pairs.
type Space struct {
	space     *cp.Space
	colliders *intmap.Map[Handle, *collider]
	contacts  *intmap.Map[uint64, bool]
}

// NewSpace creates an empty Space.
func NewSpace() *Space {
	s := &Space{
		space:     cp.NewSpace(),
		colliders: intmap.New[Handle, *collider](64),
		contacts:  intmap.New[uint64, bool](64),
	}
	s.space.SetGravity(cp.Vector{})

	for _, pair := range [][2]Kind{{KindShip, KindMeteor}, {KindBullet, KindMeteor}} {
		handler := s.space.NewCollisionHandler(cp.CollisionType(pair[0]), cp.CollisionType(pair[1]))
		handler.BeginFunc = s.begin
		handler.SeparateFunc = s.separate
	}
	return s
}

func handleOf(shape *cp.Shape) (Handle, bool) {
	h, ok := shape.UserData.(Handle)
	return h, ok
}

func (s *Space) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	a, b := arb.Shapes()
	ha, okA := handleOf(a)
	hb, okB := handleOf(b)
	if okA && okB {
		s.contacts.Put(pairKey(ha, hb), true)
	}
	return true
}

func (s *Space) separate(arb *cp.Arbiter, _ *cp.Space, _ interface{}) {
	a, b := arb.Shapes()
	ha, okA := handleOf(a)
	hb, okB := handleOf(b)
	if okA && okB {
		s.contacts.Del(pairKey(ha, hb))
	}
}

func (s *Space) Track(b Body) {
	c, ok := s.colliders.Get(b.Handle)
	if !ok {
		body := s.space.AddBody(cp.NewBody(1, cp.MomentForCircle(1, 0, b.Radius, cp.Vector{})))
		shape := s.space.AddShape(cp.NewCircle(body, b.Radius, cp.Vector{}))
		shape.SetSensor(true)
		shape.SetCollisionType(cp.CollisionType(b.Kind))
		shape.UserData = b.Handle

		c = &collider{body: body, shape: shape, kind: b.Kind}
		s.colliders.Put(b.Handle, c)
	}

	c.body.SetPosition(cp.Vector{X: b.X, Y: b.Y})
	c.body.SetVelocity(0, 0)
	c.tracked = true
}

func (s *Space) Step(dt float64) {
	var stale []Handle
	s.colliders.ForEach(func(h Handle, c *collider) bool {
		if !c.tracked {
			stale = append(stale, h)
		}
		return true
	})
	for _, h := range stale {
		s.remove(h)
	}

	if dt <= 0 {
		dt = 1.0 / 60
	}
	s.space.Step(dt)

	s.colliders.ForEach(func(_ Handle, c *collider) bool {
		c.stepped = true
		c.tracked = false
		return true
	})
}

func (s *Space) remove(h Handle) {
	c, ok := s.colliders.Get(h)
	if !ok {
		return
	}
	s.space.RemoveShape(c.shape)
	s.space.RemoveBody(c.body)
	s.colliders.Del(h)

	var gone []uint64
	s.contacts.ForEach(func(key uint64, _ bool) bool {
		if Handle(key>>32) == h || Handle(key&0xFFFFFFFF) == h {
			gone = append(gone, key)
		}
		return true
	})
	for _, key := range gone {
		s.contacts.Del(key)
	}
}

func (s *Space) Overlap(a, b Handle) Tristate {
	ca, okA := s.colliders.Get(a)
	cb, okB := s.colliders.Get(b)
	if !okA || !okB || !ca.stepped || !cb.stepped {
		return Unknown
	}
	if a == b || !reportable(ca.kind, cb.kind) {
		return False
	}
	if touching, _ := s.contacts.Get(pairKey(a, b)); touching {
		return True
	}
	return False
}

// Len returns the number of bodies in the space.
func (s *Space) Len() int {
	return s.colliders.Len()
}
