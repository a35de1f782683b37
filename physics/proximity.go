package physics

import (
	"math"

	"github.com/kamstrup/intmap"
)

// Proximity treats two bodies as overlapping when both axis distances are
// below a fixed threshold. Radii are ignored.
type Proximity struct {
	threshold float64
	pending   *intmap.Map[Handle, Body]
	current   *intmap.Map[Handle, Body]
}

// NewProximity creates a Proximity detector.
func NewProximity(threshold float64) *Proximity {
	return &Proximity{
		threshold: threshold,
		pending:   intmap.New[Handle, Body](64),
		current:   intmap.New[Handle, Body](64),
	}
}

func (p *Proximity) Track(b Body) {
	p.pending.Put(b.Handle, b)
}

func (p *Proximity) Step(float64) {
	p.current, p.pending = p.pending, p.current
	p.pending.Clear()
}

func (p *Proximity) Overlap(a, b Handle) Tristate {
	ba, okA := p.current.Get(a)
	bb, okB := p.current.Get(b)
	if !okA || !okB {
		return Unknown
	}
	if a == b || !reportable(ba.Kind, bb.Kind) {
		return False
	}
	if math.Abs(ba.X-bb.X) < p.threshold && math.Abs(ba.Y-bb.Y) < p.threshold {
		return True
	}
	return False
}
