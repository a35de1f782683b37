// Package physics answers "do these two bodies overlap this frame?".
//
// A Detector is fed every collidable body each frame with Track, advanced with
// Step, and then queried pairwise with Overlap.
package physics

// Handle identifies a body across frames.
type Handle uint32

// Kind classifies a body. Only ship/meteor and bullet/meteor pairs are ever
// reported as overlapping.
type Kind uint8

const (
	KindNone Kind = iota
	KindShip
	KindMeteor
	KindBullet
)

func (k Kind) String() string {
	switch k {
	case KindShip:
		return "ship"
	case KindMeteor:
		return "meteor"
	case KindBullet:
		return "bullet"
	default:
		return "none"
	}
}

// Body is a circle at a position.
type Body struct {
	Handle Handle
	Kind   Kind
	X, Y   float64
	Radius float64
}

// Tristate is the answer to an overlap query.
type Tristate uint8

const (
	// Unknown means at least one body is untracked or has not been stepped yet.
	Unknown Tristate = iota
	False
	True
)

func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unknown"
	}
}

// Detector is a narrow-phase collision oracle.
type Detector interface {
	// Track records b's position for the coming Step.
	Track(b Body)
	// Step resolves the bodies tracked since the previous Step. Bodies that
	// were not tracked are forgotten.
	Step(dt float64)
	// Overlap reports whether a and b overlapped at the last Step.
	Overlap(a, b Handle) Tristate
}

// reportable reports whether a pair of kinds is one the game reacts to.
func reportable(a, b Kind) bool {
	if a > b {
		a, b = b, a
	}
	return (a == KindShip && b == KindMeteor) || (a == KindMeteor && b == KindBullet)
}

func pairKey(a, b Handle) uint64 {
	lo, hi := min(a, b), max(a, b)
	return uint64(lo)<<32 | uint64(hi)
}
