package game

// StartRequested asks the state machine to start a new game.
type StartRequested struct{}

type SpawnShip struct {
	Position    Position
	Orientation float64
}

type SpawnMeteor struct {
	Position Position
	Movement Movement
	Size     int
}

type SpawnBullet struct {
	Position Position
	Movement Movement
}

// GameOver is sent once when the last life is lost.
type GameOver struct {
	Score uint
	Wave  int
}

// Cue is a sound cue.
type Cue uint8

const (
	CueFire Cue = iota
	CueExplosion
	CueShipLost
	CueGameOver
	CueWave
)

func (c Cue) String() string {
	switch c {
	case CueFire:
		return "fire"
	case CueExplosion:
		return "explosion"
	case CueShipLost:
		return "ship-lost"
	case CueGameOver:
		return "game-over"
	case CueWave:
		return "wave"
	default:
		return "unknown"
	}
}
