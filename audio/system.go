package audio

import (
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
)

// CueSystem forwards every cue raised during a frame to a Player.
// Register it after the systems that send cues.
type CueSystem struct {
	Cues ecs.Events[game.Cue]

	player Player
}

func NewCueSystem(player Player) *CueSystem {
	return &CueSystem{player: player}
}

func (s *CueSystem) Execute(frame *ecs.UpdateFrame) {
	for cue := range s.Cues.Iter() {
		s.player.Play(cue)
	}
}
