package scores

import (
	"github.com/charmbracelet/log"
	"github.com/plus3/meteors/ecs"
	"github.com/plus3/meteors/game"
)

// Saver persists a finished game.
type Saver interface {
	Save(score uint, wave int) (int64, error)
}

// RecorderSystem saves every GameOver to the score table. A failed save is
// logged and the game carries on.
type RecorderSystem struct {
	Over ecs.Events[game.GameOver]

	saver  Saver
	logger *log.Logger
}

func NewRecorderSystem(saver Saver, logger *log.Logger) *RecorderSystem {
	return &RecorderSystem{saver: saver, logger: logger}
}

func (s *RecorderSystem) Execute(frame *ecs.UpdateFrame) {
	for over := range s.Over.Iter() {
		id, err := s.saver.Save(over.Score, over.Wave)
		if err != nil {
			s.logger.Error("failed to save score", "score", over.Score, "err", err)
			continue
		}
		s.logger.Info("score saved", "id", id, "score", over.Score, "wave", over.Wave)
	}
}
