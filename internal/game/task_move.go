package game

import (
	"github.com/vovakirdan/comfy-wars/internal/core"
	"github.com/vovakirdan/comfy-wars/internal/sched"
)

// NewMoveTask creates the task walking k along path: one tile per
// StepTicks, drawn halfway through each step, then a hand-over to Confirm.
// path[0] must be the actor's current cell.
func NewMoveTask(k ActorKey, path []core.Pos) sched.Task[PersistentState] {
	var steps []func(*PersistentState) sched.Result
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		steps = append(steps,
			func(s *PersistentState) sched.Result {
				a, ok := s.Actors.Get(k)
				if !ok {
					return sched.Done()
				}
				a.DrawPos = core.Lerp(from.World(), to.World(), 0.5)
				return sched.Sleep(s.Config.Move.StepTicks / 2)
			},
			func(s *PersistentState) sched.Result {
				a, ok := s.Actors.Get(k)
				if !ok {
					return sched.Done()
				}
				a.Pos = to
				a.DrawPos = to.World()
				return sched.Sleep(s.Config.Move.StepTicks - s.Config.Move.StepTicks/2)
			},
		)
	}
	steps = append(steps, func(s *PersistentState) sched.Result {
		if s.Selection.Is(Moving, k) {
			s.Selection = SelectionOf(Confirm, k)
		}
		return sched.Done()
	})
	return sched.Sequence(steps...)
}
