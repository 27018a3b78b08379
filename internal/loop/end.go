package loop

import (
	"github.com/tomz197/forestshooter/internal/physics"
)

// EndCondition decides after each tick whether the session is over.
type EndCondition func(f *Frame) bool

// NeverEnds keeps the session running until the host destroys it.
func NeverEnds(*Frame) bool {
	return false
}

// EndOnPlayerContact ends the session when any enemy touches the player.
func EndOnPlayerContact(f *Frame) bool {
	p := f.Player
	for i := range f.Enemies {
		e := &f.Enemies[i]
		if physics.CirclesOverlap(p.X, p.Y, p.Radius, e.X, e.Y, e.Radius) {
			return true
		}
	}
	return false
}

// EndAfterTicks ends the session once n ticks have run.
func EndAfterTicks(n uint64) EndCondition {
	return func(f *Frame) bool {
		return f.Tick >= n
	}
}

// EndWhenAny ends the session as soon as one of conds holds.
func EndWhenAny(conds ...EndCondition) EndCondition {
	return func(f *Frame) bool {
		for _, c := range conds {
			if c != nil && c(f) {
				return true
			}
		}
		return false
	}
}
