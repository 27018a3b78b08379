package host

import (
	"github.com/tomz197/forestshooter/internal/input"
	"github.com/tomz197/forestshooter/internal/loop"
	"github.com/tomz197/forestshooter/internal/object"
)

// fireEvery is the press-release cycle of the autopilot's fire key, in ticks.
const fireEvery = 4

// Autopilot plays by pressing and releasing keys on an input.Keys device, the
// way a key-event host would. Use it as a loop.Renderer: every frame it lines the
// player up under the lowest spirit and keeps shooting.
type Autopilot struct {
	keys *input.Keys
}

// NewAutopilot drives keys.
func NewAutopilot(keys *input.Keys) *Autopilot {
	return &Autopilot{keys: keys}
}

// Render implements loop.Renderer.
func (a *Autopilot) Render(f *loop.Frame) {
	target, ok := lowestEnemy(f.Enemies)
	if !ok {
		a.keys.KeyUp(input.CodeArrowLeft)
		a.keys.KeyUp(input.CodeArrowRight)
		a.keys.KeyUp(input.CodeSpace)
		return
	}

	dx := target.X - f.Player.X
	switch {
	case dx < -f.Player.Step:
		a.keys.KeyUp(input.CodeArrowRight)
		a.keys.KeyDown(input.CodeArrowLeft)
	case dx > f.Player.Step:
		a.keys.KeyUp(input.CodeArrowLeft)
		a.keys.KeyDown(input.CodeArrowRight)
	default:
		a.keys.KeyUp(input.CodeArrowLeft)
		a.keys.KeyUp(input.CodeArrowRight)
	}

	if f.Tick%fireEvery == 0 {
		a.keys.KeyDown(input.CodeSpace)
	} else if f.Tick%fireEvery == fireEvery/2 {
		a.keys.KeyUp(input.CodeSpace)
	}
}

// lowestEnemy returns the enemy closest to the bottom of the field.
func lowestEnemy(enemies []object.Enemy) (object.Enemy, bool) {
	if len(enemies) == 0 {
		return object.Enemy{}, false
	}
	best := enemies[0]
	for _, e := range enemies[1:] {
		if e.Y > best.Y {
			best = e
		}
	}
	return best, true
}
