package loop

import (
	"time"

	"github.com/tomz197/forestshooter/internal/object"
)

// Observer receives session events from the tick goroutine. Implementations
// must be quick and must not call back into the Game.
type Observer interface {
	EnemySpawned(kind object.EnemyKind)
	EnemyKilled(kind object.EnemyKind, points int)
	TickCompleted(d time.Duration, stats Stats)
	SessionEnded(res Result)
}

type nopObserver struct{}

func (nopObserver) EnemySpawned(object.EnemyKind)      {}
func (nopObserver) EnemyKilled(object.EnemyKind, int)  {}
func (nopObserver) TickCompleted(time.Duration, Stats) {}
func (nopObserver) SessionEnded(Result)                {}
