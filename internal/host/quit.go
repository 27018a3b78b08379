package host

import (
	"sync"

	"github.com/tomz197/forestshooter/internal/input"
)

// quitWatcher passes a binding's state through to the Game and signals when
// the player asks to leave.
type quitWatcher struct {
	*input.Binding
	once sync.Once
	quit chan struct{}
}

func newQuitWatcher(b *input.Binding) *quitWatcher {
	return &quitWatcher{Binding: b, quit: make(chan struct{})}
}

func (q *quitWatcher) Poll() input.State {
	st := q.Binding.Poll()
	if st.Quit {
		q.once.Do(func() { close(q.quit) })
	}
	return st
}

// Quit is closed the first time a polled state has Quit set.
func (q *quitWatcher) Quit() <-chan struct{} {
	return q.quit
}
