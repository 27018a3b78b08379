package input

import "sync"

// Key codes understood by Keys, named after DOM KeyboardEvent.code values.
const (
	CodeArrowLeft  = "ArrowLeft"
	CodeArrowRight = "ArrowRight"
	CodeKeyA       = "KeyA"
	CodeKeyD       = "KeyD"
	CodeSpace      = "Space"
	CodeEnter      = "Enter"
	CodeKeyQ       = "KeyQ"
	CodeEscape     = "Escape"
)

type action int

const (
	actionLeft action = iota
	actionRight
	actionFire
	actionConfirm
	actionQuit
)

var keyActions = map[string]action{
	CodeArrowLeft:  actionLeft,
	CodeKeyA:       actionLeft,
	CodeArrowRight: actionRight,
	CodeKeyD:       actionRight,
	CodeSpace:      actionFire,
	CodeEnter:      actionConfirm,
	CodeKeyQ:       actionQuit,
	CodeEscape:     actionQuit,
}

// Keys tracks held keys from explicit key-down and key-up events. A key stays
// held until its key-up arrives.
type Keys struct {
	hub

	mu   sync.Mutex
	held map[string]bool
}

// NewKeys returns a device with no keys held.
func NewKeys() *Keys {
	return &Keys{held: make(map[string]bool)}
}

// Bind returns an exclusive binding on the device.
func (k *Keys) Bind() (*Binding, error) {
	return k.bind(k)
}

// KeyDown marks code as held. Unrecognized codes are ignored.
func (k *Keys) KeyDown(code string) {
	if _, ok := keyActions[code]; !ok {
		return
	}
	k.mu.Lock()
	k.held[code] = true
	k.mu.Unlock()
}

// KeyUp marks code as released.
func (k *Keys) KeyUp(code string) {
	k.mu.Lock()
	delete(k.held, code)
	k.mu.Unlock()
}

// Reset releases every key, e.g. when the host loses focus.
func (k *Keys) Reset() {
	k.mu.Lock()
	clear(k.held)
	k.mu.Unlock()
}

// Poll reports the held keys.
func (k *Keys) Poll() State {
	k.mu.Lock()
	defer k.mu.Unlock()

	var s State
	for code := range k.held {
		switch keyActions[code] {
		case actionLeft:
			s.Left = true
		case actionRight:
			s.Right = true
		case actionFire:
			s.Fire = true
		case actionConfirm:
			s.Confirm = true
		case actionQuit:
			s.Quit = true
		}
	}
	return s
}
