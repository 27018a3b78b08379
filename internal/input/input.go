// Package input turns raw key events into per-tick State snapshots.
//
// A device (Stream for raw terminals, Keys for hosts that deliver key-down and
// key-up events) tracks which keys are held. Consumers never read a device
// directly: they Bind it, poll the returned Binding once per tick and Release it
// when done. A device accepts one binding at a time.
package input

import (
	"errors"
	"sync"
)

// ErrAlreadyBound is returned by Bind while another binding is still active.
var ErrAlreadyBound = errors.New("input: device already bound")

// State is the input snapshot for a single tick.
type State struct {
	Left    bool
	Right   bool
	Fire    bool
	Quit    bool
	Confirm bool
}

// Source yields an input snapshot. Poll is called once per tick.
type Source interface {
	Poll() State
}

// Device is a Source that hands out exclusive bindings.
type Device interface {
	Bind() (*Binding, error)
	// Reset forgets every held key.
	Reset()
}

// hub enforces the single active binding of a device.
type hub struct {
	mu    sync.Mutex
	bound *Binding
}

func (h *hub) bind(src Source) (*Binding, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.bound != nil {
		return nil, ErrAlreadyBound
	}
	b := &Binding{hub: h, src: src}
	h.bound = b
	return b, nil
}

func (h *hub) release(b *Binding) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.bound == b {
		h.bound = nil
	}
}

// Binding is an exclusive handle on a device.
type Binding struct {
	hub *hub
	src Source

	mu       sync.Mutex
	released bool
}

// Poll returns the device's current state, or the zero State once released.
func (b *Binding) Poll() State {
	b.mu.Lock()
	released := b.released
	b.mu.Unlock()

	if released {
		return State{}
	}
	return b.src.Poll()
}

// Release detaches the binding so the device can be bound again. It is safe to
// call more than once.
func (b *Binding) Release() {
	b.mu.Lock()
	if b.released {
		b.mu.Unlock()
		return
	}
	b.released = true
	b.mu.Unlock()

	b.hub.release(b)
}
