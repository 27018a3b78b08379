package input

import (
	"bufio"
	"io"
	"sync"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Raw terminals only report presses (and auto-repeats), never releases.
const keyHoldDuration = 30 * time.Millisecond

// Fire is edge-triggered, so it must stay held across the terminal's
// auto-repeat: the first press holds it through the repeat delay, each repeat
// byte then holds it for longer than the repeat interval.
const (
	fireRepeatDelay = 550 * time.Millisecond
	fireRepeatHold  = 100 * time.Millisecond
)

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	left    time.Time
	right   time.Time
	fire    time.Time
	confirm time.Time

	// fireHold is the window started by the last fire byte.
	fireHold time.Duration
}

// Stream decodes bytes from a raw terminal and tracks held keys.
type Stream struct {
	hub

	ch   chan byte
	done chan struct{}
	hold time.Duration
	now  func() time.Time

	mu    sync.Mutex
	state keyState
	eof   bool
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
func StartStream(r io.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
		hold: keyHoldDuration,
		now:  time.Now,
	}

	br, ok := r.(io.ByteReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	go func() {
		defer close(s.done)
		for {
			b, err := br.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Bind returns an exclusive binding on the stream.
func (s *Stream) Bind() (*Binding, error) {
	return s.bind(s)
}

// Done is closed once the underlying reader fails or hits EOF.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Poll drains all available bytes (non-blocking) and reports the keys seen within
// the hold window.
func (s *Stream) Poll() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	buf := s.drain()

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			case 'A', 'B':
				i += 2
				continue
			}
		}
		applyByteToState(&s.state, b, now)
	}

	return State{
		Left:    now.Sub(s.state.left) < s.hold,
		Right:   now.Sub(s.state.right) < s.hold,
		Fire:    s.state.fireHeld(now),
		Quit:    s.eof || now.Sub(s.state.quit) < s.hold,
		Confirm: now.Sub(s.state.confirm) < s.hold,
	}
}

// Reset forgets every held key. A key still physically down reads as a new
// press on its next repeat.
func (s *Stream) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = keyState{}
}

// drain collects the bytes currently buffered. A closed channel marks EOF, which
// reads as a held Quit from then on.
func (s *Stream) drain() []byte {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.eof = true
				return buf
			}
			buf = append(buf, b)
		default:
			return buf
		}
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
// Unrecognized bytes are ignored.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'a', 'A', 'j', 'J':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ':
		if state.fireHeld(now) {
			state.fireHold = fireRepeatHold
		} else {
			state.fireHold = fireRepeatDelay
		}
		state.fire = now
	case '\n', '\r':
		state.confirm = now
	}
}

func (st *keyState) fireHeld(now time.Time) bool {
	return !st.fire.IsZero() && now.Sub(st.fire) < st.fireHold
}
