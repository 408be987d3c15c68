package input

import (
	"bufio"
	"io"
	"strconv"
	"sync"
	"time"
)

// Terminal mouse reporting: any-motion tracking with SGR (1006) coordinates.
const (
	EnableMouseSeq  = "\033[?1003h\033[?1006h"
	DisableMouseSeq = "\033[?1003l\033[?1006l"
)

// maxPending bounds how much of an unterminated escape sequence is carried
// over to the next read before it is treated as plain bytes.
const maxPending = 32

// EventKind identifies a terminal input event.
type EventKind int

const (
	EventPointerMove EventKind = iota
	EventPointerDown
	EventPointerUp
	EventKeyDown
	EventKeyUp
)

// Event is one decoded terminal input event. Pointer events carry 1-based
// terminal cell coordinates; key events carry the key.
type Event struct {
	Kind     EventKind
	Col, Row int
	Key      Key
}

// Stream delivers terminal input bytes via a channel and decodes them into
// events. Terminals report key presses but not releases, so a key counts as
// held while presses keep arriving within the hold window, and a KeyUp is
// synthesized once the window lapses.
type Stream struct {
	ch        chan byte
	done      chan struct{}
	closeOnce sync.Once
	closed    bool
	hold      time.Duration
	held      map[Key]time.Time
	pending   []byte
	stale     bool // pending bytes survived one read with no new input
	buf       []byte
	events    []Event
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
// The goroutine exits when r returns an error (e.g. session closed) or,
// after Close, once the next byte arrives.
func StartStream(r io.Reader, hold time.Duration) *Stream {
	s := newStream(hold)
	go s.pump(bufio.NewReader(r))
	return s
}

func newStream(hold time.Duration) *Stream {
	return &Stream{
		ch:   make(chan byte, 256),
		done: make(chan struct{}),
		hold: hold,
		held: make(map[Key]time.Time),
	}
}

func (s *Stream) pump(br io.ByteReader) {
	for {
		b, err := br.ReadByte()
		if err != nil {
			close(s.ch)
			return
		}
		select {
		case s.ch <- b:
		case <-s.done:
			return
		}
	}
}

// Close stops delivery. A reader blocked in a read is released on its next
// byte or error. Close is safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended or Close was called.
func (s *Stream) Closed() bool {
	if s.closed {
		return true
	}
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// Read drains all available bytes (non-blocking) and returns the decoded
// events. The returned slice is reused by the next call.
func (s *Stream) Read(now time.Time) []Event {
	s.events = s.events[:0]
	s.buf = append(s.buf[:0], s.pending...)
	fresh := false

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.buf = append(s.buf, b)
			fresh = true
		default:
			break drain
		}
	}

	// A lone ESC (or a cut-off sequence) that saw no follow-up bytes since
	// the last read is a real keypress, not the start of a sequence.
	flush := s.stale && !fresh
	s.pending = s.pending[:0]
	s.parse(s.buf, now, flush)
	s.stale = len(s.pending) > 0

	for k, last := range s.held {
		if now.Sub(last) >= s.hold {
			delete(s.held, k)
			s.events = append(s.events, Event{Kind: EventKeyUp, Key: k})
		}
	}

	return s.events
}

// ReleaseKeys forgets every held key without emitting KeyUp events.
func (s *Stream) ReleaseKeys() {
	clear(s.held)
}

func (s *Stream) parse(buf []byte, now time.Time, flush bool) {
	for i := 0; i < len(buf); {
		b := buf[i]
		if b != '\x1b' {
			s.pressByte(b, now)
			i++
			continue
		}

		n, complete := s.parseEscape(buf[i:], now)
		if !complete {
			if flush || len(buf)-i > maxPending {
				s.press(KeyEscape, now)
				i++
				continue
			}
			s.pending = append(s.pending, buf[i:]...)
			return
		}
		i += n
	}
}

// parseEscape decodes one escape sequence at the start of seq and returns
// how many bytes it used. complete is false if seq ends mid-sequence.
func (s *Stream) parseEscape(seq []byte, now time.Time) (n int, complete bool) {
	if len(seq) < 2 {
		return 0, false
	}
	if seq[1] != '[' {
		s.press(KeyEscape, now)
		return 1, true
	}

	// CSI: ESC [ params final, final byte in 0x40..0x7E
	end := -1
	for j := 2; j < len(seq); j++ {
		if seq[j] >= 0x40 && seq[j] <= 0x7e {
			end = j
			break
		}
	}
	if end < 0 {
		return 0, false
	}

	params := seq[2:end]
	final := seq[end]

	switch {
	case len(params) > 0 && params[0] == '<' && (final == 'M' || final == 'm'):
		s.mouse(params[1:], final == 'm')
	case len(params) == 0 && final == 'A':
		s.press(KeyArrowUp, now)
	case len(params) == 0 && final == 'B':
		s.press(KeyArrowDown, now)
	case len(params) == 0 && final == 'C':
		s.press(KeyArrowRight, now)
	case len(params) == 0 && final == 'D':
		s.press(KeyArrowLeft, now)
	}
	return end + 1, true
}

// mouse decodes SGR mouse parameters "b;col;row".
func (s *Stream) mouse(params []byte, release bool) {
	var fields [3]int
	field := 0
	start := 0
	for j := 0; j <= len(params); j++ {
		if j < len(params) && params[j] != ';' {
			continue
		}
		if field >= len(fields) {
			return
		}
		v, err := strconv.Atoi(string(params[start:j]))
		if err != nil {
			return
		}
		fields[field] = v
		field++
		start = j + 1
	}
	if field != len(fields) {
		return
	}

	b, col, row := fields[0], fields[1], fields[2]
	if b&64 != 0 {
		return // wheel
	}

	s.events = append(s.events, Event{Kind: EventPointerMove, Col: col, Row: row})

	motion := b&32 != 0
	left := b&3 == 0
	switch {
	case release && left:
		s.events = append(s.events, Event{Kind: EventPointerUp, Col: col, Row: row})
	case !release && !motion && left:
		s.events = append(s.events, Event{Kind: EventPointerDown, Col: col, Row: row})
	}
}

func (s *Stream) pressByte(b byte, now time.Time) {
	switch {
	case b == '\r' || b == '\n':
		s.press(KeyEnter, now)
	case b == '\b' || b == 0x7f:
		s.press(KeyBackspace, now)
	case b == 0x03: // Raw mode delivers Ctrl-C as a byte, not a signal
		s.press(KeyCtrlC, now)
	case b >= 0x20 && b < 0x7f:
		s.press(Key(b), now)
	}
}

// press emits KeyDown on the first press of a hold and refreshes the hold.
func (s *Stream) press(k Key, now time.Time) {
	if _, ok := s.held[k]; !ok {
		s.events = append(s.events, Event{Kind: EventKeyDown, Key: k})
	}
	s.held[k] = now
}
