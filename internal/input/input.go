// Package input turns a raw terminal byte stream into viewer key presses.
package input

import (
	"bufio"
)

// Keys holds the keys pressed since the previous read.
type Keys struct {
	Quit   bool // q, Ctrl-C
	Pause  bool // space, p
	Step   bool // s, or the right arrow
	Spawn  bool // n
	Boxes  bool // b toggles bounding boxes
	Vector bool // v toggles velocity vectors
	// Pressed is the raw input, used for activity tracking.
	Pressed []byte
}

// Any reports whether any byte arrived.
func (k Keys) Any() bool {
	return len(k.Pressed) > 0
}

// Stream delivers input bytes read from a terminal by a background goroutine.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads r until it fails.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Read drains the buffered bytes without blocking and decodes them. A closed
// stream reads as Quit.
func (s *Stream) Read() Keys {
	var buf []byte
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				k := Decode(buf)
				k.Quit = true
				return k
			}
			buf = append(buf, b)
		default:
			return Decode(buf)
		}
	}
}

// Decode maps raw terminal bytes, including CSI arrow sequences, to keys.
func Decode(buf []byte) Keys {
	k := Keys{Pressed: buf}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			if buf[i+2] == 'C' {
				k.Step = true
			}
			i += 2
			continue
		}
		switch b {
		case 'q', 'Q', '\x03':
			k.Quit = true
		case ' ', 'p', 'P':
			k.Pause = true
		case 's', 'S':
			k.Step = true
		case 'n', 'N':
			k.Spawn = true
		case 'b', 'B':
			k.Boxes = true
		case 'v', 'V':
			k.Vector = true
		}
	}
	return k
}
