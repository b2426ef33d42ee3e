// Package otp implements the segmented one-time-code input: a fixed number of
// single-character boxes plus the index of the box that should hold focus.
//
// Focus is not owned by the input. It records the box it wants focused and
// reports each request through an optional callback so the host (a terminal
// view, an HTTP session) can move its own cursor.
package otp

import "strings"

// DefaultLength is the code length used by the transfer flows.
const DefaultLength = 6

// Direction is an arrow-key direction.
type Direction int

const (
	Left Direction = iota
	Right
)

// FocusFunc receives every focus request made by the input.
type FocusFunc func(index int)

// Input holds the boxes of a segmented code field.
type Input struct {
	digits  []string
	focus   int
	onFocus FocusFunc
}

// Option configures an Input.
type Option func(*Input)

// WithFocusFunc registers a callback for focus requests.
func WithFocusFunc(fn FocusFunc) Option {
	return func(in *Input) {
		in.onFocus = fn
	}
}

// New creates an input with length boxes. A non-positive length falls back
// to DefaultLength.
func New(length int, opts ...Option) *Input {
	if length <= 0 {
		length = DefaultLength
	}
	in := &Input{digits: make([]string, length)}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// Len returns the fixed number of boxes.
func (in *Input) Len() int {
	return len(in.digits)
}

// Focus returns the index of the box that was last asked to take focus.
func (in *Input) Focus() int {
	return in.focus
}

// Digits returns a copy of the boxes.
func (in *Input) Digits() []string {
	out := make([]string, len(in.digits))
	copy(out, in.digits)
	return out
}

// SetCharacter applies whatever the box at index now contains. More than one
// character is treated as a paste spread over the following boxes.
func (in *Input) SetCharacter(raw string, at int) {
	if !in.inBounds(at) {
		return
	}

	chars := []rune(raw)
	if len(chars) > 1 {
		if len(chars) > len(in.digits) {
			chars = chars[:len(in.digits)]
		}
		last := at
		for i, c := range chars {
			if at+i >= len(in.digits) {
				break
			}
			in.digits[at+i] = string(c)
			last = at + i
		}
		in.requestFocus(last)
		return
	}

	in.digits[at] = raw
	if raw != "" && at < len(in.digits)-1 {
		in.requestFocus(at + 1)
	}
}

// HandlePaste spreads pasted text over the boxes starting at index.
func (in *Input) HandlePaste(raw string, at int) {
	in.SetCharacter(raw, at)
}

// HandleBackspace clears a filled box, or steps back from an empty one
// without clearing the previous box.
func (in *Input) HandleBackspace(at int) {
	if !in.inBounds(at) {
		return
	}
	if in.digits[at] != "" {
		in.digits[at] = ""
		return
	}
	if at > 0 {
		in.requestFocus(at - 1)
	}
}

// HandleArrow moves focus one box left or right, stopping at the edges.
func (in *Input) HandleArrow(dir Direction, at int) {
	if !in.inBounds(at) {
		return
	}
	switch dir {
	case Left:
		if at > 0 {
			in.requestFocus(at - 1)
		}
	case Right:
		if at < len(in.digits)-1 {
			in.requestFocus(at + 1)
		}
	}
}

// Code joins the boxes in order. Empty boxes contribute nothing, so the
// result is shorter than Len when the code is incomplete.
func (in *Input) Code() string {
	return strings.Join(in.digits, "")
}

// Complete reports whether every box holds a character.
func (in *Input) Complete() bool {
	return len([]rune(in.Code())) == len(in.digits)
}

// Reset empties all boxes and moves focus back to the first one.
func (in *Input) Reset() {
	for i := range in.digits {
		in.digits[i] = ""
	}
	in.requestFocus(0)
}

func (in *Input) inBounds(at int) bool {
	return at >= 0 && at < len(in.digits)
}

func (in *Input) requestFocus(index int) {
	in.focus = index
	if in.onFocus != nil {
		in.onFocus(index)
	}
}
