// Package wizard sequences the multi-step transfer flows. Each flow is a
// closed set of steps and a single Advance function that switches on the
// current step and the event type. A flow only moves forward; closing it is
// the only way back to the first step.
package wizard

import (
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/AlexZinkM/vendora/internal/otp"
	"github.com/AlexZinkM/vendora/internal/validation"
)

var (
	// ErrClosed is returned for events sent to a wizard that is not open.
	ErrClosed = errors.New("wizard is closed")
	// ErrUnexpectedEvent is returned when the event does not belong to the
	// current step.
	ErrUnexpectedEvent = errors.New("event not allowed in current step")
)

// Kind names a transfer flow.
type Kind string

const (
	KindCrypto Kind = "crypto"
	KindFiat   Kind = "fiat"
)

// ParseKind maps a path segment to a flow kind.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindCrypto, KindFiat:
		return Kind(s), true
	}
	return "", false
}

// Event is something the user did on a step. The set is closed.
type Event interface {
	event()
}

// RecipientChosen picks between a saved beneficiary and a new account.
type RecipientChosen struct {
	Type validation.RecipientType
}

// CryptoDetailsSubmitted submits the crypto details form.
type CryptoDetailsSubmitted struct {
	Input validation.SendCryptoInput
}

// FiatDetailsSubmitted submits the fiat details form.
type FiatDetailsSubmitted struct {
	Input validation.SendFiatInput
}

// SummaryConfirmed accepts the displayed summary.
type SummaryConfirmed struct{}

// CodeSubmitted submits the assembled authenticator code.
type CodeSubmitted struct {
	Code string
}

func (RecipientChosen) event()        {}
func (CryptoDetailsSubmitted) event() {}
func (FiatDetailsSubmitted) event()   {}
func (SummaryConfirmed) event()       {}
func (CodeSubmitted) event()          {}

// Flow is what a host needs to drive either wizard.
type Flow interface {
	Kind() Kind
	IsOpen() bool
	SetOpen(open bool)
	StepName() string
	Terminal() bool
	Advance(ev Event) error
	// Check reports whether ev would be accepted and would finish the flow,
	// leaving the wizard untouched.
	Check(ev Event) (bool, error)
}

// Option configures a wizard.
type Option func(*options)

type options struct {
	codeLength int
}

// WithCodeLength sets the number of characters the authentication step
// expects.
func WithCodeLength(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.codeLength = n
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{codeLength: otp.DefaultLength}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// checkCode is the guard of the authentication step. It only compares the
// length; the code itself is not verified anywhere.
func checkCode(code string, length int) error {
	if utf8.RuneCountInString(code) != length {
		return validation.Errors{"code": "Code must be " + strconv.Itoa(length) + " digits"}
	}
	return nil
}
