package wizard

import "github.com/AlexZinkM/vendora/internal/validation"

// FiatStep is a step of the fiat transfer.
type FiatStep string

const (
	FiatRecipient FiatStep = "recipient"
	FiatDetails   FiatStep = "details"
	FiatSummary   FiatStep = "summary"
	FiatTwoFactor FiatStep = "twoFactor"
	FiatStatus    FiatStep = "status"
)

// FiatSend walks recipient → details → summary → twoFactor → status.
type FiatSend struct {
	opts          options
	open          bool
	step          FiatStep
	recipientType validation.RecipientType
	data          *validation.SendFiatInput
}

// NewFiatSend returns a closed fiat wizard.
func NewFiatSend(opts ...Option) *FiatSend {
	return &FiatSend{
		opts:          buildOptions(opts),
		step:          FiatRecipient,
		recipientType: validation.RecipientSaved,
	}
}

func (w *FiatSend) Kind() Kind { return KindFiat }

func (w *FiatSend) IsOpen() bool { return w.open }

// SetOpen opens or closes the wizard. Closing from any step drops the
// collected details and the recipient choice.
func (w *FiatSend) SetOpen(open bool) {
	if w.open && !open {
		w.step = FiatRecipient
		w.recipientType = validation.RecipientSaved
		w.data = nil
	}
	w.open = open
}

// Step returns the current step.
func (w *FiatSend) Step() FiatStep { return w.step }

func (w *FiatSend) StepName() string { return string(w.step) }

func (w *FiatSend) Terminal() bool { return w.step == FiatStatus }

// RecipientType returns the choice made on the recipient step.
func (w *FiatSend) RecipientType() validation.RecipientType { return w.recipientType }

// Data returns the validated details, if any.
func (w *FiatSend) Data() (validation.SendFiatInput, bool) {
	if w.data == nil {
		return validation.SendFiatInput{}, false
	}
	return *w.data, true
}

// CodeLength is the number of characters the two-factor step expects.
func (w *FiatSend) CodeLength() int { return w.opts.codeLength }

// Advance applies ev to the current step. On error the wizard is unchanged.
func (w *FiatSend) Advance(ev Event) error {
	n, err := w.next(ev)
	if err != nil {
		return err
	}
	*w = n
	return nil
}

// Check runs the guard of the current step against ev without moving, and
// reports whether ev would reach the status step.
func (w *FiatSend) Check(ev Event) (bool, error) {
	n, err := w.next(ev)
	if err != nil {
		return false, err
	}
	return n.Terminal(), nil
}

func (w *FiatSend) next(ev Event) (FiatSend, error) {
	n := *w
	if !n.open {
		return n, ErrClosed
	}

	switch n.step {
	case FiatRecipient:
		e, ok := ev.(RecipientChosen)
		if !ok {
			return n, ErrUnexpectedEvent
		}
		if e.Type != validation.RecipientSaved && e.Type != validation.RecipientNew {
			return n, validation.Errors{"recipientType": "Recipient must be saved or new"}
		}
		n.recipientType = e.Type
		n.step = FiatDetails

	case FiatDetails:
		e, ok := ev.(FiatDetailsSubmitted)
		if !ok {
			return n, ErrUnexpectedEvent
		}
		data := e.Input
		data.RecipientType = n.recipientType
		if data.Currency == "" {
			data.Currency = validation.DefaultCurrency
		}
		if err := data.Validate(); err != nil {
			return n, err
		}
		n.data = &data
		n.step = FiatSummary

	case FiatSummary:
		if _, ok := ev.(SummaryConfirmed); !ok {
			return n, ErrUnexpectedEvent
		}
		n.step = FiatTwoFactor

	case FiatTwoFactor:
		e, ok := ev.(CodeSubmitted)
		if !ok {
			return n, ErrUnexpectedEvent
		}
		if err := checkCode(e.Code, n.opts.codeLength); err != nil {
			return n, err
		}
		n.step = FiatStatus

	default:
		return n, ErrUnexpectedEvent
	}
	return n, nil
}
