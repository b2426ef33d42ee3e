package wizard

import "github.com/AlexZinkM/vendora/internal/validation"

// CryptoStep is a step of the crypto transfer.
type CryptoStep string

const (
	CryptoDetails CryptoStep = "details"
	CryptoSummary CryptoStep = "summary"
	CryptoAuth    CryptoStep = "auth"
	CryptoFinal   CryptoStep = "final"
)

// CryptoSend walks details → summary → auth → final.
type CryptoSend struct {
	opts options
	open bool
	step CryptoStep
	data *validation.SendCryptoInput
}

// NewCryptoSend returns a closed crypto wizard.
func NewCryptoSend(opts ...Option) *CryptoSend {
	return &CryptoSend{opts: buildOptions(opts), step: CryptoDetails}
}

func (w *CryptoSend) Kind() Kind { return KindCrypto }

func (w *CryptoSend) IsOpen() bool { return w.open }

// SetOpen opens or closes the wizard. Closing from any step drops the
// collected details and returns to the details step.
func (w *CryptoSend) SetOpen(open bool) {
	if w.open && !open {
		w.step = CryptoDetails
		w.data = nil
	}
	w.open = open
}

// Step returns the current step.
func (w *CryptoSend) Step() CryptoStep { return w.step }

func (w *CryptoSend) StepName() string { return string(w.step) }

func (w *CryptoSend) Terminal() bool { return w.step == CryptoFinal }

// Data returns the details collected on the first step, if any.
func (w *CryptoSend) Data() (validation.SendCryptoInput, bool) {
	if w.data == nil {
		return validation.SendCryptoInput{}, false
	}
	return *w.data, true
}

// CodeLength is the number of characters the auth step expects.
func (w *CryptoSend) CodeLength() int { return w.opts.codeLength }

// Advance applies ev to the current step. On error the wizard is unchanged.
func (w *CryptoSend) Advance(ev Event) error {
	n, err := w.next(ev)
	if err != nil {
		return err
	}
	*w = n
	return nil
}

// Check runs the guard of the current step against ev without moving, and
// reports whether ev would reach the final step.
func (w *CryptoSend) Check(ev Event) (bool, error) {
	n, err := w.next(ev)
	if err != nil {
		return false, err
	}
	return n.Terminal(), nil
}

// next returns the wizard as it would be after ev.
func (w *CryptoSend) next(ev Event) (CryptoSend, error) {
	n := *w
	if !n.open {
		return n, ErrClosed
	}

	switch n.step {
	case CryptoDetails:
		e, ok := ev.(CryptoDetailsSubmitted)
		if !ok {
			return n, ErrUnexpectedEvent
		}
		if err := e.Input.Validate(); err != nil {
			return n, err
		}
		data := e.Input
		n.data = &data
		n.step = CryptoSummary

	case CryptoSummary:
		if _, ok := ev.(SummaryConfirmed); !ok {
			return n, ErrUnexpectedEvent
		}
		n.step = CryptoAuth

	case CryptoAuth:
		e, ok := ev.(CodeSubmitted)
		if !ok {
			return n, ErrUnexpectedEvent
		}
		if err := checkCode(e.Code, n.opts.codeLength); err != nil {
			return n, err
		}
		n.step = CryptoFinal

	default:
		return n, ErrUnexpectedEvent
	}
	return n, nil
}
