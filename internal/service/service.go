// Package service implements the operations behind the HTTP API and the
// operator CLI on top of the repositories.
package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/thanhpk/randstr"
)

// Observer receives business events, usually to count them.
type Observer interface {
	Registered()
	LoggedIn(ok bool)
	Verification(status string)
	Transfer(flow string)
	RateFailure()
}

type nopObserver struct{}

func (nopObserver) Registered()         {}
func (nopObserver) LoggedIn(bool)       {}
func (nopObserver) Verification(string) {}
func (nopObserver) Transfer(string)     {}
func (nopObserver) RateFailure()        {}

func observerOrNop(o Observer) Observer {
	if o == nil {
		return nopObserver{}
	}
	return o
}

// clock is swapped in tests.
type clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

func newID() string {
	return uuid.New().String()
}

// newReference returns a human readable transfer reference like
// Ven-2048175531. Uniqueness is enforced by the transaction store.
func newReference() string {
	return "Ven-" + randstr.String(10, "0123456789")
}
