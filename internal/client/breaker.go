// Package client holds the outbound HTTP clients of the server.
package client

import "github.com/sony/gobreaker"

var (
	// MaxNumOfFailingRequests ...
	MaxNumOfFailingRequests = 5
	// FailingRatio ...
	FailingRatio = 0.6
)

// newCircuitBreaker trips once more than MaxNumOfFailingRequests requests
// were made and at least FailingRatio of them failed.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: name,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return int(counts.Requests) > MaxNumOfFailingRequests && ratio >= FailingRatio
		},
	})
}
