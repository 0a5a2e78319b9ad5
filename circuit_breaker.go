package rustis

import (
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/muenchow/rustis/resp"
)

// NewCircuitBreakerConfig returns a factory for per-server circuit
// breakers, for use as Config.NewCircuitBreaker. The breaker trips
// when at least 3 requests in the interval failed at a 60% ratio.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(string) *gobreaker.CircuitBreaker[resp.Value] {
	return func(addr string) *gobreaker.CircuitBreaker[resp.Value] {
		settings := gobreaker.Settings{
			Name:        addr,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[resp.Value](settings)
	}
}
