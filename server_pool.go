package rustis

import (
	"context"

	"github.com/jackc/puddle/v2"
	"github.com/sony/gobreaker/v2"

	"github.com/muenchow/rustis/resp"
)

// ServerPool owns the pooled connections to one server address and,
// when configured, the circuit breaker guarding it.
type ServerPool struct {
	addr           string
	pool           *puddle.Pool[*Connection]
	circuitBreaker *gobreaker.CircuitBreaker[resp.Value]
}

// NewServerPool creates a pool for addr. The constructor dials with the
// configured dialer; broken connections are destroyed rather than
// returned to the pool.
func NewServerPool(addr string, config Config) (*ServerPool, error) {
	constructor := func(ctx context.Context) (*Connection, error) {
		netConn, err := config.dialer().DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, &ConnectionError{Op: "dial", Err: err}
		}
		return NewConnection(netConn), nil
	}

	pool, err := puddle.NewPool(&puddle.Config[*Connection]{
		Constructor: constructor,
		Destructor:  func(c *Connection) { _ = c.Close() },
		MaxSize:     config.maxConns(),
	})
	if err != nil {
		return nil, err
	}

	sp := &ServerPool{addr: addr, pool: pool}
	if config.NewCircuitBreaker != nil {
		sp.circuitBreaker = config.NewCircuitBreaker(addr)
	}
	return sp, nil
}

var _ Sender = (*ServerPool)(nil)

// Address returns the server address this pool connects to.
func (sp *ServerPool) Address() string {
	return sp.addr
}

// Send executes one command-reply cycle on a pooled connection,
// wrapped with the circuit breaker when one is configured.
func (sp *ServerPool) Send(ctx context.Context, cmd *resp.Command) (resp.Value, error) {
	if sp.circuitBreaker == nil {
		return sp.sendDirect(ctx, cmd)
	}
	return sp.circuitBreaker.Execute(func() (resp.Value, error) {
		return sp.sendDirect(ctx, cmd)
	})
}

func (sp *ServerPool) sendDirect(ctx context.Context, cmd *resp.Command) (resp.Value, error) {
	resource, err := sp.pool.Acquire(ctx)
	if err != nil {
		return resp.Value{}, err
	}

	value, err := resource.Value().Send(ctx, cmd)
	if err != nil {
		// Send only fails when the connection is broken or the
		// reply stream position is unknown.
		resource.Destroy()
		return resp.Value{}, err
	}

	resource.Release()
	return value, nil
}

// ServerPoolStats is a snapshot of one server pool.
type ServerPoolStats struct {
	Addr                 string
	TotalConns           int32
	IdleConns            int32
	AcquireCount         int64
	AcquireDuration      int64 // cumulative nanoseconds spent waiting
	CircuitBreakerState  gobreaker.State
	CircuitBreakerCounts gobreaker.Counts
}

// Stats returns a snapshot of the pool and its circuit breaker.
func (sp *ServerPool) Stats() ServerPoolStats {
	s := sp.pool.Stat()
	stats := ServerPoolStats{
		Addr:            sp.addr,
		TotalConns:      s.TotalResources(),
		IdleConns:       s.IdleResources(),
		AcquireCount:    s.AcquireCount(),
		AcquireDuration: s.AcquireDuration().Nanoseconds(),
	}
	if sp.circuitBreaker != nil {
		stats.CircuitBreakerState = sp.circuitBreaker.State()
		stats.CircuitBreakerCounts = sp.circuitBreaker.Counts()
	}
	return stats
}

// Close destroys all pooled connections.
func (sp *ServerPool) Close() {
	sp.pool.Close()
}
