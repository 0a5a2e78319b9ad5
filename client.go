package rustis

import (
	"context"
	"net"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/muenchow/rustis/resp"
)

// Config holds configuration for the pooled client.
type Config struct {
	// Addrs is the list of server addresses. With a single address all
	// commands go to it; with several, commands are routed by their
	// first key (client-side sharding) and keyless commands go to the
	// first address.
	Addrs []string

	// MaxConns is the maximum number of pooled connections per server.
	// Zero means DefaultMaxConns.
	MaxConns int32

	// Dialer is used to create new connections. If nil, a default
	// net.Dialer with DefaultDialTimeout is used.
	Dialer *net.Dialer

	// SelectServer picks the server index for a routing key. If nil,
	// DefaultSelectServer (jump hash) is used.
	SelectServer SelectServerFunc

	// NewCircuitBreaker creates a circuit breaker for a server. Called
	// once per address. If nil, no circuit breaker is used.
	NewCircuitBreaker func(addr string) *gobreaker.CircuitBreaker[resp.Value]
}

const (
	DefaultMaxConns    = 8
	DefaultDialTimeout = 5 * time.Second
)

func (c Config) maxConns() int32 {
	if c.MaxConns > 0 {
		return c.MaxConns
	}
	return DefaultMaxConns
}

func (c Config) dialer() *net.Dialer {
	if c.Dialer != nil {
		return c.Dialer
	}
	return &net.Dialer{Timeout: DefaultDialTimeout}
}

// Client is a Sender backed by one connection pool per configured
// address. It performs no retries and interprets no replies; it only
// moves fully built commands to a server and replies back.
type Client struct {
	addrs        []string
	selectServer SelectServerFunc
	pools        []*ServerPool
	stats        *clientStatsCollector
}

var _ Sender = (*Client)(nil)

// NewClient creates a client and its per-server pools. Connections are
// dialed lazily on first use.
func NewClient(config Config) (*Client, error) {
	if len(config.Addrs) == 0 {
		return nil, ErrNoServers
	}

	selectServer := config.SelectServer
	if selectServer == nil {
		selectServer = DefaultSelectServer
	}

	client := &Client{
		addrs:        config.Addrs,
		selectServer: selectServer,
		pools:        make([]*ServerPool, 0, len(config.Addrs)),
		stats:        newClientStatsCollector(),
	}

	for _, addr := range config.Addrs {
		pool, err := NewServerPool(addr, config)
		if err != nil {
			client.Close()
			return nil, err
		}
		client.pools = append(client.pools, pool)
	}

	return client, nil
}

// Send routes cmd to a server by its routing key and executes it
// there. Keyless commands (SCAN, FLUSHDB, RANDOMKEY, ...) go to the
// first address.
func (c *Client) Send(ctx context.Context, cmd *resp.Command) (resp.Value, error) {
	pool := c.pools[c.poolIndexFor(cmd.RoutingKey())]

	c.stats.recordCommand()
	value, err := pool.Send(ctx, cmd)
	if err != nil {
		c.stats.recordError()
		return resp.Value{}, err
	}
	return value, nil
}

func (c *Client) poolIndexFor(key string) int {
	if key == "" || len(c.pools) == 1 {
		return 0
	}
	return c.selectServer(key, len(c.pools))
}

// Stats returns a snapshot of client counters.
func (c *Client) Stats() ClientStats {
	return c.stats.snapshot()
}

// PoolStats returns a snapshot of every server pool.
func (c *Client) PoolStats() []ServerPoolStats {
	stats := make([]ServerPoolStats, len(c.pools))
	for i, pool := range c.pools {
		stats[i] = pool.Stats()
	}
	return stats
}

// Close destroys all pooled connections.
func (c *Client) Close() {
	for _, pool := range c.pools {
		pool.Close()
	}
}
