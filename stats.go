package rustis

import "sync/atomic"

// ClientStats contains counters for client operations. All fields are
// updated atomically and safe to read from a snapshot.
//
// For Prometheus integration, expose Commands and Errors as counters.
type ClientStats struct {
	Commands uint64 // commands submitted through Send
	Errors   uint64 // transport-level failures (store error replies are not counted)
}

// clientStatsCollector updates ClientStats; the client owns one.
type clientStatsCollector struct {
	commands atomic.Uint64
	errors   atomic.Uint64
}

func newClientStatsCollector() *clientStatsCollector {
	return &clientStatsCollector{}
}

func (c *clientStatsCollector) recordCommand() {
	c.commands.Add(1)
}

func (c *clientStatsCollector) recordError() {
	c.errors.Add(1)
}

func (c *clientStatsCollector) snapshot() ClientStats {
	return ClientStats{
		Commands: c.commands.Load(),
		Errors:   c.errors.Load(),
	}
}
