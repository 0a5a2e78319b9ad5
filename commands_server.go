package rustis

import (
	"context"

	"github.com/muenchow/rustis/resp"
)

// FlushingMode selects how the server reclaims memory when flushing a
// database.
type FlushingMode int

const (
	// FlushDefault lets the server pick its configured behavior.
	FlushDefault FlushingMode = iota
	// FlushAsync flushes the database asynchronously.
	FlushAsync
	// FlushSync flushes the database synchronously.
	FlushSync
)

// WriteArgs appends the mode's token, if any. FlushDefault appends
// nothing.
func (m FlushingMode) WriteArgs(args *resp.CommandArgs) {
	switch m {
	case FlushAsync:
		args.AddString("ASYNC")
	case FlushSync:
		args.AddString("SYNC")
	}
}

// FlushDB deletes all keys of the currently selected database.
//
// See https://redis.io/commands/flushdb/
func (c *Commands) FlushDB(ctx context.Context, mode FlushingMode) error {
	return doUnit(ctx, c.sender, resp.Cmd("FLUSHDB").ArgValue(mode))
}

// FlushAll deletes all keys of all databases.
//
// See https://redis.io/commands/flushall/
func (c *Commands) FlushAll(ctx context.Context, mode FlushingMode) error {
	return doUnit(ctx, c.sender, resp.Cmd("FLUSHALL").ArgValue(mode))
}
