package rustis

import (
	"context"

	"github.com/muenchow/rustis/resp"
)

// Commands exposes the typed command surface over a Sender. It can be
// used with the bundled Client or with any custom Sender (a recording
// fake, a proxy, ...).
type Commands struct {
	sender Sender
}

// NewCommands creates a command surface over s.
func NewCommands(s Sender) *Commands {
	return &Commands{sender: s}
}

// Sender returns the underlying Sender.
func (c *Commands) Sender() Sender {
	return c.sender
}

// Copy copies the value stored at source to destination. Optional
// modifiers are added on the returned builder before Execute.
//
// See https://redis.io/commands/copy/
func (c *Commands) Copy(source, destination string) *CopyCmd {
	return &CopyCmd{
		sender: c.sender,
		cmd:    resp.Cmd("COPY").Key(source).Arg(destination),
	}
}

// Del removes the specified keys; keys that do not exist are ignored.
// Returns the number of keys that were removed.
//
// See https://redis.io/commands/del/
func (c *Commands) Del(ctx context.Context, keys ...string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("DEL").Keys(keys...), resp.Value.AsInt64)
}

// Dump serializes the value stored at key in the store-specific format
// and returns the raw payload, suitable for Restore.
//
// See https://redis.io/commands/dump/
func (c *Commands) Dump(ctx context.Context, key string) ([]byte, error) {
	return Do(ctx, c.sender, resp.Cmd("DUMP").Key(key), resp.Value.AsBytes)
}

// Exists returns the number of keys that exist among those specified.
//
// See https://redis.io/commands/exists/
func (c *Commands) Exists(ctx context.Context, keys ...string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("EXISTS").Keys(keys...), resp.Value.AsInt64)
}

// Expire sets a timeout on key, in seconds. Conditions (NX, XX, GT, LT)
// are applied on the returned builder.
//
// See https://redis.io/commands/expire/
func (c *Commands) Expire(key string, seconds int64) *ExpireCmd {
	return &ExpireCmd{
		sender: c.sender,
		cmd:    resp.Cmd("EXPIRE").Key(key).ArgInt(seconds),
	}
}

// ExpireAt is Expire with an absolute Unix timestamp in seconds. A
// timestamp in the past deletes the key.
//
// See https://redis.io/commands/expireat/
func (c *Commands) ExpireAt(key string, unixSeconds int64) *ExpireCmd {
	return &ExpireCmd{
		sender: c.sender,
		cmd:    resp.Cmd("EXPIREAT").Key(key).ArgInt(unixSeconds),
	}
}

// ExpireTime returns the absolute Unix timestamp, in seconds, at which
// key will expire; -1 if the key has no expiration, -2 if the key does
// not exist.
//
// See https://redis.io/commands/expiretime/
func (c *Commands) ExpireTime(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("EXPIRETIME").Key(key), resp.Value.AsInt64)
}

// Keys returns all keys matching pattern.
//
// See https://redis.io/commands/keys/
func (c *Commands) Keys(ctx context.Context, pattern string) ([]string, error) {
	return Do(ctx, c.sender, resp.Cmd("KEYS").Arg(pattern), func(v resp.Value) ([]string, error) {
		return resp.SliceOf(v, resp.Value.AsString)
	})
}

// Move moves key from the currently selected database to db. Returns
// whether the key was moved.
//
// See https://redis.io/commands/move/
func (c *Commands) Move(ctx context.Context, key string, db int) (bool, error) {
	return Do(ctx, c.sender, resp.Cmd("MOVE").Key(key).ArgInt(int64(db)), resp.Value.AsBool)
}

// ObjectEncoding returns the internal encoding of the object stored at
// key.
//
// See https://redis.io/commands/object-encoding/
func (c *Commands) ObjectEncoding(ctx context.Context, key string) (string, error) {
	return Do(ctx, c.sender, resp.Cmd("OBJECT").Arg("ENCODING").Key(key), resp.Value.AsString)
}

// ObjectFreq returns the logarithmic access frequency counter of the
// object stored at key.
//
// See https://redis.io/commands/object-freq/
func (c *Commands) ObjectFreq(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("OBJECT").Arg("FREQ").Key(key), resp.Value.AsInt64)
}

// ObjectIdleTime returns the seconds since the value stored at key was
// last accessed.
//
// See https://redis.io/commands/object-idletime/
func (c *Commands) ObjectIdleTime(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("OBJECT").Arg("IDLETIME").Key(key), resp.Value.AsInt64)
}

// ObjectRefCount returns the reference count of the value stored at
// key.
//
// See https://redis.io/commands/object-refcount/
func (c *Commands) ObjectRefCount(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("OBJECT").Arg("REFCOUNT").Key(key), resp.Value.AsInt64)
}

// Persist removes the timeout on key. Returns whether a timeout was
// removed.
//
// See https://redis.io/commands/persist/
func (c *Commands) Persist(ctx context.Context, key string) (bool, error) {
	return Do(ctx, c.sender, resp.Cmd("PERSIST").Key(key), resp.Value.AsBool)
}

// PExpire is Expire with the timeout in milliseconds.
//
// See https://redis.io/commands/pexpire/
func (c *Commands) PExpire(key string, milliseconds int64) *ExpireCmd {
	return &ExpireCmd{
		sender: c.sender,
		cmd:    resp.Cmd("PEXPIRE").Key(key).ArgInt(milliseconds),
	}
}

// PExpireAt is ExpireAt with the timestamp in milliseconds.
//
// See https://redis.io/commands/pexpireat/
func (c *Commands) PExpireAt(key string, unixMilliseconds int64) *ExpireCmd {
	return &ExpireCmd{
		sender: c.sender,
		cmd:    resp.Cmd("PEXPIREAT").Key(key).ArgInt(unixMilliseconds),
	}
}

// PExpireTime is ExpireTime with the timestamp in milliseconds.
//
// See https://redis.io/commands/pexpiretime/
func (c *Commands) PExpireTime(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("PEXPIRETIME").Key(key), resp.Value.AsInt64)
}

// PTTL returns the remaining time to live of key in milliseconds; -1 if
// the key has no expiration, -2 if the key does not exist.
//
// See https://redis.io/commands/pttl/
func (c *Commands) PTTL(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("PTTL").Key(key), resp.Value.AsInt64)
}

// RandomKey returns a random key from the currently selected database,
// or nil when the database is empty.
//
// See https://redis.io/commands/randomkey/
func (c *Commands) RandomKey(ctx context.Context) (*string, error) {
	return Do(ctx, c.sender, resp.Cmd("RANDOMKEY"), func(v resp.Value) (*string, error) {
		return resp.OptionalOf(v, resp.Value.AsString)
	})
}

// Rename renames key to newKey. It fails when key does not exist.
//
// See https://redis.io/commands/rename/
func (c *Commands) Rename(ctx context.Context, key, newKey string) error {
	return doUnit(ctx, c.sender, resp.Cmd("RENAME").Key(key).Arg(newKey))
}

// RenameNX renames key to newKey only when newKey does not yet exist.
// Returns whether the key was renamed.
//
// See https://redis.io/commands/renamenx/
func (c *Commands) RenameNX(ctx context.Context, key, newKey string) (bool, error) {
	return Do(ctx, c.sender, resp.Cmd("RENAMENX").Key(key).Arg(newKey), resp.Value.AsBool)
}

// Restore creates key from a payload previously produced by Dump. The
// ttl is in milliseconds; 0 means no expiration. Optional modifiers are
// added on the returned builder.
//
// See https://redis.io/commands/restore/
func (c *Commands) Restore(key string, ttl int64, payload []byte) *RestoreCmd {
	return &RestoreCmd{
		sender: c.sender,
		cmd:    resp.Cmd("RESTORE").Key(key).ArgInt(ttl).ArgBytes(payload),
	}
}

// Scan starts or resumes an incremental key-space scan at cursor. The
// cursor is caller-held state: pass 0 to start, then the cursor from
// the previous result until it comes back as 0.
//
// See https://redis.io/commands/scan/
func (c *Commands) Scan(cursor uint64) *ScanCmd {
	return &ScanCmd{
		sender: c.sender,
		cmd:    resp.Cmd("SCAN").ArgUint(cursor),
	}
}

// TTL returns the remaining time to live of key in seconds; -1 if the
// key has no expiration, -2 if the key does not exist.
//
// See https://redis.io/commands/ttl/
func (c *Commands) TTL(ctx context.Context, key string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("TTL").Key(key), resp.Value.AsInt64)
}

// Type returns the type name of the value stored at key (string, list,
// set, zset, hash, stream).
//
// See https://redis.io/commands/type/
func (c *Commands) Type(ctx context.Context, key string) (string, error) {
	return Do(ctx, c.sender, resp.Cmd("TYPE").Key(key), resp.Value.AsString)
}

// Unlink removes the specified keys like Del, but reclaims memory
// asynchronously on the server. The two are distinct wire commands with
// different server-side execution semantics, so both are exposed.
// Returns the number of keys that were unlinked.
//
// See https://redis.io/commands/unlink/
func (c *Commands) Unlink(ctx context.Context, keys ...string) (int64, error) {
	return Do(ctx, c.sender, resp.Cmd("UNLINK").Keys(keys...), resp.Value.AsInt64)
}

// CopyCmd builds a COPY command. Modifier methods append their tokens
// in call order, which is the wire order; the builder does not check
// flag combinations — invalid ones are rejected by the server.
type CopyCmd struct {
	sender Sender
	cmd    *resp.Command
}

// DB routes the destination key to an alternative logical database.
func (c *CopyCmd) DB(destinationDB int) *CopyCmd {
	c.cmd.Arg("DB").ArgInt(int64(destinationDB))
	return c
}

// Replace removes the destination key before copying.
func (c *CopyCmd) Replace() *CopyCmd {
	c.cmd.Arg("REPLACE")
	return c
}

// Execute submits the command. Returns whether the value was copied.
func (c *CopyCmd) Execute(ctx context.Context) (bool, error) {
	return Do(ctx, c.sender, c.cmd, resp.Value.AsBool)
}

// ExpireCmd builds an EXPIRE-family command. At most one of the
// condition methods is meaningful per command; the server rejects
// conflicting conditions. Each condition method is terminal: it appends
// its token and submits.
type ExpireCmd struct {
	sender Sender
	cmd    *resp.Command
}

// NX sets the expiry only when the key has none.
func (e *ExpireCmd) NX(ctx context.Context) (bool, error) {
	return Do(ctx, e.sender, e.cmd.Arg("NX"), resp.Value.AsBool)
}

// XX sets the expiry only when the key already has one.
func (e *ExpireCmd) XX(ctx context.Context) (bool, error) {
	return Do(ctx, e.sender, e.cmd.Arg("XX"), resp.Value.AsBool)
}

// GT sets the expiry only when it is greater than the current one.
func (e *ExpireCmd) GT(ctx context.Context) (bool, error) {
	return Do(ctx, e.sender, e.cmd.Arg("GT"), resp.Value.AsBool)
}

// LT sets the expiry only when it is less than the current one.
func (e *ExpireCmd) LT(ctx context.Context) (bool, error) {
	return Do(ctx, e.sender, e.cmd.Arg("LT"), resp.Value.AsBool)
}

// Execute submits the command unconditionally. Returns whether the
// timeout was set.
func (e *ExpireCmd) Execute(ctx context.Context) (bool, error) {
	return Do(ctx, e.sender, e.cmd, resp.Value.AsBool)
}

// RestoreCmd builds a RESTORE command.
type RestoreCmd struct {
	sender Sender
	cmd    *resp.Command
}

// Replace overwrites the key if it already exists.
func (r *RestoreCmd) Replace() *RestoreCmd {
	r.cmd.Arg("REPLACE")
	return r
}

// AbsTTL makes the ttl an absolute Unix timestamp in milliseconds.
func (r *RestoreCmd) AbsTTL() *RestoreCmd {
	r.cmd.Arg("ABSTTL")
	return r
}

// IdleTime seeds the object's idle time, for eviction purposes.
func (r *RestoreCmd) IdleTime(seconds int64) *RestoreCmd {
	r.cmd.Arg("IDLETIME").ArgInt(seconds)
	return r
}

// Freq seeds the object's access frequency, for eviction purposes.
func (r *RestoreCmd) Freq(frequency float64) *RestoreCmd {
	r.cmd.Arg("FREQ").ArgFloat(frequency)
	return r
}

// Execute submits the command.
func (r *RestoreCmd) Execute(ctx context.Context) error {
	return doUnit(ctx, r.sender, r.cmd)
}

// ScanResult is one page of an incremental scan. Cursor 0 signals that
// the scan is complete; any other value resumes it. Keys may be empty
// on any page, including pages with a nonzero cursor.
type ScanResult struct {
	Cursor uint64
	Keys   []string
}

// ScanCmd builds a SCAN command.
type ScanCmd struct {
	sender Sender
	cmd    *resp.Command
}

// Match filters returned keys by a glob pattern.
func (s *ScanCmd) Match(pattern string) *ScanCmd {
	s.cmd.Arg("MATCH").Arg(pattern)
	return s
}

// Count hints the amount of work per call. It is a hint only; pages of
// any size must be expected.
func (s *ScanCmd) Count(count int64) *ScanCmd {
	s.cmd.Arg("COUNT").ArgInt(count)
	return s
}

// Type restricts the scan to objects of the given type.
func (s *ScanCmd) Type(typeName string) *ScanCmd {
	s.cmd.Arg("TYPE").Arg(typeName)
	return s
}

// Execute submits the command and decodes the (cursor, batch) pair.
func (s *ScanCmd) Execute(ctx context.Context) (ScanResult, error) {
	return Do(ctx, s.sender, s.cmd, func(v resp.Value) (ScanResult, error) {
		cursor, keys, err := resp.CursorPageOf(v, resp.Value.AsString)
		if err != nil {
			return ScanResult{}, err
		}
		return ScanResult{Cursor: cursor, Keys: keys}, nil
	})
}
