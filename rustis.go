// Package rustis is a typed client-side mapping layer for the RESP
// wire protocol.
//
// Application code expresses operations as native, typed calls; each
// call serializes deterministically into an ordered, binary-safe
// argument list ([resp.Command]) and decodes the store's reply into the
// requested native type, rejecting replies that do not match the
// expected shape.
//
// The mapping layer itself performs no I/O: it builds commands, hands
// them to a [Sender], and converts the reply. [Client] is the bundled
// Sender implementation (pooled connections, optional circuit breaker,
// key-based routing across addresses), but any Sender works:
//
//	client, err := rustis.NewClient(rustis.Config{Addrs: []string{"127.0.0.1:6379"}})
//	if err != nil { ... }
//	defer client.Close()
//
//	db := rustis.NewCommands(client)
//	removed, err := db.Del(ctx, "a", "b")
//	ok, err := db.Expire("a", 60).GT(ctx)
package rustis

import (
	"context"

	"github.com/muenchow/rustis/resp"
)

// Sender submits one fully built command and resolves its reply. It is
// the only I/O boundary the mapping layer touches.
//
// Transport failures are returned unchanged and never retried here;
// retry and backoff policy belongs to the Sender. Multiple commands may
// be in flight through independent Send calls; ordering across
// distinct commands is also the Sender's concern.
type Sender interface {
	Send(ctx context.Context, cmd *resp.Command) (resp.Value, error)
}

// Do submits cmd through s and decodes the reply with decode. Failures
// from either stage propagate uniformly: transport errors unchanged,
// store error replies as *resp.StoreError, shape mismatches as
// *resp.ConversionError.
func Do[T any](ctx context.Context, s Sender, cmd *resp.Command, decode func(resp.Value) (T, error)) (T, error) {
	var zero T
	v, err := s.Send(ctx, cmd)
	if err != nil {
		return zero, err
	}
	return decode(v)
}

// doUnit submits cmd and discards the reply, surfacing store errors.
func doUnit(ctx context.Context, s Sender, cmd *resp.Command) error {
	v, err := s.Send(ctx, cmd)
	if err != nil {
		return err
	}
	return v.AsUnit()
}
