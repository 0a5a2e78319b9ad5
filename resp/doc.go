// Package resp provides a low-level implementation of the RESP wire
// protocol as seen from the client side.
//
// This package serves as a foundation for building higher-level Redis
// clients with different properties (connection pooling, sharding,
// batching, etc.). It focuses on correctness for command serialization
// and reply decoding, without imposing architectural decisions on
// clients.
//
// # Core Types
//
//   - CommandArgs: an ordered, binary-safe list of argument tokens
//   - Command: a command name plus its CommandArgs
//   - Value: a decoded reply (simple string, error, integer, bulk
//     string, array, or null)
//
// # Building Commands
//
// Commands are built with the Cmd constructor and fluent Arg methods:
//
//	cmd := resp.Cmd("EXPIRE").Key("mykey").ArgUint(60).ArgIf(useNX, "NX")
//
// Arguments are appended in call order; that order is the wire order.
// ArgIf is a no-op when its condition is false, which is how optional
// modifiers (NX, REPLACE, COUNT, ...) are expressed without branching.
//
// Composite values implement ToArgs to append themselves:
//
//	cmd := resp.Cmd("DEL").ArgValue(resp.Strings(keys))
//
// # Decoding Replies
//
// Value offers typed conversions that either produce the requested
// native type or fail with a *ConversionError:
//
//	n, err := value.AsInt64()
//	s, err := value.AsString()
//
// Generic helpers cover homogeneous arrays, optional values and
// cursor-style pages:
//
//	keys, err := resp.SliceOf(value, resp.Value.AsString)
//	cursor, batch, err := resp.CursorPageOf(value, resp.Value.AsString)
//
// An error reply fails every conversion with a *StoreError carrying the
// server's message verbatim.
//
// # Serialization and Parsing
//
// Writer serializes commands to the wire, Reader parses replies:
//
//	w := resp.NewWriter(conn)
//	w.WriteCommand(cmd)
//	w.Flush()
//
//	r := resp.NewReader(conn)
//	value, err := r.ReadValue()
//
// # Thread Safety
//
// Command and CommandArgs are not safe for concurrent mutation; each
// command is owned by a single builder chain until it is handed to the
// transport. Writer and Reader are safe as long as each instance is
// used by one goroutine at a time.
package resp
