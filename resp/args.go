package resp

import (
	"strconv"
	"strings"
)

// CommandArgs is an ordered collection of binary-safe argument tokens.
//
// The zero value is ready to use. Tokens are appended in call order and
// that order is the wire order. A CommandArgs is owned by a single
// in-progress Command until the command is handed to the transport; it
// is not safe for concurrent mutation.
type CommandArgs struct {
	tokens [][]byte
}

// ToArgs is implemented by values that can append themselves to a
// CommandArgs as one or more tokens. Encoding never fails.
type ToArgs interface {
	WriteArgs(args *CommandArgs)
}

// Add appends a value through its ToArgs capability.
func (a *CommandArgs) Add(v ToArgs) *CommandArgs {
	v.WriteArgs(a)
	return a
}

// AddIf appends a value only when cond is true, otherwise it is a no-op.
// The resulting token sequence with cond=false is identical to omitting
// the call entirely.
func (a *CommandArgs) AddIf(cond bool, v ToArgs) *CommandArgs {
	if cond {
		v.WriteArgs(a)
	}
	return a
}

// AddString appends one token holding the UTF-8 bytes of s.
func (a *CommandArgs) AddString(s string) *CommandArgs {
	a.tokens = append(a.tokens, []byte(s))
	return a
}

// AddBytes appends one token holding a copy of b. The token is binary
// safe; no text encoding is assumed.
func (a *CommandArgs) AddBytes(b []byte) *CommandArgs {
	a.tokens = append(a.tokens, append([]byte(nil), b...))
	return a
}

// AddInt64 appends one token holding the decimal rendering of n.
func (a *CommandArgs) AddInt64(n int64) *CommandArgs {
	a.tokens = append(a.tokens, strconv.AppendInt(nil, n, 10))
	return a
}

// AddUint64 appends one token holding the decimal rendering of n.
func (a *CommandArgs) AddUint64(n uint64) *CommandArgs {
	a.tokens = append(a.tokens, strconv.AppendUint(nil, n, 10))
	return a
}

// AddFloat64 appends one token holding the shortest decimal rendering
// of f. The format is locale independent and never uses an exponent.
func (a *CommandArgs) AddFloat64(f float64) *CommandArgs {
	a.tokens = append(a.tokens, strconv.AppendFloat(nil, f, 'f', -1, 64))
	return a
}

// AddStrings appends one token per element in order.
func (a *CommandArgs) AddStrings(ss ...string) *CommandArgs {
	for _, s := range ss {
		a.AddString(s)
	}
	return a
}

// Len returns the number of tokens.
func (a *CommandArgs) Len() int {
	return len(a.tokens)
}

// IsEmpty reports whether no tokens have been appended.
func (a *CommandArgs) IsEmpty() bool {
	return len(a.tokens) == 0
}

// Tokens returns the token list in wire order. The returned slices are
// the collection's backing storage; callers must not mutate them.
func (a *CommandArgs) Tokens() [][]byte {
	return a.tokens
}

func (a *CommandArgs) String() string {
	var sb strings.Builder
	for i, tok := range a.tokens {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.Write(tok)
	}
	return sb.String()
}

// String is a single text token.
type String string

func (s String) WriteArgs(args *CommandArgs) { args.AddString(string(s)) }

// BulkString is a single binary-safe token, used for raw payloads such
// as DUMP/RESTORE serialized values.
type BulkString []byte

func (b BulkString) WriteArgs(args *CommandArgs) { args.AddBytes(b) }

// Int is a single decimal integer token.
type Int int64

func (n Int) WriteArgs(args *CommandArgs) { args.AddInt64(int64(n)) }

// Uint is a single decimal integer token.
type Uint uint64

func (n Uint) WriteArgs(args *CommandArgs) { args.AddUint64(uint64(n)) }

// Float is a single decimal floating point token.
type Float float64

func (f Float) WriteArgs(args *CommandArgs) { args.AddFloat64(float64(f)) }

// Strings appends one token per element in order. It covers the
// "one key or many keys" argument shape: a single key and a one-element
// collection produce identical token sequences.
type Strings []string

func (ss Strings) WriteArgs(args *CommandArgs) { args.AddStrings(ss...) }

// List is an ordered collection of encodable values, appended in order.
type List[T ToArgs] []T

func (l List[T]) WriteArgs(args *CommandArgs) {
	for _, v := range l {
		v.WriteArgs(args)
	}
}
