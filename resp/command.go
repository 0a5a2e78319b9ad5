package resp

// Command is a command name plus its arguments: one fully-formed
// request. The name is set once at construction; arguments are appended
// through the fluent Arg methods in the exact order they must appear on
// the wire.
//
// A Command is owned by a single builder chain and must not be mutated
// after it has been handed to the transport.
type Command struct {
	Name string
	Args CommandArgs

	routingKey string
}

// Cmd creates a command with the given name. It is pure and reentrant;
// no process-wide state is involved.
func Cmd(name string) *Command {
	return &Command{Name: name}
}

// Arg appends one text token.
func (c *Command) Arg(token string) *Command {
	c.Args.AddString(token)
	return c
}

// Key appends one text token and records it as the command's routing
// key. It is used for the key argument; positional tokens that are not
// keys (cursors, patterns, modifier values) go through Arg.
func (c *Command) Key(key string) *Command {
	c.Args.AddString(key)
	if c.routingKey == "" {
		c.routingKey = key
	}
	return c
}

// Keys appends one token per key in order and records the first as the
// routing key.
func (c *Command) Keys(keys ...string) *Command {
	if len(keys) > 0 && c.routingKey == "" {
		c.routingKey = keys[0]
	}
	c.Args.AddStrings(keys...)
	return c
}

// ArgBytes appends one binary-safe token.
func (c *Command) ArgBytes(b []byte) *Command {
	c.Args.AddBytes(b)
	return c
}

// ArgInt appends one decimal integer token.
func (c *Command) ArgInt(n int64) *Command {
	c.Args.AddInt64(n)
	return c
}

// ArgUint appends one decimal integer token.
func (c *Command) ArgUint(n uint64) *Command {
	c.Args.AddUint64(n)
	return c
}

// ArgFloat appends one decimal floating point token.
func (c *Command) ArgFloat(f float64) *Command {
	c.Args.AddFloat64(f)
	return c
}

// ArgStrings appends one token per element in order.
func (c *Command) ArgStrings(tokens ...string) *Command {
	c.Args.AddStrings(tokens...)
	return c
}

// ArgValue appends a value through its ToArgs capability.
func (c *Command) ArgValue(v ToArgs) *Command {
	c.Args.Add(v)
	return c
}

// ArgIf appends one text token only when cond is true. This is how
// optional modifiers (NX, REPLACE, ABSTTL, ...) are expressed without
// branching command construction.
func (c *Command) ArgIf(cond bool, token string) *Command {
	c.Args.AddIf(cond, String(token))
	return c
}

// RoutingKey returns the key recorded by Key or Keys, used by sharded
// clients to pick a server. It is empty for keyless commands (SCAN,
// FLUSHDB, RANDOMKEY, ...), whose argument tokens (cursors, modes,
// patterns) must not influence routing.
func (c *Command) RoutingKey() string {
	return c.routingKey
}

func (c *Command) String() string {
	if c.Args.IsEmpty() {
		return c.Name
	}
	return c.Name + " " + c.Args.String()
}
