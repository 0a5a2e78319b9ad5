package rustis

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/muenchow/rustis/resp"
)

// recordingSender captures every command and replies from a scripted
// queue. An empty reply queue answers +OK to everything.
type recordingSender struct {
	commands []*resp.Command
	replies  []resp.Value
	err      error
}

func (r *recordingSender) Send(ctx context.Context, cmd *resp.Command) (resp.Value, error) {
	r.commands = append(r.commands, cmd)
	if r.err != nil {
		return resp.Value{}, r.err
	}
	if len(r.replies) == 0 {
		return okReply(), nil
	}
	reply := r.replies[0]
	r.replies = r.replies[1:]
	return reply, nil
}

func (r *recordingSender) reply(values ...resp.Value) *recordingSender {
	r.replies = append(r.replies, values...)
	return r
}

func (r *recordingSender) lastCommand(t *testing.T) *resp.Command {
	t.Helper()
	require.NotEmpty(t, r.commands)
	return r.commands[len(r.commands)-1]
}

// requireTokens asserts the command name and the exact token sequence.
func requireTokens(t *testing.T, cmd *resp.Command, name string, tokens ...string) {
	t.Helper()
	require.Equal(t, name, cmd.Name)
	var got []string
	for _, tok := range cmd.Args.Tokens() {
		got = append(got, string(tok))
	}
	if len(tokens) == 0 {
		require.Empty(t, got)
		return
	}
	require.Equal(t, tokens, got)
}

func okReply() resp.Value {
	return resp.Value{Type: resp.TypeSimpleString, Data: []byte("OK")}
}

func intReply(n int64) resp.Value {
	return resp.Value{Type: resp.TypeInteger, Integer: n}
}

func bulkReply(s string) resp.Value {
	return resp.Value{Type: resp.TypeBulkString, Data: []byte(s)}
}

func nullReply() resp.Value {
	return resp.Value{Type: resp.TypeBulkString, Null: true}
}

func errReply(msg string) resp.Value {
	return resp.Value{Type: resp.TypeError, Data: []byte(msg)}
}

func arrayReply(vs ...resp.Value) resp.Value {
	return resp.Value{Type: resp.TypeArray, Array: vs}
}

// fakeServer accepts connections and answers each incoming command
// with the next raw reply from the script, in arrival order across the
// whole server.
type fakeServer struct {
	listener net.Listener
	script   chan string
	done     chan struct{}
}

func newFakeServer(t *testing.T, rawReplies ...string) *fakeServer {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	s := &fakeServer{
		listener: listener,
		script:   make(chan string, len(rawReplies)),
		done:     make(chan struct{}),
	}
	for _, raw := range rawReplies {
		s.script <- raw
	}

	go s.serve()
	t.Cleanup(s.close)
	return s
}

func (s *fakeServer) addr() string {
	return s.listener.Addr().String()
}

func (s *fakeServer) serve() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *fakeServer) handle(conn net.Conn) {
	defer conn.Close()
	reader := resp.NewReader(conn)
	for {
		if _, err := reader.ReadValue(); err != nil {
			return
		}
		select {
		case raw := <-s.script:
			if _, err := conn.Write([]byte(raw)); err != nil {
				return
			}
		case <-s.done:
			return
		}
	}
}

func (s *fakeServer) close() {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	s.listener.Close()
}

func dialTestConnection(t *testing.T, addr string) *Connection {
	t.Helper()
	netConn, err := net.Dial("tcp", addr)
	require.NoError(t, err)
	conn := NewConnection(netConn)
	t.Cleanup(func() { conn.Close() })
	return conn
}
