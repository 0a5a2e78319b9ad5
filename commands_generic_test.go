package rustis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muenchow/rustis/resp"
)

func TestCopy(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	copied, err := db.Copy("src", "dst").Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, copied)
	requireTokens(t, sender.lastCommand(t), "COPY", "src", "dst")
}

func TestCopyWithModifiers(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	_, err := db.Copy("src", "dst").DB(3).Replace().Execute(context.Background())
	require.NoError(t, err)
	requireTokens(t, sender.lastCommand(t), "COPY", "src", "dst", "DB", "3", "REPLACE")
}

func TestCopyNotCopied(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(0))
	db := NewCommands(sender)

	copied, err := db.Copy("src", "dst").Execute(context.Background())
	require.NoError(t, err)
	assert.False(t, copied)
}

func TestDel(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(2))
	db := NewCommands(sender)

	removed, err := db.Del(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)
	requireTokens(t, sender.lastCommand(t), "DEL", "a", "b", "c")
}

func TestDelSingleKey(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	_, err := db.Del(context.Background(), "a")
	require.NoError(t, err)
	requireTokens(t, sender.lastCommand(t), "DEL", "a")
}

func TestUnlink(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(3))
	db := NewCommands(sender)

	removed, err := db.Unlink(context.Background(), "a", "b", "c")
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	requireTokens(t, sender.lastCommand(t), "UNLINK", "a", "b", "c")
}

func TestDump(t *testing.T) {
	payload := []byte{0x00, 0xc0, '\r', '\n', 0xff}
	sender := (&recordingSender{}).reply(resp.Value{Type: resp.TypeBulkString, Data: payload})
	db := NewCommands(sender)

	got, err := db.Dump(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, payload, got)
	requireTokens(t, sender.lastCommand(t), "DUMP", "key")
}

func TestExists(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	n, err := db.Exists(context.Background(), "a", "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	requireTokens(t, sender.lastCommand(t), "EXISTS", "a", "missing")
}

func TestExpire(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	set, err := db.Expire("key", 60).Execute(context.Background())
	require.NoError(t, err)
	assert.True(t, set)
	requireTokens(t, sender.lastCommand(t), "EXPIRE", "key", "60")
}

func TestExpireConditions(t *testing.T) {
	tests := []struct {
		name  string
		run   func(e *ExpireCmd, ctx context.Context) (bool, error)
		token string
	}{
		{"NX", (*ExpireCmd).NX, "NX"},
		{"XX", (*ExpireCmd).XX, "XX"},
		{"GT", (*ExpireCmd).GT, "GT"},
		{"LT", (*ExpireCmd).LT, "LT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := (&recordingSender{}).reply(intReply(1))
			db := NewCommands(sender)

			set, err := tt.run(db.Expire("key", 15), context.Background())
			require.NoError(t, err)
			assert.True(t, set)
			requireTokens(t, sender.lastCommand(t), "EXPIRE", "key", "15", tt.token)
		})
	}
}

func TestExpireConditionNotMet(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(0))
	db := NewCommands(sender)

	set, err := db.Expire("key", 15).GT(context.Background())
	require.NoError(t, err)
	assert.False(t, set)
}

func TestExpireFamilyNames(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1), intReply(1), intReply(1))
	db := NewCommands(sender)
	ctx := context.Background()

	_, err := db.ExpireAt("key", 1735689600).Execute(ctx)
	require.NoError(t, err)
	requireTokens(t, sender.commands[0], "EXPIREAT", "key", "1735689600")

	_, err = db.PExpire("key", 1500).Execute(ctx)
	require.NoError(t, err)
	requireTokens(t, sender.commands[1], "PEXPIRE", "key", "1500")

	_, err = db.PExpireAt("key", 1735689600000).Execute(ctx)
	require.NoError(t, err)
	requireTokens(t, sender.commands[2], "PEXPIREAT", "key", "1735689600000")
}

func TestTTLSentinels(t *testing.T) {
	tests := []struct {
		name  string
		reply int64
	}{
		{"remaining", 42},
		{"no expiry", -1},
		{"missing key", -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := (&recordingSender{}).reply(intReply(tt.reply))
			db := NewCommands(sender)

			ttl, err := db.TTL(context.Background(), "key")
			require.NoError(t, err)
			assert.Equal(t, tt.reply, ttl)
			requireTokens(t, sender.lastCommand(t), "TTL", "key")
		})
	}
}

func TestPTTL(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1500))
	db := NewCommands(sender)

	ttl, err := db.PTTL(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, int64(1500), ttl)
	requireTokens(t, sender.lastCommand(t), "PTTL", "key")
}

func TestExpireTime(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1735689600), intReply(1735689600000))
	db := NewCommands(sender)
	ctx := context.Background()

	at, err := db.ExpireTime(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, int64(1735689600), at)
	requireTokens(t, sender.commands[0], "EXPIRETIME", "key")

	at, err = db.PExpireTime(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, int64(1735689600000), at)
	requireTokens(t, sender.commands[1], "PEXPIRETIME", "key")
}

func TestKeys(t *testing.T) {
	sender := (&recordingSender{}).reply(arrayReply(bulkReply("a"), bulkReply("b")))
	db := NewCommands(sender)

	keys, err := db.Keys(context.Background(), "user:*")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	requireTokens(t, sender.lastCommand(t), "KEYS", "user:*")
}

func TestMove(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	moved, err := db.Move(context.Background(), "key", 2)
	require.NoError(t, err)
	assert.True(t, moved)
	requireTokens(t, sender.lastCommand(t), "MOVE", "key", "2")
}

func TestObjectSubcommands(t *testing.T) {
	sender := (&recordingSender{}).reply(bulkReply("listpack"), intReply(4), intReply(120), intReply(1))
	db := NewCommands(sender)
	ctx := context.Background()

	encoding, err := db.ObjectEncoding(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, "listpack", encoding)
	requireTokens(t, sender.commands[0], "OBJECT", "ENCODING", "key")

	_, err = db.ObjectFreq(ctx, "key")
	require.NoError(t, err)
	requireTokens(t, sender.commands[1], "OBJECT", "FREQ", "key")

	_, err = db.ObjectIdleTime(ctx, "key")
	require.NoError(t, err)
	requireTokens(t, sender.commands[2], "OBJECT", "IDLETIME", "key")

	_, err = db.ObjectRefCount(ctx, "key")
	require.NoError(t, err)
	requireTokens(t, sender.commands[3], "OBJECT", "REFCOUNT", "key")
}

func TestPersist(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(1))
	db := NewCommands(sender)

	removed, err := db.Persist(context.Background(), "key")
	require.NoError(t, err)
	assert.True(t, removed)
	requireTokens(t, sender.lastCommand(t), "PERSIST", "key")
}

func TestRandomKey(t *testing.T) {
	sender := (&recordingSender{}).reply(bulkReply("some-key"))
	db := NewCommands(sender)

	key, err := db.RandomKey(context.Background())
	require.NoError(t, err)
	require.NotNil(t, key)
	assert.Equal(t, "some-key", *key)
	requireTokens(t, sender.lastCommand(t), "RANDOMKEY")
}

func TestRandomKeyEmptyDatabase(t *testing.T) {
	sender := (&recordingSender{}).reply(nullReply())
	db := NewCommands(sender)

	key, err := db.RandomKey(context.Background())
	require.NoError(t, err)
	assert.Nil(t, key)
}

func TestRename(t *testing.T) {
	sender := &recordingSender{}
	db := NewCommands(sender)

	err := db.Rename(context.Background(), "old", "new")
	require.NoError(t, err)
	requireTokens(t, sender.lastCommand(t), "RENAME", "old", "new")
}

func TestRenameMissingKey(t *testing.T) {
	sender := (&recordingSender{}).reply(errReply("ERR no such key"))
	db := NewCommands(sender)

	err := db.Rename(context.Background(), "old", "new")
	var storeErr *resp.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "ERR no such key", storeErr.Message)
}

func TestRenameNX(t *testing.T) {
	sender := (&recordingSender{}).reply(intReply(0))
	db := NewCommands(sender)

	renamed, err := db.RenameNX(context.Background(), "old", "new")
	require.NoError(t, err)
	assert.False(t, renamed)
	requireTokens(t, sender.lastCommand(t), "RENAMENX", "old", "new")
}

func TestRestore(t *testing.T) {
	payload := []byte{0x00, 0xc3, 0xff}
	sender := &recordingSender{}
	db := NewCommands(sender)

	err := db.Restore("key", 0, payload).Execute(context.Background())
	require.NoError(t, err)

	cmd := sender.lastCommand(t)
	require.Equal(t, "RESTORE", cmd.Name)
	toks := cmd.Args.Tokens()
	require.Len(t, toks, 3)
	assert.Equal(t, "key", string(toks[0]))
	assert.Equal(t, "0", string(toks[1]))
	assert.Equal(t, payload, toks[2])
}

func TestRestoreWithModifiers(t *testing.T) {
	sender := &recordingSender{}
	db := NewCommands(sender)

	err := db.Restore("key", 5000, []byte("p")).
		Replace().
		AbsTTL().
		IdleTime(30).
		Freq(2.5).
		Execute(context.Background())
	require.NoError(t, err)
	requireTokens(t, sender.lastCommand(t), "RESTORE",
		"key", "5000", "p", "REPLACE", "ABSTTL", "IDLETIME", "30", "FREQ", "2.5")
}

func TestScan(t *testing.T) {
	sender := (&recordingSender{}).reply(
		arrayReply(bulkReply("17"), arrayReply(bulkReply("a"), bulkReply("b"))),
	)
	db := NewCommands(sender)

	page, err := db.Scan(0).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(17), page.Cursor)
	assert.Equal(t, []string{"a", "b"}, page.Keys)
	requireTokens(t, sender.lastCommand(t), "SCAN", "0")
}

func TestScanWithModifiers(t *testing.T) {
	sender := (&recordingSender{}).reply(
		arrayReply(bulkReply("0"), arrayReply()),
	)
	db := NewCommands(sender)

	page, err := db.Scan(17).Match("user:*").Count(100).Type("string").Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), page.Cursor)
	assert.Len(t, page.Keys, 0)
	requireTokens(t, sender.lastCommand(t), "SCAN",
		"17", "MATCH", "user:*", "COUNT", "100", "TYPE", "string")
}

func TestScanEmptyDatabase(t *testing.T) {
	sender := (&recordingSender{}).reply(arrayReply(bulkReply("0"), arrayReply()))
	db := NewCommands(sender)

	page, err := db.Scan(0).Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(0), page.Cursor)
	assert.Empty(t, page.Keys)
}

func TestScanLoop(t *testing.T) {
	sender := (&recordingSender{}).reply(
		arrayReply(bulkReply("42"), arrayReply(bulkReply("a"))),
		arrayReply(bulkReply("0"), arrayReply(bulkReply("b"))),
	)
	db := NewCommands(sender)
	ctx := context.Background()

	var keys []string
	var cursor uint64
	for {
		page, err := db.Scan(cursor).Execute(ctx)
		require.NoError(t, err)
		keys = append(keys, page.Keys...)
		if page.Cursor == 0 {
			break
		}
		cursor = page.Cursor
	}

	assert.Equal(t, []string{"a", "b"}, keys)
	requireTokens(t, sender.commands[0], "SCAN", "0")
	requireTokens(t, sender.commands[1], "SCAN", "42")
}

func TestType(t *testing.T) {
	sender := (&recordingSender{}).reply(resp.Value{Type: resp.TypeSimpleString, Data: []byte("string")})
	db := NewCommands(sender)

	typeName, err := db.Type(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, "string", typeName)
	requireTokens(t, sender.lastCommand(t), "TYPE", "key")
}

func TestTransportErrorPropagates(t *testing.T) {
	transportErr := errors.New("broken pipe")
	sender := &recordingSender{err: transportErr}
	db := NewCommands(sender)

	_, err := db.TTL(context.Background(), "key")
	assert.ErrorIs(t, err, transportErr)
}

func TestConversionMismatch(t *testing.T) {
	// TTL expects an integer; a bulk string reply is a decode failure,
	// not a silent coercion.
	sender := (&recordingSender{}).reply(bulkReply("42"))
	db := NewCommands(sender)

	_, err := db.TTL(context.Background(), "key")
	var convErr *resp.ConversionError
	require.ErrorAs(t, err, &convErr)
}
