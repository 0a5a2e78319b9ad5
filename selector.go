package rustis

import (
	"github.com/zeebo/xxh3"

	"github.com/muenchow/rustis/internal"
)

// SelectServerFunc picks the server index for a routing key. It is
// called with serverCount >= 2 and must return an index in
// [0, serverCount).
type SelectServerFunc func(key string, serverCount int) int

// DefaultSelectServer uses Jump consistent hashing over an xxh3 key
// hash. Jump hash gives even distribution and moves few keys when the
// address list grows or shrinks.
func DefaultSelectServer(key string, serverCount int) int {
	return internal.JumpHash(xxh3.HashString(key), serverCount)
}

// staticSelector is used in tests to pin commands to one server.
func staticSelector(index int) SelectServerFunc {
	return func(key string, serverCount int) int {
		return index % serverCount
	}
}
