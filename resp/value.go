package resp

import (
	"fmt"
	"strconv"
	"strings"
)

// ValueType identifies the shape of a reply value.
type ValueType byte

const (
	TypeSimpleString ValueType = '+'
	TypeError        ValueType = '-'
	TypeInteger      ValueType = ':'
	TypeBulkString   ValueType = '$'
	TypeArray        ValueType = '*'
)

// Value is one decoded wire reply. Exactly one variant holds at a time:
// a simple string or error carries Data, an integer carries Integer, a
// bulk string carries Data (raw bytes, no assumed encoding), an array
// carries Array. Null marks the nil reply for bulk strings and arrays.
type Value struct {
	Type    ValueType
	Data    []byte
	Integer int64
	Array   []Value
	Null    bool
}

// IsNull reports whether the value is a nil reply.
func (v Value) IsNull() bool {
	return v.Null
}

// IsError reports whether the value is a store-reported error.
func (v Value) IsError() bool {
	return v.Type == TypeError
}

func (v Value) String() string {
	switch v.Type {
	case TypeSimpleString, TypeError:
		return string(v.Data)
	case TypeInteger:
		return strconv.FormatInt(v.Integer, 10)
	case TypeBulkString:
		if v.Null {
			return "(nil)"
		}
		return string(v.Data)
	case TypeArray:
		if v.Null {
			return "(nil)"
		}
		parts := make([]string, len(v.Array))
		for i, item := range v.Array {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("unknown type %c", v.Type)
	}
}

// typeName returns a human-readable shape name for conversion errors.
func (v Value) typeName() string {
	if v.Null {
		return "nil"
	}
	switch v.Type {
	case TypeSimpleString:
		return "simple string"
	case TypeError:
		return "error"
	case TypeInteger:
		return "integer"
	case TypeBulkString:
		return "bulk string"
	case TypeArray:
		return "array"
	default:
		return fmt.Sprintf("unknown (%c)", v.Type)
	}
}
