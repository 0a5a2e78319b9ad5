package resp

import (
	"strconv"
	"unicode/utf8"
)

// Typed reply conversions. Each conversion either produces the
// requested native type or fails: an error reply always fails with a
// *StoreError, a shape mismatch always fails with a *ConversionError.
// Nothing is silently coerced.
//
// Method values satisfy the generic decode signature, so conversions
// compose with the collection helpers:
//
//	keys, err := resp.SliceOf(v, resp.Value.AsString)

// AsInt64 converts an integer reply. Negative sentinel values (-1, -2)
// are returned as-is; interpreting them is the caller's concern.
func (v Value) AsInt64() (int64, error) {
	if v.Type == TypeError {
		return 0, &StoreError{Message: string(v.Data)}
	}
	if v.Type != TypeInteger || v.Null {
		return 0, conversionError(v, "int64")
	}
	return v.Integer, nil
}

// AsUint64 converts a non-negative integer reply.
func (v Value) AsUint64() (uint64, error) {
	if v.Type == TypeError {
		return 0, &StoreError{Message: string(v.Data)}
	}
	if v.Type != TypeInteger || v.Null {
		return 0, conversionError(v, "uint64")
	}
	if v.Integer < 0 {
		return 0, &ConversionError{Target: "uint64", Shape: v.typeName(), Reason: "negative value"}
	}
	return uint64(v.Integer), nil
}

// AsBool converts an integer reply: nonzero is true, zero is false.
// Used by commands that report success as 0/1.
func (v Value) AsBool() (bool, error) {
	n, err := v.AsInt64()
	if err != nil {
		return false, err
	}
	return n != 0, nil
}

// AsString converts a bulk or simple string reply to text. The bytes
// must form valid UTF-8; raw binary payloads are decoded with AsBytes.
func (v Value) AsString() (string, error) {
	b, err := v.AsBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &ConversionError{Target: "string", Shape: v.typeName(), Reason: "invalid UTF-8"}
	}
	return string(b), nil
}

// AsBytes converts a bulk or simple string reply to its raw bytes, with
// no assumed text encoding. This is the conversion for serialized
// payloads such as DUMP output.
func (v Value) AsBytes() ([]byte, error) {
	if v.Type == TypeError {
		return nil, &StoreError{Message: string(v.Data)}
	}
	if v.Null || (v.Type != TypeBulkString && v.Type != TypeSimpleString) {
		return nil, conversionError(v, "bytes")
	}
	return v.Data, nil
}

// AsUnit discards the reply. It fails only for error replies, which
// surface the store's message regardless of the requested target.
func (v Value) AsUnit() error {
	if v.Type == TypeError {
		return &StoreError{Message: string(v.Data)}
	}
	return nil
}

// SliceOf converts an array reply into an ordered slice, decoding each
// element independently with decode. Element order and length are
// preserved exactly. If any element fails, the whole conversion fails
// and no partial result is returned. A null array decodes to nil.
func SliceOf[T any](v Value, decode func(Value) (T, error)) ([]T, error) {
	if v.Type == TypeError {
		return nil, &StoreError{Message: string(v.Data)}
	}
	if v.Type != TypeArray {
		return nil, conversionError(v, "slice")
	}
	if v.Null {
		return nil, nil
	}
	out := make([]T, len(v.Array))
	for i, item := range v.Array {
		decoded, err := decode(item)
		if err != nil {
			return nil, err
		}
		out[i] = decoded
	}
	return out, nil
}

// OptionalOf maps a nil reply to a nil pointer; any other reply is
// decoded with decode. This is the conversion for targets that declare
// optionality — a nil reply into a non-optional conversion is an error.
func OptionalOf[T any](v Value, decode func(Value) (T, error)) (*T, error) {
	if v.Type == TypeError {
		return nil, &StoreError{Message: string(v.Data)}
	}
	if v.Null {
		return nil, nil
	}
	decoded, err := decode(v)
	if err != nil {
		return nil, err
	}
	return &decoded, nil
}

// CursorPageOf converts the two-element array used by cursor-style
// iteration: element 0 is the next cursor, element 1 the batch of
// matches. A cursor of 0 signals scan completion. Batches of any size
// are accepted; fewer than two array elements is a conversion error.
func CursorPageOf[T any](v Value, decode func(Value) (T, error)) (uint64, []T, error) {
	if v.Type == TypeError {
		return 0, nil, &StoreError{Message: string(v.Data)}
	}
	if v.Type != TypeArray || v.Null {
		return 0, nil, conversionError(v, "cursor page")
	}
	if len(v.Array) < 2 {
		return 0, nil, &ConversionError{Target: "cursor page", Shape: v.typeName(), Reason: "array has fewer than 2 elements"}
	}
	cursor, err := v.Array[0].asCursor()
	if err != nil {
		return 0, nil, err
	}
	batch, err := SliceOf(v.Array[1], decode)
	if err != nil {
		return 0, nil, err
	}
	return cursor, batch, nil
}

// asCursor accepts the cursor in either integer or bulk string form;
// servers reply with a bulk string ("0") for SCAN.
func (v Value) asCursor() (uint64, error) {
	if v.Type == TypeInteger {
		return v.AsUint64()
	}
	s, err := v.AsString()
	if err != nil {
		return 0, err
	}
	cursor, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, &ConversionError{Target: "cursor", Shape: v.typeName(), Reason: "not a decimal integer: " + err.Error()}
	}
	return cursor, nil
}
