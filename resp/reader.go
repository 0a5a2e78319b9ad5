package resp

import (
	"bufio"
	"bytes"
	"io"
	"strconv"
)

const (
	// crlf terminates every RESP line.
	crlf = "\r\n"

	// maxBulkSize caps bulk string payloads (512MB, the server limit).
	maxBulkSize = 512 * 1024 * 1024

	// maxArraySize caps array replies to bound memory on a corrupted
	// stream.
	maxArraySize = 1024 * 1024
)

// Reader parses RESP replies from a stream into Values. It is the
// decoding boundary the typed conversion layer sits on top of: the
// conversions in decode.go never touch wire bytes.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a reader on top of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// Reset discards buffered state and switches to a new underlying reader.
func (r *Reader) Reset(reader io.Reader) {
	r.br.Reset(reader)
}

// ReadValue reads the next reply from the stream.
//
// Error replies from the store are returned as Values with
// Type == TypeError, not as Go errors; the conversion layer surfaces
// them as *StoreError. Go errors indicate I/O failures or a malformed
// stream (*ParseError), after which the connection must be closed.
func (r *Reader) ReadValue() (Value, error) {
	typeByte, err := r.br.ReadByte()
	if err != nil {
		return Value{}, err
	}

	switch ValueType(typeByte) {
	case TypeSimpleString, TypeError:
		line, err := r.readLine()
		if err != nil {
			return Value{}, err
		}
		return Value{Type: ValueType(typeByte), Data: line}, nil
	case TypeInteger:
		return r.readInteger()
	case TypeBulkString:
		return r.readBulkString()
	case TypeArray:
		return r.readArray()
	default:
		return Value{}, &ParseError{Message: "unknown reply type " + strconv.QuoteRune(rune(typeByte))}
	}
}

func (r *Reader) readInteger() (Value, error) {
	line, err := r.readLine()
	if err != nil {
		return Value{}, err
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return Value{}, &ParseError{Message: "invalid integer reply", Err: err}
	}
	return Value{Type: TypeInteger, Integer: n}, nil
}

func (r *Reader) readBulkString() (Value, error) {
	size, err := r.readSize()
	if err != nil {
		return Value{}, err
	}
	if size == -1 {
		return Value{Type: TypeBulkString, Null: true}, nil
	}
	if size < 0 || size > maxBulkSize {
		return Value{}, &ParseError{Message: "bulk string size out of range: " + strconv.FormatInt(size, 10)}
	}

	// Payload bytes are opaque: no encoding is assumed and embedded
	// CRLFs are preserved.
	data := make([]byte, size)
	if _, err := io.ReadFull(r.br, data); err != nil {
		return Value{}, &ParseError{Message: "short bulk string read", Err: err}
	}
	if err := r.discardCRLF(); err != nil {
		return Value{}, err
	}
	return Value{Type: TypeBulkString, Data: data}, nil
}

func (r *Reader) readArray() (Value, error) {
	size, err := r.readSize()
	if err != nil {
		return Value{}, err
	}
	if size == -1 {
		return Value{Type: TypeArray, Null: true}, nil
	}
	if size < 0 || size > maxArraySize {
		return Value{}, &ParseError{Message: "array size out of range: " + strconv.FormatInt(size, 10)}
	}

	elements := make([]Value, size)
	for i := range elements {
		element, err := r.ReadValue()
		if err != nil {
			return Value{}, err
		}
		elements[i] = element
	}
	return Value{Type: TypeArray, Array: elements}, nil
}

func (r *Reader) readSize() (int64, error) {
	line, err := r.readLine()
	if err != nil {
		return 0, err
	}
	size, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, &ParseError{Message: "invalid size header", Err: err}
	}
	return size, nil
}

// readLine reads up to CRLF and returns the line without the
// terminator.
func (r *Reader) readLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, &ParseError{Message: "line missing CRLF terminator"}
	}
	return bytes.TrimSuffix(line, []byte(crlf)), nil
}

func (r *Reader) discardCRLF() error {
	term := make([]byte, 2)
	if _, err := io.ReadFull(r.br, term); err != nil {
		return &ParseError{Message: "missing bulk string terminator", Err: err}
	}
	if term[0] != '\r' || term[1] != '\n' {
		return &ParseError{Message: "bulk string not terminated by CRLF"}
	}
	return nil
}
