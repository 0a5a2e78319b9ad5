package resp

import (
	"bufio"
	"io"
	"strconv"
)

// Writer serializes commands to the RESP wire format.
type Writer struct {
	bw *bufio.Writer
}

// NewWriter creates a writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{bw: bufio.NewWriter(w)}
}

// WriteCommand writes one command as an array of bulk strings: the
// command name followed by every argument token in wire order. Tokens
// are written verbatim, so binary payloads survive untouched.
//
// The command is buffered; call Flush to hand it to the transport.
func (w *Writer) WriteCommand(cmd *Command) error {
	tokens := cmd.Args.Tokens()

	if err := w.writeHeader('*', int64(1+len(tokens))); err != nil {
		return err
	}
	if err := w.writeBulk([]byte(cmd.Name)); err != nil {
		return err
	}
	for _, tok := range tokens {
		if err := w.writeBulk(tok); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered commands to the underlying writer.
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Reset discards buffered state and switches to a new underlying writer.
func (w *Writer) Reset(writer io.Writer) {
	w.bw.Reset(writer)
}

func (w *Writer) writeHeader(prefix byte, n int64) error {
	if err := w.bw.WriteByte(prefix); err != nil {
		return err
	}
	var scratch [20]byte
	if _, err := w.bw.Write(strconv.AppendInt(scratch[:0], n, 10)); err != nil {
		return err
	}
	return w.writeCRLF()
}

func (w *Writer) writeBulk(data []byte) error {
	if err := w.writeHeader('$', int64(len(data))); err != nil {
		return err
	}
	if _, err := w.bw.Write(data); err != nil {
		return err
	}
	return w.writeCRLF()
}

func (w *Writer) writeCRLF() error {
	_, err := w.bw.WriteString(crlf)
	return err
}
