package resp

import "fmt"

// StoreError is an error reply from the store, carrying the server's
// message verbatim. It fails every conversion regardless of the
// requested target type. The client never interprets or retries based
// on its content.
type StoreError struct {
	Message string
}

func (e *StoreError) Error() string {
	return "rustis: store error: " + e.Message
}

// ConversionError reports that a reply value does not match the shape
// the requested target type demands. It is deterministic and not
// retryable: it indicates the wrong type was requested for the command,
// not a runtime condition.
type ConversionError struct {
	Target string // requested native type
	Shape  string // actual reply shape
	Reason string // optional detail (e.g. invalid UTF-8)
}

func (e *ConversionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("rustis: cannot decode %s reply into %s: %s", e.Shape, e.Target, e.Reason)
	}
	return fmt.Sprintf("rustis: cannot decode %s reply into %s", e.Shape, e.Target)
}

// conversionError builds a ConversionError for a value decoded into target.
func conversionError(v Value, target string) error {
	return &ConversionError{Target: target, Shape: v.typeName()}
}

// ParseError reports a malformed reply stream. The connection state is
// uncertain after a parse error and the connection must be closed.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return "rustis: parse error: " + e.Message + ": " + e.Err.Error()
	}
	return "rustis: parse error: " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
