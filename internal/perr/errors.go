// Package perr defines the error taxonomy shared by the wire codec, the
// message runtime and the code generator. Every constructor attaches a
// stack trace via github.com/pkg/errors so that a logged "%+v" of a
// generator failure points at the call site, while callers that only
// care about the message (e.g. the plugin response's error field) can
// keep using Error().
package perr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an error into one of the taxonomy buckets from the
// error-handling design.
type Kind int

const (
	_ Kind = iota
	FieldValidation
	Value
	MessageEncode
	MessageDecode
	NotImplemented
)

func (k Kind) String() string {
	switch k {
	case FieldValidation:
		return "FieldValidationError"
	case Value:
		return "ValueError"
	case MessageEncode:
		return "MessageEncodeError"
	case MessageDecode:
		return "MessageDecodeError"
	case NotImplemented:
		return "NotImplementedError"
	default:
		return "Error"
	}
}

// E is a taxonomy error: Kind is its bucket, and Subkind further
// classifies decode/encode errors, e.g. MissingRequiredField.
type E struct {
	Kind    Kind
	Subkind string
	msg     string
	cause   error
}

func (e *E) Error() string {
	if e.Subkind != "" {
		return fmt.Sprintf("%s(%s): %s", e.Kind, e.Subkind, e.msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.msg)
}

func (e *E) Unwrap() error { return e.cause }

func newErr(k Kind, subkind, format string, args ...interface{}) error {
	e := &E{Kind: k, Subkind: subkind, msg: fmt.Sprintf(format, args...)}
	return errors.WithStack(e)
}

func FieldValidationError(format string, args ...interface{}) error {
	return newErr(FieldValidation, "", format, args...)
}

func ValueError(format string, args ...interface{}) error {
	return newErr(Value, "", format, args...)
}

func MissingRequiredField(format string, args ...interface{}) error {
	return newErr(MessageEncode, "MissingRequiredField", format, args...)
}

func DecodeMissingRequiredField(format string, args ...interface{}) error {
	return newErr(MessageDecode, "MissingRequiredField", format, args...)
}

func TruncatedVarint() error {
	return newErr(MessageDecode, "TruncatedVarint", "unexpected end of input while reading varint")
}

func VarintOverflow() error {
	return newErr(MessageDecode, "VarintOverflow", "varint exceeds 10 bytes maximum length")
}

func UnexpectedEOF(format string, args ...interface{}) error {
	return newErr(MessageDecode, "UnexpectedEof", format, args...)
}

func WireTypeMismatch(format string, args ...interface{}) error {
	return newErr(MessageDecode, "WireTypeMismatch", format, args...)
}

func GroupWireTypeUnsupported() error {
	return newErr(MessageDecode, "GroupWireTypeUnsupported", "group wire types are not implemented")
}

func NotImplementedError(format string, args ...interface{}) error {
	return newErr(NotImplemented, "", format, args...)
}

func NoSuchOneOf(name string) error {
	return newErr(Value, "NoSuchOneOf", "no such one-of group %q", name)
}

// Is reports whether err (or any error in its chain) has the given Kind.
func Is(err error, k Kind) bool {
	var e *E
	for err != nil {
		if ee, ok := err.(*E); ok {
			e = ee
			break
		}
		err = errors.Unwrap(err)
	}
	return e != nil && e.Kind == k
}

// Wrap annotates err with additional context, preserving the taxonomy kind
// if err is (or wraps) an *E.
func Wrap(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(err, format, args...)
}
