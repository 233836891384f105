package kata

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrExpected      = NewError("expected token")
	ErrUnexpected    = NewError("unexpected token")
	ErrCannotResolve = NewError("cannot resolve variable")
	ErrCannotIterate = NewError("cannot iterate over variable")
	ErrReadInput     = NewError("failed to read input")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an *Error, that value is returned.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same message. Decorated
// copies made by [Error.With] and [Error.Wrap] therefore still match the
// sentinel they were derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg != "" && e.msg == t.msg
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseErrorKind distinguishes the two compile-time failures.
type ParseErrorKind int

const (
	// Expected means a required literal or keyword was missing.
	Expected ParseErrorKind = iota

	// Unexpected means a token appeared where none was valid.
	Unexpected
)

// String returns the kind name.
func (k ParseErrorKind) String() string {
	switch k {
	case Expected:
		return "Expected"
	case Unexpected:
		return "Unexpected"
	default:
		return "Unknown"
	}
}

// ParseError is returned by [Compile] when the template text is malformed.
type ParseError struct {
	Kind   ParseErrorKind
	Pos    int    // Byte offset into Source
	Token  string // The expected or unexpected token description
	Source string // The template text being compiled
}

func newParseError(kind ParseErrorKind, pos int, token, source string) *ParseError {
	return &ParseError{
		Kind:   kind,
		Pos:    pos,
		Token:  token,
		Source: source,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	var verb string

	switch e.Kind {
	case Unexpected:
		verb = "unexpected"
	default:
		verb = "expected"
	}

	return verb + " '" + e.Token + "' at pos " + strconv.Itoa(e.Pos)
}

// Unwrap returns the sentinel matching the error kind, so callers can use
// errors.Is(err, ErrExpected) or errors.Is(err, ErrUnexpected).
func (e *ParseError) Unwrap() error {
	if e.Kind == Unexpected {
		return ErrUnexpected
	}

	return ErrExpected
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Error()),
		slog.String("kind", e.Kind.String()),
		slog.String("token", e.Token),
		slog.Int("pos", e.Pos),
		slog.Int("line", e.Line()),
		slog.Int("column", e.Column()),
	)
}

// Line returns the 1-based line number containing Pos.
func (e *ParseError) Line() int {
	return strings.Count(e.Source[:e.clamp()], "\n") + 1
}

// Column returns the 1-based byte column of Pos within its line.
func (e *ParseError) Column() int {
	pos := e.clamp()

	return pos - (strings.LastIndexByte(e.Source[:pos], '\n') + 1) + 1
}

// Snippet renders the offending source line with a caret under Pos:
//
//	  3 | {{ foreach x items }}
//	                 ^
//
// The result is empty if Source is empty.
func (e *ParseError) Snippet() string {
	if e.Source == "" {
		return ""
	}

	line := e.Line()
	lines := strings.Split(e.Source, "\n")

	var src strings.Builder

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(line))
	src.WriteString(" | ")
	src.WriteString(lines[line-1])
	src.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)
	padding += strings.Repeat(" ", e.Column()-1)

	src.WriteString(padding + "^\n")

	return src.String()
}

func (e *ParseError) clamp() int {
	return max(0, min(e.Pos, len(e.Source)))
}

// RenderErrorKind distinguishes the two render-time failures.
type RenderErrorKind int

const (
	// CannotResolve means a parameter path has no binding.
	CannotResolve RenderErrorKind = iota

	// CannotIterate means a foreach source is missing or not an array.
	CannotIterate
)

// String returns the kind name.
func (k RenderErrorKind) String() string {
	switch k {
	case CannotResolve:
		return "CannotResolve"
	case CannotIterate:
		return "CannotIterate"
	default:
		return "Unknown"
	}
}

// RenderError is returned by [Template.Render] when the context does not
// satisfy the template's data requirements.
type RenderError struct {
	Kind RenderErrorKind
	Key  string   // The foreach source key (CannotIterate)
	Path []string // The parameter path (CannotResolve)
}

// Error implements the error interface.
func (e *RenderError) Error() string {
	if e.Kind == CannotIterate {
		return "cannot iterate over variable '" + e.Key + "'"
	}

	return "cannot resolve variable at path '" + strings.Join(e.Path, ".") + "'"
}

// Unwrap returns the sentinel matching the error kind.
func (e *RenderError) Unwrap() error {
	if e.Kind == CannotIterate {
		return ErrCannotIterate
	}

	return ErrCannotResolve
}

// LogValue implements slog.LogValuer.
func (e *RenderError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("error", e.Error()),
		slog.String("kind", e.Kind.String()),
	}

	if e.Kind == CannotIterate {
		attrs = append(attrs, slog.String("key", e.Key))
	} else {
		attrs = append(attrs, slog.Any("path", e.Path))
	}

	return slog.GroupValue(attrs...)
}
