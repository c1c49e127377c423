package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindStructure  ErrKind = iota // required markup missing or never closed
	ErrKindConversion                // cell text cannot be read as the requested type
	ErrKindBounds                    // shared-string or catalog index out of range
	ErrKindStyle                     // unparseable style grammar or facet overflow
	ErrKindState                     // invalid operation for current state (e.g., closed)
)

// String returns the category name.
func (k ErrKind) String() string {
	switch k {
	case ErrKindStructure:
		return "structure"
	case ErrKindConversion:
		return "conversion"
	case ErrKindBounds:
		return "bounds"
	case ErrKindStyle:
		return "style"
	case ErrKindState:
		return "state"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Error is a typed error with an optional underlying cause.
//
// Two *Error values match under errors.Is when their kinds are equal, so
// errors.Is(err, types.ErrBounds) holds for every bounds failure.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e != nil && t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrStructure indicates malformed structural markup.
	ErrStructure = &Error{Kind: ErrKindStructure, Msg: "malformed sheet markup"}
	// ErrConversion indicates a cell value could not be converted.
	ErrConversion = &Error{Kind: ErrKindConversion, Msg: "value conversion failed"}
	// ErrBounds indicates an index beyond the known entries.
	ErrBounds = &Error{Kind: ErrKindBounds, Msg: "index out of range"}
	// ErrStyle indicates an invalid style definition.
	ErrStyle = &Error{Kind: ErrKindStyle, Msg: "invalid style"}
	// ErrClosed indicates use of a reader or writer after Close.
	ErrClosed = &Error{Kind: ErrKindState, Msg: "use of closed handle"}
)

// Structuref builds an ErrKindStructure error.
func Structuref(format string, args ...any) *Error {
	return &Error{Kind: ErrKindStructure, Msg: fmt.Sprintf(format, args...)}
}

// Boundsf builds an ErrKindBounds error.
func Boundsf(format string, args ...any) *Error {
	return &Error{Kind: ErrKindBounds, Msg: fmt.Sprintf(format, args...)}
}

// Stylef builds an ErrKindStyle error.
func Stylef(format string, args ...any) *Error {
	return &Error{Kind: ErrKindStyle, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the category of err. ok is false when err carries no
// typed category.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	var ce *ConversionError
	if errors.As(err, &ce) {
		return ErrKindConversion, true
	}
	return 0, false
}

// ConversionError reports a cell value that could not be read as Target.
// It names the offending text so callers can log it without re-reading the cell.
type ConversionError struct {
	Value  string // raw cell text
	Target string // requested Go type, e.g. "int64"
	Err    error  // optional parse error from strconv
}

func (e *ConversionError) Error() string {
	msg := fmt.Sprintf("cannot convert %q to %s", e.Value, e.Target)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConversionError) Unwrap() error { return e.Err }

// Is matches ErrConversion.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == ErrKindConversion
}

// -----------------------------------------------------------------------------
// Cell value kinds
// -----------------------------------------------------------------------------

// CellType classifies the payload of a decoded cell.
type CellType uint8

const (
	Blank       CellType = iota // no value (styled or absent cell)
	Int                         // integral number that fits int32
	Long                        // integral number that needs int64
	Double                      // number with a fractional part
	Bool                        // t="b"
	SharedText                  // t="s", resolved through the string table
	InlineText                  // t="inlineStr"
	FormulaText                 // t="str", cached formula result
	ErrorText                   // t="e", e.g. #DIV/0!
	Text                        // numeric cell whose text is not a plain number
)

// String implements the Stringer interface for CellType.
func (t CellType) String() string {
	switch t {
	case Blank:
		return "blank"
	case Int:
		return "int"
	case Long:
		return "long"
	case Double:
		return "double"
	case Bool:
		return "bool"
	case SharedText:
		return "shared"
	case InlineText:
		return "inline"
	case FormulaText:
		return "formula"
	case ErrorText:
		return "error"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("UNKNOWN_CELL_TYPE_%d", uint8(t))
	}
}

// IsNumeric reports whether the payload is a parsed number.
func (t CellType) IsNumeric() bool { return t == Int || t == Long || t == Double }

// IsText reports whether the payload is a string of any origin.
func (t CellType) IsText() bool {
	switch t {
	case SharedText, InlineText, FormulaText, ErrorText, Text:
		return true
	}
	return false
}
