// Package errors defines DPML's error taxonomy (spec §7) and renders errors
// with source context, line/column information, and a caret pointing at the
// offending position.
package errors

import (
	"fmt"
	"strings"
)

// Kind identifies which class of error occurred, matching the taxonomy table
// in spec §7. Callers can type-switch on Kind without parsing messages.
type Kind string

const (
	MalformedLine          Kind = "MALFORMED_LINE"
	UnterminatedBlock      Kind = "UNTERMINATED_BLOCK"
	UnknownType            Kind = "UNKNOWN_TYPE"
	UnknownPrefix          Kind = "UNKNOWN_PREFIX"
	DimMismatch            Kind = "DIM_MISMATCH"
	UnbalancedParen        Kind = "UNBALANCED_PAREN"
	InvalidCast            Kind = "INVALID_CAST"
	UndefinedRequired      Kind = "UNDEFINED_REQUIRED"
	DimOutOfRange          Kind = "DIM_OUT_OF_RANGE"
	OptionViolation        Kind = "OPTION_VIOLATION"
	UndefinedNodeModified  Kind = "UNDEFINED_NODE_MODIFIED"
	TypeChangeRejected     Kind = "TYPE_CHANGE_REJECTED"
	OptionUnsupported      Kind = "OPTION_UNSUPPORTED"
	InvalidCondition       Kind = "INVALID_CONDITION"
	BadImportCardinality   Kind = "BAD_IMPORT_CARDINALITY"
	NoLocalNodes           Kind = "NO_LOCAL_NODES"
	NonBoolExpression      Kind = "NON_BOOL_EXPRESSION"
	DuplicateUnit          Kind = "DUPLICATE_UNIT"
	ImportCycleOrDepth     Kind = "IMPORT_CYCLE_OR_DEPTH"
)

// Position locates an error within a source text.
type Position struct {
	Source string // file path, or "inline"/"expression"/"template" for non-file sources
	Line   int
	Column int // 0 when not meaningfully column-addressable (e.g. whole-line errors)
}

func (p Position) String() string {
	if p.Source == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.Source, p.Line, p.Column)
}

// DPMLError is the single error type returned by every internal package.
type DPMLError struct {
	Kind    Kind
	Pos     Position
	Message string
	Detail  string // extra structured detail (e.g. the offending value/options), optional
	Source  string // full source text, for caret rendering; may be empty
	Wrapped error
}

// New creates a DPMLError without source-context rendering.
func New(kind Kind, pos Position, message string) *DPMLError {
	return &DPMLError{Kind: kind, Pos: pos, Message: message}
}

// Newf creates a DPMLError with a formatted message.
func Newf(kind Kind, pos Position, format string, args ...any) *DPMLError {
	return &DPMLError{Kind: kind, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// WithSource attaches the full source text so Format can render a context line.
func (e *DPMLError) WithSource(source string) *DPMLError {
	e.Source = source
	return e
}

// WithDetail attaches structured extra detail (e.g. an option list) to the error.
func (e *DPMLError) WithDetail(detail string) *DPMLError {
	e.Detail = detail
	return e
}

// Wrap records a lower-level error this one was derived from, preserving it for errors.Is/As.
func Wrap(kind Kind, pos Position, message string, wrapped error) *DPMLError {
	return &DPMLError{Kind: kind, Pos: pos, Message: message, Wrapped: wrapped}
}

// Error implements the error interface.
func (e *DPMLError) Error() string {
	msg := fmt.Sprintf("[%s] %s: %s", e.Kind, e.Pos.String(), e.Message)
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	return msg
}

// Unwrap exposes the wrapped error to errors.Is/errors.As.
func (e *DPMLError) Unwrap() error {
	return e.Wrapped
}

// Format renders the error with a source line and caret, matching the
// teacher's CompilerError.Format. If color is true, ANSI codes highlight the
// caret and message.
func (e *DPMLError) Format(color bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error in %s [%s]\n", e.Pos.String(), e.Kind))

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		if e.Pos.Column > 0 {
			sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(e.Message)
	if e.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(e.Detail)
		sb.WriteString(")")
	}
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *DPMLError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
