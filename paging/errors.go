package paging

import (
	"errors"
	"fmt"
)

// ErrorCode represents different types of simulator errors
type ErrorCode int

const (
	// Generic errors
	ErrCodeUnknown ErrorCode = iota
	ErrCodeInternal

	// Setup errors
	ErrCodeInvalidConfig

	// Input layer errors
	ErrCodeInputParse

	// Address translation errors
	ErrCodeBounds

	// Replacement errors
	ErrCodeUnreachableState

	// Event log errors
	ErrCodeEventLogCorrupted
	ErrCodeExportFailed
)

// String returns string representation of ErrorCode
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInternal:
		return "INTERNAL"
	case ErrCodeInvalidConfig:
		return "INVALID_CONFIG"
	case ErrCodeInputParse:
		return "INPUT_PARSE"
	case ErrCodeBounds:
		return "BOUNDS"
	case ErrCodeUnreachableState:
		return "UNREACHABLE_STATE"
	case ErrCodeEventLogCorrupted:
		return "EVENT_LOG_CORRUPTED"
	case ErrCodeExportFailed:
		return "EXPORT_FAILED"
	default:
		return "UNKNOWN"
	}
}

// SimError represents a simulator error with context
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a specific error code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulator error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

// Sentinels usable with errors.Is; only the code is compared.
var (
	ErrInvalidConfig    = &SimError{Code: ErrCodeInvalidConfig, Message: "invalid configuration"}
	ErrInputParse       = &SimError{Code: ErrCodeInputParse, Message: "invalid input"}
	ErrBounds           = &SimError{Code: ErrCodeBounds, Message: "address out of bounds"}
	ErrUnreachableState = &SimError{Code: ErrCodeUnreachableState, Message: "unreachable state"}
)

// BoundsError carries the offending values of a failed translation.
// Limit is -1 when the segment index itself is out of range.
type BoundsError struct {
	Segment int
	Offset  int
	Limit   int
}

func (e *BoundsError) Error() string {
	if e.Limit < 0 {
		return fmt.Sprintf("segment %d does not exist", e.Segment)
	}
	return fmt.Sprintf("offset %d outside segment %d (limit %d)", e.Offset, e.Segment, e.Limit)
}

// Helper functions for common errors

func ErrInvalidConfiguration(op, reason string) *SimError {
	return NewSimError(ErrCodeInvalidConfig, op, reason, nil)
}

func ErrParse(op, input string, err error) *SimError {
	return NewSimError(
		ErrCodeInputParse,
		op,
		fmt.Sprintf("cannot parse %q", input),
		err,
	)
}

func ErrAddressBounds(op string, segment, offset, limit int) *SimError {
	return NewSimError(
		ErrCodeBounds,
		op,
		"invalid segment or offset",
		&BoundsError{Segment: segment, Offset: offset, Limit: limit},
	)
}

func ErrNoVictim(op string, page Page, policy Policy) *SimError {
	return NewSimError(
		ErrCodeUnreachableState,
		op,
		fmt.Sprintf("no victim for page %d under %s with a full grid", page, policy),
		nil,
	)
}

func ErrEventLogCorrupted(op, reason string) *SimError {
	return NewSimError(ErrCodeEventLogCorrupted, op, reason, nil)
}

func ErrExport(op string, err error) *SimError {
	return NewSimError(
		ErrCodeExportFailed,
		op,
		"event log export failed",
		err,
	)
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}
