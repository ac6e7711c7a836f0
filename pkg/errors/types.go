package errors

import (
	stderrors "errors"
	"fmt"
	"runtime"
	"sort"
	"strings"
)

// ErrorCode represents a structured error code
type ErrorCode string

const (
	// Command line errors
	ErrCodeUnknownArgument ErrorCode = "UNKNOWN_ARGUMENT"
	ErrCodeInvalidValue    ErrorCode = "INVALID_VALUE"

	// Configuration errors
	ErrCodeConfigInvalid ErrorCode = "CONFIG_INVALID"
	ErrCodeProfileLoad   ErrorCode = "PROFILE_LOAD"
	ErrCodeProfileReset  ErrorCode = "PROFILE_RESET"

	// Runtime errors
	ErrCodeProvision     ErrorCode = "PROVISION"
	ErrCodeModelAPIError ErrorCode = "MODEL_API_ERROR"
	ErrCodeBudget        ErrorCode = "BUDGET_EXCEEDED"
	ErrCodeExecution     ErrorCode = "EXECUTION"

	// Generic errors
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// Error is a coded error carrying optional context and remediation tips.
type Error struct {
	Code        ErrorCode
	Message     string
	Underlying  error
	Context     map[string]any
	Stack       []Frame
	UserMessage string
	Remediation []string
}

// Frame represents a stack frame
type Frame struct {
	Function string
	File     string
	Line     int
}

// New creates a new structured error
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Context: make(map[string]any),
		Stack:   captureStack(2),
	}
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	err := New(code, fmt.Sprintf(format, args...))
	err.Stack = captureStack(2)
	return err
}

// Wrap wraps an existing error with a code. Wrapping nil returns nil.
func Wrap(err error, code ErrorCode, message string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:       code,
		Message:    message,
		Underlying: err,
		Context:    make(map[string]any),
		Stack:      captureStack(2),
	}
}

// WithContext adds context key-value pairs to the error
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithUserMessage sets the human-friendly message shown on the terminal.
func (e *Error) WithUserMessage(message string) *Error {
	e.UserMessage = message
	return e
}

// WithRemediation replaces the remediation tips for the error.
func (e *Error) WithRemediation(tips ...string) *Error {
	if len(tips) == 0 {
		return e
	}
	e.Remediation = append([]string{}, tips...)
	return e
}

// Error implements the error interface
func (e *Error) Error() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		sb.WriteString(" {")
		for i, k := range keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%s: %v", k, e.Context[k]))
		}
		sb.WriteString("}")
	}

	if e.Underlying != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Underlying))
	}

	return sb.String()
}

// Display renders the error for a terminal user: the user message (or the
// plain message) followed by remediation tips.
func (e *Error) Display() string {
	var sb strings.Builder
	msg := e.UserMessage
	if msg == "" {
		msg = e.Message
		if e.Underlying != nil {
			msg += ": " + e.Underlying.Error()
		}
	}
	sb.WriteString(msg)
	for _, tip := range e.Remediation {
		sb.WriteString("\n  - ")
		sb.WriteString(tip)
	}
	return sb.String()
}

// Unwrap returns the underlying error for errors.Is/As
func (e *Error) Unwrap() error {
	return e.Underlying
}

// StackTrace returns a formatted stack trace
func (e *Error) StackTrace() string {
	var sb strings.Builder

	sb.WriteString("Stack trace:\n")
	for i, frame := range e.Stack {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, frame.String()))
		sb.WriteString(fmt.Sprintf("     %s:%d\n", frame.File, frame.Line))
	}

	return sb.String()
}

// String formats a stack frame
func (f Frame) String() string {
	return f.Function
}

func captureStack(skip int) []Frame {
	const maxDepth = 32
	var pcs [maxDepth]uintptr

	n := runtime.Callers(skip+1, pcs[:])
	frames := make([]Frame, 0, n)

	for i := 0; i < n; i++ {
		fn := runtime.FuncForPC(pcs[i])
		if fn == nil {
			continue
		}
		file, line := fn.FileLine(pcs[i])
		frames = append(frames, Frame{
			Function: fn.Name(),
			File:     file,
			Line:     line,
		})
	}

	return frames
}

// IsCode reports whether err, or anything it wraps, carries code.
func IsCode(err error, code ErrorCode) bool {
	var coded *Error
	if !stderrors.As(err, &coded) {
		return false
	}
	return coded.Code == code
}

// GetCode extracts the error code from an error. Uncoded errors report
// ErrCodeInternal.
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var coded *Error
	if !stderrors.As(err, &coded) {
		return ErrCodeInternal
	}
	return coded.Code
}
