// Package errors defines the error taxonomy shared by the generation pipeline.
//
// Every failure the core can produce unwraps to exactly one sentinel, so callers
// (the HTTP transport, the CLI) can classify an error with KindOf without
// knowing which stage produced it.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the four failure classes.
var (
	// ErrValidation indicates an invalid or incompatible configuration.
	ErrValidation = errors.New("validation error")

	// ErrAssembly indicates an internal inconsistency between templates.
	ErrAssembly = errors.New("assembly error")

	// ErrPackaging indicates the archive could not be produced.
	ErrPackaging = errors.New("packaging error")

	// ErrRetrieval indicates an unknown or expired artifact identifier.
	ErrRetrieval = errors.New("retrieval error")
)

// Kind classifies an error by the sentinel it wraps.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAssembly
	KindPackaging
	KindRetrieval
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAssembly:
		return "assembly"
	case KindPackaging:
		return "packaging"
	case KindRetrieval:
		return "retrieval"
	default:
		return "internal"
	}
}

// KindOf returns the class of err. Errors that wrap none of the sentinels are
// KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrAssembly):
		return KindAssembly
	case errors.Is(err, ErrPackaging):
		return KindPackaging
	case errors.Is(err, ErrRetrieval):
		return KindRetrieval
	default:
		return KindInternal
	}
}

// Reason is a stable, machine-readable validation failure code.
type Reason string

const (
	ReasonIncompatibleMiddleware      Reason = "IncompatibleMiddleware"
	ReasonIncompatibleStateManagement Reason = "IncompatibleStateManagement"
	ReasonIncompatibleHooksSelection  Reason = "IncompatibleHooksSelection"
	ReasonUnsupportedFrameworkVersion Reason = "UnsupportedFrameworkVersion"
	ReasonUnsupportedHooksMode        Reason = "UnsupportedHooksMode"
	ReasonUnsupportedCSSFramework     Reason = "UnsupportedCSSFramework"
)

// ValidationError describes a rejected configuration.
type ValidationError struct {
	// Reason is the failure code.
	Reason Reason

	// Field is the configuration field that triggered the rejection.
	Field string

	// Value is the normalized value of Field.
	Value string

	// Message is the human-readable description.
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// Unwrap returns ErrValidation.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a ValidationError.
func NewValidationError(reason Reason, field, value, message string) error {
	return &ValidationError{
		Reason:  reason,
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ReasonOf extracts the validation reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason, true
	}
	return "", false
}

// AssemblyError reports a structural defect found while assembling a file tree.
type AssemblyError struct {
	// Path is the generated file the defect was found in (optional).
	Path string

	// Message is the specific description.
	Message string

	// Cause is the underlying error (optional).
	Cause error
}

func (e *AssemblyError) Error() string {
	var b strings.Builder
	b.WriteString("assembling project")
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns ErrAssembly and the cause.
func (e *AssemblyError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrAssembly}
	}
	return []error{ErrAssembly, e.Cause}
}

// NewAssemblyError creates an AssemblyError.
func NewAssemblyError(path, message string, cause error) error {
	return &AssemblyError{Path: path, Message: message, Cause: cause}
}

// PackagingError reports a failure while writing or packing a workspace.
type PackagingError struct {
	// Op is the step that failed (e.g. "writing workspace", "packing archive").
	Op string

	// Cause is the underlying error.
	Cause error
}

func (e *PackagingError) Error() string {
	if e.Cause == nil {
		return "packaging: " + e.Op
	}
	return fmt.Sprintf("packaging: %s: %v", e.Op, e.Cause)
}

// Unwrap returns ErrPackaging and the cause.
func (e *PackagingError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPackaging}
	}
	return []error{ErrPackaging, e.Cause}
}

// NewPackagingError creates a PackagingError.
func NewPackagingError(op string, cause error) error {
	return &PackagingError{Op: op, Cause: cause}
}

// RetrievalError reports an artifact that cannot be served.
type RetrievalError struct {
	// ID is the requested artifact identifier.
	ID string

	// Message is the specific description.
	Message string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("artifact %q: %s", e.ID, e.Message)
}

// Unwrap returns ErrRetrieval.
func (e *RetrievalError) Unwrap() error {
	return ErrRetrieval
}

// NewRetrievalError creates a RetrievalError.
func NewRetrievalError(id, message string) error {
	return &RetrievalError{ID: id, Message: message}
}

// PublicMessage returns the message that may be shown to a remote caller.
// Assembly and packaging details stay internal.
func PublicMessage(err error) string {
	switch KindOf(err) {
	case KindValidation:
		var ve *ValidationError
		if errors.As(err, &ve) {
			return ve.Message
		}
		return "invalid configuration"
	case KindRetrieval:
		return "artifact not found or expired; generate the project again"
	default:
		return "Failed to generate project"
	}
}
