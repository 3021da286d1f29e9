package errors

import (
	stderrors "errors"
	"fmt"
)

// Is and As re-export the standard helpers so callers need one import
var (
	Is = stderrors.Is
	As = stderrors.As
)

// ResolutionError reports that a signature source could not locate a callable
type ResolutionError struct {
	*BaseError
	Target     string   // the requested callable reference
	Candidates []string // qualified names that matched ambiguously
}

// NewResolutionError creates an error for a target that matched nothing
func NewResolutionError(target string) *ResolutionError {
	err := &ResolutionError{
		BaseError: New(ResolutionErrorCode, fmt.Sprintf("callable '%s' not found", target)),
		Target:    target,
	}
	err.WithContext("target", target)
	err.WithSuggestion("use the qualified form 'Receiver.Method' for methods")
	return err
}

// NewAmbiguousResolutionError creates an error for a bare name shared by
// several callables
func NewAmbiguousResolutionError(target string, candidates []string) *ResolutionError {
	err := &ResolutionError{
		BaseError:  New(ResolutionErrorCode, fmt.Sprintf("callable '%s' is ambiguous", target)),
		Target:     target,
		Candidates: candidates,
	}
	err.WithContext("target", target)
	err.WithContext("candidates", candidates)
	for _, candidate := range candidates {
		err.WithSuggestion(fmt.Sprintf("did you mean '%s'?", candidate))
	}
	return err
}

// IsResolution reports whether err is a resolution failure
func IsResolution(err error) bool {
	var resolution *ResolutionError
	return As(err, &resolution)
}

// SyntaxError represents a Go source file that could not be parsed
type SyntaxError struct {
	*BaseError
}

// NewSyntaxError creates a new syntax error
func NewSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		BaseError: New(SyntaxErrorCode, message),
	}
}

// ValidationError reports an invalid configuration or input value
type ValidationError struct {
	*BaseError
	Field    string // field that failed validation
	Expected string // what was expected
	Actual   string // what was provided
}

// NewValidationError creates a new validation error
func NewValidationError(field, expected, actual string) *ValidationError {
	message := fmt.Sprintf("validation failed for field '%s': expected %s, got %s", field, expected, actual)

	return &ValidationError{
		BaseError: New(ValidationErrorCode, message),
		Field:     field,
		Expected:  expected,
		Actual:    actual,
	}
}
