package analysis

import (
	"errors"
	"fmt"
)

// Bounds for the number of most frequent words a caller may request.
const (
	MinN = 1
	MaxN = 100
)

// ValidationError reports a caller-supplied value that violates a precondition.
type ValidationError struct {
	Field string // "text", "n", ...
	Value any
	Limit int // violated bound, zero when not applicable
	Msg   string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// AnalysisError reports an analysis step that could not complete on otherwise valid input.
type AnalysisError struct {
	Op  string
	Msg string
	Err error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAnalysis reports whether err is, or wraps, an *AnalysisError.
func IsAnalysis(err error) bool {
	var a *AnalysisError
	return errors.As(err, &a)
}

// ValidateN checks that n lies within [MinN, MaxN].
func ValidateN(n int) error {
	if n < MinN {
		return &ValidationError{Field: "n", Value: n, Limit: MinN,
			Msg: fmt.Sprintf("N must be between %d and %d", MinN, MaxN)}
	}
	if n > MaxN {
		return &ValidationError{Field: "n", Value: n, Limit: MaxN,
			Msg: fmt.Sprintf("N must be between %d and %d", MinN, MaxN)}
	}
	return nil
}

// recoverAnalysis converts a panic in the calling query into an *AnalysisError.
func recoverAnalysis(op, msg string, err *error) {
	r := recover()
	if r == nil {
		return
	}
	cause, ok := r.(error)
	if !ok {
		cause = fmt.Errorf("%v", r)
	}
	*err = &AnalysisError{Op: op, Msg: msg, Err: cause}
}
