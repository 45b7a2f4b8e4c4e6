package reporting

import (
	"errors"
	"fmt"
)

// Failure kinds of the report pipeline. Parse failures are detected before
// any fetch happens; fetch failures never yield a partial report.
var (
	// ErrInvalidDate marks a malformed or calendar-impossible date, or a
	// range whose resolved start falls after its end.
	ErrInvalidDate = errors.New("invalid calendar date")
	// ErrUnknownMonth marks a month word that is not in the configured
	// token set.
	ErrUnknownMonth = errors.New("unknown month token")
	// ErrUnrecognizedFormat marks an argument that matches no grammar form.
	ErrUnrecognizedFormat = errors.New("unrecognized date expression")
	// ErrDataSourceUnavailable marks a failed lead fetch.
	ErrDataSourceUnavailable = errors.New("lead data source unavailable")
)

// ParseError wraps a parse failure kind together with the offending
// expression so the caller can echo it back to the operator.
type ParseError struct {
	Err        error
	Expression string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err.Error(), e.Expression)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newParseError(kind error, expression string) error {
	return &ParseError{Err: kind, Expression: expression}
}

// ExpressionFromError extracts the original expression from a parse error,
// if the error carries one.
func ExpressionFromError(err error) (string, bool) {
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Expression, true
	}
	return "", false
}
