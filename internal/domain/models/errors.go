package models

import "github.com/pkg/errors"

var (
	ErrConnectionProblem = errors.New("connection problem")
	ErrServerError       = errors.New("server error")
	ErrNothingFound      = errors.New("nothing found")

	ErrSalaryRange = errors.New("salary lower bound is greater than upper bound")
)

type ErrorType string

const (
	ErrorTypeNone              ErrorType = ""
	ErrorTypeConnectionProblem ErrorType = "CONNECTION_PROBLEM"
	ErrorTypeServerError       ErrorType = "SERVER_ERROR"
	ErrorTypeNothingFound      ErrorType = "NOTHING_FOUND"
)

// ErrorTypeOf classifies an error returned by the transport. Anything that
// is not a known connectivity or empty-result failure counts as a server error.
func ErrorTypeOf(err error) ErrorType {
	switch {
	case err == nil:
		return ErrorTypeNone
	case errors.Is(err, ErrConnectionProblem):
		return ErrorTypeConnectionProblem
	case errors.Is(err, ErrNothingFound):
		return ErrorTypeNothingFound
	default:
		return ErrorTypeServerError
	}
}
