package task

import "errors"

var ErrNotFound = errors.New("task not found")

// ValidationError reports a submitted field that violates a task rule.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Outcome is the closed set of results a repository call can produce.
type Outcome int

const (
	OK Outcome = iota
	Invalid
	NotFound
	Unexpected
)

func (o Outcome) String() string {
	switch o {
	case OK:
		return "ok"
	case Invalid:
		return "invalid"
	case NotFound:
		return "not_found"
	default:
		return "error"
	}
}

// Classify maps an error returned by the repository, or by payload decoding, to its Outcome.
func Classify(err error) Outcome {
	if err == nil {
		return OK
	}
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return Invalid
	case errors.Is(err, ErrNotFound):
		return NotFound
	default:
		return Unexpected
	}
}
