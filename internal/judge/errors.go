package judge

import "errors"

// ErrAuth marks an authentication failure with the judge backend.
// It aborts the run rather than being recorded per example.
var ErrAuth = errors.New("judge authentication failed")

// ErrNoVerdict marks a judge response from which no binary verdict could
// be extracted. The example is excluded from the output, never defaulted
// to a score.
var ErrNoVerdict = errors.New("no verdict in judge response")

// TransientError wraps failures worth retrying: network errors, rate
// limits, server-side errors.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string {
	return "transient judge failure: " + e.Err.Error()
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

func Transient(err error) error {
	return &TransientError{Err: err}
}

func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
