package scoring

import (
	"errors"
	"fmt"
)

// ErrScoringFailed is matched by every error returned from this package.
var ErrScoringFailed = errors.New("scoring failed")

type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindComputation   Kind = "computation"
)

type Error struct {
	Kind          Kind
	Questionnaire string
	Message       string
	Err           error
}

func (e *Error) Error() string {
	prefix := fmt.Sprintf("%s: %s error", ErrScoringFailed, e.Kind)
	if e.Questionnaire != "" {
		prefix = fmt.Sprintf("%s in %q", prefix, e.Questionnaire)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", prefix, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	return target == ErrScoringFailed
}

func configurationError(questionnaire, message string) *Error {
	return &Error{Kind: KindConfiguration, Questionnaire: questionnaire, Message: message}
}

func computationError(questionnaire, message string) *Error {
	return &Error{Kind: KindComputation, Questionnaire: questionnaire, Message: message}
}

// IsConfiguration reports whether err is a scoring error caused by the
// questionnaire configuration rather than by the responses.
func IsConfiguration(err error) bool {
	var scoringErr *Error
	return errors.As(err, &scoringErr) && scoringErr.Kind == KindConfiguration
}

// IsComputation reports whether err is a scoring error caused by response data.
func IsComputation(err error) bool {
	var scoringErr *Error
	return errors.As(err, &scoringErr) && scoringErr.Kind == KindComputation
}
