package generation

import "github.com/pkg/errors"

var (
	// ErrGenerationFailed is returned when no attempt produced usable topics
	ErrGenerationFailed = errors.New("generation failed")

	// ErrInvalidResponseShape means a completion succeeded but its JSON is structurally unusable
	ErrInvalidResponseShape = errors.New("invalid response shape")

	// ErrEmptyTopicSet means the topics array was found but held no elements
	ErrEmptyTopicSet = errors.New("empty topic set")
)

// Error describes a failed generation. Kind is one of the sentinels above;
// errors.Is(err, ErrGenerationFailed) holds for every Kind.
type Error struct {
	Kind   error
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	return target == e.Kind || target == ErrGenerationFailed
}

func shapeError(format string, args ...interface{}) error {
	return &Error{Kind: ErrInvalidResponseShape, Detail: errors.Errorf(format, args...).Error()}
}
