package domain

// Result holds the outcome of a data access operation: either a Success carrying a value
// or an Error carrying a non-nil cause. There is no third state.
type Result[T any] struct {
	value T
	err   error
}

// Success wraps a value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure wraps a cause. A nil cause is replaced by ErrUnknown so the result stays an Error.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrUnknown
	}
	return Result[T]{err: err}
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsError() bool {
	return r.err != nil
}

// Value returns the wrapped value and whether the result is a Success.
func (r Result[T]) Value() (T, bool) {
	return r.value, r.err == nil
}

// Err returns the cause of an Error result, or nil for a Success.
func (r Result[T]) Err() error {
	return r.err
}

// Get unpacks the result into the usual value/error pair.
func (r Result[T]) Get() (T, error) {
	return r.value, r.err
}
