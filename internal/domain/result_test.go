package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Success(t *testing.T) {
	r := Success([]int{1, 2})

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsError())
	assert.NoError(t, r.Err())

	v, ok := r.Value()
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2}, v)
}

func TestResult_Failure(t *testing.T) {
	cause := errors.New("boom")
	r := Failure[[]int](cause)

	assert.True(t, r.IsError())
	assert.False(t, r.IsSuccess())

	v, err := r.Get()
	assert.Nil(t, v)
	assert.ErrorIs(t, err, cause)
}

func TestResult_FailureWithNilCauseStaysError(t *testing.T) {
	r := Failure[string](nil)

	assert.True(t, r.IsError())
	assert.ErrorIs(t, r.Err(), ErrUnknown)
}

func TestResult_StructuralEquality(t *testing.T) {
	assert.Equal(t, Success([]string{"a"}), Success([]string{"a"}))
	assert.NotEqual(t, Success([]string{"a"}), Success([]string{"b"}))
}
