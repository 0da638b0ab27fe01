package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationErrorMessage(t *testing.T) {
	v := &ValidationError{}
	assert.True(t, v.Empty())
	assert.Equal(t, "validation failed", v.Error())

	v.Add("room_type", "The room type field is required.")
	v.Add("price", "The price field must be at least 0.")
	assert.Equal(t, "The price field must be at least 0. (and room_type)", v.Error())
}

func TestTakenIsDuplicate(t *testing.T) {
	err := fmt.Errorf("create: %w", Taken("room_number", "room number"))
	assert.True(t, stderrors.Is(err, ErrDuplicate))
	assert.Equal(t, "The room number has already been taken.", stderrors.Unwrap(err).Error())

	plain := NewValidationError("room_type", "The selected room type is invalid.")
	assert.False(t, stderrors.Is(plain, ErrDuplicate))
	assert.False(t, stderrors.Is(plain, ErrNotFound))
}
