package apperr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalid(t *testing.T) {
	err := Invalid(errors.New("title is required"))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "invalid input: title is required", err.Error())
}

func TestStore(t *testing.T) {
	cause := errors.New("disk full")
	err := Store(cause)
	assert.ErrorIs(t, err, ErrStore)
	assert.ErrorIs(t, err, cause)

	// Already-classified errors are not wrapped twice.
	assert.Same(t, err, Store(err))
	assert.NoError(t, Store(nil))
}
