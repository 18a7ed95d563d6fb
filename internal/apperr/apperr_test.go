package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[VALIDATION_ERROR] end date must be after start date",
		Validation("end date must be after start date").Error())

	wrapped := Internal("load lease", errors.New("connection reset"))
	assert.Equal(t, "[INTERNAL] load lease: connection reset", wrapped.Error())
	assert.EqualError(t, errors.Unwrap(wrapped), "connection reset")
}

func TestCodeOf(t *testing.T) {
	err := fmt.Errorf("submit lease: %w", NotFound("Room", "DXB101"))

	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeConflict))
	assert.Equal(t, `Room "DXB101" not found`, Message(err))

	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Equal(t, "boom", Message(errors.New("boom")))
	assert.False(t, Is(nil, CodeInternal))
}
