package repository

import (
	"errors"
	"testing"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	assert.NoError(t, mapError(nil, "Room", "JFK1"))

	err := mapError(pgx.ErrNoRows, "Room", "JFK1")
	assert.True(t, apperr.Is(err, apperr.CodeNotFound))
	assert.Equal(t, `Room "JFK1" not found`, apperr.Message(err))

	err = mapError(&pgconn.PgError{Code: uniqueViolation}, "Room", "JFK1")
	assert.True(t, apperr.Is(err, apperr.CodeConflict))

	err = mapError(&pgconn.PgError{Code: foreignKeyViolation}, "Lease", "")
	assert.True(t, apperr.Is(err, apperr.CodeValidation))

	plain := errors.New("boom")
	assert.Same(t, plain, mapError(plain, "Room", "JFK1"))
}
