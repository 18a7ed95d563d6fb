package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewTicketRepository(t *testing.T) {
	pool := &pgxpool.Pool{}
	repo := NewTicketRepository(pool)
	assert.NotNil(t, repo)
}

func TestSeatError(t *testing.T) {
	err := seatError(&pgconn.PgError{Code: uniqueViolation, ConstraintName: "tickets_flight_seat_key"}, "")
	assert.True(t, errors.Is(err, ErrSeatTaken))
	assert.NoError(t, seatError(nil, "TICKET-00001"))
}
