package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrSeatTaken  = apperr.Conflict("seat is already taken on this flight")
	ErrFlightFull = apperr.Conflict("flight is at full capacity")
)

type TicketRepository interface {
	// Create inserts the ticket unless the flight already holds capacity tickets.
	Create(ctx context.Context, t *domain.Ticket, capacity int) error
	Get(ctx context.Context, name string) (*domain.Ticket, error)
	ListByFlight(ctx context.Context, flight string) ([]domain.Ticket, error)
	CountByFlight(ctx context.Context, flight string) (int, error)
	SeatTaken(ctx context.Context, flight, seat string) (bool, error)
	Update(ctx context.Context, t *domain.Ticket) error
}

type PGTicketRepository struct {
	db *pgxpool.Pool
}

func NewTicketRepository(db *pgxpool.Pool) TicketRepository {
	return &PGTicketRepository{db: db}
}

const ticketColumns = `name, passenger, flight, flight_price_cents, add_ons, total_amount_cents, seat, gate_number,
	source_airport_code, destination_airport_code, departure_date, departure_time, duration_seconds, status, docstatus,
	created_at, updated_at`

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var t domain.Ticket
	err := row.Scan(&t.Name, &t.Passenger, &t.Flight, &t.FlightPriceCents, &t.AddOns, &t.TotalAmountCents, &t.Seat, &t.GateNumber,
		&t.SourceAirportCode, &t.DestinationAirportCode, &t.DepartureDate, &t.DepartureTime, &t.DurationSeconds, &t.Status, &t.DocStatus,
		&t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PGTicketRepository) Create(ctx context.Context, t *domain.Ticket, capacity int) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		// Row lock serialises concurrent bookings on the same flight.
		if _, err := tx.Exec(ctx, `SELECT 1 FROM flights WHERE name=$1 FOR UPDATE`, t.Flight); err != nil {
			return err
		}

		var count int
		if err := tx.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE flight=$1 AND docstatus <> 2`, t.Flight).Scan(&count); err != nil {
			return err
		}
		if domain.Overcapacity(count, capacity) {
			return ErrFlightFull
		}

		row := tx.QueryRow(ctx, `INSERT INTO tickets (passenger, flight, flight_price_cents, add_ons, total_amount_cents, seat, gate_number,
			source_airport_code, destination_airport_code, departure_date, departure_time, duration_seconds, status, docstatus)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING name, created_at, updated_at`,
			t.Passenger, t.Flight, t.FlightPriceCents, t.AddOns, t.TotalAmountCents, t.Seat, t.GateNumber,
			t.SourceAirportCode, t.DestinationAirportCode, t.DepartureDate, t.DepartureTime, t.DurationSeconds, t.Status, t.DocStatus)
		if err := row.Scan(&t.Name, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return seatError(err, "")
		}
		return nil
	})
}

func (r *PGTicketRepository) Get(ctx context.Context, name string) (*domain.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE name=$1`, name))
	if err != nil {
		return nil, mapError(err, "Airplane Ticket", name)
	}
	return t, nil
}

func (r *PGTicketRepository) ListByFlight(ctx context.Context, flight string) ([]domain.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE flight=$1 ORDER BY name`, flight)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tickets := make([]domain.Ticket, 0)
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		tickets = append(tickets, *t)
	}
	return tickets, rows.Err()
}

func (r *PGTicketRepository) CountByFlight(ctx context.Context, flight string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT count(*) FROM tickets WHERE flight=$1 AND docstatus <> 2`, flight).Scan(&count)
	return count, err
}

func (r *PGTicketRepository) SeatTaken(ctx context.Context, flight, seat string) (bool, error) {
	var taken bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tickets WHERE flight=$1 AND seat=$2)`, flight, seat).Scan(&taken)
	return taken, err
}

func (r *PGTicketRepository) Update(ctx context.Context, t *domain.Ticket) error {
	row := r.db.QueryRow(ctx, `UPDATE tickets SET add_ons=$2, total_amount_cents=$3, seat=$4, gate_number=$5, status=$6, docstatus=$7,
		updated_at=now() WHERE name=$1 RETURNING updated_at`,
		t.Name, t.AddOns, t.TotalAmountCents, t.Seat, t.GateNumber, t.Status, t.DocStatus)
	return seatError(row.Scan(&t.UpdatedAt), t.Name)
}

// seatError reports a (flight, seat) unique violation as ErrSeatTaken.
func seatError(err error, name string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrSeatTaken
	}
	return mapError(err, "Airplane Ticket", name)
}

var _ TicketRepository = (*PGTicketRepository)(nil)
