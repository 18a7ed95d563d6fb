package repository

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FlightRepository interface {
	Create(ctx context.Context, f *domain.Flight) error
	Get(ctx context.Context, name string) (*domain.Flight, error)
	List(ctx context.Context) ([]domain.Flight, error)
	Update(ctx context.Context, f *domain.Flight) error
	// UpdateGate stores the gate and copies it to every ticket of the flight
	// showing a different gate. It returns the number of tickets changed.
	UpdateGate(ctx context.Context, name, gate string) (int64, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `name, airplane, source_airport, source_airport_code, destination_airport, destination_airport_code,
	date_of_departure, time_of_departure, duration_seconds, gate_number, status, crew, published, route, price_cents,
	docstatus, created_at, updated_at`

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	err := row.Scan(&f.Name, &f.Airplane, &f.SourceAirport, &f.SourceAirportCode, &f.DestinationAirport, &f.DestinationAirportCode,
		&f.DateOfDeparture, &f.TimeOfDeparture, &f.DurationSeconds, &f.GateNumber, &f.Status, &f.Crew, &f.Published, &f.Route, &f.PriceCents,
		&f.DocStatus, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, f *domain.Flight) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `INSERT INTO flights (airplane, source_airport, source_airport_code, destination_airport, destination_airport_code,
			date_of_departure, time_of_departure, duration_seconds, gate_number, status, crew, published, price_cents, docstatus)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14) RETURNING name, created_at, updated_at`,
			f.Airplane, f.SourceAirport, f.SourceAirportCode, f.DestinationAirport, f.DestinationAirportCode,
			f.DateOfDeparture, f.TimeOfDeparture, f.DurationSeconds, f.GateNumber, f.Status, f.Crew, f.Published, f.PriceCents, f.DocStatus)
		if err := row.Scan(&f.Name, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return mapError(err, "Airplane Flight", "")
		}
		f.SetRoute()
		_, err := tx.Exec(ctx, `UPDATE flights SET route=$2 WHERE name=$1`, f.Name, f.Route)
		return err
	})
}

func (r *PGFlightRepository) Get(ctx context.Context, name string) (*domain.Flight, error) {
	f, err := scanFlight(r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE name=$1`, name))
	if err != nil {
		return nil, mapError(err, "Airplane Flight", name)
	}
	return f, nil
}

func (r *PGFlightRepository) List(ctx context.Context) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx, `SELECT `+flightColumns+` FROM flights ORDER BY date_of_departure, time_of_departure`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, err
		}
		flights = append(flights, *f)
	}
	return flights, rows.Err()
}

func (r *PGFlightRepository) Update(ctx context.Context, f *domain.Flight) error {
	row := r.db.QueryRow(ctx, `UPDATE flights SET gate_number=$2, status=$3, crew=$4, published=$5, route=$6, price_cents=$7,
		docstatus=$8, updated_at=now() WHERE name=$1 RETURNING updated_at`,
		f.Name, f.GateNumber, f.Status, f.Crew, f.Published, f.Route, f.PriceCents, f.DocStatus)
	return mapError(row.Scan(&f.UpdatedAt), "Airplane Flight", f.Name)
}

func (r *PGFlightRepository) UpdateGate(ctx context.Context, name, gate string) (int64, error) {
	var changed int64
	err := inTx(ctx, r.db, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `UPDATE flights SET gate_number=$2, updated_at=now() WHERE name=$1`, name, gate)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return mapError(pgx.ErrNoRows, "Airplane Flight", name)
		}
		res, err = tx.Exec(ctx, `UPDATE tickets SET gate_number=$2, updated_at=now() WHERE flight=$1 AND gate_number <> $2`, name, gate)
		if err != nil {
			return err
		}
		changed = res.RowsAffected()
		return nil
	})
	return changed, err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
