package repository

import (
	"context"
	"strconv"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FleetRepository interface {
	CreateAirline(ctx context.Context, a *domain.Airline) error
	GetAirline(ctx context.Context, name string) (*domain.Airline, error)
	ListAirlines(ctx context.Context) ([]domain.Airline, error)

	CreateAirport(ctx context.Context, a *domain.Airport) error
	GetAirport(ctx context.Context, name string) (*domain.Airport, error)
	ListAirports(ctx context.Context) ([]domain.Airport, error)

	CreateAirplane(ctx context.Context, a *domain.Airplane) error
	GetAirplane(ctx context.Context, name string) (*domain.Airplane, error)
	ListAirplanes(ctx context.Context) ([]domain.Airplane, error)

	CreateCrewMember(ctx context.Context, c *domain.CrewMember) error
	GetCrewMember(ctx context.Context, id int64) (*domain.CrewMember, error)
	ListCrew(ctx context.Context) ([]domain.CrewMember, error)

	CreatePassenger(ctx context.Context, p *domain.Passenger) error
	GetPassenger(ctx context.Context, name string) (*domain.Passenger, error)
	ListPassengers(ctx context.Context) ([]domain.Passenger, error)

	CreateAddOnType(ctx context.Context, a *domain.AddOnType) error
	GetAddOnType(ctx context.Context, name string) (*domain.AddOnType, error)
	ListAddOnTypes(ctx context.Context) ([]domain.AddOnType, error)
}

type PGFleetRepository struct {
	db *pgxpool.Pool
}

func NewFleetRepository(db *pgxpool.Pool) FleetRepository {
	return &PGFleetRepository{db: db}
}

func (r *PGFleetRepository) CreateAirline(ctx context.Context, a *domain.Airline) error {
	row := r.db.QueryRow(ctx, `INSERT INTO airlines (name, headquarters, founding_year, customer_care_number, website)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		a.Name, a.Headquarters, a.FoundingYear, a.CustomerCareNumber, a.Website)
	return mapError(row.Scan(&a.CreatedAt, &a.UpdatedAt), "Airline", a.Name)
}

func (r *PGFleetRepository) GetAirline(ctx context.Context, name string) (*domain.Airline, error) {
	row := r.db.QueryRow(ctx, `SELECT name, headquarters, founding_year, customer_care_number, website, created_at, updated_at FROM airlines WHERE name=$1`, name)
	var a domain.Airline
	if err := row.Scan(&a.Name, &a.Headquarters, &a.FoundingYear, &a.CustomerCareNumber, &a.Website, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err, "Airline", name)
	}
	return &a, nil
}

func (r *PGFleetRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	rows, err := r.db.Query(ctx, `SELECT name, headquarters, founding_year, customer_care_number, website, created_at, updated_at FROM airlines ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airlines := make([]domain.Airline, 0)
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.Name, &a.Headquarters, &a.FoundingYear, &a.CustomerCareNumber, &a.Website, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}
	return airlines, rows.Err()
}

func (r *PGFleetRepository) CreateAirport(ctx context.Context, a *domain.Airport) error {
	row := r.db.QueryRow(ctx, `INSERT INTO airports (name, code, airport_name, city, country)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at`,
		a.Name, a.Code, a.AirportName, a.City, a.Country)
	return mapError(row.Scan(&a.CreatedAt, &a.UpdatedAt), "Airport", a.Name)
}

func (r *PGFleetRepository) GetAirport(ctx context.Context, name string) (*domain.Airport, error) {
	row := r.db.QueryRow(ctx, `SELECT name, code, airport_name, city, country, created_at, updated_at FROM airports WHERE name=$1`, name)
	var a domain.Airport
	if err := row.Scan(&a.Name, &a.Code, &a.AirportName, &a.City, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err, "Airport", name)
	}
	return &a, nil
}

func (r *PGFleetRepository) ListAirports(ctx context.Context) ([]domain.Airport, error) {
	rows, err := r.db.Query(ctx, `SELECT name, code, airport_name, city, country, created_at, updated_at FROM airports ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airports := make([]domain.Airport, 0)
	for rows.Next() {
		var a domain.Airport
		if err := rows.Scan(&a.Name, &a.Code, &a.AirportName, &a.City, &a.Country, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		airports = append(airports, a)
	}
	return airports, rows.Err()
}

func (r *PGFleetRepository) CreateAirplane(ctx context.Context, a *domain.Airplane) error {
	row := r.db.QueryRow(ctx, `INSERT INTO airplanes (model, airline, capacity, initial_audit_completed)
		VALUES ($1, $2, $3, $4) RETURNING name, created_at, updated_at`,
		a.Model, a.Airline, a.Capacity, a.InitialAuditCompleted)
	return mapError(row.Scan(&a.Name, &a.CreatedAt, &a.UpdatedAt), "Airplane", a.Model)
}

func (r *PGFleetRepository) GetAirplane(ctx context.Context, name string) (*domain.Airplane, error) {
	row := r.db.QueryRow(ctx, `SELECT name, model, airline, capacity, initial_audit_completed, created_at, updated_at FROM airplanes WHERE name=$1`, name)
	var a domain.Airplane
	if err := row.Scan(&a.Name, &a.Model, &a.Airline, &a.Capacity, &a.InitialAuditCompleted, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, mapError(err, "Airplane", name)
	}
	return &a, nil
}

func (r *PGFleetRepository) ListAirplanes(ctx context.Context) ([]domain.Airplane, error) {
	rows, err := r.db.Query(ctx, `SELECT name, model, airline, capacity, initial_audit_completed, created_at, updated_at FROM airplanes ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	airplanes := make([]domain.Airplane, 0)
	for rows.Next() {
		var a domain.Airplane
		if err := rows.Scan(&a.Name, &a.Model, &a.Airline, &a.Capacity, &a.InitialAuditCompleted, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		airplanes = append(airplanes, a)
	}
	return airplanes, rows.Err()
}

func (r *PGFleetRepository) CreateCrewMember(ctx context.Context, c *domain.CrewMember) error {
	row := r.db.QueryRow(ctx, `INSERT INTO crew_members (first_name, last_name, full_name, passport_id, date_of_birth)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at`,
		c.FirstName, c.LastName, c.FullName, c.PassportID, c.DateOfBirth)
	return mapError(row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt), "Crew Member", c.FullName)
}

func (r *PGFleetRepository) GetCrewMember(ctx context.Context, id int64) (*domain.CrewMember, error) {
	row := r.db.QueryRow(ctx, `SELECT id, first_name, last_name, full_name, passport_id, date_of_birth, created_at, updated_at FROM crew_members WHERE id=$1`, id)
	var c domain.CrewMember
	if err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.FullName, &c.PassportID, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, mapError(err, "Crew Member", strconv.FormatInt(id, 10))
	}
	return &c, nil
}

func (r *PGFleetRepository) ListCrew(ctx context.Context) ([]domain.CrewMember, error) {
	rows, err := r.db.Query(ctx, `SELECT id, first_name, last_name, full_name, passport_id, date_of_birth, created_at, updated_at FROM crew_members ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	crew := make([]domain.CrewMember, 0)
	for rows.Next() {
		var c domain.CrewMember
		if err := rows.Scan(&c.ID, &c.FirstName, &c.LastName, &c.FullName, &c.PassportID, &c.DateOfBirth, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		crew = append(crew, c)
	}
	return crew, rows.Err()
}

func (r *PGFleetRepository) CreatePassenger(ctx context.Context, p *domain.Passenger) error {
	row := r.db.QueryRow(ctx, `INSERT INTO passengers (first_name, last_name, full_name, date_of_birth)
		VALUES ($1, $2, $3, $4) RETURNING name, created_at, updated_at`,
		p.FirstName, p.LastName, p.FullName, p.DateOfBirth)
	return mapError(row.Scan(&p.Name, &p.CreatedAt, &p.UpdatedAt), "Passenger", p.FullName)
}

func (r *PGFleetRepository) GetPassenger(ctx context.Context, name string) (*domain.Passenger, error) {
	row := r.db.QueryRow(ctx, `SELECT name, first_name, last_name, full_name, date_of_birth, created_at, updated_at FROM passengers WHERE name=$1`, name)
	var p domain.Passenger
	if err := row.Scan(&p.Name, &p.FirstName, &p.LastName, &p.FullName, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err, "Passenger", name)
	}
	return &p, nil
}

func (r *PGFleetRepository) ListPassengers(ctx context.Context) ([]domain.Passenger, error) {
	rows, err := r.db.Query(ctx, `SELECT name, first_name, last_name, full_name, date_of_birth, created_at, updated_at FROM passengers ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	passengers := make([]domain.Passenger, 0)
	for rows.Next() {
		var p domain.Passenger
		if err := rows.Scan(&p.Name, &p.FirstName, &p.LastName, &p.FullName, &p.DateOfBirth, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		passengers = append(passengers, p)
	}
	return passengers, rows.Err()
}

func (r *PGFleetRepository) CreateAddOnType(ctx context.Context, a *domain.AddOnType) error {
	row := r.db.QueryRow(ctx, `INSERT INTO addon_types (name, options) VALUES ($1, $2) RETURNING created_at`, a.Name, a.Options)
	return mapError(row.Scan(&a.CreatedAt), "Add-on Type", a.Name)
}

func (r *PGFleetRepository) GetAddOnType(ctx context.Context, name string) (*domain.AddOnType, error) {
	row := r.db.QueryRow(ctx, `SELECT name, options, created_at FROM addon_types WHERE name=$1`, name)
	var a domain.AddOnType
	if err := row.Scan(&a.Name, &a.Options, &a.CreatedAt); err != nil {
		return nil, mapError(err, "Add-on Type", name)
	}
	return &a, nil
}

func (r *PGFleetRepository) ListAddOnTypes(ctx context.Context) ([]domain.AddOnType, error) {
	rows, err := r.db.Query(ctx, `SELECT name, options, created_at FROM addon_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	types := make([]domain.AddOnType, 0)
	for rows.Next() {
		var a domain.AddOnType
		if err := rows.Scan(&a.Name, &a.Options, &a.CreatedAt); err != nil {
			return nil, err
		}
		types = append(types, a)
	}
	return types, rows.Err()
}

var _ FleetRepository = (*PGFleetRepository)(nil)
