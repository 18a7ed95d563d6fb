package repository

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportRepository interface {
	// RevenueByAirline sums ticket totals per airline, listing airlines without revenue too.
	RevenueByAirline(ctx context.Context, bookedOnly bool) ([]domain.RevenueRow, error)
	VacancyPerAirport(ctx context.Context) ([]domain.VacancyRow, error)
}

type PGReportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepository {
	return &PGReportRepository{db: db}
}

func (r *PGReportRepository) RevenueByAirline(ctx context.Context, bookedOnly bool) ([]domain.RevenueRow, error) {
	rows, err := r.db.Query(ctx, `SELECT airlines.name, COALESCE(SUM(tickets.total_amount_cents), 0)::bigint
		FROM airlines
		LEFT JOIN airplanes ON airplanes.airline = airlines.name
		LEFT JOIN flights ON flights.airplane = airplanes.name
		LEFT JOIN tickets ON tickets.flight = flights.name AND (NOT $1 OR tickets.docstatus = 1)
		GROUP BY airlines.name
		ORDER BY airlines.name`, bookedOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.RevenueRow, 0)
	for rows.Next() {
		var row domain.RevenueRow
		if err := rows.Scan(&row.Airline, &row.RevenueCents); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

func (r *PGReportRepository) VacancyPerAirport(ctx context.Context) ([]domain.VacancyRow, error) {
	rows, err := r.db.Query(ctx, `SELECT airports.name,
			count(rooms.name) FILTER (WHERE rooms.docstatus = 1),
			count(rooms.name) FILTER (WHERE rooms.status = 'Occupied'),
			count(rooms.name) FILTER (WHERE rooms.status = 'Reserved'),
			count(rooms.name) FILTER (WHERE rooms.status = 'Maintenance'),
			count(rooms.name) FILTER (WHERE rooms.status = 'Available')
		FROM airports
		LEFT JOIN rooms ON rooms.airport = airports.name
		GROUP BY airports.name
		ORDER BY airports.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.VacancyRow, 0)
	for rows.Next() {
		var v domain.VacancyRow
		if err := rows.Scan(&v.Airport, &v.Rooms, &v.Occupied, &v.Reserved, &v.Maintenance, &v.Available); err != nil {
			return nil, err
		}
		v.ComputeVacancyRate()
		result = append(result, v)
	}
	return result, rows.Err()
}

var _ ReportRepository = (*PGReportRepository)(nil)
