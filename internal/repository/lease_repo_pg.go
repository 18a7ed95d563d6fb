package repository

import (
	"context"
	"errors"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrLeaseModified is returned by Save when the stored lease changed after it was loaded.
var ErrLeaseModified = apperr.Conflict("lease was modified by another request, reload and retry")

type LeaseCounts struct {
	Draft     int
	Submitted int
}

type LeaseRepository interface {
	Create(ctx context.Context, l *domain.Lease) error
	// Get loads the lease with its periods and payments.
	Get(ctx context.Context, name string) (*domain.Lease, error)
	// List loads every lease with its periods and payments.
	List(ctx context.Context) ([]domain.Lease, error)
	// ListByRoom loads headers only.
	ListByRoom(ctx context.Context, room string) ([]domain.Lease, error)
	// ListSubmitted loads every submitted lease with its periods and payments.
	ListSubmitted(ctx context.Context) ([]domain.Lease, error)
	CountByRoom(ctx context.Context, room string) (LeaseCounts, error)
	// Save writes the header and upserts periods and payments in one transaction.
	// It fails with ErrLeaseModified unless l.UpdatedAt still matches the stored row,
	// and with a conflict when a submitted lease overlaps another one on the room.
	Save(ctx context.Context, l *domain.Lease) error
}

type PGLeaseRepository struct {
	db *pgxpool.Pool
}

func NewLeaseRepository(db *pgxpool.Pool) LeaseRepository {
	return &PGLeaseRepository{db: db}
}

const leaseColumns = `name, leasing_of, leased_from, leased_to, start_date, end_date, period_length, rental_rate_cents, status,
	docstatus, created_at, updated_at`

func scanLease(row pgx.Row) (*domain.Lease, error) {
	var l domain.Lease
	err := row.Scan(&l.Name, &l.LeasingOf, &l.LeasedFrom, &l.LeasedTo, &l.StartDate, &l.EndDate, &l.PeriodLength, &l.RentalRateCents,
		&l.Status, &l.DocStatus, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	l.Periods = []domain.Period{}
	l.Payments = []domain.Payment{}
	return &l, nil
}

func (r *PGLeaseRepository) Create(ctx context.Context, l *domain.Lease) error {
	row := r.db.QueryRow(ctx, `INSERT INTO leases (leasing_of, leased_from, leased_to, start_date, end_date, period_length, rental_rate_cents,
		status, docstatus) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING name, created_at, updated_at`,
		l.LeasingOf, l.LeasedFrom, l.LeasedTo, l.StartDate, l.EndDate, l.PeriodLength, l.RentalRateCents, l.Status, l.DocStatus)
	return mapError(row.Scan(&l.Name, &l.CreatedAt, &l.UpdatedAt), "Lease", "")
}

func (r *PGLeaseRepository) Get(ctx context.Context, name string) (*domain.Lease, error) {
	l, err := scanLease(r.db.QueryRow(ctx, `SELECT `+leaseColumns+` FROM leases WHERE name=$1`, name))
	if err != nil {
		return nil, mapError(err, "Lease", name)
	}
	leases := []domain.Lease{*l}
	if err := r.loadChildren(ctx, leases); err != nil {
		return nil, err
	}
	return &leases[0], nil
}

func (r *PGLeaseRepository) List(ctx context.Context) ([]domain.Lease, error) {
	return r.query(ctx, true, `SELECT `+leaseColumns+` FROM leases ORDER BY name`)
}

func (r *PGLeaseRepository) ListByRoom(ctx context.Context, room string) ([]domain.Lease, error) {
	return r.query(ctx, false, `SELECT `+leaseColumns+` FROM leases WHERE leasing_of=$1 ORDER BY start_date`, room)
}

func (r *PGLeaseRepository) ListSubmitted(ctx context.Context) ([]domain.Lease, error) {
	return r.query(ctx, true, `SELECT `+leaseColumns+` FROM leases WHERE docstatus=1 ORDER BY name`)
}

func (r *PGLeaseRepository) CountByRoom(ctx context.Context, room string) (LeaseCounts, error) {
	var c LeaseCounts
	err := r.db.QueryRow(ctx, `SELECT count(*) FILTER (WHERE docstatus=0), count(*) FILTER (WHERE docstatus=1)
		FROM leases WHERE leasing_of=$1`, room).Scan(&c.Draft, &c.Submitted)
	return c, err
}

func (r *PGLeaseRepository) query(ctx context.Context, withChildren bool, sql string, args ...any) ([]domain.Lease, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leases := make([]domain.Lease, 0)
	for rows.Next() {
		l, err := scanLease(rows)
		if err != nil {
			return nil, err
		}
		leases = append(leases, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if withChildren {
		if err := r.loadChildren(ctx, leases); err != nil {
			return nil, err
		}
	}
	return leases, nil
}

func (r *PGLeaseRepository) loadChildren(ctx context.Context, leases []domain.Lease) error {
	if len(leases) == 0 {
		return nil
	}
	index := make(map[string]int, len(leases))
	names := make([]string, len(leases))
	for i, l := range leases {
		index[l.Name] = i
		names[i] = l.Name
	}

	rows, err := r.db.Query(ctx, `SELECT lease, start_date, end_date, invoice_name, posting_date, due_date, qty_weeks, rate_cents,
		grand_total_cents, outstanding_cents FROM lease_periods WHERE lease = ANY($1) ORDER BY lease, idx`, names)
	if err != nil {
		return err
	}
	for rows.Next() {
		var lease string
		var p domain.Period
		if err := rows.Scan(&lease, &p.StartDate, &p.EndDate, &p.Invoice.Name, &p.Invoice.PostingDate, &p.Invoice.DueDate,
			&p.Invoice.QtyWeeks, &p.Invoice.RateCents, &p.Invoice.GrandTotalCents, &p.Invoice.OutstandingCents); err != nil {
			rows.Close()
			return err
		}
		l := &leases[index[lease]]
		l.Periods = append(l.Periods, p)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rows, err = r.db.Query(ctx, `SELECT lease, name, payment_date, amount_cents, reference_no, allocations
		FROM lease_payments WHERE lease = ANY($1) ORDER BY lease, idx`, names)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var lease string
		var p domain.Payment
		if err := rows.Scan(&lease, &p.Name, &p.PaymentDate, &p.AmountCents, &p.ReferenceNo, &p.Allocations); err != nil {
			return err
		}
		l := &leases[index[lease]]
		l.Payments = append(l.Payments, p)
	}
	return rows.Err()
}

func (r *PGLeaseRepository) Save(ctx context.Context, l *domain.Lease) error {
	return inTx(ctx, r.db, func(tx pgx.Tx) error {
		updatedAt := l.UpdatedAt
		row := tx.QueryRow(ctx, `UPDATE leases SET leasing_of=$2, leased_from=$3, leased_to=$4, start_date=$5, end_date=$6,
			period_length=$7, rental_rate_cents=$8, status=$9, docstatus=$10, updated_at=clock_timestamp()
			WHERE name=$1 AND updated_at=$11 RETURNING updated_at`,
			l.Name, l.LeasingOf, l.LeasedFrom, l.LeasedTo, l.StartDate, l.EndDate, l.PeriodLength, l.RentalRateCents, l.Status,
			l.DocStatus, l.UpdatedAt)
		if err := row.Scan(&updatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return staleOrMissing(ctx, tx, l.Name)
			}
			return mapError(err, "Lease", l.Name)
		}

		if l.DocStatus == domain.DocStatusSubmitted {
			if err := checkRoomFree(ctx, tx, l); err != nil {
				return err
			}
		}

		for i, p := range l.Periods {
			_, err := tx.Exec(ctx, `INSERT INTO lease_periods (lease, idx, start_date, end_date, invoice_name, posting_date, due_date,
				qty_weeks, rate_cents, grand_total_cents, outstanding_cents) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
				ON CONFLICT (lease, idx) DO UPDATE SET outstanding_cents=EXCLUDED.outstanding_cents`,
				l.Name, i, p.StartDate, p.EndDate, p.Invoice.Name, p.Invoice.PostingDate, p.Invoice.DueDate,
				p.Invoice.QtyWeeks, p.Invoice.RateCents, p.Invoice.GrandTotalCents, p.Invoice.OutstandingCents)
			if err != nil {
				return mapError(err, "Lease Period", p.Invoice.Name)
			}
		}

		for i, p := range l.Payments {
			_, err := tx.Exec(ctx, `INSERT INTO lease_payments (name, lease, idx, payment_date, amount_cents, reference_no, allocations)
				VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (name) DO NOTHING`,
				p.Name, l.Name, i, p.PaymentDate, p.AmountCents, p.ReferenceNo, p.Allocations)
			if err != nil {
				return mapError(err, "Lease Payment", p.Name)
			}
		}
		l.UpdatedAt = updatedAt
		return nil
	})
}

func staleOrMissing(ctx context.Context, tx pgx.Tx, name string) error {
	var exists bool
	if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM leases WHERE name=$1)`, name).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Lease", name)
	}
	return ErrLeaseModified
}

// checkRoomFree locks the room row so that concurrent submits on the same room
// are serialized, then rejects any other submitted lease overlapping l.
func checkRoomFree(ctx context.Context, tx pgx.Tx, l *domain.Lease) error {
	var room string
	if err := tx.QueryRow(ctx, `SELECT name FROM rooms WHERE name=$1 FOR UPDATE`, l.LeasingOf).Scan(&room); err != nil {
		return mapError(err, "Room", l.LeasingOf)
	}
	var other string
	err := tx.QueryRow(ctx, `SELECT name FROM leases WHERE leasing_of=$1 AND docstatus=1 AND name<>$2
		AND start_date<=$4 AND end_date>=$3 LIMIT 1`, l.LeasingOf, l.Name, l.StartDate, l.EndDate).Scan(&other)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return apperr.Conflict("room %s is already leased by %s", room, other)
}

var _ LeaseRepository = (*PGLeaseRepository)(nil)
