package repository

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SettingsRepository interface {
	Get(ctx context.Context) (*domain.LeasingSettings, error)
	Save(ctx context.Context, s *domain.LeasingSettings) error
}

type PGSettingsRepository struct {
	db *pgxpool.Pool
}

func NewSettingsRepository(db *pgxpool.Pool) SettingsRepository {
	return &PGSettingsRepository{db: db}
}

func (r *PGSettingsRepository) Get(ctx context.Context) (*domain.LeasingSettings, error) {
	row := r.db.QueryRow(ctx, `SELECT default_rental_rate_cents, default_uom, enable_payment_reminders, updated_at FROM leasing_settings WHERE id=1`)
	var s domain.LeasingSettings
	if err := row.Scan(&s.DefaultRentalRateCents, &s.DefaultUOM, &s.EnablePaymentReminders, &s.UpdatedAt); err != nil {
		return nil, mapError(err, "Airport Leasing Settings", "")
	}
	return &s, nil
}

func (r *PGSettingsRepository) Save(ctx context.Context, s *domain.LeasingSettings) error {
	row := r.db.QueryRow(ctx, `INSERT INTO leasing_settings (id, default_rental_rate_cents, default_uom, enable_payment_reminders)
		VALUES (1, $1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET default_rental_rate_cents=EXCLUDED.default_rental_rate_cents,
			default_uom=EXCLUDED.default_uom, enable_payment_reminders=EXCLUDED.enable_payment_reminders, updated_at=now()
		RETURNING updated_at`,
		s.DefaultRentalRateCents, s.UOM(), s.EnablePaymentReminders)
	return row.Scan(&s.UpdatedAt)
}

var _ SettingsRepository = (*PGSettingsRepository)(nil)
