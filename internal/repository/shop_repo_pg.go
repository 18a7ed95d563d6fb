package repository

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	Get(ctx context.Context, name string) (*domain.Shop, error)
	List(ctx context.Context) ([]domain.Shop, error)
	// Rooms returns the rooms the shop holds under submitted leases.
	Rooms(ctx context.Context, shop string) ([]domain.ShopRoom, error)
}

type PGShopRepository struct {
	db *pgxpool.Pool
}

func NewShopRepository(db *pgxpool.Pool) ShopRepository {
	return &PGShopRepository{db: db}
}

func (r *PGShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	row := r.db.QueryRow(ctx, `INSERT INTO shops (shop_number, shop_type, owned_by, contact_email)
		VALUES ($1, $2, $3, $4) RETURNING name, created_at, updated_at`,
		shop.ShopNumber, shop.ShopType, shop.OwnedBy, shop.ContactEmail)
	return mapError(row.Scan(&shop.Name, &shop.CreatedAt, &shop.UpdatedAt), "Shop", "")
}

func (r *PGShopRepository) Get(ctx context.Context, name string) (*domain.Shop, error) {
	row := r.db.QueryRow(ctx, `SELECT name, shop_number, shop_type, owned_by, contact_email, created_at, updated_at FROM shops WHERE name=$1`, name)
	var s domain.Shop
	if err := row.Scan(&s.Name, &s.ShopNumber, &s.ShopType, &s.OwnedBy, &s.ContactEmail, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, mapError(err, "Shop", name)
	}
	return &s, nil
}

func (r *PGShopRepository) List(ctx context.Context) ([]domain.Shop, error) {
	rows, err := r.db.Query(ctx, `SELECT name, shop_number, shop_type, owned_by, contact_email, created_at, updated_at FROM shops ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shops := make([]domain.Shop, 0)
	for rows.Next() {
		var s domain.Shop
		if err := rows.Scan(&s.Name, &s.ShopNumber, &s.ShopType, &s.OwnedBy, &s.ContactEmail, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		shops = append(shops, s)
	}
	return shops, rows.Err()
}

func (r *PGShopRepository) Rooms(ctx context.Context, shop string) ([]domain.ShopRoom, error) {
	rows, err := r.db.Query(ctx, `SELECT DISTINCT rooms.name, rooms.airport FROM leases
		JOIN rooms ON rooms.name = leases.leasing_of
		WHERE leases.leased_to = $1 AND leases.docstatus = 1
		ORDER BY rooms.name`, shop)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.ShopRoom, 0)
	for rows.Next() {
		var room domain.ShopRoom
		if err := rows.Scan(&room.Room, &room.Airport); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

var _ ShopRepository = (*PGShopRepository)(nil)
