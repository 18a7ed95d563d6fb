package repository

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Get(ctx context.Context, name string) (*domain.Room, error)
	// List returns all rooms, or only those of airport when it is not empty.
	List(ctx context.Context, airport string) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
	UpdateStatus(ctx context.Context, name string, status domain.RoomStatus) error
}

type PGRoomRepository struct {
	db *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) RoomRepository {
	return &PGRoomRepository{db: db}
}

const roomColumns = `name, airport, airport_code, room_number, area, capacity, rental_rate_cents, item_code, uom, maintenance,
	status, docstatus, created_at, updated_at`

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var r domain.Room
	err := row.Scan(&r.Name, &r.Airport, &r.AirportCode, &r.RoomNumber, &r.AreaSqm, &r.Capacity, &r.RentalRateCents, &r.ItemCode, &r.UOM,
		&r.Maintenance, &r.Status, &r.DocStatus, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PGRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	row := r.db.QueryRow(ctx, `INSERT INTO rooms (name, airport, airport_code, room_number, area, capacity, rental_rate_cents, item_code, uom,
		maintenance, status, docstatus) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING created_at, updated_at`,
		room.Name, room.Airport, room.AirportCode, room.RoomNumber, room.AreaSqm, room.Capacity, room.RentalRateCents, room.ItemCode, room.UOM,
		room.Maintenance, room.Status, room.DocStatus)
	return mapError(row.Scan(&room.CreatedAt, &room.UpdatedAt), "Room", room.Name)
}

func (r *PGRoomRepository) Get(ctx context.Context, name string) (*domain.Room, error) {
	room, err := scanRoom(r.db.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE name=$1`, name))
	if err != nil {
		return nil, mapError(err, "Room", name)
	}
	return room, nil
}

func (r *PGRoomRepository) List(ctx context.Context, airport string) ([]domain.Room, error) {
	rows, err := r.db.Query(ctx, `SELECT `+roomColumns+` FROM rooms WHERE $1 = '' OR airport = $1 ORDER BY airport, room_number`, airport)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rooms := make([]domain.Room, 0)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, *room)
	}
	return rooms, rows.Err()
}

func (r *PGRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	row := r.db.QueryRow(ctx, `UPDATE rooms SET area=$2, capacity=$3, rental_rate_cents=$4, item_code=$5, uom=$6, maintenance=$7,
		status=$8, docstatus=$9, updated_at=now() WHERE name=$1 RETURNING updated_at`,
		room.Name, room.AreaSqm, room.Capacity, room.RentalRateCents, room.ItemCode, room.UOM, room.Maintenance, room.Status, room.DocStatus)
	return mapError(row.Scan(&room.UpdatedAt), "Room", room.Name)
}

func (r *PGRoomRepository) UpdateStatus(ctx context.Context, name string, status domain.RoomStatus) error {
	res, err := r.db.Exec(ctx, `UPDATE rooms SET status=$2, updated_at=now() WHERE name=$1`, name, status)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return mapError(pgx.ErrNoRows, "Room", name)
	}
	return nil
}

var _ RoomRepository = (*PGRoomRepository)(nil)
