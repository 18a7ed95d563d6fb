package leasing

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/go-playground/validator/v10"
)

type RoomUseCase interface {
	Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error)
	Get(ctx context.Context, name string) (*domain.Room, error)
	List(ctx context.Context, airport string) ([]domain.Room, error)
	Update(ctx context.Context, name string, input UpdateRoomInput) (*domain.Room, error)
	Submit(ctx context.Context, name string) (*domain.Room, error)
	Cancel(ctx context.Context, name string) (*domain.Room, error)
}

// PageCache drops cached website pages that list rooms and shops.
type PageCache interface {
	InvalidateAirportShops(ctx context.Context) error
}

type CreateRoomInput struct {
	Airport         string `json:"airport" validate:"required"`
	RoomNumber      int    `json:"room_number" validate:"gt=0"`
	AreaSqm         int    `json:"area" validate:"gte=0"`
	Capacity        int    `json:"capacity" validate:"gte=0"`
	RentalRateCents int64  `json:"rental_rate_cents" validate:"gte=0"`
	Maintenance     bool   `json:"maintenance"`
}

type UpdateRoomInput struct {
	AreaSqm         *int   `json:"area" validate:"omitempty,gte=0"`
	Capacity        *int   `json:"capacity" validate:"omitempty,gte=0"`
	RentalRateCents *int64 `json:"rental_rate_cents" validate:"omitempty,gte=0"`
	Maintenance     *bool  `json:"maintenance"`
}

type RoomService struct {
	rooms    repository.RoomRepository
	leases   repository.LeaseRepository
	fleet    repository.FleetRepository
	settings SettingsUseCase
	pages    PageCache
	validate *validator.Validate
}

func NewRoomService(
	rooms repository.RoomRepository,
	leases repository.LeaseRepository,
	fleet repository.FleetRepository,
	settings SettingsUseCase,
	pages PageCache,
) *RoomService {
	return &RoomService{
		rooms:    rooms,
		leases:   leases,
		fleet:    fleet,
		settings: settings,
		pages:    pages,
		validate: validator.New(),
	}
}

func (s *RoomService) Create(ctx context.Context, input CreateRoomInput) (*domain.Room, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid room", err)
	}
	airport, err := s.fleet.GetAirport(ctx, input.Airport)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.Get(ctx)
	if err != nil {
		return nil, err
	}

	room := &domain.Room{
		Airport:         airport.Name,
		RoomNumber:      input.RoomNumber,
		AreaSqm:         input.AreaSqm,
		Capacity:        input.Capacity,
		RentalRateCents: input.RentalRateCents,
		Maintenance:     input.Maintenance,
	}
	room.Autoname(airport.Code)
	room.ApplyDefaultRentalRate(*settings)
	if err := room.Validate(); err != nil {
		return nil, err
	}
	room.SetStatus(0, 0)
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) Get(ctx context.Context, name string) (*domain.Room, error) {
	return s.rooms.Get(ctx, name)
}

func (s *RoomService) List(ctx context.Context, airport string) ([]domain.Room, error) {
	return s.rooms.List(ctx, airport)
}

// Update changes the physical attributes of a room. Submitted rooms stay editable.
func (s *RoomService) Update(ctx context.Context, name string, input UpdateRoomInput) (*domain.Room, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid room", err)
	}
	room, err := s.rooms.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if room.DocStatus == domain.DocStatusCancelled {
		return nil, apperr.InvalidState("cannot modify Room %s: it is %s", name, room.DocStatus)
	}
	if input.AreaSqm != nil {
		room.AreaSqm = *input.AreaSqm
	}
	if input.Capacity != nil {
		room.Capacity = *input.Capacity
	}
	if input.RentalRateCents != nil {
		room.RentalRateCents = *input.RentalRateCents
	}
	if input.Maintenance != nil {
		room.Maintenance = *input.Maintenance
	}
	if err := room.Validate(); err != nil {
		return nil, err
	}
	if err := s.save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// Submit makes the room leasable and creates its billable item.
func (s *RoomService) Submit(ctx context.Context, name string) (*domain.Room, error) {
	room, err := s.rooms.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	uom, err := s.settings.DefaultUOM(ctx)
	if err != nil {
		return nil, err
	}
	if err := room.Submit(uom); err != nil {
		return nil, err
	}
	if err := s.save(ctx, room); err != nil {
		return nil, err
	}
	logging.Info("room submitted", "room", room.Name, "item_code", room.ItemCode, "uom", room.UOM)
	return room, nil
}

func (s *RoomService) Cancel(ctx context.Context, name string) (*domain.Room, error) {
	room, err := s.rooms.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	counts, err := s.leases.CountByRoom(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := room.Cancel(counts.Submitted); err != nil {
		return nil, err
	}
	if err := s.save(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *RoomService) save(ctx context.Context, room *domain.Room) error {
	counts, err := s.leases.CountByRoom(ctx, room.Name)
	if err != nil {
		return err
	}
	room.SetStatus(counts.Draft, counts.Submitted)
	if err := s.rooms.Update(ctx, room); err != nil {
		return err
	}
	invalidatePages(ctx, s.pages)
	return nil
}

// refreshRoomStatus recomputes and stores the status after one of the room's leases changed.
func refreshRoomStatus(ctx context.Context, rooms repository.RoomRepository, leases repository.LeaseRepository, name string) error {
	room, err := rooms.Get(ctx, name)
	if err != nil {
		return err
	}
	counts, err := leases.CountByRoom(ctx, name)
	if err != nil {
		return err
	}
	room.SetStatus(counts.Draft, counts.Submitted)
	return rooms.UpdateStatus(ctx, name, room.Status)
}

func invalidatePages(ctx context.Context, pages PageCache) {
	if pages == nil {
		return
	}
	if err := pages.InvalidateAirportShops(ctx); err != nil {
		logging.Warn("failed to invalidate airport shops page", "error", err)
	}
}

var _ RoomUseCase = (*RoomService)(nil)
