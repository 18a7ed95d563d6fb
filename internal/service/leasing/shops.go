package leasing

import (
	"context"

	"github.com/Domenick1991/airplanemode/internal/apperr"
	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"github.com/go-playground/validator/v10"
)

type ShopUseCase interface {
	Create(ctx context.Context, input CreateShopInput) (*domain.Shop, error)
	Get(ctx context.Context, name string) (*domain.Shop, error)
	List(ctx context.Context) ([]domain.Shop, error)
	Rooms(ctx context.Context, name string) ([]domain.ShopRoom, error)
}

type CreateShopInput struct {
	ShopNumber   int    `json:"shop_number" validate:"gt=0"`
	ShopType     string `json:"shop_type"`
	OwnedBy      string `json:"owned_by" validate:"required"`
	ContactEmail string `json:"contact_email" validate:"omitempty,email"`
}

type ShopService struct {
	shops    repository.ShopRepository
	pages    PageCache
	validate *validator.Validate
}

func NewShopService(shops repository.ShopRepository, pages PageCache) *ShopService {
	return &ShopService{shops: shops, pages: pages, validate: validator.New()}
}

func (s *ShopService) Create(ctx context.Context, input CreateShopInput) (*domain.Shop, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, apperr.New(apperr.CodeValidation, "invalid shop", err)
	}
	shop := &domain.Shop{
		ShopNumber:   input.ShopNumber,
		ShopType:     input.ShopType,
		OwnedBy:      input.OwnedBy,
		ContactEmail: input.ContactEmail,
	}
	if err := shop.Validate(); err != nil {
		return nil, err
	}
	if err := s.shops.Create(ctx, shop); err != nil {
		return nil, err
	}
	invalidatePages(ctx, s.pages)
	return shop, nil
}

func (s *ShopService) Get(ctx context.Context, name string) (*domain.Shop, error) {
	return s.shops.Get(ctx, name)
}

func (s *ShopService) List(ctx context.Context) ([]domain.Shop, error) {
	return s.shops.List(ctx)
}

// Rooms lists the rooms the shop holds under submitted leases.
func (s *ShopService) Rooms(ctx context.Context, name string) ([]domain.ShopRoom, error) {
	if _, err := s.shops.Get(ctx, name); err != nil {
		return nil, err
	}
	return s.shops.Rooms(ctx, name)
}

var _ ShopUseCase = (*ShopService)(nil)
