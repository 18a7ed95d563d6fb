package reports

import (
	"context"
	"net/url"

	"github.com/Domenick1991/airplanemode/internal/domain"
	"github.com/Domenick1991/airplanemode/internal/logging"
	"github.com/Domenick1991/airplanemode/internal/metrics"
	"github.com/Domenick1991/airplanemode/internal/repository"
	"golang.org/x/sync/errgroup"
)

// shopRoomsConcurrency bounds parallel room lookups while building the shops page.
const shopRoomsConcurrency = 8

type ReportUseCase interface {
	RevenueByAirline(ctx context.Context, bookedOnly bool) (domain.RevenueReport, error)
	VacancyPerAirport(ctx context.Context) ([]domain.VacancyRow, error)
	AirportShops(ctx context.Context) (*domain.AirportShopsPage, error)
}

type PageCache interface {
	GetAirportShops(ctx context.Context) (*domain.AirportShopsPage, error)
	SetAirportShops(ctx context.Context, page *domain.AirportShopsPage) error
}

type ReportService struct {
	reports repository.ReportRepository
	shops   repository.ShopRepository
	cache   PageCache
	metrics *metrics.MetricsRegistry
}

func NewReportService(reports repository.ReportRepository, shops repository.ShopRepository, cache PageCache, m *metrics.MetricsRegistry) *ReportService {
	return &ReportService{reports: reports, shops: shops, cache: cache, metrics: m}
}

// RevenueByAirline lists every airline with its ticket revenue. bookedOnly counts submitted tickets only.
func (s *ReportService) RevenueByAirline(ctx context.Context, bookedOnly bool) (domain.RevenueReport, error) {
	rows, err := s.reports.RevenueByAirline(ctx, bookedOnly)
	if err != nil {
		return domain.RevenueReport{}, err
	}
	return domain.NewRevenueReport(rows), nil
}

func (s *ReportService) VacancyPerAirport(ctx context.Context) ([]domain.VacancyRow, error) {
	return s.reports.VacancyPerAirport(ctx)
}

// AirportShops builds the public shops page, served from Redis when cached.
func (s *ReportService) AirportShops(ctx context.Context) (*domain.AirportShopsPage, error) {
	if s.cache != nil {
		page, err := s.cache.GetAirportShops(ctx)
		if err != nil {
			logging.Warn("failed to read airport shops from cache", "error", err)
		} else if page != nil {
			s.observe(true)
			return page, nil
		}
		s.observe(false)
	}

	shops, err := s.shops.List(ctx)
	if err != nil {
		return nil, err
	}
	page := &domain.AirportShopsPage{Shops: make([]domain.ShopListing, len(shops))}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(shopRoomsConcurrency)
	for i, shop := range shops {
		g.Go(func() error {
			rooms, err := s.shops.Rooms(gctx, shop.Name)
			if err != nil {
				return err
			}
			page.Shops[i] = domain.ShopListing{
				Name:     shop.Name,
				ShopType: shop.ShopType,
				Link:     "/api/shops/" + url.PathEscape(shop.Name),
				Rooms:    rooms,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetAirportShops(ctx, page); err != nil {
			logging.Warn("failed to cache airport shops", "error", err)
		}
	}
	return page, nil
}

func (s *ReportService) observe(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.CacheHitsTotal.WithLabelValues("airport_shops").Inc()
		return
	}
	s.metrics.CacheMissesTotal.WithLabelValues("airport_shops").Inc()
}

var _ ReportUseCase = (*ReportService)(nil)
