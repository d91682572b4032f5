package supplies

import (
	"context"
	"fmt"
	"strings"

	"github.com/fiesta-events/fiesta-events/internal/platform/httpx"
	"github.com/fiesta-events/fiesta-events/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Supply, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Supply, error) {
	if id <= 0 {
		return Supply{}, fmt.Errorf("%w: invalid supply ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req UpsertSupplyRequest) (Supply, error) {
	return s.repo.Create(ctx, fromRequest(req))
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertSupplyRequest) (Supply, error) {
	if id <= 0 {
		return Supply{}, fmt.Errorf("%w: invalid supply ID", httpx.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, fromRequest(req)); err != nil {
		return Supply{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid supply ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func fromRequest(req UpsertSupplyRequest) Supply {
	return Supply{
		Name:               strings.TrimSpace(req.Name),
		Unit:               strings.TrimSpace(req.Unit),
		CostPerUnit:        req.CostPerUnit,
		ChargePerUnit:      req.ChargePerUnit,
		DefaultPricingType: req.DefaultPricingType,
		StockOnHand:        req.StockOnHand,
	}
}
