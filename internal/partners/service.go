package partners

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Partner, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Partner, error) {
	if id <= 0 {
		return Partner{}, fmt.Errorf("%w: invalid partner ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req UpsertPartnerRequest) (Partner, error) {
	return s.repo.Create(ctx, fromRequest(req))
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertPartnerRequest) (Partner, error) {
	if id <= 0 {
		return Partner{}, fmt.Errorf("%w: invalid partner ID", httpx.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, fromRequest(req)); err != nil {
		return Partner{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid partner ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func fromRequest(req UpsertPartnerRequest) Partner {
	p := Partner{
		Name:             strings.TrimSpace(req.Name),
		Service:          strings.TrimSpace(req.Service),
		DefaultPriceType: req.DefaultPriceType,
		DefaultRate:      req.DefaultRate,
		Email:            strings.TrimSpace(req.Email),
		Phone:            strings.TrimSpace(req.Phone),
		IsActive:         true,
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}
	return p
}
