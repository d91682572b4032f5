package venues

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Space, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Space, error) {
	if id <= 0 {
		return Space{}, fmt.Errorf("%w: invalid space ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req UpsertSpaceRequest) (Space, error) {
	return s.repo.Create(ctx, fromRequest(req))
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertSpaceRequest) (Space, error) {
	if id <= 0 {
		return Space{}, fmt.Errorf("%w: invalid space ID", httpx.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, fromRequest(req)); err != nil {
		return Space{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid space ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func fromRequest(req UpsertSpaceRequest) Space {
	space := Space{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Capacity:    req.Capacity,
		BasePrice:   req.BasePrice,
		IsActive:    true,
	}
	if req.IsActive != nil {
		space.IsActive = *req.IsActive
	}
	return space
}
