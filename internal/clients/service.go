package clients

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

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Client, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Client, error) {
	if id <= 0 {
		return Client{}, fmt.Errorf("%w: invalid client ID", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req UpsertClientRequest) (Client, error) {
	client := fromRequest(req)
	return s.repo.Create(ctx, client)
}

func (s *Service) Update(ctx context.Context, id int64, req UpsertClientRequest) (Client, error) {
	if id <= 0 {
		return Client{}, fmt.Errorf("%w: invalid client ID", httpx.ErrValidation)
	}
	if err := s.repo.Update(ctx, id, fromRequest(req)); err != nil {
		return Client{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid client ID", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

func fromRequest(req UpsertClientRequest) Client {
	return Client{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Company: strings.TrimSpace(req.Company),
		Notes:   req.Notes,
	}
}
