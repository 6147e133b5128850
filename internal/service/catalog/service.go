package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
	apperrors "github.com/IsaacLanzoni/projeto-belezza/pkg/errors"
)

// Service exposes the professionals and salon services catalog the
// booking flow is built on.
type Service struct {
	professionals repository.ProfessionalRepository
	services      repository.ServiceRepository
}

func NewService(professionals repository.ProfessionalRepository, services repository.ServiceRepository) *Service {
	return &Service{
		professionals: professionals,
		services:      services,
	}
}

func (s *Service) GetProfessional(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	professional, err := s.professionals.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("professional", err)
		}
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}
	return professional, nil
}

func (s *Service) ListProfessionals(ctx context.Context) ([]*model.Professional, error) {
	professionals, err := s.professionals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}
	return professionals, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	service, err := s.services.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("service", err)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

func (s *Service) ListServices(ctx context.Context, category string) ([]*model.Service, error) {
	services, err := s.services.List(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
