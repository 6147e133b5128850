package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/IsaacLanzoni/projeto-belezza/internal/model"
	"github.com/IsaacLanzoni/projeto-belezza/internal/repository"
)

func (r *professionalRepository) Create(ctx context.Context, professional *model.Professional) error {
	query := `
		INSERT INTO professionals (id, name, role, phone, specialties, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	professional.CreatedAt = time.Now()
	professional.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		professional.ID,
		professional.Name,
		professional.Role,
		professional.Phone,
		pq.Array(professional.Specialties),
		professional.Active,
		professional.CreatedAt,
		professional.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}

func (r *professionalRepository) Get(ctx context.Context, id uuid.UUID) (*model.Professional, error) {
	query := `
		SELECT p.id, p.name, p.role, p.phone, p.active, p.created_at, p.updated_at
		FROM professionals p
		WHERE p.id = $1
	`
	var professional model.Professional
	err := r.db.GetContext(ctx, &professional, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get professional: %w", err)
	}

	if err := r.loadSpecialties(ctx, &professional); err != nil {
		return nil, err
	}
	return &professional, nil
}

func (r *professionalRepository) List(ctx context.Context) ([]*model.Professional, error) {
	query := `
		SELECT id, name, role, phone, active, created_at, updated_at
		FROM professionals
		WHERE active = true
		ORDER BY name ASC
	`
	var professionals []*model.Professional
	if err := r.db.SelectContext(ctx, &professionals, query); err != nil {
		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}

	for _, p := range professionals {
		if err := r.loadSpecialties(ctx, p); err != nil {
			return nil, err
		}
	}
	return professionals, nil
}

func (r *professionalRepository) loadSpecialties(ctx context.Context, p *model.Professional) error {
	query := `SELECT specialties FROM professionals WHERE id = $1`
	var specialties pq.StringArray
	if err := r.db.GetContext(ctx, &specialties, query, p.ID); err != nil {
		return fmt.Errorf("failed to load specialties: %w", err)
	}
	p.Specialties = specialties
	return nil
}

func (r *serviceRepository) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	query := `
		SELECT id, category, name, description, duration, price, featured, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	var service model.Service
	err := r.db.GetContext(ctx, &service, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, category string) ([]*model.Service, error) {
	query := `
		SELECT id, category, name, description, duration, price, featured, created_at, updated_at
		FROM services
	`
	args := []interface{}{}
	if category != "" && category != "all" {
		query += " WHERE category = $1"
		args = append(args, category)
	}
	query += " ORDER BY category, name ASC"

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}
