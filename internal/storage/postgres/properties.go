package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/leasehold/internal/models"
)

// CreateProperty persists a new property.
func (s *PostgresStore) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now().UTC()
	}

	row := propertyRow{
		ID:        property.ID,
		Name:      property.Name,
		Address:   property.Address,
		ManagerID: property.ManagerID,
		CreatedAt: property.CreatedAt,
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO properties (id, name, address, manager_id, created_at)
		VALUES (:id, :name, :address, :manager_id, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// GetProperty retrieves a property by ID.
func (s *PostgresStore) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	var row propertyRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, name, address, manager_id, created_at FROM properties WHERE id = $1`, propertyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("property %s: %w", propertyID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}
	return row.toModel(), nil
}

// ListPropertiesByManager retrieves every property managed by a user.
func (s *PostgresStore) ListPropertiesByManager(ctx context.Context, managerID string) ([]*models.Property, error) {
	var rows []propertyRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, address, manager_id, created_at FROM properties
		WHERE manager_id = $1 ORDER BY created_at ASC, name ASC`, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	properties := make([]*models.Property, len(rows))
	for i, row := range rows {
		properties[i] = row.toModel()
	}
	return properties, nil
}

// CreateResident adds a resident to a property.
func (s *PostgresStore) CreateResident(ctx context.Context, resident *models.Resident) error {
	if resident.ID == "" {
		resident.ID = uuid.New().String()
	}
	if resident.CreatedAt.IsZero() {
		resident.CreatedAt = time.Now().UTC()
	}

	row := residentRow{
		ID:         resident.ID,
		PropertyID: resident.PropertyID,
		Name:       resident.Name,
		Unit:       resident.Unit,
		UserID:     nullString(resident.UserID),
		CreatedAt:  resident.CreatedAt,
	}
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO residents (id, property_id, name, unit, user_id, created_at)
		VALUES (:id, :property_id, :name, :unit, :user_id, :created_at)`, row)
	if err != nil {
		return fmt.Errorf("failed to insert resident: %w", err)
	}
	return nil
}

// GetResident retrieves a resident by ID.
func (s *PostgresStore) GetResident(ctx context.Context, residentID string) (*models.Resident, error) {
	var row residentRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, property_id, name, unit, user_id, created_at FROM residents WHERE id = $1`, residentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("resident %s: %w", residentID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	return row.toModel(), nil
}

// ListResidentsByProperty retrieves a property's residents in the order they were added.
func (s *PostgresStore) ListResidentsByProperty(ctx context.Context, propertyID string) ([]*models.Resident, error) {
	var rows []residentRow
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, property_id, name, unit, user_id, created_at FROM residents
		WHERE property_id = $1 ORDER BY created_at ASC, id ASC`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}

	residents := make([]*models.Resident, len(rows))
	for i, row := range rows {
		residents[i] = row.toModel()
	}
	return residents, nil
}
