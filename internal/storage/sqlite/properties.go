package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/leasehold/internal/models"
)

// CreateProperty persists a new property.
func (s *SQLiteStore) CreateProperty(ctx context.Context, property *models.Property) error {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.CreatedAt.IsZero() {
		property.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO properties (id, name, address, manager_id, created_at) VALUES (?, ?, ?, ?, ?)`,
		property.ID, property.Name, property.Address, property.ManagerID, property.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}
	return nil
}

// GetProperty retrieves a property by ID.
func (s *SQLiteStore) GetProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	property := &models.Property{}
	var createdAt int64

	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, address, manager_id, created_at FROM properties WHERE id = ?`,
		propertyID,
	).Scan(&property.ID, &property.Name, &property.Address, &property.ManagerID, &createdAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %s: %w", propertyID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	property.CreatedAt = unixTime(createdAt)
	return property, nil
}

// ListPropertiesByManager retrieves every property managed by a user.
func (s *SQLiteStore) ListPropertiesByManager(ctx context.Context, managerID string) ([]*models.Property, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, address, manager_id, created_at FROM properties
		 WHERE manager_id = ? ORDER BY created_at ASC, name ASC`,
		managerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		property := &models.Property{}
		var createdAt int64
		if err := rows.Scan(&property.ID, &property.Name, &property.Address, &property.ManagerID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan property: %w", err)
		}
		property.CreatedAt = unixTime(createdAt)
		properties = append(properties, property)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate properties: %w", err)
	}

	return properties, nil
}

// CreateResident adds a resident to a property.
func (s *SQLiteStore) CreateResident(ctx context.Context, resident *models.Resident) error {
	if resident.ID == "" {
		resident.ID = uuid.New().String()
	}
	if resident.CreatedAt.IsZero() {
		resident.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO residents (id, property_id, name, unit, user_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		resident.ID, resident.PropertyID, resident.Name, resident.Unit,
		nullString(resident.UserID), resident.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert resident: %w", err)
	}
	return nil
}

// GetResident retrieves a resident by ID.
func (s *SQLiteStore) GetResident(ctx context.Context, residentID string) (*models.Resident, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, property_id, name, unit, user_id, created_at FROM residents WHERE id = ?`,
		residentID,
	)

	resident, err := scanResident(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("resident %s: %w", residentID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get resident: %w", err)
	}
	return resident, nil
}

// ListResidentsByProperty retrieves a property's residents in the order they were added.
func (s *SQLiteStore) ListResidentsByProperty(ctx context.Context, propertyID string) ([]*models.Resident, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, property_id, name, unit, user_id, created_at FROM residents
		 WHERE property_id = ? ORDER BY created_at ASC, rowid ASC`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list residents: %w", err)
	}
	defer rows.Close()

	var residents []*models.Resident
	for rows.Next() {
		resident, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resident: %w", err)
		}
		residents = append(residents, resident)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate residents: %w", err)
	}

	return residents, nil
}

func scanResident(row rowScanner) (*models.Resident, error) {
	resident := &models.Resident{}
	var userID sql.NullString
	var createdAt int64

	if err := row.Scan(&resident.ID, &resident.PropertyID, &resident.Name, &resident.Unit, &userID, &createdAt); err != nil {
		return nil, err
	}

	resident.UserID = userID.String
	resident.CreatedAt = unixTime(createdAt)
	return resident, nil
}
