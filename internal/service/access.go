package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/leasehold/internal/auth"
	"github.com/mmynk/leasehold/internal/middleware"
	"github.com/mmynk/leasehold/internal/models"
	"github.com/mmynk/leasehold/internal/storage"
)

// access answers ownership questions for the authenticated caller.
// A property's manager owns everything under it; a resident linked to an
// account may read the property and pay their own splits.
//
// Rows the caller cannot see are reported as not found, exactly like rows
// that do not exist. PermissionDenied is only returned for rows the caller
// can see but may not change.
type access struct {
	store storage.Store
}

// caller returns the authenticated user ID or auth.ErrMissingToken.
func caller(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", auth.ErrMissingToken
	}
	return userID, nil
}

func notFound(kind, id string) error {
	return fmt.Errorf("%s %s: %w", kind, id, models.ErrNotFound)
}

// viewableProperty loads a property the caller manages or lives at.
func (a access) viewableProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if propertyID == "" {
		return nil, models.NewValidationError("property_id", "is required")
	}

	property, err := a.store.GetProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.ManagerID == userID {
		return property, nil
	}

	residents, err := a.store.ListResidentsByProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	for _, r := range residents {
		if r.UserID == userID {
			return property, nil
		}
	}
	return nil, notFound("property", propertyID)
}

// managedProperty loads a property and checks the caller manages it.
func (a access) managedProperty(ctx context.Context, propertyID string) (*models.Property, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}

	property, err := a.viewableProperty(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property.ManagerID != userID {
		return nil, fmt.Errorf("property %s: %w", propertyID, models.ErrPermissionDenied)
	}
	return property, nil
}

// visibleInvoice loads an invoice whose property the caller can see.
func (a access) visibleInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	invoice, err := a.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if _, err := a.viewableProperty(ctx, invoice.PropertyID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound("invoice", invoiceID)
		}
		return nil, err
	}
	return invoice, nil
}

// visibleSplit loads a split whose invoice the caller can see.
func (a access) visibleSplit(ctx context.Context, splitID string) (*models.InvoiceSplit, error) {
	if _, err := caller(ctx); err != nil {
		return nil, err
	}

	split, err := a.store.GetSplit(ctx, splitID)
	if err != nil {
		return nil, err
	}
	if _, err := a.visibleInvoice(ctx, split.InvoiceID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound("split", splitID)
		}
		return nil, err
	}
	return split, nil
}

// residentOrManager loads a resident the caller either is or manages.
func (a access) residentOrManager(ctx context.Context, residentID string) (*models.Resident, error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, err
	}
	if residentID == "" {
		return nil, models.NewValidationError("resident_id", "is required")
	}

	resident, err := a.store.GetResident(ctx, residentID)
	if err != nil {
		return nil, err
	}
	if resident.UserID == userID {
		return resident, nil
	}

	property, err := a.viewableProperty(ctx, resident.PropertyID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, notFound("resident", residentID)
		}
		return nil, err
	}
	if property.ManagerID != userID {
		return nil, fmt.Errorf("resident %s: %w", residentID, models.ErrPermissionDenied)
	}
	return resident, nil
}
