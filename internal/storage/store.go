// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/mmynk/leasehold/internal/models"
)

// Store defines the interface for invoice, directory and account storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL)
// without changing the ledger or service layer.
//
// Lookups of missing rows return an error wrapping models.ErrNotFound.
type Store interface {
	InvoiceStore
	DirectoryStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// InvoiceStore persists invoices and their splits.
type InvoiceStore interface {
	// CreateInvoice persists an invoice together with all of its splits in
	// a single transaction. IDs and CreatedAt are populated by the store.
	CreateInvoice(ctx context.Context, invoice *models.Invoice, splits []*models.InvoiceSplit) error

	GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)

	// ListInvoicesByProperty returns a property's invoices, newest due date first.
	ListInvoicesByProperty(ctx context.Context, propertyID string) ([]*models.Invoice, error)

	// ListInvoices returns every invoice, oldest first. Used by reconciliation.
	ListInvoices(ctx context.Context) ([]*models.Invoice, error)

	// MarkInvoicePaid sets the invoice's paid flag if it is not already set.
	// changed reports whether this call performed the transition.
	MarkInvoicePaid(ctx context.Context, invoiceID string, at time.Time) (changed bool, err error)

	GetSplit(ctx context.Context, splitID string) (*models.InvoiceSplit, error)

	// ListSplitsByInvoice returns an invoice's splits in creation order.
	ListSplitsByInvoice(ctx context.Context, invoiceID string) ([]*models.InvoiceSplit, error)

	ListSplitsByResident(ctx context.Context, residentID string) ([]*models.InvoiceSplit, error)

	// MarkSplitPaid sets the split's paid flag if it is not already set.
	// changed reports whether this call performed the transition.
	MarkSplitPaid(ctx context.Context, splitID string, at time.Time) (changed bool, err error)
}

// DirectoryStore persists properties and their residents.
type DirectoryStore interface {
	CreateProperty(ctx context.Context, property *models.Property) error
	GetProperty(ctx context.Context, propertyID string) (*models.Property, error)
	ListPropertiesByManager(ctx context.Context, managerID string) ([]*models.Property, error)

	CreateResident(ctx context.Context, resident *models.Resident) error
	GetResident(ctx context.Context, residentID string) (*models.Resident, error)

	// ListResidentsByProperty returns the residents eligible for billing at a property.
	ListResidentsByProperty(ctx context.Context, propertyID string) ([]*models.Resident, error)
}

// UserStore persists login accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail and GetUserByID return nil, nil when no user matches.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
