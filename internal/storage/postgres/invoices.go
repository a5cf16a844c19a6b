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

const invoiceColumns = `id, property_id, title, description, amount, issue_date, due_date,
	paid, paid_at, is_recurring, recurrence_frequency, created_by, created_at`

const splitColumns = `id, invoice_id, resident_id, amount, paid, paid_at, position`

// CreateInvoice persists an invoice and its splits in a single transaction.
func (s *PostgresStore) CreateInvoice(ctx context.Context, invoice *models.Invoice, splits []*models.InvoiceSplit) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO invoices (
			id, property_id, title, description, amount, issue_date, due_date,
			is_recurring, recurrence_frequency, created_by, created_at
		) VALUES (
			:id, :property_id, :title, :description, :amount, :issue_date, :due_date,
			:is_recurring, :recurrence_frequency, :created_by, :created_at
		)`, newInvoiceRow(invoice))
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	for i, split := range splits {
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.InvoiceID = invoice.ID

		row := splitRow{
			ID:         split.ID,
			InvoiceID:  split.InvoiceID,
			ResidentID: split.ResidentID,
			Amount:     split.Amount,
			Position:   i,
		}
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO invoice_splits (id, invoice_id, resident_id, amount, position)
			VALUES (:id, :invoice_id, :resident_id, :amount, :position)`, row); err != nil {
			return fmt.Errorf("failed to insert split for resident %s: %w", split.ResidentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetInvoice retrieves an invoice by ID.
func (s *PostgresStore) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	var row invoiceRow
	err := s.db.GetContext(ctx, &row, `SELECT `+invoiceColumns+` FROM invoices WHERE id = $1`, invoiceID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return row.toModel(), nil
}

// ListInvoicesByProperty retrieves a property's invoices, newest due date first.
func (s *PostgresStore) ListInvoicesByProperty(ctx context.Context, propertyID string) ([]*models.Invoice, error) {
	return s.selectInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices
		WHERE property_id = $1 ORDER BY due_date DESC, created_at DESC`, propertyID)
}

// ListInvoices retrieves every invoice, oldest first.
func (s *PostgresStore) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.selectInvoices(ctx, `SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at ASC, id ASC`)
}

func (s *PostgresStore) selectInvoices(ctx context.Context, query string, args ...interface{}) ([]*models.Invoice, error) {
	var rows []invoiceRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	invoices := make([]*models.Invoice, len(rows))
	for i, row := range rows {
		invoices[i] = row.toModel()
	}
	return invoices, nil
}

// MarkInvoicePaid sets the invoice's paid flag if it is still unpaid.
func (s *PostgresStore) MarkInvoicePaid(ctx context.Context, invoiceID string, at time.Time) (bool, error) {
	return s.markPaid(ctx, "invoices", invoiceID, at)
}

// GetSplit retrieves a split by ID.
func (s *PostgresStore) GetSplit(ctx context.Context, splitID string) (*models.InvoiceSplit, error) {
	var row splitRow
	err := s.db.GetContext(ctx, &row, `SELECT `+splitColumns+` FROM invoice_splits WHERE id = $1`, splitID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("split %s: %w", splitID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	return row.toModel(), nil
}

// ListSplitsByInvoice retrieves an invoice's splits in creation order.
func (s *PostgresStore) ListSplitsByInvoice(ctx context.Context, invoiceID string) ([]*models.InvoiceSplit, error) {
	return s.selectSplits(ctx, `SELECT `+splitColumns+` FROM invoice_splits
		WHERE invoice_id = $1 ORDER BY position ASC`, invoiceID)
}

// ListSplitsByResident retrieves every split owed by a resident.
func (s *PostgresStore) ListSplitsByResident(ctx context.Context, residentID string) ([]*models.InvoiceSplit, error) {
	return s.selectSplits(ctx, `
		SELECT s.id, s.invoice_id, s.resident_id, s.amount, s.paid, s.paid_at, s.position
		FROM invoice_splits s JOIN invoices i ON i.id = s.invoice_id
		WHERE s.resident_id = $1 ORDER BY i.due_date DESC, s.position ASC`, residentID)
}

func (s *PostgresStore) selectSplits(ctx context.Context, query string, args ...interface{}) ([]*models.InvoiceSplit, error) {
	var rows []splitRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}

	splits := make([]*models.InvoiceSplit, len(rows))
	for i, row := range rows {
		splits[i] = row.toModel()
	}
	return splits, nil
}

// MarkSplitPaid sets the split's paid flag if it is still unpaid.
func (s *PostgresStore) MarkSplitPaid(ctx context.Context, splitID string, at time.Time) (bool, error) {
	return s.markPaid(ctx, "invoice_splits", splitID, at)
}

// markPaid performs the conditional unpaid -> paid update on table.
func (s *PostgresStore) markPaid(ctx context.Context, table, id string, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE `+table+` SET paid = TRUE, paid_at = $1 WHERE id = $2 AND paid = FALSE`,
		at.UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark %s paid: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected > 0 {
		return true, nil
	}

	found, err := s.exists(ctx, table, id)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", id, err)
	}
	if !found {
		return false, fmt.Errorf("%s: %w", id, models.ErrNotFound)
	}
	return false, nil
}
