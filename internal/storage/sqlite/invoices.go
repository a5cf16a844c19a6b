package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/leasehold/internal/models"
)

const invoiceColumns = `id, property_id, title, description, amount, issue_date, due_date,
	paid, paid_at, is_recurring, recurrence_frequency, created_by, created_at`

const splitColumns = `id, invoice_id, resident_id, amount, paid, paid_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// CreateInvoice persists an invoice and its splits in a single transaction.
// Either every row is written or none is.
func (s *SQLiteStore) CreateInvoice(ctx context.Context, invoice *models.Invoice, splits []*models.InvoiceSplit) error {
	if invoice.ID == "" {
		invoice.ID = uuid.New().String()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO invoices (id, property_id, title, description, amount, issue_date, due_date,
		 paid, is_recurring, recurrence_frequency, created_by, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?, ?, ?, ?)`,
		invoice.ID, invoice.PropertyID, invoice.Title, nullString(invoice.Description),
		invoice.Amount.StringFixed(2), invoice.IssueDate.Unix(), invoice.DueDate.Unix(),
		boolToInt(invoice.Recurring), nullString(string(invoice.Frequency)),
		nullString(invoice.CreatedBy), invoice.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert invoice: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO invoice_splits (id, invoice_id, resident_id, amount, paid, position)
		 VALUES (?, ?, ?, ?, 0, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare split insert: %w", err)
	}
	defer stmt.Close()

	for i, split := range splits {
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.InvoiceID = invoice.ID

		if _, err := stmt.ExecContext(ctx, split.ID, split.InvoiceID, split.ResidentID,
			split.Amount.StringFixed(2), i); err != nil {
			return fmt.Errorf("failed to insert split for resident %s: %w", split.ResidentID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	invoice.Paid = false
	invoice.PaidAt = nil
	for _, split := range splits {
		split.Paid = false
		split.PaidAt = nil
	}
	return nil
}

// GetInvoice retrieves an invoice by ID.
func (s *SQLiteStore) GetInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE id = ?`, invoiceID)

	invoice, err := scanInvoice(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("invoice %s: %w", invoiceID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return invoice, nil
}

// ListInvoicesByProperty retrieves a property's invoices, newest due date first.
func (s *SQLiteStore) ListInvoicesByProperty(ctx context.Context, propertyID string) ([]*models.Invoice, error) {
	return s.queryInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM invoices WHERE property_id = ?
		 ORDER BY due_date DESC, created_at DESC`, propertyID)
}

// ListInvoices retrieves every invoice, oldest first.
func (s *SQLiteStore) ListInvoices(ctx context.Context) ([]*models.Invoice, error) {
	return s.queryInvoices(ctx,
		`SELECT `+invoiceColumns+` FROM invoices ORDER BY created_at ASC, id ASC`)
}

func (s *SQLiteStore) queryInvoices(ctx context.Context, query string, args ...interface{}) ([]*models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.Invoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate invoices: %w", err)
	}

	return invoices, nil
}

// MarkInvoicePaid flips the invoice's paid flag. Only an unpaid invoice is
// updated, so concurrent callers agree on exactly one transition.
func (s *SQLiteStore) MarkInvoicePaid(ctx context.Context, invoiceID string, at time.Time) (bool, error) {
	return s.markPaid(ctx, "invoices", invoiceID, at)
}

// GetSplit retrieves a split by ID.
func (s *SQLiteStore) GetSplit(ctx context.Context, splitID string) (*models.InvoiceSplit, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+splitColumns+` FROM invoice_splits WHERE id = ?`, splitID)

	split, err := scanSplit(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("split %s: %w", splitID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get split: %w", err)
	}
	return split, nil
}

// ListSplitsByInvoice retrieves an invoice's splits in the order they were created.
func (s *SQLiteStore) ListSplitsByInvoice(ctx context.Context, invoiceID string) ([]*models.InvoiceSplit, error) {
	return s.querySplits(ctx,
		`SELECT `+splitColumns+` FROM invoice_splits WHERE invoice_id = ? ORDER BY position ASC`, invoiceID)
}

// ListSplitsByResident retrieves every split owed by a resident.
func (s *SQLiteStore) ListSplitsByResident(ctx context.Context, residentID string) ([]*models.InvoiceSplit, error) {
	return s.querySplits(ctx,
		`SELECT s.id, s.invoice_id, s.resident_id, s.amount, s.paid, s.paid_at
		 FROM invoice_splits s JOIN invoices i ON i.id = s.invoice_id
		 WHERE s.resident_id = ? ORDER BY i.due_date DESC, s.position ASC`, residentID)
}

func (s *SQLiteStore) querySplits(ctx context.Context, query string, args ...interface{}) ([]*models.InvoiceSplit, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer rows.Close()

	var splits []*models.InvoiceSplit
	for rows.Next() {
		split, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		splits = append(splits, split)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}

	return splits, nil
}

// MarkSplitPaid flips the split's paid flag if it is still unpaid.
func (s *SQLiteStore) MarkSplitPaid(ctx context.Context, splitID string, at time.Time) (bool, error) {
	return s.markPaid(ctx, "invoice_splits", splitID, at)
}

// markPaid performs the conditional unpaid -> paid update on table.
// A row that is already paid reports changed=false without error.
func (s *SQLiteStore) markPaid(ctx context.Context, table, id string, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE `+table+` SET paid = 1, paid_at = ? WHERE id = ? AND paid = 0`,
		at.Unix(), id,
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

func scanInvoice(row rowScanner) (*models.Invoice, error) {
	invoice := &models.Invoice{}
	var (
		description, frequency, createdBy sql.NullString
		issueDate, dueDate, createdAt     int64
		paidAt                            sql.NullInt64
	)

	err := row.Scan(&invoice.ID, &invoice.PropertyID, &invoice.Title, &description, &invoice.Amount,
		&issueDate, &dueDate, &invoice.Paid, &paidAt, &invoice.Recurring, &frequency, &createdBy, &createdAt)
	if err != nil {
		return nil, err
	}

	invoice.Description = description.String
	invoice.Frequency = models.Frequency(frequency.String)
	invoice.CreatedBy = createdBy.String
	invoice.IssueDate = unixTime(issueDate)
	invoice.DueDate = unixTime(dueDate)
	invoice.CreatedAt = unixTime(createdAt)
	invoice.PaidAt = nullTime(paidAt)
	return invoice, nil
}

func scanSplit(row rowScanner) (*models.InvoiceSplit, error) {
	split := &models.InvoiceSplit{}
	var paidAt sql.NullInt64

	if err := row.Scan(&split.ID, &split.InvoiceID, &split.ResidentID, &split.Amount, &split.Paid, &paidAt); err != nil {
		return nil, err
	}

	split.PaidAt = nullTime(paidAt)
	return split, nil
}
