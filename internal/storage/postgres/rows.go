package postgres

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/leasehold/internal/models"
)

// Row types mirror the table columns for sqlx struct scanning and named binds.

type invoiceRow struct {
	ID          string          `db:"id"`
	PropertyID  string          `db:"property_id"`
	Title       string          `db:"title"`
	Description sql.NullString  `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	IssueDate   time.Time       `db:"issue_date"`
	DueDate     time.Time       `db:"due_date"`
	Paid        bool            `db:"paid"`
	PaidAt      *time.Time      `db:"paid_at"`
	Recurring   bool            `db:"is_recurring"`
	Frequency   sql.NullString  `db:"recurrence_frequency"`
	CreatedBy   sql.NullString  `db:"created_by"`
	CreatedAt   time.Time       `db:"created_at"`
}

func newInvoiceRow(i *models.Invoice) invoiceRow {
	return invoiceRow{
		ID:          i.ID,
		PropertyID:  i.PropertyID,
		Title:       i.Title,
		Description: nullString(i.Description),
		Amount:      i.Amount,
		IssueDate:   i.IssueDate.UTC(),
		DueDate:     i.DueDate.UTC(),
		Recurring:   i.Recurring,
		Frequency:   nullString(string(i.Frequency)),
		CreatedBy:   nullString(i.CreatedBy),
		CreatedAt:   i.CreatedAt.UTC(),
	}
}

func (r invoiceRow) toModel() *models.Invoice {
	return &models.Invoice{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		Title:       r.Title,
		Description: r.Description.String,
		Amount:      r.Amount,
		IssueDate:   r.IssueDate.UTC(),
		DueDate:     r.DueDate.UTC(),
		Paid:        r.Paid,
		PaidAt:      utc(r.PaidAt),
		Recurring:   r.Recurring,
		Frequency:   models.Frequency(r.Frequency.String),
		CreatedBy:   r.CreatedBy.String,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

type splitRow struct {
	ID         string          `db:"id"`
	InvoiceID  string          `db:"invoice_id"`
	ResidentID string          `db:"resident_id"`
	Amount     decimal.Decimal `db:"amount"`
	Paid       bool            `db:"paid"`
	PaidAt     *time.Time      `db:"paid_at"`
	Position   int             `db:"position"`
}

func (r splitRow) toModel() *models.InvoiceSplit {
	return &models.InvoiceSplit{
		ID:         r.ID,
		InvoiceID:  r.InvoiceID,
		ResidentID: r.ResidentID,
		Amount:     r.Amount,
		Paid:       r.Paid,
		PaidAt:     utc(r.PaidAt),
	}
}

type propertyRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Address   string    `db:"address"`
	ManagerID string    `db:"manager_id"`
	CreatedAt time.Time `db:"created_at"`
}

func (r propertyRow) toModel() *models.Property {
	return &models.Property{
		ID:        r.ID,
		Name:      r.Name,
		Address:   r.Address,
		ManagerID: r.ManagerID,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type residentRow struct {
	ID         string         `db:"id"`
	PropertyID string         `db:"property_id"`
	Name       string         `db:"name"`
	Unit       string         `db:"unit"`
	UserID     sql.NullString `db:"user_id"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r residentRow) toModel() *models.Resident {
	return &models.Resident{
		ID:         r.ID,
		PropertyID: r.PropertyID,
		Name:       r.Name,
		Unit:       r.Unit,
		UserID:     r.UserID.String,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
