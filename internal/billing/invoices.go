package billing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/leasehold/internal/calculator"
	"github.com/mmynk/leasehold/internal/models"
	"github.com/mmynk/leasehold/internal/validation"
)

// InvoiceInput describes an invoice to create and how to split it.
type InvoiceInput struct {
	PropertyID  string           `json:"property_id" validate:"required"`
	Title       string           `json:"title" validate:"required,max=200"`
	Description string           `json:"description" validate:"max=2000"`
	Amount      decimal.Decimal  `json:"amount" validate:"positive_decimal,cents,decimal_lte=9999999999.99"`
	IssueDate   time.Time        `json:"issue_date"`
	DueDate     time.Time        `json:"due_date" validate:"required,gtefield=IssueDate"`
	Recurring   bool             `json:"recurring"`
	Frequency   models.Frequency `json:"frequency" validate:"omitempty,oneof=monthly quarterly yearly"`

	// ResidentIDs selects who shares the invoice, in display order.
	ResidentIDs []string                   `json:"resident_ids" validate:"min=1"`
	Strategy    calculator.Strategy        `json:"strategy" validate:"oneof=equal custom"`
	Percentages map[string]decimal.Decimal `json:"percentages"`
}

// InvoiceView is an invoice with its splits and the status derived at read time.
type InvoiceView struct {
	Invoice    *models.Invoice
	Splits     []*SplitView
	Settlement calculator.Settlement
	Status     models.Status
}

// SplitView is a split with its derived status. Invoice is the parent and
// is only populated when listing a resident's splits.
type SplitView struct {
	Split   *models.InvoiceSplit
	Invoice *models.Invoice
	Status  models.Status
}

// CreateInvoice validates in, computes the splits and persists the invoice
// with all of its splits in one transaction. Nothing is written when
// validation or split computation fails.
func (l *Ledger) CreateInvoice(ctx context.Context, in InvoiceInput) (*models.Invoice, []*models.InvoiceSplit, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	if in.IssueDate.IsZero() {
		in.IssueDate = l.now()
	}

	if err := validation.Struct(in); err != nil {
		return nil, nil, err
	}
	if in.Recurring && in.Frequency == "" {
		return nil, nil, models.NewValidationError("frequency", "is required for recurring invoices")
	}
	if !in.Recurring {
		in.Frequency = ""
	}

	if err := l.checkEligible(ctx, in.PropertyID, in.ResidentIDs); err != nil {
		return nil, nil, err
	}

	shares, err := calculator.CalculateSplit(in.Amount, in.ResidentIDs, in.Strategy, in.Percentages)
	if err != nil {
		return nil, nil, err
	}

	invoice := &models.Invoice{
		PropertyID:  in.PropertyID,
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		IssueDate:   in.IssueDate.UTC(),
		DueDate:     in.DueDate.UTC(),
		Recurring:   in.Recurring,
		Frequency:   in.Frequency,
		CreatedBy:   l.identity(ctx),
		CreatedAt:   l.now(),
	}
	splits := make([]*models.InvoiceSplit, len(shares))
	for i, share := range shares {
		splits[i] = &models.InvoiceSplit{
			ResidentID: share.ResidentID,
			Amount:     share.Amount,
		}
	}

	if err := l.store.CreateInvoice(ctx, invoice, splits); err != nil {
		l.logger.Error("Failed to create invoice", "property_id", in.PropertyID, "error", err)
		return nil, nil, models.NewPersistenceError("create invoice", err)
	}

	l.metrics.InvoiceCreated()
	l.logger.Info("Invoice created",
		"invoice_id", invoice.ID,
		"property_id", invoice.PropertyID,
		"amount", invoice.Amount.StringFixed(2),
		"strategy", in.Strategy,
		"splits", len(splits),
	)
	return invoice, splits, nil
}

// checkEligible verifies every selected resident lives at the property.
func (l *Ledger) checkEligible(ctx context.Context, propertyID string, residentIDs []string) error {
	residents, err := l.store.ListResidentsByProperty(ctx, propertyID)
	if err != nil {
		return models.NewPersistenceError("list residents", err)
	}

	eligible := make(map[string]bool, len(residents))
	for _, r := range residents {
		eligible[r.ID] = true
	}
	for _, id := range residentIDs {
		if id != "" && !eligible[id] {
			return models.NewValidationError("resident_ids",
				fmt.Sprintf("resident %s does not belong to property %s", id, propertyID))
		}
	}
	return nil
}

// GetInvoice returns an invoice with its splits and derived status.
func (l *Ledger) GetInvoice(ctx context.Context, invoiceID string) (*InvoiceView, error) {
	invoice, err := l.store.GetInvoice(ctx, invoiceID)
	if err != nil {
		return nil, models.NewPersistenceError("get invoice", err)
	}
	return l.view(ctx, invoice)
}

// ListInvoices returns a property's invoices, newest due date first.
func (l *Ledger) ListInvoices(ctx context.Context, propertyID string) ([]*InvoiceView, error) {
	invoices, err := l.store.ListInvoicesByProperty(ctx, propertyID)
	if err != nil {
		return nil, models.NewPersistenceError("list invoices", err)
	}

	views := make([]*InvoiceView, 0, len(invoices))
	for _, invoice := range invoices {
		v, err := l.view(ctx, invoice)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

// ListResidentSplits returns every split a resident owes, each with the
// parent invoice and a status derived from its due date.
func (l *Ledger) ListResidentSplits(ctx context.Context, residentID string) ([]*SplitView, error) {
	splits, err := l.store.ListSplitsByResident(ctx, residentID)
	if err != nil {
		return nil, models.NewPersistenceError("list resident splits", err)
	}

	now := l.now()
	invoices := make(map[string]*models.Invoice)
	views := make([]*SplitView, 0, len(splits))
	for _, split := range splits {
		invoice, ok := invoices[split.InvoiceID]
		if !ok {
			invoice, err = l.store.GetInvoice(ctx, split.InvoiceID)
			if err != nil {
				return nil, models.NewPersistenceError("get invoice", err)
			}
			invoices[split.InvoiceID] = invoice
		}
		views = append(views, &SplitView{
			Split:   split,
			Invoice: invoice,
			Status:  calculator.DeriveStatus(split.Paid, invoice.DueDate, now),
		})
	}
	return views, nil
}

// view loads an invoice's splits and derives its settlement and status.
func (l *Ledger) view(ctx context.Context, invoice *models.Invoice) (*InvoiceView, error) {
	splits, err := l.store.ListSplitsByInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, models.NewPersistenceError("list splits", err)
	}

	now := l.now()
	settlement := calculator.Summarize(invoice.Amount, splits)

	v := &InvoiceView{
		Invoice:    invoice,
		Splits:     make([]*SplitView, len(splits)),
		Settlement: settlement,
		Status:     calculator.DeriveStatus(isSettled(invoice, settlement), invoice.DueDate, now),
	}
	for i, split := range splits {
		v.Splits[i] = &SplitView{
			Split:  split,
			Status: calculator.DeriveStatus(split.Paid, invoice.DueDate, now),
		}
	}
	return v, nil
}

// isSettled reports whether an invoice counts as paid. The derived
// settlement decides; the stored flag is only consulted for an invoice
// without splits.
func isSettled(invoice *models.Invoice, s calculator.Settlement) bool {
	if s.SplitCount == 0 {
		return invoice.Paid
	}
	return s.FullySettled
}
