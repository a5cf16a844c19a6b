package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the recurrence period of a recurring invoice.
type Frequency string

const (
	FrequencyMonthly   Frequency = "monthly"
	FrequencyQuarterly Frequency = "quarterly"
	FrequencyYearly    Frequency = "yearly"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyMonthly, FrequencyQuarterly, FrequencyYearly:
		return true
	}
	return false
}

// Invoice represents a billable charge issued against a property.
// Its Paid flag is a cached hint; the settlement derived from the
// invoice's splits is authoritative.
type Invoice struct {
	// ID is the unique identifier for the invoice (UUID format).
	ID string

	// PropertyID is the property this invoice is issued against.
	PropertyID string

	// Title is the human-readable name for the invoice (e.g., "March rent").
	Title string

	// Description is optional free text.
	Description string

	// Amount is the total amount, always positive with at most two decimal places.
	Amount decimal.Decimal

	IssueDate time.Time
	DueDate   time.Time

	// Paid is set once by a manager action or by settlement propagation.
	Paid   bool
	PaidAt *time.Time

	// Recurring invoices carry a Frequency; one-off invoices leave it empty.
	Recurring bool
	Frequency Frequency

	// CreatedBy is the user ID of the manager who issued the invoice.
	CreatedBy string

	CreatedAt time.Time
}

// InvoiceSplit represents one resident's share of an invoice.
// All splits of an invoice are created together with it and the sum of
// their amounts equals the invoice amount.
type InvoiceSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// InvoiceID is the invoice this split belongs to.
	InvoiceID string

	// ResidentID is the resident who owes this share.
	ResidentID string

	// Amount is the owed amount, rounded to cents.
	Amount decimal.Decimal

	Paid   bool
	PaidAt *time.Time
}

// Status is the presentation badge of an invoice or split.
// It depends on the current time and must be recomputed on every read.
type Status string

const (
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusPending Status = "pending"
)
