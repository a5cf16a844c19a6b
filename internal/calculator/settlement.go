package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/leasehold/internal/models"
)

// Settlement is the payment state of an invoice derived from its splits.
// It is the authoritative answer to "is this invoice paid"; the invoice's
// stored flag only caches it.
type Settlement struct {
	Total       decimal.Decimal // Invoice amount
	Paid        decimal.Decimal // Sum of paid split amounts
	Outstanding decimal.Decimal // Total - Paid
	PaidCount   int
	SplitCount  int

	// FullySettled is true when the invoice has splits and all are paid.
	FullySettled bool
}

// Summarize aggregates split payment state for one invoice.
func Summarize(total decimal.Decimal, splits []*models.InvoiceSplit) Settlement {
	s := Settlement{
		Total:      total,
		Paid:       decimal.Zero,
		SplitCount: len(splits),
	}

	for _, split := range splits {
		if split.Paid {
			s.PaidCount++
			s.Paid = s.Paid.Add(split.Amount)
		}
	}

	s.Outstanding = total.Sub(s.Paid)
	s.FullySettled = s.SplitCount > 0 && s.PaidCount == s.SplitCount
	return s
}

// Unpaid returns the splits that still have to be marked paid.
func Unpaid(splits []*models.InvoiceSplit) []*models.InvoiceSplit {
	var unpaid []*models.InvoiceSplit
	for _, split := range splits {
		if !split.Paid {
			unpaid = append(unpaid, split)
		}
	}
	return unpaid
}
