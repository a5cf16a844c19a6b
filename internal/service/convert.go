package service

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/leasehold/internal/billing"
	"github.com/mmynk/leasehold/internal/models"
	"github.com/mmynk/leasehold/pkg/api"
)

func unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}

func unixPtr(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return unix(*t)
}

// fromUnix converts wire seconds to UTC; 0 is the zero time.
func fromUnix(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseAmount reads a decimal wire amount, reporting a ValidationError for field.
func parseAmount(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, models.NewValidationError(field, "is required")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, models.NewValidationError(field, fmt.Sprintf("invalid amount %q", s))
	}
	return d, nil
}

func parsePercentages(in map[string]string) (map[string]decimal.Decimal, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]decimal.Decimal, len(in))
	for residentID, s := range in {
		pct, err := decimal.NewFromString(s)
		if err != nil {
			return nil, models.NewValidationError("percentages",
				fmt.Sprintf("invalid percentage %q for resident %s", s, residentID))
		}
		out[residentID] = pct
	}
	return out, nil
}

func toAPIInvoice(v *billing.InvoiceView) *api.Invoice {
	inv := v.Invoice
	out := &api.Invoice{
		ID:                inv.ID,
		PropertyID:        inv.PropertyID,
		Title:             inv.Title,
		Description:       inv.Description,
		Amount:            money(inv.Amount),
		IssueDate:         unix(inv.IssueDate),
		DueDate:           unix(inv.DueDate),
		Paid:              inv.Paid,
		PaidAt:            unixPtr(inv.PaidAt),
		Recurring:         inv.Recurring,
		Frequency:         string(inv.Frequency),
		CreatedBy:         inv.CreatedBy,
		CreatedAt:         unix(inv.CreatedAt),
		Status:            string(v.Status),
		PaidAmount:        money(v.Settlement.Paid),
		OutstandingAmount: money(v.Settlement.Outstanding),
		FullySettled:      v.Settlement.FullySettled,
		Splits:            make([]*api.Split, len(v.Splits)),
	}
	for i, sv := range v.Splits {
		out.Splits[i] = toAPISplit(sv)
	}
	return out
}

func toAPISplit(sv *billing.SplitView) *api.Split {
	s := sv.Split
	return &api.Split{
		ID:         s.ID,
		InvoiceID:  s.InvoiceID,
		ResidentID: s.ResidentID,
		Amount:     money(s.Amount),
		Paid:       s.Paid,
		PaidAt:     unixPtr(s.PaidAt),
		Status:     string(sv.Status),
	}
}

func toAPIResidentSplit(sv *billing.SplitView) *api.ResidentSplit {
	return &api.ResidentSplit{
		Split:        toAPISplit(sv),
		PropertyID:   sv.Invoice.PropertyID,
		InvoiceTitle: sv.Invoice.Title,
		DueDate:      unix(sv.Invoice.DueDate),
	}
}

func toAPIProperty(p *models.Property) *api.Property {
	return &api.Property{
		ID:        p.ID,
		Name:      p.Name,
		Address:   p.Address,
		ManagerID: p.ManagerID,
		CreatedAt: unix(p.CreatedAt),
	}
}

func toAPIResidents(residents []*models.Resident) []*api.Resident {
	out := make([]*api.Resident, len(residents))
	for i, r := range residents {
		out[i] = &api.Resident{
			ID:         r.ID,
			PropertyID: r.PropertyID,
			Name:       r.Name,
			Unit:       r.Unit,
			UserID:     r.UserID,
			CreatedAt:  unix(r.CreatedAt),
		}
	}
	return out
}

func toAPIUser(u *models.User) *api.User {
	return &api.User{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
