package calculator

import (
	"time"

	"github.com/mmynk/leasehold/internal/models"
)

// DeriveStatus computes the badge for an invoice or split.
// Paid wins regardless of the due date; an unpaid item is overdue once
// now is strictly after its due date.
func DeriveStatus(paid bool, due, now time.Time) models.Status {
	if paid {
		return models.StatusPaid
	}
	if due.Before(now) {
		return models.StatusOverdue
	}
	return models.StatusPending
}
