package calculator

import (
	"testing"
	"time"

	"github.com/mmynk/leasehold/internal/models"
)

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		paid bool
		due  time.Time
		want models.Status
	}{
		{"unpaid past due is overdue", false, now.AddDate(0, 0, -1), models.StatusOverdue},
		{"unpaid future due is pending", false, now.AddDate(0, 0, 1), models.StatusPending},
		{"unpaid due exactly now is pending", false, now, models.StatusPending},
		{"paid past due is paid", true, now.AddDate(0, -1, 0), models.StatusPaid},
		{"paid future due is paid", true, now.AddDate(0, 1, 0), models.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveStatus(tt.paid, tt.due, now); got != tt.want {
				t.Errorf("DeriveStatus() = %s, want %s", got, tt.want)
			}
		})
	}
}
