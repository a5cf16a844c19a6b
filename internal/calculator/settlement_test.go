package calculator

import (
	"testing"

	"github.com/mmynk/leasehold/internal/models"
)

func TestSummarize(t *testing.T) {
	split := func(amount string, paid bool) *models.InvoiceSplit {
		return &models.InvoiceSplit{Amount: d(amount), Paid: paid}
	}

	tests := []struct {
		name            string
		splits          []*models.InvoiceSplit
		wantPaid        string
		wantOutstanding string
		wantSettled     bool
	}{
		{
			name:            "nothing paid",
			splits:          []*models.InvoiceSplit{split("30", false), split("30", false), split("30", false)},
			wantPaid:        "0",
			wantOutstanding: "90",
		},
		{
			name:            "two of three paid",
			splits:          []*models.InvoiceSplit{split("30", true), split("30", true), split("30", false)},
			wantPaid:        "60",
			wantOutstanding: "30",
		},
		{
			name:            "all paid",
			splits:          []*models.InvoiceSplit{split("30", true), split("30", true), split("30", true)},
			wantPaid:        "90",
			wantOutstanding: "0",
			wantSettled:     true,
		},
		{
			name:            "no splits is never settled",
			splits:          nil,
			wantPaid:        "0",
			wantOutstanding: "90",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Summarize(d("90"), tt.splits)
			if !s.Paid.Equal(d(tt.wantPaid)) {
				t.Errorf("Paid = %s, want %s", s.Paid, tt.wantPaid)
			}
			if !s.Outstanding.Equal(d(tt.wantOutstanding)) {
				t.Errorf("Outstanding = %s, want %s", s.Outstanding, tt.wantOutstanding)
			}
			if s.FullySettled != tt.wantSettled {
				t.Errorf("FullySettled = %v, want %v", s.FullySettled, tt.wantSettled)
			}
			if s.SplitCount != len(tt.splits) {
				t.Errorf("SplitCount = %d, want %d", s.SplitCount, len(tt.splits))
			}
		})
	}
}

func TestUnpaid(t *testing.T) {
	splits := []*models.InvoiceSplit{
		{ID: "a", Paid: true},
		{ID: "b"},
		{ID: "c"},
	}

	unpaid := Unpaid(splits)
	if len(unpaid) != 2 || unpaid[0].ID != "b" || unpaid[1].ID != "c" {
		t.Errorf("Unpaid() = %v, want splits b and c", unpaid)
	}
}
