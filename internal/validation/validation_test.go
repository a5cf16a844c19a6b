package validation

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leasehold/internal/models"
)

type charge struct {
	Label  string          `json:"label" validate:"required,max=10"`
	Amount decimal.Decimal `json:"amount" validate:"positive_decimal,cents,decimal_lte=1000.00"`
	Email  string          `json:"email" validate:"omitempty,email"`
	Start  time.Time       `json:"start"`
	End    time.Time       `json:"end" validate:"gtefield=Start"`
}

func validCharge() charge {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	return charge{
		Label:  "Water",
		Amount: decimal.RequireFromString("12.50"),
		Start:  start,
		End:    start.AddDate(0, 0, 14),
	}
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*charge)
		wantField string
	}{
		{"valid", func(*charge) {}, ""},
		{"missing label", func(c *charge) { c.Label = "" }, "label"},
		{"long label", func(c *charge) { c.Label = "Electricity bill" }, "label"},
		{"zero amount", func(c *charge) { c.Amount = decimal.Zero }, "amount"},
		{"negative amount", func(c *charge) { c.Amount = decimal.RequireFromString("-1") }, "amount"},
		{"sub-cent amount", func(c *charge) { c.Amount = decimal.RequireFromString("1.005") }, "amount"},
		{"amount at limit", func(c *charge) { c.Amount = decimal.RequireFromString("1000") }, ""},
		{"amount above limit", func(c *charge) { c.Amount = decimal.RequireFromString("1000.01") }, "amount"},
		{"bad email", func(c *charge) { c.Email = "nobody" }, "email"},
		{"end before start", func(c *charge) { c.End = c.Start.AddDate(0, 0, -1) }, "end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCharge()
			tt.mutate(&c)

			err := Struct(c)
			if tt.wantField == "" {
				require.NoError(t, err)
				return
			}

			var verr *models.ValidationError
			require.True(t, errors.As(err, &verr), "got %T: %v", err, err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestStructUpperBoundMessage(t *testing.T) {
	c := validCharge()
	c.Amount = decimal.RequireFromString("5000")

	var verr *models.ValidationError
	require.ErrorAs(t, Struct(c), &verr)
	assert.Equal(t, "must be at most 1000.00", verr.Message)
}
