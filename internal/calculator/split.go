package calculator

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/mmynk/leasehold/internal/models"
)

// Strategy selects how an invoice total is divided among residents.
type Strategy string

const (
	// StrategyEqual divides the total evenly, leftover cents going to the
	// first residents in selection order.
	StrategyEqual Strategy = "equal"

	// StrategyCustom divides the total by per-resident percentages that
	// must sum to 100.
	StrategyCustom Strategy = "custom"
)

// PercentageSumMessage is the message returned when custom percentages do not add up.
const PercentageSumMessage = "split percentages must sum to 100%"

var (
	hundred = decimal.NewFromInt(100)

	// percentageTolerance is how far the percentage sum may drift from 100.
	percentageTolerance = decimal.RequireFromString("0.01")

	// maxTotal is the largest total whose cents fit in an int64.
	maxTotal = decimal.New(math.MaxInt64, -2)
)

// Share is one resident's computed portion of an invoice total.
type Share struct {
	ResidentID string
	Amount     decimal.Decimal
}

// CalculateSplit computes how much each resident owes.
// Shares are returned in the order of residentIDs and always sum to total
// exactly; percentages are only consulted for StrategyCustom.
func CalculateSplit(total decimal.Decimal, residentIDs []string, strategy Strategy, percentages map[string]decimal.Decimal) ([]Share, error) {
	if !total.IsPositive() {
		return nil, models.NewValidationError("amount", "amount must be greater than zero")
	}
	if !total.Equal(total.Round(2)) {
		return nil, models.NewValidationError("amount", "amount must have at most two decimal places")
	}
	if total.GreaterThan(maxTotal) {
		return nil, models.NewValidationError("amount", fmt.Sprintf("amount must be at most %s", maxTotal.StringFixed(2)))
	}
	if len(residentIDs) == 0 {
		return nil, models.NewValidationError("resident_ids", "must select at least one resident")
	}

	seen := make(map[string]bool, len(residentIDs))
	for _, id := range residentIDs {
		if id == "" {
			return nil, models.NewValidationError("resident_ids", "resident id cannot be empty")
		}
		if seen[id] {
			return nil, models.NewValidationError("resident_ids", fmt.Sprintf("resident %s selected more than once", id))
		}
		seen[id] = true
	}

	totalCents := total.Mul(hundred).IntPart()

	var exact []decimal.Decimal
	switch strategy {
	case StrategyEqual:
		exact = equalWeights(totalCents, len(residentIDs))
	case StrategyCustom:
		var err error
		exact, err = customWeights(totalCents, residentIDs, percentages)
		if err != nil {
			return nil, err
		}
	default:
		return nil, models.NewValidationError("strategy", fmt.Sprintf("unknown split strategy %q", strategy))
	}

	cents := largestRemainder(totalCents, exact)

	shares := make([]Share, len(residentIDs))
	for i, id := range residentIDs {
		shares[i] = Share{
			ResidentID: id,
			Amount:     decimal.New(cents[i], -2),
		}
	}
	return shares, nil
}

// equalWeights returns each resident's exact share in cents.
func equalWeights(totalCents int64, n int) []decimal.Decimal {
	each := decimal.NewFromInt(totalCents).Div(decimal.NewFromInt(int64(n)))
	exact := make([]decimal.Decimal, n)
	for i := range exact {
		exact[i] = each
	}
	return exact
}

// customWeights validates percentages and returns each resident's exact
// share in cents: total × pct / 100.
func customWeights(totalCents int64, residentIDs []string, percentages map[string]decimal.Decimal) ([]decimal.Decimal, error) {
	sum := decimal.Zero
	exact := make([]decimal.Decimal, len(residentIDs))
	for i, id := range residentIDs {
		pct, ok := percentages[id]
		if !ok {
			return nil, models.NewValidationError("percentages", fmt.Sprintf("missing percentage for resident %s", id))
		}
		if pct.IsNegative() {
			return nil, models.NewValidationError("percentages", fmt.Sprintf("percentage for resident %s cannot be negative", id))
		}
		sum = sum.Add(pct)
		exact[i] = decimal.NewFromInt(totalCents).Mul(pct).Div(hundred)
	}

	if sum.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return nil, models.NewValidationError("percentages", PercentageSumMessage)
	}
	return exact, nil
}

// largestRemainder rounds exact cent shares down and hands out the
// difference to totalCents one cent at a time, largest fractional part
// first (ties by position). A negative difference, possible when custom
// percentages sum slightly above 100, is taken back smallest fraction first.
func largestRemainder(totalCents int64, exact []decimal.Decimal) []int64 {
	cents := make([]int64, len(exact))
	fractions := make([]decimal.Decimal, len(exact))
	var allocated int64
	for i, e := range exact {
		floor := e.Floor()
		cents[i] = floor.IntPart()
		fractions[i] = e.Sub(floor)
		allocated += cents[i]
	}

	order := make([]int, len(exact))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return fractions[order[a]].GreaterThan(fractions[order[b]])
	})

	remaining := totalCents - allocated
	for remaining > 0 {
		for _, i := range order {
			if remaining == 0 {
				break
			}
			cents[i]++
			remaining--
		}
	}
	for remaining < 0 {
		taken := false
		for k := len(order) - 1; k >= 0 && remaining < 0; k-- {
			i := order[k]
			if cents[i] > 0 {
				cents[i]--
				remaining++
				taken = true
			}
		}
		if !taken {
			break
		}
	}
	return cents
}
