package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/leasehold/pkg/api"
)

func splitAmounts(inv *api.Invoice) []string {
	amounts := make([]string, len(inv.Splits))
	for i, s := range inv.Splits {
		amounts[i] = s.Amount
	}
	return amounts
}

func TestPreviewSplit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.invoices.PreviewSplit(ctx, as(managerID, &api.PreviewSplitRequest{
		Amount:      "100.00",
		ResidentIDs: []string{"a", "b", "c"},
		Strategy:    "equal",
	}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Shares, 3)
	assert.Equal(t, "33.34", resp.Msg.Shares[0].Amount)
	assert.Equal(t, "33.33", resp.Msg.Shares[1].Amount)
	assert.Equal(t, "33.33", resp.Msg.Shares[2].Amount)

	_, err = env.invoices.PreviewSplit(ctx, as(managerID, &api.PreviewSplitRequest{
		Amount:      "100.00",
		ResidentIDs: []string{"a", "b"},
		Strategy:    "custom",
		Percentages: map[string]string{"a": "60", "b": "39.5"},
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = env.invoices.PreviewSplit(ctx, as(managerID, &api.PreviewSplitRequest{
		Amount:      "ten",
		ResidentIDs: []string{"a"},
		Strategy:    "equal",
	}))
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	_, err = env.invoices.PreviewSplit(ctx, as("", &api.PreviewSplitRequest{Amount: "1.00"}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestCreateInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	inv := env.createInvoice(t, "90.00", testNow.AddDate(0, 0, 10))
	assert.Equal(t, "90.00", inv.Amount)
	assert.Equal(t, managerID, inv.CreatedBy)
	assert.Equal(t, "pending", inv.Status)
	assert.Equal(t, "0.00", inv.PaidAmount)
	assert.Equal(t, "90.00", inv.OutstandingAmount)
	assert.Equal(t, []string{"30.00", "30.00", "30.00"}, splitAmounts(inv))

	t.Run("custom percentages", func(t *testing.T) {
		ids := env.residentIDs()
		resp, err := env.invoices.CreateInvoice(ctx, as(managerID, &api.CreateInvoiceRequest{
			PropertyID:  env.property.ID,
			Title:       "Electricity",
			Amount:      "200.00",
			DueDate:     testNow.AddDate(0, 1, 0).Unix(),
			ResidentIDs: ids[:2],
			Strategy:    "custom",
			Percentages: map[string]string{ids[0]: "75", ids[1]: "25"},
		}))
		require.NoError(t, err)
		assert.Equal(t, []string{"150.00", "50.00"}, splitAmounts(resp.Msg.Invoice))
	})

	t.Run("invalid percentages persist nothing", func(t *testing.T) {
		ids := env.residentIDs()
		before, err := env.invoices.ListInvoices(ctx, as(managerID, &api.ListInvoicesRequest{PropertyID: env.property.ID}))
		require.NoError(t, err)

		_, err = env.invoices.CreateInvoice(ctx, as(managerID, &api.CreateInvoiceRequest{
			PropertyID:  env.property.ID,
			Title:       "Gas",
			Amount:      "100.00",
			DueDate:     testNow.AddDate(0, 1, 0).Unix(),
			ResidentIDs: ids[:2],
			Strategy:    "custom",
			Percentages: map[string]string{ids[0]: "50.5", ids[1]: "50"},
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

		after, err := env.invoices.ListInvoices(ctx, as(managerID, &api.ListInvoicesRequest{PropertyID: env.property.ID}))
		require.NoError(t, err)
		assert.Len(t, after.Msg.Invoices, len(before.Msg.Invoices))
	})

	t.Run("amount beyond the storable range", func(t *testing.T) {
		_, err := env.invoices.CreateInvoice(ctx, as(managerID, &api.CreateInvoiceRequest{
			PropertyID:  env.property.ID,
			Title:       "Roof",
			Amount:      "10000000000.00",
			DueDate:     testNow.AddDate(0, 1, 0).Unix(),
			ResidentIDs: env.residentIDs(),
			Strategy:    "equal",
		}))
		assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
	})

	t.Run("only the manager may create", func(t *testing.T) {
		req := &api.CreateInvoiceRequest{
			PropertyID:  env.property.ID,
			Title:       "Rent",
			Amount:      "10.00",
			DueDate:     testNow.Unix(),
			ResidentIDs: env.residentIDs(),
			Strategy:    "equal",
		}

		_, err := env.invoices.CreateInvoice(ctx, as(residentID, req))
		assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

		_, err = env.invoices.CreateInvoice(ctx, as("", req))
		assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := env.invoices.CreateInvoice(ctx, as(managerID, &api.CreateInvoiceRequest{
			PropertyID: "missing",
			Title:      "Rent",
			Amount:     "10.00",
		}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
	})
}

func TestGetInvoiceAccess(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.createInvoice(t, "90.00", testNow.AddDate(0, 0, -1))

	resp, err := env.invoices.GetInvoice(ctx, as(residentID, &api.GetInvoiceRequest{InvoiceID: inv.ID}))
	require.NoError(t, err)
	assert.Equal(t, "overdue", resp.Msg.Invoice.Status)
	assert.Len(t, resp.Msg.Invoice.Splits, 3)

	_, err = env.invoices.GetInvoice(ctx, as(managerID, &api.GetInvoiceRequest{InvoiceID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = env.invoices.ListInvoices(ctx, as(residentID, &api.ListInvoicesRequest{PropertyID: env.property.ID}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestOtherPropertiesLookMissing(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.createInvoice(t, "90.00", testNow.AddDate(0, 0, 5))

	// An outsider gets the same answer for existing and missing rows, and
	// the error does not name the property.
	for _, id := range []string{inv.ID, "missing"} {
		_, err := env.invoices.GetInvoice(ctx, as(outsiderID, &api.GetInvoiceRequest{InvoiceID: id}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "invoice %s", id)
		assert.NotContains(t, err.Error(), env.property.ID)

		_, err = env.invoices.MarkInvoicePaid(ctx, as(outsiderID, &api.MarkInvoicePaidRequest{InvoiceID: id}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "invoice %s", id)
	}

	for _, id := range []string{inv.Splits[0].ID, "missing"} {
		_, err := env.invoices.MarkSplitPaid(ctx, as(outsiderID, &api.MarkSplitPaidRequest{SplitID: id}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "split %s", id)
	}

	for _, id := range []string{env.residents[1].ID, "missing"} {
		_, err := env.invoices.ListResidentSplits(ctx, as(outsiderID, &api.ListResidentSplitsRequest{ResidentID: id}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "resident %s", id)
	}

	for _, id := range []string{env.property.ID, "missing"} {
		_, err := env.invoices.ListInvoices(ctx, as(outsiderID, &api.ListInvoicesRequest{PropertyID: id}))
		assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err), "property %s", id)
	}

	// Nothing was paid along the way.
	resp, err := env.invoices.GetInvoice(ctx, as(managerID, &api.GetInvoiceRequest{InvoiceID: inv.ID}))
	require.NoError(t, err)
	assert.Equal(t, "0.00", resp.Msg.Invoice.PaidAmount)
}

func TestMarkSplitPaidSettlesInvoice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.createInvoice(t, "90.00", testNow.AddDate(0, 0, 5))

	// The linked resident pays their own split.
	resp, err := env.invoices.MarkSplitPaid(ctx, as(residentID, &api.MarkSplitPaidRequest{SplitID: inv.Splits[0].ID}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Changed)
	assert.False(t, resp.Msg.Settled)
	assert.Equal(t, "pending", resp.Msg.Invoice.Status)
	assert.Equal(t, "30.00", resp.Msg.Invoice.PaidAmount)

	// Residents cannot pay someone else's split.
	_, err = env.invoices.MarkSplitPaid(ctx, as(residentID, &api.MarkSplitPaidRequest{SplitID: inv.Splits[1].ID}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	_, err = env.invoices.MarkSplitPaid(ctx, as(managerID, &api.MarkSplitPaidRequest{SplitID: inv.Splits[1].ID}))
	require.NoError(t, err)

	resp, err = env.invoices.MarkSplitPaid(ctx, as(managerID, &api.MarkSplitPaidRequest{SplitID: inv.Splits[2].ID}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Settled)
	assert.True(t, resp.Msg.Invoice.FullySettled)
	assert.True(t, resp.Msg.Invoice.Paid)
	assert.Equal(t, "paid", resp.Msg.Invoice.Status)
	assert.Equal(t, "0.00", resp.Msg.Invoice.OutstandingAmount)

	// Paying again is a no-op.
	resp, err = env.invoices.MarkSplitPaid(ctx, as(managerID, &api.MarkSplitPaidRequest{SplitID: inv.Splits[2].ID}))
	require.NoError(t, err)
	assert.False(t, resp.Msg.Changed)
	assert.True(t, resp.Msg.Settled)

	_, err = env.invoices.MarkSplitPaid(ctx, as(managerID, &api.MarkSplitPaidRequest{SplitID: "missing"}))
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestMarkInvoicePaidCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	inv := env.createInvoice(t, "100.00", testNow.AddDate(0, 0, -3))

	_, err := env.invoices.MarkInvoicePaid(ctx, as(residentID, &api.MarkInvoicePaidRequest{InvoiceID: inv.ID}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))

	resp, err := env.invoices.MarkInvoicePaid(ctx, as(managerID, &api.MarkInvoicePaidRequest{InvoiceID: inv.ID}))
	require.NoError(t, err)
	assert.True(t, resp.Msg.Changed)
	assert.Equal(t, "paid", resp.Msg.Invoice.Status)
	for _, split := range resp.Msg.Invoice.Splits {
		assert.True(t, split.Paid, "split %s", split.ID)
		assert.Equal(t, "paid", split.Status)
	}

	resp, err = env.invoices.MarkInvoicePaid(ctx, as(managerID, &api.MarkInvoicePaidRequest{InvoiceID: inv.ID}))
	require.NoError(t, err)
	assert.False(t, resp.Msg.Changed)
}

func TestListResidentSplits(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	older := env.createInvoice(t, "30.00", testNow.AddDate(0, 0, -7))
	newer := env.createInvoice(t, "60.00", testNow.AddDate(0, 0, 7))

	resp, err := env.invoices.ListResidentSplits(ctx, as(residentID, &api.ListResidentSplitsRequest{ResidentID: env.residents[0].ID}))
	require.NoError(t, err)
	require.Len(t, resp.Msg.Splits, 2)

	assert.Equal(t, newer.ID, resp.Msg.Splits[0].Split.InvoiceID)
	assert.Equal(t, "20.00", resp.Msg.Splits[0].Split.Amount)
	assert.Equal(t, "pending", resp.Msg.Splits[0].Split.Status)
	assert.Equal(t, "Water", resp.Msg.Splits[0].InvoiceTitle)

	assert.Equal(t, older.ID, resp.Msg.Splits[1].Split.InvoiceID)
	assert.Equal(t, "overdue", resp.Msg.Splits[1].Split.Status)

	// The manager can see any resident; other residents cannot.
	_, err = env.invoices.ListResidentSplits(ctx, as(managerID, &api.ListResidentSplitsRequest{ResidentID: env.residents[1].ID}))
	require.NoError(t, err)

	_, err = env.invoices.ListResidentSplits(ctx, as(residentID, &api.ListResidentSplitsRequest{ResidentID: env.residents[1].ID}))
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}
