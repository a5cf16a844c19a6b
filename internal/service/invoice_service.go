package service

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/leasehold/internal/billing"
	"github.com/mmynk/leasehold/internal/calculator"
	"github.com/mmynk/leasehold/internal/models"
	"github.com/mmynk/leasehold/internal/storage"
	"github.com/mmynk/leasehold/pkg/api"
)

// InvoiceService implements the Connect InvoiceService on top of the
// billing ledger. It resolves the caller's ownership before delegating.
type InvoiceService struct {
	api.UnimplementedInvoiceServiceHandler
	ledger *billing.Ledger
	access access
	logger *slog.Logger
}

// NewInvoiceService creates an InvoiceService over ledger and the store it wraps.
func NewInvoiceService(ledger *billing.Ledger, store storage.Store, logger *slog.Logger) *InvoiceService {
	return &InvoiceService{
		ledger: ledger,
		access: access{store: store},
		logger: logger,
	}
}

// PreviewSplit computes the shares an invoice would produce without saving anything.
func (s *InvoiceService) PreviewSplit(ctx context.Context, req *connect.Request[api.PreviewSplitRequest]) (*connect.Response[api.PreviewSplitResponse], error) {
	s.logger.Debug("PreviewSplit request received",
		"strategy", req.Msg.Strategy,
		"residents_count", len(req.Msg.ResidentIDs),
	)

	if _, err := caller(ctx); err != nil {
		return nil, connectError(err)
	}

	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, connectError(err)
	}
	percentages, err := parsePercentages(req.Msg.Percentages)
	if err != nil {
		return nil, connectError(err)
	}

	shares, err := calculator.CalculateSplit(amount, req.Msg.ResidentIDs, calculator.Strategy(req.Msg.Strategy), percentages)
	if err != nil {
		return nil, connectError(err)
	}

	out := make([]*api.Share, len(shares))
	for i, share := range shares {
		out[i] = &api.Share{ResidentID: share.ResidentID, Amount: money(share.Amount)}
	}
	return connect.NewResponse(&api.PreviewSplitResponse{Shares: out}), nil
}

// CreateInvoice issues an invoice against a property the caller manages.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *connect.Request[api.CreateInvoiceRequest]) (*connect.Response[api.CreateInvoiceResponse], error) {
	s.logger.Info("CreateInvoice request received",
		"property_id", req.Msg.PropertyID,
		"title", req.Msg.Title,
		"strategy", req.Msg.Strategy,
		"residents_count", len(req.Msg.ResidentIDs),
	)

	if _, err := s.access.managedProperty(ctx, req.Msg.PropertyID); err != nil {
		s.logger.Warn("CreateInvoice rejected", "property_id", req.Msg.PropertyID, "error", err)
		return nil, connectError(err)
	}

	amount, err := parseAmount("amount", req.Msg.Amount)
	if err != nil {
		return nil, connectError(err)
	}
	percentages, err := parsePercentages(req.Msg.Percentages)
	if err != nil {
		return nil, connectError(err)
	}

	invoice, _, err := s.ledger.CreateInvoice(ctx, billing.InvoiceInput{
		PropertyID:  req.Msg.PropertyID,
		Title:       req.Msg.Title,
		Description: req.Msg.Description,
		Amount:      amount,
		IssueDate:   fromUnix(req.Msg.IssueDate),
		DueDate:     fromUnix(req.Msg.DueDate),
		Recurring:   req.Msg.Recurring,
		Frequency:   models.Frequency(req.Msg.Frequency),
		ResidentIDs: req.Msg.ResidentIDs,
		Strategy:    calculator.Strategy(req.Msg.Strategy),
		Percentages: percentages,
	})
	if err != nil {
		s.logger.Error("CreateInvoice failed", "property_id", req.Msg.PropertyID, "error", err)
		return nil, connectError(err)
	}

	view, err := s.ledger.GetInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.CreateInvoiceResponse{Invoice: toAPIInvoice(view)}), nil
}

// GetInvoice returns an invoice to its property's manager or residents.
func (s *InvoiceService) GetInvoice(ctx context.Context, req *connect.Request[api.GetInvoiceRequest]) (*connect.Response[api.GetInvoiceResponse], error) {
	s.logger.Info("GetInvoice request received", "invoice_id", req.Msg.InvoiceID)

	invoice, err := s.access.visibleInvoice(ctx, req.Msg.InvoiceID)
	if err != nil {
		return nil, connectError(err)
	}

	view, err := s.ledger.GetInvoice(ctx, invoice.ID)
	if err != nil {
		s.logger.Error("GetInvoice failed", "invoice_id", invoice.ID, "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.GetInvoiceResponse{Invoice: toAPIInvoice(view)}), nil
}

// ListInvoices returns a managed property's invoices, newest due date first.
func (s *InvoiceService) ListInvoices(ctx context.Context, req *connect.Request[api.ListInvoicesRequest]) (*connect.Response[api.ListInvoicesResponse], error) {
	s.logger.Info("ListInvoices request received", "property_id", req.Msg.PropertyID)

	if _, err := s.access.managedProperty(ctx, req.Msg.PropertyID); err != nil {
		return nil, connectError(err)
	}

	views, err := s.ledger.ListInvoices(ctx, req.Msg.PropertyID)
	if err != nil {
		s.logger.Error("ListInvoices failed", "property_id", req.Msg.PropertyID, "error", err)
		return nil, connectError(err)
	}

	invoices := make([]*api.Invoice, len(views))
	for i, v := range views {
		invoices[i] = toAPIInvoice(v)
	}

	s.logger.Info("ListInvoices successful", "property_id", req.Msg.PropertyID, "count", len(invoices))
	return connect.NewResponse(&api.ListInvoicesResponse{Invoices: invoices}), nil
}

// MarkInvoicePaid records that the manager received the whole amount and
// marks every split paid. Repeating the call is harmless.
func (s *InvoiceService) MarkInvoicePaid(ctx context.Context, req *connect.Request[api.MarkInvoicePaidRequest]) (*connect.Response[api.MarkInvoicePaidResponse], error) {
	s.logger.Info("MarkInvoicePaid request received", "invoice_id", req.Msg.InvoiceID)

	invoice, err := s.access.visibleInvoice(ctx, req.Msg.InvoiceID)
	if err != nil {
		return nil, connectError(err)
	}
	if _, err := s.access.managedProperty(ctx, invoice.PropertyID); err != nil {
		return nil, connectError(err)
	}

	result, err := s.ledger.MarkInvoicePaid(ctx, invoice.ID)
	if err != nil {
		s.logPaymentFailure("MarkInvoicePaid", invoice.ID, err)
		return nil, connectError(err)
	}

	view, err := s.ledger.GetInvoice(ctx, invoice.ID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.MarkInvoicePaidResponse{
		Invoice: toAPIInvoice(view),
		Changed: result.Changed,
	}), nil
}

// MarkSplitPaid records one resident's payment. The property manager and
// the resident who owes the split may both call it.
func (s *InvoiceService) MarkSplitPaid(ctx context.Context, req *connect.Request[api.MarkSplitPaidRequest]) (*connect.Response[api.MarkSplitPaidResponse], error) {
	s.logger.Info("MarkSplitPaid request received", "split_id", req.Msg.SplitID)

	split, err := s.access.visibleSplit(ctx, req.Msg.SplitID)
	if err != nil {
		return nil, connectError(err)
	}
	if _, err := s.access.residentOrManager(ctx, split.ResidentID); err != nil {
		return nil, connectError(err)
	}

	result, err := s.ledger.MarkSplitPaid(ctx, split.ID)
	if err != nil {
		s.logPaymentFailure("MarkSplitPaid", split.InvoiceID, err)
		return nil, connectError(err)
	}

	view, err := s.ledger.GetInvoice(ctx, result.InvoiceID)
	if err != nil {
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.MarkSplitPaidResponse{
		Invoice: toAPIInvoice(view),
		Changed: result.Changed,
		Settled: result.Settled,
	}), nil
}

// ListResidentSplits returns what a resident owes across all invoices.
func (s *InvoiceService) ListResidentSplits(ctx context.Context, req *connect.Request[api.ListResidentSplitsRequest]) (*connect.Response[api.ListResidentSplitsResponse], error) {
	s.logger.Info("ListResidentSplits request received", "resident_id", req.Msg.ResidentID)

	if _, err := s.access.residentOrManager(ctx, req.Msg.ResidentID); err != nil {
		return nil, connectError(err)
	}

	views, err := s.ledger.ListResidentSplits(ctx, req.Msg.ResidentID)
	if err != nil {
		s.logger.Error("ListResidentSplits failed", "resident_id", req.Msg.ResidentID, "error", err)
		return nil, connectError(err)
	}

	splits := make([]*api.ResidentSplit, len(views))
	for i, v := range views {
		splits[i] = toAPIResidentSplit(v)
	}
	return connect.NewResponse(&api.ListResidentSplitsResponse{Splits: splits}), nil
}

// logPaymentFailure logs an incomplete propagation as a warning since the
// payment itself was recorded and a retry completes it.
func (s *InvoiceService) logPaymentFailure(op, invoiceID string, err error) {
	var perr *models.PropagationError
	if errors.As(err, &perr) {
		s.logger.Warn(op+" propagation incomplete",
			"invoice_id", perr.InvoiceID,
			"failed", perr.Failed,
			"error", perr.Err,
		)
		return
	}
	s.logger.Error(op+" failed", "invoice_id", invoiceID, "error", err)
}
