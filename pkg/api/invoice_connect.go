package api

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// InvoiceServiceName is the fully-qualified name of the InvoiceService service.
const InvoiceServiceName = "leasehold.v1.InvoiceService"

const (
	InvoiceServicePreviewSplitProcedure       = "/leasehold.v1.InvoiceService/PreviewSplit"
	InvoiceServiceCreateInvoiceProcedure      = "/leasehold.v1.InvoiceService/CreateInvoice"
	InvoiceServiceGetInvoiceProcedure         = "/leasehold.v1.InvoiceService/GetInvoice"
	InvoiceServiceListInvoicesProcedure       = "/leasehold.v1.InvoiceService/ListInvoices"
	InvoiceServiceMarkInvoicePaidProcedure    = "/leasehold.v1.InvoiceService/MarkInvoicePaid"
	InvoiceServiceMarkSplitPaidProcedure      = "/leasehold.v1.InvoiceService/MarkSplitPaid"
	InvoiceServiceListResidentSplitsProcedure = "/leasehold.v1.InvoiceService/ListResidentSplits"
)

// InvoiceServiceHandler is implemented by the server side of InvoiceService.
type InvoiceServiceHandler interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	CreateInvoice(context.Context, *connect.Request[CreateInvoiceRequest]) (*connect.Response[CreateInvoiceResponse], error)
	GetInvoice(context.Context, *connect.Request[GetInvoiceRequest]) (*connect.Response[GetInvoiceResponse], error)
	ListInvoices(context.Context, *connect.Request[ListInvoicesRequest]) (*connect.Response[ListInvoicesResponse], error)
	MarkInvoicePaid(context.Context, *connect.Request[MarkInvoicePaidRequest]) (*connect.Response[MarkInvoicePaidResponse], error)
	MarkSplitPaid(context.Context, *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error)
	ListResidentSplits(context.Context, *connect.Request[ListResidentSplitsRequest]) (*connect.Response[ListResidentSplitsResponse], error)
}

// NewInvoiceServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewInvoiceServiceHandler(svc InvoiceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	readOnly := withOption(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))
	idempotent := withOption(opts, connect.WithIdempotency(connect.IdempotencyIdempotent))

	return "/" + InvoiceServiceName + "/", serviceMux(map[string]http.Handler{
		InvoiceServicePreviewSplitProcedure: connect.NewUnaryHandler(
			InvoiceServicePreviewSplitProcedure, svc.PreviewSplit, readOnly...),
		InvoiceServiceCreateInvoiceProcedure: connect.NewUnaryHandler(
			InvoiceServiceCreateInvoiceProcedure, svc.CreateInvoice, opts...),
		InvoiceServiceGetInvoiceProcedure: connect.NewUnaryHandler(
			InvoiceServiceGetInvoiceProcedure, svc.GetInvoice, readOnly...),
		InvoiceServiceListInvoicesProcedure: connect.NewUnaryHandler(
			InvoiceServiceListInvoicesProcedure, svc.ListInvoices, readOnly...),
		InvoiceServiceMarkInvoicePaidProcedure: connect.NewUnaryHandler(
			InvoiceServiceMarkInvoicePaidProcedure, svc.MarkInvoicePaid, idempotent...),
		InvoiceServiceMarkSplitPaidProcedure: connect.NewUnaryHandler(
			InvoiceServiceMarkSplitPaidProcedure, svc.MarkSplitPaid, idempotent...),
		InvoiceServiceListResidentSplitsProcedure: connect.NewUnaryHandler(
			InvoiceServiceListResidentSplitsProcedure, svc.ListResidentSplits, readOnly...),
	})
}

// InvoiceServiceClient is a client for the leasehold.v1.InvoiceService service.
type InvoiceServiceClient interface {
	PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error)
	CreateInvoice(context.Context, *connect.Request[CreateInvoiceRequest]) (*connect.Response[CreateInvoiceResponse], error)
	GetInvoice(context.Context, *connect.Request[GetInvoiceRequest]) (*connect.Response[GetInvoiceResponse], error)
	ListInvoices(context.Context, *connect.Request[ListInvoicesRequest]) (*connect.Response[ListInvoicesResponse], error)
	MarkInvoicePaid(context.Context, *connect.Request[MarkInvoicePaidRequest]) (*connect.Response[MarkInvoicePaidResponse], error)
	MarkSplitPaid(context.Context, *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error)
	ListResidentSplits(context.Context, *connect.Request[ListResidentSplitsRequest]) (*connect.Response[ListResidentSplitsResponse], error)
}

// NewInvoiceServiceClient constructs a client for the InvoiceService at baseURL
// (for example, http://localhost:8080).
func NewInvoiceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) InvoiceServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &invoiceServiceClient{
		previewSplit: connect.NewClient[PreviewSplitRequest, PreviewSplitResponse](
			httpClient, baseURL+InvoiceServicePreviewSplitProcedure, opts...),
		createInvoice: connect.NewClient[CreateInvoiceRequest, CreateInvoiceResponse](
			httpClient, baseURL+InvoiceServiceCreateInvoiceProcedure, opts...),
		getInvoice: connect.NewClient[GetInvoiceRequest, GetInvoiceResponse](
			httpClient, baseURL+InvoiceServiceGetInvoiceProcedure, opts...),
		listInvoices: connect.NewClient[ListInvoicesRequest, ListInvoicesResponse](
			httpClient, baseURL+InvoiceServiceListInvoicesProcedure, opts...),
		markInvoicePaid: connect.NewClient[MarkInvoicePaidRequest, MarkInvoicePaidResponse](
			httpClient, baseURL+InvoiceServiceMarkInvoicePaidProcedure, opts...),
		markSplitPaid: connect.NewClient[MarkSplitPaidRequest, MarkSplitPaidResponse](
			httpClient, baseURL+InvoiceServiceMarkSplitPaidProcedure, opts...),
		listResidentSplits: connect.NewClient[ListResidentSplitsRequest, ListResidentSplitsResponse](
			httpClient, baseURL+InvoiceServiceListResidentSplitsProcedure, opts...),
	}
}

type invoiceServiceClient struct {
	previewSplit       *connect.Client[PreviewSplitRequest, PreviewSplitResponse]
	createInvoice      *connect.Client[CreateInvoiceRequest, CreateInvoiceResponse]
	getInvoice         *connect.Client[GetInvoiceRequest, GetInvoiceResponse]
	listInvoices       *connect.Client[ListInvoicesRequest, ListInvoicesResponse]
	markInvoicePaid    *connect.Client[MarkInvoicePaidRequest, MarkInvoicePaidResponse]
	markSplitPaid      *connect.Client[MarkSplitPaidRequest, MarkSplitPaidResponse]
	listResidentSplits *connect.Client[ListResidentSplitsRequest, ListResidentSplitsResponse]
}

func (c *invoiceServiceClient) PreviewSplit(ctx context.Context, req *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return c.previewSplit.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) CreateInvoice(ctx context.Context, req *connect.Request[CreateInvoiceRequest]) (*connect.Response[CreateInvoiceResponse], error) {
	return c.createInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) GetInvoice(ctx context.Context, req *connect.Request[GetInvoiceRequest]) (*connect.Response[GetInvoiceResponse], error) {
	return c.getInvoice.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ListInvoices(ctx context.Context, req *connect.Request[ListInvoicesRequest]) (*connect.Response[ListInvoicesResponse], error) {
	return c.listInvoices.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) MarkInvoicePaid(ctx context.Context, req *connect.Request[MarkInvoicePaidRequest]) (*connect.Response[MarkInvoicePaidResponse], error) {
	return c.markInvoicePaid.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) MarkSplitPaid(ctx context.Context, req *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error) {
	return c.markSplitPaid.CallUnary(ctx, req)
}

func (c *invoiceServiceClient) ListResidentSplits(ctx context.Context, req *connect.Request[ListResidentSplitsRequest]) (*connect.Response[ListResidentSplitsResponse], error) {
	return c.listResidentSplits.CallUnary(ctx, req)
}

// UnimplementedInvoiceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedInvoiceServiceHandler struct{}

var errInvoiceUnimplemented = errors.New("leasehold.v1.InvoiceService is not implemented")

func (UnimplementedInvoiceServiceHandler) PreviewSplit(context.Context, *connect.Request[PreviewSplitRequest]) (*connect.Response[PreviewSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}

func (UnimplementedInvoiceServiceHandler) CreateInvoice(context.Context, *connect.Request[CreateInvoiceRequest]) (*connect.Response[CreateInvoiceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}

func (UnimplementedInvoiceServiceHandler) GetInvoice(context.Context, *connect.Request[GetInvoiceRequest]) (*connect.Response[GetInvoiceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}

func (UnimplementedInvoiceServiceHandler) ListInvoices(context.Context, *connect.Request[ListInvoicesRequest]) (*connect.Response[ListInvoicesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}

func (UnimplementedInvoiceServiceHandler) MarkInvoicePaid(context.Context, *connect.Request[MarkInvoicePaidRequest]) (*connect.Response[MarkInvoicePaidResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}

func (UnimplementedInvoiceServiceHandler) MarkSplitPaid(context.Context, *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}

func (UnimplementedInvoiceServiceHandler) ListResidentSplits(context.Context, *connect.Request[ListResidentSplitsRequest]) (*connect.Response[ListResidentSplitsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errInvoiceUnimplemented)
}
