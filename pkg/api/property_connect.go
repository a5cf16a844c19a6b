package api

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"
)

// PropertyServiceName is the fully-qualified name of the PropertyService service.
const PropertyServiceName = "leasehold.v1.PropertyService"

const (
	PropertyServiceCreatePropertyProcedure = "/leasehold.v1.PropertyService/CreateProperty"
	PropertyServiceGetPropertyProcedure    = "/leasehold.v1.PropertyService/GetProperty"
	PropertyServiceListPropertiesProcedure = "/leasehold.v1.PropertyService/ListProperties"
	PropertyServiceAddResidentProcedure    = "/leasehold.v1.PropertyService/AddResident"
	PropertyServiceListResidentsProcedure  = "/leasehold.v1.PropertyService/ListResidents"
)

// PropertyServiceHandler is implemented by the server side of PropertyService.
type PropertyServiceHandler interface {
	CreateProperty(context.Context, *connect.Request[CreatePropertyRequest]) (*connect.Response[CreatePropertyResponse], error)
	GetProperty(context.Context, *connect.Request[GetPropertyRequest]) (*connect.Response[GetPropertyResponse], error)
	ListProperties(context.Context, *connect.Request[ListPropertiesRequest]) (*connect.Response[ListPropertiesResponse], error)
	AddResident(context.Context, *connect.Request[AddResidentRequest]) (*connect.Response[AddResidentResponse], error)
	ListResidents(context.Context, *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error)
}

// NewPropertyServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler.
func NewPropertyServiceHandler(svc PropertyServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	readOnly := withOption(opts, connect.WithIdempotency(connect.IdempotencyNoSideEffects))

	return "/" + PropertyServiceName + "/", serviceMux(map[string]http.Handler{
		PropertyServiceCreatePropertyProcedure: connect.NewUnaryHandler(
			PropertyServiceCreatePropertyProcedure, svc.CreateProperty, opts...),
		PropertyServiceGetPropertyProcedure: connect.NewUnaryHandler(
			PropertyServiceGetPropertyProcedure, svc.GetProperty, readOnly...),
		PropertyServiceListPropertiesProcedure: connect.NewUnaryHandler(
			PropertyServiceListPropertiesProcedure, svc.ListProperties, readOnly...),
		PropertyServiceAddResidentProcedure: connect.NewUnaryHandler(
			PropertyServiceAddResidentProcedure, svc.AddResident, opts...),
		PropertyServiceListResidentsProcedure: connect.NewUnaryHandler(
			PropertyServiceListResidentsProcedure, svc.ListResidents, readOnly...),
	})
}

// PropertyServiceClient is a client for the leasehold.v1.PropertyService service.
type PropertyServiceClient interface {
	CreateProperty(context.Context, *connect.Request[CreatePropertyRequest]) (*connect.Response[CreatePropertyResponse], error)
	GetProperty(context.Context, *connect.Request[GetPropertyRequest]) (*connect.Response[GetPropertyResponse], error)
	ListProperties(context.Context, *connect.Request[ListPropertiesRequest]) (*connect.Response[ListPropertiesResponse], error)
	AddResident(context.Context, *connect.Request[AddResidentRequest]) (*connect.Response[AddResidentResponse], error)
	ListResidents(context.Context, *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error)
}

// NewPropertyServiceClient constructs a client for the PropertyService at baseURL.
func NewPropertyServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) PropertyServiceClient {
	baseURL = trimBaseURL(baseURL)
	opts = clientOptions(opts)
	return &propertyServiceClient{
		createProperty: connect.NewClient[CreatePropertyRequest, CreatePropertyResponse](
			httpClient, baseURL+PropertyServiceCreatePropertyProcedure, opts...),
		getProperty: connect.NewClient[GetPropertyRequest, GetPropertyResponse](
			httpClient, baseURL+PropertyServiceGetPropertyProcedure, opts...),
		listProperties: connect.NewClient[ListPropertiesRequest, ListPropertiesResponse](
			httpClient, baseURL+PropertyServiceListPropertiesProcedure, opts...),
		addResident: connect.NewClient[AddResidentRequest, AddResidentResponse](
			httpClient, baseURL+PropertyServiceAddResidentProcedure, opts...),
		listResidents: connect.NewClient[ListResidentsRequest, ListResidentsResponse](
			httpClient, baseURL+PropertyServiceListResidentsProcedure, opts...),
	}
}

type propertyServiceClient struct {
	createProperty *connect.Client[CreatePropertyRequest, CreatePropertyResponse]
	getProperty    *connect.Client[GetPropertyRequest, GetPropertyResponse]
	listProperties *connect.Client[ListPropertiesRequest, ListPropertiesResponse]
	addResident    *connect.Client[AddResidentRequest, AddResidentResponse]
	listResidents  *connect.Client[ListResidentsRequest, ListResidentsResponse]
}

func (c *propertyServiceClient) CreateProperty(ctx context.Context, req *connect.Request[CreatePropertyRequest]) (*connect.Response[CreatePropertyResponse], error) {
	return c.createProperty.CallUnary(ctx, req)
}

func (c *propertyServiceClient) GetProperty(ctx context.Context, req *connect.Request[GetPropertyRequest]) (*connect.Response[GetPropertyResponse], error) {
	return c.getProperty.CallUnary(ctx, req)
}

func (c *propertyServiceClient) ListProperties(ctx context.Context, req *connect.Request[ListPropertiesRequest]) (*connect.Response[ListPropertiesResponse], error) {
	return c.listProperties.CallUnary(ctx, req)
}

func (c *propertyServiceClient) AddResident(ctx context.Context, req *connect.Request[AddResidentRequest]) (*connect.Response[AddResidentResponse], error) {
	return c.addResident.CallUnary(ctx, req)
}

func (c *propertyServiceClient) ListResidents(ctx context.Context, req *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error) {
	return c.listResidents.CallUnary(ctx, req)
}

// UnimplementedPropertyServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedPropertyServiceHandler struct{}

var errPropertyUnimplemented = errors.New("leasehold.v1.PropertyService is not implemented")

func (UnimplementedPropertyServiceHandler) CreateProperty(context.Context, *connect.Request[CreatePropertyRequest]) (*connect.Response[CreatePropertyResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errPropertyUnimplemented)
}

func (UnimplementedPropertyServiceHandler) GetProperty(context.Context, *connect.Request[GetPropertyRequest]) (*connect.Response[GetPropertyResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errPropertyUnimplemented)
}

func (UnimplementedPropertyServiceHandler) ListProperties(context.Context, *connect.Request[ListPropertiesRequest]) (*connect.Response[ListPropertiesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errPropertyUnimplemented)
}

func (UnimplementedPropertyServiceHandler) AddResident(context.Context, *connect.Request[AddResidentRequest]) (*connect.Response[AddResidentResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errPropertyUnimplemented)
}

func (UnimplementedPropertyServiceHandler) ListResidents(context.Context, *connect.Request[ListResidentsRequest]) (*connect.Response[ListResidentsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errPropertyUnimplemented)
}
