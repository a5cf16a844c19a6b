package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/leasehold/internal/models"
	"github.com/mmynk/leasehold/internal/storage"
	"github.com/mmynk/leasehold/internal/validation"
	"github.com/mmynk/leasehold/pkg/api"
)

// PropertyService implements the Connect PropertyService: the directory
// of properties and the residents billed at them.
type PropertyService struct {
	api.UnimplementedPropertyServiceHandler
	store  storage.Store
	access access
	logger *slog.Logger
}

// NewPropertyService creates a new PropertyService with the given storage backend.
func NewPropertyService(store storage.Store, logger *slog.Logger) *PropertyService {
	return &PropertyService{
		store:  store,
		access: access{store: store},
		logger: logger,
	}
}

type propertyInput struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
}

type residentInput struct {
	Name  string `json:"name" validate:"required,max=200"`
	Unit  string `json:"unit" validate:"max=50"`
	Email string `json:"email" validate:"omitempty,email"`
}

// CreateProperty creates a property managed by the caller.
func (s *PropertyService) CreateProperty(ctx context.Context, req *connect.Request[api.CreatePropertyRequest]) (*connect.Response[api.CreatePropertyResponse], error) {
	s.logger.Info("CreateProperty request received", "name", req.Msg.Name)

	userID, err := caller(ctx)
	if err != nil {
		return nil, connectError(err)
	}

	in := propertyInput{
		Name:    strings.TrimSpace(req.Msg.Name),
		Address: strings.TrimSpace(req.Msg.Address),
	}
	if err := validation.Struct(in); err != nil {
		return nil, connectError(err)
	}

	property := &models.Property{
		Name:      in.Name,
		Address:   in.Address,
		ManagerID: userID,
	}
	if err := s.store.CreateProperty(ctx, property); err != nil {
		s.logger.Error("CreateProperty failed", "error", err)
		return nil, connectError(err)
	}

	s.logger.Info("Property created", "property_id", property.ID, "manager_id", userID)
	return connect.NewResponse(&api.CreatePropertyResponse{Property: toAPIProperty(property)}), nil
}

// GetProperty returns a property and its residents to its manager or residents.
func (s *PropertyService) GetProperty(ctx context.Context, req *connect.Request[api.GetPropertyRequest]) (*connect.Response[api.GetPropertyResponse], error) {
	s.logger.Info("GetProperty request received", "property_id", req.Msg.PropertyID)

	property, err := s.access.viewableProperty(ctx, req.Msg.PropertyID)
	if err != nil {
		return nil, connectError(err)
	}

	residents, err := s.store.ListResidentsByProperty(ctx, property.ID)
	if err != nil {
		s.logger.Error("GetProperty failed", "property_id", property.ID, "error", err)
		return nil, connectError(err)
	}

	return connect.NewResponse(&api.GetPropertyResponse{
		Property:  toAPIProperty(property),
		Residents: toAPIResidents(residents),
	}), nil
}

// ListProperties returns the properties the caller manages.
func (s *PropertyService) ListProperties(ctx context.Context, req *connect.Request[api.ListPropertiesRequest]) (*connect.Response[api.ListPropertiesResponse], error) {
	userID, err := caller(ctx)
	if err != nil {
		return nil, connectError(err)
	}
	s.logger.Info("ListProperties request received", "manager_id", userID)

	properties, err := s.store.ListPropertiesByManager(ctx, userID)
	if err != nil {
		s.logger.Error("ListProperties failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Property, len(properties))
	for i, p := range properties {
		out[i] = toAPIProperty(p)
	}

	s.logger.Info("ListProperties successful", "count", len(out))
	return connect.NewResponse(&api.ListPropertiesResponse{Properties: out}), nil
}

// AddResident adds a resident to a property the caller manages. An email
// links the resident to an existing account.
func (s *PropertyService) AddResident(ctx context.Context, req *connect.Request[api.AddResidentRequest]) (*connect.Response[api.AddResidentResponse], error) {
	s.logger.Info("AddResident request received",
		"property_id", req.Msg.PropertyID,
		"name", req.Msg.Name,
	)

	property, err := s.access.managedProperty(ctx, req.Msg.PropertyID)
	if err != nil {
		return nil, connectError(err)
	}

	in := residentInput{
		Name:  strings.TrimSpace(req.Msg.Name),
		Unit:  strings.TrimSpace(req.Msg.Unit),
		Email: strings.TrimSpace(req.Msg.Email),
	}
	if err := validation.Struct(in); err != nil {
		return nil, connectError(err)
	}

	resident := &models.Resident{
		PropertyID: property.ID,
		Name:       in.Name,
		Unit:       in.Unit,
	}
	if in.Email != "" {
		user, err := s.store.GetUserByEmail(ctx, strings.ToLower(in.Email))
		if err != nil {
			return nil, connectError(err)
		}
		if user == nil {
			return nil, connectError(models.NewValidationError("email",
				fmt.Sprintf("no account registered for %s", in.Email)))
		}
		resident.UserID = user.ID
	}

	if err := s.store.CreateResident(ctx, resident); err != nil {
		s.logger.Error("AddResident failed", "property_id", property.ID, "error", err)
		return nil, connectError(err)
	}

	s.logger.Info("Resident added",
		"property_id", property.ID,
		"resident_id", resident.ID,
		"linked", resident.UserID != "",
	)
	return connect.NewResponse(&api.AddResidentResponse{Resident: toAPIResidents([]*models.Resident{resident})[0]}), nil
}

// ListResidents returns the residents eligible for billing at a property.
func (s *PropertyService) ListResidents(ctx context.Context, req *connect.Request[api.ListResidentsRequest]) (*connect.Response[api.ListResidentsResponse], error) {
	s.logger.Info("ListResidents request received", "property_id", req.Msg.PropertyID)

	property, err := s.access.viewableProperty(ctx, req.Msg.PropertyID)
	if err != nil {
		return nil, connectError(err)
	}

	residents, err := s.store.ListResidentsByProperty(ctx, property.ID)
	if err != nil {
		s.logger.Error("ListResidents failed", "property_id", property.ID, "error", err)
		return nil, connectError(err)
	}
	return connect.NewResponse(&api.ListResidentsResponse{Residents: toAPIResidents(residents)}), nil
}
