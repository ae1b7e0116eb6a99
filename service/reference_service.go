// service/reference_service.go
package service

import (
	"context"

	"github.com/imdes/console/client"
	"github.com/imdes/console/model"
)

const (
	ministriesEndpoint = "/ministries/api/ministry"
	dataTypesEndpoint  = "/data-types/api/"
	rolesEndpoint      = "/user-roles/api"
)

// MinistryService fetches the ministry catalog. Reference data is
// read-only from the console's point of view.
type MinistryService struct {
	client *client.Client
}

func NewMinistryService(client *client.Client) *MinistryService {
	return &MinistryService{client: client}
}

func (s *MinistryService) GetAll(ctx context.Context) ([]model.Ministry, error) {
	resp := s.client.Get(ctx, ministriesEndpoint)
	var ministries []model.Ministry
	if err := resp.Decode(&ministries); err != nil {
		return nil, err
	}
	return ministries, nil
}

func (s *MinistryService) GetByID(ctx context.Context, id string) (model.Ministry, error) {
	resp := s.client.Get(ctx, ministriesEndpoint+"/"+id)
	var ministry model.Ministry
	if err := resp.Decode(&ministry); err != nil {
		return model.Ministry{}, err
	}
	return ministry, nil
}

// DataTypeService fetches the data type catalog.
type DataTypeService struct {
	client *client.Client
}

func NewDataTypeService(client *client.Client) *DataTypeService {
	return &DataTypeService{client: client}
}

func (s *DataTypeService) GetAll(ctx context.Context) ([]model.DataType, error) {
	resp := s.client.Get(ctx, dataTypesEndpoint)
	var types []model.DataType
	if err := resp.Decode(&types); err != nil {
		return nil, err
	}
	return types, nil
}

// RoleService fetches the role catalog used by the sign-up form.
type RoleService struct {
	client *client.Client
}

func NewRoleService(client *client.Client) *RoleService {
	return &RoleService{client: client}
}

func (s *RoleService) GetAll(ctx context.Context) ([]model.Role, error) {
	resp := s.client.Get(ctx, rolesEndpoint)
	var roles []model.Role
	if err := resp.Decode(&roles); err != nil {
		return nil, err
	}
	return roles, nil
}
