// service/request_service.go
package service

import (
	"context"
	"fmt"

	"github.com/imdes/console/client"
	"github.com/imdes/console/model"
)

const requestsEndpoint = "/data-requests/api/"

// RequestService is the CRUD surface for data requests. Errors are
// reported once per call; there are no retries and no backoff.
type RequestService struct {
	client *client.Client
}

func NewRequestService(client *client.Client) *RequestService {
	return &RequestService{client: client}
}

func (s *RequestService) GetAll(ctx context.Context) ([]model.DataRequest, error) {
	resp := s.client.Get(ctx, requestsEndpoint)
	var requests []model.DataRequest
	if err := resp.Decode(&requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *RequestService) GetByID(ctx context.Context, id string) (model.DataRequest, error) {
	resp := s.client.Get(ctx, requestsEndpoint+id)
	var request model.DataRequest
	if err := resp.Decode(&request); err != nil {
		return model.DataRequest{}, err
	}
	return request, nil
}

// Create submits a new request. The backend assigns id, status and
// created_at.
func (s *RequestService) Create(ctx context.Context, payload model.DataRequest) (model.DataRequest, error) {
	resp := s.client.Post(ctx, requestsEndpoint, payload)
	var created model.DataRequest
	if err := resp.Decode(&created); err != nil {
		return model.DataRequest{}, err
	}
	return created, nil
}

// UpdateStatus applies the reviewer decision. Status is the only field a
// normal flow ever patches.
func (s *RequestService) UpdateStatus(ctx context.Context, id string, status model.RequestStatus) (model.DataRequest, error) {
	resp := s.client.Put(ctx, requestsEndpoint+id, model.StatusPatch{Status: status})
	var updated model.DataRequest
	if err := resp.Decode(&updated); err != nil {
		return model.DataRequest{}, err
	}
	return updated, nil
}

func (s *RequestService) Delete(ctx context.Context, id string) error {
	resp := s.client.Delete(ctx, requestsEndpoint+id)
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}
