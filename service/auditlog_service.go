// service/auditlog_service.go
package service

import (
	"context"
	"fmt"

	"github.com/imdes/console/client"
	"github.com/imdes/console/model"
)

const (
	auditLogsEndpoint     = "/audit-logs/api/"
	auditLogsItemEndpoint = "/audit-logs/api/logs/"
)

// AuditLogService is the CRUD surface for the audit trail. Update and
// Delete exist because the backend exposes them; no console flow invokes
// them.
type AuditLogService struct {
	client *client.Client
}

func NewAuditLogService(client *client.Client) *AuditLogService {
	return &AuditLogService{client: client}
}

func (s *AuditLogService) GetAll(ctx context.Context) ([]model.AuditLogEntry, error) {
	resp := s.client.Get(ctx, auditLogsEndpoint)
	var entries []model.AuditLogEntry
	if err := resp.Decode(&entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *AuditLogService) GetByID(ctx context.Context, id string) (model.AuditLogEntry, error) {
	resp := s.client.Get(ctx, auditLogsEndpoint+id)
	var entry model.AuditLogEntry
	if err := resp.Decode(&entry); err != nil {
		return model.AuditLogEntry{}, err
	}
	return entry, nil
}

func (s *AuditLogService) Create(ctx context.Context, entry model.AuditLogEntry) (model.AuditLogEntry, error) {
	resp := s.client.Post(ctx, auditLogsEndpoint, entry)
	var created model.AuditLogEntry
	if err := resp.Decode(&created); err != nil {
		return model.AuditLogEntry{}, err
	}
	return created, nil
}

func (s *AuditLogService) Update(ctx context.Context, id string, patch map[string]interface{}) (model.AuditLogEntry, error) {
	resp := s.client.Put(ctx, auditLogsItemEndpoint+id, patch)
	var updated model.AuditLogEntry
	if err := resp.Decode(&updated); err != nil {
		return model.AuditLogEntry{}, err
	}
	return updated, nil
}

func (s *AuditLogService) Delete(ctx context.Context, id string) error {
	resp := s.client.Delete(ctx, auditLogsItemEndpoint+id)
	if !resp.Success {
		return fmt.Errorf("%s", resp.Error)
	}
	return nil
}
