// service/services.go
package service

import (
	"github.com/imdes/console/client"
	"github.com/imdes/console/session"
)

type Services struct {
	Auth      *AuthService
	Requests  *RequestService
	Ministry  *MinistryService
	DataTypes *DataTypeService
	Roles     *RoleService
	AuditLogs *AuditLogService
}

func InitializeServices(apiClient *client.Client, sessionStore *session.Store) *Services {
	return &Services{
		Auth:      NewAuthService(apiClient, sessionStore),
		Requests:  NewRequestService(apiClient),
		Ministry:  NewMinistryService(apiClient),
		DataTypes: NewDataTypeService(apiClient),
		Roles:     NewRoleService(apiClient),
		AuditLogs: NewAuditLogService(apiClient),
	}
}
