// controller/controllers.go
package controller

import (
	"github.com/imdes/console/audit"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

type Controllers struct {
	Auth      *AuthController
	Requests  *RequestController
	Audit     *AuditController
	Reference *ReferenceController
	Dashboard *DashboardController
}

func InitializeControllers(
	services *service.Services,
	sessionStore *session.Store,
	requests *store.RequestStore,
	logs *store.AuditLogStore,
	ministries *store.MinistryStore,
	dataTypes *store.DataTypeStore,
	validationUtil *util.ValidationUtil,
	auditLog *audit.Logger,
) *Controllers {
	return &Controllers{
		Auth:      NewAuthController(services.Auth, sessionStore, validationUtil, auditLog),
		Requests:  NewRequestController(requests, ministries, auditLog),
		Audit:     NewAuditController(logs, ministries, auditLog),
		Reference: NewReferenceController(ministries, dataTypes, services.Roles),
		Dashboard: NewDashboardController(requests, ministries, dataTypes),
	}
}
