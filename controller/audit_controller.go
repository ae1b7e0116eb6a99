// controller/audit_controller.go
package controller

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imdes/console/audit"
	"github.com/imdes/console/export"
	"github.com/imdes/console/model"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

type AuditController struct {
	logs       *store.AuditLogStore
	ministries *store.MinistryStore
	auditLog   *audit.Logger
}

func NewAuditController(logs *store.AuditLogStore, ministries *store.MinistryStore, auditLog *audit.Logger) *AuditController {
	return &AuditController{
		logs:       logs,
		ministries: ministries,
		auditLog:   auditLog,
	}
}

// RegisterRoutes registers the audit trail routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	logs := r.Group("/audit-logs")
	{
		logs.GET("", ac.ListLogs)
		logs.GET("/export", ac.ExportLogs)
	}
}

// ListLogs serves the cached audit trail, filtered client-side.
func (ac *AuditController) ListLogs(c *gin.Context) {
	if c.Query("refresh") == "true" {
		_ = ac.logs.Refresh(c.Request.Context())
	}

	filter := model.AuditFilter{
		Action: model.AuditAction(c.Query("action")),
		Risk:   model.RiskLevel(c.Query("risk")),
		Search: c.Query("search"),
	}
	if ministry := c.Query("ministry"); ministry != "" {
		id, err := strconv.Atoi(ministry)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid ministry filter", err)
			return
		}
		filter.Ministry = id
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    model.FilterAuditLogs(ac.logs.Items(), filter),
		"loading": ac.logs.Loading(),
		"error":   ac.logs.Err(),
	})
}

// ExportLogs streams the audit trail as a CSV download and records the
// download itself in the trail.
func (ac *AuditController) ExportLogs(c *gin.Context) {
	filename := export.Filename("audit-logs", time.Now())
	document := export.AuditLogs(ac.logs.Items(), ac.ministries.NameByID)

	ac.auditLog.Download(filename, "")

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", document)
}
