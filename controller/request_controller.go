// controller/request_controller.go
package controller

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/imdes/console/audit"
	console_errors "github.com/imdes/console/errors"
	"github.com/imdes/console/export"
	"github.com/imdes/console/model"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

type RequestController struct {
	requests   *store.RequestStore
	ministries *store.MinistryStore
	auditLog   *audit.Logger
}

func NewRequestController(requests *store.RequestStore, ministries *store.MinistryStore, auditLog *audit.Logger) *RequestController {
	return &RequestController{
		requests:   requests,
		ministries: ministries,
		auditLog:   auditLog,
	}
}

// RegisterRoutes registers the data request routes
func (rc *RequestController) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.GET("", rc.ListRequests)
		requests.POST("", rc.CreateRequest)
		requests.GET("/export", rc.ExportRequests)
		requests.GET("/:id", rc.GetRequest)
		requests.POST("/:id/approve", rc.ApproveRequest)
		requests.POST("/:id/reject", rc.RejectRequest)
	}
}

// ListRequests serves the cached collection, filtered by the query
// predicates. `refresh=true` forces a refetch first; otherwise staleness
// is bounded only by explicit user actions.
func (rc *RequestController) ListRequests(c *gin.Context) {
	if c.Query("refresh") == "true" {
		// Ignore the refresh error: a failed fetch leaves the previous
		// collection intact and the store carries the error string.
		_ = rc.requests.Refresh(c.Request.Context())
	}

	filter := model.RequestFilter{
		Status:  model.RequestStatus(c.Query("status")),
		Urgency: model.Urgency(c.Query("urgency")),
		Search:  c.Query("search"),
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
		"data":    model.FilterRequests(rc.requests.Items(), filter),
		"loading": rc.requests.Loading(),
		"error":   rc.requests.Err(),
	})
}

// GetRequest endpoint
func (rc *RequestController) GetRequest(c *gin.Context) {
	for _, r := range rc.requests.Items() {
		if r.ID == c.Param("id") {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": r})
			return
		}
	}
	util.RespondWithError(c, http.StatusNotFound, "Data request not found", console_errors.ErrRequestNotFound)
}

// CreateRequest endpoint
func (rc *RequestController) CreateRequest(c *gin.Context) {
	var input model.DataRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	targetName := rc.ministries.NameByID(input.TargetMinistryID)
	created, err := rc.requests.Create(c.Request.Context(), input, targetName)
	if err != nil {
		switch {
		case errors.Is(err, console_errors.ErrSupervisorNotApproved):
			util.RespondWithError(c, http.StatusForbidden, "Supervisor approval is required before submission", err)
		case errors.Is(err, console_errors.ErrInvalidRequestData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, console_errors.ErrUnauthorized):
			util.RespondWithError(c, http.StatusUnauthorized, "No active session", err)
		default:
			util.RespondWithError(c, http.StatusBadGateway, util.FormatAPIError(err.Error()), err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": created, "message": "Data request created successfully"})
}

// ApproveRequest endpoint
func (rc *RequestController) ApproveRequest(c *gin.Context) {
	rc.decide(c, rc.requests.Approve, "Data request approved")
}

// RejectRequest endpoint
func (rc *RequestController) RejectRequest(c *gin.Context) {
	rc.decide(c, rc.requests.Reject, "Data request rejected")
}

func (rc *RequestController) decide(c *gin.Context, decision func(ctx context.Context, id string) (model.DataRequest, error), message string) {
	updated, err := decision(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, console_errors.ErrRequestNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Data request not found", err)
		case errors.Is(err, console_errors.ErrInvalidStatusChange):
			util.RespondWithError(c, http.StatusConflict, "Request has already been decided", err)
		default:
			util.RespondWithError(c, http.StatusBadGateway, util.FormatAPIError(err.Error()), err)
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": updated, "message": message})
}

// ExportRequests streams the request list as a CSV download.
func (rc *RequestController) ExportRequests(c *gin.Context) {
	filename := export.Filename("data-requests", time.Now())
	document := export.DataRequests(rc.requests.Items(), rc.ministries.NameByID)

	rc.auditLog.Download(filename, "")

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", document)
}
