// controller/reference_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/imdes/console/service"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

// ReferenceController serves the read-only catalogs backing the form
// selects.
type ReferenceController struct {
	ministries *store.MinistryStore
	dataTypes  *store.DataTypeStore
	roles      *service.RoleService
}

func NewReferenceController(ministries *store.MinistryStore, dataTypes *store.DataTypeStore, roles *service.RoleService) *ReferenceController {
	return &ReferenceController{
		ministries: ministries,
		dataTypes:  dataTypes,
		roles:      roles,
	}
}

// RegisterRoutes registers the reference data routes
func (rc *ReferenceController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/ministries", rc.ListMinistries)
	r.GET("/ministries/options", rc.MinistryOptions)
	r.GET("/data-types", rc.ListDataTypes)
	r.GET("/data-types/options", rc.DataTypeOptions)
	r.GET("/roles", rc.ListRoles)
}

func (rc *ReferenceController) ListMinistries(c *gin.Context) {
	if c.Query("refresh") == "true" {
		_ = rc.ministries.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rc.ministries.Items(),
		"error":   rc.ministries.Err(),
	})
}

func (rc *ReferenceController) MinistryOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rc.ministries.Options()})
}

func (rc *ReferenceController) ListDataTypes(c *gin.Context) {
	if c.Query("refresh") == "true" {
		_ = rc.dataTypes.Refresh(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    rc.dataTypes.Items(),
		"error":   rc.dataTypes.Err(),
	})
}

func (rc *ReferenceController) DataTypeOptions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": rc.dataTypes.Options()})
}

// ListRoles proxies the role catalog. The sign-up form is the only
// consumer, so roles are not cached in a store.
func (rc *ReferenceController) ListRoles(c *gin.Context) {
	roles, err := rc.roles.GetAll(c.Request.Context())
	if err != nil {
		util.RespondWithError(c, http.StatusBadGateway, util.FormatAPIError(err.Error()), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": roles})
}
