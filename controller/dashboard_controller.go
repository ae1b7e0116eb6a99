// controller/dashboard_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/imdes/console/dashboard"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

// DashboardController computes the derived views from the cached request
// collection. All aggregation is local; the backend is only touched on an
// explicit refresh.
type DashboardController struct {
	requests   *store.RequestStore
	ministries *store.MinistryStore
	dataTypes  *store.DataTypeStore
}

func NewDashboardController(requests *store.RequestStore, ministries *store.MinistryStore, dataTypes *store.DataTypeStore) *DashboardController {
	return &DashboardController{
		requests:   requests,
		ministries: ministries,
		dataTypes:  dataTypes,
	}
}

// RegisterRoutes registers the dashboard routes
func (dc *DashboardController) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/stats", dc.Stats)
		dash.GET("/charts", dc.Charts)
		dash.POST("/refresh", dc.Refresh)
	}
}

// Stats endpoint
func (dc *DashboardController) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    dashboard.StatusCounts(dc.requests.Items()),
		"loading": dc.requests.Loading(),
		"error":   dc.requests.Err(),
	})
}

// Charts endpoint
func (dc *DashboardController) Charts(c *gin.Context) {
	charts := dashboard.BuildCharts(dc.requests.Items(), dc.ministries.Items(), time.Now())
	c.JSON(http.StatusOK, gin.H{"success": true, "data": charts})
}

// Refresh refetches every collection the dashboard depends on. The three
// fetches run concurrently; a failure in one leaves the others' results in
// place.
func (dc *DashboardController) Refresh(c *gin.Context) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error { return dc.requests.Refresh(ctx) })
	g.Go(func() error { return dc.ministries.Refresh(ctx) })
	g.Go(func() error { return dc.dataTypes.Refresh(ctx) })

	if err := g.Wait(); err != nil {
		util.RespondWithError(c, http.StatusBadGateway, util.FormatAPIError(err.Error()), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Dashboard refreshed"})
}
