// controller/request_controller_test.go
package controller_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imdes/console/audit"
	"github.com/imdes/console/client"
	"github.com/imdes/console/controller"
	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/storage"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dir, err := os.MkdirTemp("", "console-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	code := m.Run()
	logger.Sync()
	os.RemoveAll(dir)
	os.Exit(code)
}

// upstreamStub serves the backend endpoints the controllers reach through
// the stores.
func upstreamStub(requests []model.DataRequest, ministries []model.Ministry) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/data-requests/api/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/data-requests/api/")
		switch {
		case r.Method == http.MethodGet && id == "":
			json.NewEncoder(w).Encode(map[string]interface{}{"data": requests})
		case r.Method == http.MethodPost:
			var payload model.DataRequest
			json.NewDecoder(r.Body).Decode(&payload)
			payload.ID = "req-new"
			json.NewEncoder(w).Encode(map[string]interface{}{"data": payload})
		case r.Method == http.MethodPut:
			for _, item := range requests {
				if item.ID == id {
					var patch model.StatusPatch
					json.NewDecoder(r.Body).Decode(&patch)
					item.Status = patch.Status
					json.NewEncoder(w).Encode(map[string]interface{}{"data": item})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		default:
			for _, item := range requests {
				if item.ID == id {
					json.NewEncoder(w).Encode(map[string]interface{}{"data": item})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	})
	mux.HandleFunc("/ministries/api/ministry", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"ministries": ministries})
	})
	mux.HandleFunc("/audit-logs/api/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"id":"log-1"}}`))
	})
	return mux
}

type fixture struct {
	engine       *gin.Engine
	sessionStore *session.Store
	requests     *store.RequestStore
	ministries   *store.MinistryStore
}

func newFixture(t *testing.T, requests []model.DataRequest, ministries []model.Ministry) *fixture {
	t.Helper()
	server := httptest.NewServer(upstreamStub(requests, ministries))
	t.Cleanup(server.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	bus := util.NewEventBus()
	bus.Start(ctx)

	sessionStore := session.NewStore(storage.NewMemoryKV(), bus)
	apiClient := client.New(server.URL, time.Second, sessionStore, "imdes-console/1.0")
	services := service.InitializeServices(apiClient, sessionStore)

	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	dead.Close()
	geo := audit.NewGeoIPClient(dead.URL, dead.URL+"/%s", time.Second)
	auditLog := audit.NewLogger(services.AuditLogs, sessionStore, geo, bus, "imdes-console/1.0")

	validationUtil := util.NewValidationUtil()
	requestStore := store.NewRequestStore(services.Requests, sessionStore, validationUtil, auditLog)
	ministryStore := store.NewMinistryStore(services.Ministry)
	require.NoError(t, requestStore.Refresh(ctx))
	require.NoError(t, ministryStore.Refresh(ctx))

	rc := controller.NewRequestController(requestStore, ministryStore, auditLog)
	engine := gin.New()
	api := engine.Group("/api/v1")
	rc.RegisterRoutes(api)

	return &fixture{engine: engine, sessionStore: sessionStore, requests: requestStore, ministries: ministryStore}
}

func seedRequests() []model.DataRequest {
	return []model.DataRequest{
		{ID: "req-1", Status: model.StatusPending, Urgency: model.UrgencyHigh, RequestingMinistryID: 1, TargetMinistryID: 2, Purpose: "Tax compliance audit"},
		{ID: "req-2", Status: model.StatusApproved, Urgency: model.UrgencyLow, RequestingMinistryID: 2, TargetMinistryID: 1, Purpose: "Census data check"},
	}
}

func seedMinistries() []model.Ministry {
	return []model.Ministry{
		{ID: 1, Name: "Ministry of Finance"},
		{ID: 2, Name: "Ministry of Health"},
	}
}

func TestListRequests(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/requests", nil)
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Success bool                `json:"success"`
		Data    []model.DataRequest `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.True(t, body.Success)
	assert.Len(t, body.Data, 2)
}

func TestListRequestsFiltered(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/requests?status=pending&urgency=high", nil)
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Data []model.DataRequest `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "req-1", body.Data[0].ID)
}

func TestGetRequest(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/requests/req-2", nil)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/v1/requests/missing", nil)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateRequestStatuses(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())
	require.NoError(t, f.sessionStore.Set(context.Background(), "t1", model.UserProfile{ID: 7, MinistryID: 1, Role: "operator"}))

	t.Run("Success", func(t *testing.T) {
		body := strings.NewReader(`{
			"target_ministry_id": 2, "data_type_id": 3,
			"purpose": "Tax compliance audit", "justification": "Quarterly review",
			"urgency": "high", "retention_period_days": 30,
			"data_sharing_acknowledged": true, "supervisor_approved": true,
			"requestor_name": "Aliya Bekova", "requestor_position": "Senior Analyst"
		}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/requests", body)
		f.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("SupervisorNotApproved", func(t *testing.T) {
		body := strings.NewReader(`{
			"target_ministry_id": 2, "data_type_id": 3,
			"purpose": "Tax compliance audit", "justification": "Quarterly review",
			"urgency": "high", "retention_period_days": 30,
			"data_sharing_acknowledged": true, "supervisor_approved": false,
			"requestor_name": "Aliya Bekova", "requestor_position": "Senior Analyst"
		}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/requests", body)
		f.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("InvalidInput", func(t *testing.T) {
		body := strings.NewReader(`{"target_ministry_id": 2}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/requests", body)
		f.engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateRequestWithoutSession(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())

	body := strings.NewReader(`{
		"target_ministry_id": 2, "data_type_id": 3,
		"purpose": "Tax compliance audit", "justification": "Quarterly review",
		"urgency": "high", "retention_period_days": 30,
		"data_sharing_acknowledged": true, "supervisor_approved": true,
		"requestor_name": "Aliya Bekova", "requestor_position": "Senior Analyst"
	}`)
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/requests", body)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestApproveAndRejectRequest(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/requests/req-1/approve", nil)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	// req-2 is already approved; a second decision conflicts.
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/requests/req-2/reject", nil)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/v1/requests/missing/approve", nil)
	f.engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportRequests(t *testing.T) {
	f := newFixture(t, seedRequests(), seedMinistries())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/requests/export", nil)
	f.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "data-requests-")

	lines := strings.Split(w.Body.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"ID","Requesting Ministry","Target Ministry","Purpose","Urgency","Status","Retention Days","Created At"`, lines[0])
	assert.Contains(t, lines[1], `"Ministry of Finance","Ministry of Health"`)
}
