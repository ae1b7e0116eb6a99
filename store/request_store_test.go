// store/request_store_test.go
package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imdes/console/client"
	console_errors "github.com/imdes/console/errors"
	logger "github.com/imdes/console/logging"
	"github.com/imdes/console/model"
	"github.com/imdes/console/service"
	"github.com/imdes/console/session"
	"github.com/imdes/console/storage"
	"github.com/imdes/console/store"
	"github.com/imdes/console/util"
)

func TestMain(m *testing.M) {
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

// requestBackend is a scriptable stand-in for the data request endpoints.
type requestBackend struct {
	mu       sync.Mutex
	items    []model.DataRequest
	failList bool
	getCalls int
	created  []model.DataRequest
	patches  []model.StatusPatch
}

func (b *requestBackend) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/data-requests/api/", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		id := r.URL.Path[len("/data-requests/api/"):]
		switch {
		case r.Method == http.MethodGet && id == "":
			b.getCalls++
			if b.failList {
				w.WriteHeader(http.StatusBadGateway)
				w.Write([]byte(`{"message":"upstream down"}`))
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{"data": b.items})
		case r.Method == http.MethodGet:
			for _, item := range b.items {
				if item.ID == id {
					json.NewEncoder(w).Encode(map[string]interface{}{"data": item})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		case r.Method == http.MethodPost:
			var payload model.DataRequest
			json.NewDecoder(r.Body).Decode(&payload)
			payload.ID = "req-new"
			payload.CreatedAt = time.Now().UTC()
			b.created = append(b.created, payload)
			b.items = append(b.items, payload)
			json.NewEncoder(w).Encode(map[string]interface{}{"data": payload})
		case r.Method == http.MethodPut:
			var patch model.StatusPatch
			json.NewDecoder(r.Body).Decode(&patch)
			b.patches = append(b.patches, patch)
			for i, item := range b.items {
				if item.ID == id {
					b.items[i].Status = patch.Status
					json.NewEncoder(w).Encode(map[string]interface{}{"data": b.items[i]})
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func (b *requestBackend) setFailList(fail bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failList = fail
}

func (b *requestBackend) listCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.getCalls
}

func newStoreFixture(t *testing.T, backend *requestBackend) (*store.RequestStore, *session.Store) {
	t.Helper()
	server := httptest.NewServer(backend.handler())
	t.Cleanup(server.Close)

	sessionStore := session.NewStore(storage.NewMemoryKV(), nil)
	apiClient := client.New(server.URL, time.Second, sessionStore, "imdes-console/1.0")
	requests := service.NewRequestService(apiClient)
	return store.NewRequestStore(requests, sessionStore, util.NewValidationUtil(), nil), sessionStore
}

func pendingRequest(id string) model.DataRequest {
	return model.DataRequest{
		ID:                   id,
		Status:               model.StatusPending,
		RequestingMinistryID: 1,
		TargetMinistryID:     2,
		Purpose:              "Tax compliance audit",
		Urgency:              model.UrgencyMedium,
	}
}

func validInput() model.DataRequestInput {
	return model.DataRequestInput{
		TargetMinistryID:        2,
		DataTypeID:              3,
		Purpose:                 "Tax compliance audit",
		Justification:           "Required for quarterly review",
		Urgency:                 model.UrgencyHigh,
		RetentionPeriodDays:     30,
		DataSharingAcknowledged: true,
		SupervisorApproved:      true,
		RequestorName:           "Aliya Bekova",
		RequestorPosition:       "Senior Analyst",
	}
}

func TestRefreshKeepsStaleItemsOnFailure(t *testing.T) {
	backend := &requestBackend{items: []model.DataRequest{pendingRequest("req-1")}}
	requests, _ := newStoreFixture(t, backend)
	ctx := context.Background()

	require.NoError(t, requests.Refresh(ctx))
	require.Len(t, requests.Items(), 1)
	assert.Empty(t, requests.Err())

	backend.setFailList(true)
	err := requests.Refresh(ctx)
	require.Error(t, err)

	// The previous collection stays readable alongside the error.
	assert.Len(t, requests.Items(), 1)
	assert.Equal(t, "upstream down", requests.Err())
	assert.False(t, requests.Loading())

	// A later successful refresh clears the error.
	backend.setFailList(false)
	require.NoError(t, requests.Refresh(ctx))
	assert.Empty(t, requests.Err())
}

func TestCreateRequiresSupervisorApproval(t *testing.T) {
	backend := &requestBackend{}
	requests, sessionStore := newStoreFixture(t, backend)
	ctx := context.Background()
	require.NoError(t, sessionStore.Set(ctx, "t1", model.UserProfile{ID: 7, MinistryID: 4}))

	input := validInput()
	input.SupervisorApproved = false

	_, err := requests.Create(ctx, input, "Ministry of Health")
	assert.True(t, errors.Is(err, console_errors.ErrSupervisorNotApproved))
	assert.Empty(t, backend.created)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	backend := &requestBackend{}
	requests, sessionStore := newStoreFixture(t, backend)
	ctx := context.Background()
	require.NoError(t, sessionStore.Set(ctx, "t1", model.UserProfile{ID: 7, MinistryID: 4}))

	input := validInput()
	input.Purpose = ""

	_, err := requests.Create(ctx, input, "Ministry of Health")
	assert.True(t, errors.Is(err, console_errors.ErrInvalidRequestData))
	assert.Empty(t, backend.created)
}

func TestCreateRequiresSession(t *testing.T) {
	backend := &requestBackend{}
	requests, _ := newStoreFixture(t, backend)

	_, err := requests.Create(context.Background(), validInput(), "Ministry of Health")
	assert.True(t, errors.Is(err, console_errors.ErrUnauthorized))
}

func TestCreateBuildsPayloadFromSessionAndRefetches(t *testing.T) {
	backend := &requestBackend{}
	requests, sessionStore := newStoreFixture(t, backend)
	ctx := context.Background()
	require.NoError(t, sessionStore.Set(ctx, "t1", model.UserProfile{ID: 7, MinistryID: 4}))

	created, err := requests.Create(ctx, validInput(), "Ministry of Health")
	require.NoError(t, err)
	assert.Equal(t, "req-new", created.ID)

	require.Len(t, backend.created, 1)
	payload := backend.created[0]
	assert.Equal(t, 4, payload.RequestingMinistryID)
	assert.Equal(t, 7, payload.RequestedBy)
	assert.Equal(t, model.StatusPending, payload.Status)

	// The mutation refetches the whole collection instead of patching it.
	assert.Equal(t, 1, backend.listCalls())
	assert.Len(t, requests.Items(), 1)
}

func TestApprovePendingRequest(t *testing.T) {
	backend := &requestBackend{items: []model.DataRequest{pendingRequest("req-1")}}
	requests, _ := newStoreFixture(t, backend)
	ctx := context.Background()
	require.NoError(t, requests.Refresh(ctx))

	updated, err := requests.Approve(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)

	require.Len(t, backend.patches, 1)
	assert.Equal(t, model.StatusApproved, backend.patches[0].Status)

	items := requests.Items()
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusApproved, items[0].Status)
}

func TestDecideRejectsSettledRequest(t *testing.T) {
	settled := pendingRequest("req-1")
	settled.Status = model.StatusApproved
	backend := &requestBackend{items: []model.DataRequest{settled}}
	requests, _ := newStoreFixture(t, backend)
	ctx := context.Background()
	require.NoError(t, requests.Refresh(ctx))

	_, err := requests.Reject(ctx, "req-1")
	assert.True(t, errors.Is(err, console_errors.ErrInvalidStatusChange))
	// The PUT is never issued for a forbidden transition.
	assert.Empty(t, backend.patches)
}

func TestDecideUnknownRequest(t *testing.T) {
	backend := &requestBackend{}
	requests, _ := newStoreFixture(t, backend)

	_, err := requests.Approve(context.Background(), "missing")
	assert.True(t, errors.Is(err, console_errors.ErrRequestNotFound))
}

func TestDecideFallsBackToFetchWhenNotCached(t *testing.T) {
	backend := &requestBackend{items: []model.DataRequest{pendingRequest("req-1")}}
	requests, _ := newStoreFixture(t, backend)

	// No Refresh first: the store has to fetch the record to check the
	// transition.
	updated, err := requests.Approve(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, updated.Status)
}
