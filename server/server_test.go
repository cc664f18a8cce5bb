package server

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/guangfu250923/relief-backend/repository"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	repo := repository.NewRepositoryWithDB(db)
	require.NoError(t, repo.Migrate())

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ws := NewWebServer("0", logger, repo)

	srv := httptest.NewServer(ws.Handler())
	t.Cleanup(func() {
		srv.Close()
		sqlDB.Close()
	})
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, reqBody)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &decoded), "body: %s", raw)
	}
	return resp, decoded
}

func createSupply(t *testing.T, baseURL string) (id, pin string, itemIDs []string) {
	t.Helper()
	resp, body := doJSON(t, http.MethodPost, baseURL+"/supplies", map[string]any{
		"name":    "Station A",
		"address": "near the bridge",
		"phone":   "0912345678",
		"supplies": []map[string]any{
			{"total_number": 10, "tag": "food", "name": "rice", "unit": "kg"},
			{"total_number": 4, "tag": "medical_supplies"},
		},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	id, _ = body["id"].(string)
	pin, _ = body["edit_pin"].(string)
	require.NotEmpty(t, id)
	require.Len(t, pin, 6)

	items, ok := body["supplies"].([]any)
	require.True(t, ok, "expected embedded supplies array, body: %v", body)
	for _, raw := range items {
		item := raw.(map[string]any)
		itemIDs = append(itemIDs, item["id"].(string))
	}
	require.Len(t, itemIDs, 2)
	return id, pin, itemIDs
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}

func TestCreateSupplyEndpoint(t *testing.T) {
	srv := newTestServer(t)
	createSupply(t, srv.URL)
}

func TestGetSupplyHidesPin(t *testing.T) {
	srv := newTestServer(t)
	id, _, _ := createSupply(t, srv.URL)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/supplies/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, exposed := body["edit_pin"]
	assert.False(t, exposed, "edit_pin must not appear on reads")
}

func TestCreateSupplyRejectsInvalidItem(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/supplies", map[string]any{
		"supplies": []map[string]any{
			{"total_number": 0, "tag": "food"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["fields"])
}

func TestListSuppliesEnvelope(t *testing.T) {
	srv := newTestServer(t)
	createSupply(t, srv.URL)

	resp, body := doJSON(t, http.MethodGet, srv.URL+"/supplies?limit=5", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["totalItems"])
	assert.Equal(t, float64(5), body["limit"])
	assert.Equal(t, float64(0), body["offset"])
	member, ok := body["member"].([]any)
	require.True(t, ok)
	assert.Len(t, member, 1)
}

func TestPatchSupplyPinGate(t *testing.T) {
	srv := newTestServer(t)
	id, pin, _ := createSupply(t, srv.URL)

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/supplies/"+id, map[string]any{
		"edit_pin": "000000",
		"name":     "hijacked",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "PIN")

	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/supplies/"+id, map[string]any{
		"edit_pin": pin,
		"name":     "Station B",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Station B", body["name"])
}

func TestDistributionEndpoint(t *testing.T) {
	srv := newTestServer(t)
	id, pin, itemIDs := createSupply(t, srv.URL)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/supplies/"+id+"/distributions", map[string]any{
		"edit_pin": pin,
		"items": []map[string]any{
			{"id": itemIDs[0], "count": 6},
			{"id": itemIDs[1], "count": 4},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	member, ok := body["member"].([]any)
	require.True(t, ok)
	require.Len(t, member, 2)
	first := member[0].(map[string]any)
	assert.Equal(t, float64(6), first["received_count"])
}

func TestDistributionOverflowReturns400(t *testing.T) {
	srv := newTestServer(t)
	id, pin, itemIDs := createSupply(t, srv.URL)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/supplies/"+id+"/distributions", map[string]any{
		"edit_pin": pin,
		"items": []map[string]any{
			{"id": itemIDs[0], "count": 11},
		},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "exceed")

	// The rejected batch must not have changed anything.
	resp, item := doJSON(t, http.MethodGet, srv.URL+"/supply_items/"+itemIDs[0], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(0), item["received_count"])
}

func TestDistributionUnknownSupplyReturns404(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/supplies/missing/distributions", map[string]any{
		"edit_pin": "123456",
		"items":    []map[string]any{{"id": "x", "count": 1}},
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPatchSupplyItemLockedPair(t *testing.T) {
	srv := newTestServer(t)
	_, pin, itemIDs := createSupply(t, srv.URL)

	// Fill the second item (total 4) completely, locking its pair.
	resp, _ := doJSON(t, http.MethodPatch, srv.URL+"/supply_items/"+itemIDs[1], map[string]any{
		"edit_pin":       pin,
		"received_count": 4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, http.MethodPatch, srv.URL+"/supply_items/"+itemIDs[1], map[string]any{
		"edit_pin":     pin,
		"total_number": 8,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "locked")
}

func TestHumanResourceEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/human_resources", map[string]any{
		"org":            "Local Fire Brigade",
		"address":        "Station 3",
		"role_name":      "debris clearing",
		"role_type":      "general_volunteer",
		"headcount_need": 10,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)
	pin := body["edit_pin"].(string)
	require.Len(t, pin, 6)

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/human_resources/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_, exposed := body["edit_pin"]
	assert.False(t, exposed, "edit_pin must not appear on reads")

	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/human_resources/"+id, map[string]any{
		"edit_pin":      pin,
		"headcount_got": 3,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(3), body["headcount_got"])
}

func TestShelterEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doJSON(t, http.MethodPost, srv.URL+"/shelters", map[string]any{
		"name":     "Community Hall",
		"location": "center of town",
		"phone":    "03-8702100",
		"status":   "open",
		"capacity": 80,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	id := body["id"].(string)

	resp, body = doJSON(t, http.MethodPatch, srv.URL+"/shelters/"+id, map[string]any{
		"status": "full",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "full", body["status"])

	resp, body = doJSON(t, http.MethodGet, srv.URL+"/shelters?status=full", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["totalItems"])
}

func TestMalformedBodyReturns422(t *testing.T) {
	srv := newTestServer(t)

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/supplies", bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}
