package webserver_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/supercomputers/shopd/config"
	"github.com/supercomputers/shopd/internal/adminapi"
	"github.com/supercomputers/shopd/internal/app"
	"github.com/supercomputers/shopd/internal/shopapi"
	"github.com/supercomputers/shopd/internal/webserver"
)

const testAdminKey = "test-admin-key"

func setupServer(t *testing.T) {
	t.Helper()
	workdir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(workdir, "data"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(workdir, "pdfs"), 0o755))

	cfg := &config.AppConfig{
		System:   config.SysConfig{Appid: "shopd", Location: "UTC", Workdir: workdir},
		Web:      config.WebConfig{Host: "127.0.0.1", Port: 0, AdminKey: testAdminKey},
		Database: config.DBConfig{Type: "sqlite", Name: "shopd_test"},
		Logger:   config.LogConfig{Mode: "development", FileEnable: false},
	}

	application := app.NewApplication(cfg)
	application.Init(cfg)
	t.Cleanup(application.Release)

	webserver.Init(application)
	shopapi.InitRouter()
	adminapi.InitRouter()
}

func doJSON(t *testing.T, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echoHeaderContentType, "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	webserver.Instance().ServeHTTP(rec, req)

	var decoded map[string]interface{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), "body: %s", rec.Body.String())
	}
	return rec, decoded
}

const echoHeaderContentType = "Content-Type"

func adminHeaders() map[string]string {
	return map[string]string{webserver.AdminKeyHeader: testAdminKey}
}

func TestShopdHTTP(t *testing.T) {
	setupServer(t)

	t.Run("health", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodGet, "/api/health", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["ok"])
	})

	t.Run("book and track", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodPost, "/api/book",
			`{"device_type":"Laptop","date_slot":"2024-05-01","description":"Screen crack","contact_phone":"9999999999"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, body["success"])

		ticket, _ := body["bookingId"].(string)
		require.Regexp(t, fmt.Sprintf(`^TF%d-[0-9A-Z]{8}$`, time.Now().Year()), ticket)

		rec, body = doJSON(t, http.MethodGet, "/api/track?phone="+ticket, "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, true, body["success"])
		booked := body["booking"].(map[string]interface{})
		assert.Equal(t, "Pending", booked["status"])
		assert.Equal(t, ticket, booked["ticket_id"])

		// phone lookup hits the same booking
		rec, body = doJSON(t, http.MethodGet, "/api/track?phone=9999999999", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
	})

	t.Run("track misses", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodGet, "/api/track?phone=0000000000", "", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, false, body["success"])

		rec, _ = doJSON(t, http.MethodGet, "/api/track", "", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("book missing fields", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodPost, "/api/book", `{"device_type":"Laptop"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("admin key required", func(t *testing.T) {
		for _, path := range []string{"/api/admin/summary", "/api/admin/products", "/api/admin/bookings"} {
			rec, _ := doJSON(t, http.MethodGet, path, "", nil)
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)

			rec, _ = doJSON(t, http.MethodGet, path, "", map[string]string{webserver.AdminKeyHeader: "wrong-key"})
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		}
	})

	t.Run("admin product lifecycle", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodPost, "/api/admin/products",
			`{"title":"Laptop X","category":"computers","price":50000,"offerPercentage":10,"hideProduct":true}`,
			adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		require.Equal(t, true, body["success"])

		product := body["product"].(map[string]interface{})
		id, _ := product["id"].(string)
		require.NotEmpty(t, id)
		history := product["priceHistory"].([]interface{})
		require.Len(t, history, 1)

		// hidden product is absent from the public list but present for admin
		rec, body = doJSON(t, http.MethodGet, "/api/products", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		for _, raw := range body["items"].([]interface{}) {
			assert.NotEqual(t, "Laptop X", raw.(map[string]interface{})["title"])
		}

		rec, body = doJSON(t, http.MethodGet, "/api/admin/products", "", adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code)
		titles := []string{}
		for _, raw := range body["items"].([]interface{}) {
			titles = append(titles, raw.(map[string]interface{})["title"].(string))
		}
		assert.Contains(t, titles, "Laptop X")

		// price drop appends one history entry carrying the offer through
		rec, body = doJSON(t, http.MethodPatch, "/api/admin/products/"+id,
			`{"price":45000}`, adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		item := body["item"].(map[string]interface{})
		history = item["priceHistory"].([]interface{})
		require.Len(t, history, 2)
		last := history[1].(map[string]interface{})
		assert.Equal(t, 45000.0, last["price"])
		assert.Equal(t, 10.0, last["offerPercentage"])

		rec, body = doJSON(t, http.MethodPatch, "/api/admin/products/424242",
			`{"price":1}`, adminHeaders())
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, false, body["success"])

		rec, body = doJSON(t, http.MethodPatch, "/api/admin/products/"+id,
			`{"offerPercentage":95}`, adminHeaders())
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("c2c intake", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodPost, "/api/c2c",
			`{"c2c_brand":"Amazon","c2c_amount":"1000","c2c_name":"Ravi","c2c_phone":"9876543210"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, body["success"])
		assert.Regexp(t, `^C2C-[0-9A-F]{8}$`, body["refId"])

		rec, body = doJSON(t, http.MethodPost, "/api/c2c", `{"c2c_brand":"Amazon"}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])

		rec, body = doJSON(t, http.MethodGet, "/api/admin/c2c", "", adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, body["items"])
	})

	t.Run("csc and contact intake", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodPost, "/api/csc-booking",
			`{"service":"Aadhaar update","date":"2024-06-01","name":"Sita","phone":"9876500000"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Regexp(t, `^CSC-[0-9A-F]{8}$`, body["token"])

		rec, body = doJSON(t, http.MethodPost, "/api/contact",
			`{"c_name":"Sita","c_email":"sita@example.com","c_subject":"Hello","c_message":"Hi there"}`, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Regexp(t, `^CT-[0-9A-F]{8}$`, body["refId"])
	})

	t.Run("cart pdf", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodPost, "/api/cart-pdf",
			`{"items":[{"title":"Laptop X","price":50000,"qty":1}],"subtotal":50000}`, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, true, body["success"])
		assert.Contains(t, body["pdfUrl"], "/pdfs/ORD-")

		rec, body = doJSON(t, http.MethodPost, "/api/cart-pdf", `{"items":[]}`, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("admin summary and settings", func(t *testing.T) {
		rec, body := doJSON(t, http.MethodGet, "/api/admin/summary", "", adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code)
		data := body["data"].(map[string]interface{})
		assert.GreaterOrEqual(t, data["bookingCount"].(float64), 1.0)
		assert.GreaterOrEqual(t, data["productCount"].(float64), 1.0)

		rec, body = doJSON(t, http.MethodGet, "/api/admin/settings", "", adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code)
		assert.NotEmpty(t, body["items"])

		rec, _ = doJSON(t, http.MethodPut, "/api/admin/settings",
			`{"type":"system","name":"SiteName","value":"Super Computers QA"}`, adminHeaders())
		require.Equal(t, http.StatusOK, rec.Code)
	})
}
