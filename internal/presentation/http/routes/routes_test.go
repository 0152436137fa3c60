package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gestor-mesas/internal/application/service"
	"github.com/sangkips/gestor-mesas/internal/config"
	"github.com/sangkips/gestor-mesas/internal/domain/entity"
	"github.com/sangkips/gestor-mesas/internal/infrastructure/messaging"
	"github.com/sangkips/gestor-mesas/internal/infrastructure/repository"
	"github.com/sangkips/gestor-mesas/internal/presentation/http/handler"
	"github.com/sangkips/gestor-mesas/pkg/printer"
	"github.com/sangkips/gestor-mesas/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	router *gin.Engine
	events *messaging.RecordingPublisher
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.StoredCollection{}, &entity.IdempotencyKey{}, &entity.StoreSettings{}))

	events := &messaging.RecordingPublisher{}
	floor := service.NewFloorService(repository.NewCollectionRepository(db), events)
	require.NoError(t, floor.Load(context.Background()))

	jwtManager := utils.NewJWTManager("test-secret", time.Hour)
	hash, err := utils.HashPassword("4321")
	require.NoError(t, err)

	settings := service.NewSettingsService(repository.NewSettingsRepository(db), "LOJA")
	handlers := &Handlers{
		Auth:      handler.NewAuthHandler(service.NewAuthService(cfg.Auth.Enabled, hash, jwtManager)),
		Table:     handler.NewTableHandler(service.NewTableService(floor)),
		Catalog:   handler.NewCatalogHandler(service.NewCatalogService(floor)),
		Purchase:  handler.NewPurchaseHandler(service.NewPurchaseService(floor)),
		Dashboard: handler.NewDashboardHandler(service.NewDashboardService(floor)),
		Printer:   handler.NewPrinterHandler(service.NewPrinterService(printer.NewNullPrinter(), floor, settings, "none", 32)),
		Settings:  handler.NewSettingsHandler(settings),
	}

	stop := make(chan struct{})
	t.Cleanup(func() { close(stop) })

	router := Setup(handlers, &Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: repository.NewIdempotencyRepository(db),
		Stop:            stop,
	})
	return &testServer{router: router, events: events}
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "gestor-mesas"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

type tableResult struct {
	Table      entity.Table `json:"table"`
	Transition string       `json:"transition"`
	Summary    struct {
		Subtotal     float64 `json:"subtotal"`
		AccountedFee float64 `json:"accounted_fee"`
		Total        float64 `json:"total"`
	} `json:"summary"`
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig())

	s.do(t, http.MethodGet, "/api/v1/tables", nil)
	w := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Service     string `json:"service"`
		RateLimiter struct {
			ActiveClients int `json:"active_clients"`
			BurstSize     int `json:"burst_size"`
		} `json:"rate_limiter"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "gestor-mesas", body.Service)
	assert.Equal(t, 1, body.RateLimiter.ActiveClients)
	assert.Equal(t, 1000, body.RateLimiter.BurstSize)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodOptions, "/api/v1/purchases", nil,
		"Origin", "http://localhost:5173",
		"Access-Control-Request-Method", http.MethodPost,
		"Access-Control-Request-Headers", "Idempotency-Key",
	)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	w = s.do(t, http.MethodGet, "/api/v1/tables", nil, "Origin", "http://localhost:5173")
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "X-Request-Id")
}

func TestTableLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodPost, "/api/v1/tables", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created tableResult
	decode(t, w, &created)
	id := created.Table.ID
	assert.Equal(t, "Mesa 1", created.Table.Name)

	w = s.do(t, http.MethodPost, "/api/v1/tables/"+id+"/products", map[string]interface{}{
		"description": "Cerveja", "quantity": 2, "unit_price": 10,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var withLine tableResult
	decode(t, w, &withLine)
	require.Len(t, withLine.Table.Products, 1)
	lineID := withLine.Table.Products[0].ID

	w = s.do(t, http.MethodPost, "/api/v1/tables/"+id+"/products/"+lineID+"/deliver", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/tables/"+id+"/payment-records", map[string]interface{}{
		"amount": 22, "method": "pix",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var paid tableResult
	decode(t, w, &paid)
	assert.Equal(t, "invoiced", paid.Transition)
	assert.Equal(t, 2.0, paid.Summary.AccountedFee)
	assert.Contains(t, s.events.Types(), messaging.EventTableInvoiced)

	w = s.do(t, http.MethodGet, "/api/v1/tables/invoiced", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []map[string]interface{}
	decode(t, w, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0]["id"])

	w = s.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats struct {
		Totals struct {
			TotalBilled     float64 `json:"total_billed"`
			TotalPix        float64 `json:"total_pix"`
			TotalServiceFee float64 `json:"total_service_fee"`
		} `json:"totals"`
	}
	decode(t, w, &stats)
	assert.Equal(t, 22.0, stats.Totals.TotalBilled)
	assert.Equal(t, 22.0, stats.Totals.TotalPix)
	assert.Equal(t, 2.0, stats.Totals.TotalServiceFee)
}

func TestCounterIsProtectedOverHTTP(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodDelete, "/api/v1/tables/"+entity.CounterTableID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	env := decode(t, w, nil)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Meta.RequestID)

	w = s.do(t, http.MethodGet, "/api/v1/tables/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidPaymentMethodIsRejected(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodPost, "/api/v1/tables/"+entity.CounterTableID+"/payment-records", map[string]interface{}{
		"amount": 10, "method": "cheque",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPurchaseIdempotency(t *testing.T) {
	s := newTestServer(t, testConfig())
	body := map[string]interface{}{"description": "gelo", "amount": 15, "method": "cash"}

	first := s.do(t, http.MethodPost, "/api/v1/purchases", body, "Idempotency-Key", "abc")
	require.Equal(t, http.StatusCreated, first.Code, first.Body.String())

	second := s.do(t, http.MethodPost, "/api/v1/purchases", body, "Idempotency-Key", "abc")
	require.Equal(t, http.StatusCreated, second.Code)
	assert.Equal(t, "true", second.Header().Get("X-Idempotency-Replayed"))
	assert.Equal(t, first.Body.String(), second.Body.String())

	w := s.do(t, http.MethodGet, "/api/v1/purchases?page=1&per_page=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []entity.Purchase `json:"items"`
	}
	decode(t, w, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "GELO", page.Items[0].Description)
}

func TestMenuAndInventoryOverHTTP(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/v1/menu?q=cerveja", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []entity.MenuItem
	decode(t, w, &items)
	require.Len(t, items, 1)

	w = s.do(t, http.MethodDelete, "/api/v1/menu/"+items[0].ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = s.do(t, http.MethodDelete, "/api/v1/menu/"+items[0].ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/inventory", map[string]interface{}{"name": "gelo", "quantity": 4})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var stock entity.InventoryItem
	decode(t, w, &stock)
	assert.Equal(t, "GELO", stock.Name)
}

func TestViewAndReports(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodPut, "/api/v1/view", map[string]interface{}{"view": "table", "table_id": entity.CounterTableID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var view map[string]interface{}
	decode(t, w, &view)
	assert.Equal(t, "table", view["view"])

	w = s.do(t, http.MethodGet, "/api/v1/waiting-list", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/reports/sales.xlsx", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "vendas.xlsx")
	assert.NotEmpty(t, w.Body.Bytes())

	w = s.do(t, http.MethodPost, "/api/v1/tables/"+entity.CounterTableID+"/print", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestStoreSettingsOverHTTP(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/v1/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var settings entity.StoreSettings
	decode(t, w, &settings)
	assert.Equal(t, "LOJA", settings.StoreName)

	w = s.do(t, http.MethodPut, "/api/v1/settings", map[string]interface{}{"address": "Rua A"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/settings", map[string]interface{}{
		"store_name":     "Bar do Ze",
		"phone":          "(11) 5555-0000",
		"receipt_footer": "Volte sempre",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/tables/"+entity.CounterTableID+"/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var printed struct {
		Receipt entity.Receipt `json:"receipt"`
	}
	decode(t, w, &printed)
	assert.Equal(t, "Bar do Ze", printed.Receipt.Header.StoreName)
	assert.Equal(t, "(11) 5555-0000", printed.Receipt.Header.Phone)
	assert.Equal(t, "Volte sempre", printed.Receipt.Footer)
}

func TestAuthRequiredWhenEnabled(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.Enabled = true
	s := newTestServer(t, cfg)

	w := s.do(t, http.MethodGet, "/api/v1/tables", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{"pin": "0000"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]interface{}{"operator": "ana", "pin": "4321"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, w, &login)

	w = s.do(t, http.MethodGet, "/api/v1/tables", nil, "Authorization", "Bearer "+login.AccessToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Requests: 2, Duration: 60}
	s := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/tables", nil).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodGet, "/api/v1/tables", nil).Code)
	w := s.do(t, http.MethodGet, "/api/v1/tables", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
}
