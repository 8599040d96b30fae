package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/agendahub/agenda-api/internal/config"
	dbpkg "github.com/agendahub/agenda-api/internal/db"
	"github.com/agendahub/agenda-api/internal/notification"
	"github.com/agendahub/agenda-api/internal/routes"
)

// ======================================================
// FIXTURE
// ======================================================

type fakeTransport struct {
	mu   sync.Mutex
	sent []notification.Message
}

func (t *fakeTransport) Send(_ context.Context, msg notification.Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, msg)
	return nil
}

func (t *fakeTransport) count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sent)
}

type api struct {
	router    *gin.Engine
	db        *gorm.DB
	transport *fakeTransport
	notifier  *notification.Dispatcher
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{JWTSecret: "test-secret"}

	transport := &fakeTransport{}
	notifier := notification.NewDispatcher(transport, zap.NewNop(), time.Second)

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg, zap.NewNop(), notifier)

	return &api{router: r, db: db, transport: transport, notifier: notifier}
}

func (a *api) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *api) register(t *testing.T, name, email string) string {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, 201, w.Code)

	body := decode(t, w)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func (a *api) createClient(t *testing.T, token, name, email string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/clients", token, gin.H{
		"name":  name,
		"email": email,
	})
	require.Equal(t, 200, w.Code)
	require.Equal(t, true, decode(t, w)["success"])
}

func (a *api) createService(t *testing.T, token, name string) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/services", token, gin.H{"name": name})
	require.Equal(t, 200, w.Code)
	require.Equal(t, true, decode(t, w)["success"])
}

// ======================================================
// TESTS
// ======================================================

func TestBookingEndpointsRequireAuth(t *testing.T) {
	a := newAPI(t)
	defer a.notifier.Close()

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/bookings"},
		{http.MethodPost, "/api/bookings"},
		{http.MethodPut, "/api/bookings/1"},
		{http.MethodDelete, "/api/bookings/1"},
	} {
		w := a.do(t, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestBookingFlow(t *testing.T) {
	a := newAPI(t)

	token := a.register(t, "Studio Ana", "studio@x.com")
	a.createClient(t, token, "Ana", "ana@x.com")
	a.createService(t, token, "Corte")

	// criar agendamento sem status assume pendente
	w := a.do(t, http.MethodPost, "/api/bookings", token, gin.H{
		"client_id":  1,
		"service_id": 1,
		"date":       "2025-03-10",
		"time":       "14:00",
	})
	require.Equal(t, 200, w.Code)
	require.Equal(t, true, decode(t, w)["success"])

	w = a.do(t, http.MethodGet, "/api/bookings", token, nil)
	require.Equal(t, 200, w.Code)

	var list struct {
		Data []struct {
			ID         uint   `json:"id"`
			ClientName string `json:"client_name"`
			Status     string `json:"status"`
		} `json:"data"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "pendente", list.Data[0].Status)
	assert.Equal(t, "Ana", list.Data[0].ClientName)

	// atualizar status
	w = a.do(t, http.MethodPut, "/api/bookings/1", token, gin.H{"status": "confirmado"})
	require.Equal(t, 200, w.Code)
	require.Equal(t, true, decode(t, w)["success"])

	// status desconhecido: falha de formulário, não 4xx
	w = a.do(t, http.MethodPut, "/api/bookings/1", token, gin.H{"status": "finalizado"})
	require.Equal(t, 200, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Status inválido", body["message"])

	// uma notificação por criação + uma por mudança de status
	a.notifier.Close()
	assert.Equal(t, 2, a.transport.count())
}

func TestBookingCrossAccountIsNotFound(t *testing.T) {
	a := newAPI(t)
	defer a.notifier.Close()

	owner := a.register(t, "Conta 1", "um@x.com")
	a.createClient(t, owner, "Ana", "ana@x.com")
	a.createService(t, owner, "Corte")

	w := a.do(t, http.MethodPost, "/api/bookings", owner, gin.H{
		"client_id":  1,
		"service_id": 1,
		"date":       "2025-03-10",
		"time":       "14:00",
	})
	require.Equal(t, 200, w.Code)
	require.Equal(t, true, decode(t, w)["success"])

	intruder := a.register(t, "Conta 2", "dois@x.com")

	w = a.do(t, http.MethodPut, "/api/bookings/1", intruder, gin.H{"status": "cancelado"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(t, http.MethodDelete, "/api/bookings/1", intruder, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// o dono ainda vê o agendamento pendente
	w = a.do(t, http.MethodGet, "/api/bookings", owner, nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pendente"`)
}

func TestCreateBookingReportsMissingReferences(t *testing.T) {
	a := newAPI(t)
	defer a.notifier.Close()

	token := a.register(t, "Conta 1", "um@x.com")
	a.createService(t, token, "Corte")

	w := a.do(t, http.MethodPost, "/api/bookings", token, gin.H{
		"client_id":  99,
		"service_id": 1,
		"date":       "2025-03-10",
		"time":       "14:00",
	})
	require.Equal(t, 200, w.Code)

	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Cliente não encontrado", body["message"])
}

func TestDashboardStats(t *testing.T) {
	a := newAPI(t)
	defer a.notifier.Close()

	token := a.register(t, "Conta 1", "um@x.com")
	a.createClient(t, token, "Ana", "")
	a.createService(t, token, "Corte")

	w := a.do(t, http.MethodPost, "/api/bookings", token, gin.H{
		"client_id":  1,
		"service_id": 1,
		"date":       "2025-03-10",
		"time":       "14:00",
	})
	require.Equal(t, 200, w.Code)

	w = a.do(t, http.MethodGet, "/api/dashboard/stats", token, nil)
	require.Equal(t, 200, w.Code)

	body := decode(t, w)
	assert.EqualValues(t, 1, body["total_clients"])
	assert.EqualValues(t, 1, body["total_services"])
	assert.EqualValues(t, 1, body["bookings_pending"])
}
