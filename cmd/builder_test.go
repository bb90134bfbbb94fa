package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"store/config"
	"store/domain/customer"
	"store/infrastructure/email"
	"store/infrastructure/persistence/mysql"
	"store/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (s *recordingSender) Send(_ context.Context, msg email.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func testConfig(t *testing.T, dbType string) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.App.Env = "test"
	cfg.Server.RateLimit.Enabled = false
	cfg.Redis.Enabled = false
	cfg.Database.Type = dbType
	cfg.Database.Path = mysql.MemoryPath
	cfg.Database.AutoMigrate = true
	return cfg
}

func createCustomer(t *testing.T, h http.Handler) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"first_name": "João",
		"last_name":  "Carvalho",
		"document":   "250.517.200-56",
		"email":      "joao@store.io",
		"phone":      "11123456789",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/customers", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestBuild_MockSendsMailDirectly(t *testing.T) {
	sender := &recordingSender{}
	app, err := NewBuilder(testConfig(t, DatabaseMock)).
		WithRegistry(prometheus.NewRegistry()).
		WithSender(sender).
		Build(context.Background())
	require.NoError(t, err)
	defer app.Close()

	createCustomer(t, app.Handler())

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "joao@store.io", sender.sent[0].To)
	assert.Equal(t, "Welcome to the store", sender.sent[0].Subject)
}

func TestBuild_SQLiteQueuesMailInOutbox(t *testing.T) {
	ctx := context.Background()
	app, err := NewBuilder(testConfig(t, mysql.DriverSQLite)).
		WithRegistry(prometheus.NewRegistry()).
		Build(ctx)
	require.NoError(t, err)
	defer app.Close()

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/products", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var products struct {
		Data []json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products.Data, 3)

	createCustomer(t, app.Handler())

	outbox := mysql.NewOutboxRepository(app.db)
	pending, err := outbox.GetPendingEvents(ctx, 10)
	require.NoError(t, err)
	types := make([]string, 0, len(pending))
	for _, e := range pending {
		types = append(types, e.EventType)
	}
	assert.ElementsMatch(t, []string{customer.EventCustomerRegistered, email.EventWelcomeEmail}, types)

	sender := &recordingSender{}
	worker, err := mysql.NewOutboxWorker(outbox, email.NewDispatcher(sender),
		metrics.New(prometheus.NewRegistry()), app.config.Worker.PollInterval, 10, 3)
	require.NoError(t, err)

	n, err := worker.ProcessBatch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "joao@store.io", sender.sent[0].To)
}

func TestBuild_DatabaseUnreachable(t *testing.T) {
	cfg := testConfig(t, mysql.DriverSQLite)
	cfg.Database.Path = t.TempDir() + "/missing/dir/store.db"

	_, err := NewBuilder(cfg).WithRegistry(prometheus.NewRegistry()).Build(context.Background())
	assert.Error(t, err)
}
