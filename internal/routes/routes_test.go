package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "apix/internal/errors"
	"apix/internal/repositories"
	"apix/internal/services/cep"
	"apix/internal/services/transfer"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

const validBody = `{"fecha":"2024-01-15","clave_rastreo":"ABC123","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":5000}`

type MockValidator struct {
	mock.Mock
}

func (m *MockValidator) Validate(ctx context.Context, q cep.Query) (transfer.Receipt, error) {
	args := m.Called(q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(transfer.Receipt), args.Error(1)
}

type staticReceipt struct {
	content []byte
	err     error
}

func (r staticReceipt) Details() cep.Details {
	return cep.Details{ClaveRastreo: "ABC123"}
}

func (r staticReceipt) Download(context.Context) ([]byte, error) {
	return r.content, r.err
}

type testApp struct {
	app       *fiber.App
	validator *MockValidator
	dir       string
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	dir := t.TempDir()
	store, err := repositories.NewFileStore(dir)
	require.NoError(t, err)

	validator := new(MockValidator)
	reg := prometheus.NewRegistry()
	app := NewApp(Options{
		TransferService: transfer.NewService(validator, store, transfer.NewPrometheusMetrics(reg), nil),
		Store:           store,
		StorageDriver:   "file",
		Registerer:      reg,
		Gatherer:        reg,
		CORSOrigins:     "*",
	})
	return &testApp{app: app, validator: validator, dir: dir}
}

func (ta *testApp) post(t *testing.T, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transfer/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestValidateTransfer_Found(t *testing.T) {
	ta := newTestApp(t)
	ta.validator.On("Validate", mock.Anything).Return(staticReceipt{content: []byte("%PDF-1.4...")}, nil)

	status, body := ta.post(t, validBody)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": true, "message": "Transfer validated successfully"}, body)

	got, err := os.ReadFile(filepath.Join(ta.dir, "ABC123.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4..."), got)
}

func TestValidateTransfer_NotFound(t *testing.T) {
	ta := newTestApp(t)
	ta.validator.On("Validate", mock.Anything).Return(nil, apperrors.Wrap(apperrors.ErrTransferNotFound, cep.ErrTransferNotFound))

	status, body := ta.post(t, validBody)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]interface{}{"success": false, "message": "Transfer not found"}, body)

	_, err := os.Stat(filepath.Join(ta.dir, "ABC123.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestValidateTransfer_RepeatOverwrites(t *testing.T) {
	ta := newTestApp(t)
	ta.validator.On("Validate", mock.Anything).Return(staticReceipt{content: []byte("first")}, nil).Once()
	ta.validator.On("Validate", mock.Anything).Return(staticReceipt{content: []byte("second")}, nil).Once()

	status1, body1 := ta.post(t, validBody)
	status2, body2 := ta.post(t, validBody)

	assert.Equal(t, http.StatusOK, status1)
	assert.Equal(t, status1, status2)
	assert.Equal(t, body1, body2)

	got, err := os.ReadFile(filepath.Join(ta.dir, "ABC123.pdf"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestValidateTransfer_UnexpectedError(t *testing.T) {
	ta := newTestApp(t)
	ta.validator.On("Validate", mock.Anything).Return(nil, errors.New("banxico exploded"))

	status, body := ta.post(t, validBody)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body["detail"], "banxico exploded")
}

func TestValidateTransfer_FailureMarksServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	ta := newTestApp(t)
	ta.validator.On("Validate", mock.Anything).Return(nil, errors.New("banxico exploded"))

	status, _ := ta.post(t, validBody)
	require.Equal(t, http.StatusInternalServerError, status)

	var server sdktrace.ReadOnlySpan
	for _, s := range recorder.Ended() {
		if s.SpanKind() == trace.SpanKindServer {
			server = s
		}
	}
	require.NotNil(t, server)
	assert.Equal(t, codes.Error, server.Status().Code)
	assert.Contains(t, server.Status().Description, "banxico exploded")
}

func TestValidateTransfer_StorageError(t *testing.T) {
	ta := newTestApp(t)
	ta.validator.On("Validate", mock.Anything).Return(staticReceipt{content: []byte("%PDF")}, nil)

	status, body := ta.post(t, `{"fecha":"2024-01-15","clave_rastreo":"../ABC123","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":5000}`)

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body["detail"], "invalid document key")
}

func TestValidateTransfer_SchemaViolations(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"malformed json", `{"fecha":`, ""},
		{"missing clave_rastreo", `{"fecha":"2024-01-15","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":5000}`, "clave_rastreo"},
		{"empty emisor", `{"fecha":"2024-01-15","clave_rastreo":"ABC123","emisor":"","receptor":"BankB","cuenta":"000111222","monto":5000}`, "emisor"},
		{"zero monto", `{"fecha":"2024-01-15","clave_rastreo":"ABC123","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":0}`, "monto"},
		{"negative monto", `{"fecha":"2024-01-15","clave_rastreo":"ABC123","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":-5}`, "monto"},
		{"fractional monto", `{"fecha":"2024-01-15","clave_rastreo":"ABC123","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":50.5}`, ""},
		{"bad fecha", `{"fecha":"yesterday","clave_rastreo":"ABC123","emisor":"BankA","receptor":"BankB","cuenta":"000111222","monto":5000}`, "fecha"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t)

			status, body := ta.post(t, tt.body)

			assert.Equal(t, http.StatusUnprocessableEntity, status)
			details, ok := body["detail"].([]interface{})
			require.True(t, ok)
			require.NotEmpty(t, details)
			if tt.field != "" {
				loc := details[0].(map[string]interface{})["loc"].([]interface{})
				assert.Equal(t, []interface{}{"body", tt.field}, loc)
			}
			ta.validator.AssertNotCalled(t, "Validate", mock.Anything)
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	ta := newTestApp(t)

	resp, err := ta.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	ta.validator.On("Validate", mock.Anything).Return(nil, apperrors.Wrap(apperrors.ErrTransferNotFound, cep.ErrTransferNotFound))
	ta.post(t, validBody)

	resp, err = ta.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `transfer_validations_total{outcome="not_found"} 1`)
	assert.Contains(t, string(raw), "http_request_duration_seconds")
}
