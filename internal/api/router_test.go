package api

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/factuurdesk/factuurdesk/internal/api/dto"
	v1 "github.com/factuurdesk/factuurdesk/internal/api/v1"
	"github.com/factuurdesk/factuurdesk/internal/cache"
	"github.com/factuurdesk/factuurdesk/internal/config"
	ierr "github.com/factuurdesk/factuurdesk/internal/errors"
	"github.com/factuurdesk/factuurdesk/internal/logger"
	"github.com/factuurdesk/factuurdesk/internal/pdf"
	"github.com/factuurdesk/factuurdesk/internal/sentry"
	"github.com/factuurdesk/factuurdesk/internal/service"
	"github.com/factuurdesk/factuurdesk/internal/testutil"
	"github.com/factuurdesk/factuurdesk/internal/types"
	"github.com/factuurdesk/factuurdesk/internal/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router   *gin.Engine
	invoices *testutil.InMemoryInvoiceStore
	settings *testutil.InMemorySettingsStore
}

func newTestServer(t *testing.T, mutate func(cfg *config.Configuration)) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validator.NewValidator()

	cfg := config.GetDefaultConfig()
	cfg.Reports.Timezone = "UTC"
	if mutate != nil {
		mutate(cfg)
	}
	log := logger.NewNopLogger()

	invoices := testutil.NewInMemoryInvoiceStore()
	settingsStore := testutil.NewInMemorySettingsStore()
	params := service.NewServiceParams(
		log,
		cfg,
		cache.NewInMemoryCache(cfg, log),
		sentry.NewSentryService(cfg, log),
		nil,
		invoices,
		settingsStore,
	)

	settingsService := service.NewSettingsService(params)
	renderer := pdf.NewRenderer(cfg, settingsService, nil, log)

	router := NewRouter(Handlers{
		Health:   v1.NewHealthHandler(log),
		Report:   v1.NewReportHandler(service.NewReportService(params), cfg, log),
		Invoice:  v1.NewInvoiceHandler(service.NewDocumentService(params, renderer), log),
		Settings: v1.NewSettingsHandler(settingsService, log),
	}, cfg, log)

	ctx := testutil.SetupContext()
	require.NoError(t, invoices.Create(ctx, testutil.NewInvoice("2025-001").
		IssuedOn(testutil.Date(2025, time.February, 10)).
		DueOn(testutil.Date(2025, time.March, 12)).
		WithTotals("790", "210").
		WithLineItem("Consultancy", "10", "79", "16.59").
		Build()))
	require.NoError(t, invoices.Create(ctx, testutil.NewInvoice("2025-002").
		IssuedOn(testutil.Date(2025, time.April, 1)).
		WithStatus(types.InvoiceStatusPaid).
		WithTotals("500", "105").
		WithPaid("605").
		Build()))

	return &testServer{router: router, invoices: invoices, settings: settingsStore}
}

func (s *testServer) do(method, target string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(types.HeaderRequestID))
}

func TestRequestIDIsPropagated(t *testing.T) {
	s := newTestServer(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(types.HeaderRequestID, "req_fixed")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, "req_fixed", w.Header().Get(types.HeaderRequestID))
}

func TestTaxReportEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/v1/reports/tax?year=2025&quarter=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.TaxReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.InvoiceCount)
	assert.Equal(t, "€ 210,00", resp.TotalTaxDisplay)
	assert.Equal(t, "€ 1.000,00", resp.TotalRevenueDisplay)
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, "Verstuurd", resp.Invoices[0].StatusDisplay.Label)
}

func TestTaxReportEndpointValidation(t *testing.T) {
	s := newTestServer(t, nil)
	for _, target := range []string{
		"/v1/reports/tax?year=2025&quarter=5",
		"/v1/reports/tax?year=2025",
		"/v1/reports/tax?year=abc&quarter=1",
	} {
		w := s.do(http.MethodGet, target, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, target)

		var resp ierr.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.NotEmpty(t, resp.Error.Display)
	}
}

func TestRevenueEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/v1/reports/revenue?year=2025", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.RevenueReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Months, 12)
	assert.Equal(t, "februari", resp.Months[1].Label)
	assert.Equal(t, 2, resp.InvoiceCount)
}

func TestAgingEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/v1/reports/aging?as_of=2025-04-26", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.AgingReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bands, 5)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 1, resp.Bands[2].Count, "due 12 March is 45 days overdue on 26 April")

	w = s.do(http.MethodGet, "/v1/reports/aging?as_of=26-04-2025", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDashboardEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/v1/reports/dashboard?year=2025&quarter=2&as_of=2025-04-26", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.DashboardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Tax.InvoiceCount)
	assert.Equal(t, 1, resp.Tax.PaidCount)
	assert.Len(t, resp.Revenue.Months, 12)
	assert.Equal(t, 1, resp.Aging.Count)
}

func TestCSVExportEndpoint(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodGet, "/v1/reports/tax/csv?year=2025&quarter=1", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, service.ExportContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "btw-2025-q1.csv")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "factuurnummer", records[0][0])
	assert.Equal(t, "2025-001", records[1][0])

	w = s.do(http.MethodGet, "/v1/reports/ledger/csv", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/reports/aging-band/csv?band=120", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/reports/aging-band/csv?band=31-60&as_of=2025-04-26", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ouderdom-31-60-2025-04-26.csv")
}

func TestCSVExportOver90Band(t *testing.T) {
	s := newTestServer(t, nil)

	// due 2025-03-12, 111 days overdue at the end of 2025-07-01
	w := s.do(http.MethodGet, "/v1/reports/aging-band/csv?band=90-plus&as_of=2025-07-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "ouderdom-90-plus-2025-07-01.csv")
	assert.NotContains(t, disposition, "+")

	records, err := csv.NewReader(strings.NewReader(w.Body.String())).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "2025-001", records[1][0])

	w = s.do(http.MethodGet, "/v1/reports/aging-band/csv?band=120", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "+")
}

func TestInvoicePDFEndpoint(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/v1/invoices/inv_2025-001/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, pdf.ContentType, w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "factuur-2025-001.pdf")

	w = s.do(http.MethodGet, "/v1/invoices/inv_2025-001/pdf?format=base64", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.InvoicePDFResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "inv_2025-001", resp.InvoiceID)
	assert.True(t, strings.HasPrefix(resp.DataURI, "data:application/pdf;base64,"))
	assert.True(t, strings.HasSuffix(resp.DataURI, resp.Base64))

	w = s.do(http.MethodGet, "/v1/invoices/inv_missing/pdf", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/v1/invoices/inv_2025-001/pdf?format=png", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestInvoiceArchiveDisabled(t *testing.T) {
	s := newTestServer(t, nil)
	w := s.do(http.MethodPost, "/v1/invoices/inv_2025-001/archive", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/v1/invoices/inv_2025-001/pdf?url=true", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentRateLimit(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Configuration) {
		cfg.RateLimit.DocumentsPerSecond = 0.001
		cfg.RateLimit.Burst = 1
	})

	first := s.do(http.MethodGet, "/v1/invoices/inv_2025-001/pdf", nil)
	assert.Equal(t, http.StatusOK, first.Code)

	second := s.do(http.MethodGet, "/v1/invoices/inv_2025-001/pdf", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	reports := s.do(http.MethodGet, "/v1/reports/revenue?year=2025", nil)
	assert.Equal(t, http.StatusOK, reports.Code, "report routes are not limited")
}

func TestCompanySettingsEndpoints(t *testing.T) {
	s := newTestServer(t, nil)

	w := s.do(http.MethodGet, "/v1/settings/company", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CompanySettingsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "FactuurDesk", resp.DisplayName)

	body, err := json.Marshal(map[string]any{
		"legal_name":  "Bakkerij De Vries B.V.",
		"trade_name":  "Bakkerij De Vries",
		"email":       "info@devries.nl",
		"brand_color": "#AA3300",
	})
	require.NoError(t, err)
	w = s.do(http.MethodPut, "/v1/settings/company", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Bakkerij De Vries", resp.DisplayName)
	assert.Equal(t, 30, resp.PaymentTermDays)

	w = s.do(http.MethodGet, "/v1/settings/company", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "info@devries.nl", resp.Email)

	w = s.do(http.MethodPut, "/v1/settings/company", []byte(`{"trade_name":"no legal name"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
