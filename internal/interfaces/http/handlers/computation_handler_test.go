package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jurisdesk/prazo-engine/internal/application/computation"
	"github.com/jurisdesk/prazo-engine/internal/domain/calendar"
	"github.com/jurisdesk/prazo-engine/internal/domain/catalog"
	"github.com/jurisdesk/prazo-engine/internal/domain/engine"
	"github.com/jurisdesk/prazo-engine/internal/infrastructure/monitoring/logging"
	apperrors "github.com/jurisdesk/prazo-engine/pkg/errors"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) Compute(ctx context.Context, req *computation.ComputeRequest) (*computation.ComputeResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*computation.ComputeResponse), args.Error(1)
}

func (m *mockService) GetCalendar(ctx context.Context, tribunalCode string, year int) (*calendar.CourtCalendar, error) {
	args := m.Called(ctx, tribunalCode, year)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*calendar.CourtCalendar), args.Error(1)
}

func (m *mockService) SaveCalendar(ctx context.Context, cal *calendar.CourtCalendar) error {
	return m.Called(ctx, cal).Error(0)
}

func (m *mockService) ListCatalog(ctx context.Context) ([]*catalog.Entry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Entry), args.Error(1)
}

func (m *mockService) GetCatalogEntry(ctx context.Context, code string) (*catalog.Entry, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Entry), args.Error(1)
}

func (m *mockService) ListServiceMethods() []engine.MethodRule {
	args := m.Called()
	return args.Get(0).([]engine.MethodRule)
}

func newTestRouter(svc computation.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewComputationHandler(svc, logging.NewNopLogger())
	r := gin.New()
	api := r.Group("/api/v1")
	api.POST("/computations", h.Compute)
	api.GET("/calendars/:tribunal/:year", h.GetCalendar)
	api.PUT("/calendars", h.SaveCalendar)
	api.GET("/catalog", h.ListCatalog)
	api.GET("/catalog/:code", h.GetCatalogEntry)
	api.GET("/service-methods", h.ListServiceMethods)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestComputeEndpoint(t *testing.T) {
	svc := new(mockService)
	due := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	resp := &computation.ComputeResponse{
		ComputationID: "abc",
		TribunalCode:  "TJSP",
		CatalogCode:   "CONTESTACAO",
		DueDate:       &due,
		EffectiveDays: 30,
		CountingMode:  "business_days",
	}
	svc.On("Compute", mock.Anything, mock.AnythingOfType("*computation.ComputeRequest")).Return(resp, nil)

	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/v1/computations", computation.ComputeRequest{
		CatalogCode:   "CONTESTACAO",
		TriggerDate:   "2025-12-01",
		ServiceMethod: "postal_ack",
		TribunalCode:  "TJSP",
	})

	require.Equal(t, http.StatusOK, w.Code)
	var got computation.ComputeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "abc", got.ComputationID)
	assert.Equal(t, 30, got.EffectiveDays)
	svc.AssertExpectations(t)
}

func TestComputeEndpointMalformedBody(t *testing.T) {
	svc := new(mockService)
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/computations", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Compute")
}

func TestComputeEndpointValidationError(t *testing.T) {
	svc := new(mockService)
	svc.On("Compute", mock.Anything, mock.Anything).
		Return(nil, apperrors.New(apperrors.ErrCodeInvalidServiceMethod, "unknown service method"))

	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/v1/computations", computation.ComputeRequest{
		CatalogCode:   "CONTESTACAO",
		TriggerDate:   "2025-12-01",
		ServiceMethod: "carrier_pigeon",
		TribunalCode:  "TJSP",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apperrors.ErrCodeInvalidServiceMethod), body.Code)
}

func TestComputeEndpointMasksInternalErrors(t *testing.T) {
	svc := new(mockService)
	svc.On("Compute", mock.Anything, mock.Anything).
		Return(nil, apperrors.New(apperrors.ErrCodeDatabaseError, "pq: connection refused"))

	w := doJSON(t, newTestRouter(svc), http.MethodPost, "/api/v1/computations", computation.ComputeRequest{
		CatalogCode:   "CONTESTACAO",
		TriggerDate:   "2025-12-01",
		ServiceMethod: "postal_ack",
		TribunalCode:  "TJSP",
	})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "internal server error", body.Message)
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestGetCalendarEndpoint(t *testing.T) {
	svc := new(mockService)
	svc.On("GetCalendar", mock.Anything, "TJSP", 2025).
		Return(&calendar.CourtCalendar{TribunalCode: "TJSP", Year: 2025}, nil)

	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/v1/calendars/TJSP/2025", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var cal calendar.CourtCalendar
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cal))
	assert.Equal(t, "TJSP", cal.TribunalCode)
}

func TestGetCalendarEndpointBadYear(t *testing.T) {
	svc := new(mockService)
	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/v1/calendars/TJSP/not-a-year", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "GetCalendar")
}

func TestGetCalendarEndpointNotFound(t *testing.T) {
	svc := new(mockService)
	svc.On("GetCalendar", mock.Anything, "TJXX", 2025).
		Return(nil, apperrors.New(apperrors.ErrCodeCalendarNotFound, "calendar not found"))

	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/v1/calendars/TJXX/2025", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaveCalendarEndpoint(t *testing.T) {
	svc := new(mockService)
	svc.On("SaveCalendar", mock.Anything, mock.AnythingOfType("*calendar.CourtCalendar")).Return(nil)

	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/v1/calendars", calendar.CourtCalendar{
		TribunalCode: "TJSP",
		Category:     calendar.CategoryStateCourt,
		Year:         2026,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	svc.AssertExpectations(t)
}

func TestSaveCalendarEndpointInvalid(t *testing.T) {
	svc := new(mockService)
	svc.On("SaveCalendar", mock.Anything, mock.Anything).
		Return(apperrors.New(apperrors.ErrCodeCalendarInvalid, "tribunal_code is required"))

	w := doJSON(t, newTestRouter(svc), http.MethodPut, "/api/v1/calendars", calendar.CourtCalendar{Year: 2026})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, string(apperrors.ErrCodeCalendarInvalid), body.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	svc := new(mockService)
	entries := catalog.SeedEntries()
	svc.On("ListCatalog", mock.Anything).Return(entries, nil)
	svc.On("GetCatalogEntry", mock.Anything, "CONTESTACAO").Return(entries[0], nil)


	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/v1/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, len(entries), list.Total)

	w = doJSON(t, newTestRouter(svc), http.MethodGet, "/api/v1/catalog/CONTESTACAO", nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestServiceMethodsEndpoint(t *testing.T) {
	svc := new(mockService)
	svc.On("ListServiceMethods").Return(engine.ServiceMethods())

	w := doJSON(t, newTestRouter(svc), http.MethodGet, "/api/v1/service-methods", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Total   int                 `json:"total"`
		Methods []engine.MethodRule `json:"methods"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 12, body.Total)
}
