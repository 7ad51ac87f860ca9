package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"route-planner-service/internal/api/dto"
	"route-planner-service/internal/domain"
	"route-planner-service/internal/services"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubPlanner struct {
	got services.PlanRequest
	res *services.PlanResult
	err error
}

func (s *stubPlanner) Plan(_ context.Context, req services.PlanRequest) (*services.PlanResult, error) {
	s.got = req
	return s.res, s.err
}

type stubSource struct {
	ing *domain.Ingestion
	err error
}

func (s *stubSource) Parse(r io.Reader) (*domain.Ingestion, error) {
	if _, err := io.ReadAll(r); err != nil {
		return nil, err
	}
	return s.ing, s.err
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}

func TestRegions(t *testing.T) {
	rec := httptest.NewRecorder()
	Regions(rec, httptest.NewRequest(http.MethodGet, "/regions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var body dto.RegionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Regions, 2)
	assert.Equal(t, "ARNHEM", body.Regions[0].Key)
	assert.Equal(t, "UTRECHT", body.Regions[1].Key)
}

func TestOptimizeSingle(t *testing.T) {
	start, _ := domain.LookupRegion("ARNHEM")
	planner := &stubPlanner{res: &services.PlanResult{
		Mode: services.ModeSingle,
		Route: &domain.RouteResult{
			Stops:                []domain.AddressRecord{start.StartRecord()},
			TotalDistanceMeters:  1500,
			TotalDurationSeconds: 600,
		},
	}}
	h := &OptimizeHandler{Planner: planner, Logger: zaptest.NewLogger(t)}

	body := `{"startRegion":"ARNHEM","driver":"Piet","addresses":[{"branchId":"1","fullAddress":"Markt 1, Ede, Nederland","driver":"Piet","placementCount":2}]}`
	rec := httptest.NewRecorder()
	h.Optimize(rec, httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ARNHEM", planner.got.RegionKey)
	assert.Equal(t, "Piet", planner.got.Driver)
	require.Len(t, planner.got.Addresses, 1)
	assert.Equal(t, 2, planner.got.Addresses[0].PlacementCount)

	var res dto.RouteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "single", res.Mode)
	assert.Equal(t, 1500.0, res.TotalDistanceMeters)
	assert.Equal(t, "START", res.Stops[0].BranchID)
}

func TestOptimizeMultiDay(t *testing.T) {
	planner := &stubPlanner{res: &services.PlanResult{
		Mode: services.ModeMultiDay,
		Days: []domain.DayRouteResult{{VisitDay: "Dinsdag", Optimized: true}},
	}}
	h := &OptimizeHandler{Planner: planner}

	rec := httptest.NewRecorder()
	h.Optimize(rec, httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(`{"startRegion":"UTRECHT","addresses":[]}`)))
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.MultiDayResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "multi_day", res.Mode)
	require.Len(t, res.Days, 1)
	assert.Equal(t, "Dinsdag", res.Days[0].VisitDay)
}

func TestOptimizeErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		msg    string
		code   string
	}{
		{"bad json", `{`, nil, http.StatusBadRequest, "Ongeldige JSON", "INVALID_INPUT"},
		{"trailing data", `{}{}`, nil, http.StatusBadRequest, "Body mag slechts één JSON object bevatten", "INVALID_INPUT"},
		{"missing credentials", `{}`, domain.NewMissingCredentialsError(), http.StatusInternalServerError,
			"RouteXL inloggegevens ontbreken. Stel ROUTEXL_USERNAME en ROUTEXL_PASSWORD in.", "MISSING_CREDENTIALS"},
		{"auth", `{}`, domain.NewProviderAuthError(401, nil), http.StatusBadGateway, "RouteXL inloggegevens onjuist.", "PROVIDER_AUTH"},
		{"quota", `{}`, domain.NewProviderQuotaError(429, nil), http.StatusTooManyRequests, "RouteXL limiet bereikt (max 20 stops gratis).", "PROVIDER_QUOTA"},
		{"transport", `{}`, domain.NewProviderTransportError("Geen route ontvangen van RouteXL.", 200, nil), http.StatusBadGateway, "Geen route ontvangen van RouteXL.", "PROVIDER_TRANSPORT"},
		{"invalid region", `{}`, domain.NewInvalidInputError("Onbekende regio: X", nil), http.StatusBadRequest, "Onbekende regio: X", "INVALID_INPUT"},
		{"internal", `{}`, io.ErrUnexpectedEOF, http.StatusInternalServerError, "Interne server fout", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &OptimizeHandler{Planner: &stubPlanner{err: tt.err}, Logger: zaptest.NewLogger(t)}
			rec := httptest.NewRecorder()
			h.Optimize(rec, httptest.NewRequest(http.MethodPost, "/optimize", strings.NewReader(tt.body)))

			assert.Equal(t, tt.status, rec.Code)
			body := decodeError(t, rec)
			assert.Equal(t, tt.msg, body.Error)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadDeduplicates(t *testing.T) {
	a := domain.AddressRecord{FullAddress: "A", Driver: "Piet", PlacementCount: 1, VisitDay: "Maandag"}
	b := a
	b.PlacementCount = 2
	src := &stubSource{ing: &domain.Ingestion{Addresses: []domain.AddressRecord{a, b}, Drivers: []string{"Piet"}}}
	h := &UploadHandler{Source: src, Logger: zaptest.NewLogger(t)}

	body, ct := multipartBody(t, "file", "planning.XLSX", []byte("workbook"))
	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var res dto.UploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Addresses, 1)
	assert.Equal(t, 3, res.Addresses[0].PlacementCount)
	assert.True(t, res.HasDays)
	assert.Equal(t, []string{"Piet"}, res.Drivers)
}

func TestUploadRejects(t *testing.T) {
	src := &stubSource{err: domain.NewNoValidAddressesError("Geen geldige adressen gevonden in het bestand.")}

	t.Run("no file", func(t *testing.T) {
		h := &UploadHandler{Source: src}
		body, ct := multipartBody(t, "other", "planning.xlsx", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Geen bestand geüpload", decodeError(t, rec).Error)
	})

	t.Run("not multipart", func(t *testing.T) {
		h := &UploadHandler{Source: src}
		rec := httptest.NewRecorder()
		h.Upload(rec, httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader("x")))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wrong extension", func(t *testing.T) {
		h := &UploadHandler{Source: src}
		body, ct := multipartBody(t, "file", "planning.csv", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Alleen .xlsx bestanden worden geaccepteerd", decodeError(t, rec).Error)
	})

	t.Run("too large", func(t *testing.T) {
		h := &UploadHandler{Source: src, MaxBytes: 64}
		body, ct := multipartBody(t, "file", "planning.xlsx", bytes.Repeat([]byte("x"), 1024))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	})

	t.Run("no addresses", func(t *testing.T) {
		h := &UploadHandler{Source: src}
		body, ct := multipartBody(t, "file", "planning.xlsx", []byte("x"))
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		h.Upload(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Geen geldige adressen gevonden in het bestand.", decodeError(t, rec).Error)
	})
}

func TestCredentials(t *testing.T) {
	rec := httptest.NewRecorder()
	Credentials(true, false)(rec, httptest.NewRequest(http.MethodGet, "/debug/credentials", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var res dto.CredentialsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.True(t, res.UsernameSet)
	assert.False(t, res.PasswordSet)
}
