package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/dealyield/internal/domain/models"
	"github.com/mamadbah2/dealyield/internal/engine"
	"github.com/mamadbah2/dealyield/internal/server/middleware"
	"github.com/mamadbah2/dealyield/internal/service/analysis"
)

type fakeService struct {
	err       error
	session   models.Session
	request   models.AnalysisRequest
	limit     int
	id        string
	records   []models.AnalysisRecord
	previewed bool
}

func (f *fakeService) Analyze(_ context.Context, session models.Session, req models.AnalysisRequest) (models.AnalysisRecord, error) {
	f.session, f.request = session, req
	if f.err != nil {
		return models.AnalysisRecord{}, f.err
	}
	return models.AnalysisRecord{ID: "a-1", TenantID: session.CompanyID, Result: models.AnalysisResult{NOI: 11400}}, nil
}

func (f *fakeService) Preview(_ context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	f.request, f.previewed = req, true
	if f.err != nil {
		return models.AnalysisResult{}, f.err
	}
	return models.AnalysisResult{NOI: 11400}, nil
}

func (f *fakeService) List(_ context.Context, session models.Session, limit int) ([]models.AnalysisRecord, error) {
	f.session, f.limit = session, limit
	return f.records, f.err
}

func (f *fakeService) Get(_ context.Context, session models.Session, id string) (models.AnalysisRecord, error) {
	f.session, f.id = session, id
	if f.err != nil {
		return models.AnalysisRecord{}, f.err
	}
	return models.AnalysisRecord{ID: id, TenantID: session.CompanyID}, nil
}

func (f *fakeService) Delete(_ context.Context, session models.Session, id string) error {
	f.session, f.id = session, id
	return f.err
}

var caller = models.Session{UserID: "u-1", CompanyID: "c-1"}

func newTestEngine(svc AnalysisService, withSession bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewAnalysisHandler(svc, nil)

	r := gin.New()
	if withSession {
		r.Use(func(c *gin.Context) {
			middleware.SetSession(c, caller)
			c.Next()
		})
	}
	r.POST("/analyses", h.Create)
	r.POST("/analyses/preview", h.Preview)
	r.GET("/analyses", h.List)
	r.GET("/analyses/:id", h.Get)
	r.DELETE("/analyses/:id", h.Delete)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

const dealBody = `{"deal":{"name":"Calle Mayor 12","asking_price":200000,"contingency_capex":0,"rent_roll":[{"reference":"1A","monthly_rent":1000}]},
 "sensitivity":{"metric":"net_yield","rows":{"parameter":"asking_price","mode":"relative","steps":[-10,0,10]},"columns":{"parameter":"monthly_rent","mode":"relative","steps":[0]}}}`

func TestCreate(t *testing.T) {
	svc := &fakeService{}

	rec := do(newTestEngine(svc, true), http.MethodPost, "/analyses", dealBody)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, caller, svc.session)
	assert.Equal(t, 200000.0, svc.request.Deal.AskingPrice)
	require.NotNil(t, svc.request.Deal.ContingencyCapex)
	assert.Zero(t, *svc.request.Deal.ContingencyCapex)
	assert.Nil(t, svc.request.Deal.VacancyAllowancePct)
	require.NotNil(t, svc.request.Sensitivity)
	assert.Equal(t, []float64{-10, 0, 10}, svc.request.Sensitivity.Rows.Steps)

	var body models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a-1", body.ID)
	assert.Equal(t, "c-1", body.TenantID)
}

func TestCreate_MalformedBody(t *testing.T) {
	rec := do(newTestEngine(&fakeService{}, true), http.MethodPost, "/analyses", `{"deal":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"invalid request body"}`, rec.Body.String())
}

func TestCreate_ValidationFailure(t *testing.T) {
	svc := &fakeService{err: &engine.ValidationError{Fields: []engine.FieldError{
		{Field: "asking_price", Message: "must be > 0"},
		{Field: "rent_roll", Message: "must contain at least one unit"},
	}}}

	rec := do(newTestEngine(svc, true), http.MethodPost, "/analyses", dealBody)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.JSONEq(t, `{"error":"validation failed","fields":[
		{"field":"asking_price","message":"must be > 0"},
		{"field":"rent_roll","message":"must contain at least one unit"}]}`, rec.Body.String())
}

func TestCreate_StorageFailure(t *testing.T) {
	svc := &fakeService{err: errors.New("save analysis: connection reset")}

	rec := do(newTestEngine(svc, true), http.MethodPost, "/analyses", dealBody)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())
}

func TestCreate_WithoutSession(t *testing.T) {
	rec := do(newTestEngine(&fakeService{}, false), http.MethodPost, "/analyses", dealBody)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPreview(t *testing.T) {
	svc := &fakeService{}

	rec := do(newTestEngine(svc, true), http.MethodPost, "/analyses/preview", dealBody)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, svc.previewed)
	var body models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 11400.0, body.NOI)
}

func TestList(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		status int
		limit  int
	}{
		{"default limit", "", http.StatusOK, analysis.DefaultListLimit},
		{"explicit limit", "?limit=5", http.StatusOK, 5},
		{"max limit", "?limit=100", http.StatusOK, 100},
		{"zero", "?limit=0", http.StatusBadRequest, 0},
		{"too large", "?limit=101", http.StatusBadRequest, 0},
		{"not a number", "?limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{records: []models.AnalysisRecord{{ID: "a-1"}}}

			rec := do(newTestEngine(svc, true), http.MethodGet, "/analyses"+tt.query, "")

			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.limit, svc.limit)
			if tt.status == http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"analyses":[{"id":"a-1"`)
			}
		})
	}
}

func TestGet(t *testing.T) {
	svc := &fakeService{}

	rec := do(newTestEngine(svc, true), http.MethodGet, "/analyses/a-9", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "a-9", svc.id)
	assert.Equal(t, caller, svc.session)
}

func TestGet_NotFound(t *testing.T) {
	svc := &fakeService{err: analysis.ErrNotFound}

	rec := do(newTestEngine(svc, true), http.MethodGet, "/analyses/a-9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"analysis not found"}`, rec.Body.String())
}

func TestDelete(t *testing.T) {
	svc := &fakeService{}

	rec := do(newTestEngine(svc, true), http.MethodDelete, "/analyses/a-9", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "a-9", svc.id)
}

func TestDelete_NotFound(t *testing.T) {
	rec := do(newTestEngine(&fakeService{err: analysis.ErrNotFound}, true), http.MethodDelete, "/analyses/a-9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
