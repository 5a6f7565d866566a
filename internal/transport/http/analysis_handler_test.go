package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ogacli/internal/analytics"
	"ogacli/internal/errors"
	"ogacli/internal/pipeline"
	"ogacli/internal/services"
	"ogacli/pkg/contracts/domain"
)

// fakeService serves a fixed canonical table.
type fakeService struct {
	table  domain.Table
	result *pipeline.Result
	empty  bool
}

func (f *fakeService) Analyzer() (*analytics.Analyzer, error) {
	if f.empty {
		return nil, errors.NewNotFoundError("canonical table")
	}
	return analytics.New(f.table, nil), nil
}

func (f *fakeService) Result() (*pipeline.Result, error) {
	if f.empty {
		return nil, errors.NewNotFoundError("canonical table")
	}
	return f.result, nil
}

func (f *fakeService) Status() services.Status {
	if f.empty {
		return services.Status{}
	}
	return services.Status{Loaded: len(f.table), Ready: true, LoadedAt: time.Now()}
}

func testTable() domain.Table {
	return domain.Table{
		{ID: 1, Sex: "F", Year: 2016, Games: "2016 Summer", Season: "Summer",
			Sport: "Swimming", Event: "100m", Medal: "Gold", NOC: "SWE", Region: "Sweden"},
		{ID: 2, Sex: "M", Year: 2016, Games: "2016 Summer", Season: "Summer",
			Sport: "Swimming", Event: "200m", Medal: "None", NOC: "NOR", Region: "Norway"},
	}
}

func newTestRouter(svc AnalysisServiceInterface) chi.Router {
	r := chi.NewRouter()
	r.Mount("/api/analysis", NewAnalysisHandler(svc, nil).Routes())
	r.Mount("/api/health", NewHealthHandler(svc, nil).Routes())
	return r
}

func doRequest(t *testing.T, router chi.Router, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestGetGenderCounts(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	rec := doRequest(t, router, "/api/analysis/gender?season=Summer")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                     `json:"success"`
		Count   int                      `json:"count"`
		Data    []analytics.GenderCounts `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Equal(t, 1, body.Count)
	assert.Equal(t, analytics.GenderCounts{Year: 2016, Men: 1, Women: 1, RatioMale: 0.5}, body.Data[0])
}

func TestGetGenderCounts_InvalidSeason(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	rec := doRequest(t, router, "/api/analysis/gender?season=Spring")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body struct {
		Success bool `json:"success"`
		Error   struct {
			ErrorCode string `json:"error_code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.ErrorCode)
}

func TestGetMedalTable(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	rec := doRequest(t, router, "/api/analysis/medals/table")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []analytics.MedalTableEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 2)
	assert.Equal(t, "Sweden", body.Data[0].Region)
}

func TestGetSportBalance_RequiresYears(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	rec := doRequest(t, router, "/api/analysis/sports/balance")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, "/api/analysis/sports/balance?years=2012,2016")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []analytics.SportBalance `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Swimming", body.Data[0].Sport)
}

func TestGetMedalsBySport_RequiresYear(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	rec := doRequest(t, router, "/api/analysis/medals/sports")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, "/api/analysis/medals/sports?year=2016&season=Summer")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetDistribution_UnknownMetric(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	rec := doRequest(t, router, "/api/analysis/distribution/shoe-size")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetSummary_NotLoaded(t *testing.T) {
	router := newTestRouter(&fakeService{empty: true})

	rec := doRequest(t, router, "/api/analysis/summary")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var body struct {
		Error struct {
			ErrorCode string `json:"error_code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "NOT_FOUND", body.Error.ErrorCode)
}

func TestGetSummary(t *testing.T) {
	svc := &fakeService{
		table: testTable(),
		result: &pipeline.Result{
			Canonical: testTable(),
			Stages: []pipeline.StageCount{
				{Stage: "load", RowsIn: 2, RowsOut: 2},
			},
			Discontinued: map[string]int{"Tug-Of-War": 1920},
			DroppedByNOC: map[string]int{},
		},
	}
	router := newTestRouter(svc)

	rec := doRequest(t, router, "/api/analysis/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count int `json:"count"`
		Data  struct {
			Stages       []pipeline.StageCount `json:"stages"`
			Discontinued map[string]int        `json:"discontinued_sports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	require.Len(t, body.Data.Stages, 1)
	assert.Equal(t, 1920, body.Data.Discontinued["Tug-Of-War"])
}

func TestHealthEndpoints(t *testing.T) {
	router := newTestRouter(&fakeService{table: testTable()})

	assert.Equal(t, http.StatusOK, doRequest(t, router, "/api/health").Code)
	assert.Equal(t, http.StatusOK, doRequest(t, router, "/api/health/live").Code)
	assert.Equal(t, http.StatusOK, doRequest(t, router, "/api/health/ready").Code)

	rec := doRequest(t, router, "/api/health/version")
	require.Equal(t, http.StatusOK, rec.Code)
	var version struct {
		Version string `json:"version"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &version))
	assert.NotEmpty(t, version.Version)
}

func TestReadiness_NotLoaded(t *testing.T) {
	router := newTestRouter(&fakeService{empty: true})
	assert.Equal(t, http.StatusServiceUnavailable, doRequest(t, router, "/api/health/ready").Code)
}
