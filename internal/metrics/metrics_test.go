package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentHandler_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/api/habits/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/habits/{id}", "404"))

	for _, id := range []string{"a", "b", "c"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/habits/"+id, nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/habits/{id}", "404"))
	assert.Equal(t, 3.0, after-before)
}

func TestInstrumentHandler_UnmatchedPath(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/known", func(w http.ResponseWriter, r *http.Request) {})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope/123", nil))
	after := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "unmatched", "404"))
	assert.Equal(t, 1.0, after-before)
}

func TestRecordHabitRollover(t *testing.T) {
	okBefore := testutil.ToFloat64(habitRollovers.WithLabelValues("true"))
	failBefore := testutil.ToFloat64(habitRollovers.WithLabelValues("false"))
	rolledBefore := testutil.ToFloat64(habitsRolledOver)

	RecordHabitRollover(4, nil)
	RecordHabitRollover(0, errors.New("db down"))

	assert.Equal(t, 1.0, testutil.ToFloat64(habitRollovers.WithLabelValues("true"))-okBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(habitRollovers.WithLabelValues("false"))-failBefore)
	assert.Equal(t, 4.0, testutil.ToFloat64(habitsRolledOver)-rolledBefore)
}

func TestHandler_ExposesMetrics(t *testing.T) {
	SetTableRows("users", 7)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `cumpas_store_rows{table="users"} 7`)
}
