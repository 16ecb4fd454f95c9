package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/lessons/:lessonId", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/lessons/:lessonId", "204"))

	for _, id := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/lessons/"+id, nil))
	}

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/lessons/:lessonId", "204"))
	assert.Equal(t, before+2, after)
}

func TestDomainCounters(t *testing.T) {
	before := testutil.ToFloat64(favoriteToggles.WithLabelValues("added"))
	RecordFavoriteToggle("added")
	assert.Equal(t, before+1, testutil.ToFloat64(favoriteToggles.WithLabelValues("added")))

	hits := testutil.ToFloat64(catalogCacheLookups.WithLabelValues("hit"))
	RecordCatalogCache(true)
	RecordCatalogCache(false)
	assert.Equal(t, hits+1, testutil.ToFloat64(catalogCacheLookups.WithLabelValues("hit")))

	RecordDBQuery("SELECT", "lessons", 3*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(dbQueryDuration, "db_query_duration_seconds"), 1)
}
