package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "HTTP requests processed, by method, route and status.",
	}, []string{"method", "route", "status"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	dbQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "db_query_duration_seconds",
		Help:    "Database query latency, by operation and table.",
		Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"operation", "table"})

	favoriteToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "favorite_toggles_total",
		Help: "Favorite toggles, by resulting action.",
	}, []string{"action"})

	couponRedemptions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "coupon_redemptions_total",
		Help: "Coupon redemption attempts, by result.",
	}, []string{"result"})

	accessCodeEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "access_code_events_total",
		Help: "Access code lifecycle events.",
	}, []string{"event"})

	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auth_attempts_total",
		Help: "Register and login attempts, by outcome.",
	}, []string{"operation", "outcome"})

	catalogCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "catalog_cache_lookups_total",
		Help: "Lesson catalog cache lookups, hit or miss.",
	}, []string{"result"})
)

// Middleware records request counts and latency. Routes are labelled by their
// registered pattern so path parameters do not explode cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// RecordDBQuery observes one database round trip.
func RecordDBQuery(operation, table string, elapsed time.Duration) {
	dbQueryDuration.WithLabelValues(operation, table).Observe(elapsed.Seconds())
}

// RecordFavoriteToggle counts a favorite toggle by action ("added" or "removed").
func RecordFavoriteToggle(action string) {
	favoriteToggles.WithLabelValues(action).Inc()
}

// RecordCouponRedemption counts a redemption attempt by result.
func RecordCouponRedemption(result string) {
	couponRedemptions.WithLabelValues(result).Inc()
}

// RecordAccessCodeEvent counts generated, validated, redeemed and rejected codes.
func RecordAccessCodeEvent(event string) {
	accessCodeEvents.WithLabelValues(event).Inc()
}

// RecordAuthAttempt counts register/login outcomes.
func RecordAuthAttempt(operation, outcome string) {
	authAttempts.WithLabelValues(operation, outcome).Inc()
}

// RecordCatalogCache counts a catalog cache lookup.
func RecordCatalogCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	catalogCacheLookups.WithLabelValues(result).Inc()
}
