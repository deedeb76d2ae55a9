// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rollcall_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_logins_total",
		Help: "Login attempts by result.",
	}, []string{"result"})

	// AttendanceUpserts counts ledger writes; outcome is inserted or updated.
	AttendanceUpserts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_attendance_upserts_total",
		Help: "Attendance records written by outcome.",
	}, []string{"outcome"})

	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rollcall_cache_lookups_total",
		Help: "Attendance cache lookups by result.",
	}, []string{"kind", "result"})
)
