package metrics

import (
	"fmt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	HTTPRequestsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of handled HTTP requests.",
		},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
	ApplicationsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_applications_submitted_total",
			Help: "Total number of submitted job applications.",
		},
	)
	MediaUploadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobboard_media_upload_duration_seconds",
			Help:    "Duration of photo uploads to the media host in seconds.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
	)
	StagedFilesRemovedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_staged_files_removed_total",
			Help: "Total number of stale staged uploads removed by the cleaner.",
		},
	)
)

func StartMetricsServer(port int) {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(HTTPRequestsCounter)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(ApplicationsCounter)
	prometheus.MustRegister(MediaUploadDuration)
	prometheus.MustRegister(StagedFilesRemovedCounter)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(fmt.Sprintf(":%d", port), mux))
	}()
}
