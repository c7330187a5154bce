package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	chartRenders = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energydash",
		Subsystem: "charts",
		Name:      "renders_total",
		Help:      "Chart files written, by chart kind.",
	}, []string{"kind"})

	chartFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energydash",
		Subsystem: "charts",
		Name:      "render_failures_total",
		Help:      "Chart renders that failed, by chart kind.",
	}, []string{"kind"})

	reportDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "energydash",
		Subsystem: "dashboard",
		Name:      "report_duration_seconds",
		Help:      "Time to compute statistics and regenerate charts for one household.",
		Buckets:   prometheus.DefBuckets,
	})

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "energydash",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method and status code.",
	}, []string{"method", "status"})
)

func init() {
	prometheus.MustRegister(chartRenders, chartFailures, reportDuration, httpRequests)
}

// RecordChartRender counts a chart file written successfully.
func RecordChartRender(kind string) {
	chartRenders.WithLabelValues(kind).Inc()
}

// RecordChartFailure counts a chart that could not be rendered or written.
func RecordChartFailure(kind string) {
	chartFailures.WithLabelValues(kind).Inc()
}

// ObserveReport records how long a dashboard report took to build.
func ObserveReport(d time.Duration) {
	reportDuration.Observe(d.Seconds())
}

// RecordRequest counts a served HTTP request.
func RecordRequest(method string, status int) {
	httpRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
}
