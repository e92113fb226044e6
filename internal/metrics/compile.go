package metrics

import "github.com/prometheus/client_golang/prometheus"

// Compilation Prometheus metrics.
var (
	CompilationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldmodel",
			Name:      "compilations_total",
			Help:      "Total number of field model compilations",
		},
		[]string{"status"}, // "ok" / "error"
	)

	CompileErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldmodel",
			Name:      "compile_errors_total",
			Help:      "Rejected field specification lists by error kind",
		},
		[]string{"kind"},
	)

	CompiledFields = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fieldmodel",
			Name:      "compiled_fields",
			Help:      "Total descriptors per compiled field model",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		},
	)

	CompileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fieldmodel",
			Name:      "compile_duration_seconds",
			Help:      "Field model compilation duration in seconds",
			Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
		},
	)
)

var compileMetricsRegistered bool

// RegisterCompileMetrics registers Prometheus compilation metrics. Must be called once from main.
func RegisterCompileMetrics() {
	if compileMetricsRegistered {
		return
	}
	prometheus.MustRegister(CompilationsTotal)
	prometheus.MustRegister(CompileErrorsTotal)
	prometheus.MustRegister(CompiledFields)
	prometheus.MustRegister(CompileDuration)
	compileMetricsRegistered = true
}
