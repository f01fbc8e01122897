package metrics

import (
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CommandRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_command_runs_total",
		Help: "Total CLI command invocations",
	}, []string{"command"})
	CommandErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_command_errors_total",
		Help: "Total CLI command failures",
	}, []string{"command"})
	OptimizeRuns = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_optimize_runs_total",
		Help: "Total optimization runs by kind",
	}, []string{"kind"})
	LLMRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amplify_llm_requests_total",
		Help: "Total LLM completion requests",
	})
	LLMErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "amplify_llm_errors_total",
		Help: "Total LLM completion failures",
	})
	LLMDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "amplify_llm_duration_seconds",
		Help:    "LLM completion duration seconds",
		Buckets: prometheus.DefBuckets,
	})
	ProfileFetches = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_profile_fetches_total",
		Help: "Total profile builds by source (cache, api, manual)",
	}, []string{"source"})
	APIRetries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "amplify_api_retries_total",
		Help: "Total X API retry attempts",
	}, []string{"endpoint"})
)

func init() {
	prometheus.MustRegister(CommandRuns, CommandErrors, OptimizeRuns,
		LLMRequests, LLMErrors, LLMDuration, ProfileFetches, APIRetries)
}

// StartServer starts a metrics HTTP server on addr (e.g., ":9090").
func StartServer(addr string) {
	if addr == "" {
		addr = os.Getenv("METRICS_ADDR")
	}
	if addr == "" {
		return
	}
	http.Handle("/metrics", promhttp.Handler())
	http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	go func() { _ = http.ListenAndServe(addr, nil) }()
}

func IncCommandRun(cmd string)   { CommandRuns.WithLabelValues(cmd).Inc() }
func IncCommandError(cmd string) { CommandErrors.WithLabelValues(cmd).Inc() }

func IncOptimizeRun(kind string) { OptimizeRuns.WithLabelValues(kind).Inc() }

func IncLLMRequest() { LLMRequests.Inc() }
func IncLLMError()   { LLMErrors.Inc() }

// ObserveLLMDuration records a completion duration.
func ObserveLLMDuration(start time.Time) {
	LLMDuration.Observe(time.Since(start).Seconds())
}

// IncProfileFetch records where a profile came from.
func IncProfileFetch(source string) { ProfileFetches.WithLabelValues(source).Inc() }

// IncAPIRetry increments the retry counter for an endpoint.
func IncAPIRetry(endpoint string) { APIRetries.WithLabelValues(endpoint).Inc() }
