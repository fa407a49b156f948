package metricskey

import "github.com/effective-security/metrics"

// Stats
var (
	// StatsAPIRequests is base for counter metric for total requests sent to Masa API
	StatsAPIRequests = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_api_requests",
		Help:         "stats_api_requests provides total requests sent to Masa API",
		RequiredTags: []string{"method", "path"},
	}

	StatsAPIRequestsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_api_requests_failed",
		Help:         "stats_api_requests_failed provides total Masa API requests failed after all attempts",
		RequiredTags: []string{"method", "path"},
	}

	StatsAPIRequestsRetried = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_api_requests_retried",
		Help:         "stats_api_requests_retried provides total Masa API requests retried",
		RequiredTags: []string{"method", "path"},
	}

	StatsCacheHits = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_cache_hits",
		Help:         "stats_cache_hits provides total cache hits",
		RequiredTags: []string{"region"},
	}

	StatsCacheMisses = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_cache_misses",
		Help:         "stats_cache_misses provides total cache misses",
		RequiredTags: []string{"region"},
	}

	StatsCacheEvictions = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_cache_evictions",
		Help:         "stats_cache_evictions provides total entries evicted by size limit",
		RequiredTags: []string{"region"},
	}

	StatsToolCallsSucceeded = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_succeeded",
		Help:         "stats_tool_calls_succeeded provides total tool calls succeeded",
		RequiredTags: []string{"tool"},
	}

	StatsToolCallsFailed = metrics.Describe{
		Type:         metrics.TypeCounter,
		Name:         "stats_tool_calls_failed",
		Help:         "stats_tool_calls_failed provides total tool calls failed",
		RequiredTags: []string{"tool"},
	}
)

// Perf
var (
	PerfAPICall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_api_call",
		Help:         "perf_api_call provides duration of Masa API call, including retries",
		RequiredTags: []string{"method", "path"},
	}

	PerfToolCall = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_tool_call",
		Help:         "perf_tool_call provides duration of tool call",
		RequiredTags: []string{"tool"},
	}
)

// Metrics returns slice of metrics from this repo
// keep sorted by name
var Metrics = []*metrics.Describe{
	&PerfAPICall,
	&PerfToolCall,
	&StatsAPIRequests,
	&StatsAPIRequestsFailed,
	&StatsAPIRequestsRetried,
	&StatsCacheEvictions,
	&StatsCacheHits,
	&StatsCacheMisses,
	&StatsToolCallsFailed,
	&StatsToolCallsSucceeded,
}
