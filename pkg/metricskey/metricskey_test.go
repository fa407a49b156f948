package metricskey

import (
	"sort"
	"testing"

	"github.com/effective-security/metrics"
	"github.com/stretchr/testify/assert"
)

func TestMetricsDefinitions(t *testing.T) {
	allMetrics := []*metrics.Describe{
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

	for _, m := range allMetrics {
		assert.NotEmpty(t, m.Name, "Metric name should not be empty")
		assert.NotEmpty(t, m.Help, "Metric help text should not be empty")
		assert.NotEmpty(t, m.RequiredTags, "Metric should have required tags")
	}

	assert.Equal(t, len(allMetrics), len(Metrics), "Metrics slice should contain all defined metrics")

	isSorted := sort.SliceIsSorted(Metrics, func(i, j int) bool {
		return Metrics[i].Name < Metrics[j].Name
	})
	assert.True(t, isSorted, "Metrics slice should be sorted by name")

	seen := make(map[string]bool)
	for _, m := range Metrics {
		assert.False(t, seen[m.Name], "Metric name should be unique: %s", m.Name)
		seen[m.Name] = true
	}

	t.Run("API metrics have method and path tags", func(t *testing.T) {
		for _, m := range []*metrics.Describe{
			&PerfAPICall,
			&StatsAPIRequests,
			&StatsAPIRequestsFailed,
			&StatsAPIRequestsRetried,
		} {
			assert.Equal(t, []string{"method", "path"}, m.RequiredTags, m.Name)
		}
	})

	t.Run("Cache metrics have region tag", func(t *testing.T) {
		for _, m := range []*metrics.Describe{
			&StatsCacheHits,
			&StatsCacheMisses,
			&StatsCacheEvictions,
		} {
			assert.Contains(t, m.RequiredTags, "region", m.Name)
		}
	})

	t.Run("Tool metrics have tool tag", func(t *testing.T) {
		for _, m := range []*metrics.Describe{
			&PerfToolCall,
			&StatsToolCallsSucceeded,
			&StatsToolCallsFailed,
		} {
			assert.Contains(t, m.RequiredTags, "tool", m.Name)
		}
	})
}
