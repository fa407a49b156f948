// Package services provides the domain facades over the Masa API
// used by the MCP tools.
package services

import (
	"context"
	"fmt"

	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/masamcp", "services")

// Service names
const (
	TwitterServiceName   = "TwitterService"
	WebServiceName       = "WebService"
	AnalyticsServiceName = "AnalyticsService"
)

// Service is implemented by all services
type Service interface {
	ServiceName() string
}

// Twitter provides Twitter search
type Twitter interface {
	Service
	SearchTweets(ctx context.Context, query string, maxResults int) (*masaapi.LiveTwitterSearchJob, error)
	GetSearchStatus(ctx context.Context, jobID string) (*masaapi.LiveTwitterSearchJobStatus, error)
	GetSearchResults(ctx context.Context, jobID string) (*masaapi.LiveTwitterSearchResultsPage, error)
	SearchWithSimilarity(ctx context.Context, query string, keywords []string, maxResults int) (*masaapi.SimilaritySearchResult, error)
}

// Web provides web scraping and search terms extraction
type Web interface {
	Service
	ScrapeWebsite(ctx context.Context, url string, opts *masaapi.WebScrapeOptions) (*masaapi.WebScrapeResult, error)
	ExtractSearchTerms(ctx context.Context, userInput string) (*masaapi.SearchTermExtractionResult, error)
}

// Analytics provides AI analysis of tweets
type Analytics interface {
	Service
	AnalyzeData(ctx context.Context, tweets []string, prompt string) (*masaapi.DataAnalysisResult, error)
}

type base struct {
	name string
	api  masaapi.API
}

// ServiceName returns the name of the service
func (s *base) ServiceName() string {
	return s.name
}

func (s *base) log(ctx context.Context, level xlog.LogLevel, format string, args ...any) {
	logger.ContextKV(ctx, level,
		"service", s.name,
		"msg", fmt.Sprintf("[%s] %s", s.name, fmt.Sprintf(format, args...)),
	)
}

// truncate returns up to n runes of s, with "..." if truncated
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
