// Package masatools provides the MCP tools over the Masa API services.
package masatools

import (
	"context"

	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/masamcp/services"
	"github.com/effective-security/masamcp/tools"
)

// Tool names
const (
	StartLiveTwitterSearch      = "start_live_twitter_search"
	GetLiveTwitterSearchStatus  = "get_live_twitter_search_status"
	GetLiveTwitterSearchResults = "get_live_twitter_search_results"
	SearchWithSimilarity        = "search_with_similarity"
	ExtractSearchTerms          = "extract_search_terms"
	AnalyzeData                 = "analyze_data"
	ScrapeWebsite               = "scrape_website"
)

// StartSearchRequest is the input of start_live_twitter_search
type StartSearchRequest struct {
	Query      string `json:"query" yaml:"query" jsonschema:"required,description=The search query" validate:"required" fake:"{hipsterword}"`
	MaxResults int    `json:"maxResults" yaml:"maxResults" jsonschema:"required,description=Maximum number of results to return" validate:"gte=0" fake:"{number:1,100}"`
}

// JobRequest is the input of the search job tools
type JobRequest struct {
	JobID string `json:"jobId" yaml:"jobId" jsonschema:"required,description=The ID of the search job" validate:"required" fake:"{uuid}"`
}

// SimilarityRequest is the input of search_with_similarity
type SimilarityRequest struct {
	Query      string   `json:"query" yaml:"query" jsonschema:"required,description=The search query" validate:"required" fake:"{hipsterword}"`
	Keywords   []string `json:"keywords" yaml:"keywords" jsonschema:"required,description=Keywords to match against" fakesize:"2"`
	MaxResults int      `json:"maxResults" yaml:"maxResults" jsonschema:"required,description=Maximum number of results to return" validate:"gte=0" fake:"{number:1,100}"`
}

// ExtractRequest is the input of extract_search_terms
type ExtractRequest struct {
	UserInput string `json:"userInput" yaml:"userInput" jsonschema:"required,description=The user input to extract search terms from" validate:"required" fake:"{question}"`
}

// AnalyzeRequest is the input of analyze_data
type AnalyzeRequest struct {
	Tweets []string `json:"tweets" yaml:"tweets" jsonschema:"required,description=The tweets to analyze (array of strings)" fakesize:"3"`
	Prompt string   `json:"prompt" yaml:"prompt" jsonschema:"required,description=The analysis prompt" validate:"required" fake:"{question}"`
}

// ScrapeRequest is the input of scrape_website
type ScrapeRequest struct {
	URL    string                  `json:"url" yaml:"url" jsonschema:"required,description=The url to scrape" validate:"required,url" fake:"{url}"`
	Format masaapi.WebScrapeFormat `json:"format,omitempty" yaml:"format,omitempty" jsonschema:"description=The format to parse the content into,enum=html,enum=markdown,enum=text" validate:"omitempty,oneof=html markdown text" fake:"{randomstring:[html,markdown,text]}"`
}

// New returns the Masa tools over the services
func New(f *services.Factory) []tools.IMCPTool {
	return []tools.IMCPTool{
		tools.NewFunc(StartLiveTwitterSearch,
			"Initiates a new search on twitter for tweets matching a certain query.",
			func(ctx context.Context, req *StartSearchRequest) (*masaapi.LiveTwitterSearchJob, error) {
				return f.Twitter().SearchTweets(ctx, req.Query, req.MaxResults)
			}),
		tools.NewFunc(GetLiveTwitterSearchStatus,
			"Retrieves the current status of a live Twitter search job.",
			func(ctx context.Context, req *JobRequest) (*masaapi.LiveTwitterSearchJobStatus, error) {
				return f.Twitter().GetSearchStatus(ctx, req.JobID)
			}),
		tools.NewFunc(GetLiveTwitterSearchResults,
			"Retrieves the results of a live Twitter search job.",
			func(ctx context.Context, req *JobRequest) (*masaapi.LiveTwitterSearchResultsPage, error) {
				return f.Twitter().GetSearchResults(ctx, req.JobID)
			}),
		tools.NewFunc(SearchWithSimilarity,
			"Searches Twitter content with similarity matching against keywords.",
			func(ctx context.Context, req *SimilarityRequest) (*masaapi.SimilaritySearchResult, error) {
				return f.Twitter().SearchWithSimilarity(ctx, req.Query, req.Keywords, req.MaxResults)
			}),
		tools.NewFunc(ExtractSearchTerms,
			"Extracts optimized search terms from user input using AI.",
			func(ctx context.Context, req *ExtractRequest) (*masaapi.SearchTermExtractionResult, error) {
				return f.Web().ExtractSearchTerms(ctx, req.UserInput)
			}),
		tools.NewFunc(AnalyzeData,
			"Analyzes tweet data using AI based on a prompt.",
			func(ctx context.Context, req *AnalyzeRequest) (*masaapi.DataAnalysisResult, error) {
				return f.Analytics().AnalyzeData(ctx, req.Tweets, req.Prompt)
			}),
		tools.NewFunc(ScrapeWebsite,
			"Retrieve the contents from a web URL and parse them into the specified format.",
			func(ctx context.Context, req *ScrapeRequest) (*masaapi.WebScrapeResult, error) {
				var opts *masaapi.WebScrapeOptions
				if req.Format != "" {
					opts = &masaapi.WebScrapeOptions{Format: req.Format}
				}
				return f.Web().ScrapeWebsite(ctx, req.URL, opts)
			}),
	}
}
