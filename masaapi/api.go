package masaapi

import (
	"context"
	"net/http"

	"github.com/effective-security/masamcp/cache"
	"github.com/effective-security/xlog"
)

//go:generate mockgen -source=api.go -destination=../mocks/mockmasa/masa_mock.gen.go -package mockmasa

// Doer sends requests to the Masa API
type Doer interface {
	Do(ctx context.Context, req *Request, out any) error
}

// API provides the Masa API operations
type API interface {
	// StartLiveTwitterSearch starts a new live Twitter search job
	StartLiveTwitterSearch(ctx context.Context, query string, maxResults int) (*LiveTwitterSearchJob, error)
	// GetLiveTwitterSearchStatus returns the status of the search job
	GetLiveTwitterSearchStatus(ctx context.Context, jobID string) (*LiveTwitterSearchJobStatus, error)
	// GetLiveTwitterSearchResults returns the results of the search job
	GetLiveTwitterSearchResults(ctx context.Context, jobID string) (*LiveTwitterSearchResultsPage, error)
	// ScrapeWebsite returns the content of the web page
	ScrapeWebsite(ctx context.Context, url string, opts *WebScrapeOptions) (*WebScrapeResult, error)
	// ExtractSearchTerms returns the search term extracted from user input
	ExtractSearchTerms(ctx context.Context, userInput string) (*SearchTermExtractionResult, error)
	// AnalyzeData analyzes tweets according to the prompt
	AnalyzeData(ctx context.Context, tweets []string, prompt string) (*DataAnalysisResult, error)
	// SearchWithSimilarity searches Twitter content matching the keywords
	SearchWithSimilarity(ctx context.Context, query string, keywords []string, maxResults int) (*SimilaritySearchResult, error)
}

// Masa implements API with the results cached per region
type Masa struct {
	client Doer

	jobs       *cache.Region[LiveTwitterSearchJob]
	statuses   *cache.Region[LiveTwitterSearchJobStatus]
	results    *cache.Region[LiveTwitterSearchResultsPage]
	similarity *cache.Region[SimilaritySearchResult]
	scrape     *cache.Region[WebScrapeResult]
	extract    *cache.Region[SearchTermExtractionResult]
	analysis   *cache.Region[DataAnalysisResult]
}

var _ API = (*Masa)(nil)

// New returns API over the client and cache manager.
// regionOptions are applied when a region is created, may be nil.
func New(client Doer, m *cache.Manager, regionOptions map[string]*cache.Options) *Masa {
	opts := func(region string) *cache.Options {
		return regionOptions[region]
	}
	return &Masa{
		client:     client,
		jobs:       cache.NewRegion[LiveTwitterSearchJob](m, cache.RegionTwitter, opts(cache.RegionTwitter)),
		statuses:   cache.NewRegion[LiveTwitterSearchJobStatus](m, cache.RegionTwitter, opts(cache.RegionTwitter)),
		results:    cache.NewRegion[LiveTwitterSearchResultsPage](m, cache.RegionTwitter, opts(cache.RegionTwitter)),
		similarity: cache.NewRegion[SimilaritySearchResult](m, cache.RegionSimilarity, opts(cache.RegionSimilarity)),
		scrape:     cache.NewRegion[WebScrapeResult](m, cache.RegionScrape, opts(cache.RegionScrape)),
		extract:    cache.NewRegion[SearchTermExtractionResult](m, cache.RegionExtract, opts(cache.RegionExtract)),
		analysis:   cache.NewRegion[DataAnalysisResult](m, cache.RegionAnalysis, opts(cache.RegionAnalysis)),
	}
}

// StartLiveTwitterSearch starts a new live Twitter search job
func (m *Masa) StartLiveTwitterSearch(ctx context.Context, query string, maxResults int) (*LiveTwitterSearchJob, error) {
	return cached(ctx, m.client, m.jobs,
		cache.Key("startLiveTwitterSearch", query, maxResults),
		&Request{
			Method: http.MethodPost,
			Path:   PathSearchLiveTwitter,
			Body:   &liveTwitterSearchRequest{Query: query, MaxResults: maxResults},
		})
}

// GetLiveTwitterSearchStatus returns the status of the search job
func (m *Masa) GetLiveTwitterSearchStatus(ctx context.Context, jobID string) (*LiveTwitterSearchJobStatus, error) {
	return cached(ctx, m.client, m.statuses,
		cache.Key("getLiveTwitterSearchStatus", jobID),
		&Request{
			Method: http.MethodGet,
			Path:   withID(PathSearchLiveTwitterStatus, jobID),
			Route:  PathSearchLiveTwitterStatus,
		})
}

// GetLiveTwitterSearchResults returns the results of the search job
func (m *Masa) GetLiveTwitterSearchResults(ctx context.Context, jobID string) (*LiveTwitterSearchResultsPage, error) {
	return cached(ctx, m.client, m.results,
		cache.Key("getLiveTwitterSearchResults", jobID),
		&Request{
			Method: http.MethodGet,
			Path:   withID(PathSearchLiveTwitterResult, jobID),
			Route:  PathSearchLiveTwitterResult,
		})
}

// ScrapeWebsite returns the content of the web page
func (m *Masa) ScrapeWebsite(ctx context.Context, url string, opts *WebScrapeOptions) (*WebScrapeResult, error) {
	var format WebScrapeFormat
	if opts != nil {
		format = opts.Format
	}
	return cached(ctx, m.client, m.scrape,
		cache.Key("scrapeWebsite", url, format),
		&Request{
			Method: http.MethodPost,
			Path:   PathSearchLiveWebScrape,
			Body:   &webScrapeRequest{URL: url, Format: format},
		})
}

// ExtractSearchTerms returns the search term extracted from user input
func (m *Masa) ExtractSearchTerms(ctx context.Context, userInput string) (*SearchTermExtractionResult, error) {
	return cached(ctx, m.client, m.extract,
		cache.Key("extractSearchTerms", userInput),
		&Request{
			Method: http.MethodPost,
			Path:   PathSearchExtraction,
			Body:   &extractionRequest{UserInput: userInput},
		})
}

// AnalyzeData analyzes tweets according to the prompt
func (m *Masa) AnalyzeData(ctx context.Context, tweets []string, prompt string) (*DataAnalysisResult, error) {
	if tweets == nil {
		tweets = []string{}
	}
	return cached(ctx, m.client, m.analysis,
		cache.Key("analyzeData", tweets, prompt),
		&Request{
			Method: http.MethodPost,
			Path:   PathSearchAnalysis,
			Body:   &analysisRequest{Tweets: tweets, Prompt: prompt},
		})
}

// SearchWithSimilarity searches Twitter content matching the keywords
func (m *Masa) SearchWithSimilarity(ctx context.Context, query string, keywords []string, maxResults int) (*SimilaritySearchResult, error) {
	if keywords == nil {
		keywords = []string{}
	}
	return cached(ctx, m.client, m.similarity,
		cache.Key("searchWithSimilarity", query, keywords, maxResults),
		&Request{
			Method: http.MethodPost,
			Path:   PathSearchSimilarityTwitter,
			Body:   &similarityRequest{Query: query, Keywords: keywords, MaxResults: maxResults},
		})
}

// cached returns the value from the region, or sends the request
// and stores the decoded response. Client errors are returned unchanged.
func cached[T any](ctx context.Context, client Doer, region *cache.Region[T], key string, req *Request) (*T, error) {
	if v, ok := region.Get(key); ok {
		logger.ContextKV(ctx, xlog.DEBUG, "status", "cache_hit", "region", region.Name(), "key", key)
		return &v, nil
	}

	var res T
	if err := client.Do(ctx, req, &res); err != nil {
		return nil, err
	}

	if err := region.Set(key, res); err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"reason", "cache_set",
			"region", region.Name(),
			"err", err.Error(),
		)
	}
	return &res, nil
}
