package services

import (
	"context"

	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/xlog"
)

// TwitterService implements Twitter
type TwitterService struct {
	base
}

var _ Twitter = (*TwitterService)(nil)

// NewTwitterService returns Twitter service over the API
func NewTwitterService(api masaapi.API) *TwitterService {
	return &TwitterService{base: base{name: TwitterServiceName, api: api}}
}

// SearchTweets starts a new live search job
func (s *TwitterService) SearchTweets(ctx context.Context, query string, maxResults int) (*masaapi.LiveTwitterSearchJob, error) {
	s.log(ctx, xlog.INFO, "Starting Twitter search for query: %q with maxResults: %d", query, maxResults)
	return s.api.StartLiveTwitterSearch(ctx, query, maxResults)
}

// GetSearchStatus returns the status of the search job
func (s *TwitterService) GetSearchStatus(ctx context.Context, jobID string) (*masaapi.LiveTwitterSearchJobStatus, error) {
	s.log(ctx, xlog.DEBUG, "Getting status for search job: %s", jobID)
	return s.api.GetLiveTwitterSearchStatus(ctx, jobID)
}

// GetSearchResults returns the results of the search job
func (s *TwitterService) GetSearchResults(ctx context.Context, jobID string) (*masaapi.LiveTwitterSearchResultsPage, error) {
	s.log(ctx, xlog.DEBUG, "Getting results for search job: %s", jobID)
	return s.api.GetLiveTwitterSearchResults(ctx, jobID)
}

// SearchWithSimilarity searches Twitter content matching the keywords
func (s *TwitterService) SearchWithSimilarity(ctx context.Context, query string, keywords []string, maxResults int) (*masaapi.SimilaritySearchResult, error) {
	s.log(ctx, xlog.INFO, "Starting similarity search with query: %q and %d keywords", query, len(keywords))
	return s.api.SearchWithSimilarity(ctx, query, keywords, maxResults)
}
