package services

import (
	"context"

	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/xlog"
)

// WebService implements Web
type WebService struct {
	base
}

var _ Web = (*WebService)(nil)

// NewWebService returns Web service over the API
func NewWebService(api masaapi.API) *WebService {
	return &WebService{base: base{name: WebServiceName, api: api}}
}

// ScrapeWebsite returns the content of the page
func (s *WebService) ScrapeWebsite(ctx context.Context, url string, opts *masaapi.WebScrapeOptions) (*masaapi.WebScrapeResult, error) {
	format := "default"
	if opts != nil && opts.Format != "" {
		format = string(opts.Format)
	}
	s.log(ctx, xlog.INFO, "Scraping website: %s with format: %s", url, format)
	return s.api.ScrapeWebsite(ctx, url, opts)
}

// ExtractSearchTerms returns the search term extracted from user input
func (s *WebService) ExtractSearchTerms(ctx context.Context, userInput string) (*masaapi.SearchTermExtractionResult, error) {
	s.log(ctx, xlog.INFO, "Extracting search terms from: %q", truncate(userInput, 50))
	return s.api.ExtractSearchTerms(ctx, userInput)
}
