package services

import (
	"context"

	"github.com/effective-security/masamcp/masaapi"
	"github.com/effective-security/xlog"
)

// AnalyticsService implements Analytics
type AnalyticsService struct {
	base
}

var _ Analytics = (*AnalyticsService)(nil)

// NewAnalyticsService returns Analytics service over the API
func NewAnalyticsService(api masaapi.API) *AnalyticsService {
	return &AnalyticsService{base: base{name: AnalyticsServiceName, api: api}}
}

// AnalyzeData analyzes tweets according to the prompt
func (s *AnalyticsService) AnalyzeData(ctx context.Context, tweets []string, prompt string) (*masaapi.DataAnalysisResult, error) {
	s.log(ctx, xlog.INFO, "Analyzing %d data items with prompt: %q", len(tweets), truncate(prompt, 50))
	return s.api.AnalyzeData(ctx, tweets, prompt)
}
