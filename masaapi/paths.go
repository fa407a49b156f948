package masaapi

import (
	"net/url"
	"strings"
)

// Masa API paths
const (
	PathSearchLiveTwitter       = "/api/v1/search/live/twitter"
	PathSearchLiveTwitterStatus = "/api/v1/search/live/twitter/status/{id}"
	PathSearchLiveTwitterResult = "/api/v1/search/live/twitter/result/{id}"
	PathSearchLiveWebScrape     = "/api/v1/search/live/web/scrape"
	PathSearchExtraction        = "/api/v1/search/extraction"
	PathSearchAnalysis          = "/api/v1/search/analysis"
	PathSearchSimilarityTwitter = "/api/v1/search/similarity/twitter"
)

// withID substitutes the escaped id in the path template
func withID(template, id string) string {
	return strings.Replace(template, "{id}", url.PathEscape(id), 1)
}
