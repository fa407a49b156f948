package masaapi

// JobStatusInProgress is reported while the search job is running
const JobStatusInProgress = "in_progress"

// LiveTwitterSearchJob is a handle of the live Twitter search job
type LiveTwitterSearchJob struct {
	UUID string `json:"uuid" yaml:"uuid"`
}

// LiveTwitterSearchJobStatus is the status of the search job
type LiveTwitterSearchJobStatus struct {
	Status string `json:"status" yaml:"status"`
}

// Tweet is a single tweet found by the search
type Tweet struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

// LiveTwitterSearchResultsPage provides the search job results
type LiveTwitterSearchResultsPage struct {
	Results []Tweet `json:"results" yaml:"results"`
}

// WebScrapeFormat is the format of the scraped content
type WebScrapeFormat string

// Supported scrape formats
const (
	WebScrapeFormatHTML     WebScrapeFormat = "html"
	WebScrapeFormatMarkdown WebScrapeFormat = "markdown"
	WebScrapeFormatText     WebScrapeFormat = "text"
)

// WebScrapeOptions are optional scrape settings
type WebScrapeOptions struct {
	Format WebScrapeFormat `json:"format,omitempty" yaml:"format,omitempty"`
}

// WebScrapeResult is the scraped page
type WebScrapeResult struct {
	URL      string         `json:"url" yaml:"url"`
	Title    string         `json:"title" yaml:"title"`
	Content  string         `json:"content" yaml:"content"`
	Metadata map[string]any `json:"metadata" yaml:"metadata"`
}

// SearchTermExtractionResult is the search term extracted from user input
type SearchTermExtractionResult struct {
	SearchTerm string `json:"searchTerm" yaml:"searchTerm"`
	Thinking   string `json:"thinking" yaml:"thinking"`
}

// DataAnalysisResult is the result of the tweets analysis
type DataAnalysisResult struct {
	Result string `json:"result" yaml:"result"`
}

// SimilarityResult is a single similarity search match
type SimilarityResult struct {
	ID   string `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
	// Similarity is the score in 0..1 range, 1 is the exact match
	Similarity float64 `json:"similarity" yaml:"similarity"`
}

// SimilaritySearchResult provides the similarity search matches
type SimilaritySearchResult struct {
	Results []SimilarityResult `json:"results" yaml:"results"`
}

type liveTwitterSearchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type webScrapeRequest struct {
	URL    string          `json:"url"`
	Format WebScrapeFormat `json:"format,omitempty"`
}

type extractionRequest struct {
	UserInput string `json:"userInput"`
}

type analysisRequest struct {
	Tweets []string `json:"tweets"`
	Prompt string   `json:"prompt"`
}

type similarityRequest struct {
	Query      string   `json:"query"`
	Keywords   []string `json:"keywords"`
	MaxResults int      `json:"max_results"`
}
