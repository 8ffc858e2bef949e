package types

import "time"

// ProductRow is one purchasable offering extracted from a menu. A product
// with several size/weight variants produces one row per in-stock variant.
type ProductRow struct {
	Product   string   `json:"product"`
	MenuType  string   `json:"menu_type,omitempty"`
	Category  string   `json:"category,omitempty"`
	Brand     string   `json:"brand,omitempty"`
	THC       string   `json:"thc,omitempty"`
	CBD       string   `json:"cbd,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Size      string   `json:"size,omitempty"`
	SKU       string   `json:"sku,omitempty"`
	Source    string   `json:"source"`
	SourceURL string   `json:"source_url"`
}

// CapturedResponse is one intercepted network exchange. Body is the parsed
// JSON document; responses that fail to parse are never buffered, they only
// leave a trace in the diagnostics response log.
type CapturedResponse struct {
	URL         string      `json:"url"`
	Status      int64       `json:"status"`
	ContentType string      `json:"content_type"`
	Body        interface{} `json:"-"`
	Snippet     string      `json:"snippet,omitempty"`
}

// ResponseLogEntry records the outcome of handling one qualifying response,
// whether or not its body parsed as JSON.
type ResponseLogEntry struct {
	URL        string `json:"url"`
	Status     int64  `json:"status"`
	BodyLength int    `json:"body_length"`
	JSONOK     bool   `json:"json_ok"`
	Error      string `json:"error,omitempty"`
}

// Diagnostics is the troubleshooting record accompanying a crawl result.
// The crawler populates it; rendering it is someone else's job.
type Diagnostics struct {
	CapturedCount int                `json:"captured_count"`
	CapturedURLs  []string           `json:"captured_urls"`
	Categories    []string           `json:"categories"`
	PerPageCounts map[string]int     `json:"per_page_counts"`
	ParseNotes    []string           `json:"parse_notes"`
	ResponseLog   []ResponseLogEntry `json:"response_log"`
}

// NewDiagnostics returns an empty diagnostics record with its map initialized.
func NewDiagnostics() *Diagnostics {
	return &Diagnostics{
		CapturedURLs:  []string{},
		Categories:    []string{},
		PerPageCounts: make(map[string]int),
		ParseNotes:    []string{},
	}
}

// Note appends a free-text parse note.
func (d *Diagnostics) Note(note string) {
	d.ParseNotes = append(d.ParseNotes, note)
}

// CrawlResult is the complete outcome of one crawl invocation. Rows may be
// empty while Diagnostics explains why; that is a valid, non-error outcome.
type CrawlResult struct {
	Rows        []ProductRow `json:"rows"`
	Diagnostics *Diagnostics `json:"diagnostics"`
}

// Config holds the settings for a crawl session.
type Config struct {
	MenuType          string
	NavigationTimeout time.Duration
	MenuWaitTimeout   time.Duration
	SettleDelay       time.Duration
	MaxPages          int
	Headless          bool
	UserAgent         string
}

// DefaultConfig returns the default crawl configuration.
func DefaultConfig() *Config {
	return &Config{
		NavigationTimeout: 45 * time.Second,
		MenuWaitTimeout:   8 * time.Second,
		SettleDelay:       2 * time.Second,
		MaxPages:          20,
		Headless:          true,
		UserAgent:         "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	}
}

// Logger defines the logging interface used throughout the extractor.
type Logger interface {
	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}
