package crawler

import (
	"fmt"
	"time"

	"dutchie-extractor/extractor"
	"dutchie-extractor/internal/types"
)

// menuSelectors are the product-grid containers whose appearance means the
// menu has rendered.
var menuSelectors = []string{
	"[class*='product-card']",
	"[class*='ProductCard']",
	"[class*='menu-item']",
	"[class*='MenuItem']",
	"[class*='productGrid']",
	"[class*='product-grid']",
	"[class*='products-grid']",
}

// Page is the slice of the rendering substrate the crawler drives. The
// browser package provides the real implementation.
type Page interface {
	Navigate(url string, timeout time.Duration) error
	WaitForAny(selectors []string, timeout time.Duration) bool
	HTML() (string, error)
	ClickFirstVisible(selector string) (bool, error)
	ClickAnyByText(text string) (bool, error)
	Sleep(d time.Duration)
}

// ResponseSource is the captured-response buffer as the crawler reads it:
// an append-only log drained by (marker, delta) so responses are attributed
// to exactly one page.
type ResponseSource interface {
	Len() int
	Since(mark int) []types.CapturedResponse
	Log() []types.ResponseLogEntry
}

// Crawler walks a menu category-by-category, page-by-page, feeding the
// responses captured during each navigation through extraction. Navigation
// is strictly sequential; the buffer-delta attribution depends on it.
type Crawler struct {
	cfg       *types.Config
	page      Page
	responses ResponseSource
	logger    types.Logger
}

func New(cfg *types.Config, page Page, responses ResponseSource, logger types.Logger) *Crawler {
	return &Crawler{
		cfg:       cfg,
		page:      page,
		responses: responses,
		logger:    logger,
	}
}

// Crawl runs the whole extraction against one menu URL. It always returns
// a result: an empty row set with diagnostics is the valid outcome when
// every extraction path comes up dry.
func (c *Crawler) Crawl(menuURL string) *types.CrawlResult {
	diag := types.NewDiagnostics()
	result := &types.CrawlResult{Rows: []types.ProductRow{}, Diagnostics: diag}

	menuType := c.cfg.MenuType
	if menuType == "" {
		menuType = DetectMenuType(menuURL)
	}

	dedup := extractor.NewDeduplicator()

	c.logger.Infof("starting crawl of %s", menuURL)
	if err := c.page.Navigate(menuURL, c.cfg.NavigationTimeout); err != nil {
		c.logger.Errorf("initial navigation failed: %v", err)
		diag.Note(fmt.Sprintf("initial navigation failed: %v", err))
		c.finish(result)
		return result
	}

	c.page.Sleep(c.cfg.SettleDelay)
	BypassAgeGate(c.page, c.logger)
	c.page.Sleep(c.cfg.SettleDelay)
	c.waitForMenu()

	html, err := c.page.HTML()
	if err != nil {
		diag.Note(fmt.Sprintf("could not read rendered page: %v", err))
	}
	categories := DiscoverCategories(html)
	diag.Categories = categories
	diag.Note(fmt.Sprintf("discovered %d categories: %v", len(categories), categories))
	c.logger.Infof("discovered %d categories", len(categories))

	if len(categories) == 0 {
		// The single already-loaded page is the whole catalog.
		diag.Note("no categories discovered; parsing initial page responses")
		rows := c.extractRows(c.responses.Since(0), menuURL, menuType)
		diag.PerPageCounts["initial"] = c.accept(rows, dedup, result)
	} else {
		for _, category := range categories {
			c.crawlCategory(category, menuURL, menuType, dedup, result)
		}
	}

	c.finish(result)
	c.logger.Infof("crawl finished: %d unique rows", len(result.Rows))
	return result
}

// crawlCategory walks one category page-by-page until a page yields
// nothing, repeats a previous page's signature, or the page cap is hit.
// Once stopped, a category is never revisited.
func (c *Crawler) crawlCategory(category, menuURL, menuType string, dedup *extractor.Deduplicator, result *types.CrawlResult) {
	diag := result.Diagnostics
	total := 0
	prevSignatures := make(map[string]struct{})

	for pg := 1; pg <= c.cfg.MaxPages; pg++ {
		pageKey := fmt.Sprintf("%s_page%d", category, pg)
		mark := c.responses.Len()
		navURL := PageURL(menuURL, category, pg)

		if err := c.page.Navigate(navURL, c.cfg.NavigationTimeout); err != nil {
			// Non-fatal: this category is abandoned, the crawl moves on.
			c.logger.Warnf("category %q page %d: %v", category, pg, err)
			diag.Note(fmt.Sprintf("category %q page %d: navigation failed: %v", category, pg, err))
			diag.PerPageCounts[pageKey] = 0
			break
		}
		c.page.Sleep(c.cfg.SettleDelay)
		c.waitForMenu()

		rows := c.extractRows(c.responses.Since(mark), menuURL, menuType)

		if len(rows) == 0 {
			diag.Note(fmt.Sprintf("category %q page %d: 0 products, stopping", category, pg))
			diag.PerPageCounts[pageKey] = 0
			break
		}

		// Vendors that clamp the page number server-side re-serve the last
		// page forever; an already-seen signature means we are looping.
		sig := extractor.Signature(rows)
		if _, seen := prevSignatures[sig]; seen {
			diag.Note(fmt.Sprintf("category %q page %d: repeated page signature, stopping", category, pg))
			diag.PerPageCounts[pageKey] = 0
			break
		}
		prevSignatures[sig] = struct{}{}

		added := c.accept(rows, dedup, result)
		total += added
		diag.PerPageCounts[pageKey] = added
		c.logger.Debugf("category %q page %d: %d rows added", category, pg, added)
	}

	diag.Note(fmt.Sprintf("category %q: %d unique rows added", category, total))
}

// extractRows runs captured responses through payload extraction, the stock
// filter, and variant expansion.
func (c *Crawler) extractRows(responses []types.CapturedResponse, sourceURL, menuType string) []types.ProductRow {
	var rows []types.ProductRow
	for _, resp := range responses {
		for _, node := range extractor.FindProducts(resp.Body) {
			if !extractor.IsInStock(node) {
				continue
			}
			product, ok := extractor.Normalize(node)
			if !ok {
				continue
			}
			rows = append(rows, extractor.ExpandRows(product, sourceURL, menuType)...)
		}
	}
	return rows
}

// accept feeds rows through the crawl-global deduplicator and appends the
// newly seen ones to the result.
func (c *Crawler) accept(rows []types.ProductRow, dedup *extractor.Deduplicator, result *types.CrawlResult) int {
	added := 0
	for _, row := range rows {
		if dedup.Add(row) {
			result.Rows = append(result.Rows, row)
			added++
		}
	}
	return added
}

// waitForMenu waits for a known product-grid selector to appear, falling
// back to a plain delay when none does.
func (c *Crawler) waitForMenu() {
	if !c.page.WaitForAny(menuSelectors, c.cfg.MenuWaitTimeout) {
		c.page.Sleep(c.cfg.SettleDelay)
	}
}

// finish copies the capture buffer's totals into the diagnostics record.
func (c *Crawler) finish(result *types.CrawlResult) {
	diag := result.Diagnostics
	for _, resp := range c.responses.Since(0) {
		diag.CapturedURLs = append(diag.CapturedURLs, resp.URL)
	}
	diag.CapturedCount = len(diag.CapturedURLs)
	diag.ResponseLog = c.responses.Log()
}
