package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"dutchie-extractor/internal/types"
)

// ageGateSeedScript pre-sets the consent-storage keys age gates check, so
// gates that honor persisted consent never render at all. Installed before
// the first navigation.
const ageGateSeedScript = `
try {
    localStorage.setItem('ageVerified', 'true');
    localStorage.setItem('age_verified', 'true');
    localStorage.setItem('isAgeVerified', 'true');
    localStorage.setItem('over21', 'true');
    localStorage.setItem('ageGatePassed', 'true');
} catch (e) {}
`

// Session owns one headless browser for the lifetime of a crawl. All
// navigation is strictly sequential through this type; the only concurrency
// is the CDP network layer feeding the capture buffer.
type Session struct {
	ctx     context.Context
	cancels []context.CancelFunc
	logger  types.Logger
}

// NewSession launches a headless browser, enables network capture into
// buffer, and installs the consent-seeding init script. A failure here is
// fatal for the whole crawl; the caller surfaces it as an empty result.
func NewSession(ctx context.Context, cfg *types.Config, buffer *CaptureBuffer, logger types.Logger) (*Session, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", cfg.Headless),
		chromedp.UserAgent(cfg.UserAgent),
		chromedp.WindowSize(1400, 900),
	)
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	s := &Session{
		ctx:     browserCtx,
		cancels: []context.CancelFunc{cancelBrowser, cancelAlloc},
		logger:  logger,
	}

	// The listener must be attached before the browser handles any page so
	// no early response slips past the buffer.
	buffer.Attach(browserCtx)

	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(ageGateSeedScript).Do(ctx)
			return err
		}),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to start browser session: %w", err)
	}

	return s, nil
}

// Navigate loads a URL and waits for the page load event, bounded by timeout.
func (s *Session) Navigate(url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

// WaitForAny polls until any of the selectors matches an element, returning
// false when none appeared within timeout.
func (s *Session) WaitForAny(selectors []string, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	script := fmt.Sprintf(`document.querySelector(%q) !== null`, strings.Join(selectors, ", "))
	var found bool
	err := chromedp.Run(ctx, chromedp.Poll(script, &found, chromedp.WithPollingTimeout(timeout)))
	return err == nil && found
}

// HTML returns the rendered outer HTML of the current page.
func (s *Session) HTML() (string, error) {
	ctx, cancel := context.WithTimeout(s.ctx, 10*time.Second)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html)); err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return html, nil
}

// ClickFirstVisible clicks the first visible element matching selector and
// reports whether anything was clicked.
func (s *Session) ClickFirstVisible(selector string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (el && el.offsetParent !== null) { el.click(); return true; }
		return false;
	})()`, selector)
	return s.evalClick(script)
}

// ClickAnyByText clicks the first visible button, link, or ARIA button
// whose text contains the phrase, case-insensitively.
func (s *Session) ClickAnyByText(text string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		const needle = %q.toLowerCase();
		const els = document.querySelectorAll("button, a, [role='button']");
		for (const el of els) {
			if (el.offsetParent === null) continue;
			const t = (el.innerText || el.textContent || "").trim().toLowerCase();
			if (t.includes(needle)) { el.click(); return true; }
		}
		return false;
	})()`, text)
	return s.evalClick(script)
}

func (s *Session) evalClick(script string) (bool, error) {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Second)
	defer cancel()

	var clicked bool
	if err := chromedp.Run(ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

// Sleep pauses the control flow, giving lazy-loaded content time to settle.
func (s *Session) Sleep(d time.Duration) {
	select {
	case <-time.After(d):
	case <-s.ctx.Done():
	}
}

// Close tears the browser down unconditionally so no OS-level browser
// process outlives the crawl.
func (s *Session) Close() {
	for _, cancel := range s.cancels {
		cancel()
	}
}
