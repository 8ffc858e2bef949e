package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"dutchie-extractor/internal/types"
)

// capturePatterns marks the endpoints whose responses carry menu data.
// Matching is by substring on the lower-cased response URL.
var capturePatterns = []string{
	"graphql",
	"operationname",
	"dutchie",
	"iheartjane",
	"jane.menu",
	"weedmaps",
	"dispenseapp",
	"dispense.io",
	"tymberapp",
	"/api/",
	"/menu/",
	"/products",
	"/catalog",
}

const snippetLength = 200

// CaptureBuffer is the append-only log of intercepted API responses. The
// CDP event listener is the only producer; the crawler reads it with the
// Len/Since marker pair after each navigation settles, so no response is
// ever attributed to two pages.
type CaptureBuffer struct {
	mu      sync.Mutex
	entries []types.CapturedResponse
	log     []types.ResponseLogEntry
	logger  types.Logger
}

func NewCaptureBuffer(logger types.Logger) *CaptureBuffer {
	return &CaptureBuffer{logger: logger}
}

// Attach subscribes the buffer to the browser context's network events.
// Bodies are fetched asynchronously so capture never blocks navigation.
func (b *CaptureBuffer) Attach(ctx context.Context) {
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		e, ok := ev.(*network.EventResponseReceived)
		if !ok {
			return
		}
		if !shouldCapture(e.Response.URL) {
			return
		}

		respURL := e.Response.URL
		status := e.Response.Status
		ctype := strings.ToLower(headerString(e.Response.Headers, "content-type"))

		go func(reqID network.RequestID) {
			c := chromedp.FromContext(ctx)
			body, err := network.GetResponseBody(reqID).Do(cdp.WithExecutor(ctx, c.Target))
			if err != nil {
				b.recordFailure(respURL, status, 0, fmt.Sprintf("body unavailable: %v", err))
				return
			}
			// Parse from the raw text so capture is not gated on the
			// Content-Type header being exactly application/json.
			var parsed interface{}
			if err := json.Unmarshal(body, &parsed); err != nil {
				b.recordFailure(respURL, status, len(body), fmt.Sprintf("not JSON: %v", err))
				return
			}
			if parsed == nil {
				return
			}

			snippet := string(body)
			if len(snippet) > snippetLength {
				snippet = snippet[:snippetLength]
			}
			b.Append(types.CapturedResponse{
				URL:         respURL,
				Status:      status,
				ContentType: ctype,
				Body:        parsed,
				Snippet:     snippet,
			}, len(body))
		}(e.RequestID)
	})
}

// Append records one successfully parsed response.
func (b *CaptureBuffer) Append(resp types.CapturedResponse, bodyLength int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, resp)
	b.log = append(b.log, types.ResponseLogEntry{
		URL:        resp.URL,
		Status:     resp.Status,
		BodyLength: bodyLength,
		JSONOK:     true,
	})
	if b.logger != nil {
		b.logger.Debugf("captured response %d: %s (%d bytes)", len(b.entries), resp.URL, bodyLength)
	}
}

func (b *CaptureBuffer) recordFailure(url string, status int64, bodyLength int, reason string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.log = append(b.log, types.ResponseLogEntry{
		URL:        url,
		Status:     status,
		BodyLength: bodyLength,
		JSONOK:     false,
		Error:      reason,
	})
	if b.logger != nil {
		b.logger.Debugf("dropped response from %s: %s", url, reason)
	}
}

// Len returns the current buffer position, used as the marker for Since.
func (b *CaptureBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}

// Since returns a copy of every response appended at or after mark.
func (b *CaptureBuffer) Since(mark int) []types.CapturedResponse {
	b.mu.Lock()
	defer b.mu.Unlock()
	if mark < 0 || mark >= len(b.entries) {
		return nil
	}
	out := make([]types.CapturedResponse, len(b.entries)-mark)
	copy(out, b.entries[mark:])
	return out
}

// Log returns the per-response diagnostics, including parse failures.
func (b *CaptureBuffer) Log() []types.ResponseLogEntry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]types.ResponseLogEntry, len(b.log))
	copy(out, b.log)
	return out
}

func shouldCapture(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	for _, pattern := range capturePatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func headerString(h network.Headers, key string) string {
	for k, v := range h {
		if strings.EqualFold(k, key) {
			return fmt.Sprint(v)
		}
	}
	return ""
}
