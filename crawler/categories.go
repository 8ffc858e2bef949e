package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// categoryParamRegex matches a dtche[category] query parameter with either
// URL-encoded or literal brackets and captures the slug.
var categoryParamRegex = regexp.MustCompile(`(?i)dtche(?:%5B|\[)category(?:%5D|\])=([^&"'\s<>]+)`)

// DiscoverCategories scans the rendered page for category slugs. Anchor
// hrefs are checked first; a raw-text pass over the whole HTML follows,
// catching slugs injected as inline script data rather than real links.
// Slugs are deduplicated by exact match, preserving first-seen order.
func DiscoverCategories(html string) []string {
	var categories []string
	seen := make(map[string]struct{})

	add := func(raw string) {
		slug := strings.TrimSpace(strings.ReplaceAll(raw, "%20", " "))
		if slug == "" {
			return
		}
		if _, dup := seen[slug]; dup {
			return
		}
		seen[slug] = struct{}{}
		categories = append(categories, slug)
	}

	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		doc.Find("a[href*='dtche']").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if m := categoryParamRegex.FindStringSubmatch(href); m != nil {
				add(m[1])
			}
		})
	}

	for _, m := range categoryParamRegex.FindAllStringSubmatch(html, -1) {
		add(m[1])
	}

	return categories
}
