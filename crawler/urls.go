package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// PageURL synthesizes the navigation URL for (category, page). Page 1 stays
// unparameterized because vendors treat the bare category URL as canonical;
// any query string on the base URL is stripped first.
func PageURL(base, category string, page int) string {
	base = strings.SplitN(base, "?", 2)[0]

	var params []string
	if category != "" {
		slug := strings.ReplaceAll(url.QueryEscape(category), "+", "%20")
		params = append(params, "dtche%5Bcategory%5D="+slug)
	}
	if page > 1 {
		params = append(params, fmt.Sprintf("dtche%%5Bpage%%5D=%d", page))
	}
	if len(params) == 0 {
		return base
	}
	return base + "?" + strings.Join(params, "&")
}

// DetectMenuType infers medical/recreational from URL path tokens. Returns
// an empty string when the URL carries no signal.
func DetectMenuType(menuURL string) string {
	lower := strings.ToLower(menuURL)
	switch {
	case strings.Contains(lower, "/med") || strings.Contains(lower, "medical"):
		return "med"
	case strings.Contains(lower, "/rec") || strings.Contains(lower, "adult") || strings.Contains(lower, "recreational"):
		return "rec"
	}
	return ""
}
