package crawler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageURL(t *testing.T) {
	base := "https://shop.example.com/menu"

	testCases := []struct {
		name     string
		base     string
		category string
		page     int
		want     string
	}{
		{
			"Page one keeps category only",
			base, "flower", 1,
			base + "?dtche%5Bcategory%5D=flower",
		},
		{
			"Later pages carry the page param",
			base, "flower", 3,
			base + "?dtche%5Bcategory%5D=flower&dtche%5Bpage%5D=3",
		},
		{
			"No category, page one is the bare URL",
			base, "", 1,
			base,
		},
		{
			"Existing query string is stripped",
			base + "?utm_source=x", "vape", 2,
			base + "?dtche%5Bcategory%5D=vape&dtche%5Bpage%5D=2",
		},
		{
			"Spaces in slug are percent-encoded",
			base, "pre rolls", 1,
			base + "?dtche%5Bcategory%5D=pre%20rolls",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, PageURL(tc.base, tc.category, tc.page))
		})
	}
}

func TestDetectMenuType(t *testing.T) {
	testCases := []struct {
		url  string
		want string
	}{
		{"https://shop.example.com/med/menu", "med"},
		{"https://shop.example.com/medical-menu", "med"},
		{"https://shop.example.com/rec/menu", "rec"},
		{"https://shop.example.com/adult-use", "rec"},
		{"https://shop.example.com/recreational", "rec"},
		{"https://shop.example.com/menu", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, DetectMenuType(tc.url), tc.url)
	}
}
