package browser

import (
	"testing"

	"github.com/chromedp/cdproto/network"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dutchie-extractor/internal/types"
)

func TestShouldCapture(t *testing.T) {
	testCases := []struct {
		name string
		url  string
		want bool
	}{
		{"GraphQL endpoint", "https://dutchie.com/graphql?operationName=FilteredProducts", true},
		{"Generic API path", "https://shop.example.com/api/v2/menu", true},
		{"Jane menu host", "https://api.iheartjane.com/v1/stores/1/products", true},
		{"Case insensitive", "https://x.example/GraphQL", true},
		{"Asset request", "https://cdn.example.com/bundle.js", false},
		{"Plain page", "https://shop.example.com/about", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, shouldCapture(tc.url))
		})
	}
}

func TestCaptureBuffer_SinceMarker(t *testing.T) {
	b := NewCaptureBuffer(nil)
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Since(0))

	b.Append(types.CapturedResponse{URL: "a"}, 10)
	b.Append(types.CapturedResponse{URL: "b"}, 20)
	mark := b.Len()
	b.Append(types.CapturedResponse{URL: "c"}, 30)

	all := b.Since(0)
	require.Len(t, all, 3)

	delta := b.Since(mark)
	require.Len(t, delta, 1)
	assert.Equal(t, "c", delta[0].URL)

	assert.Nil(t, b.Since(b.Len()))
}

func TestCaptureBuffer_Log(t *testing.T) {
	b := NewCaptureBuffer(nil)
	b.Append(types.CapturedResponse{URL: "ok", Status: 200}, 42)
	b.recordFailure("bad", 200, 7, "not JSON: unexpected token")

	log := b.Log()
	require.Len(t, log, 2)
	assert.True(t, log[0].JSONOK)
	assert.Equal(t, 42, log[0].BodyLength)
	assert.False(t, log[1].JSONOK)
	assert.Contains(t, log[1].Error, "not JSON")

	// Failures never enter the response buffer itself.
	assert.Equal(t, 1, b.Len())
}

func TestHeaderString(t *testing.T) {
	h := network.Headers{"Content-Type": "application/json; charset=utf-8"}
	assert.Equal(t, "application/json; charset=utf-8", headerString(h, "content-type"))
	assert.Equal(t, "", headerString(h, "x-missing"))
}
