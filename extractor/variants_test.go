package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func normalized(t *testing.T, raw string) *Product {
	t.Helper()
	node, ok := parseJSON(t, raw).(map[string]interface{})
	require.True(t, ok)
	p, ok := Normalize(node)
	require.True(t, ok)
	return p
}

func TestExpandRows_VariantFanOut(t *testing.T) {
	p := normalized(t, `{
		"name": "Blue Dream",
		"brand": "Acme Farms",
		"cannabinoids": [{"cannabinoid": {"name": "THC"}, "value": 21}],
		"variants": [
			{"id": "v1", "price": 25, "size": "1g", "quantity": 4},
			{"id": "v2", "price": 45, "size": "3.5g", "quantity": 2},
			{"id": "v3", "price": 80, "size": "7g", "quantity": 0}
		]
	}`)

	rows := ExpandRows(p, "https://shop.example/menu", "rec")
	require.Len(t, rows, 2)

	for _, row := range rows {
		assert.Equal(t, "Blue Dream", row.Product)
		assert.Equal(t, "Acme Farms", row.Brand)
		assert.Equal(t, "21", row.THC)
		assert.Equal(t, "rec", row.MenuType)
		assert.Equal(t, SourceLabel, row.Source)
		assert.Equal(t, "https://shop.example/menu", row.SourceURL)
	}
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, 25.0, *rows[0].Price)
	assert.Equal(t, "1g", rows[0].Size)
	assert.Equal(t, "v1", rows[0].SKU)
	require.NotNil(t, rows[1].Price)
	assert.Equal(t, 45.0, *rows[1].Price)
	assert.Equal(t, "3.5g", rows[1].Size)
}

func TestExpandRows_AllVariantsOutOfStock(t *testing.T) {
	// No product-level fallback once a variants list exists.
	p := normalized(t, `{
		"name": "Sold Out",
		"price": 30,
		"variants": [
			{"price": 30, "size": "1g", "inStock": false},
			{"price": 55, "size": "3.5g", "quantityAvailable": 0}
		]
	}`)

	assert.Empty(t, ExpandRows(p, "u", ""))
}

func TestExpandRows_NoVariants(t *testing.T) {
	p := normalized(t, `{"name": "Tincture", "price": 39.5, "id": "p9"}`)

	rows := ExpandRows(p, "u", "med")
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, 39.5, *rows[0].Price)
	assert.Equal(t, "", rows[0].Size)
	assert.Equal(t, "p9", rows[0].SKU)
	assert.Equal(t, "med", rows[0].MenuType)
}

func TestExpandRows_PriceFallbacks(t *testing.T) {
	// specialPrice beats price at variant level.
	p := normalized(t, `{
		"name": "Deal",
		"variants": [{"specialPrice": 20, "price": 30, "weight": "1oz"}]
	}`)
	rows := ExpandRows(p, "u", "")
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, 20.0, *rows[0].Price)
	assert.Equal(t, "1oz", rows[0].Size)

	// Nested price object at product level.
	p = normalized(t, `{"name": "Wrapped", "price": {"amount": 12.5}}`)
	rows = ExpandRows(p, "u", "")
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Price)
	assert.Equal(t, 12.5, *rows[0].Price)

	// Unparseable price keeps the row, price nil.
	p = normalized(t, `{"name": "Call us", "price": "call for pricing"}`)
	rows = ExpandRows(p, "u", "")
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].Price)
}

func TestExpandRows_SKUFallsBackToProductID(t *testing.T) {
	p := normalized(t, `{
		"name": "No Variant ID",
		"id": "prod-7",
		"variants": [{"price": 10, "option": "single"}]
	}`)

	rows := ExpandRows(p, "u", "")
	require.Len(t, rows, 1)
	assert.Equal(t, "prod-7", rows[0].SKU)
	assert.Equal(t, "single", rows[0].Size)
}
