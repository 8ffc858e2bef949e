package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"dutchie-extractor/internal/types"
)

func row(name string, price float64, size string) types.ProductRow {
	return types.ProductRow{Product: name, Price: &price, Size: size}
}

func TestDeduplicator_Idempotence(t *testing.T) {
	rows := []types.ProductRow{
		row("Blue Dream", 25, "1g"),
		row("Blue Dream", 45, "3.5g"),
		row("OG Kush", 25, "1g"),
	}

	d := NewDeduplicator()
	accepted := 0
	for _, r := range rows {
		if d.Add(r) {
			accepted++
		}
	}
	assert.Equal(t, 3, accepted)

	// Feeding the same set again accepts nothing.
	for _, r := range rows {
		assert.False(t, d.Add(r))
	}
}

func TestDeduplicator_DistinctVariantsCoexist(t *testing.T) {
	d := NewDeduplicator()
	assert.True(t, d.Add(row("Blue Dream", 25, "1g")))
	assert.True(t, d.Add(row("Blue Dream", 45, "3.5g")))
	assert.True(t, d.Add(row("Blue Dream", 25, "2g")))
	assert.False(t, d.Add(row("Blue Dream", 25, "1g")))
}

func TestDeduplicator_CategoryLabelIgnored(t *testing.T) {
	// Same offering reachable under two category labels counts once.
	a := row("Gelato", 40, "3.5g")
	a.Category = "Flower"
	b := row("Gelato", 40, "3.5g")
	b.Category = "Staff Picks"

	d := NewDeduplicator()
	assert.True(t, d.Add(a))
	assert.False(t, d.Add(b))
}

func TestSignature_SetEquality(t *testing.T) {
	a := []types.ProductRow{row("A", 10, "1g"), row("B", 20, "2g")}
	b := []types.ProductRow{row("B", 20, "2g"), row("A", 10, "1g")}
	c := []types.ProductRow{row("A", 10, "1g")}

	assert.Equal(t, Signature(a), Signature(b))
	assert.NotEqual(t, Signature(a), Signature(c))
}

func TestSignature_NilPriceDistinct(t *testing.T) {
	noPrice := types.ProductRow{Product: "A", Size: "1g"}
	zeroPrice := row("A", 0, "1g")

	assert.NotEqual(t, Signature([]types.ProductRow{noPrice}), Signature([]types.ProductRow{zeroPrice}))
}
