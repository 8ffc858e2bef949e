package extractor

import (
	"dutchie-extractor/internal/types"
	"dutchie-extractor/utils"
)

// SourceLabel tags every row with its provenance.
const SourceLabel = "Dutchie GraphQL"

// ExpandRows turns one normalized product into output rows, one per
// in-stock variant. A product without variants yields a single row at
// product granularity. A product whose every variant fails the stock check
// yields nothing; the product-level path is never a second chance once
// variants exist.
func ExpandRows(p *Product, sourceURL, menuType string) []types.ProductRow {
	base := types.ProductRow{
		Product:   p.Name,
		MenuType:  menuType,
		Category:  p.Category,
		Brand:     p.Brand,
		THC:       p.THC,
		CBD:       p.CBD,
		Source:    SourceLabel,
		SourceURL: sourceURL,
	}

	if len(p.Variants) == 0 {
		row := base
		row.Price = coercePrice(firstTruthy(p.node, "price", "basePrice", "amount"))
		row.SKU = p.ID
		return []types.ProductRow{row}
	}

	var rows []types.ProductRow
	for _, v := range p.Variants {
		variant, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		if !VariantInStock(variant) {
			continue
		}

		row := base
		row.Price = coercePrice(firstTruthy(variant, "specialPrice", "price", "amount", "listPrice"))
		row.Size = utils.Stringify(firstTruthy(variant, "size", "weight", "option"))
		row.SKU = utils.Stringify(firstTruthy(variant, "id", "variantId"))
		if row.SKU == "" {
			row.SKU = p.ID
		}
		rows = append(rows, row)
	}
	return rows
}

// coercePrice converts a loosely-typed price value to a number, unwrapping
// the nested {amount|value} object some vendors use. Unparseable prices
// become nil rather than dropping the row.
func coercePrice(v interface{}) *float64 {
	if m, ok := v.(map[string]interface{}); ok {
		v = firstTruthy(m, "amount", "value")
	}
	if f, ok := utils.CoerceFloat(v); ok {
		return &f
	}
	return nil
}
