package extractor

import "strings"

// stockKeys are the field names recognized as stock signals, checked in this
// order so a node carrying several of them evaluates deterministically.
var stockKeys = []string{
	"inStock",
	"isAvailable",
	"available",
	"stockStatus",
	"inventoryStatus",
	"quantityAvailable",
	"quantity",
}

// outOfStockValues are string stock values that mean "not purchasable".
var outOfStockValues = map[string]struct{}{
	"false":        {},
	"0":            {},
	"out_of_stock": {},
	"out of stock": {},
	"unavailable":  {},
	"no":           {},
}

// stockValue interprets one stock field value. Booleans pass through,
// numbers are in stock iff positive, strings are in stock unless they match
// a known out-of-stock marker. Unrecognized value types count as in stock.
func stockValue(v interface{}) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t > 0
	case string:
		_, out := outOfStockValues[strings.ToLower(t)]
		return !out
	}
	return true
}

// stockSignal finds the first recognized stock field on a node and evaluates
// it. The second return reports whether any recognized field was present.
func stockSignal(node map[string]interface{}) (bool, bool) {
	for _, key := range stockKeys {
		if v, ok := lookupFold(node, key); ok {
			return stockValue(v), true
		}
	}
	return false, false
}

// IsInStock reports whether a product node appears purchasable. When the
// node carries no recognized stock field at any level the product is
// included: many vendor schemas omit the field entirely for
// always-available SKUs, and absence of a signal must never drop data.
func IsInStock(product map[string]interface{}) bool {
	if in, found := stockSignal(product); found {
		return in
	}

	variants := variantList(product)
	if len(variants) > 0 {
		anyFound := false
		for _, v := range variants {
			node, ok := v.(map[string]interface{})
			if !ok {
				continue
			}
			if in, found := stockSignal(node); found {
				anyFound = true
				if in {
					return true
				}
			}
		}
		// Variants without any stock field are assumed purchasable.
		return !anyFound
	}

	return true
}

// VariantInStock applies the stock policy to a single variant node.
func VariantInStock(variant map[string]interface{}) bool {
	if in, found := stockSignal(variant); found {
		return in
	}
	return true
}
