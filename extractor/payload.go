package extractor

import (
	"strings"

	"dutchie-extractor/utils"
)

// productPaths are the conventional locations of the product array in
// Dutchie GraphQL responses, tried in priority order before falling back to
// a recursive search.
var productPaths = [][]string{
	{"data", "filteredProducts", "products"},
	{"data", "products", "products"},
	{"data", "menuProducts"},
	{"data", "products"},
}

// maxSearchDepth bounds the recursive product-list search. JSON documents
// have no cycles, but vendor payloads nest deeply enough that an explicit
// bound is cheaper than trusting them.
const maxSearchDepth = 6

// Product is a product node normalized out of a vendor payload. Variants
// keeps the raw variant nodes so expansion can apply its own field fallbacks.
type Product struct {
	Name     string
	Category string
	Brand    string
	THC      string
	CBD      string
	ID       string
	Variants []interface{}

	node map[string]interface{}
}

// FindProducts locates the product list inside one parsed JSON document and
// returns the raw product-like nodes. Known vendor paths win; otherwise the
// whole document is searched for the largest list of named objects. An
// unrecognizable document yields an empty slice, never an error.
func FindProducts(body interface{}) []map[string]interface{} {
	root, ok := body.(map[string]interface{})
	if ok {
		for _, path := range productPaths {
			if list, found := resolvePath(root, path); found {
				return dictElements(list)
			}
		}
	}
	return dictElements(findProductList(body, 0))
}

// resolvePath walks a fixed key path and reports whether it ends in a list.
func resolvePath(root map[string]interface{}, path []string) ([]interface{}, bool) {
	var cur interface{} = root
	for _, key := range path {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil, false
		}
		cur = m[key]
	}
	list, ok := cur.([]interface{})
	return list, ok
}

// findProductList recursively searches for the largest list whose elements
// look like products, i.e. objects carrying a "name" or "title" key. A list
// qualifies when at least min(2, len) of its elements qualify, so a
// singleton with one clearly-named object passes.
func findProductList(v interface{}, depth int) []interface{} {
	if depth > maxSearchDepth {
		return nil
	}

	var best []interface{}

	switch t := v.(type) {
	case map[string]interface{}:
		for _, child := range t {
			if candidate := findProductList(child, depth+1); len(candidate) > len(best) {
				best = candidate
			}
		}

	case []interface{}:
		named := 0
		for _, item := range t {
			if m, ok := item.(map[string]interface{}); ok {
				if _, has := m["name"]; has {
					named++
				} else if _, has := m["title"]; has {
					named++
				}
			}
		}
		need := 2
		if len(t) < need {
			need = len(t)
		}
		if named > 0 && named >= need {
			return t
		}
		for _, item := range t {
			if candidate := findProductList(item, depth+1); len(candidate) > len(best) {
				best = candidate
			}
		}
	}

	return best
}

func dictElements(list []interface{}) []map[string]interface{} {
	var nodes []map[string]interface{}
	for _, item := range list {
		if m, ok := item.(map[string]interface{}); ok {
			nodes = append(nodes, m)
		}
	}
	return nodes
}

// Normalize extracts the shared product fields from a raw node. Nodes
// without a usable name are discarded silently; that is the only rejection.
func Normalize(node map[string]interface{}) (*Product, bool) {
	name := strings.TrimSpace(utils.Stringify(firstTruthy(node, "name", "title", "displayName")))
	if name == "" {
		return nil, false
	}

	p := &Product{
		Name:     name,
		Category: nestedName(firstTruthy(node, "category", "type", "productType", "kind")),
		Brand:    nestedName(firstTruthy(node, "brand", "brandInfo")),
		THC:      extractPotency(node, "THC"),
		CBD:      extractPotency(node, "CBD"),
		ID:       utils.Stringify(firstTruthy(node, "id", "productId", "slug")),
		node:     node,
	}
	p.Variants = variantList(node)
	return p, true
}

// variantList returns the node's variants/options list, if any.
func variantList(node map[string]interface{}) []interface{} {
	if list, ok := node["variants"].([]interface{}); ok {
		return list
	}
	if list, ok := node["options"].([]interface{}); ok {
		return list
	}
	return nil
}

// nestedName flattens values that are either a plain string or an object
// with a name/title field, the two shapes vendors use for category/brand.
func nestedName(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}:
		return strings.TrimSpace(utils.Stringify(firstTruthy(t, "name", "title")))
	}
	return ""
}

// potencyKeys maps a cannabinoid name to the direct field names vendors use
// for it when there is no cannabinoids array.
var potencyKeys = map[string][]string{
	"THC": {"thc", "thcContent", "thcPercentage", "thcMax", "thcMin", "thcLevel"},
	"CBD": {"cbd", "cbdContent", "cbdPercentage", "cbdMax", "cbdMin", "cbdLevel"},
}

// extractPotency pulls a THC/CBD value from the cannabinoids array, falling
// back to direct potency fields. Descriptive strings ("22.5% THC") are
// reduced to their first number.
func extractPotency(node map[string]interface{}, name string) string {
	if v := cannabinoidValue(node, name); v != "" {
		return v
	}
	for _, key := range potencyKeys[name] {
		v, ok := lookupFold(node, key)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case float64:
			return utils.Stringify(t)
		case string:
			if f, ok := utils.ParseNumber(t); ok {
				return utils.Stringify(f)
			}
		}
	}
	return ""
}

// cannabinoidValue searches the cannabinoids array for an entry whose type
// name matches, case-insensitively. Entries carry the name either as a
// nested {cannabinoid: {name}} object, a plain string, or a flat field.
func cannabinoidValue(node map[string]interface{}, name string) string {
	arr, _ := node["cannabinoids"].([]interface{})
	for _, item := range arr {
		c, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		var cname string
		switch cb := c["cannabinoid"].(type) {
		case map[string]interface{}:
			cname = utils.Stringify(cb["name"])
		case string:
			cname = cb
		default:
			cname = utils.Stringify(firstTruthy(c, "cannabinoidType", "name"))
		}
		if !strings.EqualFold(cname, name) {
			continue
		}
		if v := firstTruthy(c, "value", "formattedValue", "percentageValue"); v != nil {
			return utils.Stringify(v)
		}
	}
	return ""
}

// firstTruthy returns the first present, non-empty value among keys. Empty
// strings, zero, false, and nil all fall through to the next candidate.
func firstTruthy(m map[string]interface{}, keys ...string) interface{} {
	for _, key := range keys {
		v, ok := m[key]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if t == "" {
				continue
			}
		case float64:
			if t == 0 {
				continue
			}
		case bool:
			if !t {
				continue
			}
		}
		return v
	}
	return nil
}

// lookupFold finds a key in a node, preferring the exact spelling and
// falling back to a case-insensitive scan.
func lookupFold(m map[string]interface{}, key string) (interface{}, bool) {
	if v, ok := m[key]; ok {
		return v, true
	}
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return v, true
		}
	}
	return nil, false
}
