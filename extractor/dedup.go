package extractor

import (
	"sort"
	"strconv"
	"strings"

	"dutchie-extractor/internal/types"
)

// rowKey builds the dedup identity of a row: (product name, price, size).
// Two sightings of the same offering under different category labels carry
// the same key; genuinely distinct variants of one product do not.
func rowKey(row types.ProductRow) string {
	price := ""
	if row.Price != nil {
		price = strconv.FormatFloat(*row.Price, 'f', -1, 64)
	}
	return row.Product + "|" + price + "|" + row.Size
}

// Deduplicator tracks the dedup keys seen across an entire crawl. It is
// owned by one crawl session and never reset between categories or pages.
type Deduplicator struct {
	seen map[string]struct{}
}

func NewDeduplicator() *Deduplicator {
	return &Deduplicator{seen: make(map[string]struct{})}
}

// Add accepts a row iff its key has not been seen before.
func (d *Deduplicator) Add(row types.ProductRow) bool {
	key := rowKey(row)
	if _, dup := d.seen[key]; dup {
		return false
	}
	d.seen[key] = struct{}{}
	return true
}

// Signature fingerprints one page's rows as the canonical form of its
// dedup-key set. Order of the rows does not matter; two pages serving the
// same offerings produce the same signature.
func Signature(rows []types.ProductRow) string {
	keys := make([]string, 0, len(rows))
	unique := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		k := rowKey(row)
		if _, dup := unique[k]; dup {
			continue
		}
		unique[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return strings.Join(keys, "\n")
}
