// Package aggregate groups receipts into per-category spending totals.
package aggregate

import (
	"sort"

	"github.com/dmitrijs2005/receiptkeeper/internal/server/models"
	"github.com/shopspring/decimal"
)

// Summarize sums receipt totals per category. Receipts without a category
// are counted under models.Uncategorized. An empty input gives an empty map.
func Summarize(receipts []*models.Receipt) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, r := range receipts {
		key := r.CategoryName()
		out[key] = out[key].Add(r.Total)
	}
	return out
}

// ChartSeries returns the Summarize result as two parallel slices, ordered
// by total descending and then by category name.
func ChartSeries(receipts []*models.Receipt) ([]string, []decimal.Decimal) {
	totals := Summarize(receipts)

	categories := make([]string, 0, len(totals))
	for c := range totals {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		a, b := totals[categories[i]], totals[categories[j]]
		if cmp := a.Cmp(b); cmp != 0 {
			return cmp > 0
		}
		return categories[i] < categories[j]
	})

	values := make([]decimal.Decimal, len(categories))
	for i, c := range categories {
		values[i] = totals[c]
	}
	return categories, values
}
