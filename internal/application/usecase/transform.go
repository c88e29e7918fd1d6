package usecase

import (
	"sort"

	"github.com/mtamaki/cloud-cost-viewer/internal/domain/entity"
)

// FillZeroDays returns the input entries plus one zero-amount placeholder for
// every calendar day in the half-open range [start, end) that has no entry,
// sorted ascending by day. Placeholders carry service "-" and inherit the
// currency of the first input entry ("USD" when the input is empty). Entries
// sharing a day keep their original relative order.
func FillZeroDays(entries []entity.CostEntry, start, end entity.Day) []entity.CostEntry {
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		seen[e.Date.String()] = struct{}{}
	}

	currency := "USD"
	if len(entries) > 0 {
		currency = entries[0].Currency
	}

	filled := make([]entity.CostEntry, len(entries), len(entries)+8)
	copy(filled, entries)

	for day := start; day.Before(end); day = day.Next() {
		if _, ok := seen[day.String()]; ok {
			continue
		}
		filled = append(filled, entity.CostEntry{
			Date:     day,
			Service:  "-",
			Amount:   0,
			Currency: currency,
		})
	}

	sort.SliceStable(filled, func(i, j int) bool {
		return filled[i].Date.Before(filled[j].Date)
	})

	return filled
}

// MergeProviders flattens per-provider entry lists into a single list,
// rewriting each service label to "<Provider> / <service>". Provider order
// and per-provider entry order are preserved; dates, amounts and currencies
// pass through unchanged.
func MergeProviders(results []entity.ProviderResult) []entity.CostEntry {
	total := 0
	for _, r := range results {
		total += len(r.Entries)
	}

	merged := make([]entity.CostEntry, 0, total)
	for _, r := range results {
		for _, e := range r.Entries {
			e.Service = r.Name + " / " + e.Service
			merged = append(merged, e)
		}
	}
	return merged
}
