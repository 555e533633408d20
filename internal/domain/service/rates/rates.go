// Package rates normalizes the exchange-rate feed into the common-unit table
// used for every valuation.
package rates

import (
	"sort"
	"strings"

	"stashboard/internal/domain/entity"
)

// Feed identifiers and the spellings the trade API uses for the same
// currency. The table must resolve both.
var aliases = map[string]string{ //nolint:gochecknoglobals
	"gcp":       "gemcutter",
	"transmute": "transmutation",
}

// Build produces a rate table from a feed snapshot. The line whose id equals
// the base unit supplies the pivot every other value is divided by; a missing
// or zero pivot degrades to 1. The base unit is forced to exactly 1 as the
// last step, overriding any computed value.
func Build(lines []entity.RateLine) entity.RateTable {
	pivot := 1.0

	for _, line := range lines {
		if strings.EqualFold(line.ID, entity.BaseCurrency) && line.PrimaryValue != 0 {
			pivot = line.PrimaryValue
			break
		}
	}

	table := make(entity.RateTable, len(lines)+len(aliases))

	for _, line := range lines {
		if line.PrimaryValue == 0 {
			continue
		}

		table[strings.ToLower(line.ID)] = line.PrimaryValue / pivot
	}

	for feedID, tradeID := range aliases {
		if v, ok := table[feedID]; ok {
			table[tradeID] = v
		}
	}

	table[entity.BaseCurrency] = 1

	return table
}

// Fallback is the degraded-mode table used when the feed cannot be fetched or
// parsed. Callers continue with an impoverished but non-empty table.
func Fallback() entity.RateTable {
	return entity.RateTable{
		"chaos":   1,
		"exalted": 10,
		"divine":  100,
		"mirror":  10000,
	}
}

// Entry is one row of the rates listing, most valuable first.
type Entry struct {
	ID          string
	DisplayName string
	Value       float64
}

// The listing view hides dust currencies below this value.
const listingMinValue = 0.1

// Listing flattens the table for display: sorted by value descending, dust
// filtered out. The full table stays untouched for valuation.
func Listing(table entity.RateTable) []Entry {
	entries := make([]Entry, 0, len(table))

	for id, value := range table {
		if value < listingMinValue {
			continue
		}

		entries = append(entries, Entry{
			ID:          id,
			DisplayName: displayName(id),
			Value:       value,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}

		return entries[i].ID < entries[j].ID
	})

	return entries
}

func displayName(id string) string {
	if id == "" {
		return ""
	}

	return strings.ToUpper(id[:1]) + id[1:]
}
