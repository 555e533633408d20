package dashboard

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/samber/lo"

	"stashboard/internal/domain/entity"
)

// Overview is everything the presentation layer needs for one render of the
// listings dashboard. Recomputed on every call, never persisted.
type Overview struct {
	ThresholdHours int
	TotalListings  int
	Stale          []StaleGroup
	Revenue        []RevenueGroup
	Tabs           []Tab
}

type StaleGroup struct {
	Type     entity.SaleType
	Listings []StaleListing
}

type StaleListing struct {
	Name       string
	TypeLine   string
	Icon       string
	Price      entity.Price
	ChaosValue float64
	AgeHours   int
	Tab        string
	Coords     string
	Tier       entity.PriceTier
}

type RevenueGroup struct {
	Type       entity.SaleType
	Count      int
	TotalChaos float64
	Currencies []CurrencyTotal
}

type CurrencyTotal struct {
	Currency  string
	Amount    float64
	UnitValue float64
	Tier      entity.PriceTier
}

type Tab struct {
	Name  string
	Kind  string
	Quad  bool
	Items []TabItem
}

type TabItem struct {
	X          int
	Y          int
	Width      int
	Height     int
	Icon       string
	Name       string
	Price      string
	ChaosValue float64
	AgeHours   int
	Heat       HeatLevel
}

// HeatLevel colors an occupancy cell: stale dominates, otherwise value bands
// relative to the divine rate.
type HeatLevel string

const (
	HeatNone      HeatLevel = "none"
	HeatValuable1 HeatLevel = "valuable-1"
	HeatValuable2 HeatLevel = "valuable-2"
	HeatValuable3 HeatLevel = "valuable-3"
	HeatValuable4 HeatLevel = "valuable-4"
	HeatStale     HeatLevel = "stale"
)

// Used when the rate table has no divine entry to anchor the heat bands.
const defaultDivineValue = 200

// Closed ordering of sale types for deterministic group iteration where no
// value-based ordering is specified.
var saleTypeOrder = []entity.SaleType{ //nolint:gochecknoglobals
	entity.SaleTypeInstant,
	entity.SaleTypeBuyout,
	entity.SaleTypeFixed,
	entity.SaleTypeUnpriced,
	entity.SaleTypeUnknown,
}

func saleTypeRank(t entity.SaleType) int {
	for i, candidate := range saleTypeOrder {
		if candidate == t {
			return i
		}
	}

	return len(saleTypeOrder)
}

// buildOverview classifies and rolls up the listing set in a single pass,
// then applies the fixed orderings so the output is reproducible.
func buildOverview(
	listings []entity.Listing,
	thresholdHours int,
	table entity.RateTable,
	now time.Time,
) Overview {
	staleGroups := map[entity.SaleType][]StaleListing{}
	revenue := map[entity.SaleType]*RevenueGroup{}
	currencySums := map[entity.SaleType]map[string]float64{}
	tabs := map[string]*Tab{}

	divineValue := table.Rate("divine")
	if divineValue == 0 {
		divineValue = defaultDivineValue
	}

	for _, listing := range listings {
		chaosValue := table.ChaosValue(listing.Price.Amount, listing.Price.Currency)
		ageHours := listing.AgeHours(now)
		saleType := listing.Price.Type

		// Unpriced listings carry no revenue but still count for staleness
		// and placement.
		if listing.Price.IsSet() {
			group, ok := revenue[saleType]
			if !ok {
				group = &RevenueGroup{Type: saleType}
				revenue[saleType] = group
				currencySums[saleType] = map[string]float64{}
			}

			group.Count++
			group.TotalChaos += chaosValue
			currencySums[saleType][listing.Price.Currency] += listing.Price.Amount
		}

		if ageHours >= thresholdHours {
			staleGroups[saleType] = append(staleGroups[saleType], StaleListing{
				Name:       listing.Name,
				TypeLine:   listing.TypeLine,
				Icon:       listing.Icon,
				Price:      listing.Price,
				ChaosValue: chaosValue,
				AgeHours:   ageHours,
				Tab:        tabName(listing.Stash),
				Coords:     coords(listing.Stash),
				Tier:       table.Tier(listing.Price.Amount, listing.Price.Currency),
			})
		}

		if listing.Stash != nil {
			tab, ok := tabs[listing.Stash.Tab]
			if !ok {
				tab = &Tab{
					Name: listing.Stash.Tab,
					Kind: listing.Stash.Kind,
					Quad: isQuad(listing.Stash.Kind),
				}
				tabs[listing.Stash.Tab] = tab
			}

			tab.Items = append(tab.Items, TabItem{
				X:          cell(listing.Stash.X),
				Y:          cell(listing.Stash.Y),
				Width:      listing.Width,
				Height:     listing.Height,
				Icon:       listing.Icon,
				Name:       listing.DisplayName(),
				Price:      listing.Price.String(),
				ChaosValue: chaosValue,
				AgeHours:   ageHours,
				Heat:       heat(chaosValue, ageHours, thresholdHours, divineValue),
			})
		}
	}

	return Overview{
		ThresholdHours: thresholdHours,
		TotalListings:  len(listings),
		Stale:          orderedStaleGroups(staleGroups),
		Revenue:        orderedRevenueGroups(revenue, currencySums, table),
		Tabs:           orderedTabs(tabs),
	}
}

func tabName(stash *entity.StashPlacement) string {
	if stash == nil || stash.Tab == "" {
		return "Unknown"
	}

	return stash.Tab
}

// coords renders the 1-indexed container position, "?" per missing
// coordinate.
func coords(stash *entity.StashPlacement) string {
	if stash == nil {
		return "?, ?"
	}

	return fmt.Sprintf("%s, %s", coord(stash.X), coord(stash.Y))
}

func coord(v *int) string {
	if v == nil {
		return "?"
	}

	return strconv.Itoa(*v + 1)
}

// cell flattens a possibly-missing coordinate for the occupancy grid, where
// items without a position pile up at the origin.
func cell(v *int) int {
	if v == nil {
		return 0
	}

	return *v
}

func isQuad(kind string) bool {
	return lo.Contains([]string{"QuadStash", "QuadStashInventory"}, kind)
}

func heat(chaosValue float64, ageHours, thresholdHours int, divineValue float64) HeatLevel {
	switch {
	case ageHours >= thresholdHours:
		return HeatStale
	case chaosValue <= 0:
		return HeatNone
	case chaosValue >= divineValue*5:
		return HeatValuable4
	case chaosValue >= divineValue:
		return HeatValuable3
	case chaosValue >= 50:
		return HeatValuable2
	case chaosValue >= 10:
		return HeatValuable1
	default:
		return HeatNone
	}
}

// Stale members sort by descending value, ties by descending age; the groups
// themselves follow the closed sale-type order.
func orderedStaleGroups(groups map[entity.SaleType][]StaleListing) []StaleGroup {
	result := make([]StaleGroup, 0, len(groups))

	for _, saleType := range saleTypeOrder {
		members, ok := groups[saleType]
		if !ok {
			continue
		}

		sort.SliceStable(members, func(i, j int) bool {
			if members[i].ChaosValue != members[j].ChaosValue {
				return members[i].ChaosValue > members[j].ChaosValue
			}

			return members[i].AgeHours > members[j].AgeHours
		})

		result = append(result, StaleGroup{Type: saleType, Listings: members})
	}

	return result
}

// Revenue groups sort by descending total; currencies within a group by the
// descending value of one unit.
func orderedRevenueGroups(
	groups map[entity.SaleType]*RevenueGroup,
	currencySums map[entity.SaleType]map[string]float64,
	table entity.RateTable,
) []RevenueGroup {
	result := make([]RevenueGroup, 0, len(groups))

	for saleType, group := range groups {
		for currency, amount := range currencySums[saleType] {
			group.Currencies = append(group.Currencies, CurrencyTotal{
				Currency:  currency,
				Amount:    amount,
				UnitValue: table.Rate(currency),
				Tier:      table.Tier(1, currency),
			})
		}

		sort.Slice(group.Currencies, func(i, j int) bool {
			if group.Currencies[i].UnitValue != group.Currencies[j].UnitValue {
				return group.Currencies[i].UnitValue > group.Currencies[j].UnitValue
			}

			return group.Currencies[i].Currency < group.Currencies[j].Currency
		})

		result = append(result, *group)
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].TotalChaos != result[j].TotalChaos {
			return result[i].TotalChaos > result[j].TotalChaos
		}

		return saleTypeRank(result[i].Type) < saleTypeRank(result[j].Type)
	})

	return result
}

// Tab names sort lexicographically for stable tab ordering.
func orderedTabs(tabs map[string]*Tab) []Tab {
	names := lo.Keys(tabs)
	sort.Strings(names)

	return lo.Map(names, func(name string, _ int) Tab {
		return *tabs[name]
	})
}
