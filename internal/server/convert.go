package server

import (
	"time"

	"stashboard/internal/domain/service/dashboard"
	"stashboard/internal/domain/service/rates"
	"stashboard/pkg/lox"
	"stashboard/pkg/rest"
)

func newRESTDashboard(
	query dashboard.Query,
	overview dashboard.Overview,
	fetchedAt time.Time,
	now time.Time,
) rest.Dashboard {
	return rest.Dashboard{
		Account:         query.Account,
		League:          query.League,
		Realm:           query.Realm,
		ThresholdHours:  overview.ThresholdHours,
		TotalListings:   overview.TotalListings,
		FetchedAt:       fetchedAt.UTC().Format(time.RFC3339),
		CacheAgeSeconds: cacheAge(fetchedAt, now),
		Stale:           lox.Map(overview.Stale, newRESTStaleGroup),
		Revenue:         lox.Map(overview.Revenue, newRESTRevenueGroup),
		Tabs:            lox.Map(overview.Tabs, newRESTTab),
	}
}

func newRESTStaleGroup(group dashboard.StaleGroup) rest.StaleGroup {
	return rest.StaleGroup{
		SaleType: string(group.Type),
		Label:    group.Type.DisplayName(),
		Listings: lox.Map(group.Listings, newRESTStaleListing),
	}
}

func newRESTStaleListing(listing dashboard.StaleListing) rest.StaleListing {
	name := listing.Name
	if name == "" {
		name = listing.TypeLine
	}

	return rest.StaleListing{
		Name:       name,
		TypeLine:   listing.TypeLine,
		Icon:       listing.Icon,
		Price:      listing.Price.String(),
		ChaosValue: listing.ChaosValue,
		AgeHours:   listing.AgeHours,
		Tab:        listing.Tab,
		Coords:     listing.Coords,
		Tier:       string(listing.Tier),
	}
}

func newRESTRevenueGroup(group dashboard.RevenueGroup) rest.RevenueGroup {
	return rest.RevenueGroup{
		SaleType:   string(group.Type),
		Label:      group.Type.DisplayName(),
		Count:      group.Count,
		TotalChaos: group.TotalChaos,
		Currencies: lox.Map(group.Currencies, newRESTCurrencyTotal),
	}
}

func newRESTCurrencyTotal(total dashboard.CurrencyTotal) rest.CurrencyTotal {
	return rest.CurrencyTotal{
		Currency:  total.Currency,
		Amount:    total.Amount,
		UnitValue: total.UnitValue,
		Tier:      string(total.Tier),
	}
}

func newRESTTab(tab dashboard.Tab) rest.Tab {
	return rest.Tab{
		Name:  tab.Name,
		Kind:  tab.Kind,
		Quad:  tab.Quad,
		Items: lox.Map(tab.Items, newRESTTabItem),
	}
}

func newRESTTabItem(item dashboard.TabItem) rest.TabItem {
	return rest.TabItem{
		X:          item.X,
		Y:          item.Y,
		Width:      item.Width,
		Height:     item.Height,
		Icon:       item.Icon,
		Name:       item.Name,
		Price:      item.Price,
		ChaosValue: item.ChaosValue,
		AgeHours:   item.AgeHours,
		Heat:       string(item.Heat),
	}
}

func newRESTSalesSummary(
	league string,
	summary dashboard.SalesSummary,
	fetchedAt time.Time,
	now time.Time,
) rest.SalesSummary {
	return rest.SalesSummary{
		League:           league,
		TotalTrades:      summary.TotalTrades,
		TotalChaosIncome: summary.TotalChaosIncome,
		HoursElapsed:     summary.HoursElapsed,
		ChaosPerHour:     summary.ChaosPerHour,
		FetchedAt:        fetchedAt.UTC().Format(time.RFC3339),
		CacheAgeSeconds:  cacheAge(fetchedAt, now),
		Recent:           lox.Map(summary.Recent, newRESTSale),
	}
}

func newRESTSale(sale dashboard.SaleView) rest.Sale {
	name := sale.Name
	if name == "" {
		name = sale.TypeLine
	}

	return rest.Sale{
		Name:       name,
		TypeLine:   sale.TypeLine,
		Icon:       sale.Icon,
		Buyer:      sale.Buyer,
		Price:      sale.Price.String(),
		ChaosValue: sale.ChaosValue,
		Tier:       string(sale.Tier),
		Time:       sale.Time.UTC().Format(time.RFC3339),
		TimeAgo:    sale.TimeAgo,
	}
}

func newRESTRates(entries []rates.Entry) []rest.Rate {
	return lox.Map(entries, func(entry rates.Entry) rest.Rate {
		return rest.Rate{
			ID:          entry.ID,
			DisplayName: entry.DisplayName,
			ChaosValue:  entry.Value,
		}
	})
}

func cacheAge(fetchedAt, now time.Time) int {
	if fetchedAt.IsZero() || now.Before(fetchedAt) {
		return 0
	}

	return int(now.Sub(fetchedAt).Seconds())
}
