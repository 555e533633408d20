package dashboard

import (
	"fmt"
	"sort"
	"time"

	"stashboard/internal/domain/entity"
)

// How many trades the itemized section of the summary shows.
const recentSalesLimit = 5

// Floor for the elapsed window so rate math never divides by zero when all
// trades share one timestamp.
const minElapsedHours = 1.0 / 60.0

type SalesSummary struct {
	TotalTrades      int
	TotalChaosIncome float64
	HoursElapsed     float64
	ChaosPerHour     float64
	Recent           []SaleView
}

type SaleView struct {
	Name       string
	TypeLine   string
	Icon       string
	Buyer      string
	Price      entity.Price
	ChaosValue float64
	Tier       entity.PriceTier
	Time       time.Time
	TimeAgo    string
}

// buildSalesSummary totals the complete trade set but itemizes only the most
// recent few entries.
func buildSalesSummary(sales []entity.SaleRecord, table entity.RateTable, now time.Time) SalesSummary {
	summary := SalesSummary{TotalTrades: len(sales)}
	if len(sales) == 0 {
		return summary
	}

	ordered := make([]entity.SaleRecord, len(sales))
	copy(ordered, sales)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Time.After(ordered[j].Time)
	})

	for _, sale := range ordered {
		summary.TotalChaosIncome += table.ChaosValue(sale.Price.Amount, sale.Price.Currency)
	}

	newest, oldest := ordered[0].Time, ordered[len(ordered)-1].Time

	summary.HoursElapsed = newest.Sub(oldest).Hours()
	if summary.HoursElapsed < minElapsedHours {
		summary.HoursElapsed = minElapsedHours
	}

	summary.ChaosPerHour = summary.TotalChaosIncome / summary.HoursElapsed

	limit := recentSalesLimit
	if limit > len(ordered) {
		limit = len(ordered)
	}

	summary.Recent = make([]SaleView, 0, limit)
	for _, sale := range ordered[:limit] {
		summary.Recent = append(summary.Recent, SaleView{
			Name:       sale.Name,
			TypeLine:   sale.TypeLine,
			Icon:       sale.Icon,
			Buyer:      sale.Buyer,
			Price:      sale.Price,
			ChaosValue: table.ChaosValue(sale.Price.Amount, sale.Price.Currency),
			Tier:       table.Tier(sale.Price.Amount, sale.Price.Currency),
			Time:       sale.Time,
			TimeAgo:    timeSince(now, sale.Time),
		})
	}

	return summary
}

// timeSince renders a coarse human interval, largest unit only.
func timeSince(now, t time.Time) string {
	seconds := now.Sub(t).Seconds()
	if seconds < 0 {
		seconds = 0
	}

	intervals := []struct {
		unit    string
		seconds float64
	}{
		{"y", 31536000},
		{"mo", 2592000},
		{"d", 86400},
		{"h", 3600},
		{"m", 60},
	}

	for _, interval := range intervals {
		if count := int(seconds / interval.seconds); count >= 1 {
			return fmt.Sprintf("%d%s ago", count, interval.unit)
		}
	}

	return fmt.Sprintf("%ds ago", int(seconds))
}
