package rates_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"stashboard/internal/domain/entity"
	"stashboard/internal/domain/service/rates"
)

func TestBuild(t *testing.T) {
	rq := require.New(t)

	table := rates.Build([]entity.RateLine{
		{ID: "chaos", PrimaryValue: 1},
		{ID: "divine", PrimaryValue: 150},
		{ID: "gcp", PrimaryValue: 2.5},
		{ID: "transmute", PrimaryValue: 0.05},
		{ID: "scrap", PrimaryValue: 0},
	})

	rq.Equal(1.0, table.Rate("chaos"))
	rq.Equal(150.0, table.Rate("divine"))

	// Zero-valued lines never make it into the table.
	rq.Equal(0.0, table.Rate("scrap"))

	// Feed spellings and trade API spellings both resolve.
	rq.Equal(2.5, table.Rate("gcp"))
	rq.Equal(2.5, table.Rate("gemcutter"))
	rq.Equal(0.05, table.Rate("transmute"))
	rq.Equal(0.05, table.Rate("transmutation"))
}

func TestBuildPivot(t *testing.T) {
	rq := require.New(t)

	// Feed denominated in divines: chaos line carries the pivot.
	table := rates.Build([]entity.RateLine{
		{ID: "chaos", PrimaryValue: 0.005},
		{ID: "divine", PrimaryValue: 1},
		{ID: "exalted", PrimaryValue: 0.05},
	})

	rq.Equal(1.0, table.Rate("chaos"))
	rq.Equal(200.0, table.Rate("divine"))
	rq.Equal(10.0, table.Rate("exalted"))
}

func TestBuildMissingPivot(t *testing.T) {
	rq := require.New(t)

	// No chaos line: pivot degrades to 1 and chaos is still forced in.
	table := rates.Build([]entity.RateLine{
		{ID: "divine", PrimaryValue: 150},
	})

	rq.Equal(1.0, table.Rate("chaos"))
	rq.Equal(150.0, table.Rate("divine"))
}

func TestFallback(t *testing.T) {
	rq := require.New(t)

	table := rates.Fallback()

	rq.Equal(1.0, table.Rate("chaos"))
	rq.Equal(10.0, table.Rate("exalted"))
	rq.Equal(100.0, table.Rate("divine"))
	rq.Equal(10000.0, table.Rate("mirror"))
	rq.Len(table, 4)
}

func TestChaosValue(t *testing.T) {
	rq := require.New(t)

	table := rates.Fallback()

	rq.Equal(0.0, table.ChaosValue(0, "chaos"))
	rq.Equal(5.0, table.ChaosValue(5, "chaos"))
	rq.Equal(0.0, table.ChaosValue(5, ""))
	rq.Equal(0.0, table.ChaosValue(3, "unknown-orb"))
	rq.Equal(300.0, table.ChaosValue(3, "Divine"))
}

func TestTier(t *testing.T) {
	rq := require.New(t)

	table := entity.RateTable{
		"chaos":   1,
		"exalted": 10,
		"divine":  100,
	}

	testCases := []struct {
		name     string
		amount   float64
		currency string
		tier     entity.PriceTier
	}{
		{name: "High chaos value", amount: 120, currency: "chaos", tier: entity.TierS},
		{name: "Premium currency marker", amount: 1, currency: "divine", tier: entity.TierS},
		{name: "Mirror marker without rate", amount: 1, currency: "mirror", tier: entity.TierS},
		{name: "Mid value", amount: 20, currency: "chaos", tier: entity.TierA},
		{name: "High marker", amount: 1, currency: "exalted", tier: entity.TierA},
		{name: "Low value", amount: 5, currency: "chaos", tier: entity.TierB},
		{name: "Dust", amount: 1, currency: "chaos", tier: entity.TierC},
		{name: "Unpriced", amount: 0, currency: "", tier: entity.TierC},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			rq.Equal(tc.tier, table.Tier(tc.amount, tc.currency))
		})
	}
}

func TestListing(t *testing.T) {
	rq := require.New(t)

	table := entity.RateTable{
		"chaos":  1,
		"divine": 150,
		"wisdom": 0.01,
	}

	entries := rates.Listing(table)

	rq.Len(entries, 2)
	rq.Equal("divine", entries[0].ID)
	rq.Equal("Divine", entries[0].DisplayName)
	rq.Equal("chaos", entries[1].ID)
}
