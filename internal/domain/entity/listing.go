package entity

import (
	"fmt"
	"math"
	"time"
)

// Price describes how (and for how much) a listing is offered. Amount and
// Currency are either both set or both empty; the empty pair means the listing
// is unpriced.
type Price struct {
	Type     SaleType
	Amount   float64
	Currency string
}

func (p Price) IsSet() bool {
	return p.Amount > 0 && p.Currency != ""
}

func (p Price) String() string {
	if !p.IsSet() {
		return "no price"
	}

	return fmt.Sprintf("%g %s", p.Amount, p.Currency)
}

// StashPlacement is the container position of a listing. X and Y are the raw
// 0-indexed grid cell as delivered by the trade API, nil when the API omits
// the coordinate.
type StashPlacement struct {
	Tab  string
	Kind string
	X    *int
	Y    *int
}

// Listing is one marketplace entry of the account.
type Listing struct {
	ID       string
	Name     string
	TypeLine string
	Icon     string
	Width    int
	Height   int
	Price    Price
	Indexed  time.Time
	Stash    *StashPlacement
}

func (l Listing) DisplayName() string {
	if l.Name != "" {
		return l.Name
	}

	return l.TypeLine
}

// AgeHours is the listing age in whole hours, rounded up.
func (l Listing) AgeHours(now time.Time) int {
	return int(math.Ceil(now.Sub(l.Indexed).Hours()))
}
