package trade

import (
	"time"

	"stashboard/internal/domain/entity"
)

// Wire shapes of the trade API. The search body reproduces the query the
// site's own UI sends for "everything this account has listed, cheapest
// first".

type searchRequest struct {
	Query searchQuery `json:"query"`
	Sort  searchSort  `json:"sort"`
}

type searchQuery struct {
	Status  statusFilter  `json:"status"`
	Stats   []statGroup   `json:"stats"`
	Filters searchFilters `json:"filters"`
}

type statusFilter struct {
	Option string `json:"option"`
}

type statGroup struct {
	Type    string `json:"type"`
	Filters []any  `json:"filters"`
}

type searchFilters struct {
	TradeFilters tradeFilters `json:"trade_filters"`
}

type tradeFilters struct {
	Filters accountFilter `json:"filters"`
}

type accountFilter struct {
	Account accountInput `json:"account"`
}

type accountInput struct {
	Input string `json:"input"`
}

type searchSort struct {
	Price string `json:"price"`
}

func newSearchRequest(account string) searchRequest {
	return searchRequest{
		Query: searchQuery{
			Status: statusFilter{Option: "any"},
			Stats:  []statGroup{{Type: "and", Filters: []any{}}},
			Filters: searchFilters{
				TradeFilters: tradeFilters{
					Filters: accountFilter{
						Account: accountInput{Input: account},
					},
				},
			},
		},
		Sort: searchSort{Price: "asc"},
	}
}

type searchResponse struct {
	Total  int      `json:"total"`
	ID     string   `json:"id"`
	Result []string `json:"result"`
}

type fetchResponse struct {
	Result []listingPayload `json:"result"`
}

type listingPayload struct {
	ID      string         `json:"id"`
	Item    itemPayload    `json:"item"`
	Listing listingDetails `json:"listing"`
}

type itemPayload struct {
	Name        string `json:"name"`
	TypeLine    string `json:"typeLine"`
	Icon        string `json:"icon"`
	Width       int    `json:"w"`
	Height      int    `json:"h"`
	InventoryID string `json:"inventoryId"`
}

type listingDetails struct {
	Indexed time.Time     `json:"indexed"`
	Price   *pricePayload `json:"price"`
	Stash   *stashPayload `json:"stash"`
}

type pricePayload struct {
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

type stashPayload struct {
	Name string `json:"name"`
	X    *int   `json:"x"`
	Y    *int   `json:"y"`
}

type historyResponse struct {
	Result []salePayload `json:"result"`
}

type salePayload struct {
	Time  time.Time    `json:"time"`
	Buyer string       `json:"buyer"`
	Item  itemPayload  `json:"item"`
	Price pricePayload `json:"price"`
}

func (p listingPayload) toEntity(now time.Time) entity.Listing {
	price := entity.Price{Type: entity.SaleTypeUnpriced}

	if p.Listing.Price != nil && p.Listing.Price.Amount > 0 {
		saleType := entity.ParseSaleType(p.Listing.Price.Type)
		if saleType == entity.SaleTypeUnpriced {
			// Priced listing with no recognizable sale type.
			saleType = entity.SaleTypeUnknown
		}

		price = entity.Price{
			Type:     saleType,
			Amount:   p.Listing.Price.Amount,
			Currency: p.Listing.Price.Currency,
		}
	}

	indexed := p.Listing.Indexed
	if indexed.IsZero() {
		indexed = now
	}

	var stash *entity.StashPlacement

	if p.Listing.Stash != nil && p.Listing.Stash.Name != "" {
		kind := p.Item.InventoryID
		if kind == "" {
			kind = "StashInventory"
		}

		stash = &entity.StashPlacement{
			Tab:  p.Listing.Stash.Name,
			Kind: kind,
			X:    p.Listing.Stash.X,
			Y:    p.Listing.Stash.Y,
		}
	}

	return entity.Listing{
		ID:       p.ID,
		Name:     p.Item.Name,
		TypeLine: p.Item.TypeLine,
		Icon:     p.Item.Icon,
		Width:    p.Item.Width,
		Height:   p.Item.Height,
		Price:    price,
		Indexed:  indexed,
		Stash:    stash,
	}
}

func (p salePayload) toEntity() entity.SaleRecord {
	return entity.SaleRecord{
		Time:     p.Time,
		Buyer:    p.Buyer,
		Name:     p.Item.Name,
		TypeLine: p.Item.TypeLine,
		Icon:     p.Item.Icon,
		Price: entity.Price{
			Type:     entity.ParseSaleType(p.Price.Type),
			Amount:   p.Price.Amount,
			Currency: p.Price.Currency,
		},
	}
}
