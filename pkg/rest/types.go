package rest

// DashboardRequest scopes one dashboard computation. The threshold is
// optional and defaults server-side.
type DashboardRequest struct {
	Account             string `json:"account"             validate:"required"`
	League              string `json:"league"              validate:"required"`
	Realm               string `json:"realm"               validate:"required"`
	StaleThresholdHours int    `json:"staleThresholdHours" validate:"omitempty,gt=0"`
}

type Dashboard struct {
	Account         string         `json:"account"`
	League          string         `json:"league"`
	Realm           string         `json:"realm"`
	ThresholdHours  int            `json:"thresholdHours"`
	TotalListings   int            `json:"totalListings"`
	FetchedAt       string         `json:"fetchedAt"`
	CacheAgeSeconds int            `json:"cacheAgeSeconds"`
	Stale           []StaleGroup   `json:"stale"`
	Revenue         []RevenueGroup `json:"revenue"`
	Tabs            []Tab          `json:"tabs"`
}

type StaleGroup struct {
	SaleType string         `json:"saleType"`
	Label    string         `json:"label"`
	Listings []StaleListing `json:"listings"`
}

type StaleListing struct {
	Name       string  `json:"name"`
	TypeLine   string  `json:"typeLine,omitempty"`
	Icon       string  `json:"icon,omitempty"`
	Price      string  `json:"price"`
	ChaosValue float64 `json:"chaosValue"`
	AgeHours   int     `json:"ageHours"`
	Tab        string  `json:"tab"`
	Coords     string  `json:"coords"`
	Tier       string  `json:"tier"`
}

type RevenueGroup struct {
	SaleType   string          `json:"saleType"`
	Label      string          `json:"label"`
	Count      int             `json:"count"`
	TotalChaos float64         `json:"totalChaos"`
	Currencies []CurrencyTotal `json:"currencies"`
}

type CurrencyTotal struct {
	Currency  string  `json:"currency"`
	Amount    float64 `json:"amount"`
	UnitValue float64 `json:"unitValue"`
	Tier      string  `json:"tier"`
}

type Tab struct {
	Name  string    `json:"name"`
	Kind  string    `json:"kind"`
	Quad  bool      `json:"quad"`
	Items []TabItem `json:"items"`
}

type TabItem struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Icon       string  `json:"icon,omitempty"`
	Name       string  `json:"name"`
	Price      string  `json:"price"`
	ChaosValue float64 `json:"chaosValue"`
	AgeHours   int     `json:"ageHours"`
	Heat       string  `json:"heat"`
}

type SalesSummary struct {
	League           string  `json:"league"`
	TotalTrades      int     `json:"totalTrades"`
	TotalChaosIncome float64 `json:"totalChaosIncome"`
	HoursElapsed     float64 `json:"hoursElapsed"`
	ChaosPerHour     float64 `json:"chaosPerHour"`
	FetchedAt        string  `json:"fetchedAt"`
	CacheAgeSeconds  int     `json:"cacheAgeSeconds"`
	Recent           []Sale  `json:"recent"`
}

type Sale struct {
	Name       string  `json:"name"`
	TypeLine   string  `json:"typeLine,omitempty"`
	Icon       string  `json:"icon,omitempty"`
	Buyer      string  `json:"buyer,omitempty"`
	Price      string  `json:"price"`
	ChaosValue float64 `json:"chaosValue"`
	Tier       string  `json:"tier"`
	Time       string  `json:"time"`
	TimeAgo    string  `json:"timeAgo"`
}

type Rate struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	ChaosValue  float64 `json:"chaosValue"`
}

// Error is the uniform error envelope.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	SupportID string    `json:"supportId"`
}

type ErrorCode string
