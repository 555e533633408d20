package config

import "time"

type Dashboard struct {
	Account             string        `env:"DASHBOARD_ACCOUNT"`
	League              string        `env:"DASHBOARD_LEAGUE"`
	Realm               string        `env:"DASHBOARD_REALM" envDefault:"poe2"`
	StaleThresholdHours int           `env:"DASHBOARD_STALE_THRESHOLD_HOURS" envDefault:"12"`
	ListingTTL          time.Duration `env:"DASHBOARD_LISTING_TTL" envDefault:"3m"`
	SalesTTL            time.Duration `env:"DASHBOARD_SALES_TTL" envDefault:"5m"`
	RefreshInterval     time.Duration `env:"DASHBOARD_REFRESH_INTERVAL" envDefault:"0"`
}
