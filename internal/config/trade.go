package config

import "time"

type Trade struct {
	BaseURL         string        `env:"TRADE_BASE_URL" envDefault:"https://www.pathofexile.com/api/trade2"`
	Origin          string        `env:"TRADE_ORIGIN" envDefault:"https://www.pathofexile.com"`
	SessionID       string        `env:"POESESSID" json:"-"`
	RequestTimeout  time.Duration `env:"TRADE_REQUEST_TIMEOUT" envDefault:"30s"`
	ChunkInterval   time.Duration `env:"TRADE_CHUNK_INTERVAL" envDefault:"650ms"`
	MaxChunkRetries int           `env:"TRADE_MAX_CHUNK_RETRIES" envDefault:"10"`
}
