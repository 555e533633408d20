package config

type Ninja struct {
	BaseURL string `env:"NINJA_BASE_URL" envDefault:"https://poe.ninja/poe2/api/economy"`
}
