package config

type HTTP struct {
	ListenAddress        string `env:"HTTP_LISTEN_ADDRESS" envDefault:":8080"`
	ProbeListenAddress   string `env:"PROBE_LISTEN_ADDRESS" envDefault:":8091"`
	MetricsListenAddress string `env:"METRICS_LISTEN_ADDRESS" envDefault:":9090"`
	LogDumps             bool   `env:"HTTP_LOG_DUMPS" envDefault:"false"`
}
