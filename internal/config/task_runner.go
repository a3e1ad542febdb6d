package config

type TaskRunner struct {
	URI string `env:"URI,expand" envDefault:"memory://?parallelism=4&cleanupDelay=1h&cleanupInterval=10m"`
}
