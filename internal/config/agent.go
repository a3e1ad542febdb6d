package config

type Agent struct {
	// OpenAI compatible base url of the serving endpoint
	BaseURL string `env:"BASE_URL,expand" envDefault:"http://localhost:8080/v1"`
	Token   string `env:"TOKEN,expand"`
	// Name of the served agent
	Endpoint  string `env:"ENDPOINT,expand" envDefault:"chatten-agent"`
	MaxTokens int    `env:"MAX_TOKENS,expand" envDefault:"250"`
}
