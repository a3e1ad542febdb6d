package config

import "time"

type Cache struct {
	Documents DocumentCache `envPrefix:"DOCUMENTS_"`
	Responses ResponseMemo  `envPrefix:"RESPONSES_"`
}

type DocumentCache struct {
	Size        int           `env:"SIZE,expand" envDefault:"100"`
	TTL         time.Duration `env:"TTL,expand" envDefault:"1h"`
	WaitTimeout time.Duration `env:"WAIT_TIMEOUT,expand" envDefault:"1500ms"`
	ChunkSize   int           `env:"CHUNK_SIZE,expand" envDefault:"65536"`
	// Number of documents prefetched when the server starts
	Preload int `env:"PRELOAD,expand" envDefault:"10"`
}

type ResponseMemo struct {
	Size int           `env:"SIZE,expand" envDefault:"100"`
	TTL  time.Duration `env:"TTL,expand" envDefault:"2m"`
}
