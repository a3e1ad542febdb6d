package config

import (
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const Prefix = "CHATTEN_"

type Config struct {
	Logger     Logger     `envPrefix:"LOGGER_"`
	HTTP       HTTP       `envPrefix:"HTTP_"`
	Storage    Storage    `envPrefix:"STORAGE_"`
	Cache      Cache      `envPrefix:"CACHE_"`
	Agent      Agent      `envPrefix:"AGENT_"`
	TaskRunner TaskRunner `envPrefix:"TASK_RUNNER_"`
}

// Parse loads the given dotenv files, if they exist, and reads the
// configuration from the environment. Variables already set in the
// environment take precedence over the files.
func Parse(dotenvFiles ...string) (*Config, error) {
	for _, filename := range dotenvFiles {
		if err := godotenv.Load(filename); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, errors.Wrapf(err, "could not load '%s'", filename)
		}
	}

	conf, err := env.ParseAsWithOptions[Config](env.Options{
		Prefix: Prefix,
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return &conf, nil
}

// DefaultDotenvFiles returns the dotenv files loaded by the commands, the one
// designated by CHATTEN_DOTENV or .env in the working directory.
func DefaultDotenvFiles() []string {
	if filename := os.Getenv(Prefix + "DOTENV"); filename != "" {
		return []string{filename}
	}

	return []string{".env"}
}
