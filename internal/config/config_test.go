package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")

	content := "CHATTEN_LOGGER_LEVEL=DEBUG\nCHATTEN_CACHE_DOCUMENTS_SIZE=2\nCHATTEN_AGENT_ENDPOINT=from-file\n"
	if err := os.WriteFile(dotenv, []byte(content), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	t.Setenv("CHATTEN_AGENT_ENDPOINT", "from-env")

	// Variables loaded from the dotenv file are not restored by the test runtime
	t.Cleanup(func() {
		os.Unsetenv("CHATTEN_LOGGER_LEVEL")
		os.Unsetenv("CHATTEN_CACHE_DOCUMENTS_SIZE")
	})

	conf, err := Parse(dotenv, filepath.Join(dir, "missing.env"))
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := slog.LevelDebug, conf.Logger.Level; e != g {
		t.Errorf("conf.Logger.Level: expected '%v', got '%v'", e, g)
	}

	if e, g := 2, conf.Cache.Documents.Size; e != g {
		t.Errorf("conf.Cache.Documents.Size: expected %d, got %d", e, g)
	}

	if e, g := "from-env", conf.Agent.Endpoint; e != g {
		t.Errorf("conf.Agent.Endpoint: expected '%s', got '%s'", e, g)
	}

	if e, g := time.Hour, conf.Cache.Documents.TTL; e != g {
		t.Errorf("conf.Cache.Documents.TTL: expected '%v', got '%v'", e, g)
	}

	if e, g := 2*time.Minute, conf.Cache.Responses.TTL; e != g {
		t.Errorf("conf.Cache.Responses.TTL: expected '%v', got '%v'", e, g)
	}

	if e, g := 10, conf.Cache.Documents.Preload; e != g {
		t.Errorf("conf.Cache.Documents.Preload: expected %d, got %d", e, g)
	}

	if e, g := "raw_docs", conf.Storage.DocsPath; e != g {
		t.Errorf("conf.Storage.DocsPath: expected '%s', got '%s'", e, g)
	}

	if e, g := 250, conf.Agent.MaxTokens; e != g {
		t.Errorf("conf.Agent.MaxTokens: expected %d, got %d", e, g)
	}

	if e, g := []string{"*"}, conf.HTTP.AllowedOrigins; len(g) != 1 || g[0] != e[0] {
		t.Errorf("conf.HTTP.AllowedOrigins: expected %v, got %v", e, g)
	}
}
