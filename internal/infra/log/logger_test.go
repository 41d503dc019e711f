package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLevels(t *testing.T) {
	if got := New(&bytes.Buffer{}, "dev").GetLevel(); got != zerolog.DebugLevel {
		t.Fatalf("dev: ожидали debug, получили %s", got)
	}
	if got := New(&bytes.Buffer{}, "prod").GetLevel(); got != zerolog.InfoLevel {
		t.Fatalf("prod: ожидали info, получили %s", got)
	}
}

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "prod")
	logger.Debug().Msg("скрыто")
	logger.Info().Str("component", "test").Msg("api: старт")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("ожидали одну JSON-запись: %v (%s)", err, buf.String())
	}
	if entry["message"] != "api: старт" || entry["component"] != "test" || entry["env"] != "prod" {
		t.Fatalf("неожиданная запись: %v", entry)
	}
	if _, ok := entry["time"]; !ok {
		t.Fatal("ожидали поле time")
	}
}
