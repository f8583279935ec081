package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/store-rating/internal/config"
)

func TestProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, config.Config{Env: "production", LogLevel: "warn"})

	log.Info().Msg("dropped")
	log.Warn().Msg("kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "kept", line["message"])
	assert.Equal(t, "store-rating", line["service"])
}

func TestDevelopmentWritesConsole(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(&buf, config.Config{Env: "dev", LogLevel: "bogus"})

	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())
	log.Info().Msg("hello")
	assert.Contains(t, buf.String(), "hello")
	assert.False(t, json.Valid(buf.Bytes()))
}
