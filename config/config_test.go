package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleINI = `
root_key = hello

[database]
host = db.example.com
port = 3306
enabled = yes
ratio = 0.75
`

func TestConfig(t *testing.T) {
	cfg, err := Parse([]byte(sampleINI))
	require.NoError(t, err)

	t.Run("sections", func(t *testing.T) {
		assert.True(t, cfg.HasSection("database"))
		assert.False(t, cfg.HasSection("missing"))
		assert.True(t, cfg.HasKey("", "root_key"))
	})

	t.Run("typed accessors", func(t *testing.T) {
		assert.Equal(t, "db.example.com", cfg.String("database", "host", "fallback"))
		assert.Equal(t, 3306, cfg.Int("database", "port", 0))
		assert.True(t, cfg.Bool("database", "enabled", false))
		assert.Equal(t, 0.75, cfg.Float("database", "ratio", 0))
	})

	t.Run("fallbacks for missing keys", func(t *testing.T) {
		assert.Equal(t, "dflt", cfg.String("database", "nope", "dflt"))
		assert.Equal(t, 9, cfg.Int("missing", "port", 9))
		assert.True(t, cfg.Bool("database", "nope", true))
	})
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("[unclosed"))
	assert.Error(t, err)
}
