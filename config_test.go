package niceid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paraglidehq/niceid/alphabet"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvSecret, EnvCharacters, EnvMinLength} {
		t.Setenv(k, "")
	}
}

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_UsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, DefaultSecret, cfg.Secret)
	assert.Equal(t, alphabet.DefaultCharacters, cfg.Characters)
	assert.Equal(t, DefaultMinLength, cfg.MinLength)
}

func TestLoadConfig_ReadsEnv(t *testing.T) {
	t.Setenv(EnvSecret, "from env")
	t.Setenv(EnvCharacters, "0123456789abcdef")
	t.Setenv(EnvMinLength, "8")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, Config{Secret: "from env", Characters: "0123456789abcdef", MinLength: 8}, cfg)
}

func TestLoadConfig_ReadsFiles(t *testing.T) {
	clearEnv(t)
	path := writeEnvFile(t, "NICEID_SECRET=from file\nNICEID_MIN_LENGTH=3\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from file", cfg.Secret)
	assert.Equal(t, 3, cfg.MinLength)
	assert.Equal(t, alphabet.DefaultCharacters, cfg.Characters)

	_, set := os.LookupEnv("NICEID_SECRET")
	assert.True(t, set)
	assert.Equal(t, "", os.Getenv("NICEID_SECRET"), "reading files must not touch the environment")
}

func TestLoadConfig_EnvOverridesFiles(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvSecret, "from env")
	path := writeEnvFile(t, "NICEID_SECRET=from file\nNICEID_CHARACTERS=01\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from env", cfg.Secret)
	assert.Equal(t, "01", cfg.Characters)
}

func TestLoadConfig_Errors(t *testing.T) {
	clearEnv(t)

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv(EnvMinLength, "five")
	_, err = LoadConfig()
	assert.True(t, errors.Is(err, ErrConfig), "got %v", err)
}

func TestConfig_Encoder(t *testing.T) {
	cfg := Config{Secret: "cfg", Characters: "0123456789abcdef", MinLength: 6}
	e, err := cfg.Encoder()
	require.NoError(t, err)
	assert.Equal(t, cfg, ConfigOf(e))

	s, err := e.Encode(4096)
	require.NoError(t, err)
	got, err := e.Decode(s)
	require.NoError(t, err)
	assert.Equal(t, int64(4096), got)

	_, err = Config{Secret: "cfg", Characters: "a", MinLength: 5}.Encoder()
	assert.ErrorIs(t, err, ErrConfig)

	_, err = Config{Secret: "cfg", Characters: "ab", MinLength: -2}.Encoder()
	assert.ErrorIs(t, err, ErrConfig)
}
