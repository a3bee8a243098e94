package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-addressbook/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"StoreFileName", config.StoreFileName},
		{"ICalProdid", config.ICalProdid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 10, config.PhoneLength)
	assert.Equal(t, "02.01.2006", config.DateFormatBirthday)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-AddressBook/"))
}

// isolate points the user config dir to an empty temp dir so a developer's
// real configuration never leaks into the tests.
func isolate(t *testing.T) string {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	s, err := config.Load(nil)
	require.NoError(t, err)

	assert.Equal(t, config.DefaultLanguage, s.Language)
	assert.Equal(t, config.DefaultStorePath(), s.StorePath)
	assert.False(t, s.NoColor)
	assert.False(t, s.Debug)
	assert.False(t, s.ShowVersion)
}

func TestLoad_Precedence(t *testing.T) {
	dir := isolate(t)

	cfgFile := filepath.Join(dir, "custom.yaml")
	content := "store_path: /from/file.cbor\nlanguage: uk\nimport_user: alice\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(content), 0600))

	t.Run("File", func(t *testing.T) {
		s, err := config.Load([]string{"--config", cfgFile})
		require.NoError(t, err)
		assert.Equal(t, "/from/file.cbor", s.StorePath)
		assert.Equal(t, "uk", s.Language)
		assert.Equal(t, "alice", s.ImportUser)
	})

	t.Run("Env overrides file", func(t *testing.T) {
		t.Setenv("ADDRESSBOOK_STORE_PATH", "/from/env.cbor")
		s, err := config.Load([]string{"--config", cfgFile})
		require.NoError(t, err)
		assert.Equal(t, "/from/env.cbor", s.StorePath)
	})

	t.Run("Flag overrides env", func(t *testing.T) {
		t.Setenv("ADDRESSBOOK_STORE_PATH", "/from/env.cbor")
		s, err := config.Load([]string{"--config", cfgFile, "--store", "/from/flag.cbor", "--no-color", "--version"})
		require.NoError(t, err)
		assert.Equal(t, "/from/flag.cbor", s.StorePath)
		assert.True(t, s.NoColor)
		assert.True(t, s.ShowVersion)
	})
}

func TestLoad_UnsupportedLanguageFallsBack(t *testing.T) {
	isolate(t)

	s, err := config.Load([]string{"--lang", "xx"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultLanguage, s.Language)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := config.Load([]string{"--no-such-flag"})
	assert.ErrorContains(t, err, config.ErrFlagParse)

	_, err = config.Load([]string{"--config", "/does/not/exist.yaml"})
	assert.ErrorContains(t, err, config.ErrConfigRead)
}
