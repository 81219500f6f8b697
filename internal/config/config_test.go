package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		configPathEnv, databasePathEnv, httpAddrEnv,
		openAIAPIKeyEnv, openAIModelEnv, cohereAPIKeyEnv, cohereModelEnv,
		targetLanguageEnv, logLevelEnv,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	require.Equal(t, "curator.db", cfg.Database.Path)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "gpt-4o", cfg.Completion.OpenAI.Model)
	require.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.Completion.OpenAI.Endpoint)
	require.Equal(t, "Korean", cfg.Enrichment.TargetLanguage)
	require.Empty(t, cfg.Completion.OpenAI.APIKey)
	require.Empty(t, cfg.Feeds)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(databasePathEnv, "/tmp/other.db")
	t.Setenv(openAIAPIKeyEnv, "sk-test")
	t.Setenv(targetLanguageEnv, "German")
	t.Setenv(logLevelEnv, "debug")

	cfg := Load()
	require.Equal(t, "/tmp/other.db", cfg.Database.Path)
	require.Equal(t, "sk-test", cfg.Completion.OpenAI.APIKey)
	require.Equal(t, "German", cfg.Enrichment.TargetLanguage)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadYAMLFileMerges(t *testing.T) {
	clearEnv(t)

	raw := `
database:
  path: /data/curator.db
completion:
  openai:
    model: gpt-4o-mini
enrichment:
  targetLanguage: Japanese
  vocabulary: ["Go", "Rust", "Other"]
  fallbackCategory: Other
feeds:
  - name: example
    url: https://example.com/rss
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	t.Setenv(configPathEnv, path)

	cfg := Load()
	require.Equal(t, "/data/curator.db", cfg.Database.Path)
	require.Equal(t, "gpt-4o-mini", cfg.Completion.OpenAI.Model)
	// Unset file values keep their defaults.
	require.Equal(t, "https://api.openai.com/v1/chat/completions", cfg.Completion.OpenAI.Endpoint)
	require.Equal(t, "Japanese", cfg.Enrichment.TargetLanguage)
	require.Equal(t, []string{"Go", "Rust", "Other"}, cfg.Enrichment.Vocabulary)
	require.Len(t, cfg.Feeds, 1)
	require.Equal(t, "https://example.com/rss", cfg.Feeds[0].URL)
}

func TestLoadBrokenYAMLFallsBack(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid"), 0o600))
	t.Setenv(configPathEnv, path)

	cfg := Load()
	require.Equal(t, "curator.db", cfg.Database.Path)
}
