package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "SmartDoc AI", cfg.App.Name)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, 10, cfg.Upload.MaxFileSizeMB)
	assert.Equal(t, "smartdoc-api", cfg.Telemetry.ServiceName)
	assert.False(t, cfg.Supabase.Configured())

	assert.Equal(t, []string{
		"http://localhost:3000",
		"http://localhost:3001",
		"http://127.0.0.1:3000",
	}, cfg.CORS.List())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("APP_NAME", "SmartDoc Staging")
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("SUPABASE_URL", "https://proj.supabase.co")
	t.Setenv("SUPABASE_KEY", "anon-key")
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "SmartDoc Staging", cfg.App.Name)
	assert.Equal(t, "staging", cfg.App.Environment)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.List())
	assert.True(t, cfg.Supabase.Configured())
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: SmartDoc File
server:
  port: 8080
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "SmartDoc File", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, "development", cfg.App.Environment)
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	t.Setenv("PORT", "7070")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorContains(t, err, "reading config file")
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "99999")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid port")
}

func TestLoad_RejectsEmptyCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " , ")

	_, err := Load("")
	assert.ErrorContains(t, err, "CORS_ORIGINS")
}

func TestCORSConfig_ListTrimsAndDropsEmpties(t *testing.T) {
	t.Parallel()

	c := CORSConfig{Origins: " http://a.example , , http://b.example,"}
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, c.List())
}

func TestSupabaseConfig_Configured(t *testing.T) {
	t.Parallel()

	assert.False(t, SupabaseConfig{}.Configured())
	assert.False(t, SupabaseConfig{URL: "https://x.supabase.co"}.Configured())
	assert.True(t, SupabaseConfig{URL: "https://x.supabase.co", Key: "k"}.Configured())
}
