package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for the SmartDoc API.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Supabase  SupabaseConfig  `mapstructure:"supabase"`
	OpenAI    OpenAIConfig    `mapstructure:"openai"`
	Upload    UploadConfig    `mapstructure:"upload"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	SecretKey   string `mapstructure:"secret_key"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type CORSConfig struct {
	// Origins is a comma-separated allow-list, as delivered by the
	// CORS_ORIGINS environment variable.
	Origins string `mapstructure:"origins"`
}

// List splits the configured origins into a trimmed slice.
func (c CORSConfig) List() []string {
	parts := strings.Split(c.Origins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type SupabaseConfig struct {
	URL string `mapstructure:"url"`
	Key string `mapstructure:"key"`
}

// Configured reports whether both the project URL and API key are present.
func (c SupabaseConfig) Configured() bool {
	return c.URL != "" && c.Key != ""
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
}

type UploadConfig struct {
	MaxFileSizeMB int `mapstructure:"max_file_size_mb"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	ServiceName  string `mapstructure:"service_name"`
	LogLevel     string `mapstructure:"log_level"`
}

// envBindings maps config keys to the plain environment variable names the
// deployment platform injects. These are the recognized variables; anything
// else must go through the optional YAML file.
var envBindings = map[string]string{
	"app.name":                "APP_NAME",
	"app.version":             "APP_VERSION",
	"app.environment":         "ENVIRONMENT",
	"app.secret_key":          "SECRET_KEY",
	"server.port":             "PORT",
	"cors.origins":            "CORS_ORIGINS",
	"supabase.url":            "SUPABASE_URL",
	"supabase.key":            "SUPABASE_KEY",
	"openai.api_key":          "OPENAI_API_KEY",
	"telemetry.otlp_endpoint": "OTLP_ENDPOINT",
	"telemetry.service_name":  "OTEL_SERVICE_NAME",
	"telemetry.log_level":     "LOG_LEVEL",
	"upload.max_file_size_mb": "MAX_FILE_SIZE_MB",
}

// Load reads configuration from an optional YAML file at path, a local .env
// file if one exists, and the process environment. Environment variables win
// over file values. The returned Config is a read-once snapshot; nothing
// re-reads the environment after startup.
func Load(path string) (*Config, error) {
	// Best effort: local development keeps secrets in .env, production
	// injects real environment variables.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be 1-65535", c.Server.Port)
	}
	if c.Upload.MaxFileSizeMB < 1 {
		return fmt.Errorf("invalid max file size %dMB: must be at least 1", c.Upload.MaxFileSizeMB)
	}
	if len(c.CORS.List()) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "SmartDoc AI")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.secret_key", "your-secret-key-change-in-production")

	// The hosting platform assigns PORT; 8000 is the documented fallback
	// for local runs.
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("cors.origins",
		"http://localhost:3000,http://localhost:3001,http://127.0.0.1:3000")

	v.SetDefault("upload.max_file_size_mb", 10)

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_insecure", true)
	v.SetDefault("telemetry.service_name", "smartdoc-api")
	v.SetDefault("telemetry.log_level", "info")
}
