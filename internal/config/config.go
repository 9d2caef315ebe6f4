package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/joestump/prompt-library/internal/prompt"
)

// EnvPrefix is prepended to every environment variable the service reads.
const EnvPrefix = "PROMPTLIB"

type Config struct {
	Prompt struct {
		Default          string
		WorkingDirectory string
		AllowedTags      []string
	}
	HTTP struct {
		Addr            string
		ShutdownTimeout time.Duration
	}
	DB struct {
		Driver string
		DSN    string
	}
	API struct {
		Token string
	}
	Log struct {
		Level  slog.Level
		Format string
	}
}

// PresetsEnabled reports whether a database is configured for presets.
func (c *Config) PresetsEnabled() bool {
	return c.DB.Driver != ""
}

// PromptOptions returns the configured default prompt options.
func (c *Config) PromptOptions() prompt.Options {
	return prompt.Options{
		WorkingDirectory: c.Prompt.WorkingDirectory,
		AllowedTags:      append([]string(nil), c.Prompt.AllowedTags...),
	}
}

// Load reads config from environment (PROMPTLIB_ prefix) and a YAML file.
// When path is empty an optional prompt-library.yaml in the working directory
// is used; when path is set the file must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("prompt-library")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional config file
	}

	v.SetDefault("prompt.default", prompt.DefaultPromptID)
	v.SetDefault("prompt.working_directory", prompt.DefaultWorkingDirectory)
	v.SetDefault("prompt.allowed_tags", prompt.DefaultAllowedTags())
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.shutdown_timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	cfg := &Config{}
	cfg.Prompt.Default = v.GetString("prompt.default")
	cfg.Prompt.WorkingDirectory = v.GetString("prompt.working_directory")
	cfg.Prompt.AllowedTags = stringList(v.Get("prompt.allowed_tags"))
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.API.Token = v.GetString("api.token")
	cfg.Log.Format = strings.ToLower(v.GetString("log.format"))

	timeout, err := time.ParseDuration(v.GetString("http.shutdown_timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPTLIB_HTTP_SHUTDOWN_TIMEOUT: %w", err)
	}
	cfg.HTTP.ShutdownTimeout = timeout

	level, err := ParseLogLevel(v.GetString("log.level"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROMPTLIB_LOG_LEVEL: %w", err)
	}
	cfg.Log.Level = level

	switch cfg.Log.Format {
	case "text", "json":
	default:
		return nil, fmt.Errorf("PROMPTLIB_LOG_FORMAT must be text or json, got %q", cfg.Log.Format)
	}

	if cfg.Prompt.Default == "" {
		return nil, fmt.Errorf("PROMPTLIB_PROMPT_DEFAULT must not be empty")
	}

	switch cfg.DB.Driver {
	case "":
		if cfg.DB.DSN != "" {
			return nil, fmt.Errorf("PROMPTLIB_DB_DRIVER is required when PROMPTLIB_DB_DSN is set (sqlite3, mysql, postgres)")
		}
	case "sqlite3", "mysql", "postgres":
		if cfg.DB.DSN == "" {
			return nil, fmt.Errorf("PROMPTLIB_DB_DSN is required when PROMPTLIB_DB_DRIVER is set")
		}
	default:
		return nil, fmt.Errorf("unsupported PROMPTLIB_DB_DRIVER %q: must be sqlite3, mysql, or postgres", cfg.DB.Driver)
	}

	return cfg, nil
}

// stringList accepts either a YAML sequence or a comma-separated string, the
// form environment variables arrive in.
func stringList(raw any) []string {
	switch val := raw.(type) {
	case nil:
		return nil
	case string:
		if strings.TrimSpace(val) == "" {
			return []string{}
		}
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	case []string:
		return append([]string{}, val...)
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, fmt.Sprint(item))
		}
		return out
	default:
		return []string{fmt.Sprint(val)}
	}
}
