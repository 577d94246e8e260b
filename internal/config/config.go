package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Tiliavir/icicle-admin/internal/storage"
)

// Config is the root configuration for icicle, stored in ~/.icicle/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	API   APIConfig   `json:"api"`
	List  ListConfig  `json:"list"`
	Serve ServeConfig `json:"serve"`
}

// APIConfig points the client at a REST backend.
type APIConfig struct {
	// BaseURL is the scheme and host of the backend, e.g. "https://icicle.example.com".
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds a single request/response exchange. Zero = default.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// ListConfig holds defaults for `icicle entries list`.
type ListConfig struct {
	PageSize int    `json:"page_size"`
	Sort     string `json:"sort"`
	Format   string `json:"format"`
}

// ServeConfig configures the in-memory reference server.
type ServeConfig struct {
	Addr      string `json:"addr"`
	JWTSecret string `json:"jwt_secret"`
}

const (
	DefaultBaseURL        = "http://localhost:8080"
	DefaultTimeoutSeconds = 30
	DefaultPageSize       = 20
	// DefaultSort matches the backend's default ordering of the list view.
	DefaultSort      = "id,asc"
	DefaultFormat    = "md"
	DefaultServeAddr = ":8080"
	// DefaultJWTSecret is only suitable for local development.
	DefaultJWTSecret = "icicle-dev-secret"

	// EnvBaseURL overrides api.base_url when set.
	EnvBaseURL = "ICICLE_API_URL"
)

// Timeout returns the per-request timeout.
func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		List: ListConfig{
			PageSize: DefaultPageSize,
			Sort:     DefaultSort,
			Format:   DefaultFormat,
		},
		Serve: ServeConfig{
			Addr:      DefaultServeAddr,
			JWTSecret: DefaultJWTSecret,
		},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// icicle configuration – ~/.icicle/config.json
//
// All settings are optional; the built-in defaults shown below target a
// backend running locally. Edit this file to point icicle elsewhere.
{
  // ── REST backend ─────────────────────────────────────────────────────────
  "api": {
    // Scheme and host of the backend. The ICICLE_API_URL environment
    // variable and the --api flag take precedence over this value.
    "base_url": "http://localhost:8080",

    // Upper bound for a single request, in seconds.
    "timeout_seconds": 30
  },

  // ── icicle entries list ──────────────────────────────────────────────────
  "list": {
    // Entries per page.
    "page_size": 20,

    // Sort specification as field,direction. Direction is asc or desc.
    "sort": "id,asc",

    // Output format: md, csv, json or yaml.
    "format": "md"
  },

  // ── icicle serve (in-memory reference server) ────────────────────────────
  "serve": {
    "addr": ":8080",

    // HMAC secret for tokens issued by the reference server.
    "jwt_secret": "icicle-dev-secret"
  }
}
`

// configFilePath returns the path to ~/.icicle/config.json.
func configFilePath() (string, error) {
	return storage.Path("config.json")
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads ~/.icicle/config.json, creating it with annotated defaults on
// first run, then applies the ICICLE_API_URL override.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return withEnv(defaultConfig()), err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := storage.WriteFile(path, []byte(configTemplate)); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return withEnv(defaultConfig()), nil
	}
	if err != nil {
		return withEnv(defaultConfig()), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := parse(data)
	if err != nil {
		return withEnv(defaultConfig()), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}
	return withEnv(cfg), nil
}

// parse decodes commented JSON and fills zero-value fields with defaults so
// callers always get a usable Config even from a partially filled file.
func parse(data []byte) (Config, error) {
	var cfg Config
	if err := json.Unmarshal(stripLineComments(data), &cfg); err != nil {
		return Config{}, err
	}

	def := defaultConfig()
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = def.API.BaseURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = def.API.TimeoutSeconds
	}
	if cfg.List.PageSize <= 0 {
		cfg.List.PageSize = def.List.PageSize
	}
	if cfg.List.Sort == "" {
		cfg.List.Sort = def.List.Sort
	}
	if cfg.List.Format == "" {
		cfg.List.Format = def.List.Format
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = def.Serve.Addr
	}
	if cfg.Serve.JWTSecret == "" {
		cfg.Serve.JWTSecret = def.Serve.JWTSecret
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	return cfg, nil
}

func withEnv(cfg Config) Config {
	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	return cfg
}
