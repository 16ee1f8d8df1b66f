package config

import (
	"bufio"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	defaultEnvFile        = ".env"
	defaultPort           = "8080"
	defaultEnvironment    = "local"
	defaultReadTimeout    = 15 * time.Second
	defaultWriteTimeout   = 15 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultRequestTimeout = 30 * time.Second
	defaultManifest       = "products.json"
	defaultEnrichmentURL  = "http://localhost:3000/api/fetch-products"
	defaultCatalogTimeout = 20 * time.Second
	defaultTemplatesDir   = "templates"
	defaultPublicDir      = "public"
	defaultLocalesDir     = "locales"
	defaultContentDir     = "content"
	defaultLocale         = "pt"
	defaultSiteName       = "Achadinhos"
	defaultReplyDelay     = 1500 * time.Millisecond
)

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Site    SiteConfig
	Session SessionConfig
	Chat    ChatConfig
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Port           string
	Environment    string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
}

// CatalogConfig locates the product manifest and the enrichment endpoint.
type CatalogConfig struct {
	Manifest      string
	EnrichmentURL string
	Timeout       time.Duration
}

// SiteConfig describes the rendered storefront.
type SiteConfig struct {
	Name          string
	BaseURL       string
	TemplatesDir  string
	PublicDir     string
	LocalesDir    string
	ContentDir    string
	DefaultLocale string
	Locales       []string
	DevMode       bool
}

// SessionConfig controls the signed visitor cookie.
type SessionConfig struct {
	SigningKey string
	Secure     bool
}

// ChatConfig tunes the scripted chat.
type ChatConfig struct {
	ReplyDelay time.Duration
}

// IsProduction reports whether the server runs in the prod environment.
func (c Config) IsProduction() bool {
	return c.Server.Environment == "prod"
}

// Addr returns the listen address derived from the port.
func (c ServerConfig) Addr() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// ValidationError is returned when required configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the missing/invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Option customises Load behaviour.
type Option func(*loaderOptions)

type loaderOptions struct {
	envFile      string
	envMap       map[string]string
	useSystemEnv bool
}

// WithEnvFile overrides the .env file path used for local overrides.
func WithEnvFile(path string) Option {
	return func(o *loaderOptions) {
		o.envFile = path
	}
}

// WithEnvMap injects an explicit key/value map for environment lookups. Values in the map
// take precedence over system environment variables.
func WithEnvMap(values map[string]string) Option {
	return func(o *loaderOptions) {
		o.envMap = values
	}
}

// WithoutSystemEnv disables reading from os.Getenv, relying only on provided maps and .env files.
func WithoutSystemEnv() Option {
	return func(o *loaderOptions) {
		o.useSystemEnv = false
	}
}

// Load assembles the configuration from defaults, .env overrides, environment
// variables and the explicit env map, in increasing precedence.
func Load(opts ...Option) (Config, error) {
	options := loaderOptions{
		envFile:      defaultEnvFile,
		useSystemEnv: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	dotEnvValues, err := loadDotEnv(options.envFile)
	if err != nil {
		return Config{}, err
	}

	lookup := func(key string) (string, bool) {
		if options.envMap != nil {
			if value, ok := options.envMap[key]; ok {
				return value, true
			}
		}
		if options.useSystemEnv {
			if value, ok := os.LookupEnv(key); ok {
				return value, true
			}
		}
		if dotEnvValues != nil {
			if value, ok := dotEnvValues[key]; ok {
				return value, true
			}
		}
		return "", false
	}

	// Cloud Run injects PORT; the prefixed key wins when both are set.
	port := stringWithDefault(lookup, "PORT", defaultPort)
	port = stringWithDefault(lookup, "SHOWCASE_SERVER_PORT", port)

	cfg := Config{
		Server: ServerConfig{
			Port:           port,
			Environment:    strings.ToLower(stringWithDefault(lookup, "SHOWCASE_ENV", defaultEnvironment)),
			ReadTimeout:    durationWithDefault(lookup, "SHOWCASE_SERVER_READ_TIMEOUT", defaultReadTimeout),
			WriteTimeout:   durationWithDefault(lookup, "SHOWCASE_SERVER_WRITE_TIMEOUT", defaultWriteTimeout),
			IdleTimeout:    durationWithDefault(lookup, "SHOWCASE_SERVER_IDLE_TIMEOUT", defaultIdleTimeout),
			RequestTimeout: durationWithDefault(lookup, "SHOWCASE_SERVER_REQUEST_TIMEOUT", defaultRequestTimeout),
		},
		Catalog: CatalogConfig{
			Manifest:      stringWithDefault(lookup, "SHOWCASE_CATALOG_MANIFEST", defaultManifest),
			EnrichmentURL: stringWithDefault(lookup, "SHOWCASE_CATALOG_ENRICHMENT_URL", defaultEnrichmentURL),
			Timeout:       durationWithDefault(lookup, "SHOWCASE_CATALOG_TIMEOUT", defaultCatalogTimeout),
		},
		Site: SiteConfig{
			Name:          stringWithDefault(lookup, "SHOWCASE_SITE_NAME", defaultSiteName),
			BaseURL:       strings.TrimRight(stringWithDefault(lookup, "SHOWCASE_SITE_BASE_URL", ""), "/"),
			TemplatesDir:  stringWithDefault(lookup, "SHOWCASE_TEMPLATES_DIR", defaultTemplatesDir),
			PublicDir:     stringWithDefault(lookup, "SHOWCASE_PUBLIC_DIR", defaultPublicDir),
			LocalesDir:    stringWithDefault(lookup, "SHOWCASE_LOCALES_DIR", defaultLocalesDir),
			ContentDir:    stringWithDefault(lookup, "SHOWCASE_CONTENT_DIR", defaultContentDir),
			DefaultLocale: strings.ToLower(stringWithDefault(lookup, "SHOWCASE_DEFAULT_LOCALE", defaultLocale)),
			Locales:       csvWithDefault(lookup, "SHOWCASE_LOCALES"),
			DevMode:       boolWithDefault(lookup, "SHOWCASE_DEV", false),
		},
		Session: SessionConfig{
			SigningKey: stringWithDefault(lookup, "SHOWCASE_SESSION_SIGNING_KEY", ""),
		},
		Chat: ChatConfig{
			ReplyDelay: durationWithDefault(lookup, "SHOWCASE_CHAT_REPLY_DELAY", defaultReplyDelay),
		},
	}

	if len(cfg.Site.Locales) == 0 {
		cfg.Site.Locales = []string{"pt", "en"}
	}
	for i, l := range cfg.Site.Locales {
		cfg.Site.Locales[i] = strings.ToLower(l)
	}
	cfg.Session.Secure = cfg.IsProduction()

	if err := validateConfig(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateConfig(cfg Config) error {
	var missing []string

	if strings.TrimSpace(cfg.Server.Port) == "" {
		missing = append(missing, "Server.Port")
	}
	if strings.TrimSpace(cfg.Catalog.Manifest) == "" {
		missing = append(missing, "Catalog.Manifest")
	}
	if u, err := url.Parse(cfg.Catalog.EnrichmentURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		missing = append(missing, "Catalog.EnrichmentURL")
	}
	if cfg.Catalog.Timeout <= 0 {
		missing = append(missing, "Catalog.Timeout")
	}
	if !contains(cfg.Site.Locales, cfg.Site.DefaultLocale) {
		missing = append(missing, "Site.DefaultLocale")
	}
	if cfg.Chat.ReplyDelay < 0 {
		missing = append(missing, "Chat.ReplyDelay")
	}
	if cfg.IsProduction() && strings.TrimSpace(cfg.Session.SigningKey) == "" {
		missing = append(missing, "Session.SigningKey")
	}

	if len(missing) > 0 {
		return &ValidationError{fields: missing}
	}
	return nil
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

func loadDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return nil, nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		absPath = path
	}

	file, err := os.Open(absPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: unable to read %s: %w", absPath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	values := make(map[string]string)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		values[key] = strings.Trim(strings.TrimSpace(value), "\"'")
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("config: failed parsing %s: %w", absPath, err)
	}
	return values, nil
}

func stringWithDefault(lookup func(string) (string, bool), key, fallback string) string {
	if value, ok := lookup(key); ok && strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func durationWithDefault(lookup func(string) (string, bool), key string, fallback time.Duration) time.Duration {
	if value, ok := lookup(key); ok && value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if ms, err := strconv.Atoi(value); err == nil {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return fallback
}

func boolWithDefault(lookup func(string) (string, bool), key string, fallback bool) bool {
	if value, ok := lookup(key); ok && value != "" {
		switch strings.ToLower(value) {
		case "true", "1", "yes", "on":
			return true
		case "false", "0", "no", "off":
			return false
		}
	}
	return fallback
}

func csvWithDefault(lookup func(string) (string, bool), key string) []string {
	raw, ok := lookup(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
