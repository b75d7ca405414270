package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/robfig/cron/v3"
)

var (
	ErrBaseURLInvalid          = errors.New("seo config: site base url must be an absolute http(s) url")
	ErrDatabaseDriverUnknown   = errors.New("seo config: database driver is invalid")
	ErrDatabaseDSNRequired     = errors.New("seo config: database dsn is required")
	ErrHTTPAddrRequired        = errors.New("seo config: http address is required")
	ErrSitemapScheduleInvalid  = errors.New("seo config: sitemap cron schedule is invalid")
	ErrSlugAttemptsInvalid     = errors.New("seo config: slug max attempts must be positive")
	ErrLoggingProviderRequired = errors.New("seo config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("seo config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("seo config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("seo config: logging format is invalid")
)

// Database drivers accepted by DatabaseConfig.Driver.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite3"
)

// Logging providers accepted by LoggingConfig.Provider.
const (
	ProviderGoLogger = "gologger"
	ProviderNoop     = "noop"
)

// Config aggregates runtime settings. Values load from an optional YAML file
// and the environment; env-default tags mirror DefaultConfig.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Cache    CacheConfig    `yaml:"cache"`
	Sitemap  SitemapConfig  `yaml:"sitemap"`
	Slugs    SlugConfig     `yaml:"slugs"`
	Logging  LoggingConfig  `yaml:"logging"`
	Features Features       `yaml:"features"`
}

// SiteConfig describes the public site.
type SiteConfig struct {
	BaseURL        string `yaml:"base_url"         env:"SITE_BASE_URL"    env-default:"https://www.mlmdirectory.com"`
	Name           string `yaml:"name"             env:"SITE_NAME"        env-default:"MLM Directory"`
	StaticPagesDir string `yaml:"static_pages_dir" env:"STATIC_PAGES_DIR"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Addr            string        `yaml:"addr"             env:"HTTP_ADDR"             env-default:":8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"HTTP_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"HTTP_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig selects the content database.
type DatabaseConfig struct {
	Driver string `yaml:"driver" env:"DATABASE_DRIVER" env-default:"sqlite3"`
	DSN    string `yaml:"dsn"    env:"DATABASE_DSN"    env-default:"file:seo.db?cache=shared"`
}

// CacheConfig toggles the repository read cache and the Redis sitemap cache.
type CacheConfig struct {
	Repository    bool          `yaml:"repository"     env:"REPOSITORY_CACHE_ENABLED"`
	RedisAddress  string        `yaml:"redis_address"  env:"REDIS_ADDRESS"`
	RedisPassword string        `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db"       env:"REDIS_DB"`
	SitemapTTL    time.Duration `yaml:"sitemap_ttl"    env:"SITEMAP_CACHE_TTL"    env-default:"2h"`
}

// SitemapConfig controls the sitemap warmer.
type SitemapConfig struct {
	Cron        string `yaml:"cron"          env:"SITEMAP_CRON"          env-default:"@hourly"`
	WarmOnStart bool   `yaml:"warm_on_start" env:"SITEMAP_WARM_ON_START"`
}

// SlugConfig bounds slug reassignment.
type SlugConfig struct {
	MaxAttempts int `yaml:"max_attempts" env:"SLUG_MAX_ATTEMPTS" env-default:"25"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"   env:"LOG_PROVIDER"   env-default:"gologger"`
	Level     string   `yaml:"level"      env:"LOG_LEVEL"      env-default:"info"`
	Format    string   `yaml:"format"     env:"LOG_FORMAT"     env-default:"json"`
	AddSource bool     `yaml:"add_source" env:"LOG_ADD_SOURCE"`
	Focus     []string `yaml:"focus"      env:"LOG_FOCUS"`
}

// Features switches optional components off.
type Features struct {
	DisableMetrics bool `yaml:"disable_metrics" env:"METRICS_DISABLED"`
	DisableWarmer  bool `yaml:"disable_warmer"  env:"SITEMAP_WARMER_DISABLED"`
}

// DefaultConfig returns the defaults applied when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			BaseURL: "https://www.mlmdirectory.com",
			Name:    "MLM Directory",
		},
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: DriverSQLite,
			DSN:    "file:seo.db?cache=shared",
		},
		Cache: CacheConfig{
			SitemapTTL: 2 * time.Hour,
		},
		Sitemap: SitemapConfig{
			Cron: "@hourly",
		},
		Slugs: SlugConfig{
			MaxAttempts: 25,
		},
		Logging: LoggingConfig{
			Provider: ProviderGoLogger,
			Level:    "info",
			Format:   "json",
		},
	}
}

// Load reads path when non-empty, then the environment, and validates the result.
// Environment variables override file values.
func Load(path string) (Config, error) {
	var cfg Config
	if path = strings.TrimSpace(path); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("seo config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("seo config: read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	base, err := url.Parse(strings.TrimSpace(cfg.Site.BaseURL))
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return fmt.Errorf("%w: %q", ErrBaseURLInvalid, cfg.Site.BaseURL)
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		return ErrHTTPAddrRequired
	}
	switch driver := normalize(cfg.Database.Driver); driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: %s", ErrDatabaseDriverUnknown, driver)
	}
	if strings.TrimSpace(cfg.Database.DSN) == "" {
		return ErrDatabaseDSNRequired
	}
	if !cfg.Features.DisableWarmer {
		parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
		if _, err := parser.Parse(strings.TrimSpace(cfg.Sitemap.Cron)); err != nil {
			return fmt.Errorf("%w: %v", ErrSitemapScheduleInvalid, err)
		}
	}
	if cfg.Slugs.MaxAttempts <= 0 {
		return ErrSlugAttemptsInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == ProviderGoLogger {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// RedisEnabled reports whether sitemap documents are cached in Redis.
func (cfg Config) RedisEnabled() bool {
	return strings.TrimSpace(cfg.Cache.RedisAddress) != ""
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case ProviderGoLogger, ProviderNoop:
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
