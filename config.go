package seo

import "github.com/goliatone/go-seo/internal/runtimeconfig"

var (
	ErrBaseURLInvalid          = runtimeconfig.ErrBaseURLInvalid
	ErrDatabaseDriverUnknown   = runtimeconfig.ErrDatabaseDriverUnknown
	ErrDatabaseDSNRequired     = runtimeconfig.ErrDatabaseDSNRequired
	ErrHTTPAddrRequired        = runtimeconfig.ErrHTTPAddrRequired
	ErrSitemapScheduleInvalid  = runtimeconfig.ErrSitemapScheduleInvalid
	ErrSlugAttemptsInvalid     = runtimeconfig.ErrSlugAttemptsInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	SiteConfig     = runtimeconfig.SiteConfig
	HTTPConfig     = runtimeconfig.HTTPConfig
	DatabaseConfig = runtimeconfig.DatabaseConfig
	CacheConfig    = runtimeconfig.CacheConfig
	SitemapConfig  = runtimeconfig.SitemapConfig
	SlugConfig     = runtimeconfig.SlugConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
	Features       = runtimeconfig.Features
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}

// LoadConfig reads path (optional) and the environment into a Config.
func LoadConfig(path string) (Config, error) {
	return runtimeconfig.Load(path)
}
