package di

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-seo/internal/canonical"
	sitemapcmd "github.com/goliatone/go-seo/internal/commands/sitemap"
	slugscmd "github.com/goliatone/go-seo/internal/commands/slugs"
	"github.com/goliatone/go-seo/internal/commands"
	seohttp "github.com/goliatone/go-seo/internal/http"
	"github.com/goliatone/go-seo/internal/logging"
	"github.com/goliatone/go-seo/internal/logging/gologger"
	"github.com/goliatone/go-seo/internal/metadata"
	"github.com/goliatone/go-seo/internal/metrics"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/reslug"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/runtimeconfig"
	"github.com/goliatone/go-seo/internal/sitemap"
	"github.com/goliatone/go-seo/internal/staticpages"
	"github.com/goliatone/go-seo/pkg/interfaces"
)

// Container wires module dependencies.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB         *bun.DB
	ownsDB        bool
	store         records.Store
	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	redisClient *redis.Client
	ownsRedis   bool
	docCache    sitemap.DocumentCache

	pagesFS fs.FS

	registry *resources.Registry
	urls     *resources.URLBuilder
	pages    *staticpages.Registry
	metrics  *metrics.Prometheus

	resolver *canonical.Resolver
	gate     *canonical.Gate
	emitter  *sitemap.Emitter
	sitemaps *sitemap.Service
	reslug   *reslug.Service
	warmer   *sitemap.Warmer

	regenerate *sitemapcmd.RegenerateHandler
	reassign   *slugscmd.ReassignHandler
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected by the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB uses db instead of opening one from the database config.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithStore replaces the bun store, typically with records.NewMemoryStore.
func WithStore(store records.Store) Option {
	return func(c *Container) {
		c.store = store
	}
}

// WithCache overrides the repository cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithRedisClient uses client for the sitemap document cache.
func WithRedisClient(client *redis.Client) Option {
	return func(c *Container) {
		c.redisClient = client
	}
}

// WithDocumentCache overrides the sitemap document cache.
func WithDocumentCache(cache sitemap.DocumentCache) Option {
	return func(c *Container) {
		c.docCache = cache
	}
}

// WithStaticPagesFS loads Markdown static pages from fsys instead of STATIC_PAGES_DIR.
func WithStaticPagesFS(fsys fs.FS) Option {
	return func(c *Container) {
		c.pagesFS = fsys
	}
}

// NewContainer validates cfg and builds every service.
func NewContainer(ctx context.Context, cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	steps := []func(context.Context) error{
		c.configureLoggerProvider,
		c.configureCacheDefaults,
		c.configureStore,
		c.configureResources,
		c.configureStaticPages,
		c.configureDocumentCache,
		c.configureServices,
	}
	for _, step := range steps {
		if err := step(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
	}
	return c, nil
}

func (c *Container) configureLoggerProvider(context.Context) error {
	if c.loggerProvider != nil {
		return nil
	}
	if strings.EqualFold(strings.TrimSpace(c.Config.Logging.Provider), runtimeconfig.ProviderNoop) {
		c.loggerProvider = noopProvider{}
		return nil
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     c.Config.Logging.Level,
		Format:    c.Config.Logging.Format,
		AddSource: c.Config.Logging.AddSource,
		Focus:     c.Config.Logging.Focus,
	})
	if err != nil {
		return err
	}
	c.loggerProvider = provider
	return nil
}

func (c *Container) configureCacheDefaults(context.Context) error {
	if !c.Config.Cache.Repository {
		return nil
	}
	if c.cacheService == nil {
		service, err := repocache.NewCacheService(repocache.DefaultConfig())
		if err != nil {
			return err
		}
		c.cacheService = service
	}
	if c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
	return nil
}

func (c *Container) configureStore(ctx context.Context) error {
	if c.store != nil {
		return nil
	}
	if c.bunDB == nil {
		db, err := OpenDatabase(ctx, c.Config.Database)
		if err != nil {
			return err
		}
		c.bunDB = db
		c.ownsDB = true
	}
	var storeOpts []records.BunOption
	if c.cacheService != nil {
		storeOpts = append(storeOpts, records.WithCache(c.cacheService, c.keySerializer))
	}
	c.store = records.NewBunStore(c.bunDB, storeOpts...)
	return nil
}

func (c *Container) configureResources(context.Context) error {
	c.registry = resources.DefaultRegistry()
	urls, err := resources.NewURLBuilder(c.Config.Site.BaseURL, c.registry)
	if err != nil {
		return err
	}
	c.urls = urls
	if !c.Config.Features.DisableMetrics {
		c.metrics = metrics.NewPrometheus()
	}
	return nil
}

func (c *Container) configureStaticPages(ctx context.Context) error {
	fsys := c.pagesFS
	if fsys == nil {
		if dir := strings.TrimSpace(c.Config.Site.StaticPagesDir); dir != "" {
			fsys = os.DirFS(dir)
		}
	}
	pages, err := staticpages.Load(ctx, fsys, staticpages.Defaults())
	if err != nil {
		return err
	}
	c.pages = pages
	return nil
}

func (c *Container) configureDocumentCache(ctx context.Context) error {
	if c.docCache != nil {
		return nil
	}
	if c.redisClient == nil && c.Config.RedisEnabled() {
		client, err := sitemap.NewRedisClient(ctx, sitemap.RedisConfig{
			Address:  c.Config.Cache.RedisAddress,
			Password: c.Config.Cache.RedisPassword,
			DB:       c.Config.Cache.RedisDB,
		})
		if err != nil {
			return err
		}
		c.redisClient = client
		c.ownsRedis = true
	}
	if c.redisClient != nil {
		c.docCache = sitemap.NewRedisCache(c.redisClient, sitemap.WithTTL(c.Config.Cache.SitemapTTL))
		return nil
	}
	c.docCache = sitemap.NewMemoryCache(sitemap.WithMemoryTTL(c.Config.Cache.SitemapTTL))
	return nil
}

func (c *Container) configureServices(context.Context) error {
	recorder := c.recorder()

	c.resolver = canonical.NewResolver(c.store, c.registry,
		canonical.WithLogger(logging.ResolverLogger(c.loggerProvider)),
		canonical.WithMetrics(recorder),
	)
	c.gate = canonical.NewGate(c.resolver,
		canonical.WithGateLogger(logging.GateLogger(c.loggerProvider)),
		canonical.WithGateMetrics(recorder),
	)

	sitemapLogger := logging.SitemapLogger(c.loggerProvider)
	c.emitter = sitemap.NewEmitter(c.store, c.registry, c.urls,
		sitemap.WithLogger(sitemapLogger),
		sitemap.WithMetrics(recorder),
		sitemap.WithStaticPages(c.pages),
	)
	c.sitemaps = sitemap.NewService(c.emitter, c.docCache, sitemapLogger)

	c.reslug = reslug.NewService(c.store, c.registry,
		reslug.WithMaxAttempts(c.Config.Slugs.MaxAttempts),
		reslug.WithLogger(logging.ReslugLogger(c.loggerProvider)),
		reslug.WithMetrics(recorder),
		reslug.WithSitemapRefresher(c.sitemaps),
	)

	if !c.Config.Features.DisableWarmer {
		warmer, err := sitemap.NewWarmer(c.sitemaps, c.Config.Sitemap.Cron, sitemap.WithWarmerLogger(sitemapLogger))
		if err != nil {
			return err
		}
		c.warmer = warmer
	}

	c.regenerate = sitemapcmd.NewRegenerateHandler(c.sitemaps, commands.CommandLogger(c.loggerProvider, "sitemap"))
	c.reassign = slugscmd.NewReassignHandler(c.reslug, commands.CommandLogger(c.loggerProvider, "slugs"))
	return nil
}

func (c *Container) recorder() metrics.Recorder {
	if c.metrics == nil {
		return metrics.Nop{}
	}
	return c.metrics
}

// Close releases the database and Redis connections the container opened.
func (c *Container) Close() error {
	var errs []error
	if c.ownsRedis && c.redisClient != nil {
		errs = append(errs, c.redisClient.Close())
	}
	if c.ownsDB && c.bunDB != nil {
		errs = append(errs, c.bunDB.Close())
	}
	return errors.Join(errs...)
}

// LoggerProvider exposes the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// BunDB exposes the database handle, nil when a custom store is used.
func (c *Container) BunDB() *bun.DB {
	return c.bunDB
}

// Store exposes the content store.
func (c *Container) Store() records.Store {
	return c.store
}

// Registry exposes the resource registry.
func (c *Container) Registry() *resources.Registry {
	return c.registry
}

// URLBuilder exposes the canonical URL builder.
func (c *Container) URLBuilder() *resources.URLBuilder {
	return c.urls
}

// StaticPages exposes the static page registry.
func (c *Container) StaticPages() *staticpages.Registry {
	return c.pages
}

// Metrics exposes the Prometheus recorder, nil when metrics are disabled.
func (c *Container) Metrics() *metrics.Prometheus {
	return c.metrics
}

// Resolver exposes the canonical resolver.
func (c *Container) Resolver() *canonical.Resolver {
	return c.resolver
}

// Gate exposes the redirect gate.
func (c *Container) Gate() *canonical.Gate {
	return c.gate
}

// Sitemaps exposes the cached sitemap service.
func (c *Container) Sitemaps() *sitemap.Service {
	return c.sitemaps
}

// Reslug exposes the slug reassignment service.
func (c *Container) Reslug() *reslug.Service {
	return c.reslug
}

// Warmer exposes the sitemap warmer, nil when disabled.
func (c *Container) Warmer() *sitemap.Warmer {
	return c.warmer
}

// RegenerateSitemapsHandler exposes the sitemap regeneration command handler.
func (c *Container) RegenerateSitemapsHandler() *sitemapcmd.RegenerateHandler {
	return c.regenerate
}

// ReassignSlugHandler exposes the slug reassignment command handler.
func (c *Container) ReassignSlugHandler() *slugscmd.ReassignHandler {
	return c.reassign
}

// PublicAPI builds the crawler-facing HTTP routes over the container services.
func (c *Container) PublicAPI(opts ...seohttp.PublicOption) *seohttp.PublicAPI {
	base := []seohttp.PublicOption{
		seohttp.WithGate(c.gate),
		seohttp.WithSitemaps(c.sitemaps),
		seohttp.WithURLBuilder(c.urls),
		seohttp.WithStaticPages(c.pages),
		seohttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
		seohttp.WithMetadataOptions(metadata.Options{SiteName: c.Config.Site.Name}),
	}
	if c.metrics != nil {
		base = append(base, seohttp.WithMetricsHandler(c.metrics.Handler()))
	}
	return seohttp.NewPublicAPI(append(base, opts...)...)
}

type noopProvider struct{}

func (noopProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
