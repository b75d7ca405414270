package di_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/alicebob/miniredis/v2"

	"github.com/goliatone/go-seo/internal/di"
	"github.com/goliatone/go-seo/internal/records"
	"github.com/goliatone/go-seo/internal/resources"
	"github.com/goliatone/go-seo/internal/runtimeconfig"
)

func memoryConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = runtimeconfig.ProviderNoop
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Site.BaseURL = "ftp://example.com"

	if _, err := di.NewContainer(context.Background(), cfg, di.WithStore(records.NewMemoryStore())); !errors.Is(err, runtimeconfig.ErrBaseURLInvalid) {
		t.Fatalf("expected ErrBaseURLInvalid, got %v", err)
	}
}

func TestContainerWiresServices(t *testing.T) {
	store := records.NewMemoryStore()
	store.Insert(resources.Company, records.Raw{"id": "c1", "slug": "acme", "status": "approved", "country": "India"})

	container, err := di.NewContainer(context.Background(), memoryConfig(), di.WithStore(store))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer container.Close()

	if container.Warmer() == nil {
		t.Fatalf("expected warmer to be configured")
	}
	if got := container.Warmer().Schedule(); got != "@hourly" {
		t.Fatalf("unexpected warmer schedule %q", got)
	}
	if container.Metrics() == nil {
		t.Fatalf("expected prometheus recorder")
	}
	if container.Reslug().MaxAttempts() != 25 {
		t.Fatalf("unexpected max attempts %d", container.Reslug().MaxAttempts())
	}
	if container.RegenerateSitemapsHandler() == nil || container.ReassignSlugHandler() == nil {
		t.Fatalf("expected command handlers")
	}
	if _, ok := container.StaticPages().Lookup("/about"); !ok {
		t.Fatalf("expected default static pages")
	}

	mux := http.NewServeMux()
	if err := container.PublicAPI().Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/company/acme", nil))
	if rr.Code != http.StatusMovedPermanently || rr.Header().Get("Location") != "/company/india/acme" {
		t.Fatalf("unexpected redirect %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sitemap-companies.xml", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), "https://www.mlmdirectory.com/company/india/acme") {
		t.Fatalf("unexpected sitemap response %d %s", rr.Code, rr.Body.String())
	}
}

func TestContainerFeatureToggles(t *testing.T) {
	cfg := memoryConfig()
	cfg.Features.DisableMetrics = true
	cfg.Features.DisableWarmer = true
	cfg.Slugs.MaxAttempts = 3

	container, err := di.NewContainer(context.Background(), cfg, di.WithStore(records.NewMemoryStore()))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.Warmer() != nil {
		t.Fatalf("expected warmer to be disabled")
	}
	if container.Metrics() != nil {
		t.Fatalf("expected metrics to be disabled")
	}
	if container.Reslug().MaxAttempts() != 3 {
		t.Fatalf("expected configured max attempts, got %d", container.Reslug().MaxAttempts())
	}
}

func TestContainerLoadsStaticPagesFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"pricing.md": {Data: []byte("---\ntitle: Pricing\n---\nPlans for every directory listing.\n")},
	}

	container, err := di.NewContainer(context.Background(), memoryConfig(),
		di.WithStore(records.NewMemoryStore()),
		di.WithStaticPagesFS(fsys),
	)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	page, ok := container.StaticPages().Lookup("/pricing")
	if !ok {
		t.Fatalf("expected /pricing page")
	}
	if page.Title != "Pricing" {
		t.Fatalf("unexpected title %q", page.Title)
	}
}

func TestContainerCachesSitemapsInRedis(t *testing.T) {
	server := miniredis.RunT(t)
	store := records.NewMemoryStore()
	store.Insert(resources.Blog, records.Raw{"id": "b1", "slug": "hello", "status": "published", "created_at": "2024-01-05"})

	cfg := memoryConfig()
	cfg.Cache.RedisAddress = server.Addr()

	container, err := di.NewContainer(context.Background(), cfg, di.WithStore(store))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer container.Close()

	if _, err := container.Sitemaps().Document(context.Background(), "sitemap-blogs"); err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !server.Exists("seo:sitemap:sitemap-blogs") {
		t.Fatalf("expected cached sitemap in redis, keys %v", server.Keys())
	}
}

func TestContainerOpensSQLiteStore(t *testing.T) {
	cfg := memoryConfig()
	cfg.Database.DSN = "file:di_container?mode=memory&cache=shared"
	cfg.Cache.Repository = true

	container, err := di.NewContainer(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	defer container.Close()

	if container.BunDB() == nil {
		t.Fatalf("expected bun database to be opened")
	}
	if err := records.CreateSchema(context.Background(), container.BunDB()); err != nil {
		t.Fatalf("CreateSchema: %v", err)
	}
	body, err := container.Sitemaps().Document(context.Background(), "sitemap-news")
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	if !strings.Contains(string(body), "<urlset") {
		t.Fatalf("expected empty urlset, got %s", body)
	}
}

func TestOpenDatabaseRejectsUnknownDriver(t *testing.T) {
	_, err := di.OpenDatabase(context.Background(), runtimeconfig.DatabaseConfig{Driver: "oracle", DSN: "x"})
	if !errors.Is(err, runtimeconfig.ErrDatabaseDriverUnknown) {
		t.Fatalf("expected ErrDatabaseDriverUnknown, got %v", err)
	}
}

func TestContainerReslugRefreshesCachedSitemap(t *testing.T) {
	store := records.NewMemoryStore()
	store.Insert(resources.News, records.Raw{"id": "n1", "slug": "old-title", "published": true})

	cfg := memoryConfig()
	cfg.Features.DisableWarmer = true
	container, err := di.NewContainer(context.Background(), cfg, di.WithStore(store))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}

	mux := http.NewServeMux()
	if err := container.PublicAPI().Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}
	fetch := func() string {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/sitemap-news.xml", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("unexpected sitemap status %d", rr.Code)
		}
		return rr.Body.String()
	}

	if body := fetch(); !strings.Contains(body, "/news/old-title") {
		t.Fatalf("expected old slug in sitemap, got %s", body)
	}
	if _, err := container.Reslug().Reassign(context.Background(), resources.News, "n1", "New Title"); err != nil {
		t.Fatalf("Reassign: %v", err)
	}
	body := fetch()
	if strings.Contains(body, "/news/old-title") || !strings.Contains(body, "/news/new-title") {
		t.Fatalf("expected sitemap to follow the new slug, got %s", body)
	}
}
