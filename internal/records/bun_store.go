package records

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-repository-cache/cache"
	repositorycache "github.com/goliatone/go-repository-cache/repositorycache"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-seo/internal/resources"
)

type row interface {
	toRaw() Raw
	getID() uuid.UUID
	setID(id uuid.UUID)
	patchSlug(id uuid.UUID, slug *string, at time.Time)
}

type source interface {
	findBySlug(ctx context.Context, def resources.Definition, slug string) (*Record, error)
	findByID(ctx context.Context, def resources.Definition, id uuid.UUID) (*Record, error)
	listPublished(ctx context.Context, def resources.Definition) ([]*Record, error)
	slugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error)
	assignSlug(ctx context.Context, id uuid.UUID, slug *string, at time.Time) error
}

// BunStore reads content rows through go-repository-bun repositories, one per
// resource table.
type BunStore struct {
	sources map[resources.Type]source
	now     func() time.Time
}

var _ Store = (*BunStore)(nil)

// BunOption configures a BunStore.
type BunOption func(*bunOptions)

type bunOptions struct {
	cacheService  cache.CacheService
	keySerializer cache.KeySerializer
	now           func() time.Time
}

// WithCache wraps every repository with go-repository-cache.
func WithCache(cacheService cache.CacheService, keySerializer cache.KeySerializer) BunOption {
	return func(o *bunOptions) {
		o.cacheService = cacheService
		o.keySerializer = keySerializer
	}
}

// WithClock overrides the timestamp written on slug reassignment.
func WithClock(now func() time.Time) BunOption {
	return func(o *bunOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewBunStore builds the store over db.
func NewBunStore(db *bun.DB, opts ...BunOption) *BunStore {
	options := bunOptions{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return &BunStore{
		now: options.now,
		sources: map[resources.Type]source{
			resources.Blog:       newBunSource(db, "blog", "blog_post", func() *BlogPost { return &BlogPost{} }, options),
			resources.News:       newBunSource(db, "news", "news_article", func() *NewsArticle { return &NewsArticle{} }, options),
			resources.Classified: newBunSource(db, "classified", "classified", func() *Classified { return &Classified{} }, options),
			resources.Company:    newBunSource(db, "company", "company", func() *Company { return &Company{} }, options),
		},
	}
}

func (s *BunStore) FindBySlug(ctx context.Context, def resources.Definition, slug string) (*Record, error) {
	src, err := s.source(def)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(slug) == "" {
		return nil, &NotFoundError{Resource: string(def.Type), Key: slug}
	}
	return src.findBySlug(ctx, def, slug)
}

func (s *BunStore) FindByID(ctx context.Context, def resources.Definition, id string) (*Record, error) {
	src, err := s.source(def)
	if err != nil {
		return nil, err
	}
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, &NotFoundError{Resource: string(def.Type), Key: id}
	}
	return src.findByID(ctx, def, parsed)
}

func (s *BunStore) ListPublished(ctx context.Context, def resources.Definition) ([]*Record, error) {
	src, err := s.source(def)
	if err != nil {
		return nil, err
	}
	return src.listPublished(ctx, def)
}

func (s *BunStore) SlugTaken(ctx context.Context, def resources.Definition, slug, exceptID string) (bool, error) {
	src, err := s.source(def)
	if err != nil {
		return false, err
	}
	except, _ := uuid.Parse(strings.TrimSpace(exceptID))
	return src.slugTaken(ctx, slug, except)
}

// AssignSlug writes slug for id. Unique index violations surface as
// ErrSlugConflict; an empty slug clears the column.
func (s *BunStore) AssignSlug(ctx context.Context, def resources.Definition, id, slug string) error {
	src, err := s.source(def)
	if err != nil {
		return err
	}
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return &NotFoundError{Resource: string(def.Type), Key: id}
	}
	var value *string
	if slug != "" {
		value = &slug
	}
	return src.assignSlug(ctx, parsed, value, s.now())
}

func (s *BunStore) source(def resources.Definition) (source, error) {
	if s == nil {
		return nil, ErrStoreUnavailable
	}
	src, ok := s.sources[def.Type]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, def.Type)
	}
	return src, nil
}

// bunSource reads one resource table. Cached reads go through repo and are
// keyed by value (GetByID, GetByIdentifier) or by a fixed query (listPublished);
// slug collision checks always read base.
type bunSource[T row] struct {
	resource     string
	base         repository.Repository[T]
	repo         repository.Repository[T]
	newRecord    func() T
	cacheService cache.CacheService
	cachePrefix  string
}

// newBunSource wraps the repository with go-repository-cache when configured.
// namespace must match the snake-cased model name the cache decorator derives
// its keys from.
func newBunSource[T row](db *bun.DB, resource, namespace string, newRecord func() T, options bunOptions) *bunSource[T] {
	base := repository.MustNewRepository(db, repository.ModelHandlers[T]{
		NewRecord: newRecord,
		GetID: func(record T) uuid.UUID {
			return record.getID()
		},
		SetID: func(record T, id uuid.UUID) {
			record.setID(id)
		},
		GetIdentifier: func() string {
			return "slug"
		},
		GetIdentifierValue: func(record T) string {
			return stringField(record.toRaw(), "slug")
		},
	})

	src := &bunSource[T]{resource: resource, base: base, repo: base, newRecord: newRecord}
	if options.cacheService != nil && options.keySerializer != nil {
		src.repo = repositorycache.New(base, options.cacheService, options.keySerializer)
		src.cacheService = options.cacheService
		src.cachePrefix = namespace + cache.KeySeparator
	}
	return src
}

func (s *bunSource[T]) findBySlug(ctx context.Context, def resources.Definition, slug string) (*Record, error) {
	found, err := s.repo.GetByIdentifier(ctx, slug)
	if err != nil {
		return nil, mapRepositoryError(err, s.resource, slug)
	}
	return s.published(def, found, slug)
}

func (s *bunSource[T]) findByID(ctx context.Context, def resources.Definition, id uuid.UUID) (*Record, error) {
	found, err := s.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, s.resource, id.String())
	}
	return s.published(def, found, id.String())
}

// published applies the status filter after the lookup so cache keys only
// depend on the looked-up value.
func (s *bunSource[T]) published(def resources.Definition, model T, key string) (*Record, error) {
	rec, err := Parse(def, model.toRaw()).Unwrap()
	if err != nil {
		return nil, err
	}
	if !rec.Published {
		return nil, &NotFoundError{Resource: s.resource, Key: key}
	}
	return rec, nil
}

func (s *bunSource[T]) listPublished(ctx context.Context, def resources.Definition) ([]*Record, error) {
	found, _, err := s.repo.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("?TableAlias.? = ?", bun.Ident(def.StatusColumn), def.StatusValue).
				OrderExpr("?TableAlias.created_at ASC")
		}),
		// zero limit lifts the repository's default page size
		repository.SelectPaginate(0, 0),
	)
	if err != nil {
		return nil, mapRepositoryError(err, s.resource, "")
	}
	out := make([]*Record, 0, len(found))
	for _, model := range found {
		if rec, err := Parse(def, model.toRaw()).Unwrap(); err == nil {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (s *bunSource[T]) slugTaken(ctx context.Context, slug string, exceptID uuid.UUID) (bool, error) {
	found, _, err := s.base.List(ctx,
		repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("?TableAlias.slug = ?", slug)
			if exceptID != uuid.Nil {
				q = q.Where("?TableAlias.id != ?", exceptID)
			}
			return q
		}),
		repository.SelectPaginate(1, 0),
	)
	if err != nil {
		return false, mapRepositoryError(err, s.resource, slug)
	}
	return len(found) > 0, nil
}

func (s *bunSource[T]) assignSlug(ctx context.Context, id uuid.UUID, slug *string, at time.Time) error {
	patch := s.newRecord()
	patch.patchSlug(id, slug, at)
	_, err := s.repo.Update(ctx, patch,
		repository.UpdateByID(id.String()),
		repository.UpdateColumns("slug", "updated_at"),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSlugConflict
		}
		return mapRepositoryError(err, s.resource, id.String())
	}
	return s.invalidate(ctx)
}

func (s *bunSource[T]) invalidate(ctx context.Context) error {
	if s.cacheService == nil || s.cachePrefix == "" {
		return nil
	}
	return s.cacheService.DeleteByPrefix(ctx, s.cachePrefix)
}

func mapRepositoryError(err error, resource, key string) error {
	if err == nil {
		return nil
	}
	if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
		return &NotFoundError{Resource: resource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", resource, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
