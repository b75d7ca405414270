package records

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BlogPost is the persisted row of the blogs table.
type BlogPost struct {
	bun.BaseModel `bun:"table:blogs,alias:b"`

	ID              uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug            *string    `bun:"slug,unique" json:"slug,omitempty"`
	Status          string     `bun:"status,notnull,default:'draft'" json:"status"`
	Title           string     `bun:"title,notnull" json:"title"`
	Content         string     `bun:"content" json:"content"`
	BodyFormat      string     `bun:"body_format,notnull,default:'html'" json:"body_format"`
	MetaDescription *string    `bun:"meta_description" json:"meta_description,omitempty"`
	MetaKeywords    *string    `bun:"meta_keywords" json:"meta_keywords,omitempty"`
	FocusKeyword    *string    `bun:"focus_keyword" json:"focus_keyword,omitempty"`
	CoverImage      *string    `bun:"cover_image" json:"cover_image,omitempty"`
	AuthorName      *string    `bun:"author_name" json:"author_name,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

func (m *BlogPost) toRaw() Raw {
	return Raw{
		"id":               m.ID,
		"slug":             m.Slug,
		"status":           m.Status,
		"title":            m.Title,
		"content":          m.Content,
		"body_format":      m.BodyFormat,
		"meta_description": m.MetaDescription,
		"meta_keywords":    m.MetaKeywords,
		"focus_keyword":    m.FocusKeyword,
		"cover_image":      m.CoverImage,
		"author_name":      m.AuthorName,
		"created_at":       m.CreatedAt,
		"updated_at":       m.UpdatedAt,
	}
}

func (m *BlogPost) getID() uuid.UUID { return m.ID }

func (m *BlogPost) setID(id uuid.UUID) { m.ID = id }

func (m *BlogPost) patchSlug(id uuid.UUID, slug *string, at time.Time) {
	m.ID, m.Slug, m.UpdatedAt = id, slug, &at
}

// NewsArticle is the persisted row of the news table.
type NewsArticle struct {
	bun.BaseModel `bun:"table:news,alias:n"`

	ID              uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug            *string    `bun:"slug,unique" json:"slug,omitempty"`
	Published       bool       `bun:"published,notnull,default:false" json:"published"`
	Title           string     `bun:"title,notnull" json:"title"`
	Content         string     `bun:"content" json:"content"`
	MetaDescription *string    `bun:"meta_description" json:"meta_description,omitempty"`
	MetaKeywords    *string    `bun:"meta_keywords" json:"meta_keywords,omitempty"`
	ImageURL        *string    `bun:"image_url" json:"image_url,omitempty"`
	AuthorName      *string    `bun:"author_name" json:"author_name,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

func (m *NewsArticle) toRaw() Raw {
	return Raw{
		"id":               m.ID,
		"slug":             m.Slug,
		"published":        m.Published,
		"title":            m.Title,
		"content":          m.Content,
		"meta_description": m.MetaDescription,
		"meta_keywords":    m.MetaKeywords,
		"image_url":        m.ImageURL,
		"author_name":      m.AuthorName,
		"created_at":       m.CreatedAt,
		"updated_at":       m.UpdatedAt,
	}
}

func (m *NewsArticle) getID() uuid.UUID { return m.ID }

func (m *NewsArticle) setID(id uuid.UUID) { m.ID = id }

func (m *NewsArticle) patchSlug(id uuid.UUID, slug *string, at time.Time) {
	m.ID, m.Slug, m.UpdatedAt = id, slug, &at
}

// Classified is the persisted row of the classifieds table.
type Classified struct {
	bun.BaseModel `bun:"table:classifieds,alias:cl"`

	ID          uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug        *string    `bun:"slug,unique" json:"slug,omitempty"`
	Status      string     `bun:"status,notnull,default:'pending'" json:"status"`
	Title       string     `bun:"title,notnull" json:"title"`
	Description string     `bun:"description" json:"description"`
	Price       *string    `bun:"price" json:"price,omitempty"`
	ImageURL    *string    `bun:"image_url" json:"image_url,omitempty"`
	Country     *string    `bun:"country" json:"country,omitempty"`
	City        *string    `bun:"city" json:"city,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt   *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

func (m *Classified) toRaw() Raw {
	return Raw{
		"id":          m.ID,
		"slug":        m.Slug,
		"status":      m.Status,
		"title":       m.Title,
		"description": m.Description,
		"price":       m.Price,
		"image_url":   m.ImageURL,
		"country":     m.Country,
		"city":        m.City,
		"created_at":  m.CreatedAt,
		"updated_at":  m.UpdatedAt,
	}
}

func (m *Classified) getID() uuid.UUID { return m.ID }

func (m *Classified) setID(id uuid.UUID) { m.ID = id }

func (m *Classified) patchSlug(id uuid.UUID, slug *string, at time.Time) {
	m.ID, m.Slug, m.UpdatedAt = id, slug, &at
}

// Company is the persisted row of the companies table.
type Company struct {
	bun.BaseModel `bun:"table:companies,alias:co"`

	ID              uuid.UUID  `bun:",pk,type:uuid" json:"id"`
	Slug            *string    `bun:"slug,unique" json:"slug,omitempty"`
	Status          string     `bun:"status,notnull,default:'pending'" json:"status"`
	Name            string     `bun:"name,notnull" json:"name"`
	Description     string     `bun:"description" json:"description"`
	MetaDescription *string    `bun:"meta_description" json:"meta_description,omitempty"`
	MetaKeywords    *string    `bun:"meta_keywords" json:"meta_keywords,omitempty"`
	FocusKeyword    *string    `bun:"focus_keyword" json:"focus_keyword,omitempty"`
	LogoURL         *string    `bun:"logo_url" json:"logo_url,omitempty"`
	Country         *string    `bun:"country" json:"country,omitempty"`
	City            *string    `bun:"city" json:"city,omitempty"`
	CreatedAt       time.Time  `bun:"created_at,nullzero,default:current_timestamp" json:"created_at"`
	UpdatedAt       *time.Time `bun:"updated_at,nullzero" json:"updated_at,omitempty"`
}

func (m *Company) toRaw() Raw {
	return Raw{
		"id":               m.ID,
		"slug":             m.Slug,
		"status":           m.Status,
		"name":             m.Name,
		"description":      m.Description,
		"meta_description": m.MetaDescription,
		"meta_keywords":    m.MetaKeywords,
		"focus_keyword":    m.FocusKeyword,
		"logo_url":         m.LogoURL,
		"country":          m.Country,
		"city":             m.City,
		"created_at":       m.CreatedAt,
		"updated_at":       m.UpdatedAt,
	}
}

func (m *Company) getID() uuid.UUID { return m.ID }

func (m *Company) setID(id uuid.UUID) { m.ID = id }

func (m *Company) patchSlug(id uuid.UUID, slug *string, at time.Time) {
	m.ID, m.Slug, m.UpdatedAt = id, slug, &at
}

// Models lists the bun models backing the store.
func Models() []any {
	return []any{
		(*BlogPost)(nil),
		(*NewsArticle)(nil),
		(*Classified)(nil),
		(*Company)(nil),
	}
}

// CreateSchema creates the content tables when missing.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	for _, model := range Models() {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return err
		}
	}
	return nil
}
