package slugscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-seo/internal/reslug"
	"github.com/goliatone/go-seo/internal/resources"
)

const reassignMessageType = "seo.slugs.reassign"

// ReassignSlugCommand regenerates the slug of one record from a new title.
type ReassignSlugCommand struct {
	Resource string              `json:"resource"`
	ID       string              `json:"id"`
	Title    string              `json:"title"`
	Result   func(reslug.Result) `json:"-"`
}

// Type implements command.Message.
func (ReassignSlugCommand) Type() string { return reassignMessageType }

// Validate ensures the resource is known and the record id is present.
func (m ReassignSlugCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Resource, validation.Required, validation.By(func(value any) error {
			name, _ := value.(string)
			if _, err := resources.ParseType(name); err != nil {
				return validation.NewError("seo.slugs.reassign.resource_invalid", "resource must be blog, news, classified or company")
			}
			return nil
		})),
		validation.Field(&m.ID, validation.Required, validation.By(func(value any) error {
			id, _ := value.(string)
			if strings.ContainsAny(id, "/?# ") {
				return validation.NewError("seo.slugs.reassign.id_invalid", "id must be a single path segment")
			}
			return nil
		})),
		validation.Field(&m.Title, validation.Length(0, 500)),
	)
}
