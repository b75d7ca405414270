package sitemapcmd

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const regenerateMessageType = "seo.sitemap.regenerate"

var documentName = regexp.MustCompile(`^sitemap(-[a-z0-9-]+)?$`)

// Written reports one document produced by a regeneration.
type Written struct {
	Document string
	Path     string
	Bytes    int
}

// RegenerateSitemapsCommand rebuilds sitemap documents into the document
// cache. An empty Documents list regenerates every document. When OutputDir
// is set the documents are also written there as "<name>.xml".
type RegenerateSitemapsCommand struct {
	Documents []string        `json:"documents,omitempty"`
	OutputDir string          `json:"output_dir,omitempty"`
	Result    func([]Written) `json:"-"`
}

// Type implements command.Message.
func (RegenerateSitemapsCommand) Type() string { return regenerateMessageType }

// Validate checks document names.
func (m RegenerateSitemapsCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Documents, validation.Each(
			validation.Required,
			validation.By(func(value any) error {
				name, _ := value.(string)
				if !documentName.MatchString(strings.TrimSuffix(strings.TrimSpace(name), ".xml")) {
					return validation.NewError("seo.sitemap.regenerate.document_invalid", "document must be a sitemap document name")
				}
				return nil
			}),
		)),
		validation.Field(&m.OutputDir, validation.By(func(value any) error {
			dir, _ := value.(string)
			if dir != "" && strings.TrimSpace(dir) == "" {
				return validation.NewError("seo.sitemap.regenerate.output_dir_blank", "output_dir must not be blank")
			}
			return nil
		})),
	)
}
