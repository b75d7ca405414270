package records

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-seo/internal/resources"
)

// Raw is a row as returned by the external store, keyed by column name.
type Raw map[string]any

// Result is the outcome of validating a Raw row: either Ok with a record or
// Invalid with a reason.
type Result struct {
	record *Record
	reason error
}

// Ok wraps a validated record.
func Ok(record *Record) Result { return Result{record: record} }

// Invalid wraps a validation failure.
func Invalid(reason error) Result { return Result{reason: reason} }

// IsOk reports whether the row validated.
func (r Result) IsOk() bool { return r.record != nil && r.reason == nil }

// Record returns the validated record, nil when invalid.
func (r Result) Record() *Record { return r.record }

// Reason returns the validation failure, nil when ok.
func (r Result) Reason() error { return r.reason }

// Unwrap returns the record or the validation failure.
func (r Result) Unwrap() (*Record, error) {
	if r.IsOk() {
		return r.record, nil
	}
	if r.reason == nil {
		return nil, ErrInvalidRecord
	}
	return nil, r.reason
}

// Parse converts a raw row into a Record for def. Rows without an id, or with
// slug or id values containing path separators, are Invalid.
func Parse(def resources.Definition, raw Raw) Result {
	if raw == nil {
		return Invalid(fmt.Errorf("%w: empty row", ErrInvalidRecord))
	}
	rec := &Record{
		Type:            def.Type,
		ID:              stringField(raw, "id"),
		Slug:            stringField(raw, "slug"),
		Published:       statusMatches(raw[def.StatusColumn], def.StatusValue),
		Title:           stringField(raw, "title", "name"),
		Body:            stringField(raw, "content", "body", "description"),
		BodyFormat:      strings.ToLower(stringField(raw, "body_format")),
		MetaDescription: stringField(raw, "meta_description"),
		MetaKeywords:    stringField(raw, "meta_keywords"),
		FocusKeyword:    stringField(raw, "focus_keyword"),
		ImageURL:        stringField(raw, "image_url", "cover_image", "logo_url"),
		Author:          stringField(raw, "author_name", "author"),
		Country:         stringField(raw, "country"),
		City:            stringField(raw, "city"),
		Price:           stringField(raw, "price"),
		CreatedAt:       timeField(raw, "created_at"),
		UpdatedAt:       timeField(raw, "updated_at"),
	}
	if rec.BodyFormat != FormatMarkdown {
		rec.BodyFormat = FormatHTML
	}

	err := validation.ValidateStruct(rec,
		validation.Field(&rec.Type, validation.Required),
		validation.Field(&rec.ID, validation.Required, validation.By(noPathSeparator)),
		validation.Field(&rec.Slug, validation.By(noPathSeparator)),
	)
	if err != nil {
		return Invalid(fmt.Errorf("%w: %v", ErrInvalidRecord, err))
	}
	return Ok(rec)
}

func noPathSeparator(value any) error {
	s, _ := value.(string)
	if strings.ContainsAny(s, "/?#") {
		return validation.NewError("records_path_separator", "must not contain path separators")
	}
	return nil
}

func stringField(raw Raw, keys ...string) string {
	for _, key := range keys {
		value, ok := raw[key]
		if !ok || value == nil {
			continue
		}
		var out string
		switch typed := value.(type) {
		case string:
			out = typed
		case *string:
			if typed != nil {
				out = *typed
			}
		case []byte:
			out = string(typed)
		case fmt.Stringer:
			out = typed.String()
		default:
			out = fmt.Sprint(typed)
		}
		if out = strings.TrimSpace(out); out != "" {
			return out
		}
	}
	return ""
}

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"}

func timeField(raw Raw, key string) *time.Time {
	switch typed := raw[key].(type) {
	case time.Time:
		if typed.IsZero() {
			return nil
		}
		return &typed
	case *time.Time:
		if typed == nil || typed.IsZero() {
			return nil
		}
		value := *typed
		return &value
	case string:
		trimmed := strings.TrimSpace(typed)
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, trimmed); err == nil {
				return &parsed
			}
		}
	}
	return nil
}

func statusMatches(value, want any) bool {
	if value == nil || want == nil {
		return false
	}
	switch expected := want.(type) {
	case bool:
		return truthy(value) == expected
	case string:
		return strings.EqualFold(strings.TrimSpace(fmt.Sprint(value)), expected)
	default:
		return fmt.Sprint(value) == fmt.Sprint(expected)
	}
}

func truthy(value any) bool {
	switch typed := value.(type) {
	case bool:
		return typed
	case *bool:
		return typed != nil && *typed
	case int64:
		return typed != 0
	case int:
		return typed != 0
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && parsed
	default:
		return false
	}
}
