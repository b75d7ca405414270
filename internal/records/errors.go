package records

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRecord    = errors.New("records: invalid record")
	ErrSlugConflict     = errors.New("records: slug already taken")
	ErrStoreUnavailable = errors.New("records: store unavailable")
	ErrUnknownResource  = errors.New("records: resource not configured")
)

// NotFoundError is returned when a resource cannot be located or is not
// publicly resolvable.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e == nil {
		return "records: not found"
	}
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}
