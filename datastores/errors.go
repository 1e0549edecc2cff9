package datastores

import (
	"fmt"

	"github.com/pkg/errors"
)

type notFoundError struct {
	id    ContactID
	cause error
}

func (e *notFoundError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %q: %s", ErrObjectNotFound, e.id, e.cause)
	}
	return fmt.Sprintf("%s: %q", ErrObjectNotFound, e.id)
}

func (e *notFoundError) Is(target error) bool { return target == ErrObjectNotFound }

func (e *notFoundError) Unwrap() error { return e.cause }

func wrapNotFound(id ContactID, cause error) error {
	return errors.WithStack(&notFoundError{id: id, cause: cause})
}
