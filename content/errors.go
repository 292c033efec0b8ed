package content

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrNotFound signals that the requested row does not exist. Views
	// render a 404 for it instead of an error banner.
	ErrNotFound = errors.New("not found")

	// ErrStore signals a transport/server failure talking to the store.
	ErrStore = errors.New("store failure")
)

// ValidationError is returned before any store call is attempted.
type ValidationError struct {
	Fields  []string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.Join(e.Fields, ", ") + " required"
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// storeError translates gorm errors into the package's error kinds.
func storeError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}
