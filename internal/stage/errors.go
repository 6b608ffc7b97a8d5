package stage

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrMissingDirectory = errors.New("missing directory")
	ErrEmptyInput       = errors.New("empty input")
	ErrCollision        = errors.New("target already exists")
	ErrFilesystem       = errors.New("filesystem operation failed")
	ErrValidation       = errors.New("validation error")
	ErrConfiguration    = errors.New("configuration error")
)

// Wrap builds an error message that includes stage context while tagging it with
// the provided marker for later classification. The marker should be one of
// the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrFilesystem
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// Graceful reports whether err should end a stage with an empty result rather
// than fail the run.
func Graceful(err error) bool {
	return errors.Is(err, ErrMissingDirectory) || errors.Is(err, ErrEmptyInput)
}

// ItemError records a failure scoped to a single file.
type ItemError struct {
	Path    string `json:"path"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

// NewItemError captures err against path.
func NewItemError(path string, err error) ItemError {
	msg := ""
	if err != nil {
		msg = err.Error()
	}
	return ItemError{Path: path, Message: msg, Err: err}
}

func (e ItemError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

func (e ItemError) Unwrap() error { return e.Err }

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "stage failure"
	}
	return strings.Join(parts, ": ")
}
