package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrListingNotFound = errors.New("listing not found")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")

// ValidationError aggregates every failed field check in a single error so
// the client receives the full field→message map, not just the first failure.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, k+": "+e.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError from a field→message map.
func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// ImageUploadError signals that the image hosting gateway did not return a
// usable URL. Detail carries the gateway's failure description verbatim.
type ImageUploadError struct {
	Detail string
}

func (e *ImageUploadError) Error() string {
	return fmt.Sprintf("image upload failed: %s", e.Detail)
}
