// Package common defines the sentinel errors shared by the letshang storage
// and session layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound     = errors.New("not found")
	ErrStorageFault = errors.New("storage fault")

	// Upload errors.
	ErrUnsupportedImage = errors.New("unsupported image type")

	// Caller-side validation before publish. Never reaches the store layer.
	ErrValidationFault = errors.New("validation error")

	// Any failure while publishing the current draft.
	ErrPublishFault = errors.New("failed to publish event")
)
