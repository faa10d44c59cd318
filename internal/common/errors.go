// Package common defines shared constants and sentinel errors used across
// credvault components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound  = errors.New("not found")
	ErrorDuplicate = errors.New("already exists")

	// Storage-level errors. The backing medium was unreachable or corrupt;
	// the one class a caller may treat as transient and retry.
	ErrorStorage = errors.New("storage failure")
)
