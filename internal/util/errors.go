package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrStoreNotFound indicates the store file does not exist.
	// Run the import command to create it.
	ErrStoreNotFound = errors.New("store not found")

	// ErrStoreUnreadable indicates the store exists but cannot be opened or queried
	ErrStoreUnreadable = errors.New("store unreadable")

	// ErrSchemaMissing indicates the store opened but has no releases table
	ErrSchemaMissing = errors.New("store schema missing")

	// ErrStoreExists indicates an import target already exists and was not replaced
	ErrStoreExists = errors.New("store already exists")

	// ErrNoResults indicates a search completed without matching any release.
	// It is a completion signal, not a failure.
	ErrNoResults = errors.New("no results")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRecord indicates a dump row that cannot be imported
	ErrInvalidRecord = errors.New("invalid record")
)
