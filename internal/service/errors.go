package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

var (
	ErrBookNotFound     = errors.New("book not found")
	ErrCategoryNotFound = errors.New("category not found")

	// ErrCategoryInUse is returned when deleting a category that books still
	// reference. Categories are never cascade-deleted.
	ErrCategoryInUse = errors.New("category still has books")
)

// PersistenceError wraps a storage failure during a write. Its message is
// the only part surfaced to clients; the cause is logged when it is built.
type PersistenceError struct {
	Resource string // "book", "category"
	Op       string // "create", "update", "delete"
	Err      error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("Failed to %s %s: %v", e.Op, e.Resource, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// persistenceFailure logs the underlying cause and wraps it.
func persistenceFailure(ctx context.Context, resource, op string, err error) error {
	log.Ctx(ctx).Error().
		Err(err).
		Str("resource", resource).
		Str("operation", op).
		Msg("persistence failure")
	return &PersistenceError{Resource: resource, Op: op, Err: err}
}
