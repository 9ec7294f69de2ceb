package session

import "context"

// UpdateFunc receives the current value (zero value and false when the id is
// unknown) and returns the value to store. Returning an error stores nothing.
type UpdateFunc[T any] func(v T, ok bool) (T, error)

type Store[T any] interface {
	Get(ctx context.Context, id string) (T, bool, error)
	Put(ctx context.Context, id string, v T) error
	// Update runs fn as one read-modify-write; concurrent updates of the same
	// store do not interleave.
	Update(ctx context.Context, id string, fn UpdateFunc[T]) (T, error)
	NewID() string
}
