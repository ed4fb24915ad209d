// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrForbidden indicates that the current user is not
// authorized to perform an operation on a resource owned by someone
// else, while ErrBookUnavailable signals that a conditional claim on a
// book lost a race against another accepted swap.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation
// on a resource they do not own. Handlers should translate this
// into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an update cannot be performed because
// of conflicting state, such as transitioning a swap request that has
// already left the pending status. Handlers should translate this
// into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrBookNotFound is returned when a book id does not resolve to a row.
var ErrBookNotFound = errors.New("book not found")

// ErrSwapNotFound is returned when a swap request id does not resolve
// to a row.
var ErrSwapNotFound = errors.New("swap request not found")

// ErrBookUnavailable is returned by the conditional availability claim
// when the book has already been allocated to another accepted swap.
// Handlers should translate this into an HTTP 409 response and leave
// the losing swap request pending.
var ErrBookUnavailable = errors.New("book no longer available")
