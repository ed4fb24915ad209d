package model

import "time"

// Swap request statuses as stored in the swap_requests.status column.
// A request starts at pending and leaves it exactly once: accepted and
// rejected are terminal and keep the row, cancellation deletes the row
// instead of writing a terminal status. StatusCancelled therefore never
// appears in the database; it exists only as a wire value clients may
// send on a transition.
const (
    StatusPending   = "pending"
    StatusAccepted  = "accepted"
    StatusRejected  = "rejected"
    StatusCancelled = "cancelled"
)

// ValidStatus reports whether s is a status value a client is allowed to
// submit on a transition request.
func ValidStatus(s string) bool {
    switch s {
    case StatusAccepted, StatusRejected, StatusCancelled:
        return true
    }
    return false
}

// IsTerminal reports whether a stored status permits no further
// transition.
func IsTerminal(s string) bool {
    return s == StatusAccepted || s == StatusRejected
}

// CanTransition reports whether a swap request may move from its current
// stored status to the target status. Only pending requests may move,
// and only to accepted or rejected; cancellation is modelled as a delete
// and is likewise only permitted while pending.
func CanTransition(from, to string) bool {
    if from != StatusPending {
        return false
    }
    switch to {
    case StatusAccepted, StatusRejected, StatusCancelled:
        return true
    }
    return false
}

// SwapRequest records one user's proposal to exchange a book they own
// for a book owned by someone else. The requested book is the one the
// requester wants; the offered book is the one they give up in return.
// Availability of both books is untouched until the request is accepted.
//
// Fields:
//  ID              – primary key identifier.
//  RequestedBookID – book the requester wants to receive.
//  OfferedBookID   – book the requester puts up in exchange.
//  RequestedBy     – user who created the request.
//  Status          – pending, accepted or rejected (cancelled rows are deleted).
//  CreatedAt       – creation timestamp.
//  UpdatedAt       – last update timestamp.
type SwapRequest struct {
    ID              uint64    // swap_requests.id
    RequestedBookID uint64    // swap_requests.requested_book_id
    OfferedBookID   uint64    // swap_requests.offered_book_id
    RequestedBy     uint64    // swap_requests.requested_by
    Status          string    // swap_requests.status
    CreatedAt       time.Time // swap_requests.created_at
    UpdatedAt       time.Time // swap_requests.updated_at
}
