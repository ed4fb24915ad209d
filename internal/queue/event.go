// Package queue defines message payloads exchanged over the message broker.
package queue

// SwapAcceptedEvent is published after a swap request has been durably
// accepted and both books' availability flipped. It carries enough
// information for downstream consumers to log or notify without
// querying the primary database. The event id is assigned per publish
// so consumers can deduplicate redeliveries.
type SwapAcceptedEvent struct {
    EventID            string `json:"event_id"`
    SwapID             uint64 `json:"swap_id"`
    RequestedBookID    uint64 `json:"requested_book_id"`
    RequestedBookTitle string `json:"requested_book_title"`
    OfferedBookID      uint64 `json:"offered_book_id"`
    OfferedBookTitle   string `json:"offered_book_title"`
    RequestedBy        uint64 `json:"requested_by"`
    AcceptedBy         uint64 `json:"accepted_by"`
    AcceptedAt         string `json:"accepted_at"`
}
