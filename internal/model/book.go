package model

import "time"

// Book represents a book listed by a user for swapping. Ownership is
// fixed at creation; the availability flag marks whether the book is
// still open to swap requests. The swap core only ever flips
// availability to false, and only as the side effect of an accepted
// swap. Owners may toggle it freely through the book update endpoint.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user who listed the book; immutable.
//  Title         – book title.
//  Author        – book author.
//  Genre         – optional genre label.
//  PublishedDate – optional publication date.
//  Availability  – whether the book may be requested in a swap.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Book struct {
    ID            uint64     // books.id
    OwnerID       uint64     // books.owner_id
    Title         string     // books.title
    Author        string     // books.author
    Genre         *string    // books.genre (nullable)
    PublishedDate *time.Time // books.published_date (nullable)
    Availability  bool       // books.availability
    CreatedAt     time.Time  // books.created_at
    UpdatedAt     time.Time  // books.updated_at
}
