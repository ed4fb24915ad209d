package model

import "time"

// User represents an application user record as stored in the `users`
// table. The json tags are omitted because handlers define separate
// response types with their own JSON shape. Every registered user
// carries the MEMBER role: all members may list books and propose
// swaps, authorization for individual swap transitions is decided from
// ownership fields rather than roles.
type User struct {
    ID           uint64    // users.id
    Name         string    // users.name
    Email        string    // users.email
    PasswordHash string    // users.password_hash
    Role         string    // users.role
    IsActive     bool      // users.is_active
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
