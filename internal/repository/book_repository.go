package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/book-swap-exchange/internal/model"
)

// BookRepo provides CRUD operations for books and the conditional
// availability claim used by swap acceptance. All timestamp fields are
// assumed to be stored in UTC.
type BookRepo struct {
    db *sql.DB
}

// NewBookRepo returns a new BookRepo bound to the given database.
func NewBookRepo(db *sql.DB) *BookRepo { return &BookRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span books and swap requests.
func (r *BookRepo) DB() *sql.DB { return r.db }

// BookDetail is the read-side projection of a book together with its
// owner's display name. It is returned by ListAll for the public
// catalog so clients do not need a second lookup to show who owns a
// book.
type BookDetail struct {
    ID            uint64     `json:"id"`
    OwnerID       uint64     `json:"owner_id"`
    OwnerName     string     `json:"owner_name"`
    Title         string     `json:"title"`
    Author        string     `json:"author"`
    Genre         *string    `json:"genre,omitempty"`
    PublishedDate *string    `json:"published_date,omitempty"`
    Availability  bool       `json:"availability"`
    CreatedAt     time.Time  `json:"created_at"`
}

// Create inserts a new book owned by ownerID and returns the stored
// row. Availability defaults to true unless the caller explicitly
// lists the book as unavailable.
func (r *BookRepo) Create(ctx context.Context, b *model.Book) error {
    const q = `INSERT INTO books (owner_id, title, author, genre, published_date, availability) VALUES (?, ?, ?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, b.OwnerID, b.Title, b.Author, b.Genre, b.PublishedDate, b.Availability)
    if err != nil {
        return err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return err
    }
    b.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults
    return r.scanOne(ctx, b.ID, b)
}

// GetByID returns the book with the given id or ErrBookNotFound.
func (r *BookRepo) GetByID(ctx context.Context, id uint64) (*model.Book, error) {
    var b model.Book
    if err := r.scanOne(ctx, id, &b); err != nil {
        return nil, err
    }
    return &b, nil
}

// GetByIDTx is GetByID within the scope of an existing transaction.
// The row is locked for update so concurrent acceptances serialize on
// the books they both reference.
func (r *BookRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Book, error) {
    const q = `SELECT id, owner_id, title, author, genre, published_date, availability, created_at, updated_at
               FROM books WHERE id = ? FOR UPDATE`
    var b model.Book
    var genre sql.NullString
    var published sql.NullTime
    err := tx.QueryRowContext(ctx, q, id).Scan(
        &b.ID, &b.OwnerID, &b.Title, &b.Author, &genre, &published, &b.Availability, &b.CreatedAt, &b.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrBookNotFound
        }
        return nil, err
    }
    if genre.Valid {
        g := genre.String
        b.Genre = &g
    }
    if published.Valid {
        p := published.Time
        b.PublishedDate = &p
    }
    return &b, nil
}

// ListByOwner returns all books listed by the given user, newest first.
func (r *BookRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Book, error) {
    const q = `SELECT id, owner_id, title, author, genre, published_date, availability, created_at, updated_at
               FROM books WHERE owner_id = ? ORDER BY created_at DESC`
    rows, err := r.db.QueryContext(ctx, q, ownerID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    books := make([]model.Book, 0)
    for rows.Next() {
        var b model.Book
        var genre sql.NullString
        var published sql.NullTime
        if err := rows.Scan(&b.ID, &b.OwnerID, &b.Title, &b.Author, &genre, &published, &b.Availability, &b.CreatedAt, &b.UpdatedAt); err != nil {
            return nil, err
        }
        if genre.Valid {
            g := genre.String
            b.Genre = &g
        }
        if published.Valid {
            p := published.Time
            b.PublishedDate = &p
        }
        books = append(books, b)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return books, nil
}

// ListAll returns every listed book joined with its owner's name for
// the public catalog, newest first. When no books exist an empty slice
// is returned.
func (r *BookRepo) ListAll(ctx context.Context) ([]BookDetail, error) {
    const q = `SELECT b.id, b.owner_id, u.name, b.title, b.author, b.genre, b.published_date, b.availability, b.created_at
               FROM books b
               JOIN users u ON u.id = b.owner_id
               ORDER BY b.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]BookDetail, 0)
    for rows.Next() {
        var d BookDetail
        var genre sql.NullString
        var published sql.NullTime
        if err := rows.Scan(&d.ID, &d.OwnerID, &d.OwnerName, &d.Title, &d.Author, &genre, &published, &d.Availability, &d.CreatedAt); err != nil {
            return nil, err
        }
        if genre.Valid {
            g := genre.String
            d.Genre = &g
        }
        if published.Valid {
            iso := published.Time.UTC().Format("2006-01-02")
            d.PublishedDate = &iso
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// Update overwrites the mutable fields of a book after verifying that
// the caller owns it. It returns ErrBookNotFound when the id does not
// resolve and ErrForbidden when the book belongs to a different user.
// The owner reference itself is never updated.
func (r *BookRepo) Update(ctx context.Context, b *model.Book, actorID uint64) error {
    current, err := r.GetByID(ctx, b.ID)
    if err != nil {
        return err
    }
    if current.OwnerID != actorID {
        return ErrForbidden
    }
    const q = `UPDATE books SET title = ?, author = ?, genre = ?, published_date = ?, availability = ? WHERE id = ?`
    if _, err := r.db.ExecContext(ctx, q, b.Title, b.Author, b.Genre, b.PublishedDate, b.Availability, b.ID); err != nil {
        return err
    }
    return r.scanOne(ctx, b.ID, b)
}

// Delete removes a book after verifying ownership. Swap requests
// referencing the book are removed by the FK cascade.
func (r *BookRepo) Delete(ctx context.Context, id, actorID uint64) error {
    current, err := r.GetByID(ctx, id)
    if err != nil {
        return err
    }
    if current.OwnerID != actorID {
        return ErrForbidden
    }
    _, err = r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
    return err
}

// ClaimTx flips a book's availability to false on the condition that it
// is still true. It is the conditional write the acceptance protocol
// builds on: when zero rows match, another accepted swap has already
// allocated the book and ErrBookUnavailable is returned so the caller
// can roll the whole transaction back.
func (r *BookRepo) ClaimTx(ctx context.Context, tx *sql.Tx, bookID uint64) error {
    const q = `UPDATE books SET availability = FALSE WHERE id = ? AND availability = TRUE`
    res, err := tx.ExecContext(ctx, q, bookID)
    if err != nil {
        return err
    }
    n, err := res.RowsAffected()
    if err != nil {
        return err
    }
    if n == 0 {
        return ErrBookUnavailable
    }
    return nil
}

// scanOne loads a single book row into dst, mapping sql.ErrNoRows to
// ErrBookNotFound.
func (r *BookRepo) scanOne(ctx context.Context, id uint64, dst *model.Book) error {
    const q = `SELECT id, owner_id, title, author, genre, published_date, availability, created_at, updated_at
               FROM books WHERE id = ?`
    var genre sql.NullString
    var published sql.NullTime
    err := r.db.QueryRowContext(ctx, q, id).Scan(
        &dst.ID, &dst.OwnerID, &dst.Title, &dst.Author, &genre, &published, &dst.Availability, &dst.CreatedAt, &dst.UpdatedAt,
    )
    if err != nil {
        if err == sql.ErrNoRows {
            return ErrBookNotFound
        }
        return err
    }
    dst.Genre = nil
    dst.PublishedDate = nil
    if genre.Valid {
        g := genre.String
        dst.Genre = &g
    }
    if published.Valid {
        p := published.Time
        dst.PublishedDate = &p
    }
    return nil
}
