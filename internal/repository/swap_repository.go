package repository

import (
    "context"
    "database/sql"
    "time"

    "github.com/iliyamo/book-swap-exchange/internal/model"
)

// SwapRepo provides persistence for swap requests. Write-side methods
// operate on the swap_requests table alone; the denormalized read model
// used for listing joins in both books and the users involved. Methods
// suffixed Tx run inside a caller-owned transaction, which the
// acceptance path uses to couple the status write with the conditional
// availability claims on both books.
type SwapRepo struct {
    db *sql.DB
}

// NewSwapRepo returns a new SwapRepo bound to the given database.
func NewSwapRepo(db *sql.DB) *SwapRepo { return &SwapRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions.
func (r *SwapRepo) DB() *sql.DB { return r.db }

// SwapBookPart is the nested book projection inside a SwapDetail. The
// owner is joined inline so clients can partition requests into "sent"
// and "received" without further lookups.
type SwapBookPart struct {
    ID           uint64        `json:"id"`
    Title        string        `json:"title"`
    Author       string        `json:"author"`
    Genre        *string       `json:"genre,omitempty"`
    Availability bool          `json:"availability"`
    Owner        SwapUserPart  `json:"owner"`
}

// SwapUserPart is the minimal user projection embedded in a SwapDetail.
type SwapUserPart struct {
    ID   uint64 `json:"id"`
    Name string `json:"name"`
}

// SwapDetail is the read-side projection of a swap request with both
// book references and the requester resolved. It is what GET /v1/swaps
// returns.
type SwapDetail struct {
    ID            uint64       `json:"id"`
    Status        string       `json:"status"`
    RequestedBook SwapBookPart `json:"requested_book"`
    OfferedBook   SwapBookPart `json:"offered_book"`
    RequestedBy   SwapUserPart `json:"requested_by"`
    CreatedAt     time.Time    `json:"created_at"`
    UpdatedAt     time.Time    `json:"updated_at"`
}

// Create inserts a new pending swap request and returns the stored row.
// Existence of both books must be checked by the caller beforehand; a
// foreign key violation still surfaces as an error rather than a
// silent partial insert.
func (r *SwapRepo) Create(ctx context.Context, requestedBookID, offeredBookID, requestedBy uint64) (*model.SwapRequest, error) {
    const q = `INSERT INTO swap_requests (requested_book_id, offered_book_id, requested_by, status) VALUES (?, ?, ?, ?)`
    res, err := r.db.ExecContext(ctx, q, requestedBookID, offeredBookID, requestedBy, model.StatusPending)
    if err != nil {
        return nil, err
    }
    id, err := res.LastInsertId()
    if err != nil {
        return nil, err
    }
    return r.GetByID(ctx, uint64(id))
}

// GetByID returns the swap request with the given id or ErrSwapNotFound.
func (r *SwapRepo) GetByID(ctx context.Context, id uint64) (*model.SwapRequest, error) {
    const q = `SELECT id, requested_book_id, offered_book_id, requested_by, status, created_at, updated_at
               FROM swap_requests WHERE id = ?`
    return r.scanRow(r.db.QueryRowContext(ctx, q, id))
}

// GetByIDTx loads a swap request inside a transaction with a row lock,
// so a concurrent accept and cancel on the same id serialize and
// exactly one of them observes the pending status.
func (r *SwapRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.SwapRequest, error) {
    const q = `SELECT id, requested_book_id, offered_book_id, requested_by, status, created_at, updated_at
               FROM swap_requests WHERE id = ? FOR UPDATE`
    return r.scanRow(tx.QueryRowContext(ctx, q, id))
}

// SetStatusTx overwrites the status of a swap request within the given
// transaction. Existence is the caller's concern: callers hold the row
// under FOR UPDATE already, and MySQL reports zero affected rows both
// for a missing id and for an update that changes nothing, so the
// count cannot distinguish the two.
func (r *SwapRepo) SetStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status string) error {
    _, err := tx.ExecContext(ctx, `UPDATE swap_requests SET status = ? WHERE id = ?`, status, id)
    return err
}

// DeleteTx removes a swap request row within the given transaction.
// Cancellation is terminal by removal, not by status: a cancelled
// request is no longer retrievable by id.
func (r *SwapRepo) DeleteTx(ctx context.Context, tx *sql.Tx, id uint64) error {
    _, err := tx.ExecContext(ctx, `DELETE FROM swap_requests WHERE id = ?`, id)
    return err
}

// ListAll returns every swap request with both books and the requester
// denormalized. Results are ordered newest first. Filtering into the
// "sent" and "received" views happens client-side on requested_by and
// on the requested book's owner.
func (r *SwapRepo) ListAll(ctx context.Context) ([]SwapDetail, error) {
    const q = `SELECT s.id, s.status, s.created_at, s.updated_at,
                      rb.id, rb.title, rb.author, rb.genre, rb.availability, ru.id, ru.name,
                      ob.id, ob.title, ob.author, ob.genre, ob.availability, ou.id, ou.name,
                      qu.id, qu.name
               FROM swap_requests s
               JOIN books rb ON rb.id = s.requested_book_id
               JOIN users ru ON ru.id = rb.owner_id
               JOIN books ob ON ob.id = s.offered_book_id
               JOIN users ou ON ou.id = ob.owner_id
               JOIN users qu ON qu.id = s.requested_by
               ORDER BY s.created_at DESC`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    details := make([]SwapDetail, 0)
    for rows.Next() {
        var d SwapDetail
        var rbGenre, obGenre sql.NullString
        if err := rows.Scan(
            &d.ID, &d.Status, &d.CreatedAt, &d.UpdatedAt,
            &d.RequestedBook.ID, &d.RequestedBook.Title, &d.RequestedBook.Author, &rbGenre, &d.RequestedBook.Availability,
            &d.RequestedBook.Owner.ID, &d.RequestedBook.Owner.Name,
            &d.OfferedBook.ID, &d.OfferedBook.Title, &d.OfferedBook.Author, &obGenre, &d.OfferedBook.Availability,
            &d.OfferedBook.Owner.ID, &d.OfferedBook.Owner.Name,
            &d.RequestedBy.ID, &d.RequestedBy.Name,
        ); err != nil {
            return nil, err
        }
        if rbGenre.Valid {
            g := rbGenre.String
            d.RequestedBook.Genre = &g
        }
        if obGenre.Valid {
            g := obGenre.String
            d.OfferedBook.Genre = &g
        }
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return details, nil
}

// scanRow maps a single swap_requests row, translating sql.ErrNoRows
// into ErrSwapNotFound.
func (r *SwapRepo) scanRow(row *sql.Row) (*model.SwapRequest, error) {
    var s model.SwapRequest
    err := row.Scan(&s.ID, &s.RequestedBookID, &s.OfferedBookID, &s.RequestedBy, &s.Status, &s.CreatedAt, &s.UpdatedAt)
    if err != nil {
        if err == sql.ErrNoRows {
            return nil, ErrSwapNotFound
        }
        return nil, err
    }
    return &s, nil
}
