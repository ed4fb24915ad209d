package handler

import (
    "errors"   // errors.Is comparisons against repository sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "time"     // event timestamps

    "github.com/google/uuid"      // event ids for published messages
    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/book-swap-exchange/internal/model"      // swap status vocabulary
    "github.com/iliyamo/book-swap-exchange/internal/queue"      // event payloads
    "github.com/iliyamo/book-swap-exchange/internal/repository" // repository layer
    queue_publisher "github.com/iliyamo/book-swap-exchange/internal/service"
)

// SwapHandler implements the swap request lifecycle: creation of a
// pending request, the accept/reject transition, and cancellation.
// The accept path runs inside a single transaction that couples the
// status write with conditional availability claims on both books, so
// a swap is only durably accepted when both books were still free to
// allocate. All methods assume JWT authentication has already run.
type SwapHandler struct {
    Swaps *repository.SwapRepo
    Books *repository.BookRepo
}

// NewSwapHandler constructs a SwapHandler. Both repositories must be
// non-nil.
func NewSwapHandler(swaps *repository.SwapRepo, books *repository.BookRepo) *SwapHandler {
    if swaps == nil || books == nil {
        panic("nil repository passed to NewSwapHandler")
    }
    return &SwapHandler{Swaps: swaps, Books: books}
}

// swapResp is the JSON shape of a swap request on the write side.
type swapResp struct {
    ID              uint64 `json:"id"`
    RequestedBookID uint64 `json:"requested_book_id"`
    OfferedBookID   uint64 `json:"offered_book_id"`
    RequestedBy     uint64 `json:"requested_by"`
    Status          string `json:"status"`
    CreatedAt       string `json:"created_at"`
    UpdatedAt       string `json:"updated_at"`
}

func toSwapResp(s *model.SwapRequest) swapResp {
    return swapResp{
        ID:              s.ID,
        RequestedBookID: s.RequestedBookID,
        OfferedBookID:   s.OfferedBookID,
        RequestedBy:     s.RequestedBy,
        Status:          s.Status,
        CreatedAt:       s.CreatedAt.UTC().Format(time.RFC3339),
        UpdatedAt:       s.UpdatedAt.UTC().Format(time.RFC3339),
    }
}

// authorizeTransition decides whether the acting user may move the
// swap to the target status, and whether the stored status still
// permits the move. Cancellation is reserved for the requester;
// accept and reject are reserved for the owner of the requested book.
// The ownership check on accept/reject is a deliberate strengthening
// over the behavior this service replaces, which let any
// authenticated caller overwrite the status.
func authorizeTransition(s *model.SwapRequest, requestedBookOwner, actorID uint64, target string) error {
    switch target {
    case model.StatusCancelled:
        if actorID != s.RequestedBy {
            return repository.ErrForbidden
        }
    case model.StatusAccepted, model.StatusRejected:
        if actorID != requestedBookOwner {
            return repository.ErrForbidden
        }
    default:
        return repository.ErrConflict
    }
    if !model.CanTransition(s.Status, target) {
        return repository.ErrConflict
    }
    return nil
}

// CreateSwap handles POST /v1/swaps. The body must name the book the
// caller wants and the book they offer in exchange. Both ids must
// resolve and must differ; availability is untouched at request time.
func (h *SwapHandler) CreateSwap(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var body struct {
        RequestedBookID uint64 `json:"requested_book_id"`
        OfferedBookID   uint64 `json:"offered_book_id"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if body.RequestedBookID == 0 || body.OfferedBookID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "requested_book_id and offered_book_id are required"})
    }
    // Requesting a book against itself can never complete; reject early.
    if body.RequestedBookID == body.OfferedBookID {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "requested and offered books must differ"})
    }
    ctx := c.Request().Context()
    if _, err := h.Books.GetByID(ctx, body.RequestedBookID); err != nil {
        if errors.Is(err, repository.ErrBookNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "one or both books not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load book"})
    }
    if _, err := h.Books.GetByID(ctx, body.OfferedBookID); err != nil {
        if errors.Is(err, repository.ErrBookNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "one or both books not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load book"})
    }
    swap, err := h.Swaps.Create(ctx, body.RequestedBookID, body.OfferedBookID, userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create swap request"})
    }
    return c.JSON(http.StatusCreated, toSwapResp(swap))
}

// ListSwaps handles GET /v1/swaps. It returns every swap request with
// both books and the requester denormalized; clients partition the
// result into "sent" and "received" views on requested_by and on the
// requested book's owner.
func (h *SwapHandler) ListSwaps(c echo.Context) error {
    details, err := h.Swaps.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load swap requests"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// UpdateSwapStatus handles PATCH /v1/swaps/:id with a body of
// {"status": "accepted"|"rejected"|"cancelled"}. A cancelled status is
// routed through the same rules as DELETE. Accept and reject require
// the caller to own the requested book and the request to still be
// pending. On acceptance the transition and the availability claims on
// both books commit or fail as one unit: if either book has already
// been allocated to another accepted swap, the whole transaction rolls
// back, the caller receives 409 and the request remains pending.
func (h *SwapHandler) UpdateSwapStatus(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    swapID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || swapID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid swap id"})
    }
    var body struct {
        Status string `json:"status"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    if !model.ValidStatus(body.Status) {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "status must be accepted, rejected or cancelled"})
    }
    if body.Status == model.StatusCancelled {
        return h.cancel(c, swapID, userID)
    }

    ctx := c.Request().Context()
    tx, err := h.Swaps.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    // Lock the swap row so a concurrent accept or cancel on the same id
    // serializes behind us and observes the outcome.
    swap, err := h.Swaps.GetByIDTx(ctx, tx, swapID)
    if err != nil {
        if errors.Is(err, repository.ErrSwapNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "swap not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load swap"})
    }
    // Every book row lock in this transaction is taken in ascending
    // book-id order, reads included: a mutual pair of swaps (each
    // requesting the book the other offers) accepted concurrently
    // would otherwise lock requested-first on both sides and deadlock.
    var requested, offered *model.Book
    if body.Status == model.StatusAccepted {
        first, second := swap.RequestedBookID, swap.OfferedBookID
        if second < first {
            first, second = second, first
        }
        locked := make(map[uint64]*model.Book, 2)
        for _, bookID := range []uint64{first, second} {
            b, berr := h.Books.GetByIDTx(ctx, tx, bookID)
            if berr != nil {
                if errors.Is(berr, repository.ErrBookNotFound) {
                    return c.JSON(http.StatusNotFound, echo.Map{"error": "one or both books not found"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load book"})
            }
            locked[bookID] = b
        }
        requested = locked[swap.RequestedBookID]
        offered = locked[swap.OfferedBookID]
    } else {
        requested, err = h.Books.GetByIDTx(ctx, tx, swap.RequestedBookID)
        if err != nil {
            if errors.Is(err, repository.ErrBookNotFound) {
                return c.JSON(http.StatusNotFound, echo.Map{"error": "one or both books not found"})
            }
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load book"})
        }
    }
    if err := authorizeTransition(swap, requested.OwnerID, userID, body.Status); err != nil {
        if errors.Is(err, repository.ErrForbidden) {
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to update this swap"})
        }
        return c.JSON(http.StatusConflict, echo.Map{"error": "swap is no longer pending"})
    }

    if body.Status == model.StatusAccepted {
        // Both rows are already locked above; claiming in the same
        // ascending order keeps the ordering invariant in one place.
        first, second := swap.RequestedBookID, swap.OfferedBookID
        if second < first {
            first, second = second, first
        }
        for _, bookID := range []uint64{first, second} {
            if err := h.Books.ClaimTx(ctx, tx, bookID); err != nil {
                if errors.Is(err, repository.ErrBookUnavailable) {
                    return c.JSON(http.StatusConflict, echo.Map{"error": "book no longer available"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update book availability"})
            }
        }
    }
    if err := h.Swaps.SetStatusTx(ctx, tx, swapID, body.Status); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update swap status"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true

    if body.Status == model.StatusAccepted {
        // Best effort: the exchange is already durable, a publish
        // failure is logged inside the publisher and otherwise ignored.
        _ = queue_publisher.PublishSwapAccepted(ctx, queue.SwapAcceptedEvent{
            EventID:            uuid.NewString(),
            SwapID:             swap.ID,
            RequestedBookID:    requested.ID,
            RequestedBookTitle: requested.Title,
            OfferedBookID:      offered.ID,
            OfferedBookTitle:   offered.Title,
            RequestedBy:        swap.RequestedBy,
            AcceptedBy:         userID,
            AcceptedAt:         time.Now().UTC().Format(time.RFC3339),
        })
    }

    updated, err := h.Swaps.GetByID(ctx, swapID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to reload swap"})
    }
    return c.JSON(http.StatusOK, toSwapResp(updated))
}

// CancelSwap handles DELETE /v1/swaps/:id. Only the requester may
// cancel, and only while the request is still pending. Cancellation
// removes the record entirely; the id is no longer retrievable
// afterwards.
func (h *SwapHandler) CancelSwap(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    swapID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || swapID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid swap id"})
    }
    return h.cancel(c, swapID, userID)
}

// cancel implements the shared cancellation path for DELETE and for a
// PATCH carrying the cancelled status. It runs in a transaction with
// the swap row locked so a racing acceptance either completes before
// the delete (409 here) or finds the row gone (404 there).
func (h *SwapHandler) cancel(c echo.Context, swapID, userID uint64) error {
    ctx := c.Request().Context()
    tx, err := h.Swaps.DB().BeginTx(ctx, nil)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start transaction"})
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    swap, err := h.Swaps.GetByIDTx(ctx, tx, swapID)
    if err != nil {
        if errors.Is(err, repository.ErrSwapNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "swap not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load swap"})
    }
    if err := authorizeTransition(swap, 0, userID, model.StatusCancelled); err != nil {
        if errors.Is(err, repository.ErrForbidden) {
            return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to cancel this swap"})
        }
        return c.JSON(http.StatusConflict, echo.Map{"error": "swap is no longer pending"})
    }
    if err := h.Swaps.DeleteTx(ctx, tx, swapID); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete swap"})
    }
    if err := tx.Commit(); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to commit transaction"})
    }
    committed = true
    return c.JSON(http.StatusOK, echo.Map{"message": "swap request cancelled"})
}
