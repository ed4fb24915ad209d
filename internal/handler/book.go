package handler

import (
    "errors"   // errors.Is comparisons against repository sentinels
    "net/http" // HTTP status codes
    "strconv"  // parsing path parameters
    "strings"  // trimming request fields
    "time"     // parsing published dates

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/iliyamo/book-swap-exchange/internal/model"      // domain entities
    "github.com/iliyamo/book-swap-exchange/internal/repository" // repository layer
)

// BookHandler exposes the book catalog: listing a member's own books,
// browsing everyone's books, and the owner-gated create/update/delete
// operations. JWT authentication is assumed to have run for all
// endpoints except the public catalog listing.
type BookHandler struct {
    Books *repository.BookRepo
}

// NewBookHandler constructs a BookHandler. The repository must be
// non-nil.
func NewBookHandler(books *repository.BookRepo) *BookHandler {
    if books == nil {
        panic("nil repository passed to NewBookHandler")
    }
    return &BookHandler{Books: books}
}

// bookReq is the request body shared by create and update. Genre and
// published date are optional; availability defaults to true on create
// and is only changed on update when the field is present.
type bookReq struct {
    Title         string  `json:"title"`
    Author        string  `json:"author"`
    Genre         *string `json:"genre"`
    PublishedDate *string `json:"published_date"`
    Availability  *bool   `json:"availability"`
}

// bookResp is the JSON shape returned for a single book.
type bookResp struct {
    ID            uint64  `json:"id"`
    OwnerID       uint64  `json:"owner_id"`
    Title         string  `json:"title"`
    Author        string  `json:"author"`
    Genre         *string `json:"genre,omitempty"`
    PublishedDate *string `json:"published_date,omitempty"`
    Availability  bool    `json:"availability"`
    CreatedAt     string  `json:"created_at"`
    UpdatedAt     string  `json:"updated_at"`
}

func toBookResp(b *model.Book) bookResp {
    resp := bookResp{
        ID:           b.ID,
        OwnerID:      b.OwnerID,
        Title:        b.Title,
        Author:       b.Author,
        Genre:        b.Genre,
        Availability: b.Availability,
        CreatedAt:    b.CreatedAt.UTC().Format(time.RFC3339),
        UpdatedAt:    b.UpdatedAt.UTC().Format(time.RFC3339),
    }
    if b.PublishedDate != nil {
        iso := b.PublishedDate.UTC().Format("2006-01-02")
        resp.PublishedDate = &iso
    }
    return resp
}

// parsePublished accepts a YYYY-MM-DD date string and returns the
// parsed time, or nil when the input is nil or empty.
func parsePublished(s *string) (*time.Time, error) {
    if s == nil || strings.TrimSpace(*s) == "" {
        return nil, nil
    }
    t, err := time.Parse("2006-01-02", strings.TrimSpace(*s))
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// MyBooks handles GET /v1/books. It returns the books listed by the
// current user, newest first.
func (h *BookHandler) MyBooks(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    books, err := h.Books.ListByOwner(c.Request().Context(), userID)
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load books"})
    }
    items := make([]bookResp, 0, len(books))
    for i := range books {
        items = append(items, toBookResp(&books[i]))
    }
    return c.JSON(http.StatusOK, echo.Map{"items": items})
}

// AllBooks handles GET /v1/books/all. It returns every listed book with
// its owner's name joined so a browsing client can see who to swap
// with. No authentication is required.
func (h *BookHandler) AllBooks(c echo.Context) error {
    details, err := h.Books.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load books"})
    }
    return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// CreateBook handles POST /v1/books. Title and author are required;
// availability defaults to true so a freshly listed book is open to
// swap requests immediately.
func (h *BookHandler) CreateBook(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    var req bookReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    req.Title = strings.TrimSpace(req.Title)
    req.Author = strings.TrimSpace(req.Author)
    if req.Title == "" || req.Author == "" {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and author are required"})
    }
    published, err := parsePublished(req.PublishedDate)
    if err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "published_date must be YYYY-MM-DD"})
    }
    book := model.Book{
        OwnerID:       userID,
        Title:         req.Title,
        Author:        req.Author,
        Genre:         req.Genre,
        PublishedDate: published,
        Availability:  true,
    }
    if req.Availability != nil {
        book.Availability = *req.Availability
    }
    if err := h.Books.Create(c.Request().Context(), &book); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to create book"})
    }
    return c.JSON(http.StatusCreated, toBookResp(&book))
}

// UpdateBook handles PUT /v1/books/:id. Only the owner may update a
// book. Omitted fields keep their stored value; an explicit
// availability field overwrites the flag, which is how an owner can
// relist a book after a completed exchange.
func (h *BookHandler) UpdateBook(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
    }
    var req bookReq
    if err := c.Bind(&req); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    ctx := c.Request().Context()
    current, err := h.Books.GetByID(ctx, bookID)
    if err != nil {
        if errors.Is(err, repository.ErrBookNotFound) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load book"})
    }
    // Merge request fields over the stored row
    if t := strings.TrimSpace(req.Title); t != "" {
        current.Title = t
    }
    if a := strings.TrimSpace(req.Author); a != "" {
        current.Author = a
    }
    if req.Genre != nil {
        current.Genre = req.Genre
    }
    if req.PublishedDate != nil {
        published, perr := parsePublished(req.PublishedDate)
        if perr != nil {
            return c.JSON(http.StatusBadRequest, echo.Map{"error": "published_date must be YYYY-MM-DD"})
        }
        current.PublishedDate = published
    }
    if req.Availability != nil {
        current.Availability = *req.Availability
    }
    if err := h.Books.Update(ctx, current, userID); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to update book"})
        }
    }
    return c.JSON(http.StatusOK, toBookResp(current))
}

// DeleteBook handles DELETE /v1/books/:id. Only the owner may delete.
// Swap requests referencing the book are removed alongside it by the
// FK cascade.
func (h *BookHandler) DeleteBook(c echo.Context) error {
    userID, err := getUserID(c)
    if err != nil {
        return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
    }
    bookID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || bookID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid book id"})
    }
    if err := h.Books.Delete(c.Request().Context(), bookID, userID); err != nil {
        switch {
        case errors.Is(err, repository.ErrBookNotFound):
            return c.JSON(http.StatusNotFound, echo.Map{"error": "book not found"})
        case errors.Is(err, repository.ErrForbidden):
            return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
        default:
            return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to delete book"})
        }
    }
    return c.JSON(http.StatusOK, echo.Map{"message": "book deleted"})
}
