package handler_test

import (
    "database/sql"
    "encoding/json"
    "fmt"
    "io"
    "net/http"
    "net/http/httptest"
    "os"
    "path/filepath"
    "strconv"
    "strings"
    "sync"
    "testing"

    _ "github.com/go-sql-driver/mysql"
    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/book-swap-exchange/internal/handler"
    "github.com/iliyamo/book-swap-exchange/internal/model"
    "github.com/iliyamo/book-swap-exchange/internal/repository"
)

// The tests in this file run against a real MySQL instance and are
// skipped unless BOOK_SWAP_TEST_DSN points at a throwaway database,
// e.g. "root:secret@tcp(127.0.0.1:3306)/book_swap_test".
// All rows are deleted before each test.

func openTestDB(t *testing.T) *sql.DB {
    t.Helper()
    dsn := os.Getenv("BOOK_SWAP_TEST_DSN")
    if dsn == "" {
        t.Skip("BOOK_SWAP_TEST_DSN not set, skipping database-backed tests")
    }
    if !strings.Contains(dsn, "parseTime") {
        sep := "?"
        if strings.Contains(dsn, "?") {
            sep = "&"
        }
        dsn += sep + "parseTime=true"
    }
    db, err := sql.Open("mysql", dsn)
    require.NoError(t, err)
    require.NoError(t, db.Ping())
    t.Cleanup(func() { _ = db.Close() })

    applySchema(t, db)
    for _, table := range []string{"swap_requests", "books", "refresh_tokens", "users"} {
        _, err := db.Exec("DELETE FROM " + table)
        require.NoError(t, err)
    }
    return db
}

// applySchema executes scripts/schema.sql statement by statement; every
// table is created with IF NOT EXISTS so reruns are cheap.
func applySchema(t *testing.T, db *sql.DB) {
    t.Helper()
    raw, err := os.ReadFile(filepath.Join("..", "..", "scripts", "schema.sql"))
    require.NoError(t, err)
    var sb strings.Builder
    for _, line := range strings.Split(string(raw), "\n") {
        if strings.HasPrefix(strings.TrimSpace(line), "--") {
            continue
        }
        sb.WriteString(line)
        sb.WriteString("\n")
    }
    for _, stmt := range strings.Split(sb.String(), ";") {
        stmt = strings.TrimSpace(stmt)
        if stmt == "" {
            continue
        }
        _, err := db.Exec(stmt)
        require.NoError(t, err, "schema statement failed: %s", stmt)
    }
}

func seedUser(t *testing.T, db *sql.DB, name string) uint64 {
    t.Helper()
    res, err := db.Exec(
        `INSERT INTO users (name, email, password_hash) VALUES (?, ?, ?)`,
        name, fmt.Sprintf("%s@example.test", strings.ToLower(name)), "x",
    )
    require.NoError(t, err)
    id, err := res.LastInsertId()
    require.NoError(t, err)
    return uint64(id)
}

func seedBook(t *testing.T, db *sql.DB, ownerID uint64, title string, available bool) uint64 {
    t.Helper()
    res, err := db.Exec(
        `INSERT INTO books (owner_id, title, author, availability) VALUES (?, ?, ?, ?)`,
        ownerID, title, "Anonymous", available,
    )
    require.NoError(t, err)
    id, err := res.LastInsertId()
    require.NoError(t, err)
    return uint64(id)
}

func newSwapHandler(db *sql.DB) *handler.SwapHandler {
    return handler.NewSwapHandler(repository.NewSwapRepo(db), repository.NewBookRepo(db))
}

// invoke runs a single handler func against a synthetic request, with
// the acting user injected the way the JWT middleware would.
func invoke(t *testing.T, h echo.HandlerFunc, method, target, body string, userID uint64, swapID uint64) *httptest.ResponseRecorder {
    t.Helper()
    var rd io.Reader
    if body != "" {
        rd = strings.NewReader(body)
    }
    req := httptest.NewRequest(method, target, rd)
    if body != "" {
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    c := echo.New().NewContext(req, rec)
    c.Set("user_id", userID)
    if swapID != 0 {
        c.SetParamNames("id")
        c.SetParamValues(strconv.FormatUint(swapID, 10))
    }
    require.NoError(t, h(c))
    return rec
}

func createSwap(t *testing.T, h *handler.SwapHandler, requesterID, requestedBookID, offeredBookID uint64) uint64 {
    t.Helper()
    body := fmt.Sprintf(`{"requested_book_id": %d, "offered_book_id": %d}`, requestedBookID, offeredBookID)
    rec := invoke(t, h.CreateSwap, http.MethodPost, "/v1/swaps", body, requesterID, 0)
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    var resp struct {
        ID     uint64 `json:"id"`
        Status string `json:"status"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Equal(t, model.StatusPending, resp.Status)
    return resp.ID
}

func bookAvailability(t *testing.T, db *sql.DB, bookID uint64) bool {
    t.Helper()
    var avail bool
    require.NoError(t, db.QueryRow(`SELECT availability FROM books WHERE id = ?`, bookID).Scan(&avail))
    return avail
}

func swapStatus(t *testing.T, db *sql.DB, swapID uint64) string {
    t.Helper()
    var status string
    require.NoError(t, db.QueryRow(`SELECT status FROM swap_requests WHERE id = ?`, swapID).Scan(&status))
    return status
}

func Test_CreateSwap_UnknownBook(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    alice := seedUser(t, db, "Alice")
    mine := seedBook(t, db, alice, "Dune", true)

    body := fmt.Sprintf(`{"requested_book_id": %d, "offered_book_id": %d}`, mine+1000, mine)
    rec := invoke(t, h.CreateSwap, http.MethodPost, "/v1/swaps", body, alice, 0)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Contains(t, rec.Body.String(), "one or both books not found")

    var n int
    require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM swap_requests`).Scan(&n))
    assert.Zero(t, n, "failed creation must not leave a row behind")
}

func Test_CreateSwap_SameBookBothSides(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    alice := seedUser(t, db, "Alice")
    book := seedBook(t, db, alice, "Dune", true)

    body := fmt.Sprintf(`{"requested_book_id": %d, "offered_book_id": %d}`, book, book)
    rec := invoke(t, h.CreateSwap, http.MethodPost, "/v1/swaps", body, alice, 0)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_AcceptSwap_FlipsBothAvailabilities(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/"+strconv.FormatUint(swapID, 10),
        `{"status": "accepted"}`, owner, swapID)
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

    var resp struct {
        Status string `json:"status"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    assert.Equal(t, model.StatusAccepted, resp.Status)
    assert.Equal(t, model.StatusAccepted, swapStatus(t, db, swapID))
    assert.False(t, bookAvailability(t, db, wanted), "requested book must be allocated")
    assert.False(t, bookAvailability(t, db, offered), "offered book must be allocated")
}

func Test_AcceptSwap_RequesterMayNot(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "accepted"}`, requester, swapID)
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.Equal(t, model.StatusPending, swapStatus(t, db, swapID))
    assert.True(t, bookAvailability(t, db, wanted))
    assert.True(t, bookAvailability(t, db, offered))
}

func Test_RejectSwap_LeavesAvailabilityAlone(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "rejected"}`, owner, swapID)
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
    assert.Equal(t, model.StatusRejected, swapStatus(t, db, swapID))
    assert.True(t, bookAvailability(t, db, wanted))
    assert.True(t, bookAvailability(t, db, offered))

    // Terminal: a second transition attempt conflicts.
    rec = invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "accepted"}`, owner, swapID)
    assert.Equal(t, http.StatusConflict, rec.Code)
}

func Test_AcceptSwap_BookAlreadyAllocated(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", false) // already claimed elsewhere
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "accepted"}`, owner, swapID)
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Contains(t, rec.Body.String(), "book no longer available")

    // The rollback leaves the request pending and the offered book free.
    assert.Equal(t, model.StatusPending, swapStatus(t, db, swapID))
    assert.True(t, bookAvailability(t, db, offered))
}

func Test_CancelSwap_DeletesRecord(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.CancelSwap, http.MethodDelete, "/v1/swaps/1", "", requester, swapID)
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

    var n int
    require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM swap_requests WHERE id = ?`, swapID).Scan(&n))
    assert.Zero(t, n, "cancelled request must be gone")
    assert.True(t, bookAvailability(t, db, wanted))
    assert.True(t, bookAvailability(t, db, offered))

    // A second cancel finds nothing.
    rec = invoke(t, h.CancelSwap, http.MethodDelete, "/v1/swaps/1", "", requester, swapID)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_CancelSwap_OnlyRequester(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    // Neither the requested book's owner nor a bystander can cancel.
    other := seedUser(t, db, "Bystander")
    for _, actor := range []uint64{owner, other} {
        rec := invoke(t, h.CancelSwap, http.MethodDelete, "/v1/swaps/1", "", actor, swapID)
        assert.Equal(t, http.StatusForbidden, rec.Code)
    }
    assert.Equal(t, model.StatusPending, swapStatus(t, db, swapID))
}

func Test_CancelSwap_ViaStatusPatch(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    // PATCH with status=cancelled follows the same rules as DELETE,
    // including the requester-only guard.
    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "cancelled"}`, owner, swapID)
    assert.Equal(t, http.StatusForbidden, rec.Code)

    rec = invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "cancelled"}`, requester, swapID)
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

    var n int
    require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM swap_requests WHERE id = ?`, swapID).Scan(&n))
    assert.Zero(t, n)
}

func Test_AcceptAfterAccept_Conflicts(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requesterA := seedUser(t, db, "Ada")
    requesterB := seedUser(t, db, "Ben")
    wanted := seedBook(t, db, owner, "Dune", true)
    offeredA := seedBook(t, db, requesterA, "Neuromancer", true)
    offeredB := seedBook(t, db, requesterB, "Snow Crash", true)
    swapA := createSwap(t, h, requesterA, wanted, offeredA)
    swapB := createSwap(t, h, requesterB, wanted, offeredB)

    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "accepted"}`, owner, swapA)
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

    // The second acceptance contends on the already-claimed book.
    rec = invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/2", `{"status": "accepted"}`, owner, swapB)
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Equal(t, model.StatusPending, swapStatus(t, db, swapB))
    assert.True(t, bookAvailability(t, db, offeredB), "losing swap must not claim its offered book")
}

func Test_ConcurrentAccepts_ExactlyOneWins(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requesterA := seedUser(t, db, "Ada")
    requesterB := seedUser(t, db, "Ben")
    wanted := seedBook(t, db, owner, "Dune", true)
    offeredA := seedBook(t, db, requesterA, "Neuromancer", true)
    offeredB := seedBook(t, db, requesterB, "Snow Crash", true)
    swapA := createSwap(t, h, requesterA, wanted, offeredA)
    swapB := createSwap(t, h, requesterB, wanted, offeredB)

    codes := make(chan int, 2)
    var wg sync.WaitGroup
    for _, id := range []uint64{swapA, swapB} {
        wg.Add(1)
        go func(swapID uint64) {
            defer wg.Done()
            // No require inside goroutines; the handlers answer via the
            // recorder and never return an error here.
            req := httptest.NewRequest(http.MethodPatch, "/v1/swaps/"+strconv.FormatUint(swapID, 10),
                strings.NewReader(`{"status": "accepted"}`))
            req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
            rec := httptest.NewRecorder()
            c := echo.New().NewContext(req, rec)
            c.Set("user_id", owner)
            c.SetParamNames("id")
            c.SetParamValues(strconv.FormatUint(swapID, 10))
            if err := h.UpdateSwapStatus(c); err != nil {
                rec.Code = http.StatusInternalServerError
            }
            codes <- rec.Code
        }(id)
    }
    wg.Wait()
    close(codes)

    got := map[int]int{}
    for code := range codes {
        got[code]++
    }
    assert.Equal(t, 1, got[http.StatusOK], "exactly one acceptance must win: %v", got)
    assert.Equal(t, 1, got[http.StatusConflict], "the other must conflict: %v", got)

    assert.False(t, bookAvailability(t, db, wanted))
    statuses := []string{swapStatus(t, db, swapA), swapStatus(t, db, swapB)}
    assert.ElementsMatch(t, []string{model.StatusAccepted, model.StatusPending}, statuses)

    // The losing side's offered book was never claimed.
    var freeOffered int
    require.NoError(t, db.QueryRow(
        `SELECT COUNT(*) FROM books WHERE id IN (?, ?) AND availability = TRUE`,
        offeredA, offeredB,
    ).Scan(&freeOffered))
    assert.Equal(t, 1, freeOffered)
}

func Test_CancelSwap_RejectedSwapConflicts(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.UpdateSwapStatus, http.MethodPatch, "/v1/swaps/1", `{"status": "rejected"}`, owner, swapID)
    require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

    // Terminal state: the requester can no longer withdraw the request.
    rec = invoke(t, h.CancelSwap, http.MethodDelete, "/v1/swaps/1", "", requester, swapID)
    assert.Equal(t, http.StatusConflict, rec.Code)
    assert.Equal(t, model.StatusRejected, swapStatus(t, db, swapID))
}

func Test_ConcurrentCancelAndAccept_ExactlyOneWins(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    swapID := createSwap(t, h, requester, wanted, offered)

    param := strconv.FormatUint(swapID, 10)
    var wg sync.WaitGroup
    var acceptCode, cancelCode int
    wg.Add(2)
    go func() {
        defer wg.Done()
        req := httptest.NewRequest(http.MethodPatch, "/v1/swaps/"+param, strings.NewReader(`{"status": "accepted"}`))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
        rec := httptest.NewRecorder()
        c := echo.New().NewContext(req, rec)
        c.Set("user_id", owner)
        c.SetParamNames("id")
        c.SetParamValues(param)
        if err := h.UpdateSwapStatus(c); err != nil {
            rec.Code = http.StatusInternalServerError
        }
        acceptCode = rec.Code
    }()
    go func() {
        defer wg.Done()
        req := httptest.NewRequest(http.MethodDelete, "/v1/swaps/"+param, nil)
        rec := httptest.NewRecorder()
        c := echo.New().NewContext(req, rec)
        c.Set("user_id", requester)
        c.SetParamNames("id")
        c.SetParamValues(param)
        if err := h.CancelSwap(c); err != nil {
            rec.Code = http.StatusInternalServerError
        }
        cancelCode = rec.Code
    }()
    wg.Wait()

    // The swap row lock serializes the two: whoever runs second
    // observes the winner's outcome, either the row gone (404) or the
    // request no longer pending (409).
    switch {
    case acceptCode == http.StatusOK:
        assert.Equal(t, http.StatusConflict, cancelCode)
        assert.Equal(t, model.StatusAccepted, swapStatus(t, db, swapID))
        assert.False(t, bookAvailability(t, db, wanted))
        assert.False(t, bookAvailability(t, db, offered))
    case cancelCode == http.StatusOK:
        assert.Equal(t, http.StatusNotFound, acceptCode)
        var n int
        require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM swap_requests WHERE id = ?`, swapID).Scan(&n))
        assert.Zero(t, n)
        assert.True(t, bookAvailability(t, db, wanted))
        assert.True(t, bookAvailability(t, db, offered))
    default:
        t.Fatalf("neither side won: accept=%d cancel=%d", acceptCode, cancelCode)
    }
}

func Test_ConcurrentAccepts_MutualPair(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    alice := seedUser(t, db, "Alice")
    bob := seedUser(t, db, "Bob")
    aliceBook := seedBook(t, db, alice, "Dune", true)
    bobBook := seedBook(t, db, bob, "Neuromancer", true)
    // Each requests the book the other offers: both swaps reference the
    // same two books with the roles reversed.
    swapByBob := createSwap(t, h, bob, aliceBook, bobBook)
    swapByAlice := createSwap(t, h, alice, bobBook, aliceBook)

    codes := make(chan int, 2)
    var wg sync.WaitGroup
    for _, tc := range []struct {
        swapID uint64
        actor  uint64
    }{
        {swapByBob, alice},
        {swapByAlice, bob},
    } {
        wg.Add(1)
        go func(swapID, actor uint64) {
            defer wg.Done()
            param := strconv.FormatUint(swapID, 10)
            req := httptest.NewRequest(http.MethodPatch, "/v1/swaps/"+param, strings.NewReader(`{"status": "accepted"}`))
            req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
            rec := httptest.NewRecorder()
            c := echo.New().NewContext(req, rec)
            c.Set("user_id", actor)
            c.SetParamNames("id")
            c.SetParamValues(param)
            if err := h.UpdateSwapStatus(c); err != nil {
                rec.Code = http.StatusInternalServerError
            }
            codes <- rec.Code
        }(tc.swapID, tc.actor)
    }
    wg.Wait()
    close(codes)

    // Book row locks are taken in ascending id order on both sides, so
    // the pair serializes cleanly: one acceptance claims both books,
    // the other conflicts. Neither side may surface a lock error as 500.
    got := map[int]int{}
    for code := range codes {
        got[code]++
    }
    assert.Equal(t, 1, got[http.StatusOK], "exactly one acceptance must win: %v", got)
    assert.Equal(t, 1, got[http.StatusConflict], "the other must conflict: %v", got)

    assert.False(t, bookAvailability(t, db, aliceBook))
    assert.False(t, bookAvailability(t, db, bobBook))
    statuses := []string{swapStatus(t, db, swapByBob), swapStatus(t, db, swapByAlice)}
    assert.ElementsMatch(t, []string{model.StatusAccepted, model.StatusPending}, statuses)
}

func Test_ListSwaps_DenormalizesBooksAndRequester(t *testing.T) {
    db := openTestDB(t)
    h := newSwapHandler(db)
    owner := seedUser(t, db, "Owner")
    requester := seedUser(t, db, "Requester")
    wanted := seedBook(t, db, owner, "Dune", true)
    offered := seedBook(t, db, requester, "Neuromancer", true)
    createSwap(t, h, requester, wanted, offered)

    rec := invoke(t, h.ListSwaps, http.MethodGet, "/v1/swaps", "", requester, 0)
    require.Equal(t, http.StatusOK, rec.Code)

    var resp struct {
        Items []repository.SwapDetail `json:"items"`
    }
    require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
    require.Len(t, resp.Items, 1)
    item := resp.Items[0]
    assert.Equal(t, model.StatusPending, item.Status)
    assert.Equal(t, "Dune", item.RequestedBook.Title)
    assert.Equal(t, "Owner", item.RequestedBook.Owner.Name)
    assert.Equal(t, "Neuromancer", item.OfferedBook.Title)
    assert.Equal(t, "Requester", item.OfferedBook.Owner.Name)
    assert.Equal(t, requester, item.RequestedBy.ID)
}
