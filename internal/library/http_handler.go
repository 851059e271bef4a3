package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"librarycatalog/internal/httpx"
)

var validate = newValidator()

// newValidator reports fields by their JSON names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type HTTPHandler struct {
	manager   *Manager
	newMember func(memberID string) Subscriber
}

// NewHTTPHandler exposes m over HTTP. newMember builds the subscriber that is
// registered for POST /v1/subscribers.
func NewHTTPHandler(m *Manager, newMember func(memberID string) Subscriber) *HTTPHandler {
	return &HTTPHandler{manager: m, newMember: newMember}
}

// Register mounts the catalog routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/books", h.Search)
	mux.HandleFunc("POST /v1/books", h.AddBook)
	mux.HandleFunc("DELETE /v1/books/{isbn}", h.RemoveBook)
	mux.HandleFunc("GET /v1/loans", h.ListLoans)
	mux.HandleFunc("POST /v1/loans", h.LoanBook)
	mux.HandleFunc("POST /v1/returns", h.ReturnBook)
	mux.HandleFunc("POST /v1/subscribers", h.Subscribe)
}

type addBookReq struct {
	Title  string `json:"title"`
	Author string `json:"author"`
	ISBN   string `json:"isbn"`
}

type loanReq struct {
	ISBN       string `json:"isbn" validate:"required"`
	BorrowerID string `json:"borrower_id" validate:"required"`
}

type subscribeReq struct {
	MemberID string `json:"member_id" validate:"required"`
}

// Search handles GET /v1/books?q=
func (h *HTTPHandler) Search(w http.ResponseWriter, r *http.Request) {
	books := h.manager.Search(r.URL.Query().Get("q"))
	httpx.JSONSuccessWithRequest(r, w, books, map[string]interface{}{"total": len(books)})
}

// AddBook handles POST /v1/books. Fields are stored as given.
func (h *HTTPHandler) AddBook(w http.ResponseWriter, r *http.Request) {
	var req addBookReq
	if !decode(w, r, &req) {
		return
	}
	book := h.manager.AddBook(r.Context(), req.Title, req.Author, req.ISBN)
	httpx.JSONSuccessCreatedWithRequest(r, w, book)
}

// RemoveBook handles DELETE /v1/books/{isbn}
func (h *HTTPHandler) RemoveBook(w http.ResponseWriter, r *http.Request) {
	isbn := r.PathValue("isbn")
	if !h.manager.RemoveBook(isbn) {
		notFound(w, r, "book", isbn)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// ListLoans handles GET /v1/loans
func (h *HTTPHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans := h.manager.Loans()
	httpx.JSONSuccessWithRequest(r, w, loans, map[string]interface{}{"total": len(loans)})
}

// LoanBook handles POST /v1/loans
func (h *HTTPHandler) LoanBook(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if !decodeValid(w, r, &req) {
		return
	}
	loan, ok := h.manager.LoanBook(r.Context(), req.ISBN, req.BorrowerID)
	if !ok {
		notFound(w, r, "book", req.ISBN)
		return
	}
	httpx.JSONSuccessCreatedWithRequest(r, w, loan)
}

// ReturnBook handles POST /v1/returns
func (h *HTTPHandler) ReturnBook(w http.ResponseWriter, r *http.Request) {
	var req loanReq
	if !decodeValid(w, r, &req) {
		return
	}
	if _, ok := h.manager.ReturnBook(r.Context(), req.ISBN, req.BorrowerID); !ok {
		notFound(w, r, "loan", req.ISBN+" for "+req.BorrowerID)
		return
	}
	httpx.JSONSuccessNoContent(w)
}

// Subscribe handles POST /v1/subscribers
func (h *HTTPHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeReq
	if !decodeValid(w, r, &req) {
		return
	}
	h.manager.RegisterObserver(h.newMember(req.MemberID))
	httpx.JSONSuccessCreatedWithRequest(r, w, map[string]interface{}{
		"member_id":   req.MemberID,
		"subscribers": h.manager.SubscriberCount(),
	})
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "BAD_REQUEST", "Invalid request body", nil)
		return false
	}
	return true
}

func decodeValid(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !decode(w, r, dst) {
		return false
	}
	if err := validate.Struct(dst); err != nil {
		httpx.JSONErrorWithRequest(r, w, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid input", validationDetails(err))
		return false
	}
	return true
}

func validationDetails(err error) []httpx.ErrorDetail {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []httpx.ErrorDetail{{Message: err.Error()}}
	}
	details := make([]httpx.ErrorDetail, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, httpx.ErrorDetail{
			Field:   fe.Field(),
			Message: fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()),
		})
	}
	return details
}

func notFound(w http.ResponseWriter, r *http.Request, kind, key string) {
	httpx.JSONErrorWithRequest(r, w, http.StatusNotFound, "NOT_FOUND", fmt.Sprintf("%s %s: %v", kind, key, ErrNotFound), nil)
}
