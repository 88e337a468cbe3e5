package handler

import (
	"net/http"
	"strconv"

	"github.com/KhashayarRezaei/bookverse/internal/model"
	"github.com/KhashayarRezaei/bookverse/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// BookHandler handles catalogue HTTP requests.
type BookHandler struct {
	service service.BookService
	logger  zerolog.Logger
}

// NewBookHandler creates a new book handler.
func NewBookHandler(service service.BookService, logger zerolog.Logger) *BookHandler {
	return &BookHandler{
		service: service,
		logger:  logger.With().Str("handler", "book").Logger(),
	}
}

// BookListResponse is a page of books.
type BookListResponse struct {
	Data   []model.Book `json:"data"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}

// GetAll handles GET /api/books requests with pagination.
func (h *BookHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	books, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	if books == nil {
		books = []model.Book{}
	}

	writeJSON(w, http.StatusOK, BookListResponse{Data: books, Limit: limit, Offset: offset})
}

// GetByID handles GET /api/books/{id} requests.
func (h *BookHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid book ID", h.logger)
		return
	}

	book, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, DataResponse{Data: book})
}
