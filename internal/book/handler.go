// AngelaMos | 2026
// handler.go

package book

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/ozgesarac/ceyizdiz/internal/core"
	"github.com/ozgesarac/ceyizdiz/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/book", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{bookID}", h.Get)
		r.Put("/{bookID}", h.Update)
		r.Patch("/{bookID}/status", h.UpdateStatus)
		r.Delete("/{bookID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	book, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToBookResponse(book))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	params := ListBooksParams{
		Page:       parseIntQuery(r, "page", 1),
		PageSize:   parseIntQuery(r, "limit", 20),
		Search:     q.Get("search"),
		Status:     q.Get("status"),
		CategoryID: q.Get("Category"),
	}

	if params.Status != "" &&
		params.Status != StatusPurchased &&
		params.Status != StatusNotPurchased {
		core.BadRequest(w, "invalid status filter")
		return
	}

	books, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToBookResponseList(books),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookID := chi.URLParam(r, "bookID")

	book, err := h.service.Get(r.Context(), userID, bookID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "book")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookResponse(book))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookID := chi.URLParam(r, "bookID")

	var req UpdateBookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	book, err := h.service.Update(r.Context(), userID, bookID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "book")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToBookResponse(book))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookID := chi.URLParam(r, "bookID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.UpdateStatus(r.Context(), userID, bookID, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "book")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	bookID := chi.URLParam(r, "bookID")

	if err := h.service.Delete(r.Context(), userID, bookID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "book")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
