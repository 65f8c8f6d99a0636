// AngelaMos | 2026
// handler.go

package dowry

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
	r.Route("/dowry", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{dowryID}", h.Get)
		r.Put("/{dowryID}", h.Update)
		r.Patch("/{dowryID}/status", h.UpdateStatus)
		r.Delete("/{dowryID}", h.Delete)
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateDowryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	dowry, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "category")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToDowryResponse(dowry))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	q := r.URL.Query()
	params := ListDowriesParams{
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

	dowries, total, err := h.service.List(r.Context(), userID, params)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Paginated(
		w,
		ToDowryResponseList(dowries),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dowryID := chi.URLParam(r, "dowryID")

	dowry, err := h.service.Get(r.Context(), userID, dowryID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dowry")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDowryResponse(dowry))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dowryID := chi.URLParam(r, "dowryID")

	var req UpdateDowryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	dowry, err := h.service.Update(r.Context(), userID, dowryID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dowry")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, ToDowryResponse(dowry))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dowryID := chi.URLParam(r, "dowryID")

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	err := h.service.UpdateStatus(r.Context(), userID, dowryID, req.Status)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dowry")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	dowryID := chi.URLParam(r, "dowryID")

	if err := h.service.Delete(r.Context(), userID, dowryID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dowry")
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
