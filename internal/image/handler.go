// AngelaMos | 2026
// handler.go

package image

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ozgesarac/ceyizdiz/internal/bookid"
	"github.com/ozgesarac/ceyizdiz/internal/core"
	"github.com/ozgesarac/ceyizdiz/internal/middleware"
)

// maxUploadBytes caps multipart uploads at 10MB.
const maxUploadBytes = 10 << 20

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/image", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/upload", h.Upload)
		r.Get("/{imageID}", h.Get)
		r.Delete("/{imageID}", h.Delete)
		r.Post("/ocr/{imageID}", h.OCR)
	})
}

func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		core.BadRequest(w, "invalid multipart body or file too large")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		core.BadRequest(w, "image file required")
		return
	}
	defer file.Close() //nolint:errcheck // read-only form file

	data, err := io.ReadAll(file)
	if err != nil {
		core.BadRequest(w, "could not read image file")
		return
	}

	var dowryID *string
	if v := r.FormValue("dowry_id"); v != "" {
		dowryID = &v
	}

	image, err := h.service.Upload(r.Context(), userID, data, dowryID)
	if err != nil {
		if errors.Is(err, ErrUnsupportedType) {
			core.BadRequest(w, "only jpeg, png and webp images are accepted")
			return
		}
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "dowry")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, ToImageResponse(image))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	imageID := chi.URLParam(r, "imageID")

	data, contentType, err := h.service.Fetch(r.Context(), userID, imageID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "image")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // client disconnects are not actionable
	_, _ = w.Write(data)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	imageID := chi.URLParam(r, "imageID")

	if err := h.service.Delete(r.Context(), userID, imageID); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "image")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}

// OCR runs book identification on an owned image. A degraded pipeline
// still answers 200 with matched=false; only a missing engine is 503.
func (h *Handler) OCR(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	imageID := chi.URLParam(r, "imageID")

	result, err := h.service.IdentifyBook(r.Context(), userID, imageID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "image")
			return
		}
		if errors.Is(err, bookid.ErrEngineUnavailable) {
			core.ServiceUnavailable(w, "text recognition engine unavailable")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, OCRResponse{
		Title:   result.Title,
		Author:  result.Author,
		Matched: result.Matched,
	})
}
