package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"

	"promo-admin/internal/model"
	"promo-admin/internal/service"

	"github.com/rs/zerolog"
)

const (
	promoIndexPath = "/admin/promosi"

	// multipartMemory is the part of a multipart body kept in memory; the rest spills to temp files.
	multipartMemory = 8 << 20
)

// PromoHandler handles the promo admin pages and the public promo listing.
type PromoHandler struct {
	service  service.PromoService
	views    *Views
	maxBytes int64
	logger   zerolog.Logger
}

// NewPromoHandler creates a new promo handler. maxBytes limits the size of a
// submitted form including its image.
func NewPromoHandler(service service.PromoService, views *Views, maxBytes int64, logger zerolog.Logger) *PromoHandler {
	return &PromoHandler{
		service:  service,
		views:    views,
		maxBytes: maxBytes,
		logger:   logger.With().Str("handler", "promo").Logger(),
	}
}

// Index handles GET /admin/promosi.
func (h *PromoHandler) Index(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.List(r.Context())
	if err != nil {
		h.renderError(w, http.StatusInternalServerError, "Gagal memuat data promosi")
		return
	}

	h.render(w, http.StatusOK, pageIndex, pageData{
		Title:  "Data Promosi",
		Flash:  popFlash(w, r),
		Promos: promos,
	})
}

// Create handles GET /admin/promosi/create.
func (h *PromoHandler) Create(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, pageForm, h.createPage(model.PromoForm{}, nil))
}

// Store handles POST /admin/promosi.
func (h *PromoHandler) Store(w http.ResponseWriter, r *http.Request) {
	form, image, ok := h.readForm(w, r)
	if !ok {
		return
	}
	defer closeUpload(image)

	promo, err := h.service.Create(r.Context(), form, image)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			h.render(w, http.StatusUnprocessableEntity, pageForm, h.createPage(form, verr.Fields))
			return
		}
		h.renderError(w, http.StatusInternalServerError, "Gagal menyimpan data promosi")
		return
	}

	h.logger.Info().Int64("promo_id", promo.ID).Msg("promo stored")
	h.redirect(w, r, model.FlashCreated)
}

// Edit handles GET /admin/promosi/{id}/edit.
func (h *PromoHandler) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}

	promo, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleLookupError(w, err)
		return
	}

	h.render(w, http.StatusOK, pageForm, h.editPage(promo, model.PromoFormFromPromo(promo), nil))
}

// Update handles PUT /admin/promosi/{id}.
func (h *PromoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}

	form, image, ok := h.readForm(w, r)
	if !ok {
		return
	}
	defer closeUpload(image)

	_, err := h.service.Update(r.Context(), id, form, image)
	if err != nil {
		var verr *model.ValidationError
		if errors.As(err, &verr) {
			promo, getErr := h.service.Get(r.Context(), id)
			if getErr != nil {
				h.handleLookupError(w, getErr)
				return
			}
			h.render(w, http.StatusUnprocessableEntity, pageForm, h.editPage(promo, form, verr.Fields))
			return
		}
		h.handleLookupError(w, err)
		return
	}

	h.logger.Info().Int64("promo_id", id).Msg("promo edited")
	h.redirect(w, r, model.FlashEdited)
}

// Destroy handles DELETE /admin/promosi/{id}.
func (h *PromoHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, ok := h.promoID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleLookupError(w, err)
		return
	}

	h.redirect(w, r, model.FlashDeleted)
}

// List handles GET /api/promosi.
func (h *PromoHandler) List(w http.ResponseWriter, r *http.Request) {
	promos, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, promos)
}

// promoID parses the {id} path value. Anything that is not a positive
// integer is answered with the not-found page.
func (h *PromoHandler) promoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.logger.Debug().Str("id", raw).Msg("invalid promo id")
		h.render(w, http.StatusNotFound, pageNotFound, pageData{
			Title:   "Tidak ditemukan",
			Message: model.ErrPromoNotFound.Message,
		})
		return 0, false
	}
	return id, true
}

// readForm parses the submitted multipart form and the optional `image` file.
// Form parsing may already have happened in the method override middleware.
func (h *PromoHandler) readForm(w http.ResponseWriter, r *http.Request) (model.PromoForm, *model.ImageUpload, bool) {
	if r.MultipartForm == nil {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				h.logger.Warn().Int64("limit", tooLarge.Limit).Msg("upload too large")
				h.renderError(w, http.StatusRequestEntityTooLarge,
					fmt.Sprintf("Ukuran unggahan melebihi batas %d byte", tooLarge.Limit))
				return model.PromoForm{}, nil, false
			}
			h.logger.Warn().Err(err).Msg("malformed form submission")
			h.renderError(w, http.StatusBadRequest, "Formulir tidak dapat dibaca")
			return model.PromoForm{}, nil, false
		}
	}

	form := model.PromoFormFromValues(r.PostFormValue)

	image, err := imageUpload(r.MultipartForm)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open uploaded image")
		h.renderError(w, http.StatusBadRequest, "Gambar tidak dapat dibaca")
		return model.PromoForm{}, nil, false
	}

	return form, image, true
}

// imageUpload returns the first file submitted as `image`, or nil when none was sent.
func imageUpload(form *multipart.Form) (*model.ImageUpload, error) {
	if form == nil {
		return nil, nil
	}

	files := form.File["image"]
	if len(files) == 0 || files[0].Filename == "" {
		return nil, nil
	}

	header := files[0]
	file, err := header.Open()
	if err != nil {
		return nil, err
	}

	return &model.ImageUpload{
		Filename: filepath.Base(header.Filename),
		Size:     header.Size,
		Body:     file,
	}, nil
}

func closeUpload(image *model.ImageUpload) {
	if image == nil {
		return
	}
	if c, ok := image.Body.(io.Closer); ok {
		c.Close()
	}
}

func (h *PromoHandler) handleLookupError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrPromoNotFound) {
		h.render(w, http.StatusNotFound, pageNotFound, pageData{
			Title:   "Tidak ditemukan",
			Message: model.ErrPromoNotFound.Message,
		})
		return
	}

	h.logger.Error().Err(err).Msg("promo request failed")
	h.renderError(w, http.StatusInternalServerError, "Terjadi kesalahan pada server")
}

func (h *PromoHandler) redirect(w http.ResponseWriter, r *http.Request, flash string) {
	setFlash(w, flash)
	http.Redirect(w, r, promoIndexPath, http.StatusSeeOther)
}

func (h *PromoHandler) createPage(form model.PromoForm, errs map[string]string) pageData {
	return pageData{
		Title:  "Tambah Promosi",
		Form:   form,
		Errors: errs,
		Action: promoIndexPath,
	}
}

func (h *PromoHandler) editPage(promo *model.Promo, form model.PromoForm, errs map[string]string) pageData {
	return pageData{
		Title:  "Edit Promosi",
		Promo:  promo,
		Form:   form,
		Errors: errs,
		Action: fmt.Sprintf("%s/%d", promoIndexPath, promo.ID),
		Method: http.MethodPut,
	}
}

func (h *PromoHandler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, pageError, pageData{Title: "Kesalahan", Message: message})
}

func (h *PromoHandler) render(w http.ResponseWriter, status int, page string, data pageData) {
	if err := h.views.Render(w, status, page, data); err != nil {
		h.logger.Error().Err(err).Str("page", page).Msg("failed to render page")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
