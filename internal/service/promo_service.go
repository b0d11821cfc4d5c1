package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"promo-admin/internal/model"
	"promo-admin/internal/repository"
	"promo-admin/internal/storage"

	"github.com/rs/zerolog"
)

// promoService implements PromoService.
type promoService struct {
	promoRepo   repository.PromoRepository
	images      storage.Store
	cleanupPath string
	logger      zerolog.Logger
}

// NewPromoService creates a new promo service. cleanupPath is the fixed path
// Delete tries to unlink before removing a record.
func NewPromoService(
	promoRepo repository.PromoRepository,
	images storage.Store,
	cleanupPath string,
	logger zerolog.Logger,
) PromoService {
	return &promoService{
		promoRepo:   promoRepo,
		images:      images,
		cleanupPath: cleanupPath,
		logger:      logger.With().Str("service", "promo").Logger(),
	}
}

// List retrieves all promos, oldest first.
func (s *promoService) List(ctx context.Context) ([]model.Promo, error) {
	promos, err := s.promoRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list promos")
		return nil, fmt.Errorf("failed to list promos: %w", err)
	}

	s.logger.Debug().Int("count", len(promos)).Msg("retrieved promos")

	return promos, nil
}

// Get retrieves a single promo, or model.ErrPromoNotFound.
func (s *promoService) Get(ctx context.Context, id int64) (*model.Promo, error) {
	if id <= 0 {
		return nil, model.ErrPromoNotFound
	}

	promo, err := s.promoRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Int64("promo_id", id).Msg("failed to get promo")
		return nil, fmt.Errorf("failed to get promo: %w", err)
	}

	if promo == nil {
		s.logger.Debug().Int64("promo_id", id).Msg("promo not found")
		return nil, model.ErrPromoNotFound
	}

	return promo, nil
}

// Create validates the form and the required image, stores the image under
// its original name and inserts the promo. A stored image is not removed if
// the insert fails.
func (s *promoService) Create(ctx context.Context, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error) {
	checked, err := s.validate(form, image, true)
	if err != nil {
		return nil, err
	}

	promo := &model.Promo{}
	form.ApplyTo(promo)

	promo.Image, err = s.storeImage(ctx, checked)
	if err != nil {
		return nil, err
	}

	if err := s.promoRepo.Create(ctx, promo); err != nil {
		s.logger.Error().
			Err(err).
			Str("image", promo.Image).
			Msg("failed to create promo, stored image is kept")
		return nil, fmt.Errorf("failed to create promo: %w", err)
	}

	s.logger.Info().
		Int64("promo_id", promo.ID).
		Str("image", promo.Image).
		Msg("promo created")

	return promo, nil
}

// Update validates the form and saves the promo. The stored image changes
// only when a new image is supplied; the previous file is left in place.
func (s *promoService) Update(ctx context.Context, id int64, form model.PromoForm, image *model.ImageUpload) (*model.Promo, error) {
	promo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	checked, err := s.validate(form, image, false)
	if err != nil {
		return nil, err
	}

	form.ApplyTo(promo)

	if checked != nil {
		previous := promo.Image
		promo.Image, err = s.storeImage(ctx, checked)
		if err != nil {
			return nil, err
		}
		s.logger.Debug().
			Int64("promo_id", id).
			Str("previous_image", previous).
			Str("image", promo.Image).
			Msg("promo image replaced")
	}

	if err := s.promoRepo.Update(ctx, promo); err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return nil, err
		}
		s.logger.Error().Err(err).Int64("promo_id", id).Msg("failed to update promo")
		return nil, fmt.Errorf("failed to update promo: %w", err)
	}

	s.logger.Info().Int64("promo_id", id).Msg("promo updated")

	return promo, nil
}

// Delete runs the fixed-path image cleanup and removes the promo. The
// cleanup never blocks the delete.
func (s *promoService) Delete(ctx context.Context, id int64) error {
	promo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	removed, err := storage.RemoveIfFile(s.cleanupPath)
	if err != nil {
		s.logger.Warn().Err(err).Str("path", s.cleanupPath).Msg("image cleanup failed")
	} else {
		s.logger.Debug().
			Str("path", s.cleanupPath).
			Bool("removed", removed).
			Str("image", promo.Image).
			Msg("image cleanup finished")
	}

	if err := s.promoRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrPromoNotFound) {
			return err
		}
		s.logger.Error().Err(err).Int64("promo_id", id).Msg("failed to delete promo")
		return fmt.Errorf("failed to delete promo: %w", err)
	}

	s.logger.Info().Int64("promo_id", id).Msg("promo deleted")

	return nil
}

// checkedImage is an upload whose content has been sniffed as an image.
type checkedImage struct {
	filename    string
	contentType string
	size        int64
	body        io.Reader
}

// validate checks the form and the image together so every field error is
// reported at once. It returns nil image when none was supplied.
func (s *promoService) validate(form model.PromoForm, image *model.ImageUpload, imageRequired bool) (*checkedImage, error) {
	verr := &model.ValidationError{}
	verr.Merge(form.Validate())

	var checked *checkedImage
	switch {
	case image == nil || image.Filename == "":
		if imageRequired {
			verr.Add("image", "Kolom image wajib diisi.")
		}
	default:
		contentType, body, err := storage.DetectImage(image.Body)
		switch {
		case errors.Is(err, storage.ErrNotImage):
			s.logger.Debug().
				Str("filename", image.Filename).
				Str("content_type", contentType).
				Int64("size", image.Size).
				Msg("upload is not an image")
			verr.Add("image", "Kolom image harus berupa gambar.")
		case err != nil:
			return nil, fmt.Errorf("failed to inspect image: %w", err)
		default:
			checked = &checkedImage{
				filename:    image.Filename,
				contentType: contentType,
				size:        image.Size,
				body:        body,
			}
		}
	}

	if !verr.Empty() {
		s.logger.Debug().Interface("fields", verr.Fields).Msg("promo form rejected")
		return nil, verr
	}

	return checked, nil
}

func (s *promoService) storeImage(ctx context.Context, image *checkedImage) (string, error) {
	stored, err := s.images.Put(ctx, image.filename, image.body, image.contentType)
	if err != nil {
		s.logger.Error().Err(err).Str("filename", image.filename).Int64("size", image.size).Msg("failed to store image")
		return "", fmt.Errorf("failed to store image: %w", err)
	}

	s.logger.Info().
		Str("filename", stored).
		Str("content_type", image.contentType).
		Int64("size", image.size).
		Msg("image stored")

	return stored, nil
}
