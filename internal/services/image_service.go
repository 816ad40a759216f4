package services

import (
	"database/sql"
	"errors"
	"os"

	"resellit/internal/apperr"
	"resellit/internal/domain"
	"resellit/internal/repos"
)

// ImageService manages standalone image attachments outside the item
// lifecycle paths.
type ImageService struct {
	images *repos.ImageRepo
	items  *repos.ItemRepo

	save func(*Upload) (string, error)
}

func NewImageService(images *repos.ImageRepo, items *repos.ItemRepo, itemSvc *ItemService) *ImageService {
	return &ImageService{images: images, items: items, save: itemSvc.saveImageFile}
}

func (s *ImageService) Attach(itemID int64, up *Upload) (domain.Image, error) {
	if _, err := s.items.GetViewAny(itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Image{}, apperr.New(apperr.NotFound, "Item not found")
		}
		return domain.Image{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	path, err := s.save(up)
	if err != nil {
		return domain.Image{}, err
	}
	img, err := s.images.Insert(itemID, path)
	if err != nil {
		return domain.Image{}, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	return img, nil
}

func (s *ImageService) ListByItem(itemID int64) ([]domain.Image, error) {
	if _, err := s.items.GetViewAny(itemID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.New(apperr.NotFound, "Item not found")
		}
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	imgs, err := s.images.ListByItem(itemID)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if imgs == nil {
		imgs = []domain.Image{}
	}
	return imgs, nil
}

// Remove deletes the row first, then the file best-effort. A stray file is
// recoverable; a dangling row pointing at nothing is not.
func (s *ImageService) Remove(imageID int64) error {
	img, err := s.images.Get(imageID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.New(apperr.NotFound, "Image not found")
		}
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	if err := s.images.Delete(imageID); err != nil {
		return apperr.Wrap(apperr.Internal, "Internal server error", err)
	}
	_ = os.Remove(img.FilePath)
	return nil
}
