// internal/domain/feature/service.go
package feature

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/domain/upload"
)

// ImageStore uploads and removes images
type ImageStore interface {
	UploadImage(ctx context.Context, req *upload.ImageUploadRequest) (*upload.UploadedFile, error)
	DeleteByURL(ctx context.Context, url string) error
}

// Service manages homepage feature images
type Service struct {
	repo   Repository
	images ImageStore
}

// NewService creates a new feature image service
func NewService(repo Repository, images ImageStore) *Service {
	return &Service{repo: repo, images: images}
}

// GetFeatureImages lists banners in display order
func (s *Service) GetFeatureImages(ctx context.Context) ([]FeatureImage, error) {
	return s.repo.List(ctx)
}

// AddFeatureImage uploads a banner and appends it to the display order
func (s *Service) AddFeatureImage(ctx context.Context, req *upload.ImageUploadRequest) (*FeatureImage, error) {
	req.Category = "features"
	file, err := s.images.UploadImage(ctx, req)
	if err != nil {
		return nil, err
	}

	order, err := s.repo.NextSortOrder(ctx)
	if err != nil {
		return nil, err
	}

	f := &FeatureImage{Image: file.URL, Thumbnail: file.ThumbnailURL, SortOrder: order}
	if err := s.repo.Create(ctx, f); err != nil {
		if cleanupErr := s.images.DeleteByURL(ctx, file.URL); cleanupErr != nil {
			logrus.WithError(cleanupErr).WithField("url", file.URL).Warn("failed to remove orphaned upload")
		}
		return nil, err
	}
	return f, nil
}

// DeleteFeatureImage removes a banner and its stored image
func (s *Service) DeleteFeatureImage(ctx context.Context, id uint) error {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.images.DeleteByURL(ctx, f.Image); err != nil {
		logrus.WithError(err).WithField("feature_id", id).Warn("failed to remove feature image file")
	}
	return nil
}
