// internal/domain/upload/service.go
package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/fashion-store/internal/config"
	"github.com/your-org/fashion-store/internal/infrastructure/storage"
)

// Service resizes uploaded images, writes them to storage and records them
type Service struct {
	repo  Repository
	store storage.Store
	cfg   config.UploadConfig
	now   func() time.Time
}

// NewService creates a new upload service
func NewService(repo Repository, store storage.Store, cfg config.UploadConfig) *Service {
	return &Service{
		repo:  repo,
		store: store,
		cfg:   cfg,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ImageUploadRequest is one image from a multipart form
type ImageUploadRequest struct {
	File       io.Reader
	Filename   string
	Size       int64
	Category   string
	UploadedBy uint
}

// UploadImage decodes the image, fits it inside the configured bounds,
// re-encodes it as JPEG and stores it with a thumbnail
func (s *Service) UploadImage(ctx context.Context, req *ImageUploadRequest) (*UploadedFile, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	img, err := imaging.Decode(io.LimitReader(req.File, s.cfg.MaxSize+1), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	if s.cfg.ImageMaxWidth > 0 && s.cfg.ImageMaxHeight > 0 {
		b := img.Bounds()
		if b.Dx() > s.cfg.ImageMaxWidth || b.Dy() > s.cfg.ImageMaxHeight {
			img = imaging.Fit(img, s.cfg.ImageMaxWidth, s.cfg.ImageMaxHeight, imaging.Lanczos)
		}
	}

	category := strings.Trim(req.Category, "/ ")
	if category == "" {
		category = "general"
	}
	id := uuid.New().String()
	key := fmt.Sprintf("%s/%s/%s.jpg", category, s.now().Format("2006/01"), id)
	thumbKey := fmt.Sprintf("%s/%s/thumb/%s.jpg", category, s.now().Format("2006/01"), id)

	encoded, err := s.encode(img)
	if err != nil {
		return nil, err
	}
	url, err := s.store.Put(ctx, key, "image/jpeg", bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}

	thumbURL := ""
	if s.cfg.ThumbnailWidth > 0 || s.cfg.ThumbnailHeight > 0 {
		thumb := imaging.Resize(img, s.cfg.ThumbnailWidth, s.cfg.ThumbnailHeight, imaging.Lanczos)
		thumbBytes, err := s.encode(thumb)
		if err == nil {
			thumbURL, err = s.store.Put(ctx, thumbKey, "image/jpeg", bytes.NewReader(thumbBytes))
		}
		if err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to store thumbnail")
			thumbKey = ""
		}
	} else {
		thumbKey = ""
	}

	b := img.Bounds()
	f := &UploadedFile{
		OriginalName: filepath.Base(req.Filename),
		Key:          key,
		URL:          url,
		ThumbnailKey: thumbKey,
		ThumbnailURL: thumbURL,
		MimeType:     "image/jpeg",
		Size:         int64(len(encoded)),
		Width:        b.Dx(),
		Height:       b.Dy(),
		Category:     category,
		UploadedBy:   req.UploadedBy,
	}
	if err := s.repo.Create(ctx, f); err != nil {
		s.removeObjects(ctx, f)
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"key":         key,
		"uploaded_by": req.UploadedBy,
		"size":        f.Size,
	}).Info("image uploaded")
	return f, nil
}

// DeleteByURL removes a stored image and its thumbnail. Unknown URLs are
// ignored so callers can delete images that were never uploaded here.
func (s *Service) DeleteByURL(ctx context.Context, url string) error {
	f, err := s.repo.FindByURL(ctx, url)
	if err != nil {
		if errors.Is(err, ErrUploadedFileNotFound) {
			return nil
		}
		return err
	}
	s.removeObjects(ctx, f)
	return s.repo.Delete(ctx, f.ID)
}

func (s *Service) removeObjects(ctx context.Context, f *UploadedFile) {
	for _, key := range []string{f.Key, f.ThumbnailKey} {
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("failed to delete stored object")
		}
	}
}

func (s *Service) validate(req *ImageUploadRequest) error {
	if s.cfg.MaxSize > 0 && req.Size > s.cfg.MaxSize {
		return ErrFileTooLarge
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(req.Filename)), ".")
	for _, allowed := range s.cfg.AllowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
}

func (s *Service) encode(img image.Image) ([]byte, error) {
	quality := s.cfg.JPEGQuality
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}
