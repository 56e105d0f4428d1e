// internal/domain/upload/repository.go
package upload

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the uploaded file persistence contract
type Repository interface {
	Create(ctx context.Context, f *UploadedFile) error
	FindByURL(ctx context.Context, url string) (*UploadedFile, error)
	Delete(ctx context.Context, id uint) error
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed upload repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Create(ctx context.Context, f *UploadedFile) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to save file info: %w", err)
	}
	return nil
}

func (r *GormRepository) FindByURL(ctx context.Context, url string) (*UploadedFile, error) {
	var f UploadedFile
	if err := r.db.WithContext(ctx).Where("url = ?", url).First(&f).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadedFileNotFound
		}
		return nil, fmt.Errorf("failed to retrieve file info: %w", err)
	}
	return &f, nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&UploadedFile{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete file info: %w", err)
	}
	return nil
}
