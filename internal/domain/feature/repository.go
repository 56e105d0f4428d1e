// internal/domain/feature/repository.go
package feature

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository is the feature image persistence contract
type Repository interface {
	List(ctx context.Context) ([]FeatureImage, error)
	FindByID(ctx context.Context, id uint) (*FeatureImage, error)
	NextSortOrder(ctx context.Context) (int, error)
	Create(ctx context.Context, f *FeatureImage) error
	Delete(ctx context.Context, id uint) error
}

// GormRepository implements Repository on gorm
type GormRepository struct {
	db *gorm.DB
}

// NewGormRepository creates a gorm backed feature image repository
func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) List(ctx context.Context) ([]FeatureImage, error) {
	var images []FeatureImage
	if err := r.db.WithContext(ctx).Order("sort_order ASC, id ASC").Find(&images).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve feature images: %w", err)
	}
	return images, nil
}

func (r *GormRepository) FindByID(ctx context.Context, id uint) (*FeatureImage, error) {
	var f FeatureImage
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeatureNotFound
		}
		return nil, fmt.Errorf("failed to retrieve feature image: %w", err)
	}
	return &f, nil
}

func (r *GormRepository) NextSortOrder(ctx context.Context) (int, error) {
	var max *int
	err := r.db.WithContext(ctx).Model(&FeatureImage{}).Select("MAX(sort_order)").Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read sort order: %w", err)
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

func (r *GormRepository) Create(ctx context.Context, f *FeatureImage) error {
	if err := r.db.WithContext(ctx).Create(f).Error; err != nil {
		return fmt.Errorf("failed to create feature image: %w", err)
	}
	return nil
}

func (r *GormRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&FeatureImage{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete feature image: %w", err)
	}
	return nil
}
