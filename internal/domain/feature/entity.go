// internal/domain/feature/entity.go
package feature

import (
	"errors"
	"time"
)

// ErrFeatureNotFound is returned for an unknown feature image id
var ErrFeatureNotFound = errors.New("feature image not found")

// FeatureImage is a homepage banner
type FeatureImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Image     string    `gorm:"not null;size:500" json:"image"`
	Thumbnail string    `gorm:"size:500" json:"thumbnail"`
	SortOrder int       `gorm:"default:0;index" json:"sortOrder"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the table name
func (FeatureImage) TableName() string { return "feature_images" }
