// internal/domain/upload/entity.go
package upload

import (
	"errors"
	"time"
)

var (
	ErrFileTooLarge         = errors.New("file exceeds the maximum upload size")
	ErrUnsupportedType      = errors.New("unsupported file type")
	ErrInvalidImage         = errors.New("file is not a readable image")
	ErrUploadedFileNotFound = errors.New("uploaded file not found")
)

// UploadedFile records an image written to storage
type UploadedFile struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OriginalName string    `gorm:"not null;size:255" json:"originalName"`
	Key          string    `gorm:"not null;size:500;uniqueIndex" json:"key"`
	URL          string    `gorm:"not null;size:500" json:"url"`
	ThumbnailKey string    `gorm:"size:500" json:"-"`
	ThumbnailURL string    `gorm:"size:500" json:"thumbnailUrl"`
	MimeType     string    `gorm:"not null;size:100" json:"mimeType"`
	Size         int64     `gorm:"not null" json:"size"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Category     string    `gorm:"size:50;index" json:"category"`
	UploadedBy   uint      `gorm:"not null;index" json:"uploadedBy"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TableName overrides the table name
func (UploadedFile) TableName() string { return "uploaded_files" }
