package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/fashion-store/internal/config"
)

type memoryRepository struct {
	files map[uint]*UploadedFile
}

func (m *memoryRepository) Create(_ context.Context, f *UploadedFile) error {
	f.ID = uint(len(m.files) + 1)
	m.files[f.ID] = f
	return nil
}

func (m *memoryRepository) FindByURL(_ context.Context, url string) (*UploadedFile, error) {
	for _, f := range m.files {
		if f.URL == url {
			return f, nil
		}
	}
	return nil, ErrUploadedFileNotFound
}

func (m *memoryRepository) Delete(_ context.Context, id uint) error {
	delete(m.files, id)
	return nil
}

type memoryStore struct {
	objects map[string][]byte
}

func (m *memoryStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[key] = data
	return m.URL(key), nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	delete(m.objects, key)
	return nil
}

func (m *memoryStore) URL(key string) string { return "/uploads/" + key }

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, x%h, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func setup(t *testing.T) (*Service, *memoryRepository, *memoryStore) {
	t.Helper()
	repo := &memoryRepository{files: map[uint]*UploadedFile{}}
	store := &memoryStore{objects: map[string][]byte{}}
	cfg := config.UploadConfig{
		MaxSize:           1 << 20,
		AllowedExtensions: []string{"jpg", "png"},
		ImageMaxWidth:     400,
		ImageMaxHeight:    400,
		ThumbnailWidth:    100,
		JPEGQuality:       80,
	}
	return NewService(repo, store, cfg), repo, store
}

func TestUploadImage(t *testing.T) {
	ctx := context.Background()

	t.Run("resizes and stores a thumbnail", func(t *testing.T) {
		svc, repo, store := setup(t)
		data := testImage(t, 800, 600)

		f, err := svc.UploadImage(ctx, &ImageUploadRequest{
			File: bytes.NewReader(data), Filename: "banner.png", Size: int64(len(data)), Category: "features", UploadedBy: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, 400, f.Width)
		assert.Equal(t, 300, f.Height)
		assert.True(t, strings.HasPrefix(f.Key, "features/"))
		assert.NotEmpty(t, f.ThumbnailURL)
		assert.Len(t, store.objects, 2)
		assert.Len(t, repo.files, 1)

		require.NoError(t, svc.DeleteByURL(ctx, f.URL))
		assert.Empty(t, store.objects)
		assert.Empty(t, repo.files)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		svc, _, store := setup(t)

		_, err := svc.UploadImage(ctx, &ImageUploadRequest{File: strings.NewReader("x"), Filename: "a.exe", Size: 1})
		assert.ErrorIs(t, err, ErrUnsupportedType)

		_, err = svc.UploadImage(ctx, &ImageUploadRequest{File: strings.NewReader("x"), Filename: "a.png", Size: 2 << 20})
		assert.ErrorIs(t, err, ErrFileTooLarge)

		_, err = svc.UploadImage(ctx, &ImageUploadRequest{File: strings.NewReader("not an image"), Filename: "a.png", Size: 12})
		assert.ErrorIs(t, err, ErrInvalidImage)
		assert.Empty(t, store.objects)
	})

	t.Run("unknown url delete is a no-op", func(t *testing.T) {
		svc, _, _ := setup(t)
		assert.NoError(t, svc.DeleteByURL(ctx, "https://elsewhere.example.com/a.jpg"))
	})
}
