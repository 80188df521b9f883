package app

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"petspotter/internal/model"
)

// ObjectStore uploads image bytes to the media host and returns the public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type PetImageStore interface {
	Create(ctx context.Context, image *model.PetImage) error
	GetByID(ctx context.Context, id string) (*model.PetImage, error)
}

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

type ImageService struct {
	objects  ObjectStore
	images   PetImageStore
	maxBytes int64
	now      func() time.Time
}

type UploadImageInput struct {
	Filename string
	Data     []byte
}

func NewImageService(objects ObjectStore, images PetImageStore, maxBytes int64) *ImageService {
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	return &ImageService{
		objects:  objects,
		images:   images,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

func (s *ImageService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload accepts jpg and png content only; the type is sniffed from the
// bytes, not taken from the filename.
func (s *ImageService) Upload(ctx context.Context, input UploadImageInput) (*model.PetImage, error) {
	if len(input.Data) == 0 || int64(len(input.Data)) > s.maxBytes {
		return nil, ErrValidation
	}
	contentType := http.DetectContentType(input.Data)
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, ErrValidation
	}

	id := uuid.NewString()
	now := s.now().UTC()
	key := fmt.Sprintf("pet-images/%d/%02d/%s%s", now.Year(), now.Month(), id, ext)
	url, err := s.objects.Put(ctx, key, contentType, input.Data)
	if err != nil {
		return nil, fmt.Errorf("upload image failed: %w", err)
	}

	image := &model.PetImage{
		ID:        id,
		Name:      sanitizeFilename(input.Filename),
		ObjectKey: key,
		ImageURL:  url,
		CreatedAt: now.Truncate(time.Second),
	}
	if err := s.images.Create(ctx, image); err != nil {
		if dup, ok := asDuplicateKey(err); ok {
			return nil, dup
		}
		return nil, err
	}
	return image, nil
}

func (s *ImageService) Get(ctx context.Context, id string) (*model.PetImage, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrBadRequest
	}
	image, err := s.images.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if image == nil {
		return nil, ErrNotFound
	}
	return image, nil
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == "/" {
		return ""
	}
	if len(name) > 255 {
		name = name[:255]
	}
	return name
}
