package ports

import (
	"context"

	"github.com/codetrail/marketplace-api/internal/core/domain"
)

// ImageRepository persists image metadata documents.
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) (*domain.Image, error)
}

// ImageService stores an uploaded payload under the given module tag and
// returns the persisted metadata.
type ImageService interface {
	Save(ctx context.Context, input UploadImageInput, module string) (*domain.Image, error)
}
