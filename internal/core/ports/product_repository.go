package ports

import (
	"context"

	"github.com/codetrail/marketplace-api/internal/core/domain"
)

// ProductRepository defines the persistence boundary for products.
// FindByID returns domain.ErrProductNotFound on a miss or malformed id.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	FindAll(ctx context.Context) ([]*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
}
