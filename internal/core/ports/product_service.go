package ports

import "context"

// ProductInput carries the writable product fields.
type ProductInput struct {
	Title       string
	Description string
	Price       float64
}

// ProductView is the public projection of a product.
type ProductView struct {
	ID          string
	Title       string
	Description string
	Price       float64
}

// ProductService defines product use cases. Mutations require the caller's
// subject id and are restricted to the owning account.
type ProductService interface {
	Create(ctx context.Context, input ProductInput, userID string) (string, error)
	List(ctx context.Context) ([]ProductView, error)
	Get(ctx context.Context, id string) (*ProductView, error)
	Update(ctx context.Context, id string, input ProductInput, userID string) (*ProductView, error)
	Delete(ctx context.Context, id, userID string) (string, error)
}
