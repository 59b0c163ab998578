package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/codetrail/marketplace-api/internal/core/domain"
	"github.com/codetrail/marketplace-api/internal/core/ports"
)

// ProductService implements the product catalog. Reads are public; every
// mutation is restricted to the owning account.
type ProductService struct {
	repo ports.ProductRepository
	log  zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, log: log}
}

func (s *ProductService) Create(ctx context.Context, input ports.ProductInput, userID string) (string, error) {
	now := time.Now().UTC()
	product := &domain.Product{
		Title:       input.Title,
		Description: input.Description,
		Price:       input.Price,
		UserID:      userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return "", err
	}

	s.log.Info().Str("product_id", id).Str("user_id", userID).Msg("product created")
	return id, nil
}

func (s *ProductService) List(ctx context.Context) ([]ports.ProductView, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ProductView, len(products))
	for i, p := range products {
		out[i] = toProductView(p)
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*ports.ProductView, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	view := toProductView(product)
	return &view, nil
}

func (s *ProductService) Update(ctx context.Context, id string, input ports.ProductInput, userID string) (*ports.ProductView, error) {
	product, err := s.findOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	product.Title = input.Title
	product.Description = input.Description
	product.Price = input.Price
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, err
	}

	view := toProductView(product)
	return &view, nil
}

func (s *ProductService) Delete(ctx context.Context, id, userID string) (string, error) {
	if _, err := s.findOwned(ctx, id, userID); err != nil {
		return "", err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}

	s.log.Info().Str("product_id", id).Str("user_id", userID).Msg("product deleted")
	return id, nil
}

func (s *ProductService) findOwned(ctx context.Context, id, userID string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.UserID != userID {
		return nil, domain.ErrProductNotOwned
	}
	return product, nil
}

func toProductView(p *domain.Product) ports.ProductView {
	return ports.ProductView{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
	}
}
