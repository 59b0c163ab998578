package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/codetrail/marketplace-api/internal/core/domain"
	"github.com/codetrail/marketplace-api/internal/core/ports"
)

type stubProductRepo struct {
	products map[string]*domain.Product
	nextID   int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*domain.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, product *domain.Product) (string, error) {
	r.nextID++
	id := "p" + strconv.Itoa(r.nextID)
	stored := *product
	stored.ID = id
	r.products[id] = &stored
	return id, nil
}

func (r *stubProductRepo) FindByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := r.products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, domain.ErrProductNotFound
}

func (r *stubProductRepo) FindAll(_ context.Context) ([]*domain.Product, error) {
	out := make([]*domain.Product, 0, len(r.products))
	for _, p := range r.products {
		clone := *p
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, product *domain.Product) error {
	if _, ok := r.products[product.ID]; !ok {
		return domain.ErrProductNotFound
	}
	stored := *product
	r.products[product.ID] = &stored
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func newTestProductService() (*ProductService, *stubProductRepo) {
	repo := newStubProductRepo()
	return NewProductService(repo, zerolog.Nop()), repo
}

func TestProductService_CreateAndGet(t *testing.T) {
	svc, repo := newTestProductService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ports.ProductInput{
		Title:       "Lamp",
		Description: "A desk lamp",
		Price:       19.99,
	}, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.products[id].UserID != "user-1" {
		t.Fatalf("owner not recorded")
	}

	view, err := svc.Get(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if view.Title != "Lamp" || view.Price != 19.99 {
		t.Fatalf("unexpected view %+v", view)
	}
}

func TestProductService_Get_NotFound(t *testing.T) {
	svc, _ := newTestProductService()

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductService_List(t *testing.T) {
	svc, _ := newTestProductService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Create(ctx, ports.ProductInput{
			Title:       "Item " + strconv.Itoa(i),
			Description: "desc",
			Price:       1,
		}, "user-1"); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 products, got %d", len(views))
	}
}

func TestProductService_Update(t *testing.T) {
	svc, repo := newTestProductService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ports.ProductInput{Title: "Old", Description: "old", Price: 1}, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	view, err := svc.Update(ctx, id, ports.ProductInput{Title: "New", Description: "new", Price: 2}, "user-1")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if view.Title != "New" || view.Price != 2 {
		t.Fatalf("unexpected view %+v", view)
	}
	if repo.products[id].Title != "New" {
		t.Fatalf("update not persisted")
	}
}

func TestProductService_Update_NotOwner(t *testing.T) {
	svc, _ := newTestProductService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ports.ProductInput{Title: "Mine", Description: "d", Price: 1}, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Update(ctx, id, ports.ProductInput{Title: "Stolen", Description: "d", Price: 1}, "user-2"); !errors.Is(err, domain.ErrProductNotOwned) {
		t.Fatalf("expected ErrProductNotOwned, got %v", err)
	}
}

func TestProductService_Delete(t *testing.T) {
	svc, repo := newTestProductService()
	ctx := context.Background()

	id, err := svc.Create(ctx, ports.ProductInput{Title: "Gone", Description: "d", Price: 1}, "user-1")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Delete(ctx, id, "user-2"); !errors.Is(err, domain.ErrProductNotOwned) {
		t.Fatalf("expected ErrProductNotOwned, got %v", err)
	}

	if _, err := svc.Delete(ctx, id, "user-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := repo.products[id]; ok {
		t.Fatalf("product still present after delete")
	}
}
