package handler

import "github.com/codetrail/marketplace-api/internal/core/ports"

type productRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price"       validate:"required,gt=0"`
}

type productIDResponse struct {
	ID string `json:"id"`
}

type productResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

func toProductResponse(p *ports.ProductView) productResponse {
	return productResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
	}
}
