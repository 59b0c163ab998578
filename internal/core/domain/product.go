package domain

import (
	"errors"
	"time"
)

var ErrProductNotFound = errors.New("could not find product")
var ErrProductNotOwned = errors.New("product does not belong to user")

// Product is a simple catalog entry owned by the account that created it.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	UserID      string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
