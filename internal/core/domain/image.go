package domain

import (
	"errors"
	"time"
)

var ErrInvalidImagePayload = errors.New("invalid image payload")

// Module tags identify which feature owns an uploaded file. They become the
// subdirectory the file is stored under.
const (
	ImageModuleUsers    = "USERS"
	ImageModuleProducts = "PRODUCTS"
)

// Image is the metadata record for an uploaded binary asset. Immutable once
// stored; accounts keep a denormalized copy of these fields, not a live join.
type Image struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Size      int64     `json:"size"`
	Path      string    `json:"path"`
	Module    string    `json:"module"`
	CreatedAt time.Time `json:"created_at"`
}
