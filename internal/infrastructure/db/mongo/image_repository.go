package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/codetrail/marketplace-api/internal/core/domain"
)

const imagesCollection = "images"

// ImageRepository stores image metadata. Documents are written once and
// never updated.
type ImageRepository struct {
	coll *mongo.Collection
}

func NewImageRepository(db *mongo.Database) *ImageRepository {
	return &ImageRepository{coll: db.Collection(imagesCollection)}
}

type mongoImage struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Size      int64              `bson:"size"`
	Path      string             `bson:"path"`
	Module    string             `bson:"module"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *ImageRepository) Create(ctx context.Context, image *domain.Image) (*domain.Image, error) {
	doc := mongoImage{
		Name:      image.Name,
		Type:      image.Type,
		Size:      image.Size,
		Path:      image.Path,
		Module:    image.Module,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert image: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	return &domain.Image{
		ID:        oid.Hex(),
		Name:      doc.Name,
		Type:      doc.Type,
		Size:      doc.Size,
		Path:      doc.Path,
		Module:    doc.Module,
		CreatedAt: doc.CreatedAt,
	}, nil
}
