package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/codetrail/marketplace-api/internal/core/domain"
)

const usersCollection = "users"

// UserRepository is the MongoDB-backed credential store. Unique indexes on
// email and nickname are the authoritative uniqueness guard; service-level
// pre-checks only exist for friendlier errors.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

type mongoUser struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Nickname     string             `bson:"nickname"`
	PasswordHash *string            `bson:"password_hash"`
	IsAdmin      bool               `bson:"is_admin"`
	IsBanned     bool               `bson:"is_banned"`
	FirstName    string             `bson:"first_name,omitempty"`
	LastName     string             `bson:"last_name,omitempty"`
	Cellphone    string             `bson:"cellphone,omitempty"`
	Address      string             `bson:"address,omitempty"`

	ProfilePhotoID   string `bson:"profile_photo_id,omitempty"`
	ProfilePhotoName string `bson:"profile_photo_name,omitempty"`
	ProfilePhotoType string `bson:"profile_photo_type,omitempty"`
	ProfilePhotoSize int64  `bson:"profile_photo_size,omitempty"`
	ProfilePhotoPath string `bson:"profile_photo_path,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	doc := toMongoUser(user)
	doc.ID = primitive.NilObjectID
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyError(err)
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	oid, _ := res.InsertedID.(primitive.ObjectID)
	doc.ID = oid
	return toDomainUser(&doc), nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toMongoUser(user)
	doc.ID = oid
	doc.UpdatedAt = time.Now().UTC()

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return duplicateKeyError(err)
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}

	user.UpdatedAt = doc.UpdatedAt
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrUserNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) FindByNickname(ctx context.Context, nickname string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"nickname": nickname})
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc mongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) FindAll(ctx context.Context, excludeEmail string) ([]*domain.User, error) {
	filter := bson.M{"email": bson.M{"$ne": excludeEmail}}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cur.Close(ctx)

	return decodeUsers(ctx, cur)
}

func (r *UserRepository) FindBanned(ctx context.Context, excludeEmail string, page, limit int) ([]*domain.User, int64, error) {
	filter := bson.M{
		"email":     bson.M{"$ne": excludeEmail},
		"is_banned": true,
	}

	total, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count banned users: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list banned users: %w", err)
	}
	defer cur.Close(ctx)

	users, err := decodeUsers(ctx, cur)
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// EnsureIndexes creates the unique indexes on email and nickname.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "nickname", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "is_banned", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// duplicateKeyError maps a unique-index violation to the matching sentinel.
// The driver surfaces the violated index name in the error text.
func duplicateKeyError(err error) error {
	if strings.Contains(err.Error(), "nickname") {
		return domain.ErrNicknameExists
	}
	return domain.ErrEmailExists
}

func decodeUsers(ctx context.Context, cur *mongo.Cursor) ([]*domain.User, error) {
	var out []*domain.User
	for cur.Next(ctx) {
		var doc mongoUser
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		out = append(out, toDomainUser(&doc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return out, nil
}

func toMongoUser(u *domain.User) mongoUser {
	return mongoUser{
		Email:            u.Email,
		Nickname:         u.Nickname,
		PasswordHash:     u.PasswordHash,
		IsAdmin:          u.IsAdmin,
		IsBanned:         u.IsBanned,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Cellphone:        u.Cellphone,
		Address:          u.Address,
		ProfilePhotoID:   u.ProfilePhotoID,
		ProfilePhotoName: u.ProfilePhotoName,
		ProfilePhotoType: u.ProfilePhotoType,
		ProfilePhotoSize: u.ProfilePhotoSize,
		ProfilePhotoPath: u.ProfilePhotoPath,
		CreatedAt:        u.CreatedAt,
		UpdatedAt:        u.UpdatedAt,
	}
}

func toDomainUser(doc *mongoUser) *domain.User {
	return &domain.User{
		ID:               doc.ID.Hex(),
		Email:            doc.Email,
		Nickname:         doc.Nickname,
		PasswordHash:     doc.PasswordHash,
		IsAdmin:          doc.IsAdmin,
		IsBanned:         doc.IsBanned,
		FirstName:        doc.FirstName,
		LastName:         doc.LastName,
		Cellphone:        doc.Cellphone,
		Address:          doc.Address,
		ProfilePhotoID:   doc.ProfilePhotoID,
		ProfilePhotoName: doc.ProfilePhotoName,
		ProfilePhotoType: doc.ProfilePhotoType,
		ProfilePhotoSize: doc.ProfilePhotoSize,
		ProfilePhotoPath: doc.ProfilePhotoPath,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}
