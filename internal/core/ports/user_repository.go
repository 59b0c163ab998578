package ports

import (
	"context"

	"github.com/codetrail/marketplace-api/internal/core/domain"
)

// UserRepository defines the persistence boundary for accounts. Lookups
// return domain.ErrUserNotFound on a miss; Create maps unique-index
// violations to domain.ErrEmailExists / domain.ErrNicknameExists.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByNickname(ctx context.Context, nickname string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	// FindAll returns every account except the one with excludeEmail,
	// newest first.
	FindAll(ctx context.Context, excludeEmail string) ([]*domain.User, error)
	// FindBanned returns the requested page of banned accounts (excluding
	// excludeEmail) plus the total match count, newest first.
	FindBanned(ctx context.Context, excludeEmail string, page, limit int) ([]*domain.User, int64, error)
}
