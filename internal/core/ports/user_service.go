package ports

import (
	"context"
	"time"
)

// RegisterInput carries the data needed to create an account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginResult is returned on a successful login.
type LoginResult struct {
	Email   string
	IsAdmin bool
	JWT     string
}

// ResetResult is returned when a password reset has been initiated. The JWT
// authenticates the follow-up set-password call.
type ResetResult struct {
	Email string
	JWT   string
}

// ProfileUpdateInput is a partial update: nil fields are left untouched.
// An empty (or nil) nickname keeps the current one.
type ProfileUpdateInput struct {
	Nickname  *string
	FirstName *string
	LastName  *string
	Cellphone *string
	Address   *string
}

// Profile is the owner-facing projection of an account. Never includes the
// password hash.
type Profile struct {
	Email            string
	Nickname         string
	IsAdmin          bool
	FirstName        string
	LastName         string
	Cellphone        string
	Address          string
	ProfilePhotoID   string
	ProfilePhotoName string
	ProfilePhotoType string
	ProfilePhotoSize int64
	ProfilePhotoPath string
}

// UploadImageInput is an inbound image payload. File holds the base64 body,
// optionally with a data-URI prefix.
type UploadImageInput struct {
	Name string
	Type string
	Size int64
	File string
}

// ManagedUser is the safe field subset exposed to moderation listings.
type ManagedUser struct {
	ID        string
	Email     string
	IsAdmin   bool
	IsBanned  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BannedPage is the paginated envelope for the banned-users listing.
type BannedPage struct {
	Docs  []ManagedUser
	Total int64
	Limit int
	Page  int
	Pages int
}

// UserService defines the account lifecycle use cases.
type UserService interface {
	Register(ctx context.Context, input RegisterInput) (string, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	RequestPasswordReset(ctx context.Context, email string) (*ResetResult, error)
	SetPassword(ctx context.Context, email, password string) (string, error)
	GetProfile(ctx context.Context, email string) (*Profile, error)
	UpdateProfile(ctx context.Context, email string, input ProfileUpdateInput) (*Profile, error)
	UploadProfilePhoto(ctx context.Context, email string, input UploadImageInput) (*Profile, error)
	ListManagedUsers(ctx context.Context, callerEmail string) ([]ManagedUser, error)
	ListBannedUsers(ctx context.Context, callerEmail string, page int) (*BannedPage, error)
	BanUser(ctx context.Context, adminEmail, targetEmail string) (string, error)
	UnbanUser(ctx context.Context, adminEmail, targetEmail string) (string, error)
	DeleteUser(ctx context.Context, adminEmail, targetEmail string) (string, error)
}
