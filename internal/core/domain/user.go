package domain

import (
	"errors"
	"time"
)

var ErrEmailExists = errors.New("email already exists")
var ErrNicknameExists = errors.New("nickname already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrForbidden = errors.New("access forbidden")
var ErrNotAdmin = errors.New("you are not allowed to do this operation")
var ErrAlreadyBanned = errors.New("this user is already banned")
var ErrNotBanned = errors.New("this user is not banned")
var ErrAlreadyHavePassword = errors.New("you already have a password")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrInvalidToken = errors.New("invalid token")

// User is the central account record. PasswordHash is nil while a password
// reset is pending; a nil hash never matches any password.
type User struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Nickname     string  `json:"nickname"`
	PasswordHash *string `json:"-"`
	IsAdmin      bool    `json:"is_admin"`
	IsBanned     bool    `json:"is_banned"`
	FirstName    string  `json:"first_name,omitempty"`
	LastName     string  `json:"last_name,omitempty"`
	Cellphone    string  `json:"cellphone,omitempty"`
	Address      string  `json:"address,omitempty"`

	// Denormalized snapshot of the most recently uploaded profile photo.
	ProfilePhotoID   string `json:"profile_photo_id,omitempty"`
	ProfilePhotoName string `json:"profile_photo_name,omitempty"`
	ProfilePhotoType string `json:"profile_photo_type,omitempty"`
	ProfilePhotoSize int64  `json:"profile_photo_size,omitempty"`
	ProfilePhotoPath string `json:"profile_photo_path,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword reports whether the account can currently authenticate by
// password. False while a password reset is pending.
func (u *User) HasPassword() bool {
	return u.PasswordHash != nil && *u.PasswordHash != ""
}
