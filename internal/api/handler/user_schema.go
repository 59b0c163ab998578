package handler

import "time"

// errorResponse documents the standard error envelope in swagger output.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email     string `json:"email"      validate:"required,email"`
	Password  string `json:"password"   validate:"required,min=8"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updatePasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

// profileRequest is a partial update: absent fields stay untouched, and an
// empty nickname keeps the current one.
type profileRequest struct {
	Nickname  *string `json:"nickname"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Cellphone *string `json:"cellphone"`
	Address   *string `json:"address"`
}

type profilePhotoRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	Size int64  `json:"size" validate:"required,gt=0"`
	File string `json:"file" validate:"required"`
}

// --- Response types ---

type emailResponse struct {
	Email string `json:"email"`
}

type loginResponse struct {
	Email   string `json:"email"`
	IsAdmin bool   `json:"is_admin"`
	JWT     string `json:"jwt"`
}

type resetPasswordResponse struct {
	Email string `json:"email"`
	JWT   string `json:"jwt"`
}

type profileResponse struct {
	Email            string `json:"email"`
	Nickname         string `json:"nickname"`
	IsAdmin          bool   `json:"is_admin"`
	FirstName        string `json:"first_name,omitempty"`
	LastName         string `json:"last_name,omitempty"`
	Cellphone        string `json:"cellphone,omitempty"`
	Address          string `json:"address,omitempty"`
	ProfilePhotoID   string `json:"profile_photo_id,omitempty"`
	ProfilePhotoName string `json:"profile_photo_name,omitempty"`
	ProfilePhotoType string `json:"profile_photo_type,omitempty"`
	ProfilePhotoSize int64  `json:"profile_photo_size,omitempty"`
	ProfilePhotoPath string `json:"profile_photo_path,omitempty"`
}

// managedUserResponse is the safe projection served to moderation listings.
// The password hash never appears here.
type managedUserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	IsBanned  bool      `json:"is_banned"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// bannedPageResponse mirrors the paginated listing envelope.
type bannedPageResponse struct {
	Docs  []managedUserResponse `json:"docs"`
	Total int64                 `json:"total"`
	Limit int                   `json:"limit"`
	Page  int                   `json:"page"`
	Pages int                   `json:"pages"`
}
