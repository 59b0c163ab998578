package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/codetrail/marketplace-api/internal/core/ports"
)

// UserHandler handles HTTP requests for account operations.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Register creates an account from email and password.
//
// @Summary      Register a new user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  emailResponse
// @Failure      400   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	email, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, emailResponse{Email: email})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/login [post]
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Email:   result.Email,
		IsAdmin: result.IsAdmin,
		JWT:     result.JWT,
	})
}

// ResetPassword clears the stored password and returns a token that
// authenticates the follow-up update-password call.
//
// @Summary      Request a password reset
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      resetPasswordRequest  true  "Account email"
// @Success      201   {object}  resetPasswordResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/reset-password [post]
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	result, err := h.service.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, resetPasswordResponse{Email: result.Email, JWT: result.JWT})
}

// UpdatePassword sets a password on an account that has none, completing a
// reset.
//
// @Summary      Set a new password after a reset
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "New password"
// @Success      200   {object}  emailResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/update-password [put]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.service.SetPassword(c.Request().Context(), email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, emailResponse{Email: updated})
}

// GetProfile returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/profile [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	profile, err := h.service.GetProfile(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update own profile
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profileRequest  true  "Profile fields to change"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/profile [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	profile, err := h.service.UpdateProfile(c.Request().Context(), email, toProfileUpdateInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UploadProfilePhoto stores a base64 image payload and attaches it to the
// caller's account.
//
// @Summary      Upload a profile photo
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      profilePhotoRequest  true  "Base64 image payload"
// @Success      200   {object}  profileResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /users/profile-photo [put]
func (h *UserHandler) UploadProfilePhoto(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	var req profilePhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.service.UploadProfilePhoto(c.Request().Context(), email, ports.UploadImageInput{
		Name: req.Name,
		Type: req.Type,
		Size: req.Size,
		File: req.File,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// ManagedUsers lists every other account for admins. Non-admins receive
// synthetic users rather than an error.
//
// @Summary      List users for moderation
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   managedUserResponse
// @Failure      401  {object}  errorResponse
// @Router       /users/manage [get]
func (h *UserHandler) ManagedUsers(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListManagedUsers(c.Request().Context(), email)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toManagedUserResponses(users))
}

// BannedUsers lists banned accounts, paginated, newest first. Admin only.
//
// @Summary      List banned users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page  query     int  false  "Page number (1-based)"
// @Success      200   {object}  bannedPageResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /users/manage-banned [get]
func (h *UserHandler) BannedUsers(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	page, _ := strconv.Atoi(c.QueryParam("page"))
	result, err := h.service.ListBannedUsers(c.Request().Context(), email, page)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toBannedPageResponse(result))
}

// Ban marks a non-admin account as banned.
//
// @Summary      Ban a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  path      string  true  "Target account email"
// @Success      200        {object}  emailResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /users/manage-ban/{userEmail} [put]
func (h *UserHandler) Ban(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	banned, err := h.service.BanUser(c.Request().Context(), email, c.Param("userEmail"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, emailResponse{Email: banned})
}

// Unban lifts a ban from an account.
//
// @Summary      Unban a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  path      string  true  "Target account email"
// @Success      200        {object}  emailResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /users/manage-unban/{userEmail} [put]
func (h *UserHandler) Unban(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	unbanned, err := h.service.UnbanUser(c.Request().Context(), email, c.Param("userEmail"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, emailResponse{Email: unbanned})
}

// Delete physically removes a non-admin account.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userEmail  path      string  true  "Target account email"
// @Success      200        {object}  emailResponse
// @Failure      401        {object}  errorResponse
// @Failure      403        {object}  errorResponse
// @Failure      404        {object}  errorResponse
// @Router       /users/manage-delete/{userEmail} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	email, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	deleted, err := h.service.DeleteUser(c.Request().Context(), email, c.Param("userEmail"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, emailResponse{Email: deleted})
}
