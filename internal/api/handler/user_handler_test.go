package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/codetrail/marketplace-api/internal/core/domain"
	"github.com/codetrail/marketplace-api/internal/core/ports"
)

type stubUserService struct {
	registerFn       func(ctx context.Context, input ports.RegisterInput) (string, error)
	loginFn          func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	resetFn          func(ctx context.Context, email string) (*ports.ResetResult, error)
	setPasswordFn    func(ctx context.Context, email, password string) (string, error)
	getProfileFn     func(ctx context.Context, email string) (*ports.Profile, error)
	updateProfileFn  func(ctx context.Context, email string, input ports.ProfileUpdateInput) (*ports.Profile, error)
	uploadPhotoFn    func(ctx context.Context, email string, input ports.UploadImageInput) (*ports.Profile, error)
	listManagedFn    func(ctx context.Context, callerEmail string) ([]ports.ManagedUser, error)
	listBannedFn     func(ctx context.Context, callerEmail string, page int) (*ports.BannedPage, error)
	banFn            func(ctx context.Context, adminEmail, targetEmail string) (string, error)
	unbanFn          func(ctx context.Context, adminEmail, targetEmail string) (string, error)
	deleteFn         func(ctx context.Context, adminEmail, targetEmail string) (string, error)
}

func (s *stubUserService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	return s.registerFn(ctx, input)
}

func (s *stubUserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubUserService) RequestPasswordReset(ctx context.Context, email string) (*ports.ResetResult, error) {
	return s.resetFn(ctx, email)
}

func (s *stubUserService) SetPassword(ctx context.Context, email, password string) (string, error) {
	return s.setPasswordFn(ctx, email, password)
}

func (s *stubUserService) GetProfile(ctx context.Context, email string) (*ports.Profile, error) {
	return s.getProfileFn(ctx, email)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, email string, input ports.ProfileUpdateInput) (*ports.Profile, error) {
	return s.updateProfileFn(ctx, email, input)
}

func (s *stubUserService) UploadProfilePhoto(ctx context.Context, email string, input ports.UploadImageInput) (*ports.Profile, error) {
	return s.uploadPhotoFn(ctx, email, input)
}

func (s *stubUserService) ListManagedUsers(ctx context.Context, callerEmail string) ([]ports.ManagedUser, error) {
	return s.listManagedFn(ctx, callerEmail)
}

func (s *stubUserService) ListBannedUsers(ctx context.Context, callerEmail string, page int) (*ports.BannedPage, error) {
	return s.listBannedFn(ctx, callerEmail, page)
}

func (s *stubUserService) BanUser(ctx context.Context, adminEmail, targetEmail string) (string, error) {
	return s.banFn(ctx, adminEmail, targetEmail)
}

func (s *stubUserService) UnbanUser(ctx context.Context, adminEmail, targetEmail string) (string, error) {
	return s.unbanFn(ctx, adminEmail, targetEmail)
}

func (s *stubUserService) DeleteUser(ctx context.Context, adminEmail, targetEmail string) (string, error) {
	return s.deleteFn(ctx, adminEmail, targetEmail)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asAuthenticated(c echo.Context, email, sub string) {
	c.Set("email", email)
	c.Set("sub", sub)
}

func TestUserHandler_Register(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(_ context.Context, input ports.RegisterInput) (string, error) {
			if input.Email != "alice@example.com" || input.Password != "password123" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return "alice@example.com", nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users", `{"email":"alice@example.com","password":"password123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "alice@example.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (string, error) {
			t.Fatalf("service must not be called")
			return "", nil
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"a@b.com","password":"short"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubUserService{
		registerFn: func(context.Context, ports.RegisterInput) (string, error) {
			return "", domain.ErrEmailExists
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/users", `{"email":"a@b.com","password":"password123"}`)
	if err := h.Register(c); !errors.Is(err, domain.ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists passed through, got %v", err)
	}
}

func TestUserHandler_Login(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			return &ports.LoginResult{Email: email, IsAdmin: false, JWT: "signed-token"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"password123"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["jwt"] != "signed-token" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestUserHandler_Login_BadCredentials(t *testing.T) {
	stub := &stubUserService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrForbidden
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"wrongpass1"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUserHandler_ResetPassword(t *testing.T) {
	stub := &stubUserService{
		resetFn: func(_ context.Context, email string) (*ports.ResetResult, error) {
			return &ports.ResetResult{Email: email, JWT: "reset-token"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/reset-password", `{"email":"a@b.com"}`)
	if err := h.ResetPassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_UpdatePassword_NoClaims(t *testing.T) {
	h := NewUserHandler(&stubUserService{})

	c, _ := newTestContext(t, http.MethodPut, "/users/update-password", `{"password":"password123"}`)
	err := h.UpdatePassword(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestUserHandler_UpdatePassword(t *testing.T) {
	stub := &stubUserService{
		setPasswordFn: func(_ context.Context, email, password string) (string, error) {
			if email != "a@b.com" || password != "newpassword" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return email, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/users/update-password", `{"password":"newpassword"}`)
	asAuthenticated(c, "a@b.com", "user-1")
	if err := h.UpdatePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_GetProfile(t *testing.T) {
	stub := &stubUserService{
		getProfileFn: func(_ context.Context, email string) (*ports.Profile, error) {
			return &ports.Profile{Email: email, Nickname: "alice"}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/profile", "")
	asAuthenticated(c, "alice@example.com", "user-1")
	if err := h.GetProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["nickname"] != "alice" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if _, leaked := resp["password_hash"]; leaked {
		t.Fatalf("password hash leaked into profile response")
	}
}

func TestUserHandler_UpdateProfile_PartialFields(t *testing.T) {
	stub := &stubUserService{
		updateProfileFn: func(_ context.Context, email string, input ports.ProfileUpdateInput) (*ports.Profile, error) {
			if input.Nickname == nil || *input.Nickname != "newnick" {
				t.Fatalf("expected nickname set, got %+v", input)
			}
			if input.FirstName != nil {
				t.Fatalf("absent fields must stay nil")
			}
			return &ports.Profile{Email: email, Nickname: *input.Nickname}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/users/profile", `{"nickname":"newnick"}`)
	asAuthenticated(c, "a@b.com", "user-1")
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UploadProfilePhoto(t *testing.T) {
	stub := &stubUserService{
		uploadPhotoFn: func(_ context.Context, email string, input ports.UploadImageInput) (*ports.Profile, error) {
			if input.Type != "image/jpeg" || input.Size != 4 {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &ports.Profile{Email: email, ProfilePhotoPath: "/uploads/USERS/x.jpeg"}, nil
		},
	}
	h := NewUserHandler(stub)

	body := `{"name":"me.jpeg","type":"image/jpeg","size":4,"file":"aGVsbG8="}`
	c, rec := newTestContext(t, http.MethodPut, "/users/profile-photo", body)
	asAuthenticated(c, "a@b.com", "user-1")
	if err := h.UploadProfilePhoto(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_BannedUsers_PageParam(t *testing.T) {
	stub := &stubUserService{
		listBannedFn: func(_ context.Context, callerEmail string, page int) (*ports.BannedPage, error) {
			if page != 3 {
				t.Fatalf("expected page 3, got %d", page)
			}
			return &ports.BannedPage{Docs: []ports.ManagedUser{}, Limit: 10, Page: 3, Pages: 3}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/manage-banned?page=3", "")
	asAuthenticated(c, "admin@b.com", "user-1")
	if err := h.BannedUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if _, ok := resp["docs"]; !ok {
		t.Fatalf("expected docs envelope, got %+v", resp)
	}
}

func TestUserHandler_Ban(t *testing.T) {
	stub := &stubUserService{
		banFn: func(_ context.Context, adminEmail, targetEmail string) (string, error) {
			if adminEmail != "admin@b.com" || targetEmail != "target@b.com" {
				t.Fatalf("unexpected args: %s %s", adminEmail, targetEmail)
			}
			return targetEmail, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/users/manage-ban/target@b.com", "")
	asAuthenticated(c, "admin@b.com", "user-1")
	c.SetParamNames("userEmail")
	c.SetParamValues("target@b.com")
	if err := h.Ban(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Ban_NotAdmin(t *testing.T) {
	stub := &stubUserService{
		banFn: func(context.Context, string, string) (string, error) {
			return "", domain.ErrNotAdmin
		},
	}
	h := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/users/manage-ban/target@b.com", "")
	asAuthenticated(c, "pleb@b.com", "user-2")
	c.SetParamNames("userEmail")
	c.SetParamValues("target@b.com")
	if err := h.Ban(c); !errors.Is(err, domain.ErrNotAdmin) {
		t.Fatalf("expected ErrNotAdmin, got %v", err)
	}
}

func TestUserHandler_ManagedUsers(t *testing.T) {
	stub := &stubUserService{
		listManagedFn: func(_ context.Context, callerEmail string) ([]ports.ManagedUser, error) {
			return []ports.ManagedUser{{ID: "1", Email: "x@b.com"}}, nil
		},
	}
	h := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/manage", "")
	asAuthenticated(c, "admin@b.com", "user-1")
	if err := h.ManagedUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("expected a plain array, got %s", rec.Body.String())
	}
	if len(resp) != 1 || resp[0]["email"] != "x@b.com" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}
