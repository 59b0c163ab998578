package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/codetrail/marketplace-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid error envelope: %s", rec.Body.String())
	}
	return rec.Code, body.Error
}

func TestErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"email exists", domain.ErrEmailExists, http.StatusBadRequest},
		{"nickname exists", domain.ErrNicknameExists, http.StatusBadRequest},
		{"invalid image", domain.ErrInvalidImagePayload, http.StatusBadRequest},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"not admin", domain.ErrNotAdmin, http.StatusForbidden},
		{"already banned", domain.ErrAlreadyBanned, http.StatusForbidden},
		{"not banned", domain.ErrNotBanned, http.StatusForbidden},
		{"already have password", domain.ErrAlreadyHavePassword, http.StatusForbidden},
		{"too many attempts", domain.ErrTooManyAttempts, http.StatusForbidden},
		{"product not owned", domain.ErrProductNotOwned, http.StatusForbidden},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"product not found", domain.ErrProductNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
			if msg == "" {
				t.Fatalf("expected an error message")
			}
		})
	}
}

func TestErrorHandler_EchoHTTPError(t *testing.T) {
	code, msg := renderError(t, echo.NewHTTPError(http.StatusBadRequest, "invalid payload"))
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
	if msg != "invalid payload" {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestErrorHandler_UnknownError(t *testing.T) {
	code, msg := renderError(t, errors.New("connection refused"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internals leaked to the client: %q", msg)
	}
}
