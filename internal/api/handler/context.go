package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware. A
// missing email means the middleware did not run (or the token was
// structurally valid yet empty) — reject with 401 before any service call.
func ctxIdentity(c echo.Context) (email, subjectID string, err error) {
	email, _ = c.Get("email").(string)
	if email == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	subjectID, _ = c.Get("sub").(string)
	return email, subjectID, nil
}
