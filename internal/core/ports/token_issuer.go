package ports

// TokenClaims is the identity carried by a verified bearer token.
type TokenClaims struct {
	Subject string
	Email   string
	IsAdmin bool
}

// TokenIssuer signs and validates stateless bearer tokens. There is no
// revocation: moderation decisions must re-read account state, never trust
// IsAdmin from an old token alone.
type TokenIssuer interface {
	Issue(subjectID, email string, isAdmin bool) (string, error)
	Verify(token string) (*TokenClaims, error)
}
