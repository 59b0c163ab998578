package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/codetrail/marketplace-api/internal/api/metrics"
	"github.com/codetrail/marketplace-api/internal/core/domain"
	"github.com/codetrail/marketplace-api/internal/core/ports"
)

// maxNicknameRetries bounds the suffix search during nickname derivation.
const maxNicknameRetries = 1000

// fakeUsersPerPage is how many synthetic accounts a non-admin caller of the
// management listing receives.
const fakeUsersPerPage = 100

// LoginThrottle limits repeated failed logins per email. Backed by Redis;
// all methods may fail and the service treats failures as open.
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// UserService implements the account lifecycle: registration, login,
// password reset, profile management and admin moderation.
type UserService struct {
	repo      ports.UserRepository
	tokens    ports.TokenIssuer
	images    ports.ImageService
	throttle  LoginThrottle
	pageLimit int
	log       zerolog.Logger
}

func NewUserService(
	repo ports.UserRepository,
	tokens ports.TokenIssuer,
	images ports.ImageService,
	throttle LoginThrottle,
	pageLimit int,
	log zerolog.Logger,
) *UserService {
	if pageLimit <= 0 {
		pageLimit = 10
	}
	return &UserService{
		repo:      repo,
		tokens:    tokens,
		images:    images,
		throttle:  throttle,
		pageLimit: pageLimit,
		log:       log,
	}
}

// normalizeEmail lowercases and trims so email uniqueness is
// case-insensitive everywhere.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, input ports.RegisterInput) (string, error) {
	email := normalizeEmail(input.Email)

	// Fast-path duplicate check; the unique index on email is the
	// authoritative guard against the check-then-insert race.
	_, err := s.repo.FindByEmail(ctx, email)
	if err == nil {
		return "", domain.ErrEmailExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}

	nickname, err := s.deriveNickname(ctx, email)
	if err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	hashed := string(hash)

	user := &domain.User{
		Email:        email,
		Nickname:     nickname,
		PasswordHash: &hashed,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", err
	}

	metrics.RegistrationsTotal.Inc()
	s.log.Info().Str("email", created.Email).Str("nickname", created.Nickname).Msg("user registered")
	return created.Email, nil
}

// deriveNickname starts from the email local-part and appends an
// incrementing counter to it until a free candidate is found.
func (s *UserService) deriveNickname(ctx context.Context, email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at >= 0 {
		base = email[:at]
	}

	candidate := base
	for i := 1; i <= maxNicknameRetries; i++ {
		_, err := s.repo.FindByNickname(ctx, candidate)
		if errors.Is(err, domain.ErrUserNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = base + strconv.Itoa(i)
	}
	return "", fmt.Errorf("no free nickname for %s after %d attempts", email, maxNicknameRetries)
}

func (s *UserService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, email)
		if err != nil {
			// Redis being down must not lock everyone out.
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.findByEmailOrForbidden(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsBanned {
		metrics.LoginsTotal.WithLabelValues("banned").Inc()
		return nil, domain.ErrAlreadyBanned
	}

	// A nil hash (reset pending) never matches any password.
	if !user.HasPassword() ||
		bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)) != nil {
		if s.throttle != nil {
			if err := s.throttle.RecordFailure(ctx, email); err != nil {
				s.log.Warn().Err(err).Msg("could not record failed login")
			}
		}
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrForbidden
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, email); err != nil {
			s.log.Warn().Err(err).Msg("could not reset login throttle")
		}
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.LoginResult{Email: user.Email, IsAdmin: user.IsAdmin, JWT: token}, nil
}

// RequestPasswordReset clears the stored hash before the caller proves a new
// password, trading a temporary lockout for a flow without a reset-token
// table. The returned JWT authenticates the follow-up SetPassword call.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (*ports.ResetResult, error) {
	user, err := s.findByEmailOrForbidden(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	user.PasswordHash = nil
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("email", user.Email).Msg("password reset requested")
	return &ports.ResetResult{Email: user.Email, JWT: token}, nil
}

// SetPassword completes a reset (or initial setup). Accounts that already
// hold a password are rejected.
func (s *UserService) SetPassword(ctx context.Context, email, password string) (string, error) {
	user, err := s.findByEmailOrForbidden(ctx, normalizeEmail(email))
	if err != nil {
		return "", err
	}
	if user.HasPassword() {
		return "", domain.ErrAlreadyHavePassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	hashed := string(hash)
	user.PasswordHash = &hashed

	if err := s.repo.Update(ctx, user); err != nil {
		return "", err
	}
	return user.Email, nil
}

func (s *UserService) GetProfile(ctx context.Context, email string) (*ports.Profile, error) {
	user, err := s.findByEmailOrForbidden(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

func (s *UserService) UpdateProfile(ctx context.Context, email string, input ports.ProfileUpdateInput) (*ports.Profile, error) {
	user, err := s.findByEmailOrForbidden(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	nickname, err := s.validateNickname(ctx, input.Nickname, user.Nickname)
	if err != nil {
		return nil, err
	}
	user.Nickname = nickname

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Cellphone != nil {
		user.Cellphone = *input.Cellphone
	}
	if input.Address != nil {
		user.Address = *input.Address
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toProfile(user), nil
}

// validateNickname keeps the current nickname when none is supplied and
// rejects one already held by a different account.
func (s *UserService) validateNickname(ctx context.Context, requested *string, current string) (string, error) {
	if requested == nil || *requested == "" {
		return current, nil
	}
	if *requested == current {
		return current, nil
	}

	_, err := s.repo.FindByNickname(ctx, *requested)
	if err == nil {
		return "", domain.ErrNicknameExists
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return "", err
	}
	return *requested, nil
}

func (s *UserService) UploadProfilePhoto(ctx context.Context, email string, input ports.UploadImageInput) (*ports.Profile, error) {
	user, err := s.findByEmailOrForbidden(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}

	stored, err := s.images.Save(ctx, input, domain.ImageModuleUsers)
	if err != nil {
		return nil, err
	}

	user.ProfilePhotoID = stored.ID
	user.ProfilePhotoName = stored.Name
	user.ProfilePhotoType = stored.Type
	user.ProfilePhotoSize = stored.Size
	user.ProfilePhotoPath = stored.Path

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	metrics.ProfilePhotoUploadsTotal.Inc()
	return toProfile(user), nil
}

// ListManagedUsers returns every other account for admins. Non-admin callers
// receive synthetic users instead of an error, so the endpoint leaks nothing
// about real accounts.
func (s *UserService) ListManagedUsers(ctx context.Context, callerEmail string) ([]ports.ManagedUser, error) {
	caller, err := s.findByEmailOrForbidden(ctx, normalizeEmail(callerEmail))
	if err != nil {
		return nil, err
	}
	if !caller.IsAdmin {
		return fakeManagedUsers(fakeUsersPerPage), nil
	}

	users, err := s.repo.FindAll(ctx, caller.Email)
	if err != nil {
		return nil, err
	}

	out := make([]ports.ManagedUser, len(users))
	for i, u := range users {
		out[i] = toManagedUser(u)
	}
	return out, nil
}

func (s *UserService) ListBannedUsers(ctx context.Context, callerEmail string, page int) (*ports.BannedPage, error) {
	caller, err := s.verifyIsAdmin(ctx, normalizeEmail(callerEmail))
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}

	users, total, err := s.repo.FindBanned(ctx, caller.Email, page, s.pageLimit)
	if err != nil {
		return nil, err
	}

	docs := make([]ports.ManagedUser, len(users))
	for i, u := range users {
		docs[i] = toManagedUser(u)
	}

	pages := int(total) / s.pageLimit
	if int(total)%s.pageLimit != 0 {
		pages++
	}

	return &ports.BannedPage{
		Docs:  docs,
		Total: total,
		Limit: s.pageLimit,
		Page:  page,
		Pages: pages,
	}, nil
}

func (s *UserService) BanUser(ctx context.Context, adminEmail, targetEmail string) (string, error) {
	target, err := s.findUserToManage(ctx, adminEmail, targetEmail)
	if err != nil {
		return "", err
	}
	if target.IsBanned {
		return "", domain.ErrAlreadyBanned
	}

	target.IsBanned = true
	if err := s.repo.Update(ctx, target); err != nil {
		return "", err
	}

	metrics.ModerationActionsTotal.WithLabelValues("ban").Inc()
	s.log.Info().Str("admin", adminEmail).Str("target", target.Email).Msg("user banned")
	return target.Email, nil
}

func (s *UserService) UnbanUser(ctx context.Context, adminEmail, targetEmail string) (string, error) {
	target, err := s.findUserToManage(ctx, adminEmail, targetEmail)
	if err != nil {
		return "", err
	}
	if !target.IsBanned {
		return "", domain.ErrNotBanned
	}

	target.IsBanned = false
	if err := s.repo.Update(ctx, target); err != nil {
		return "", err
	}

	metrics.ModerationActionsTotal.WithLabelValues("unban").Inc()
	s.log.Info().Str("admin", adminEmail).Str("target", target.Email).Msg("user unbanned")
	return target.Email, nil
}

func (s *UserService) DeleteUser(ctx context.Context, adminEmail, targetEmail string) (string, error) {
	target, err := s.findUserToManage(ctx, adminEmail, targetEmail)
	if err != nil {
		return "", err
	}

	if err := s.repo.Delete(ctx, target.ID); err != nil {
		return "", err
	}

	metrics.ModerationActionsTotal.WithLabelValues("delete").Inc()
	s.log.Info().Str("admin", adminEmail).Str("target", target.Email).Msg("user deleted")
	return target.Email, nil
}

// findByEmailOrForbidden hides whether an email exists behind a uniform
// Forbidden, matching the login error contract.
func (s *UserService) findByEmailOrForbidden(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrForbidden
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// verifyIsAdmin re-reads the caller at call time; admin status is never
// trusted from token claims.
func (s *UserService) verifyIsAdmin(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.findByEmailOrForbidden(ctx, email)
	if err != nil {
		return nil, err
	}
	if !user.IsAdmin {
		return nil, domain.ErrNotAdmin
	}
	return user, nil
}

// findUserToManage applies the moderation gate: caller must be admin, target
// must exist and must not itself be an admin.
func (s *UserService) findUserToManage(ctx context.Context, adminEmail, targetEmail string) (*domain.User, error) {
	if _, err := s.verifyIsAdmin(ctx, normalizeEmail(adminEmail)); err != nil {
		return nil, err
	}

	target, err := s.repo.FindByEmail(ctx, normalizeEmail(targetEmail))
	if err != nil {
		return nil, err
	}
	if target.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return target, nil
}

func toProfile(u *domain.User) *ports.Profile {
	return &ports.Profile{
		Email:            u.Email,
		Nickname:         u.Nickname,
		IsAdmin:          u.IsAdmin,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Cellphone:        u.Cellphone,
		Address:          u.Address,
		ProfilePhotoID:   u.ProfilePhotoID,
		ProfilePhotoName: u.ProfilePhotoName,
		ProfilePhotoType: u.ProfilePhotoType,
		ProfilePhotoSize: u.ProfilePhotoSize,
		ProfilePhotoPath: u.ProfilePhotoPath,
	}
}

func toManagedUser(u *domain.User) ports.ManagedUser {
	return ports.ManagedUser{
		ID:        u.ID,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		IsBanned:  u.IsBanned,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
