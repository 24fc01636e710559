package account

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Richard-avalos/legendme-login-svc/internal/auth"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/credentials"
	"github.com/Richard-avalos/legendme-login-svc/internal/auth/token"
	"github.com/Richard-avalos/legendme-login-svc/internal/directory"
	"github.com/Richard-avalos/legendme-login-svc/internal/errs"
	"github.com/Richard-avalos/legendme-login-svc/internal/logger"
)

// Directory is the narrow contract this service needs from the remote
// users service.
type Directory interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	CreateLocalUser(ctx context.Context, params directory.CreateLocalUserParams) (directory.Profile, error)
	FindByEmail(ctx context.Context, email string) (directory.Profile, error)
	UpsertGoogleUser(ctx context.Context, params directory.GoogleUserParams) (directory.Profile, error)
}

// GoogleVerifier validates a Google ID token and returns the verified
// identity claims.
type GoogleVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.Identity, error)
}

// TokenIssuer mints session tokens for authenticated users.
type TokenIssuer interface {
	IssueAccessToken(userID, email, name string) (string, error)
	IssuePair(userID, email, name string) (token.Pair, error)
	AccessTokenSeconds() int64
}

// Service orchestrates registration and authentication across the local
// credential store, the remote user directory, the Google verifier and the
// token issuer. Account state is split between the local store (login
// secrets) and the directory (profile data); there is no transaction
// spanning the two, so Register is ordered to leave only recoverable
// intermediate states behind.
type Service struct {
	store    credentials.Store
	dir      Directory
	verifier GoogleVerifier
	tokens   TokenIssuer
}

func NewService(store credentials.Store, dir Directory, verifier GoogleVerifier, tokens TokenIssuer) *Service {
	return &Service{store: store, dir: dir, verifier: verifier, tokens: tokens}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type RegisterResult struct {
	UserID    string
	FirstName string
	LastName  string
	Username  string
	Email     string
	Status    credentials.Status
}

// Register provisions a local account: a profile in the remote directory
// plus a local credential. The remote create runs first; if the process
// dies before the local write, a retry recovers through the conflict path
// below instead of leaving a credential that points nowhere.
func (s *Service) Register(ctx context.Context, in RegisterInput) (RegisterResult, error) {
	if err := validateRegister(in); err != nil {
		return RegisterResult{}, err
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	// Local store first: the common re-registration case short-circuits
	// without a remote call.
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return RegisterResult{}, errs.ErrEmailAlreadyRegistered
	}
	if !errors.Is(err, credentials.ErrNotFound) {
		return RegisterResult{}, errs.ErrInternal.WithCause(err)
	}

	username, err := s.deriveUsername(ctx, email)
	if err != nil {
		return RegisterResult{}, err
	}

	profile, err := s.dir.CreateLocalUser(ctx, directory.CreateLocalUserParams{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  username,
		Email:     email,
		Password:  in.Password,
	})
	if errors.Is(err, directory.ErrConflict) {
		// The directory already holds this email, typically from a prior
		// registration that died before the local credential write. Adopt
		// the existing remote identity and finish the local half.
		profile, err = s.dir.FindByEmail(ctx, email)
		if err != nil {
			logger.Error("remote conflict could not be resolved", map[string]any{
				"email": email,
				"error": err.Error(),
			})
			return RegisterResult{}, errs.ErrRemoteConflictUnresolvable
		}
		logger.Info("adopted existing remote profile after conflict", map[string]any{
			"user_id": profile.ID,
		})
	} else if err != nil {
		return RegisterResult{}, err
	}

	hash, err := credentials.HashPassword(in.Password)
	if err != nil {
		return RegisterResult{}, errs.ErrInternal.WithCause(err)
	}

	cred, err := s.store.Save(ctx, credentials.Credential{
		UserID:       profile.ID,
		Email:        email,
		PasswordHash: hash,
		Status:       credentials.StatusActive,
	})
	if errors.Is(err, credentials.ErrDuplicateEmail) {
		return RegisterResult{}, errs.ErrEmailAlreadyRegistered
	}
	if err != nil {
		return RegisterResult{}, errs.ErrInternal.WithCause(err)
	}

	logger.Info("local account registered", map[string]any{
		"user_id": cred.UserID,
	})

	return RegisterResult{
		UserID:    cred.UserID,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  profile.Username,
		Email:     cred.Email,
		Status:    cred.Status,
	}, nil
}

type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
	UserID      string
	Email       string
}

// Login authenticates a local credential and issues an access token.
// Unknown email and wrong password both report INVALID_CREDENTIALS so the
// response does not leak which half failed.
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return LoginResult{}, errs.Validation("email and password are required")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	cred, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, credentials.ErrNotFound) {
		return LoginResult{}, errs.ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, errs.ErrInternal.WithCause(err)
	}

	switch cred.Status {
	case credentials.StatusDisabled:
		return LoginResult{}, errs.ErrAccountDisabled
	case credentials.StatusLocked:
		return LoginResult{}, errs.ErrAccountLocked
	}

	if err := credentials.VerifyPassword(cred.PasswordHash, password); err != nil {
		if !errors.Is(err, credentials.ErrHashMismatch) {
			// Corrupt digest, not a wrong password. The caller sees the
			// same refusal either way.
			logger.Error("stored password digest is unreadable", map[string]any{
				"user_id": cred.UserID,
				"error":   err.Error(),
			})
		}
		return LoginResult{}, errs.ErrInvalidCredentials
	}

	name := s.displayName(ctx, email)

	accessToken, err := s.tokens.IssueAccessToken(cred.UserID, cred.Email, name)
	if err != nil {
		return LoginResult{}, errs.ErrInternal.WithCause(err)
	}

	return LoginResult{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokens.AccessTokenSeconds(),
		UserID:      cred.UserID,
		Email:       cred.Email,
	}, nil
}

type GoogleAuthResult struct {
	UserID       string
	Email        string
	Name         string
	AccessToken  string
	RefreshToken string
}

// GoogleAuth authenticates a Google ID token, upserts the remote profile
// keyed by the Google subject and issues a full token pair. No local
// credential is created; local credentials exist only for the LOCAL
// provider path.
func (s *Service) GoogleAuth(ctx context.Context, idToken string) (GoogleAuthResult, error) {
	if strings.TrimSpace(idToken) == "" {
		return GoogleAuthResult{}, errs.ErrMissingToken
	}

	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return GoogleAuthResult{}, err
	}

	if !identity.EmailVerified {
		// Google attests the assertion, but the holder's ownership of the
		// email is unconfirmed.
		return GoogleAuthResult{}, errs.ErrEmailNotVerified
	}

	profile, err := s.dir.UpsertGoogleUser(ctx, directory.GoogleUserParams{
		Subject:       identity.Subject,
		Email:         identity.Email,
		Name:          identity.Name,
		Picture:       identity.Picture,
		EmailVerified: identity.EmailVerified,
	})
	if err != nil {
		return GoogleAuthResult{}, err
	}

	name := profileName(profile)
	if name == "" {
		name = identity.Name
	}

	pair, err := s.tokens.IssuePair(profile.ID, profile.Email, name)
	if err != nil {
		return GoogleAuthResult{}, errs.ErrInternal.WithCause(err)
	}

	logger.Info("google authentication succeeded", map[string]any{
		"user_id": profile.ID,
	})

	return GoogleAuthResult{
		UserID:       profile.ID,
		Email:        profile.Email,
		Name:         name,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// displayName fetches the profile display name, falling back to the email
// local-part when the directory is unavailable. A directory outage must
// not fail an otherwise valid login.
func (s *Service) displayName(ctx context.Context, email string) string {
	profile, err := s.dir.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, directory.ErrNotFound) {
			logger.Warn("display name lookup failed, using local-part", map[string]any{
				"error": err.Error(),
			})
		}
		return localPart(email)
	}
	if name := profileName(profile); name != "" {
		return name
	}
	return localPart(email)
}

// deriveUsername defaults to the email local-part and disambiguates with a
// numeric suffix when the directory already has it.
func (s *Service) deriveUsername(ctx context.Context, email string) (string, error) {
	base := localPart(email)
	username := base
	for i := 1; i <= 5; i++ {
		taken, err := s.dir.ExistsByUsername(ctx, username)
		if err != nil {
			return "", err
		}
		if !taken {
			return username, nil
		}
		username = fmt.Sprintf("%s%d", base, i)
	}
	return "", errs.Validation("could not derive an available username")
}

func validateRegister(in RegisterInput) error {
	if strings.TrimSpace(in.FirstName) == "" {
		return errs.Validation("first name is required")
	}
	if strings.TrimSpace(in.LastName) == "" {
		return errs.Validation("last name is required")
	}
	email := strings.TrimSpace(in.Email)
	if email == "" {
		return errs.Validation("email is required")
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return errs.Validation("email is malformed")
	}
	if len(in.Password) < 8 || len(in.Password) > 100 {
		return errs.Validation("password must be between 8 and 100 characters")
	}
	return nil
}

func profileName(p directory.Profile) string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

func localPart(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
