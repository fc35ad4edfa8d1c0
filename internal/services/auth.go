package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/resumatch/backend/internal/logger"
	"github.com/resumatch/backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// Error variables
var (
	ErrValidation               = errors.New("invalid input")
	ErrEmailTaken               = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrNotVerified              = errors.New("email not verified")
	ErrInvalidVerificationToken = errors.New("invalid verification token")
	ErrInvalidResetToken        = errors.New("password reset token is invalid or has expired")
	ErrNotRegistered            = errors.New("user not registered")
	ErrUserNotFound             = errors.New("user not found")
)

// OAuth intents accepted by OAuthLogin.
const (
	IntentLogin    = "login"
	IntentRegister = "register"
)

const minPasswordLength = 8

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthUserReader defines read operations the auth service needs.
type AuthUserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.UserDB, error)
	GetByVerificationToken(ctx context.Context, token string) (*models.UserDB, error)
	GetByResetToken(ctx context.Context, token string) (*models.UserDB, error)
}

// AuthUserWriter defines write operations the auth service needs.
type AuthUserWriter interface {
	Save(ctx context.Context, displayName, email, passwordHash, verificationToken string) (uuid.UUID, error)
	SaveGoogle(ctx context.Context, profile models.GoogleProfile, accessToken, refreshToken string) (uuid.UUID, error)
	SetVerified(ctx context.Context, userID uuid.UUID) error
	SetResetToken(ctx context.Context, userID uuid.UUID, token string, expires time.Time) error
	ResetPassword(ctx context.Context, userID uuid.UUID, passwordHash string) error
	LinkGoogle(ctx context.Context, userID uuid.UUID, profile models.GoogleProfile, accessToken, refreshToken string) error
	UpdateGoogleTokens(ctx context.Context, userID uuid.UUID, accessToken, refreshToken string) error
}

// TokenGenerator defines an interface for issuing bearer tokens.
type TokenGenerator interface {
	Generate(ctx context.Context, userID uuid.UUID) (string, error)
}

// Mailer defines the outbound email operations used by the auth service.
type Mailer interface {
	SendVerificationEmail(to, token string) error
	SendPasswordResetEmail(to, token string) error
}

// AuthService handles signup, login, email verification, password reset
// and Google OAuth account merging.
type AuthService struct {
	reader   AuthUserReader
	writer   AuthUserWriter
	jwt      TokenGenerator // password-login tokens
	oauthJWT TokenGenerator // OAuth-login tokens, longer lived
	mailer   Mailer
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader AuthUserReader, writer AuthUserWriter, jwt, oauthJWT TokenGenerator, mailer Mailer) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		jwt:      jwt,
		oauthJWT: oauthJWT,
		mailer:   mailer,
	}
}

// Signup registers a local account and sends a verification email.
// Email delivery is fire-and-forget: failures are logged, never surfaced.
func (svc *AuthService) Signup(ctx context.Context, displayName, email, password string) error {
	if displayName == "" {
		return fmt.Errorf("%w: display name is required", ErrValidation)
	}
	if !emailPattern.MatchString(email) {
		return fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}

	existing, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to check existing user", "err", err)
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	verificationToken, err := randomToken()
	if err != nil {
		return err
	}

	if _, err := svc.writer.Save(ctx, displayName, email, string(hashedPassword), verificationToken); err != nil {
		logger.Log.Errorw("failed to save user", "err", err)
		return err
	}

	if err := svc.mailer.SendVerificationEmail(email, verificationToken); err != nil {
		logger.Log.Errorw("failed to send verification email", "email", email, "err", err)
	}

	return nil
}

// Login authenticates a local account and returns a bearer token.
func (svc *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil || user.PasswordHash == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", ErrNotVerified
	}

	token, err := svc.jwt.Generate(ctx, user.UserID)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// VerifyEmail consumes a single-use verification token.
func (svc *AuthService) VerifyEmail(ctx context.Context, token string) error {
	user, err := svc.reader.GetByVerificationToken(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to look up verification token", "err", err)
		return err
	}
	if user == nil {
		return ErrInvalidVerificationToken
	}

	return svc.writer.SetVerified(ctx, user.UserID)
}

// RequestPasswordReset issues a one-hour reset token and emails it.
func (svc *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	resetToken, err := randomToken()
	if err != nil {
		return err
	}

	if err := svc.writer.SetResetToken(ctx, user.UserID, resetToken, time.Now().Add(time.Hour)); err != nil {
		logger.Log.Errorw("failed to set reset token", "err", err)
		return err
	}

	if err := svc.mailer.SendPasswordResetEmail(user.Email, resetToken); err != nil {
		logger.Log.Errorw("failed to send password reset email", "email", user.Email, "err", err)
	}

	return nil
}

// ResetPassword replaces the password of the account holding an unexpired
// reset token. The token is single-use.
func (svc *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters long", ErrValidation, minPasswordLength)
	}

	user, err := svc.reader.GetByResetToken(ctx, token)
	if err != nil {
		logger.Log.Errorw("failed to look up reset token", "err", err)
		return err
	}
	if user == nil {
		return ErrInvalidResetToken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return err
	}

	return svc.writer.ResetPassword(ctx, user.UserID, string(hashedPassword))
}

// OAuthLogin merges a Google profile into the account store and returns a
// bearer token. Three cases: the Google identity is already linked (refresh
// stored tokens), the email matches a local account (link and verify it),
// or no account matches (create one when registering, fail otherwise).
func (svc *AuthService) OAuthLogin(ctx context.Context, profile models.GoogleProfile, accessToken, refreshToken, intent string) (string, error) {
	user, err := svc.reader.GetByGoogleID(ctx, profile.ID)
	if err != nil {
		logger.Log.Errorw("failed to get user by google id", "err", err)
		return "", err
	}
	if user != nil {
		if err := svc.writer.UpdateGoogleTokens(ctx, user.UserID, accessToken, refreshToken); err != nil {
			logger.Log.Errorw("failed to refresh google tokens", "err", err)
			return "", err
		}
		return svc.oauthJWT.Generate(ctx, user.UserID)
	}

	user, err = svc.reader.GetByEmail(ctx, profile.Email)
	if err != nil {
		logger.Log.Errorw("failed to get user by email", "err", err)
		return "", err
	}
	if user != nil {
		if err := svc.writer.LinkGoogle(ctx, user.UserID, profile, accessToken, refreshToken); err != nil {
			logger.Log.Errorw("failed to link google account", "err", err)
			return "", err
		}
		return svc.oauthJWT.Generate(ctx, user.UserID)
	}

	if intent != IntentRegister {
		return "", ErrNotRegistered
	}

	userID, err := svc.writer.SaveGoogle(ctx, profile, accessToken, refreshToken)
	if err != nil {
		logger.Log.Errorw("failed to create google user", "err", err)
		return "", err
	}
	return svc.oauthJWT.Generate(ctx, userID)
}

func randomToken() (string, error) {
	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
