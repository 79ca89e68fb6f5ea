package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dowody/rw-sub000/internal/model"
	"github.com/Dowody/rw-sub000/internal/repository"
)

const (
	MinPasswordLen = 8

	verificationTTL  = 48 * time.Hour
	passwordResetTTL = 2 * time.Hour
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	ErrEmailNotVerified = errors.New("email not verified")
)

type AuthService struct {
	Users     *repository.AuthRepository
	Profiles  *repository.UserRepository
	Referrals *repository.ReferralRepository
	Validator EmailValidator
	Mailer    EmailSender
	Verify    *repository.EmailVerificationRepository
	Resets    *repository.PasswordResetRepository
	BaseURL   string
}

func NewAuthService(
	u *repository.AuthRepository,
	p *repository.UserRepository,
	rr *repository.ReferralRepository,
	validator EmailValidator,
	mailer EmailSender,
	vr *repository.EmailVerificationRepository,
	pr *repository.PasswordResetRepository,
	baseURL string,
) *AuthService {
	return &AuthService{
		Users:     u,
		Profiles:  p,
		Referrals: rr,
		Validator: validator,
		Mailer:    mailer,
		Verify:    vr,
		Resets:    pr,
		BaseURL:   baseURL,
	}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Register creates an account with role "user", the profile row (linked
// to a referral code when a valid one is supplied), and sends the
// verification email.
func (s *AuthService) Register(ctx context.Context, email, password string, referralCode *string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	if err := s.Validator.Validate(ctx, email); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("email already registered")
	}

	var referredBy *string
	if referralCode != nil && *referralCode != "" {
		ok, err := s.Referrals.CodeExists(ctx, *referralCode)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, errors.New("invalid referral code")
		}
		referredBy = referralCode
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	authID, err := s.Users.CreateUser(ctx, email, string(hash), "user")
	if err != nil {
		return 0, err
	}
	if _, err := s.Profiles.Create(ctx, authID, email, referredBy); err != nil {
		// profile creation failed after the account was made; caller
		// decides, the checkout/dashboard paths can recreate it lazily
		return authID, err
	}

	token := uuid.NewString()
	if err := s.Verify.Create(ctx, authID, token, time.Now().Add(verificationTTL)); err != nil {
		return authID, err
	}
	verifyURL := s.BaseURL + "/auth/verify-email?token=" + token
	if err := s.Mailer.SendVerificationEmail(ctx, email, verifyURL); err != nil {
		return authID, err
	}
	return authID, nil
}

// RegisterByAdmin is still available but admin endpoints must ensure role != "user"
func (s *AuthService) RegisterByAdmin(ctx context.Context, email, password, role string) (int64, error) {
	if role == "" {
		return 0, errors.New("role required")
	}
	if role == "user" {
		return 0, errors.New("admins cannot create user accounts")
	}
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, errors.New("email already registered")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.CreateUser(ctx, email, string(hash), role)
}

// Login authenticates using email + password and returns the user (without passwordhash).
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Auth, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		// do not reveal whether email exists
		return nil, errors.New("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("invalid credentials")
	}
	if !u.EmailVerified {
		return nil, ErrEmailNotVerified
	}
	if u.DeletedAt != nil {
		return nil, errors.New("invalid credentials")
	}
	// zero out password before returning
	u.PasswordHash = ""
	return u, nil
}

// VerifyEmail consumes a verification token and marks the account.
func (s *AuthService) VerifyEmail(ctx context.Context, token string) error {
	authID, err := s.Verify.GetAuthID(ctx, token)
	if err != nil {
		return errors.New("invalid or expired token")
	}
	if err := s.Users.SetEmailVerified(ctx, authID); err != nil {
		return err
	}
	return s.Verify.Delete(ctx, token)
}

// RequestPasswordReset issues a reset token and mails the link. Unknown
// emails succeed silently so the endpoint reveals nothing.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil
	}
	token := uuid.NewString()
	if err := s.Resets.Create(ctx, u.AuthID, token, time.Now().Add(passwordResetTTL)); err != nil {
		return err
	}
	resetURL := s.BaseURL + "/reset-password?token=" + token
	return s.Mailer.SendPasswordResetEmail(ctx, email, resetURL)
}

// ResetPassword consumes a reset token and replaces the password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}
	authID, err := s.Resets.GetAuthID(ctx, token)
	if err != nil {
		return errors.New("invalid or expired token")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.Users.UpdatePassword(ctx, authID, string(hash)); err != nil {
		return err
	}
	return s.Resets.Delete(ctx, token)
}

// ChangePassword verifies the current password before setting a new one.
func (s *AuthService) ChangePassword(ctx context.Context, authID int64, current, newPassword string) error {
	if err := s.validatePassword(newPassword); err != nil {
		return err
	}
	u, err := s.Users.GetByID(ctx, authID)
	if err != nil {
		return err
	}
	full, err := s.Users.GetByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(full.PasswordHash), []byte(current)); err != nil {
		return errors.New("current password is incorrect")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Users.UpdatePassword(ctx, authID, string(hash))
}
