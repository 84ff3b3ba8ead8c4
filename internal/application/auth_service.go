package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/foodstore-auth/internal/domain/entity"
	repo "github.com/oksasatya/foodstore-auth/internal/domain/repository"
	"github.com/oksasatya/foodstore-auth/internal/verification"
	"github.com/oksasatya/foodstore-auth/pkg/helpers"
	"github.com/oksasatya/foodstore-auth/pkg/mailer"
)

var validate = validator.New()

// AuthService drives a user record through the verification lifecycle:
// registration issues a pending record with an outstanding challenge,
// verification flips it to verified and clears the challenge, and the
// password-reset sequence reuses the same challenge primitive over email.
//
// Login deliberately does not require verified status; that matches the
// reference behavior and is a recorded policy decision, not an oversight.
type AuthService struct {
	Repo     repo.UserRepository
	Channels *verification.Registry
	JWT      *helpers.JWTManager
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewAuthService(r repo.UserRepository, channels *verification.Registry, jwt *helpers.JWTManager, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, Channels: channels, JWT: jwt, Pub: pub, Logger: logger}
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	Method      entity.VerificationMethod
}

// Register validates the input, dispatches a channel-appropriate challenge,
// and persists the new pending user. Ordering matters: all validation and
// the duplicate check happen before any side effect, and the dispatch
// happens before the insert so a provider failure leaves no record behind
// (all-or-nothing). A concurrent duplicate that slips past the pre-check is
// caught by the store's unique index on insert.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if !in.Method.Valid() {
		return ErrUnknownMethod
	}
	if err := validate.Var(in.Email, "required,email"); err != nil {
		return ErrInvalidEmail
	}
	if !helpers.PasswordStrong(in.Password) {
		return ErrWeakPassword
	}
	if in.Method == entity.MethodSMSOTP && in.PhoneNumber == "" {
		return ErrPhoneRequired
	}

	if _, err := s.Repo.FindByEmail(ctx, in.Email); err == nil {
		return ErrUserExists
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}

	u := &entity.User{
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Password:    hash,
		Role:        entity.RoleUser,
		Method:      in.Method,
		Status:      entity.StatusPending,
	}

	ch, ok := s.Channels.Get(in.Method)
	if !ok {
		return ErrUnknownMethod
	}
	issued, err := ch.Issue(ctx, u)
	if err != nil {
		return err
	}
	u.SetChallenge(issued.Code, issued.IssuedAt)

	if err := s.Repo.Insert(ctx, u); err != nil {
		if errors.Is(err, repo.ErrEmailTaken) {
			return ErrUserExists
		}
		return err
	}
	return nil
}

// VerifyOTP checks a supplied one-time code against the user's outstanding
// challenge and, on match, marks the user verified, clears the challenge so
// the code cannot be replayed, and mints a session credential. A mismatch
// leaves the record untouched: the challenge stays outstanding and the
// caller may retry.
func (s *AuthService) VerifyOTP(ctx context.Context, method entity.VerificationMethod, email, phoneNumber, code string) (string, error) {
	var (
		u   *entity.User
		err error
	)
	switch method {
	case entity.MethodEmailOTP:
		u, err = s.Repo.FindByEmail(ctx, email)
	case entity.MethodSMSOTP:
		u, err = s.Repo.FindByPhone(ctx, phoneNumber)
	default:
		return "", ErrUnknownMethod
	}
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	ch, ok := s.Channels.Get(method)
	if !ok {
		return "", ErrUnknownMethod
	}
	match, err := ch.Check(ctx, u, code)
	if err != nil {
		return "", err
	}
	if !match {
		return "", ErrOTPMismatch
	}

	u.Status = entity.StatusVerified
	u.ClearChallenge()
	if err := s.Repo.Update(ctx, u); err != nil {
		return "", err
	}

	token, err := s.JWT.GenerateSessionToken(u.ID, "")
	if err != nil {
		return "", err
	}
	s.notify(ctx, u.Email, "Welcome aboard",
		fmt.Sprintf("Hi %s, your account has been verified.", u.Name))
	return token, nil
}

// VerifyLink validates a signed email-link token by signature and expiry,
// resolves the embedded identity, and marks the user verified. No session
// credential is issued on this path.
func (s *AuthService) VerifyLink(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseLinkToken(token)
	if err != nil {
		return ErrTokenInvalid
	}
	u, err := s.Repo.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Status == entity.StatusVerified {
		return nil
	}
	u.Status = entity.StatusVerified
	u.ClearChallenge()
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.notify(ctx, u.Email, "Welcome aboard",
		fmt.Sprintf("Hi %s, your account has been verified.", u.Name))
	return nil
}

// Login checks credentials and mints a session token carrying the role.
// Verified status is not required here; see the service doc comment.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, entity.Role, error) {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", "", ErrUserNotFound
		}
		return "", "", err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", "", ErrInvalidCredentials
	}
	token, err := s.JWT.GenerateSessionToken(u.ID, string(u.Role))
	if err != nil {
		return "", "", err
	}
	return token, u.Role, nil
}

// ForgotPassword issues a fresh email code challenge on the existing user
// record, superseding any prior challenge. Delivery always goes by email,
// independent of the channel chosen at registration. The new code is only
// persisted after a successful dispatch.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	ch, ok := s.Channels.Get(entity.MethodEmailOTP)
	if !ok {
		return ErrUnknownMethod
	}
	issued, err := ch.Issue(ctx, u)
	if err != nil {
		return err
	}
	u.SetChallenge(issued.Code, issued.IssuedAt)
	return s.Repo.Update(ctx, u)
}

// VerifyResetOTP is the read-side check of the reset flow: it reports
// whether the supplied code matches the outstanding challenge without
// mutating anything.
func (s *AuthService) VerifyResetOTP(ctx context.Context, email, code string) error {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	ch, ok := s.Channels.Get(entity.MethodEmailOTP)
	if !ok {
		return ErrUnknownMethod
	}
	match, err := ch.Check(ctx, u, code)
	if err != nil {
		return err
	}
	if !match {
		return ErrOTPMismatch
	}
	return nil
}

// ResetPassword re-validates password strength, replaces the hash, and
// clears the outstanding challenge.
func (s *AuthService) ResetPassword(ctx context.Context, email, newPassword string) error {
	u, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if !helpers.PasswordStrong(newPassword) {
		return ErrWeakPassword
	}
	hash, err := helpers.HashPassword(newPassword)
	if err != nil {
		return err
	}
	u.Password = hash
	u.ClearChallenge()
	if err := s.Repo.Update(ctx, u); err != nil {
		return err
	}
	s.notify(ctx, u.Email, "Your password was changed",
		fmt.Sprintf("Hi %s, your password was just reset. If this wasn't you, contact support.", u.Name))
	return nil
}

// Profile returns the user behind a session credential.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// notify enqueues a best-effort notification email. Queue failures are
// logged and swallowed; notifications never block or fail the flow that
// triggered them.
func (s *AuthService) notify(ctx context.Context, to, subject, text string) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{To: to, Subject: subject, Text: text}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("to", to).Warn("failed to enqueue notification email")
	}
}
