// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/metrics"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/session"
	"github.com/taibuivan/nooblol/internal/platform/validate"
	"github.com/taibuivan/nooblol/pkg/normalize"
	"github.com/taibuivan/nooblol/pkg/uuid"
)

// SessionStore is the subset of [session.Store] the account service drives.
type SessionStore interface {
	Create(context context.Context, userID string, role sec.Role) (*session.Session, error)
	Delete(context context.Context, id string) error
	DeleteUser(context context.Context, userID string) error
}

// MailTokens issues and verifies e-mail verification tokens.
type MailTokens interface {
	Issue(userID, email string) (string, error)
	Verify(token string) (*sec.MailClaims, error)
}

// # Service Layer

// Service orchestrates account registration, login and verification.
type Service struct {
	repository Repository
	sessions   SessionStore
	tokens     MailTokens
	mailer     Mailer
	baseURL    string
	metrics    *metrics.Metrics
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new account [Service].
func NewService(
	repository Repository,
	sessions SessionStore,
	tokens MailTokens,
	mailer Mailer,
	publicBaseURL string,
	collectors *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		repository: repository,
		sessions:   sessions,
		tokens:     tokens,
		mailer:     mailer,
		baseURL:    strings.TrimRight(publicBaseURL, "/"),
		metrics:    collectors,
		logger:     logger,
		now:        time.Now,
	}
}

// # Registration

/*
SignUp registers a new UNAUTH_USER and mails a verification link.

Returns:
  - bool: true on success
  - error: BadRequest on invalid input, Conflict on a duplicate e-mail
*/
func (service *Service) SignUp(context context.Context, input SignUpInput) (bool, error) {
	user, err := service.register(context, input, sec.RoleUnauthUser)
	if err != nil {
		return false, err
	}

	if err := service.sendVerification(context, user); err != nil {
		return false, err
	}

	service.logger.Info("user_signed_up", slog.String("user_id", user.UserID))
	return true, nil
}

/*
Register validates input and inserts a user with the given role.

It is shared by signup and by administrators creating other administrators.
*/
func (service *Service) Register(context context.Context, input SignUpInput, role sec.Role) (*User, error) {
	return service.register(context, input, role)
}

func (service *Service) register(context context.Context, input SignUpInput, role sec.Role) (*User, error) {
	input.UserEmail = strings.TrimSpace(input.UserEmail)
	input.UserName = normalize.Name(input.UserName)

	if err := ValidateSignUp(input); err != nil {
		return nil, err
	}

	// Duplicate e-mail is a Conflict, not a generic failure
	if _, err := service.repository.FindByEmail(context, input.UserEmail); err == nil {
		return nil, apperr.Conflict("User already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, fmt.Errorf("account_service_signup_lookup_failed: %w", err)
	}

	hash, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	currentTime := service.now().UTC()
	user := &User{
		UserID:    uuid.New(),
		UserEmail: input.UserEmail,
		UserName:  input.UserName,
		Password:  hash,
		Level:     1,
		UserRole:  role,
		CreatedAt: currentTime,
		UpdatedAt: currentTime,
	}

	if err := service.repository.Create(context, user); err != nil {
		return nil, fmt.Errorf("account_service_signup_failed: %w", err)
	}

	return user, nil
}

// ValidateSignUp applies the registration binding rules.
func ValidateSignUp(input SignUpInput) error {
	validator := &validate.Validator{}
	validator.
		Required(FieldUserEmail, input.UserEmail).
		Email(FieldUserEmail, input.UserEmail).
		Required(FieldUserName, input.UserName).
		MaxLen(FieldUserName, input.UserName, MaxUserNameLength).
		MinLen(FieldPassword, input.Password, MinPasswordLength).
		Custom(FieldPassword, len(input.Password) > sec.MaxPasswordBytes, "Password is too long")
	return validator.Err()
}

// # Login & Logout

/*
Login checks credentials and starts a session.

Suspended and unverified accounts receive a sentinel result and no session.

Returns:
  - LoginResult: The user and session id, or a sentinel
  - error: BadRequest on unknown e-mail or wrong password
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUserEmail, input.UserEmail).Required(FieldPassword, input.UserPassword)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.repository.FindByEmail(context, strings.TrimSpace(input.UserEmail))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			service.metrics.IncLogin(metrics.LoginRejected)
			return nil, apperr.BadRequest("Invalid e-mail or password")
		}
		return nil, fmt.Errorf("account_service_login_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.UserPassword, user.Password) {
		service.metrics.IncLogin(metrics.LoginRejected)
		return nil, apperr.BadRequest("Invalid e-mail or password")
	}

	switch {
	case sec.IsSuspended(user.UserRole):
		service.metrics.IncLogin(metrics.LoginSuspended)
		return &LoginResult{Sentinel: LoginSuspended}, nil
	case sec.IsEmailUnverified(user.UserRole):
		service.metrics.IncLogin(metrics.LoginUnverified)
		return &LoginResult{Sentinel: LoginUnverified}, nil
	}

	current, err := service.sessions.Create(context, user.UserID, user.UserRole)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	service.metrics.IncLogin(metrics.LoginSucceeded)
	service.logger.Info("user_logged_in", slog.String("user_id", user.UserID))

	return &LoginResult{User: user, SessionID: current.ID}, nil
}

/*
Logout ends the caller's current session.
*/
func (service *Service) Logout(context context.Context, principal sec.Principal, sessionID string) error {
	userID, err := guard.Login(principal)
	if err != nil {
		return err
	}

	if err := service.sessions.Delete(context, sessionID); err != nil {
		return apperr.Internal(err)
	}

	service.logger.Info("user_logged_out", slog.String("user_id", userID))
	return nil
}

// # Profile Management

/*
Update changes the caller's name and/or password.

Description: Only AUTH_USER and ADMIN accounts may update. The current
password (orgPassword) must match. Blank fields keep the persisted value, and a request
that changes nothing is rejected.

Returns:
  - bool: true when a row was written
  - error: BadRequest, Unauthorized, Forbidden or NotFound
*/
func (service *Service) Update(context context.Context, principal sec.Principal, input UpdateInput) (bool, error) {
	userID, err := guard.Login(principal)
	if err != nil {
		return false, err
	}

	if err := ValidateUpdate(input); err != nil {
		return false, err
	}

	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return false, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if !sec.IsWriter(user.UserRole) {
		return false, apperr.Forbidden("Only verified accounts may update their profile")
	}

	if !sec.CheckPasswordHash(input.OrgPassword, user.Password) {
		return false, validate.RequiredError(FieldOrgPassword, "Password does not match")
	}

	newName := normalize.Name(input.NewUserName)
	if newName == "" {
		newName = user.UserName
	}

	passwordChanged := input.NewPassword != "" && !sec.CheckPasswordHash(input.NewPassword, user.Password)
	if newName == user.UserName && !passwordChanged {
		return false, apperr.ErrNothingToUpdate
	}

	candidate := *user
	candidate.UserName = newName
	candidate.UpdatedAt = service.now().UTC()
	if passwordChanged {
		if candidate.Password, err = sec.HashPassword(input.NewPassword); err != nil {
			return false, apperr.Internal(err)
		}
	}

	updated, err := service.repository.UpdateProfile(context, &candidate)
	if err != nil {
		return false, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_profile_updated", slog.String("user_id", userID), slog.Bool("password_changed", passwordChanged))
	return updated, nil
}

// ValidateUpdate applies the update binding rules.
func ValidateUpdate(input UpdateInput) error {
	validator := &validate.Validator{}
	validator.
		AnyOf(FieldUserName, input.NewUserName, input.NewPassword).
		Required(FieldOrgPassword, input.OrgPassword).
		MaxLen(FieldUserName, input.NewUserName, MaxUserNameLength)
	if input.NewPassword != "" {
		validator.
			MinLen(FieldNewPassword, input.NewPassword, MinPasswordLength).
			Custom(FieldNewPassword, len(input.NewPassword) > sec.MaxPasswordBytes, "Password is too long")
	}
	return validator.Err()
}

/*
SignOut deletes an account after verifying its password and ends all its sessions.
*/
func (service *Service) SignOut(context context.Context, input SignOutInput) (bool, error) {
	validator := &validate.Validator{}
	validator.Required(FieldUserID, input.UserID).Required(FieldPassword, input.Password)
	if err := validator.Err(); err != nil {
		return false, err
	}

	user, err := service.repository.FindByID(context, input.UserID)
	if err != nil {
		return false, fmt.Errorf("account_service_signout_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(input.Password, user.Password) {
		return false, validate.RequiredError(FieldPassword, "Password does not match")
	}

	deleted, err := service.repository.Delete(context, user.UserID)
	if err != nil {
		return false, fmt.Errorf("account_service_signout_failed: %w", err)
	}

	if err := service.sessions.DeleteUser(context, user.UserID); err != nil {
		return false, apperr.Internal(err)
	}

	service.logger.Warn("user_signed_out", slog.String("user_id", user.UserID))
	return deleted, nil
}

/*
GetProfile returns the public profile of a user.
*/
func (service *Service) GetProfile(context context.Context, userID string) (*Profile, error) {
	user, err := service.repository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user.Profile(), nil
}

// # E-mail Verification

/*
ResendVerification issues a fresh verification link for an unverified account.

Returns:
  - bool: true on success
  - error: BadRequest for a malformed address or an already verified account,
    NotFound for an unknown address
*/
func (service *Service) ResendVerification(context context.Context, email string) (bool, error) {
	email = strings.TrimSpace(email)
	if !validate.IsEmail(email) {
		return false, validate.RequiredError(FieldUserEmail, "Must be a valid email address")
	}

	user, err := service.repository.FindByEmail(context, email)
	if err != nil {
		return false, fmt.Errorf("account_service_resend_lookup_failed: %w", err)
	}

	if !sec.IsEmailUnverified(user.UserRole) {
		return false, apperr.BadRequest("Account is already verified")
	}

	if err := service.sendVerification(context, user); err != nil {
		return false, err
	}
	return true, nil
}

/*
Verify promotes the account named by a verification token to AUTH_USER.

Returns:
  - bool: true when the role was changed
  - error: BadRequest for a bad token or an already verified account,
    NotFound when the account no longer exists
*/
func (service *Service) Verify(context context.Context, token string) (bool, error) {
	claims, err := service.tokens.Verify(strings.TrimSpace(token))
	if err != nil {
		if errors.Is(err, sec.ErrInvalidMailToken) {
			return false, validate.RequiredError(FieldToken, "Verification link is invalid or expired")
		}
		return false, apperr.Internal(err)
	}

	user, err := service.repository.FindByID(context, claims.Subject)
	if err != nil {
		return false, fmt.Errorf("account_service_verify_lookup_failed: %w", err)
	}

	if user.UserEmail != claims.Email {
		return false, validate.RequiredError(FieldToken, "Verification link is invalid or expired")
	}

	if !sec.IsEmailUnverified(user.UserRole) {
		return false, apperr.BadRequest("Account is already verified")
	}

	updated, err := service.repository.UpdateRole(context, user.UserID, sec.RoleAuthUser)
	if err != nil {
		return false, fmt.Errorf("account_service_verify_failed: %w", err)
	}

	service.logger.Info("user_verified", slog.String("user_id", user.UserID))
	return updated, nil
}

func (service *Service) sendVerification(context context.Context, user *User) error {
	token, err := service.tokens.Issue(user.UserID, user.UserEmail)
	if err != nil {
		return apperr.Internal(err)
	}

	link := service.baseURL + "/api/v1/user/auth/" + token
	if err := service.mailer.SendVerification(context, user.UserEmail, link); err != nil {
		return apperr.Internal(fmt.Errorf("account_service_send_mail_failed: %w", err))
	}
	return nil
}
