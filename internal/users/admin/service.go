// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package admin implements member management for administrators.

Every operation requires an ADMIN principal. Demoting or deleting a member
ends all of that member's sessions so the change takes effect immediately.
*/
package admin

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/users/account"
	"github.com/taibuivan/nooblol/pkg/pagination"
	"github.com/taibuivan/nooblol/pkg/slice"
)

// Registrar creates accounts with an explicit role.
type Registrar interface {
	Register(context context.Context, input account.SignUpInput, role sec.Role) (*account.User, error)
}

// SessionInvalidator ends every session of a user.
type SessionInvalidator interface {
	DeleteUser(context context.Context, userID string) error
}

// Service handles administrative member operations.
type Service struct {
	users     account.Repository
	registrar Registrar
	sessions  SessionInvalidator
	logger    *slog.Logger
}

// NewService constructs a new admin [Service].
func NewService(users account.Repository, registrar Registrar, sessions SessionInvalidator, logger *slog.Logger) *Service {
	return &Service{users: users, registrar: registrar, sessions: sessions, logger: logger}
}

/*
AddAdmin creates a new account with the ADMIN role.

Returns:
  - bool: true on success
  - error: Forbidden for non-admins, BadRequest or Conflict from registration
*/
func (service *Service) AddAdmin(context context.Context, principal sec.Principal, input account.SignUpInput) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	user, err := service.registrar.Register(context, input, sec.RoleAdmin)
	if err != nil {
		return false, err
	}

	service.logger.Warn("admin_account_created",
		slog.String("admin_id", adminID),
		slog.String("user_id", user.UserID),
	)
	return true, nil
}

/*
DeleteMember removes an account regardless of its password and ends its sessions.
*/
func (service *Service) DeleteMember(context context.Context, principal sec.Principal, userID string) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	if _, err := service.users.FindByID(context, userID); err != nil {
		return false, fmt.Errorf("admin_service_delete_lookup_failed: %w", err)
	}

	deleted, err := service.users.Delete(context, userID)
	if err != nil {
		return false, fmt.Errorf("admin_service_delete_failed: %w", err)
	}

	if err := service.sessions.DeleteUser(context, userID); err != nil {
		return false, fmt.Errorf("admin_service_delete_sessions_failed: %w", err)
	}

	service.logger.Warn("member_deleted", slog.String("admin_id", adminID), slog.String("user_id", userID))
	return deleted, nil
}

// ListMembers returns a page of members, newest first.
func (service *Service) ListMembers(context context.Context, principal sec.Principal, page pagination.Params) ([]*Member, error) {
	if _, err := guard.Admin(principal); err != nil {
		return nil, err
	}

	users, err := service.users.List(context, page.Limit, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("admin_service_list_failed: %w", err)
	}
	return slice.Map(users, memberOf), nil
}

// Activate sets a member's role to AUTH_USER.
func (service *Service) Activate(context context.Context, principal sec.Principal, userID string) (bool, error) {
	return service.changeRole(context, principal, userID, sec.RoleAuthUser)
}

// Suspend sets a member's role to SUSPENSION_USER and ends its sessions.
func (service *Service) Suspend(context context.Context, principal sec.Principal, userID string) (bool, error) {
	return service.changeRole(context, principal, userID, sec.RoleSuspensionUser)
}

func (service *Service) changeRole(context context.Context, principal sec.Principal, userID string, role sec.Role) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	if _, err := service.users.FindByID(context, userID); err != nil {
		return false, fmt.Errorf("admin_service_role_lookup_failed: %w", err)
	}

	updated, err := service.users.UpdateRole(context, userID, role)
	if err != nil {
		return false, fmt.Errorf("admin_service_role_update_failed: %w", err)
	}

	// Sessions carry the role captured at login
	if err := service.sessions.DeleteUser(context, userID); err != nil {
		return false, fmt.Errorf("admin_service_role_sessions_failed: %w", err)
	}

	service.logger.Warn("member_role_changed",
		slog.String("admin_id", adminID),
		slog.String("user_id", userID),
		slog.String("role", role.String()),
	)
	return updated, nil
}
