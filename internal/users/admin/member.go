// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package admin

import (
	"time"

	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/users/account"
)

// Member is the administrator's view of an account.
type Member struct {
	UserID    string    `json:"userId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	Level     int       `json:"level"`
	Exp       int       `json:"exp"`
	UserRole  sec.Role  `json:"userRole"`
	RoleName  string    `json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func memberOf(user *account.User) *Member {
	return &Member{
		UserID:    user.UserID,
		UserEmail: user.UserEmail,
		UserName:  user.UserName,
		Level:     user.Level,
		Exp:       user.Exp,
		UserRole:  user.UserRole,
		RoleName:  user.UserRole.String(),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}
