// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the columns of tables shared by more than one repository.
package schema

import "strings"

// UsersTable represents the 'users' table.
type UsersTable struct {
	Table     string
	ID        string
	Email     string
	Name      string
	Password  string
	Level     string
	Exp       string
	Role      string
	CreatedAt string
	UpdatedAt string
}

// Users is the schema definition for users.
var Users = UsersTable{
	Table:     "users",
	ID:        "user_id",
	Email:     "user_email",
	Name:      "user_name",
	Password:  "password",
	Level:     "level",
	Exp:       "exp",
	Role:      "user_role",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names in scan order.
func (t UsersTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Name, t.Password, t.Level,
		t.Exp, t.Role, t.CreatedAt, t.UpdatedAt,
	}
}

// Select returns the comma-separated column list for SELECT statements.
func (t UsersTable) Select() string {
	return strings.Join(t.Columns(), ", ")
}
