// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package category manages board categories and the bulletin boards (bbs)
inside them.

Reads are public and served from a Redis cache; every write requires an
administrator and clears the cache. Deletion is a status change, never a row
removal, so articles keep a valid parent.
*/
package category

import (
	"context"
	"time"
)

// # Status

// Status is the lifecycle state shared by categories and boards.
type Status int

const (
	StatusActive   Status = 1
	StatusInactive Status = 2
	StatusDelete   Status = 9
)

// IsValid reports whether s is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusDelete:
		return true
	}
	return false
}

// # Domain Entities

// Category groups boards.
type Category struct {
	CategoryID    int64     `json:"categoryId"`
	CategoryName  string    `json:"categoryName"`
	Status        Status    `json:"status"`
	CreatedUserID string    `json:"createdUserId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedUserID string    `json:"updatedUserId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Bbs is a bulletin board inside a category.
type Bbs struct {
	BbsID         int64     `json:"bbsId"`
	CategoryID    int64     `json:"categoryId"`
	BbsName       string    `json:"bbsName"`
	Status        Status    `json:"status"`
	CreatedUserID string    `json:"createdUserId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedUserID string    `json:"updatedUserId"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// # Inputs

// CreateCategoryInput creates a category. Status defaults to ACTIVE.
type CreateCategoryInput struct {
	CategoryName string  `json:"categoryName"`
	Status       *Status `json:"status"`
}

// UpdateCategoryInput changes a category. At least one optional field is required.
type UpdateCategoryInput struct {
	CategoryID      int64   `json:"categoryId"`
	NewCategoryName string  `json:"newCategoryName"`
	Status          *Status `json:"status"`
}

// CreateBbsInput creates a board. Status defaults to ACTIVE.
type CreateBbsInput struct {
	CategoryID int64   `json:"categoryId"`
	BbsName    string  `json:"bbsName"`
	Status     *Status `json:"status"`
}

// UpdateBbsInput changes a board. Absent fields keep their persisted value.
type UpdateBbsInput struct {
	BbsID      int64   `json:"bbsId"`
	CategoryID *int64  `json:"categoryId"`
	BbsName    string  `json:"bbsName"`
	Status     *Status `json:"status"`
}

// Field identifiers and limits.
const (
	FieldCategoryID   = "categoryId"
	FieldCategoryName = "categoryName"
	FieldNewName      = "newCategoryName"
	FieldBbsID        = "bbsId"
	FieldBbsName      = "bbsName"
	FieldStatus       = "status"

	MaxNameLength = 50
)

// # Repository Contract

// Repository defines the persistence contract for categories and boards.
type Repository interface {

	// ListCategories returns categories with the given status, ordered by id.
	ListCategories(context context.Context, status Status) ([]*Category, error)

	/*
		FindCategory retrieves a category regardless of its status.

		Returns:
		  - *Category: Loaded category
		  - error: apperr.NotFound or storage failures
	*/
	FindCategory(context context.Context, categoryID int64) (*Category, error)

	// CreateCategory inserts a category and fills its id.
	CreateCategory(context context.Context, category *Category) error

	// UpdateCategory writes name, status and updater columns. It reports whether a row changed.
	UpdateCategory(context context.Context, category *Category) (bool, error)

	// ListBbs returns boards of one category with the given status, ordered by id.
	ListBbs(context context.Context, categoryID int64, status Status) ([]*Bbs, error)

	// ListAllBbs returns every board that is not deleted.
	ListAllBbs(context context.Context) ([]*Bbs, error)

	// FindBbs retrieves a board regardless of its status.
	FindBbs(context context.Context, bbsID int64) (*Bbs, error)

	// CreateBbs inserts a board and fills its id.
	CreateBbs(context context.Context, bbs *Bbs) error

	// UpdateBbs writes category, name, status and updater columns.
	UpdateBbs(context context.Context, bbs *Bbs) (bool, error)
}

// # Cache Contract

// Cache stores public board listings.
type Cache interface {

	// Load decodes the value stored under key into target. It reports false on a miss.
	Load(context context.Context, key string, target any) (bool, error)

	// Generation returns the current listing generation. Invalidate advances it.
	Generation(context context.Context) (int64, error)

	// Store saves value under key. It reports false without writing when the
	// generation has moved past the one the value was loaded under.
	Store(context context.Context, key string, value any, generation int64) (bool, error)

	// Invalidate advances the generation and drops every cached listing.
	Invalidate(context context.Context) error
}
