// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/guard"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/platform/validate"
	"github.com/taibuivan/nooblol/pkg/pointer"
)

// ErrUnknownStatus is returned for a status outside ACTIVE, INACTIVE and DELETE.
var ErrUnknownStatus = validate.RequiredError(FieldStatus, "Unknown status")

// Service handles category and board listing and administration.
type Service struct {
	repository Repository
	cache      Cache
	logger     *slog.Logger
	now        func() time.Time
}

// NewService constructs a new category [Service].
func NewService(repository Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{repository: repository, cache: cache, logger: logger, now: time.Now}
}

// # Public Listings

// ListCategories returns categories with the given status.
func (service *Service) ListCategories(context context.Context, status Status) ([]*Category, error) {
	if !status.IsValid() {
		return nil, ErrUnknownStatus
	}

	key := fmt.Sprintf("category:%d", status)
	return cached(context, service, key, func() ([]*Category, error) {
		return service.repository.ListCategories(context, status)
	})
}

// ListBbs returns boards of one category with the given status.
func (service *Service) ListBbs(context context.Context, categoryID int64, status Status) ([]*Bbs, error) {
	if categoryID <= 0 {
		return nil, validate.RequiredError(FieldCategoryID, "This field is required")
	}
	if !status.IsValid() {
		return nil, ErrUnknownStatus
	}

	key := fmt.Sprintf("bbs:%d:%d", categoryID, status)
	return cached(context, service, key, func() ([]*Bbs, error) {
		return service.repository.ListBbs(context, categoryID, status)
	})
}

// ListAllBbs returns every board that is not deleted.
func (service *Service) ListAllBbs(context context.Context) ([]*Bbs, error) {
	return cached(context, service, "bbs:all", func() ([]*Bbs, error) {
		return service.repository.ListAllBbs(context)
	})
}

// cached serves key from the cache and fills it on a miss. Cache failures
// are logged and the listing is read from the repository.
//
// The generation is read before the repository so that a listing loaded
// ahead of a concurrent write is never stored after that write invalidates.
func cached[T any](context context.Context, service *Service, key string, load func() ([]*T, error)) ([]*T, error) {
	var items []*T
	hit, err := service.cache.Load(context, key, &items)
	if err != nil {
		service.logger.WarnContext(context, "board_cache_load_failed", slog.String("key", key), slog.Any("error", err))
	}
	if hit {
		return items, nil
	}

	generation, generationErr := service.cache.Generation(context)
	if generationErr != nil {
		service.logger.WarnContext(context, "board_cache_generation_failed", slog.String("key", key), slog.Any("error", generationErr))
	}

	items, err = load()
	if err != nil {
		return nil, fmt.Errorf("category_service_list_failed: %w", err)
	}

	if generationErr != nil {
		return items, nil
	}
	stored, err := service.cache.Store(context, key, items, generation)
	if err != nil {
		service.logger.WarnContext(context, "board_cache_store_failed", slog.String("key", key), slog.Any("error", err))
	} else if !stored {
		service.logger.DebugContext(context, "board_cache_store_skipped", slog.String("key", key), slog.Int64("generation", generation))
	}
	return items, nil
}

func (service *Service) invalidate(context context.Context) {
	if err := service.cache.Invalidate(context); err != nil {
		service.logger.ErrorContext(context, "board_cache_invalidate_failed", slog.Any("error", err))
	}
}

// # Category Administration

/*
CreateCategory inserts a new category.

Returns:
  - bool: true on success
  - error: Forbidden for non-admins, BadRequest on invalid input
*/
func (service *Service) CreateCategory(context context.Context, principal sec.Principal, input CreateCategoryInput) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	status := pointer.Fallback(input.Status, StatusActive)
	validator := &validate.Validator{}
	validator.
		Required(FieldCategoryName, input.CategoryName).
		MaxLen(FieldCategoryName, input.CategoryName, MaxNameLength).
		Custom(FieldStatus, !status.IsValid(), "Unknown status")
	if err := validator.Err(); err != nil {
		return false, err
	}

	currentTime := service.now().UTC()
	category := &Category{
		CategoryName:  strings.TrimSpace(input.CategoryName),
		Status:        status,
		CreatedUserID: adminID,
		CreatedAt:     currentTime,
		UpdatedUserID: adminID,
		UpdatedAt:     currentTime,
	}
	if err := service.repository.CreateCategory(context, category); err != nil {
		return false, fmt.Errorf("category_service_create_failed: %w", err)
	}

	service.invalidate(context)
	service.logger.Info("category_created", slog.Int64("category_id", category.CategoryID), slog.String("admin_id", adminID))
	return true, nil
}

/*
UpdateCategory changes the name and/or status of a category.

Description: Blank fields keep the persisted value. A request that changes
nothing is rejected with BadRequest.
*/
func (service *Service) UpdateCategory(context context.Context, principal sec.Principal, input UpdateCategoryInput) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	if err := ValidateUpdateCategory(input); err != nil {
		return false, err
	}

	stored, err := service.repository.FindCategory(context, input.CategoryID)
	if err != nil {
		return false, fmt.Errorf("category_service_update_lookup_failed: %w", err)
	}

	candidate := *stored
	candidate.CategoryName = pointer.Text(strings.TrimSpace(input.NewCategoryName), stored.CategoryName)
	candidate.Status = pointer.Fallback(input.Status, stored.Status)

	if candidate.CategoryName == stored.CategoryName && candidate.Status == stored.Status {
		return false, apperr.ErrNothingToUpdate
	}

	candidate.UpdatedUserID = adminID
	candidate.UpdatedAt = service.now().UTC()

	updated, err := service.repository.UpdateCategory(context, &candidate)
	if err != nil {
		return false, fmt.Errorf("category_service_update_failed: %w", err)
	}

	service.invalidate(context)
	return updated, nil
}

// ValidateUpdateCategory applies the binding rules of a category update.
func ValidateUpdateCategory(input UpdateCategoryInput) error {
	validator := &validate.Validator{}
	validator.
		Positive(FieldCategoryID, input.CategoryID).
		Custom(FieldNewName, strings.TrimSpace(input.NewCategoryName) == "" && input.Status == nil,
			"At least one field must be provided").
		MaxLen(FieldNewName, input.NewCategoryName, MaxNameLength)
	if input.Status != nil {
		validator.Custom(FieldStatus, !input.Status.IsValid(), "Unknown status")
	}
	return validator.Err()
}

/*
DeleteCategory marks a category as deleted.

Returns:
  - bool: true when the row changed
  - error: NotFound, or BadRequest when it is already deleted
*/
func (service *Service) DeleteCategory(context context.Context, principal sec.Principal, categoryID int64) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	stored, err := service.repository.FindCategory(context, categoryID)
	if err != nil {
		return false, fmt.Errorf("category_service_delete_lookup_failed: %w", err)
	}

	if stored.Status == StatusDelete {
		return false, apperr.BadRequest("Category is already deleted")
	}

	stored.Status = StatusDelete
	stored.UpdatedUserID = adminID
	stored.UpdatedAt = service.now().UTC()

	deleted, err := service.repository.UpdateCategory(context, stored)
	if err != nil {
		return false, fmt.Errorf("category_service_delete_failed: %w", err)
	}

	service.invalidate(context)
	service.logger.Warn("category_deleted", slog.Int64("category_id", categoryID), slog.String("admin_id", adminID))
	return deleted, nil
}

// # Board Administration

// CreateBbs inserts a board into an existing category.
func (service *Service) CreateBbs(context context.Context, principal sec.Principal, input CreateBbsInput) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	status := pointer.Fallback(input.Status, StatusActive)
	validator := &validate.Validator{}
	validator.
		Positive(FieldCategoryID, input.CategoryID).
		Required(FieldBbsName, input.BbsName).
		MaxLen(FieldBbsName, input.BbsName, MaxNameLength).
		Custom(FieldStatus, !status.IsValid(), "Unknown status")
	if err := validator.Err(); err != nil {
		return false, err
	}

	if _, err := service.repository.FindCategory(context, input.CategoryID); err != nil {
		return false, fmt.Errorf("category_service_bbs_parent_lookup_failed: %w", err)
	}

	currentTime := service.now().UTC()
	bbs := &Bbs{
		CategoryID:    input.CategoryID,
		BbsName:       strings.TrimSpace(input.BbsName),
		Status:        status,
		CreatedUserID: adminID,
		CreatedAt:     currentTime,
		UpdatedUserID: adminID,
		UpdatedAt:     currentTime,
	}
	if err := service.repository.CreateBbs(context, bbs); err != nil {
		return false, fmt.Errorf("category_service_bbs_create_failed: %w", err)
	}

	service.invalidate(context)
	service.logger.Info("bbs_created", slog.Int64("bbs_id", bbs.BbsID), slog.String("admin_id", adminID))
	return true, nil
}

// UpdateBbs changes a board. Blank fields keep their persisted value.
func (service *Service) UpdateBbs(context context.Context, principal sec.Principal, input UpdateBbsInput) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	validator := &validate.Validator{}
	validator.
		Positive(FieldBbsID, input.BbsID).
		MaxLen(FieldBbsName, input.BbsName, MaxNameLength)
	if input.Status != nil {
		validator.Custom(FieldStatus, !input.Status.IsValid(), "Unknown status")
	}
	if input.CategoryID != nil {
		validator.Positive(FieldCategoryID, *input.CategoryID)
	}
	if err := validator.Err(); err != nil {
		return false, err
	}

	stored, err := service.repository.FindBbs(context, input.BbsID)
	if err != nil {
		return false, fmt.Errorf("category_service_bbs_update_lookup_failed: %w", err)
	}

	candidate := *stored
	candidate.CategoryID = pointer.Fallback(input.CategoryID, stored.CategoryID)
	candidate.BbsName = pointer.Text(strings.TrimSpace(input.BbsName), stored.BbsName)
	candidate.Status = pointer.Fallback(input.Status, stored.Status)

	if candidate.CategoryID == stored.CategoryID && candidate.BbsName == stored.BbsName && candidate.Status == stored.Status {
		return false, apperr.ErrNothingToUpdate
	}

	if candidate.CategoryID != stored.CategoryID {
		if _, err := service.repository.FindCategory(context, candidate.CategoryID); err != nil {
			return false, fmt.Errorf("category_service_bbs_parent_lookup_failed: %w", err)
		}
	}

	candidate.UpdatedUserID = adminID
	candidate.UpdatedAt = service.now().UTC()

	updated, err := service.repository.UpdateBbs(context, &candidate)
	if err != nil {
		return false, fmt.Errorf("category_service_bbs_update_failed: %w", err)
	}

	service.invalidate(context)
	return updated, nil
}

// DeleteBbs marks a board as deleted.
func (service *Service) DeleteBbs(context context.Context, principal sec.Principal, bbsID int64) (bool, error) {
	adminID, err := guard.Admin(principal)
	if err != nil {
		return false, err
	}

	stored, err := service.repository.FindBbs(context, bbsID)
	if err != nil {
		return false, fmt.Errorf("category_service_bbs_delete_lookup_failed: %w", err)
	}

	stored.Status = StatusDelete
	stored.UpdatedUserID = adminID
	stored.UpdatedAt = service.now().UTC()

	deleted, err := service.repository.UpdateBbs(context, stored)
	if err != nil {
		return false, fmt.Errorf("category_service_bbs_delete_failed: %w", err)
	}

	service.invalidate(context)
	service.logger.Warn("bbs_deleted", slog.Int64("bbs_id", bbsID), slog.String("admin_id", adminID))
	return deleted, nil
}

// FindBbs returns one board. The article module uses it to check parents.
func (service *Service) FindBbs(context context.Context, bbsID int64) (*Bbs, error) {
	bbs, err := service.repository.FindBbs(context, bbsID)
	if err != nil {
		return nil, fmt.Errorf("category_service_find_bbs_failed: %w", err)
	}
	return bbs, nil
}
