// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package accounttest provides test doubles for the account package.
package accounttest

import (
	"context"
	"sort"
	"sync"

	"github.com/taibuivan/nooblol/internal/platform/apperr"
	"github.com/taibuivan/nooblol/internal/platform/sec"
	"github.com/taibuivan/nooblol/internal/users/account"
)

// MemoryRepository is an in-memory [account.Repository] for service tests.
type MemoryRepository struct {
	mu     sync.Mutex
	users  map[string]*account.User
	writes int
}

// NewMemoryRepository creates an empty [MemoryRepository].
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{users: map[string]*account.User{}}
}

// Writes reports how many mutating calls the repository has received.
func (r *MemoryRepository) Writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writes
}

func (r *MemoryRepository) FindByID(_ context.Context, userID string) (*account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.UserEmail == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (r *MemoryRepository) Create(_ context.Context, user *account.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	for _, existing := range r.users {
		if existing.UserEmail == user.UserEmail {
			return apperr.Conflict("User already exists")
		}
	}
	copied := *user
	r.users[user.UserID] = &copied
	return nil
}

func (r *MemoryRepository) UpdateProfile(_ context.Context, user *account.User) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	stored, ok := r.users[user.UserID]
	if !ok {
		return false, nil
	}
	stored.UserName = user.UserName
	stored.Password = user.Password
	stored.UpdatedAt = user.UpdatedAt
	return true, nil
}

func (r *MemoryRepository) UpdateRole(_ context.Context, userID string, role sec.Role) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	stored, ok := r.users[userID]
	if !ok {
		return false, nil
	}
	stored.UserRole = role
	return true, nil
}

func (r *MemoryRepository) Delete(_ context.Context, userID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	_, ok := r.users[userID]
	delete(r.users, userID)
	return ok, nil
}

func (r *MemoryRepository) List(_ context.Context, limit, offset int) ([]*account.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*account.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.After(users[j].CreatedAt) })
	if offset >= len(users) {
		return []*account.User{}, nil
	}
	end := min(offset+limit, len(users))
	return users[offset:end], nil
}
