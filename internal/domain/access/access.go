// Package access covers the admin allowlist and the ban list.
package access

import (
	"context"
	"errors"
	"time"
)

var (
	ErrUserBanned  = errors.New("user is banned")
	ErrNotAdmin    = errors.New("user is not an admin")
	ErrBanNotFound = errors.New("ban not found")
)

// Admin is one allowlisted user.
type Admin struct {
	UserID  int64
	AddedAt time.Time
}

// Ban records a banned user with an optional reason and issuing admin.
type Ban struct {
	UserID   int64
	Reason   *string
	BannedBy *int64
	BannedAt time.Time
}

// AdminRepository manages the allowlist. Add and Remove report whether the
// set actually changed.
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
	Add(ctx context.Context, userID int64) (bool, error)
	Remove(ctx context.Context, userID int64) (bool, error)
	List(ctx context.Context) ([]Admin, error)
}

// BanRepository manages the ban list with the same contract as
// AdminRepository.
type BanRepository interface {
	IsBanned(ctx context.Context, userID int64) (bool, error)
	Ban(ctx context.Context, ban Ban) (bool, error)
	Unban(ctx context.Context, userID int64) (bool, error)
	Get(ctx context.Context, userID int64) (*Ban, error)
	List(ctx context.Context) ([]Ban, error)
}
