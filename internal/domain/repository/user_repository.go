// Package repository defines the persistence contracts of the domain.
// Implementations live under internal/infra/persistence and must honor
// the live-record rule: every read and mutation ignores soft-deleted
// documents unless the method name says otherwise.
package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"
)

var (
	// ErrUserNotFound is returned when no live user matches the query.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateEmail is returned when a write would give two live
	// records the same email address.
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserPatch is the explicit allow-list of patchable user fields. Nil
// fields are left untouched; a set Password must already be hashed by
// the caller. Arbitrary caller-supplied maps are never merged.
type UserPatch struct {
	Name                  *string
	Email                 *string
	Password              *string
	Age                   *int
	City                  *string
	Interests             *string
	AllowsReceivingOffers *bool
	Role                  *entity.Role
}

// IsEmpty reports whether the patch would change nothing.
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.Age == nil &&
		p.City == nil && p.Interests == nil && p.AllowsReceivingOffers == nil && p.Role == nil
}

// TargetFilter narrows the marketing-target query. At least one of City
// or Interests must be set; the repository additionally restricts to
// live, non-admin users that opted into receiving offers.
type TargetFilter struct {
	City      string
	Interests []string
}

// UserRepository persists end-user principals.
type UserRepository interface {
	// Create inserts a new user and fills in its generated ID and timestamps.
	Create(ctx context.Context, user *entity.User) error

	// FindByID returns the live user with the given id.
	FindByID(ctx context.Context, id string) (*entity.User, error)

	// FindByEmail returns the live user with the given email, including
	// its password hash for credential verification.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindAll lists all live users.
	FindAll(ctx context.Context) ([]*entity.User, error)

	// FindTargets lists live opted-in non-admin users matching the filter.
	FindTargets(ctx context.Context, filter TargetFilter) ([]*entity.User, error)

	// Replace overwrites all mutable fields of the live user with the
	// given id from the supplied entity.
	Replace(ctx context.Context, user *entity.User) (*entity.User, error)

	// Patch applies the non-nil fields of the patch to the live user.
	Patch(ctx context.Context, id string, patch UserPatch) (*entity.User, error)

	// SoftDelete flags the live user as deleted. A repeated call reports
	// ErrUserNotFound because the record is no longer live.
	SoftDelete(ctx context.Context, id string) error

	// HardDelete physically removes the user regardless of its soft-delete state.
	HardDelete(ctx context.Context, id string) error
}
