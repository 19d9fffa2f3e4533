// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new end-user.
type RegisterUserInput struct {
	Name                  string
	Email                 string
	Password              string
	Age                   int
	City                  string
	Interests             string
	AllowsReceivingOffers bool
}

// RegisterAdminInput defines the data taken by the privileged
// registration path. The payload is trusted wholesale: profile fields
// pass through unvalidated and Role defaults to admin when unset.
type RegisterAdminInput struct {
	Name                  string
	Email                 string
	Password              string
	Age                   int
	City                  string
	Interests             string
	AllowsReceivingOffers bool
	Role                  entity.Role
}

// LoginInput defines the data required for a principal to log in.
type LoginInput struct {
	Email    string
	Password string
}

// ReplaceUserInput carries the full mutable state for a wholesale update.
// A non-empty Password is re-hashed; an empty one keeps the stored digest.
type ReplaceUserInput struct {
	Name                  string
	Email                 string
	Password              string
	Age                   int
	City                  string
	Interests             string
	AllowsReceivingOffers bool
	Role                  entity.Role
}

// PatchUserInput carries a partial update. Nil fields are left untouched.
type PatchUserInput struct {
	Name                  *string
	Email                 *string
	Password              *string
	Age                   *int
	City                  *string
	Interests             *string
	AllowsReceivingOffers *bool
	Role                  *entity.Role
}

// ListTargetsInput narrows the marketing-target query. At least one of
// City or Interests must be set.
type ListTargetsInput struct {
	City      string
	Interests []string
}

// --- Output DTOs ---

// UserAuthOutput returns the session token together with the scrubbed record.
type UserAuthOutput struct {
	Token string
	User  *entity.User
}

// MarketingTarget is the reduced projection handed to shops: contact
// data only, never the full profile.
type MarketingTarget struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserUsecase defines the interface for end-user business operations.
// This is the contract that the delivery layer depends on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*UserAuthOutput, error)
	RegisterAdmin(ctx context.Context, input *RegisterAdminInput) (*UserAuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*UserAuthOutput, error)
	Get(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	ListTargets(ctx context.Context, input *ListTargetsInput) ([]*MarketingTarget, error)
	Replace(ctx context.Context, id string, input *ReplaceUserInput) (*entity.User, error)
	Patch(ctx context.Context, id string, input *PatchUserInput) (*entity.User, error)
	Delete(ctx context.Context, id string, permanent bool) error
}
