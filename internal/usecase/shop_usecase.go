package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// RegisterShopInput defines the data required to register a new shop.
// Shops are registered by administrators, never by themselves.
type RegisterShopInput struct {
	Name     string
	CIF      string
	City     string
	Email    string
	Password string
	Phone    string
	Activity string
}

// ReplaceShopInput carries the full mutable account state for a wholesale
// update. A non-empty Password is re-hashed; an empty one keeps the stored
// digest. The embedded storefront is never touched through this path.
type ReplaceShopInput struct {
	Name     string
	CIF      string
	City     string
	Email    string
	Password string
	Phone    string
	Activity string
}

// PatchShopInput carries a partial account update. Nil fields are left untouched.
type PatchShopInput struct {
	Name     *string
	CIF      *string
	City     *string
	Email    *string
	Password *string
	Phone    *string
	Activity *string
}

// SearchShopsInput narrows the public shop search. Zero-value fields
// match everything; SortByScore orders by storefront scoring descending.
type SearchShopsInput struct {
	City        string
	Activity    string
	SortByScore bool
}

// ShopAuthOutput returns the session token together with the scrubbed record.
type ShopAuthOutput struct {
	Token string
	Shop  *entity.Shop
}

// ShopUsecase defines the interface for shop business operations.
type ShopUsecase interface {
	Register(ctx context.Context, input *RegisterShopInput) (*ShopAuthOutput, error)
	Login(ctx context.Context, input *LoginInput) (*ShopAuthOutput, error)
	Get(ctx context.Context, id string) (*entity.Shop, error)
	GetByName(ctx context.Context, name string) (*entity.Shop, error)
	List(ctx context.Context) ([]*entity.Shop, error)
	Search(ctx context.Context, input *SearchShopsInput) ([]*entity.Shop, error)
	Replace(ctx context.Context, id string, input *ReplaceShopInput) (*entity.Shop, error)
	Patch(ctx context.Context, id string, input *PatchShopInput) (*entity.Shop, error)
	Delete(ctx context.Context, id string, permanent bool) error
}
