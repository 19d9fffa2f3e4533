package repository

import (
	"context"

	"bazaar/internal/domain/entity"
	"bazaar/internal/errors"
)

var (
	// ErrShopNotFound is returned when no live shop matches the query.
	ErrShopNotFound = errors.New("shop not found")

	// ErrWebShopNotFound is returned when a storefront operation targets a
	// shop that has not created its storefront yet.
	ErrWebShopNotFound = errors.New("webshop not found")

	// ErrWebShopExists is returned when creating a storefront for a shop
	// that already has one.
	ErrWebShopExists = errors.New("webshop already exists")

	// ErrDuplicateCIF is returned when a write would give two live shops
	// the same cif business identifier.
	ErrDuplicateCIF = errors.New("cif already in use")
)

// ShopPatch is the explicit allow-list of patchable shop fields. A set
// Password must already be hashed by the caller. The embedded storefront
// is never patchable through the account aggregate.
type ShopPatch struct {
	Name     *string
	Email    *string
	Password *string
	CIF      *string
	City     *string
	Phone    *string
	Activity *string
}

// IsEmpty reports whether the patch would change nothing.
func (p ShopPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Password == nil && p.CIF == nil &&
		p.City == nil && p.Phone == nil && p.Activity == nil
}

// WebShopPatch is the allow-list of patchable storefront fields. The
// derived scoring/numRatings pair and the review sequence are excluded:
// they only change through AddReview.
type WebShopPatch struct {
	Title   *string
	Summary *string
	Texts   *[]string
	Photos  *[]string
}

// IsEmpty reports whether the patch would change nothing.
func (p WebShopPatch) IsEmpty() bool {
	return p.Title == nil && p.Summary == nil && p.Texts == nil && p.Photos == nil
}

// ShopSearch narrows the public shop search. Zero-value fields match
// everything; SortByScore orders by storefront scoring descending,
// otherwise storage order is preserved.
type ShopSearch struct {
	City        string
	Activity    string
	SortByScore bool
}

// ShopRepository persists shop principals together with their embedded
// storefront aggregate.
type ShopRepository interface {
	// Create inserts a new shop and fills in its generated ID and timestamps.
	Create(ctx context.Context, shop *entity.Shop) error

	// FindByID returns the live shop with the given id.
	FindByID(ctx context.Context, id string) (*entity.Shop, error)

	// FindByEmail returns the live shop with the given email, including
	// its password hash for credential verification.
	FindByEmail(ctx context.Context, email string) (*entity.Shop, error)

	// FindByName returns the first live shop with the given exact name.
	FindByName(ctx context.Context, name string) (*entity.Shop, error)

	// FindAll lists all live shops.
	FindAll(ctx context.Context) ([]*entity.Shop, error)

	// Search lists live shops matching the search filter.
	Search(ctx context.Context, search ShopSearch) ([]*entity.Shop, error)

	// Replace overwrites all mutable account fields of the live shop with
	// the given id. The embedded storefront is left untouched.
	Replace(ctx context.Context, shop *entity.Shop) (*entity.Shop, error)

	// Patch applies the non-nil fields of the patch to the live shop.
	Patch(ctx context.Context, id string, patch ShopPatch) (*entity.Shop, error)

	// SoftDelete flags the live shop as deleted; its embedded storefront
	// disappears with it from all live queries.
	SoftDelete(ctx context.Context, id string) error

	// HardDelete physically removes the shop regardless of its soft-delete state.
	HardDelete(ctx context.Context, id string) error

	// CreateWebShop atomically attaches a storefront to a shop that does
	// not have one yet; ErrWebShopExists otherwise.
	CreateWebShop(ctx context.Context, shopID string, webShop *entity.WebShop) (*entity.Shop, error)

	// ReplaceWebShop overwrites the existing storefront wholesale.
	ReplaceWebShop(ctx context.Context, shopID string, webShop *entity.WebShop) (*entity.Shop, error)

	// PatchWebShop applies the non-nil fields of the patch to the storefront.
	PatchWebShop(ctx context.Context, shopID string, patch WebShopPatch) (*entity.Shop, error)

	// ClearWebShop removes the embedded storefront; the shop itself persists.
	ClearWebShop(ctx context.Context, shopID string) (*entity.Shop, error)

	// PushPhoto appends a photo reference to the storefront's photo sequence.
	PushPhoto(ctx context.Context, shopID string, photo string) (*entity.Shop, error)

	// PushText appends a text entry to the storefront's text sequence.
	PushText(ctx context.Context, shopID string, text string) (*entity.Shop, error)

	// AddReview appends the review and recomputes scoring and numRatings
	// from the full review sequence in one atomic store-side update, so
	// concurrent appends cannot lose each other's reviews or let the
	// derived fields drift.
	AddReview(ctx context.Context, shopID string, review *entity.Review) (*entity.Shop, error)
}
