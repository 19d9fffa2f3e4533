package usecase

import (
	"context"

	"bazaar/internal/domain/entity"
)

// CreateWebShopInput defines the content of a new storefront. Scoring,
// numRatings and reviews always start at their zero values; callers
// cannot seed derived state.
type CreateWebShopInput struct {
	Title   string
	Summary string
	Texts   []string
	Photos  []string
}

// PatchWebShopInput carries a partial storefront update. The derived
// fields and the review sequence are not patchable.
type PatchWebShopInput struct {
	Title   *string
	Summary *string
	Texts   *[]string
	Photos  *[]string
}

// AddReviewInput defines an end-user rating of a storefront.
type AddReviewInput struct {
	Score int
	Text  string
}

// WebShopUsecase defines the interface for storefront business operations.
// All operations address the storefront through its owning shop's id.
type WebShopUsecase interface {
	Create(ctx context.Context, shopID string, input *CreateWebShopInput) (*entity.WebShop, error)
	Get(ctx context.Context, shopID string) (*entity.WebShop, error)
	Replace(ctx context.Context, shopID string, input *CreateWebShopInput) (*entity.WebShop, error)
	Patch(ctx context.Context, shopID string, input *PatchWebShopInput) (*entity.WebShop, error)
	Delete(ctx context.Context, shopID string) error
	AppendPhoto(ctx context.Context, shopID string, photo string) (*entity.WebShop, error)
	AppendText(ctx context.Context, shopID string, text string) (*entity.WebShop, error)
	ListPhotos(ctx context.Context, shopID string) ([]string, error)
	ListTexts(ctx context.Context, shopID string) ([]string, error)
	ListReviews(ctx context.Context, shopID string) ([]entity.Review, error)
	AddReview(ctx context.Context, shopID string, input *AddReviewInput) (*entity.WebShop, error)
}
