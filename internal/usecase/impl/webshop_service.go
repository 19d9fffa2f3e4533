package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/errors"
	"bazaar/internal/usecase"

	"go.uber.org/fx"
)

// webShopService implements the WebShopUsecase interface.
type webShopService struct {
	shopRepo repository.ShopRepository
	logger   *slog.Logger
}

// WebShopServiceParams holds dependencies for webShopService, injected by Fx.
type WebShopServiceParams struct {
	fx.In

	ShopRepo repository.ShopRepository
	Logger   *slog.Logger
}

// NewWebShopService is the constructor for webShopService.
func NewWebShopService(params WebShopServiceParams) usecase.WebShopUsecase {
	return &webShopService{
		shopRepo: params.ShopRepo,
		logger:   params.Logger,
	}
}

func (srv *webShopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create attaches a storefront to a shop that has none yet. Derived
// state always starts at zero regardless of the input.
func (srv *webShopService) Create(ctx context.Context, shopID string, input *usecase.CreateWebShopInput) (*entity.WebShop, error) {
	srv.log(ctx).Info("Creating storefront", slog.String("shopID", shopID))

	shop, err := srv.shopRepo.CreateWebShop(ctx, shopID, buildWebShop(input))
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to create storefront")
	}

	return shop.WebShop, nil
}

// Get returns the storefront of the given shop.
func (srv *webShopService) Get(ctx context.Context, shopID string) (*entity.WebShop, error) {
	shop, err := srv.shopRepo.FindByID(ctx, shopID)
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to load shop")
	}
	if shop.WebShop == nil {
		return nil, domainerrors.ErrWebShopNotFound.WrapMessage("failed to load storefront")
	}

	return shop.WebShop, nil
}

// Replace overwrites the existing storefront wholesale, resetting the
// review sequence and derived state.
func (srv *webShopService) Replace(ctx context.Context, shopID string, input *usecase.CreateWebShopInput) (*entity.WebShop, error) {
	srv.log(ctx).Info("Replacing storefront", slog.String("shopID", shopID))

	shop, err := srv.shopRepo.ReplaceWebShop(ctx, shopID, buildWebShop(input))
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to replace storefront")
	}

	return shop.WebShop, nil
}

// Patch applies the set fields of the input to the storefront.
func (srv *webShopService) Patch(ctx context.Context, shopID string, input *usecase.PatchWebShopInput) (*entity.WebShop, error) {
	shop, err := srv.shopRepo.PatchWebShop(ctx, shopID, repository.WebShopPatch{
		Title:   input.Title,
		Summary: input.Summary,
		Texts:   input.Texts,
		Photos:  input.Photos,
	})
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to patch storefront")
	}
	if shop.WebShop == nil {
		return nil, domainerrors.ErrWebShopNotFound.WrapMessage("failed to patch storefront")
	}

	return shop.WebShop, nil
}

// Delete clears the embedded storefront; the owning shop persists.
func (srv *webShopService) Delete(ctx context.Context, shopID string) error {
	srv.log(ctx).Info("Deleting storefront", slog.String("shopID", shopID))

	if _, err := srv.shopRepo.ClearWebShop(ctx, shopID); err != nil {
		return srv.mapWebShopError(err, "failed to delete storefront")
	}

	return nil
}

// AppendPhoto adds a photo reference to the storefront's photo sequence.
func (srv *webShopService) AppendPhoto(ctx context.Context, shopID string, photo string) (*entity.WebShop, error) {
	shop, err := srv.shopRepo.PushPhoto(ctx, shopID, photo)
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to append photo")
	}

	return shop.WebShop, nil
}

// AppendText adds a text entry to the storefront's text sequence.
func (srv *webShopService) AppendText(ctx context.Context, shopID string, text string) (*entity.WebShop, error) {
	shop, err := srv.shopRepo.PushText(ctx, shopID, text)
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to append text")
	}

	return shop.WebShop, nil
}

// ListPhotos returns the storefront's photo sequence.
func (srv *webShopService) ListPhotos(ctx context.Context, shopID string) ([]string, error) {
	webShop, err := srv.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return webShop.Photos, nil
}

// ListTexts returns the storefront's text sequence.
func (srv *webShopService) ListTexts(ctx context.Context, shopID string) ([]string, error) {
	webShop, err := srv.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return webShop.Texts, nil
}

// ListReviews returns the storefront's review sequence.
func (srv *webShopService) ListReviews(ctx context.Context, shopID string) ([]entity.Review, error) {
	webShop, err := srv.Get(ctx, shopID)
	if err != nil {
		return nil, err
	}

	return webShop.Reviews, nil
}

// AddReview appends a review and returns the storefront with its derived
// fields recomputed over the full review sequence.
func (srv *webShopService) AddReview(ctx context.Context, shopID string, input *usecase.AddReviewInput) (*entity.WebShop, error) {
	if input.Score < 1 || input.Score > 5 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("score must be between 1 and 5")
	}

	review := &entity.Review{Score: input.Score, Text: input.Text}

	shop, err := srv.shopRepo.AddReview(ctx, shopID, review)
	if err != nil {
		return nil, srv.mapWebShopError(err, "failed to add review")
	}

	srv.log(ctx).Debug("Review added",
		slog.String("shopID", shopID),
		slog.Int("score", input.Score),
		slog.Int("numRatings", shop.WebShop.NumRatings))

	return shop.WebShop, nil
}

func buildWebShop(input *usecase.CreateWebShopInput) *entity.WebShop {
	return &entity.WebShop{
		Title:   input.Title,
		Summary: input.Summary,
		Texts:   input.Texts,
		Photos:  input.Photos,
		Reviews: []entity.Review{},
	}
}

// mapWebShopError converts repository sentinels into domain errors and
// wraps everything else for the generic 500 path.
func (srv *webShopService) mapWebShopError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrShopNotFound):
		return domainerrors.ErrShopNotFound.WrapMessage(message)
	case errors.Is(err, repository.ErrWebShopNotFound):
		return domainerrors.ErrWebShopNotFound.WrapMessage(message)
	case errors.Is(err, repository.ErrWebShopExists):
		return domainerrors.ErrWebShopAlreadyExists.WrapMessage(message)
	default:
		return errors.Wrap(err, message)
	}
}
