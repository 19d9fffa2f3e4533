package impl

import (
	"context"
	"log/slog"

	deliverycontext "bazaar/internal/delivery/context"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"
	"bazaar/internal/usecase"

	"go.uber.org/fx"
)

// shopService implements the ShopUsecase interface.
type shopService struct {
	shopRepo     repository.ShopRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// ShopServiceParams holds dependencies for shopService, injected by Fx.
type ShopServiceParams struct {
	fx.In

	ShopRepo     repository.ShopRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewShopService is the constructor for shopService.
func NewShopService(params ShopServiceParams) usecase.ShopUsecase {
	return &shopService{
		shopRepo:     params.ShopRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

func (srv *shopService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new shop account and opens a session for it.
func (srv *shopService) Register(ctx context.Context, input *usecase.RegisterShopInput) (*usecase.ShopAuthOutput, error) {
	srv.log(ctx).Info("Registering shop", slog.String("cif", input.CIF))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during shop registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during shop registration")
	}

	newShop := &entity.Shop{
		Name:         input.Name,
		PasswordHash: hashedPassword,
		CIF:          input.CIF,
		City:         input.City,
		Email:        input.Email,
		Phone:        input.Phone,
		Activity:     input.Activity,
	}

	if err := srv.shopRepo.Create(ctx, newShop); err != nil {
		return nil, srv.mapShopError(err, "failed to create shop")
	}

	token, err := srv.tokenService.Issue(newShop.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	srv.log(ctx).Debug("Shop registered", slog.String("shopID", newShop.ID))

	return &usecase.ShopAuthOutput{Token: token, Shop: newShop.Scrub()}, nil
}

// Login verifies the credentials and opens a session for the shop.
func (srv *shopService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.ShopAuthOutput, error) {
	srv.log(ctx).Debug("Shop login attempt", slog.String("email", input.Email))

	shop, err := srv.shopRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to load shop for login")
	}

	if !srv.hasher.Check(input.Password, shop.PasswordHash) {
		srv.log(ctx).Warn("Shop login failed", slog.String("email", input.Email))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("shop login failed")
	}

	token, err := srv.tokenService.Issue(shop.ID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue session token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue session token")
	}

	return &usecase.ShopAuthOutput{Token: token, Shop: shop.Scrub()}, nil
}

// Get returns the scrubbed shop with the given id.
func (srv *shopService) Get(ctx context.Context, id string) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to load shop")
	}

	return shop.Scrub(), nil
}

// GetByName returns the scrubbed shop with the given exact name.
func (srv *shopService) GetByName(ctx context.Context, name string) (*entity.Shop, error) {
	shop, err := srv.shopRepo.FindByName(ctx, name)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to load shop by name")
	}

	return shop.Scrub(), nil
}

// List returns all live shops, scrubbed.
func (srv *shopService) List(ctx context.Context) ([]*entity.Shop, error) {
	shops, err := srv.shopRepo.FindAll(ctx)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to list shops")
	}

	return scrubShops(shops), nil
}

// Search returns the live shops matching the filter, scrubbed.
func (srv *shopService) Search(ctx context.Context, input *usecase.SearchShopsInput) ([]*entity.Shop, error) {
	shops, err := srv.shopRepo.Search(ctx, repository.ShopSearch{
		City:        input.City,
		Activity:    input.Activity,
		SortByScore: input.SortByScore,
	})
	if err != nil {
		return nil, srv.mapShopError(err, "failed to search shops")
	}

	return scrubShops(shops), nil
}

// Replace overwrites the full mutable account state of the shop. An
// empty password keeps the stored digest.
func (srv *shopService) Replace(ctx context.Context, id string, input *usecase.ReplaceShopInput) (*entity.Shop, error) {
	current, err := srv.shopRepo.FindByID(ctx, id)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to load shop for replace")
	}

	passwordHash := current.PasswordHash
	if input.Password != "" {
		passwordHash, err = srv.hasher.Hash(input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password during replace")
		}
	}

	updated := &entity.Shop{
		ID:           id,
		Name:         input.Name,
		PasswordHash: passwordHash,
		CIF:          input.CIF,
		City:         input.City,
		Email:        input.Email,
		Phone:        input.Phone,
		Activity:     input.Activity,
	}

	result, err := srv.shopRepo.Replace(ctx, updated)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to replace shop")
	}

	srv.log(ctx).Debug("Shop replaced", slog.String("shopID", id))

	return result.Scrub(), nil
}

// Patch applies the set fields of the input to the shop.
func (srv *shopService) Patch(ctx context.Context, id string, input *usecase.PatchShopInput) (*entity.Shop, error) {
	patch := repository.ShopPatch{
		Name:     input.Name,
		Email:    input.Email,
		CIF:      input.CIF,
		City:     input.City,
		Phone:    input.Phone,
		Activity: input.Activity,
	}

	if input.Password != nil {
		hashedPassword, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password during patch")
		}
		patch.Password = &hashedPassword
	}

	result, err := srv.shopRepo.Patch(ctx, id, patch)
	if err != nil {
		return nil, srv.mapShopError(err, "failed to patch shop")
	}

	srv.log(ctx).Debug("Shop patched", slog.String("shopID", id))

	return result.Scrub(), nil
}

// Delete removes the shop: flagged by default, physical when permanent.
// The embedded storefront disappears with it either way.
func (srv *shopService) Delete(ctx context.Context, id string, permanent bool) error {
	var err error
	if permanent {
		err = srv.shopRepo.HardDelete(ctx, id)
	} else {
		err = srv.shopRepo.SoftDelete(ctx, id)
	}
	if err != nil {
		return srv.mapShopError(err, "failed to delete shop")
	}

	srv.log(ctx).Info("Shop deleted", slog.String("shopID", id), slog.Bool("permanent", permanent))

	return nil
}

// mapShopError converts repository sentinels into domain errors and wraps
// everything else for the generic 500 path.
func (srv *shopService) mapShopError(err error, message string) error {
	switch {
	case errors.Is(err, repository.ErrShopNotFound):
		return domainerrors.ErrShopNotFound.WrapMessage(message)
	case errors.Is(err, repository.ErrDuplicateCIF):
		return domainerrors.ErrCIFTaken.WrapMessage(message)
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ErrEmailTaken.WrapMessage(message)
	default:
		return errors.Wrap(err, message)
	}
}

func scrubShops(shops []*entity.Shop) []*entity.Shop {
	for _, shop := range shops {
		shop.Scrub()
	}

	return shops
}
