package middleware

import (
	"strings"

	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/domain/service"
	"bazaar/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	// KeyCurrentUser is the echo context key holding the authenticated end-user.
	KeyCurrentUser = "currentUser"

	// KeyCurrentShop is the echo context key holding the authenticated shop.
	KeyCurrentShop = "currentShop"
)

// AuthMiddleware resolves bearer session tokens into principals. A user
// session and a shop session carry the same token shape; which
// collection the subject is looked up in depends on the variant used.
type AuthMiddleware struct {
	tokenService service.TokenService
	userRepo     repository.UserRepository
	shopRepo     repository.ShopRepository
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	UserRepo     repository.UserRepository
	ShopRepo     repository.ShopRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		tokenService: params.TokenService,
		userRepo:     params.UserRepo,
		shopRepo:     params.ShopRepo,
	}
}

// AuthenticateUser validates the bearer token and resolves its subject
// among live end-users. A valid token whose subject has vanished still
// passes with a nil principal; role checks downstream reject it.
func (m *AuthMiddleware) AuthenticateUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.resolveClaims(c)
		if err != nil {
			return err
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.SubjectID)
		if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to resolve user session")
		}
		c.Set(KeyCurrentUser, user)

		return next(c)
	}
}

// AuthenticateShop validates the bearer token and resolves its subject
// among live shops.
func (m *AuthMiddleware) AuthenticateShop(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, err := m.resolveClaims(c)
		if err != nil {
			return err
		}

		shop, err := m.shopRepo.FindByID(c.Request().Context(), claims.SubjectID)
		if err != nil && !errors.Is(err, repository.ErrShopNotFound) {
			return errors.Wrap(err, "failed to resolve shop session")
		}
		c.Set(KeyCurrentShop, shop)

		return next(c)
	}
}

// RequireRole gates a route on the authenticated end-user's role. It
// must run after AuthenticateUser; a missing principal is rejected, not
// a crash.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domainerrors.ErrForbidden.WrapMessage("no principal attached to session")
			}

			if !entity.Roles(roles).Contains(user.Role) {
				return domainerrors.ErrForbidden.WrapMessage("role not allowed")
			}

			return next(c)
		}
	}
}

func (m *AuthMiddleware) resolveClaims(c echo.Context) (*service.Claims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, domainerrors.ErrNoToken.WrapMessage("authentication required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader || tokenString == "" {
		return nil, domainerrors.ErrInvalidSession.WrapMessage("authorization header is not a bearer token")
	}

	claims, err := m.tokenService.Validate(tokenString)
	if err != nil {
		return nil, domainerrors.ErrInvalidSession.WrapMessage("token validation failed")
	}

	return claims, nil
}

// CurrentUser returns the end-user principal attached by AuthenticateUser,
// or nil when the subject could not be resolved.
func CurrentUser(c echo.Context) *entity.User {
	if user, ok := c.Get(KeyCurrentUser).(*entity.User); ok {
		return user
	}

	return nil
}

// CurrentShop returns the shop principal attached by AuthenticateShop,
// or nil when the subject could not be resolved.
func CurrentShop(c echo.Context) *entity.Shop {
	if shop, ok := c.Get(KeyCurrentShop).(*entity.Shop); ok {
		return shop
	}

	return nil
}
