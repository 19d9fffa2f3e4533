package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bazaar/config"
	"bazaar/internal/domain/entity"
	domainerrors "bazaar/internal/domain/errors"
	"bazaar/internal/domain/repository"
	"bazaar/internal/infra/auth"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubUserRepo serves FindByID from a map; the embedded interface covers
// the methods the middleware never calls.
type stubUserRepo struct {
	repository.UserRepository
	users map[string]*entity.User
}

func (s *stubUserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}

	return nil, repository.ErrUserNotFound
}

type stubShopRepo struct {
	repository.ShopRepository
	shops map[string]*entity.Shop
}

func (s *stubShopRepo) FindByID(_ context.Context, id string) (*entity.Shop, error) {
	if shop, ok := s.shops[id]; ok {
		return shop, nil
	}

	return nil, repository.ErrShopNotFound
}

func newTestTokenConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.JWT = secret

	return cfg
}

func newAuthMiddlewareForTest(t *testing.T, users map[string]*entity.User, shops map[string]*entity.Shop) *AuthMiddleware {
	t.Helper()

	tokenService, err := auth.NewJWTService(newTestTokenConfig("middleware-test-secret"))
	require.NoError(t, err)

	return NewAuthMiddleware(AuthMiddlewareParams{
		TokenService: tokenService,
		UserRepo:     &stubUserRepo{users: users},
		ShopRepo:     &stubShopRepo{shops: shops},
	})
}

func issueToken(t *testing.T, subjectID string) string {
	t.Helper()

	tokenService, err := auth.NewJWTService(newTestTokenConfig("middleware-test-secret"))
	require.NoError(t, err)

	token, err := tokenService.Issue(subjectID)
	require.NoError(t, err)

	return token
}

func invoke(m *AuthMiddleware, chain echo.HandlerFunc, authHeader string) (echo.Context, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	return c, chain(c)
}

func TestAuthMiddleware_AuthenticateUser_ResolvesSubject(t *testing.T) {
	alice := &entity.User{ID: "user-1", Email: "alice@example.com", Role: entity.RoleUser}
	m := newAuthMiddlewareForTest(t, map[string]*entity.User{"user-1": alice}, nil)

	chain := m.AuthenticateUser(func(c echo.Context) error { return nil })
	c, err := invoke(m, chain, "Bearer "+issueToken(t, "user-1"))
	require.NoError(t, err)

	resolved := CurrentUser(c)
	require.NotNil(t, resolved)
	assert.Equal(t, "user-1", resolved.ID, "the session must resolve to the token's subject")
}

func TestAuthMiddleware_AuthenticateUser_MissingHeader(t *testing.T) {
	m := newAuthMiddlewareForTest(t, nil, nil)

	chain := m.AuthenticateUser(func(c echo.Context) error { return nil })
	_, err := invoke(m, chain, "")

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NO_TOKEN", appErr.ErrorCode())
}

func TestAuthMiddleware_AuthenticateUser_MalformedToken(t *testing.T) {
	m := newAuthMiddlewareForTest(t, nil, nil)
	chain := m.AuthenticateUser(func(c echo.Context) error { return nil })

	for _, header := range []string{"Bearer not-a-token", "Basic abc", "Bearer "} {
		_, err := invoke(m, chain, header)

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INVALID_SESSION", appErr.ErrorCode())
	}
}

func TestAuthMiddleware_AuthenticateUser_VanishedSubjectProceedsWithNilPrincipal(t *testing.T) {
	m := newAuthMiddlewareForTest(t, map[string]*entity.User{}, nil)

	called := false
	chain := m.AuthenticateUser(func(c echo.Context) error {
		called = true

		return nil
	})
	c, err := invoke(m, chain, "Bearer "+issueToken(t, "gone"))
	require.NoError(t, err)
	assert.True(t, called, "a valid token with a vanished subject still passes authentication")
	assert.Nil(t, CurrentUser(c))
}

func TestAuthMiddleware_AuthenticateShop_ResolvesSubject(t *testing.T) {
	shop := &entity.Shop{ID: "shop-1", CIF: "B123"}
	m := newAuthMiddlewareForTest(t, nil, map[string]*entity.Shop{"shop-1": shop})

	chain := m.AuthenticateShop(func(c echo.Context) error { return nil })
	c, err := invoke(m, chain, "Bearer "+issueToken(t, "shop-1"))
	require.NoError(t, err)

	resolved := CurrentShop(c)
	require.NotNil(t, resolved)
	assert.Equal(t, "B123", resolved.CIF)
}

func TestAuthMiddleware_RequireRole_RejectsWrongRole(t *testing.T) {
	alice := &entity.User{ID: "user-1", Role: entity.RoleUser}
	m := newAuthMiddlewareForTest(t, map[string]*entity.User{"user-1": alice}, nil)

	chain := m.AuthenticateUser(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error { return nil }))
	_, err := invoke(m, chain, "Bearer "+issueToken(t, "user-1"))

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "FORBIDDEN", appErr.ErrorCode())
}

func TestAuthMiddleware_RequireRole_AllowsMatchingRole(t *testing.T) {
	root := &entity.User{ID: "user-1", Role: entity.RoleAdmin}
	m := newAuthMiddlewareForTest(t, map[string]*entity.User{"user-1": root}, nil)

	called := false
	chain := m.AuthenticateUser(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error {
		called = true

		return nil
	}))
	_, err := invoke(m, chain, "Bearer "+issueToken(t, "user-1"))
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_RequireRole_NilPrincipalIsForbiddenNotPanic(t *testing.T) {
	m := newAuthMiddlewareForTest(t, map[string]*entity.User{}, nil)

	chain := m.AuthenticateUser(m.RequireRole(entity.RoleAdmin)(func(c echo.Context) error { return nil }))

	require.NotPanics(t, func() {
		_, err := invoke(m, chain, "Bearer "+issueToken(t, "gone"))

		var appErr domainerrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "FORBIDDEN", appErr.ErrorCode())
	})
}
