package handler

import (
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ShopHandler holds dependencies for shop related handlers.
type ShopHandler struct {
	uc usecase.ShopUsecase
}

// NewShopHandler is the constructor for ShopHandler, injected by Fx.
func NewShopHandler(uc usecase.ShopUsecase) *ShopHandler {
	return &ShopHandler{uc: uc}
}

type registerShopRequest struct {
	Name     string `json:"name" validate:"required"`
	CIF      string `json:"cif" validate:"required"`
	City     string `json:"city" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"required"`
	Activity string `json:"activity" validate:"required"`
}

type replaceShopRequest struct {
	Name     string `json:"name" validate:"required"`
	CIF      string `json:"cif" validate:"required"`
	City     string `json:"city" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	Phone    string `json:"phone" validate:"required"`
	Activity string `json:"activity" validate:"required"`
}

type patchShopRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	CIF      *string `json:"cif" validate:"omitempty,min=1"`
	City     *string `json:"city" validate:"omitempty,min=1"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=8"`
	Phone    *string `json:"phone"`
	Activity *string `json:"activity"`
}

type authShopResponse struct {
	Token string       `json:"token"`
	Shop  *entity.Shop `json:"shop"`
}

// Register handles the admin-gated shop registration request.
func (h *ShopHandler) Register(c echo.Context) error {
	var req registerShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterShopInput{
		Name:     req.Name,
		CIF:      req.CIF,
		City:     req.City,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Activity: req.Activity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated,
		authShopResponse{Token: output.Token, Shop: output.Shop}, "Shop registered successfully")
}

// Login handles the shop login request.
func (h *ShopHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK,
		authShopResponse{Token: output.Token, Shop: output.Shop}, "Login successful")
}

// List handles the request to list all live shops.
func (h *ShopHandler) List(c echo.Context) error {
	shops, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "")
}

// Get handles the request to fetch a single shop by id.
func (h *ShopHandler) Get(c echo.Context) error {
	shop, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "")
}

// GetByName handles the public lookup of a shop by its exact name.
func (h *ShopHandler) GetByName(c echo.Context) error {
	shop, err := h.uc.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "")
}

// SearchByCity handles the public shop search by city.
func (h *ShopHandler) SearchByCity(c echo.Context) error {
	return h.search(c, &usecase.SearchShopsInput{City: c.Param("city")})
}

// SearchByActivity handles the public shop search by activity.
func (h *ShopHandler) SearchByActivity(c echo.Context) error {
	return h.search(c, &usecase.SearchShopsInput{Activity: c.Param("activity")})
}

// SearchByCityAndActivity handles the public shop search by both filters.
func (h *ShopHandler) SearchByCityAndActivity(c echo.Context) error {
	return h.search(c, &usecase.SearchShopsInput{
		City:     c.Param("city"),
		Activity: c.Param("activity"),
	})
}

// SearchByScore handles the public shop search with optional ordering by
// storefront scoring. Results are only sorted when the score query flag
// is "true"; otherwise storage order is preserved.
func (h *ShopHandler) SearchByScore(c echo.Context) error {
	return h.search(c, &usecase.SearchShopsInput{
		City:        c.QueryParam("city"),
		Activity:    c.QueryParam("activity"),
		SortByScore: c.QueryParam("score") == "true",
	})
}

func (h *ShopHandler) search(c echo.Context, input *usecase.SearchShopsInput) error {
	shops, err := h.uc.Search(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shops, "")
}

// Replace handles the full-overwrite update of a shop's account data.
func (h *ShopHandler) Replace(c echo.Context) error {
	var req replaceShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	shop, err := h.uc.Replace(c.Request().Context(), c.Param("id"), &usecase.ReplaceShopInput{
		Name:     req.Name,
		CIF:      req.CIF,
		City:     req.City,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Activity: req.Activity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "Shop updated successfully")
}

// Patch handles the partial update of a shop's account data.
func (h *ShopHandler) Patch(c echo.Context) error {
	var req patchShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid shop input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	shop, err := h.uc.Patch(c.Request().Context(), c.Param("id"), &usecase.PatchShopInput{
		Name:     req.Name,
		CIF:      req.CIF,
		City:     req.City,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Activity: req.Activity,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, shop, "Shop updated successfully")
}

// Delete handles the removal of a shop: soft by default, physical when
// the permanent query flag is set.
func (h *ShopHandler) Delete(c echo.Context) error {
	permanent := c.QueryParam("permanent") == "true"

	if err := h.uc.Delete(c.Request().Context(), c.Param("id"), permanent); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Shop deleted successfully")
}
