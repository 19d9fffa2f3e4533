// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strings"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/domain/entity"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for end-user related handlers.
type UserHandler struct {
	uc usecase.UserUsecase
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

type registerUserRequest struct {
	Name                  string `json:"name" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"required,min=8"`
	Age                   int    `json:"age" validate:"gte=0"`
	City                  string `json:"city" validate:"required"`
	Interests             string `json:"interests"`
	AllowsReceivingOffers bool   `json:"allowsReceivingOffers"`
}

// registerAdminRequest carries the privileged registration payload. No
// validate tags: the bootstrap path trusts its caller wholesale.
type registerAdminRequest struct {
	Name                  string `json:"name"`
	Email                 string `json:"email"`
	Password              string `json:"password"`
	Age                   int    `json:"age"`
	City                  string `json:"city"`
	Interests             string `json:"interests"`
	AllowsReceivingOffers bool   `json:"allowsReceivingOffers"`
	Role                  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type replaceUserRequest struct {
	Name                  string `json:"name" validate:"required"`
	Email                 string `json:"email" validate:"required,email"`
	Password              string `json:"password" validate:"omitempty,min=8"`
	Age                   int    `json:"age" validate:"gte=0"`
	City                  string `json:"city" validate:"required"`
	Interests             string `json:"interests"`
	AllowsReceivingOffers bool   `json:"allowsReceivingOffers"`
	Role                  string `json:"role" validate:"omitempty,oneof=admin user"`
}

type patchUserRequest struct {
	Name                  *string `json:"name" validate:"omitempty,min=1"`
	Email                 *string `json:"email" validate:"omitempty,email"`
	Password              *string `json:"password" validate:"omitempty,min=8"`
	Age                   *int    `json:"age" validate:"omitempty,gte=0"`
	City                  *string `json:"city" validate:"omitempty,min=1"`
	Interests             *string `json:"interests"`
	AllowsReceivingOffers *bool   `json:"allowsReceivingOffers"`
	Role                  *string `json:"role" validate:"omitempty,oneof=admin user"`
}

type authUserResponse struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Register handles the public end-user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Name:                  req.Name,
		Email:                 req.Email,
		Password:              req.Password,
		Age:                   req.Age,
		City:                  req.City,
		Interests:             req.Interests,
		AllowsReceivingOffers: req.AllowsReceivingOffers,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated,
		authUserResponse{Token: output.Token, User: output.User}, "User registered successfully")
}

// RegisterAdmin handles the privileged registration request. The payload
// deliberately skips boundary validation and is passed through as-is.
func (h *UserHandler) RegisterAdmin(c echo.Context) error {
	var req registerAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}

	output, err := h.uc.RegisterAdmin(c.Request().Context(), &usecase.RegisterAdminInput{
		Name:                  req.Name,
		Email:                 req.Email,
		Password:              req.Password,
		Age:                   req.Age,
		City:                  req.City,
		Interests:             req.Interests,
		AllowsReceivingOffers: req.AllowsReceivingOffers,
		Role:                  entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated,
		authUserResponse{Token: output.Token, User: output.User}, "Admin registered successfully")
}

// Login handles the end-user login request.
func (h *UserHandler) Login(c echo.Context) error {
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
		authUserResponse{Token: output.Token, User: output.User}, "Login successful")
}

// List handles the request to list all live users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, users, "")
}

// Get handles the request to fetch a single user by id.
func (h *UserHandler) Get(c echo.Context) error {
	user, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "")
}

// ListTargets handles the marketing-target query available to shop
// sessions: live, opted-in, non-admin users filtered by city and/or
// interests, projected down to contact data.
func (h *UserHandler) ListTargets(c echo.Context) error {
	input := &usecase.ListTargetsInput{City: c.QueryParam("city")}
	if interests := c.QueryParam("interests"); interests != "" {
		input.Interests = strings.Split(interests, ",")
	}

	targets, err := h.uc.ListTargets(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, targets, "")
}

// Replace handles the full-overwrite update of a user.
func (h *UserHandler) Replace(c echo.Context) error {
	var req replaceUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.uc.Replace(c.Request().Context(), c.Param("id"), &usecase.ReplaceUserInput{
		Name:                  req.Name,
		Email:                 req.Email,
		Password:              req.Password,
		Age:                   req.Age,
		City:                  req.City,
		Interests:             req.Interests,
		AllowsReceivingOffers: req.AllowsReceivingOffers,
		Role:                  entity.Role(req.Role),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// Patch handles the partial update of a user.
func (h *UserHandler) Patch(c echo.Context) error {
	var req patchUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid user input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	input := &usecase.PatchUserInput{
		Name:                  req.Name,
		Email:                 req.Email,
		Password:              req.Password,
		Age:                   req.Age,
		City:                  req.City,
		Interests:             req.Interests,
		AllowsReceivingOffers: req.AllowsReceivingOffers,
	}
	if req.Role != nil {
		role := entity.Role(*req.Role)
		input.Role = &role
	}

	user, err := h.uc.Patch(c.Request().Context(), c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "User updated successfully")
}

// Delete handles the removal of a user: soft by default, physical when
// the permanent query flag is set.
func (h *UserHandler) Delete(c echo.Context) error {
	permanent := c.QueryParam("permanent") == "true"

	if err := h.uc.Delete(c.Request().Context(), c.Param("id"), permanent); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}
