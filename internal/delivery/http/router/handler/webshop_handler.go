package handler

import (
	"net/http"

	"bazaar/internal/delivery/http/response"
	"bazaar/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// WebShopHandler holds dependencies for storefront related handlers.
type WebShopHandler struct {
	uc usecase.WebShopUsecase
}

// NewWebShopHandler is the constructor for WebShopHandler, injected by Fx.
func NewWebShopHandler(uc usecase.WebShopUsecase) *WebShopHandler {
	return &WebShopHandler{uc: uc}
}

type webShopRequest struct {
	Title   string   `json:"title" validate:"required"`
	Summary string   `json:"summary"`
	Texts   []string `json:"texts"`
	Photos  []string `json:"photos" validate:"omitempty,dive,url"`
}

type patchWebShopRequest struct {
	Title   *string   `json:"title" validate:"omitempty,min=1"`
	Summary *string   `json:"summary"`
	Texts   *[]string `json:"texts"`
	Photos  *[]string `json:"photos" validate:"omitempty,dive,url"`
}

type appendPhotoRequest struct {
	Photo string `json:"photo" validate:"required,url"`
}

type appendTextRequest struct {
	Text string `json:"text" validate:"required"`
}

type addReviewRequest struct {
	Score int    `json:"score" validate:"required,min=1,max=5"`
	Text  string `json:"text"`
}

// Create handles attaching a storefront to a shop that has none yet.
func (h *WebShopHandler) Create(c echo.Context) error {
	var req webShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid storefront input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webShop, err := h.uc.Create(c.Request().Context(), c.Param("id"), &usecase.CreateWebShopInput{
		Title:   req.Title,
		Summary: req.Summary,
		Texts:   req.Texts,
		Photos:  req.Photos,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, webShop, "Storefront created successfully")
}

// Get handles fetching the storefront of a shop.
func (h *WebShopHandler) Get(c echo.Context) error {
	webShop, err := h.uc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webShop, "")
}

// Replace handles the wholesale overwrite of an existing storefront.
func (h *WebShopHandler) Replace(c echo.Context) error {
	var req webShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid storefront input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webShop, err := h.uc.Replace(c.Request().Context(), c.Param("id"), &usecase.CreateWebShopInput{
		Title:   req.Title,
		Summary: req.Summary,
		Texts:   req.Texts,
		Photos:  req.Photos,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webShop, "Storefront updated successfully")
}

// Patch handles the partial update of a storefront.
func (h *WebShopHandler) Patch(c echo.Context) error {
	var req patchWebShopRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid storefront input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webShop, err := h.uc.Patch(c.Request().Context(), c.Param("id"), &usecase.PatchWebShopInput{
		Title:   req.Title,
		Summary: req.Summary,
		Texts:   req.Texts,
		Photos:  req.Photos,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webShop, "Storefront updated successfully")
}

// Delete handles clearing the storefront; the owning shop persists.
func (h *WebShopHandler) Delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Storefront deleted successfully")
}

// AppendPhoto handles appending a photo reference to the storefront.
func (h *WebShopHandler) AppendPhoto(c echo.Context) error {
	var req appendPhotoRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid photo input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webShop, err := h.uc.AppendPhoto(c.Request().Context(), c.Param("id"), req.Photo)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webShop, "Photo added successfully")
}

// AppendText handles appending a text entry to the storefront.
func (h *WebShopHandler) AppendText(c echo.Context) error {
	var req appendTextRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid text input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webShop, err := h.uc.AppendText(c.Request().Context(), c.Param("id"), req.Text)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, webShop, "Text added successfully")
}

// ListPhotos handles fetching the storefront's photo sequence.
func (h *WebShopHandler) ListPhotos(c echo.Context) error {
	photos, err := h.uc.ListPhotos(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, photos, "")
}

// ListTexts handles fetching the storefront's text sequence.
func (h *WebShopHandler) ListTexts(c echo.Context) error {
	texts, err := h.uc.ListTexts(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, texts, "")
}

// ListReviews handles fetching the storefront's review sequence.
func (h *WebShopHandler) ListReviews(c echo.Context) error {
	reviews, err := h.uc.ListReviews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, reviews, "")
}

// AddReview handles an end-user posting a rating on a storefront. The
// derived scoring and rating count come back already recomputed.
func (h *WebShopHandler) AddReview(c echo.Context) error {
	var req addReviewRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid review input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	webShop, err := h.uc.AddReview(c.Request().Context(), c.Param("id"), &usecase.AddReviewInput{
		Score: req.Score,
		Text:  req.Text,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, webShop, "Review added successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
