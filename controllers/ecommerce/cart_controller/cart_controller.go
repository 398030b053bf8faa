package cart_controller

import (
	"errors"
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Controller serves the visitor's cart. The cart id comes from the visitor
// token.
type Controller struct {
	carts *services.CartService
}

func New(carts *services.CartService) *Controller {
	return &Controller{carts: carts}
}

func cartID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetCartIDFromContext(c)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return "", false
	}
	return id, true
}

// bindJSON binds and validates a request body, writing a 400 with per-field
// messages on failure.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}
	if fields := models.FieldErrorsFrom(err); fields != nil {
		c.JSON(http.StatusBadRequest, models.ValidationErrorResponse(c, "Validation failed", fields))
		return false
	}
	c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
	return false
}

func respondCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
	case errors.Is(err, services.ErrCartItemNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Item not in cart"))
	case errors.Is(err, services.ErrOutOfStock):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Product is out of stock"))
	case errors.Is(err, services.ErrNotEnoughStock):
		c.JSON(http.StatusConflict, models.ErrorResponse(c, "Not enough stock for the requested quantity"))
	case errors.Is(err, services.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Cart is empty"))
	default:
		zap.L().Error("cart operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update cart"))
	}
}

// GetCart godoc
// @Summary Get the visitor's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 401 {object} models.ApiResponse
// @Router /store/cart [get]
func (h *Controller) GetCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart fetched", h.carts.Get(id)))
}

// ClearCart godoc
// @Summary Empty the visitor's cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 401 {object} models.ApiResponse
// @Router /store/cart [delete]
func (h *Controller) ClearCart(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart cleared", h.carts.Clear(id)))
}
