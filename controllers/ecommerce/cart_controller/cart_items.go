package cart_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adds quantity (default 1) of a product; an existing line is incremented, capped at 99
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body models.AddCartItemRequest true "Item"
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /store/cart/items [post]
func (h *Controller) AddItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req models.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	cart, err := h.carts.AddItem(ctx, id, req)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item added to cart", cart))
}

// UpdateItem godoc
// @Summary Change a cart line's quantity
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Param item body models.UpdateCartItemRequest true "Quantity"
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 400 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 409 {object} models.ApiResponse
// @Router /store/cart/items/{productId} [patch]
func (h *Controller) UpdateItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req models.UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	cart, err := h.carts.UpdateItem(c.Request.Context(), id, c.Param("productId"), req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Cart updated", cart))
}

// RemoveItem godoc
// @Summary Remove a product from the cart
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Param productId path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.Cart}
// @Failure 404 {object} models.ApiResponse
// @Router /store/cart/items/{productId} [delete]
func (h *Controller) RemoveItem(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	cart, err := h.carts.RemoveItem(id, c.Param("productId"))
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Item removed from cart", cart))
}
