package cart_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// Checkout godoc
// @Summary Check out the cart
// @Description Validates the checkout form and returns a priced order summary. Standard shipping is free from 100. The cart is emptied; nothing is charged or stored.
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param checkout body models.CheckoutRequest true "Checkout form"
// @Success 201 {object} models.ApiResponse{data=models.OrderSummary}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Router /store/cart/checkout [post]
func (h *Controller) Checkout(c *gin.Context) {
	id, ok := cartID(c)
	if !ok {
		return
	}

	var req models.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	summary, err := h.carts.Checkout(id, req)
	if err != nil {
		respondCartError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Order placed", summary))
}
