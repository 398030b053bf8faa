package ecommerce_routes

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/cart_controller"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes registers the visitor cart routes. All of them need a
// visitor token; limit wraps the write endpoints.
func SetupCartRoutes(router *gin.RouterGroup, carts *cart_controller.Controller, visitorAuth gin.HandlerFunc, limit ...gin.HandlerFunc) {
	cart := router.Group("/store/cart")
	cart.Use(visitorAuth) // All routes require a visitor token
	{
		cart.GET("", carts.GetCart)
		cart.DELETE("", carts.ClearCart)

		writes := cart.Group("")
		writes.Use(limit...)
		writes.POST("/items", carts.AddItem)
		writes.PATCH("/items/:productId", carts.UpdateItem)
		writes.DELETE("/items/:productId", carts.RemoveItem)
		writes.POST("/checkout", carts.Checkout)
	}
}
