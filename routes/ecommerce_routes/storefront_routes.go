package ecommerce_routes

import (
	store_filter "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/filter_controller"
	store_product "github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/product_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup, products *store_product.Controller, filters *store_filter.Controller) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	// Product routes
	productRoutes := store.Group("/products")
	{
		productRoutes.GET("", products.GetStorefrontProducts)           // List with filters
		productRoutes.GET("/count", products.GetStorefrontProductCount) // Cached count
		productRoutes.GET("/:id", products.GetStorefrontProductByID)    // Single product
	}

	store.GET("/filters/metadata", filters.GetFilterMetadata)
}
