package ecommerce_routes

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/ecommerce/session_controller"
	"github.com/gin-gonic/gin"
)

// SetupSessionRoutes registers browse session routes. visitorAuth guards
// everything but session creation; limit wraps the write endpoints.
func SetupSessionRoutes(router *gin.RouterGroup, sessions *session_controller.Controller, visitorAuth gin.HandlerFunc, limit ...gin.HandlerFunc) {
	group := router.Group("/store/sessions")

	group.Group("", limit...).POST("", sessions.CreateSession)

	authed := group.Group("", visitorAuth)
	{
		authed.GET("/current", sessions.GetSession)
		authed.GET("/products", sessions.GetSessionProducts)
		authed.Group("", limit...).POST("/actions", sessions.DispatchAction)
	}
}
