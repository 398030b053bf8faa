package session_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// GetSession godoc
// @Summary Get the current browse session
// @Description Returns the session's filter state, request parameters and visible products as last computed
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=services.SessionView}
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /store/sessions/current [get]
func (h *Controller) GetSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	view, err := h.sessions.Get(id)
	if err != nil {
		respondSessionError(c, err, "Failed to fetch session")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Session fetched", view))
}

// GetSessionProducts godoc
// @Summary Resolve the session's product page
// @Description Fetches the authoritative page for the session's filters and replaces the optimistic list with it
// @Tags sessions
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ApiResponse{data=services.SessionView}
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Failure 500 {object} models.ApiResponse
// @Router /store/sessions/products [get]
func (h *Controller) GetSessionProducts(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	ctx, cancel := config.WithRequestTimeout(c.Request.Context())
	defer cancel()

	view, err := h.sessions.Resolve(ctx, id)
	if err != nil {
		respondSessionError(c, err, "Failed to fetch products")
		return
	}

	meta := &models.Pagination{
		Page:       view.State.Page,
		Limit:      view.State.Limit,
		Total:      view.Total,
		TotalPages: view.TotalPages,
	}
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", view, meta, view.Pages))
}
