package session_controller

import (
	"errors"
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/filters"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// DispatchAction godoc
// @Summary Apply a filter action
// @Description Applies one filter action such as {"type":"TOGGLE_BRAND","brand":"Corso"} and returns the optimistic product list. Call GET /store/sessions/products to resolve it.
// @Tags sessions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param action body object true "Filter action"
// @Success 200 {object} models.ApiResponse{data=services.SessionView}
// @Failure 400 {object} models.ApiResponse
// @Failure 401 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse
// @Router /store/sessions/actions [post]
func (h *Controller) DispatchAction(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Failed to read request body"))
		return
	}

	action, err := filters.DecodeAction(body)
	if errors.Is(err, filters.ErrUnknownAction) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown filter action"))
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid filter action: "+err.Error()))
		return
	}

	view, err := h.sessions.Dispatch(id, action)
	if err != nil {
		respondSessionError(c, err, "Failed to apply filter action")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter action applied", view))
}
