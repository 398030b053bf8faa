package session_controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller serves browse sessions. Sessions are anonymous: the visitor
// token names the session and the cart.
type Controller struct {
	sessions     *services.SessionService
	tokens       *services.TokenService
	secureCookie bool
}

func New(sessions *services.SessionService, tokens *services.TokenService, secureCookie bool) *Controller {
	return &Controller{sessions: sessions, tokens: tokens, secureCookie: secureCookie}
}

// SessionCreated is returned when a visitor starts browsing.
type SessionCreated struct {
	Token     string               `json:"token"`
	ExpiresAt time.Time            `json:"expires_at"`
	CartID    string               `json:"cart_id"`
	Session   services.SessionView `json:"session"`
}

// sessionID reads the id VisitorAuth stored.
func sessionID(c *gin.Context) (string, bool) {
	id, ok := middleware.GetSessionIDFromContext(c)
	if !ok || id == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return "", false
	}
	return id, true
}

// respondSessionError maps service errors onto HTTP statuses.
func respondSessionError(c *gin.Context, err error, message string) {
	if errors.Is(err, services.ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Session not found or expired"))
		return
	}
	zap.L().Error(message, zap.Error(err))
	c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, message))
}

// CreateSession godoc
// @Summary Start a browse session
// @Description Creates a browse session on the default filters, loads its first page and issues a visitor token that also identifies the visitor's cart
// @Tags sessions
// @Produce json
// @Success 201 {object} models.ApiResponse{data=session_controller.SessionCreated}
// @Failure 500 {object} models.ApiResponse
// @Router /store/sessions [post]
func (h *Controller) CreateSession(c *gin.Context) {
	view, err := h.sessions.Create(c.Request.Context())
	if err != nil {
		respondSessionError(c, err, "Failed to create session")
		return
	}

	cartID := uuid.Must(uuid.NewV7()).String()
	token, expiresAt, err := h.tokens.Issue(view.ID, cartID)
	if err != nil {
		respondSessionError(c, err, "Failed to issue visitor token")
		return
	}

	maxAge := int(time.Until(expiresAt).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.VisitorCookie, token, maxAge, "/", "", h.secureCookie, true)

	c.JSON(http.StatusCreated, models.SuccessResponse(c, "Session created", SessionCreated{
		Token:     token,
		ExpiresAt: expiresAt,
		CartID:    cartID,
		Session:   view,
	}))
}
