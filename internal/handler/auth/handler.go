package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lawlink/lawlink-api/internal/handler"
	"github.com/lawlink/lawlink-api/internal/model"
	authService "github.com/lawlink/lawlink-api/internal/service/auth"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/httputil"
)

// CookieName is the session cookie every protected endpoint reads.
const CookieName = "token"

const cookieMaxAge = 24 * 60 * 60

type Handler struct {
	service *authService.Service
}

func NewHandler(service *authService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", authRequired, h.Me)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	httputil.RespondWithCreated(c, resp.User)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.setSessionCookie(c, resp.Token)
	httputil.RespondWithSuccess(c, resp.User)
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	httputil.RespondWithSuccess(c, gin.H{"message": "logged out"})
}

func (h *Handler) Me(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, user)
}

func (h *Handler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, token, cookieMaxAge, "/", "", false, true)
}
