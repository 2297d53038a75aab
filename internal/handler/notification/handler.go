package notification

import (
	"github.com/gin-gonic/gin"

	"github.com/lawlink/lawlink-api/internal/handler"
	"github.com/lawlink/lawlink-api/internal/model"
	notificationService "github.com/lawlink/lawlink-api/internal/service/notification"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/httputil"
)

type Handler struct {
	service notificationService.Service
}

func NewHandler(service notificationService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	notifications := rg.Group("/notifications", authRequired)
	{
		notifications.GET("", h.List)
		notifications.PUT("/:id/read", h.MarkRead)
		notifications.PUT("/read-all", h.MarkAllRead)
	}
}

func (h *Handler) List(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var filters model.NotificationFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid filter parameters", err))
		return
	}
	filters.UserID = claims.UserID

	notifs, total, err := h.service.List(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithPagination(c, notifs, filters.Page, filters.Limit, total)
}

func (h *Handler) MarkRead(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	id, err := handler.ParseIDParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), id, claims.UserID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "notification marked as read"})
}

func (h *Handler) MarkAllRead(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	if err := h.service.MarkAllRead(c.Request.Context(), claims.UserID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "all notifications marked as read"})
}
