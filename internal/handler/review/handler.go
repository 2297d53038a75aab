package review

import (
	"github.com/gin-gonic/gin"

	"github.com/lawlink/lawlink-api/internal/handler"
	"github.com/lawlink/lawlink-api/internal/model"
	reviewService "github.com/lawlink/lawlink-api/internal/service/review"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/httputil"
)

type Handler struct {
	service *reviewService.Service
}

func NewHandler(service *reviewService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	reviews := rg.Group("/reviews")
	{
		reviews.GET("", h.List)
		reviews.POST("", authRequired, h.Create)
	}
}

func (h *Handler) Create(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var req model.CreateReviewRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	review, err := h.service.Create(c.Request.Context(), claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, review)
}

func (h *Handler) List(c *gin.Context) {
	var filters model.ReviewFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid filter parameters", err))
		return
	}

	reviews, total, err := h.service.List(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithPagination(c, reviews, filters.Page, filters.Limit, total)
}
