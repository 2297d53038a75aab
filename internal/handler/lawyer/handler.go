package lawyer

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/lawlink/lawlink-api/internal/handler"
	"github.com/lawlink/lawlink-api/internal/model"
	lawyerService "github.com/lawlink/lawlink-api/internal/service/lawyer"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/httputil"
)

type Handler struct {
	service *lawyerService.Service
}

func NewHandler(service *lawyerService.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the directory (public, cacheable) and the profile
// management surface (authenticated).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authRequired, cacheHeaders gin.HandlerFunc) {
	lawyers := rg.Group("/lawyers")
	{
		lawyers.GET("", cacheHeaders, h.Search)
		lawyers.GET("/profile", h.GetProfile)
		lawyers.GET("/:id", cacheHeaders, h.GetByID)
		lawyers.GET("/:id/services", h.ListServices)
		lawyers.GET("/:id/availability", h.ListAvailability)

		lawyers.POST("/profile", authRequired, h.CreateProfile)
		lawyers.PUT("/profile", authRequired, h.UpdateProfile)
		lawyers.DELETE("/profile", authRequired, h.DeleteProfile)

		lawyers.POST("/services", authRequired, h.CreateService)
		lawyers.PUT("/services/:id", authRequired, h.UpdateService)
		lawyers.DELETE("/services/:id", authRequired, h.DeleteService)

		lawyers.POST("/availability", authRequired, h.AddAvailability)
		lawyers.DELETE("/availability/:id", authRequired, h.RemoveAvailability)
	}
}

func (h *Handler) Search(c *gin.Context) {
	var filters model.LawyerSearchFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid search parameters", err))
		return
	}

	page, err := h.service.Search(c.Request.Context(), &filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, page)
}

func (h *Handler) GetProfile(c *gin.Context) {
	var id, userID uuid.UUID
	var err error

	if raw := c.Query("user_id"); raw != "" {
		userID, err = uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid user_id", err))
			return
		}
	} else if raw := c.Query("id"); raw != "" {
		id, err = uuid.Parse(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("invalid id", err))
			return
		}
	} else {
		httputil.RespondWithError(c, apperrors.Validation("id or user_id is required", nil))
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id, userID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, err := handler.ParseIDParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	profile, err := h.service.GetProfile(c.Request.Context(), id, uuid.Nil)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) CreateProfile(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var req model.CreateLawyerProfileRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	profile, err := h.service.CreateProfile(c.Request.Context(), claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, profile)
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var req model.UpdateLawyerProfileRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	profile, err := h.service.UpdateProfile(c.Request.Context(), claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, profile)
}

func (h *Handler) DeleteProfile(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	if err := h.service.DeleteProfile(c.Request.Context(), claims); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "profile deleted"})
}

func (h *Handler) CreateService(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var req model.CreateServiceRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	svc, err := h.service.CreateService(c.Request.Context(), claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, svc)
}

func (h *Handler) UpdateService(c *gin.Context) {
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

	var req model.UpdateServiceRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	svc, err := h.service.UpdateService(c.Request.Context(), claims, id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, svc)
}

func (h *Handler) DeleteService(c *gin.Context) {
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

	if err := h.service.DeleteService(c.Request.Context(), claims, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "service removed"})
}

func (h *Handler) ListServices(c *gin.Context) {
	id, err := handler.ParseIDParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	claims, _ := handler.Claims(c)
	services, err := h.service.ListServices(c.Request.Context(), id, claims)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, services)
}

func (h *Handler) AddAvailability(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var req model.CreateAvailabilitySlotRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slot, err := h.service.AddAvailability(c.Request.Context(), claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, slot)
}

func (h *Handler) RemoveAvailability(c *gin.Context) {
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

	if err := h.service.RemoveAvailability(c.Request.Context(), claims, id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"message": "slot removed"})
}

func (h *Handler) ListAvailability(c *gin.Context) {
	id, err := handler.ParseIDParam(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	slots, err := h.service.ListAvailability(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, slots)
}
