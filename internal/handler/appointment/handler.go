package appointment

import (
	"github.com/gin-gonic/gin"

	"github.com/lawlink/lawlink-api/internal/handler"
	"github.com/lawlink/lawlink-api/internal/model"
	appointmentService "github.com/lawlink/lawlink-api/internal/service/appointment"
	apperrors "github.com/lawlink/lawlink-api/pkg/errors"
	"github.com/lawlink/lawlink-api/pkg/httputil"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	appointments := rg.Group("/appointments")
	{
		appointments.POST("", h.Book)
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PUT("/:id", h.Update)
		appointments.DELETE("/:id", h.Cancel)
	}
}

func (h *Handler) Book(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	var req model.CreateAppointmentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.Book(c.Request.Context(), claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) List(c *gin.Context) {
	claims, ok := handler.Claims(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthenticated("", nil))
		return
	}

	appointments, err := h.service.List(c.Request.Context(), claims, c.Query("status"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Get(c *gin.Context) {
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

	apt, err := h.service.Get(c.Request.Context(), id, claims)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Update(c *gin.Context) {
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

	var req model.UpdateAppointmentRequest
	if err := handler.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.Update(c.Request.Context(), id, claims, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
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

	apt, err := h.service.Cancel(c.Request.Context(), id, claims)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}
