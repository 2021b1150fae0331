package feedback

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundryhub/internal/domain"
	"laundryhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/feedback", h.Create)
	rg.GET("/orders/:id/feedback", h.ListByOrder)
}

func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	staff.GET("/feedback", h.List)
	staff.GET("/feedback/statistics", h.Statistics)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	caller := domain.Capability{
		UserID:    c.GetInt64("user_id"),
		Profile:   domain.ProfileKind(c.GetString("profile")),
		ProfileID: c.GetInt64("profile_id"),
		StaffRole: domain.StaffRole(c.GetString("staff_role")),
		IsManager: c.GetBool("is_manager"),
	}

	f, err := h.service.Create(c.Request.Context(), caller, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrValidation):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, ErrForbidden):
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only review your own orders")
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Order not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to submit feedback")
		}
		return
	}

	response.Success(c, http.StatusCreated, f)
}

func (h *Handler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list feedback")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ListByOrder(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || orderID <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid order id")
		return
	}
	items, err := h.service.ListByOrder(c.Request.Context(), orderID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list feedback")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load feedback statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}
