package order

import (
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

// RegisterRoutes covers what both customers and staff may do. Ownership
// checks run inside the service.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/orders", h.Create)
	rg.GET("/orders", h.List)
	rg.GET("/orders/:id", h.Get)
}

// RegisterStaffRoutes covers order mutation after intake.
func (h *Handler) RegisterStaffRoutes(staff *gin.RouterGroup) {
	staff.GET("/orders/statistics", h.Statistics)
	staff.POST("/orders/:id/items", h.AddItem)
	staff.PUT("/orders/:id/items/:itemID", h.UpdateItem)
	staff.DELETE("/orders/:id/items/:itemID", h.RemoveItem)
	staff.PATCH("/orders/:id/status", h.UpdateStatus)
	staff.PATCH("/orders/:id/assign", h.Assign)
}

func callerCapability(c *gin.Context) domain.Capability {
	return domain.Capability{
		UserID:    c.GetInt64("user_id"),
		Profile:   domain.ProfileKind(c.GetString("profile")),
		ProfileID: c.GetInt64("profile_id"),
		StaffRole: domain.StaffRole(c.GetString("staff_role")),
		IsManager: c.GetBool("is_manager"),
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid "+name)
		return 0, false
	}
	return id, true
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	details, err := h.service.Create(c.Request.Context(), callerCapability(c), req)
	if err != nil {
		h.writeError(c, err, "Failed to create order")
		return
	}
	response.Success(c, http.StatusCreated, details)
}

func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context(), callerCapability(c))
	if err != nil {
		h.writeError(c, err, "Failed to list orders")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	details, err := h.service.Get(c.Request.Context(), id, callerCapability(c))
	if err != nil {
		h.writeError(c, err, "Failed to load order")
		return
	}
	response.Success(c, http.StatusOK, details)
}

func (h *Handler) AddItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.AddItem(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to add item")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	item, err := h.service.UpdateItem(c.Request.Context(), id, itemID, req)
	if err != nil {
		h.writeError(c, err, "Failed to update item")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"item": item})
}

func (h *Handler) RemoveItem(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	itemID, ok := pathID(c, "itemID")
	if !ok {
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		h.writeError(c, err, "Failed to remove item")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	o, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.writeError(c, err, "Failed to update status")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"order": o})
}

func (h *Handler) Assign(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	staff, err := h.service.Assign(c.Request.Context(), id, req, callerCapability(c))
	if err != nil {
		h.writeError(c, err, "Failed to assign staff")
		return
	}
	if staff == nil {
		response.Success(c, http.StatusOK, gin.H{"detail": "Order unassigned successfully", "type": req.Type})
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"detail":     "Order assigned successfully",
		"type":       req.Type,
		"staff_id":   staff.ID,
		"staff_name": staff.Name,
	})
}

func (h *Handler) Statistics(c *gin.Context) {
	stats, err := h.service.Statistics(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to load statistics")
		return
	}
	response.Success(c, http.StatusOK, stats)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Resource not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Access denied")
	case ErrInvalidStatusTransition:
		response.Error(c, http.StatusConflict, "INVALID_TRANSITION", "Order is in a terminal state")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
