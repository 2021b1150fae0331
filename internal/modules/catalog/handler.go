package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"laundryhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes exposes read-only catalog browsing.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup) {
	v1.GET("/garment-types", h.ListGarmentTypes)
	v1.GET("/garment-types/:id", h.GetGarmentType)
	v1.GET("/service-types", h.ListServiceTypes)
	v1.GET("/service-types/:id", h.GetServiceType)
}

// RegisterManagerRoutes exposes catalog mutation to managers only. The
// caller wires the role middleware onto the group.
func (h *Handler) RegisterManagerRoutes(manager *gin.RouterGroup) {
	manager.POST("/garment-types", h.CreateGarmentType)
	manager.PUT("/garment-types/:id", h.UpdateGarmentType)
	manager.DELETE("/garment-types/:id", h.DeleteGarmentType)
	manager.POST("/service-types", h.CreateServiceType)
	manager.PUT("/service-types/:id", h.UpdateServiceType)
	manager.DELETE("/service-types/:id", h.DeleteServiceType)
}

func (h *Handler) CreateGarmentType(c *gin.Context) {
	var req CreateGarmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	g, err := h.service.CreateGarmentType(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create garment type")
		return
	}
	response.Success(c, http.StatusCreated, g)
}

func (h *Handler) GetGarmentType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	g, err := h.service.GetGarmentType(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load garment type")
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) ListGarmentTypes(c *gin.Context) {
	items, err := h.service.ListGarmentTypes(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list garment types")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateGarmentType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateGarmentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	g, err := h.service.UpdateGarmentType(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update garment type")
		return
	}
	response.Success(c, http.StatusOK, g)
}

func (h *Handler) DeleteGarmentType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteGarmentType(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete garment type")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Garment type deleted"})
}

func (h *Handler) CreateServiceType(c *gin.Context) {
	var req CreateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	t, err := h.service.CreateServiceType(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to create service type")
		return
	}
	response.Success(c, http.StatusCreated, t)
}

func (h *Handler) GetServiceType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	t, err := h.service.GetServiceType(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load service type")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) ListServiceTypes(c *gin.Context) {
	items, err := h.service.ListServiceTypes(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list service types")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) UpdateServiceType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateServiceTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	t, err := h.service.UpdateServiceType(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update service type")
		return
	}
	response.Success(c, http.StatusOK, t)
}

func (h *Handler) DeleteServiceType(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.DeleteServiceType(c.Request.Context(), id); err != nil {
		h.writeError(c, err, "Failed to delete service type")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Service type deleted"})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Catalog entry not found")
	case errors.Is(err, ErrInUse):
		response.Error(c, http.StatusConflict, "IN_USE", "Catalog entry is referenced by existing orders")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}
