package reminder

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"laundryhub/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterManagerRoutes lets a manager fire the overdue reminder run on
// demand instead of waiting for the schedule.
func (h *Handler) RegisterManagerRoutes(manager *gin.RouterGroup) {
	manager.POST("/reminders/overdue/run", h.RunNow)
}

func (h *Handler) RunNow(c *gin.Context) {
	sent, err := h.service.Run(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to run overdue reminders")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reminders_sent": sent})
}
