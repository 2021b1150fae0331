package billing

import (
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

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/invoices", h.ListInvoices)
	rg.GET("/invoices/:id", h.GetInvoice)
	rg.GET("/invoices/:id/payments", h.PaymentHistory)
	rg.POST("/payments", h.RecordPayment)
	rg.GET("/payments/statistics", h.PaymentStatistics)
	rg.GET("/payments/:id", h.GetPayment)
	rg.PATCH("/payments/:id", h.UpdatePayment)
	rg.GET("/payments/:id/receipt", h.GetReceiptForPayment)
	rg.GET("/receipts", h.ListReceipts)
	rg.GET("/receipts/:id", h.GetReceipt)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid id")
		return 0, false
	}
	return id, true
}

func (h *Handler) RecordPayment(c *gin.Context) {
	var req RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.RecordPayment(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err, "Failed to record payment")
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) UpdatePayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	result, err := h.service.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		h.writeError(c, err, "Failed to update payment")
		return
	}
	response.Success(c, http.StatusOK, result)
}

func (h *Handler) GetInvoice(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	inv, err := h.service.GetInvoice(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load invoice")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoice": inv})
}

func (h *Handler) ListInvoices(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to list invoices")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoices": invoices})
}

func (h *Handler) PaymentHistory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	payments, err := h.service.PaymentHistory(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load payment history")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": payments})
}

func (h *Handler) GetPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.GetPayment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load payment")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func (h *Handler) GetReceiptForPayment(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	r, err := h.service.GetReceiptForPayment(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Receipt not found")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"receipt": r})
}

func (h *Handler) GetReceipt(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	r, err := h.service.GetReceipt(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, "Failed to load receipt")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"receipt": r})
}

func (h *Handler) ListReceipts(c *gin.Context) {
	receipts, err := h.service.ListReceipts(c.Request.Context())
	if err != nil {
		h.writeError(c, err, "Failed to list receipts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"receipts": receipts})
}

func (h *Handler) PaymentStatistics(c *gin.Context) {
	stats, err := h.service.PaymentStatistics(c.Request.Context())
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
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", fallback)
	}
}
