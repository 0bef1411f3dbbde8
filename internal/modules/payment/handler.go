package payment

import (
	"errors"
	"net/http"
	"strconv"

	"staybook/internal/gateway/chapa"
	"staybook/internal/middleware"
	"staybook/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/payments/verify/:tx_ref", h.Verify)
	public.GET("/payments/success", h.Success)

	protected.POST("/payments/initiate/:booking_id", h.Initiate)
	protected.GET("/payments", middleware.AdminOnly(), h.List)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.ListAll(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown payment status filter")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list payments")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Initiate(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("booking_id"), 10, 64)
	if err != nil || bookingID <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return
	}

	caller := middleware.CallerIdentity(c)
	res, err := h.svc.Initiate(c.Request.Context(), caller.UserID, bookingID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, res)
}

func (h *Handler) Verify(c *gin.Context) {
	txRef := c.Param("tx_ref")
	if txRef == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Missing transaction reference")
		return
	}

	res, err := h.svc.Verify(c.Request.Context(), txRef)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Success is the static acknowledgement page the provider redirects to.
func (h *Handler) Success(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Payment completed. Thank you!"})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrBookingNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	case errors.Is(err, ErrPaymentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment not found")
	case errors.Is(err, ErrGateway):
		var provErr *chapa.ProviderError
		if errors.As(err, &provErr) {
			response.ErrorWithDetails(c, http.StatusBadRequest, "GATEWAY_ERROR", "Payment provider rejected the request", provErr.Payload)
			return
		}
		response.Error(c, http.StatusBadRequest, "GATEWAY_ERROR", "Payment provider unavailable")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to process payment")
	}
}
