package booking

import (
	"net/http"
	"strconv"

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

// RegisterRoutes wires booking CRUD. The list endpoint takes optional
// auth so anonymous callers get an empty collection instead of a 401;
// everything else requires a token.
func (h *Handler) RegisterRoutes(optional, protected *gin.RouterGroup) {
	optional.GET("/bookings", h.List)

	protected.POST("/bookings", h.Create)
	protected.GET("/bookings/:id", h.Get)
	protected.PUT("/bookings/:id", h.Update)
	protected.PATCH("/bookings/:id", h.Update)
	protected.DELETE("/bookings/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	caller := middleware.CallerIdentity(c)
	b, err := h.svc.Create(c.Request.Context(), caller.UserID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "End date must be after start date")
		case ErrListingMissing:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create booking")
		}
		return
	}
	response.Success(c, http.StatusCreated, b)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	caller := middleware.CallerIdentity(c)
	items, err := h.svc.List(c.Request.Context(), caller.UserID, caller.IsStaff(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list bookings")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	caller := middleware.CallerIdentity(c)
	b, err := h.svc.Get(c.Request.Context(), caller.UserID, caller.IsStaff(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	caller := middleware.CallerIdentity(c)
	b, err := h.svc.Update(c.Request.Context(), caller.UserID, caller.IsStaff(), id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, b)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	caller := middleware.CallerIdentity(c)
	if err := h.svc.Delete(c.Request.Context(), caller.UserID, caller.IsStaff(), id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "End date must be after start date")
	case ErrInvalidStatus:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown booking status")
	case ErrNotFound, ErrListingMissing:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to process booking")
	}
}

func bookingID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking ID")
		return 0, false
	}
	return id, true
}
