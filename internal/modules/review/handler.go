package review

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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/reviews", h.List)
	public.GET("/reviews/:id", h.Get)

	protected.POST("/reviews", h.Create)
	protected.PUT("/reviews/:id", h.Update)
	protected.PATCH("/reviews/:id", h.Update)
	protected.DELETE("/reviews/:id", h.Delete)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	caller := middleware.CallerIdentity(c)
	rv, err := h.svc.Create(c.Request.Context(), caller.UserID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
		case ErrListingMissing:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
		case ErrConflict:
			response.Error(c, http.StatusConflict, "CONFLICT", "You've already reviewed this listing")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create review")
		}
		return
	}
	response.Success(c, http.StatusCreated, rv)
}

func (h *Handler) List(c *gin.Context) {
	listingID, _ := strconv.ParseInt(c.Query("listing_id"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.List(c.Request.Context(), listingID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list reviews")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	rv, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	caller := middleware.CallerIdentity(c)
	rv, err := h.svc.Update(c.Request.Context(), caller.UserID, id, req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rv)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := reviewID(c)
	if !ok {
		return
	}

	caller := middleware.CallerIdentity(c)
	if err := h.svc.Delete(c.Request.Context(), caller.UserID, id); err != nil {
		h.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch err {
	case ErrValidation:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Rating must be between 1 and 5")
	case ErrNotFound:
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Review not found")
	case ErrForbidden:
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You can only modify your own review")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to process review")
	}
}

func reviewID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid review ID")
		return 0, false
	}
	return id, true
}
