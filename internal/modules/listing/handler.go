package listing

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
	public.GET("/listings", h.List)
	public.GET("/listings/:id", h.Get)

	protected.POST("/listings", middleware.RequireRole("host"), h.Create)
	protected.PUT("/listings/:id", h.Update)
	protected.PATCH("/listings/:id", h.Update)
	protected.DELETE("/listings/:id", h.Delete)
}

func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, err := h.svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to list listings")
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	l, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if err == ErrNotFound {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to load listing")
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	id := middleware.CallerIdentity(c)
	l, err := h.svc.Create(c.Request.Context(), id.UserID, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price per night must be positive")
		case ErrForbidden:
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to create listing")
		}
		return
	}
	response.Success(c, http.StatusCreated, l)
}

func (h *Handler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	caller := middleware.CallerIdentity(c)
	l, err := h.svc.Update(c.Request.Context(), caller.UserID, id, req)
	if err != nil {
		switch err {
		case ErrValidation:
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Price per night must be positive")
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this listing")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to update listing")
		}
		return
	}
	response.Success(c, http.StatusOK, l)
}

func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid listing ID")
		return
	}

	caller := middleware.CallerIdentity(c)
	if err := h.svc.Delete(c.Request.Context(), caller.UserID, caller.Role, id); err != nil {
		switch err {
		case ErrNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Listing not found")
		case ErrForbidden:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this listing")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "Failed to delete listing")
		}
		return
	}
	c.Status(http.StatusNoContent)
}
