package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
}

// bookingResponse carries the booking plus an optional non-fatal warning,
// kept out of the error path so clients never mistake it for a failure.
type bookingResponse struct {
	domain.Booking
	Warning string `json:"warning,omitempty"`
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// POST /v1/bookings
func (h *BookingHandler) Create(c *gin.Context) {
	var in struct {
		TimeSlotID string `json:"time_slot_id" binding:"required"`
		Notes      string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	b, warn, err := h.svc.Book(c.Request.Context(), callerID(c), in.TimeSlotID, in.Notes)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, bookingResponse{Booking: *b, Warning: warn})
}

// GET /v1/bookings
func (h *BookingHandler) ListMine(c *gin.Context) {
	out, err := h.svc.ListMine(c.Request.Context(), callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": out})
}

// GET /v1/bookings/:id
func (h *BookingHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	if b.UserID != callerID(c) && !isStaff(c) {
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/cancel
func (h *BookingHandler) Cancel(c *gin.Context) {
	warn, err := h.svc.Cancel(c.Request.Context(), c.Param("id"), callerID(c))
	if err != nil {
		writeErr(c, err)
		return
	}
	out := gin.H{"status": "cancelled"}
	if warn != "" {
		out["warning"] = warn
	}
	c.JSON(http.StatusOK, out)
}

// POST /v1/bookings/:id/confirm (OWNER/ADMIN)
func (h *BookingHandler) Confirm(c *gin.Context) {
	b, err := h.svc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// POST /v1/bookings/:id/complete (OWNER/ADMIN)
func (h *BookingHandler) Complete(c *gin.Context) {
	b, err := h.svc.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func isStaff(c *gin.Context) bool {
	v, _ := c.Get("role")
	role, _ := v.(string)
	return role == domain.RoleOwner || role == domain.RoleAdmin
}
