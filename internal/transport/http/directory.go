package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/service"
)

type DirectoryHandler struct {
	svc *service.DirectoryService
}

func NewDirectoryHandler(svc *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{svc: svc}
}

// GET /v1/home?search=
func (h *DirectoryHandler) Home(c *gin.Context) {
	page, err := h.svc.Homepage(c.Request.Context(), c.Query("search"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /v1/regions
func (h *DirectoryHandler) Regions(c *gin.Context) {
	out, err := h.svc.Regions(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"regions": out})
}

// GET /v1/categories
func (h *DirectoryHandler) Categories(c *gin.Context) {
	out, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

// GET /v1/organizations?region=&category=
func (h *DirectoryHandler) Organizations(c *gin.Context) {
	out, err := h.svc.Organizations(c.Request.Context(), c.Query("region"), c.Query("category"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"organizations": out})
}

// GET /v1/organizations/:id
func (h *DirectoryHandler) Organization(c *gin.Context) {
	org, err := h.svc.Organization(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, org)
}

// GET /v1/organizations/:id/slots
func (h *DirectoryHandler) OpenSlots(c *gin.Context) {
	out, err := h.svc.OpenSlots(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"time_slots": out})
}

// POST /v1/organizations/:id/slots (OWNER/ADMIN)
func (h *DirectoryHandler) CreateSlot(c *gin.Context) {
	var in struct {
		StartTime   time.Time `json:"start_time" binding:"required"`
		DurationMin int32     `json:"duration_min"`
		MaxBookings int32     `json:"max_bookings"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	slot := domain.TimeSlot{
		OrganizationID: c.Param("id"),
		StartTime:      in.StartTime,
		DurationMin:    in.DurationMin,
		MaxBookings:    in.MaxBookings,
	}
	created, err := h.svc.CreateSlot(c.Request.Context(), &slot)
	if err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}
