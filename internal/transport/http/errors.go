package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/repository"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/service"
)

// writeErr maps domain errors to HTTP statuses. Booking conflicts are 409s
// the client can act on; everything unexpected stays a 500.
func writeErr(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, repository.ErrSlotUnavailable),
		errors.Is(err, repository.ErrAlreadyBooked),
		errors.Is(err, repository.ErrAlreadyTerminal),
		errors.Is(err, repository.ErrUserExists):
		status = http.StatusConflict
	case errors.Is(err, service.ErrNotOwner):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidSlot):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
