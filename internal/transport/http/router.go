package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/ASILBEKasilbek/Navbatsiz/internal/domain"
	"github.com/ASILBEKasilbek/Navbatsiz/internal/service"
)

type Deps struct {
	Booking   *service.BookingService
	Directory *service.DirectoryService
	Auth      *service.AuthService
	JWTSecret string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("navbat-api"))

	dh := NewDirectoryHandler(d.Directory)
	bh := NewBookingHandler(d.Booking)
	ah := NewAuthHandler(d.Auth)

	v1 := r.Group("/v1")
	{
		v1.GET("/home", dh.Home)
		v1.GET("/regions", dh.Regions)
		v1.GET("/categories", dh.Categories)
		v1.GET("/organizations", dh.Organizations)
		v1.GET("/organizations/:id", dh.Organization)
		v1.GET("/organizations/:id/slots", dh.OpenSlots)

		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)

		secured := v1.Group("")
		secured.Use(JWTAuth(d.JWTSecret))
		{
			me := secured.Group("/users/me")
			me.GET("/profile", ah.Profile)
			me.PUT("/profile", ah.UpdateProfile)

			secured.POST("/bookings", bh.Create)
			secured.GET("/bookings", bh.ListMine)
			secured.GET("/bookings/:id", bh.Get)
			secured.POST("/bookings/:id/cancel", bh.Cancel)

			staff := secured.Group("")
			staff.Use(RequireRole(domain.RoleOwner, domain.RoleAdmin))
			staff.POST("/organizations/:id/slots", dh.CreateSlot)
			staff.POST("/bookings/:id/confirm", bh.Confirm)
			staff.POST("/bookings/:id/complete", bh.Complete)
		}
	}
	return r
}
