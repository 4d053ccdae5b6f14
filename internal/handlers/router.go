package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/usermenei/E-ses/internal/domain"
	"github.com/usermenei/E-ses/internal/middlewares"
	a "github.com/usermenei/E-ses/pkg/auth"
)

// SetupRouter wires every route; role checks live here, next to the paths
// they guard.
func SetupRouter(tokens *a.Manager, ah *AuthHandler, sh *SpaceHandler, rh *ReservationHandler) *gin.Engine {
	r := gin.Default()

	authed := middlewares.JWTAuth(tokens)

	auth := r.Group("/auth")
	{
		auth.POST("/register", ah.Register)
		auth.POST("/login", ah.Login)
		auth.GET("/me", authed, ah.Me)
		auth.GET("/logout", authed, ah.Logout)
	}

	admin := middlewares.RequireRole(domain.RoleAdmin)

	spaces := r.Group("/coworkingspaces")
	{
		spaces.GET("", sh.List)
		spaces.POST("", authed, admin, sh.Create)
		spaces.GET("/:id", sh.Get)
		spaces.PUT("/:id", authed, admin, sh.Update)
		spaces.DELETE("/:id", authed, admin, sh.Delete)

		spaces.GET("/:id/reservations", authed, rh.List)
		spaces.POST("/:id/reservations", authed, middlewares.RequireRole(domain.RoleUser, domain.RoleAdmin), rh.Create)
	}

	resv := r.Group("/reservations", authed)
	{
		resv.GET("", rh.List)
		resv.GET("/:id", rh.Get)
		resv.PUT("/:id", rh.Update)
		resv.DELETE("/:id", rh.Delete)
		resv.PUT("/:id/confirm", admin, rh.Confirm)
	}

	return r
}
