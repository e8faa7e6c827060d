package api

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	"github.com/iwatajunior/transportes-sub001/internal/domain"
	h "github.com/iwatajunior/transportes-sub001/internal/http/handlers"
	"github.com/iwatajunior/transportes-sub001/internal/http/middleware"
	"github.com/iwatajunior/transportes-sub001/internal/utils"
)

// Options configures NewRouter. Hub may be nil when live events are off.
type Options struct {
	CORSOrigins []string
	Hub         h.WSHandler
}

func NewRouter(hd *h.Handler, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery())
	// Without origins the API is same-origin only.
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.CORS(opts.CORSOrigins))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		utils.Log.WithError(err).Warn("failed to set trusted proxies")
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "rota não encontrada",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	managers := middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin)
	kmStart := middleware.RequireRoles(domain.RoleManager, domain.RoleAdmin, domain.RoleDriver)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", hd.DBCheck)
		api.GET("/system/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", hd.Login)

		secured := api.Group("", middleware.Auth(hd.AuthService()))

		// Trips
		trips := secured.Group("/trips")
		trips.GET("", hd.ListTrips)
		trips.POST("", hd.CreateTrip)
		trips.GET("/:id", hd.GetTrip)
		trips.PUT("/:id/allocate", managers, hd.AllocateTrip)
		trips.PUT("/:id/status", managers, hd.UpdateTripStatus)
		trips.PUT("/:id/km/start", kmStart, hd.StartKM)
		trips.PUT("/:id/km/manage-end", managers, hd.EndKM)
		trips.DELETE("/:id", managers, hd.DeleteTrip)
		trips.GET("/:id/sheet", hd.TripSheet)

		// Satellites
		trips.GET("/:id/caronas", hd.ListCaronas)
		trips.POST("/:id/caronas", hd.CreateCarona)
		secured.PUT("/caronas/:id/status", managers, hd.UpdateCaronaStatus)
		trips.GET("/:id/evaluations", hd.ListEvaluations)
		trips.POST("/:id/evaluations", hd.CreateEvaluation)
		secured.PUT("/evaluations/:id/status", managers, hd.UpdateEvaluationStatus)

		// Routes
		routes := secured.Group("/routes")
		routes.GET("", hd.ListRoutes)
		routes.GET("/:id", hd.GetRoute)
		routes.PUT("/:id/status", managers, hd.UpdateRouteStatus)

		// Allocation lookups
		secured.GET("/vehicles/available", hd.AvailableVehicles)
		secured.GET("/users/drivers", hd.Drivers)
		secured.GET("/users/me", hd.Me)
		secured.POST("/lookups/refresh", managers, hd.RefreshLookups)

		if opts.Hub != nil {
			secured.GET("/ws/trips", h.TripEvents(opts.Hub))
		}
	}

	h.SetRouter(r)
	return r
}
