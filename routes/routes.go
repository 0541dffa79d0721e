package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/2110503-CEDT68/be-project-68-group7/config"
	"github.com/2110503-CEDT68/be-project-68-group7/controllers"
	"github.com/2110503-CEDT68/be-project-68-group7/middlewares"
	"github.com/2110503-CEDT68/be-project-68-group7/models"
	"github.com/2110503-CEDT68/be-project-68-group7/repository"
	"github.com/2110503-CEDT68/be-project-68-group7/services"
)

// SetupRouter wires repositories, the booking workflow and all endpoints.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	users := repository.NewUserRepository(db)
	providers := repository.NewProviderRepository(db)
	cars := repository.NewCarRepository(db)
	bookings := repository.NewBookingRepository(db)
	bookingSvc := services.NewBookingService(cars, bookings)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestLogger())

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register(users, cfg))
		auth.POST("/login", controllers.Login(users, cfg))
		auth.GET("/logout", controllers.Logout())
		auth.GET("/me", middlewares.Protect(), controllers.GetMe(users))
		auth.PUT("/update", middlewares.Protect(), controllers.UpdateDetails(users))
	}

	providerRoutes := api.Group("/providers")
	{
		providerRoutes.GET("", controllers.GetProviders(providers))
		providerRoutes.GET("/:id", controllers.GetProvider(providers))
		providerRoutes.POST("", middlewares.Protect(), middlewares.Authorize(models.RoleAdmin), controllers.CreateProvider(providers))
		providerRoutes.PUT("/:id", middlewares.Protect(), middlewares.Authorize(models.RoleAdmin), controllers.UpdateProvider(providers))
		providerRoutes.DELETE("/:id", middlewares.Protect(), middlewares.Authorize(models.RoleAdmin), controllers.DeleteProvider(providers))
	}

	carRoutes := api.Group("/cars")
	{
		carRoutes.GET("", controllers.GetCars(cars))
		carRoutes.GET("/:id", controllers.GetCar(cars))
		carRoutes.POST("", middlewares.Protect(), middlewares.Authorize(models.RoleAdmin, models.RoleOwner), controllers.CreateCar(cars, providers))
		carRoutes.PUT("/:id", middlewares.Protect(), middlewares.Authorize(models.RoleAdmin, models.RoleOwner), controllers.UpdateCar(cars, providers))
		carRoutes.DELETE("/:id", middlewares.Protect(), middlewares.Authorize(models.RoleAdmin, models.RoleOwner), controllers.DeleteCar(cars))

		// Nested booking routes for a specific car.
		carRoutes.GET("/:id/bookings", middlewares.Protect(), controllers.GetBookings(bookingSvc))
		carRoutes.POST("/:id/bookings", middlewares.Protect(), middlewares.Authorize(models.RoleRenter, models.RoleAdmin), controllers.AddBooking(bookingSvc))
	}

	bookingRoutes := api.Group("/bookings", middlewares.Protect())
	{
		bookingRoutes.GET("", controllers.GetBookings(bookingSvc))
		bookingRoutes.GET("/:id", controllers.GetBooking(bookingSvc))
		bookingRoutes.PUT("/:id", middlewares.Authorize(models.RoleRenter, models.RoleAdmin), controllers.UpdateBooking(bookingSvc))
		bookingRoutes.DELETE("/:id", middlewares.Authorize(models.RoleRenter, models.RoleAdmin), controllers.DeleteBooking(bookingSvc))
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "message": "page not found"})
	})

	return r
}
