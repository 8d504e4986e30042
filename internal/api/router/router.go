package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-be/internal/api/handler"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies, templatesGlob string) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	r.LoadHTMLGlob(templatesGlob)
	r.Static("/static", "web/static")

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "roster-service",
		})
	})

	authHandler := handler.NewAuthHandler(deps)
	rosterHandler := handler.NewRosterHandler(deps)
	bookingHandler := handler.NewBookingHandler(deps)
	lookupHandler := handler.NewLookupHandler(deps)

	// Login page and session endpoints
	r.GET("/", authHandler.LoginPage)
	r.POST("/", authHandler.Login)
	r.Any("/logout/", authHandler.Logout)

	// The roster page itself renders for everyone; every interaction on it
	// goes through the protected routes below.
	r.GET("/roster/", rosterHandler.Roster)

	protected := r.Group("/")
	protected.Use(RequireAuth(deps.Logger, deps.Auth, deps.SessionCookie))
	{
		protected.GET("/roster/booking/:id", rosterHandler.ViewBooking)
		protected.GET("/addBooking/:jobId/:date/", rosterHandler.AddBooking)

		protected.POST("/create/", bookingHandler.Create)
		protected.POST("/edit/:id", bookingHandler.Edit)
		protected.POST("/delete/:id", bookingHandler.Delete)

		protected.GET("/employees/", lookupHandler.Employees)
		protected.GET("/getJobRoles/:jobId", lookupHandler.JobRoles)

		protected.GET("/change-password/", authHandler.ChangePasswordPage)
		protected.POST("/change-password/", authHandler.ChangePassword)
	}

	return r
}
