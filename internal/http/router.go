package api

import (
	"log"
	stdhttp "net/http"

	"fleetops/internal/auth"
	intconfig "fleetops/internal/config"
	"fleetops/internal/domain"
	h "fleetops/internal/http/handlers"
	"fleetops/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func NewRouter(env intconfig.Env, tokens *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	h.SetTokenService(tokens)
	loginLimiter := middleware.NewIPRateLimiter(env.LoginRatePerMinute)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)
		api.GET("/routes", h.Routes)

		api.POST("/auth/login", loginLimiter.Middleware(), h.Login)

		// everything below requires a valid bearer token
		authed := api.Group("", middleware.Auth(tokens))
		authed.GET("/auth/me", h.Me)
		authed.POST("/users", middleware.RequireRole(domain.RoleAdmin), h.CreateUser)

		vehicles := authed.Group("/vehicles", middleware.RequireAccess(domain.ResourceVehicles))
		vehicles.GET("", h.GetVehicles)
		vehicles.POST("", h.CreateVehicle)
		vehicles.GET("/:number", h.GetVehicle)
		vehicles.DELETE("/:number", h.DeleteVehicle)
		vehicles.GET("/:number/summary", middleware.RequireAccess(domain.ResourceVehicleEfficiency), h.GetVehicleSummary)

		notes := authed.Group("/vehicle-notes", middleware.RequireAccess(domain.ResourceVehicles))
		notes.GET("", h.GetVehicleNotes)
		notes.POST("", h.CreateVehicleNote)
		notes.DELETE("/:id", h.DeleteVehicleNote)

		drivers := authed.Group("/drivers", middleware.RequireAccess(domain.ResourceDrivers))
		drivers.GET("", h.GetDrivers)
		drivers.POST("", h.CreateDriver)
		drivers.GET("/:id", h.GetDriver)
		drivers.PUT("/:id", h.UpdateDriver)

		salaries := authed.Group("/driver-salaries", middleware.RequireAccess(domain.ResourceDrivers))
		salaries.POST("", h.CreateDriverSalary)
		salaries.GET("/driver/:id", h.GetDriverSalaries)
		salaries.DELETE("/:id", h.DeleteDriverSalary)

		driverExpenses := authed.Group("/driver-expenses", middleware.RequireAccess(domain.ResourceDrivers))
		driverExpenses.POST("", h.CreateDriverExpense)
		driverExpenses.GET("/trip/:id", h.GetTripDriverExpenses)
		driverExpenses.GET("/driver/:id", h.GetDriverDriverExpenses)
		driverExpenses.GET("/:id", h.GetDriverExpense)
		driverExpenses.PUT("/:id", h.UpdateDriverExpense)
		driverExpenses.DELETE("/:id", h.DeleteDriverExpense)

		customers := authed.Group("/customers", middleware.RequireAccess(domain.ResourceCustomers))
		customers.GET("", h.GetCustomers)
		customers.POST("", h.CreateCustomer)
		customers.GET("/:id", h.GetCustomer)
		customers.PUT("/:id", h.UpdateCustomer)
		customers.GET("/:id/statement", h.GetCustomerStatement)

		trips := authed.Group("/trips", middleware.RequireAccess(domain.ResourceTrips))
		trips.GET("", h.GetTrips)
		trips.POST("", h.CreateTrip)
		trips.GET("/:id", h.GetTrip)
		trips.PUT("/:id", h.UpdateTrip)
		trips.DELETE("/:id", h.DeleteTrip)
		trips.GET("/:id/balance", h.GetTripBalance)
		trips.GET("/:id/invoice", middleware.RequireAccess(domain.ResourceInvoices), h.GetTripInvoice)
		trips.GET("/:id/invoice.pdf", middleware.RequireAccess(domain.ResourceInvoices), h.GetTripInvoicePDF)
		trips.GET("/:id/payments", middleware.RequireAccess(domain.ResourcePayments), h.GetTripPayments)
		trips.POST("/:id/payments", middleware.RequireAccess(domain.ResourcePayments), h.CreateTripPayment)

		payments := authed.Group("/payments", middleware.RequireAccess(domain.ResourcePayments))
		payments.GET("", h.GetPayments)
		payments.DELETE("/:id", h.DeletePayment)

		fuel := authed.Group("/fuel", middleware.RequireAccess(domain.ResourceFuel))
		fuel.GET("", h.ListFuel)
		fuel.POST("", h.CreateFuel)
		fuel.GET("/:id", h.GetFuel)
		fuel.PUT("/:id", h.UpdateFuel)
		fuel.DELETE("/:id", h.DeleteFuel)

		spares := authed.Group("/spare-parts", middleware.RequireAccess(domain.ResourceSpareParts))
		spares.GET("", h.ListSpareParts)
		spares.POST("", h.CreateSparePart)
		spares.GET("/:id", h.GetSparePart)
		spares.PUT("/:id", h.UpdateSparePart)
		spares.DELETE("/:id", h.DeleteSparePart)

		maintenance := authed.Group("/maintenance", middleware.RequireAccess(domain.ResourceMaintenance))
		maintenance.GET("", h.ListMaintenance)
		maintenance.POST("", h.CreateMaintenance)
		maintenance.GET("/monthly", h.GetMonthlyMaintenance)
		maintenance.GET("/:id", h.GetMaintenance)
		maintenance.PUT("/:id", h.UpdateMaintenance)
		maintenance.DELETE("/:id", h.DeleteMaintenance)

		vendors := authed.Group("/vendors", middleware.RequireAccess(domain.ResourceVendors))
		vendors.GET("", h.GetVendors)
		vendors.POST("", h.CreateVendor)
		vendors.GET("/:id/ledger", h.GetVendorLedger)
		vendors.GET("/:id/payments", h.GetVendorPayments)
		vendors.POST("/:id/payments", h.CreateVendorPayment)
		authed.DELETE("/vendor-payments/:id", middleware.RequireAccess(domain.ResourceVendors), h.DeleteVendorPayment)

		reports := authed.Group("/reports", middleware.RequireAccess(domain.ResourceReports))
		reports.GET("/summary", h.GetReportSummary)
		reports.GET("/summary.xlsx", h.GetReportSummaryXLSX)

		authed.GET("/dashboard", middleware.RequireAccess(domain.ResourceDashboard), h.GetDashboard)
	}

	h.SetRouter(r)
	return r
}
