package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/lyng148/thien-nguyet-dong-phu/config"
	"github.com/lyng148/thien-nguyet-dong-phu/controllers"
	_ "github.com/lyng148/thien-nguyet-dong-phu/docs"
	"github.com/lyng148/thien-nguyet-dong-phu/middleware"
	"github.com/lyng148/thien-nguyet-dong-phu/models"
	"github.com/lyng148/thien-nguyet-dong-phu/services/container"
)

// SetupRouter builds the gin engine with middleware, swagger and every
// API route.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.RequestID())

	// CORS for the admin frontend.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	serviceContainer := container.NewServiceContainer(db, cfg)
	middleware.InitAuthMiddleware(cfg, db)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	registerRoutes(r, serviceContainer)
	return r
}

func registerRoutes(r *gin.Engine, container *container.ServiceContainer) {
	api := r.Group("/api")
	registerPublicRoutes(api, container)
	registerAuthenticatedRoutes(api, container)
}

func registerPublicRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	healthController := controllers.NewHealthCheckController()
	api.GET("/ping", healthController.Ping)

	// Login is throttled harder than the rest of the API.
	api.POST("/auth/login",
		middleware.IPRateLimiter(1, 5),
		controllers.HandleJWTFunc(container, "login"))
}

func registerAuthenticatedRoutes(api *gin.RouterGroup, container *container.ServiceContainer) {
	authenticated := api.Group("")
	authenticated.Use(middleware.Authentication())
	authenticated.Use(middleware.CombinedRateLimiter(20, 40))

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	adminOrLeader := middleware.RequireRole(models.RoleAdmin, models.RoleLeader)
	adminOrAccountant := middleware.RequireRole(models.RoleAdmin, models.RoleAccountant)

	households := authenticated.Group("/households")
	{
		households.GET("", controllers.HandleHouseholdFunc(container, "getHouseholds"))
		households.GET("/search", controllers.HandleHouseholdFunc(container, "searchHouseholds"))
		households.GET("/number/:number", controllers.HandleHouseholdFunc(container, "getHouseholdByNumber"))
		households.GET("/:id", controllers.HandleHouseholdFunc(container, "getHousehold"))
		households.POST("", controllers.HandleHouseholdFunc(container, "createHousehold"))
		households.PUT("/:id", adminOnly, controllers.HandleHouseholdFunc(container, "updateHousehold"))
		households.DELETE("/:id", adminOnly, controllers.HandleHouseholdFunc(container, "deleteHousehold"))
		households.PUT("/:id/activate", adminOnly, controllers.HandleHouseholdFunc(container, "activateHousehold"))
		households.GET("/:id/members", controllers.HandleHouseholdFunc(container, "getMembers"))
		households.POST("/:id/members", adminOnly, controllers.HandleHouseholdFunc(container, "addMember"))
		households.DELETE("/:id/members/:residentId", adminOnly, controllers.HandleHouseholdFunc(container, "removeMember"))
		households.GET("/:id/payments", controllers.HandleHouseholdFunc(container, "getPayments"))
		households.GET("/:id/statistics", controllers.HandleHouseholdFunc(container, "getStatistics"))
	}

	residents := authenticated.Group("/persons")
	{
		residents.GET("", controllers.HandleResidentFunc(container, "getResidents"))
		residents.GET("/search", controllers.HandleResidentFunc(container, "searchResidents"))
		residents.GET("/birthdate", controllers.HandleResidentFunc(container, "getByBirthDateRange"))
		residents.GET("/cccd/:cccd", controllers.HandleResidentFunc(container, "getResidentByNationalID"))
		residents.GET("/:id", controllers.HandleResidentFunc(container, "getResident"))
		residents.POST("", controllers.HandleResidentFunc(container, "createResident"))
		residents.PUT("/:id", adminOnly, controllers.HandleResidentFunc(container, "updateResident"))
		residents.DELETE("/:id", adminOnly, controllers.HandleResidentFunc(container, "deleteResident"))
	}

	fees := authenticated.Group("/fees")
	{
		fees.GET("", controllers.HandleFeeFunc(container, "getFees"))
		fees.GET("/search", controllers.HandleFeeFunc(container, "searchFees"))
		fees.GET("/overdue", controllers.HandleFeeFunc(container, "getOverdueFees"))
		fees.GET("/due", controllers.HandleFeeFunc(container, "getByDueDateRange"))
		fees.GET("/:id", controllers.HandleFeeFunc(container, "getFee"))
		fees.POST("", controllers.HandleFeeFunc(container, "createFee"))
		fees.PUT("/:id", adminOnly, controllers.HandleFeeFunc(container, "updateFee"))
		fees.DELETE("/:id", adminOnly, controllers.HandleFeeFunc(container, "deleteFee"))
		fees.PUT("/:id/activate", adminOnly, controllers.HandleFeeFunc(container, "activateFee"))
		fees.PATCH("/:id/status", adminOnly, controllers.HandleFeeFunc(container, "toggleStatus"))
		fees.GET("/:id/statistics", controllers.HandleFeeFunc(container, "getStatistics"))
		fees.GET("/:id/households", controllers.HandleFeeFunc(container, "getPaidHouseholds"))
	}

	payments := authenticated.Group("/payments")
	{
		payments.GET("", controllers.HandlePaymentFunc(container, "getPayments"))
		payments.GET("/unverified", controllers.HandlePaymentFunc(container, "getUnverified"))
		payments.GET("/daterange", controllers.HandlePaymentFunc(container, "getByDateRange"))
		payments.GET("/totals", controllers.HandlePaymentFunc(container, "getTotals"))
		payments.GET("/statistics", controllers.HandlePaymentFunc(container, "getStatistics"))
		payments.GET("/:id", controllers.HandlePaymentFunc(container, "getPayment"))
		payments.POST("", controllers.HandlePaymentFunc(container, "createPayment"))
		payments.PUT("/:id", controllers.HandlePaymentFunc(container, "updatePayment"))
		payments.DELETE("/:id", controllers.HandlePaymentFunc(container, "deletePayment"))
		payments.PUT("/:id/verify", adminOnly, controllers.HandlePaymentFunc(container, "verifyPayment"))
		payments.PUT("/:id/unverify", adminOnly, controllers.HandlePaymentFunc(container, "unverifyPayment"))
	}

	history := authenticated.Group("/household-history")
	{
		history.GET("", controllers.HandleHouseholdHistoryFunc(container, "getEntries"))
		history.GET("/:id", controllers.HandleHouseholdHistoryFunc(container, "getEntry"))
		history.POST("", controllers.HandleHouseholdHistoryFunc(container, "createEntry"))
		history.DELETE("/:id", adminOnly, controllers.HandleHouseholdHistoryFunc(container, "deleteEntry"))
	}

	temporaryResidences := authenticated.Group("/temporary-residence")
	{
		temporaryResidences.GET("", controllers.HandleTemporaryResidenceFunc(container, "getRecords"))
		temporaryResidences.GET("/:id", controllers.HandleTemporaryResidenceFunc(container, "getRecord"))
		temporaryResidences.POST("", controllers.HandleTemporaryResidenceFunc(container, "createRecord"))
		temporaryResidences.PUT("/:id", adminOnly, controllers.HandleTemporaryResidenceFunc(container, "updateRecord"))
		temporaryResidences.DELETE("/:id", adminOnly, controllers.HandleTemporaryResidenceFunc(container, "deleteRecord"))
	}

	utilityServices := authenticated.Group("/utility-services")
	{
		utilityServices.GET("", controllers.HandleUtilityServiceFunc(container, "getServices"))
		utilityServices.GET("/search", controllers.HandleUtilityServiceFunc(container, "searchServices"))
		utilityServices.GET("/unpaid", controllers.HandleUtilityServiceFunc(container, "getUnpaid"))
		utilityServices.GET("/totals", controllers.HandleUtilityServiceFunc(container, "getTotals"))
		utilityServices.GET("/:id", controllers.HandleUtilityServiceFunc(container, "getService"))
		utilityServices.POST("", adminOrLeader, controllers.HandleUtilityServiceFunc(container, "createService"))
		utilityServices.POST("/bulk", adminOrLeader, controllers.HandleUtilityServiceFunc(container, "bulkCreate"))
		utilityServices.PUT("/:id", adminOrLeader, controllers.HandleUtilityServiceFunc(container, "updateService"))
		utilityServices.DELETE("/:id", adminOrLeader, controllers.HandleUtilityServiceFunc(container, "deleteService"))
		utilityServices.PUT("/:id/pay", controllers.HandleUtilityServiceFunc(container, "markPaid"))
		utilityServices.PUT("/:id/unpay", controllers.HandleUtilityServiceFunc(container, "markUnpaid"))
	}

	utilityPayments := authenticated.Group("/utility-payments")
	{
		utilityPayments.GET("", controllers.HandleUtilityPaymentFunc(container, "getPayments"))
		utilityPayments.GET("/totals", controllers.HandleUtilityPaymentFunc(container, "getTotals"))
		utilityPayments.GET("/code/:code", controllers.HandleUtilityPaymentFunc(container, "getByTransactionCode"))
		utilityPayments.GET("/:id", controllers.HandleUtilityPaymentFunc(container, "getPayment"))
		utilityPayments.POST("", adminOrAccountant, controllers.HandleUtilityPaymentFunc(container, "createPayment"))
		utilityPayments.PUT("/:id", adminOrAccountant, controllers.HandleUtilityPaymentFunc(container, "updatePayment"))
		utilityPayments.PUT("/:id/cancel", adminOrAccountant, controllers.HandleUtilityPaymentFunc(container, "cancelPayment"))
		utilityPayments.DELETE("/:id", controllers.HandleUtilityPaymentFunc(container, "deletePayment"))
	}

	vehicles := authenticated.Group("/vehicles")
	{
		vehicles.GET("", controllers.HandleVehicleFunc(container, "getVehicles"))
		vehicles.GET("/search", controllers.HandleVehicleFunc(container, "searchVehicles"))
		vehicles.GET("/statistics", controllers.HandleVehicleFunc(container, "getStatistics"))
		vehicles.GET("/plate/:plate", controllers.HandleVehicleFunc(container, "getByLicensePlate"))
		vehicles.GET("/check-license-plate", adminOrLeader, controllers.HandleVehicleFunc(container, "checkPlate"))
		vehicles.GET("/household/:id/parking-fee", controllers.HandleVehicleFunc(container, "getParkingFee"))
		vehicles.GET("/household/:id/fees", controllers.HandleVehicleFunc(container, "getHouseholdFees"))
		vehicles.GET("/:id", controllers.HandleVehicleFunc(container, "getVehicle"))
		vehicles.POST("", adminOrLeader, controllers.HandleVehicleFunc(container, "createVehicle"))
		vehicles.PUT("/:id", adminOrLeader, controllers.HandleVehicleFunc(container, "updateVehicle"))
		vehicles.DELETE("/:id", adminOrLeader, controllers.HandleVehicleFunc(container, "deleteVehicle"))
	}
}
