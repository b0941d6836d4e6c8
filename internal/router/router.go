package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sabimarket/sabimarket-backend/config"
	"github.com/sabimarket/sabimarket-backend/internal/app/controller"
	"github.com/sabimarket/sabimarket-backend/internal/app/model"
	"github.com/sabimarket/sabimarket-backend/internal/middleware"
)

type Router struct {
	authController      *controller.AuthController
	levyController      *controller.LevyController
	dashboardController *controller.DashboardController
	marketController    *controller.MarketController
	traderController    *controller.TraderController
	goodBoyController   *controller.GoodBoyController
	staffController     *controller.StaffController
	advertController    *controller.AdvertisementController
	subController       *controller.SubscriptionController
	feedbackController  *controller.FeedbackController
	uploadController    *controller.UploadController
	authMiddleware      *middleware.AuthMiddleware
	config              *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	levyController *controller.LevyController,
	dashboardController *controller.DashboardController,
	marketController *controller.MarketController,
	traderController *controller.TraderController,
	goodBoyController *controller.GoodBoyController,
	staffController *controller.StaffController,
	advertController *controller.AdvertisementController,
	subController *controller.SubscriptionController,
	feedbackController *controller.FeedbackController,
	uploadController *controller.UploadController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:      authController,
		levyController:      levyController,
		dashboardController: dashboardController,
		marketController:    marketController,
		traderController:    traderController,
		goodBoyController:   goodBoyController,
		staffController:     staffController,
		advertController:    advertController,
		subController:       subController,
		feedbackController:  feedbackController,
		uploadController:    uploadController,
		authMiddleware:      authMiddleware,
		config:              cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "SabiMarket API is running",
		})
	})

	authn := r.authMiddleware.Authenticate()
	adminOnly := r.authMiddleware.RequireRole(model.RoleAdmin)
	chairmanOrAdmin := r.authMiddleware.RequireRole(model.RoleChairman, model.RoleAdmin)
	caretakerUp := r.authMiddleware.RequireRole(model.RoleCaretaker, model.RoleChairman, model.RoleAdmin)
	collectorRoles := r.authMiddleware.RequireRole(model.RoleGoodBoy, model.RoleCaretaker, model.RoleAdmin)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/refresh", r.authController.RefreshToken)
			auth.POST("/logout", r.authController.Logout)
			auth.GET("/me", authn, r.authController.GetMe)
		}

		levies := v1.Group("/levies", authn)
		{
			levies.POST("", collectorRoles, r.levyController.RecordPayment)
			levies.POST("/qr", collectorRoles, r.levyController.RecordPaymentByQRCode)
			levies.POST("/online", r.levyController.InitializeOnlinePayment)
			levies.GET("/online/confirm/:reference", r.levyController.ConfirmOnlinePayment)
			levies.GET("", r.levyController.GetPayments)
			levies.GET("/:id", r.levyController.GetPayment)
		}

		markets := v1.Group("/markets")
		{
			markets.GET("", r.marketController.GetMarkets)
			markets.GET("/:id", r.marketController.GetMarket)
			markets.GET("/:id/feedback", r.feedbackController.GetMarketFeedback)

			markets.POST("", authn, adminOnly, r.marketController.CreateMarket)
			markets.PUT("/:id", authn, adminOnly, r.marketController.UpdateMarket)
			markets.DELETE("/:id", authn, adminOnly, r.marketController.DeactivateMarket)
			markets.POST("/:id/sections", authn, adminOnly, r.marketController.CreateSection)

			markets.GET("/:id/dashboard", authn, chairmanOrAdmin, r.dashboardController.GetMarketDashboard)
			markets.GET("/:id/compliance", authn, caretakerUp, r.dashboardController.GetMarketCompliance)
			markets.POST("/:id/snapshot/refresh", authn, chairmanOrAdmin, r.dashboardController.RefreshMarketSnapshot)
			markets.GET("/:id/reports/levies", authn, chairmanOrAdmin, r.dashboardController.ExportLevyReport)
		}

		v1.GET("/dashboard/chairman", authn, r.authMiddleware.RequireRole(model.RoleChairman), r.dashboardController.GetChairmanDashboard)

		traders := v1.Group("/traders", authn)
		{
			traders.POST("", caretakerUp, r.traderController.RegisterTrader)
			traders.GET("", r.traderController.GetTraders)
			traders.GET("/:id", r.traderController.GetTrader)
			traders.PUT("/:id", caretakerUp, r.traderController.UpdateTrader)
			traders.DELETE("/:id", caretakerUp, r.traderController.DeactivateTrader)
		}

		goodboys := v1.Group("/goodboys", authn)
		{
			goodboys.POST("", caretakerUp, r.goodBoyController.RegisterGoodBoy)
			goodboys.GET("", r.goodBoyController.GetGoodBoys)
			goodboys.GET("/:id", r.goodBoyController.GetGoodBoy)
			goodboys.POST("/:id/lock", caretakerUp, r.goodBoyController.LockGoodBoy)
			goodboys.POST("/:id/unlock", caretakerUp, r.goodBoyController.UnlockGoodBoy)
			goodboys.DELETE("/:id", caretakerUp, r.goodBoyController.DeactivateGoodBoy)
		}

		caretakers := v1.Group("/caretakers", authn)
		{
			caretakers.POST("", chairmanOrAdmin, r.staffController.RegisterCaretaker)
			caretakers.GET("", r.staffController.GetCaretakers)
			caretakers.GET("/:id", r.staffController.GetCaretaker)
			caretakers.GET("/:id/compliant-count", caretakerUp, r.dashboardController.GetCaretakerCompliantCount)
		}

		chairmen := v1.Group("/chairmen", authn)
		{
			chairmen.POST("", adminOnly, r.staffController.RegisterChairman)
			chairmen.GET("/:id", r.staffController.GetChairman)
		}

		adverts := v1.Group("/adverts")
		{
			adverts.GET("", r.advertController.GetAdverts)
			adverts.GET("/:id", r.advertController.GetAdvert)
			adverts.POST("", authn, r.authMiddleware.RequireRole(model.RoleVendor, model.RoleAdmin), r.advertController.CreateAdvert)
			adverts.POST("/:id/approve", authn, adminOnly, r.advertController.ApproveAdvert)
			adverts.POST("/:id/reject", authn, adminOnly, r.advertController.RejectAdvert)
		}

		subscriptions := v1.Group("/subscriptions", authn)
		{
			subscriptions.POST("", r.subController.InitializeSubscription)
			subscriptions.GET("", r.subController.GetSubscriptions)
			subscriptions.GET("/confirm/:reference", r.subController.ConfirmSubscription)
			subscriptions.DELETE("/:id", r.subController.CancelSubscription)
		}

		feedback := v1.Group("/feedback")
		{
			feedback.POST("", authn, r.feedbackController.SubmitFeedback)
			feedback.DELETE("/:id", authn, adminOnly, r.feedbackController.RemoveFeedback)
		}

		uploads := v1.Group("/uploads", authn)
		{
			uploads.POST("/presigned-url", r.uploadController.GeneratePresignedURL)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
