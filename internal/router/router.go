package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ytboost/config"
	"ytboost/internal/handler"
	"ytboost/internal/middleware"
	"ytboost/internal/repository"
	"ytboost/internal/service"
	"ytboost/internal/session"
	"ytboost/internal/ws"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	viewRepo := repository.NewViewRepository(db)
	referralRepo := repository.NewReferralRepository(db)

	feedHub := ws.NewHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo, walletRepo, referralRepo)
	campaignSvc := service.NewCampaignService(campaignRepo, walletRepo, feedHub)
	viewSvc := service.NewViewService(viewRepo, campaignRepo, walletRepo, feedHub)
	sessions := session.NewManager(viewSvc)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	walletHandler := handler.NewWalletHandler(walletRepo)
	campaignHandler := handler.NewCampaignHandler(campaignSvc, walletRepo)
	sessionHandler := handler.NewSessionHandler(sessions, campaignSvc)
	statsHandler := handler.NewStatsHandler(viewSvc)
	referralHandler := handler.NewReferralHandler(referralRepo)
	shopHandler := handler.NewShopHandler()

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/wallet", walletHandler.GetBalance)
			me.GET("/wallet/transactions", walletHandler.GetTransactions)
			me.GET("/campaigns", campaignHandler.ListMine)
			me.GET("/stats", statsHandler.Get)
			me.GET("/referral-code", referralHandler.GetMyCode)
			me.GET("/referrals", referralHandler.ListMine)
		}

		api.GET("/campaigns/available", authMw, campaignHandler.Feed)
		api.POST("/campaigns", authMw, campaignHandler.Create)
		api.DELETE("/campaigns/:id", authMw, campaignHandler.Delete)

		sessionsGroup := api.Group("/sessions")
		sessionsGroup.Use(authMw)
		{
			sessionsGroup.POST("", sessionHandler.Start)
			sessionsGroup.GET("/:id", sessionHandler.Get)
			sessionsGroup.POST("/:id/opened", sessionHandler.MarkOpened)
			sessionsGroup.PATCH("/:id/flags", sessionHandler.SetFlags)
			sessionsGroup.POST("/:id/claim", sessionHandler.Claim)
			sessionsGroup.DELETE("/:id", sessionHandler.Abandon)
		}

		api.GET("/shop/packages", shopHandler.Packages)
	}

	r.GET("/ws/feed", ws.UpgradeFeedWS(&cfg.JWT, feedHub))

	return r
}
