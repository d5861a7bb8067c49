package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"gymhub/config"
	"gymhub/internal/domain"
	"gymhub/internal/handler"
	"gymhub/internal/middleware"
	"gymhub/internal/repository"
	"gymhub/internal/service"
	"gymhub/pkg/payment"
)

// New wires repositories, services and handlers and returns the engine.
func New(cfg *config.Config, db *gorm.DB) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	otpRepo := repository.NewOTPRepository(db)
	gymRepo := repository.NewGymRepository(db)
	packageRepo := repository.NewPackageRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	walletRepo := repository.NewWalletRepository(db)
	txnRepo := repository.NewTransactionRepository(db)
	withdrawRepo := repository.NewWithdrawRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	ticketRepo := repository.NewTicketRepository(db)

	settlementSvc := service.NewSettlementService(walletRepo, txnRepo)
	discountSvc := service.NewDiscountService(discountRepo)
	purchaseSvc := service.NewPurchaseService(db, packageRepo, purchaseRepo, txnRepo, walletRepo,
		discountSvc, discountRepo, settlementSvc, payment.NewSimulatedVerifier())
	withdrawSvc := service.NewWithdrawService(db, userRepo, walletRepo, withdrawRepo, settlementSvc)
	authSvc := service.NewAuthService(cfg, userRepo, otpRepo)

	authHandler := handler.NewAuthHandler(authSvc)
	meHandler := handler.NewMeHandler(userRepo)
	gymHandler := handler.NewGymHandler(gymRepo, cfg.Search)
	packageHandler := handler.NewPackageHandler(packageRepo, gymRepo)
	discountHandler := handler.NewDiscountHandler(discountRepo, gymRepo)
	purchaseHandler := handler.NewPurchaseHandler(purchaseSvc, purchaseRepo)
	walletHandler := handler.NewWalletHandler(walletRepo, txnRepo)
	withdrawalHandler := handler.NewWithdrawalHandler(withdrawSvc, withdrawRepo)
	favoriteHandler := handler.NewFavoriteHandler(favoriteRepo, gymRepo)
	reviewHandler := handler.NewReviewHandler(reviewRepo, gymRepo, purchaseRepo)
	ticketHandler := handler.NewTicketHandler(ticketRepo)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	limiter := middleware.NewInMemoryRateLimiter(120, time.Minute)
	r.Use(middleware.RateLimit(limiter))

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/otp/request", authHandler.RequestOTP)
		authGroup.POST("/otp/verify", authHandler.VerifyOTP)
		authGroup.POST("/staff/login", authHandler.LoginStaff)
	}

	// Public catalogue.
	api.GET("/gyms", gymHandler.List)
	api.GET("/gyms/nearest", gymHandler.Nearest)
	api.GET("/gyms/:id", gymHandler.Get)
	api.GET("/gyms/:id/packages", packageHandler.ListByGym)
	api.GET("/gyms/:id/reviews", reviewHandler.ListByGym)
	api.GET("/packages/:id", packageHandler.Get)
	api.GET("/reviews/:id/replies", reviewHandler.ListReplies)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(&cfg.JWT))
	{
		authed.GET("/me", meHandler.Get)
		authed.PATCH("/me", meHandler.Update)

		authed.POST("/purchases/pending", purchaseHandler.CreatePending)
		authed.POST("/purchases/final", purchaseHandler.Finalize)
		authed.GET("/purchases", purchaseHandler.ListMine)

		authed.POST("/gyms/:id/favorite", favoriteHandler.Toggle)
		authed.GET("/favorites", favoriteHandler.ListMine)

		authed.POST("/reviews", reviewHandler.Create)
		authed.POST("/reviews/:id/reply", reviewHandler.Reply)
		authed.POST("/reviews/:id/report", reviewHandler.Report)

		authed.POST("/tickets", ticketHandler.Create)
		authed.GET("/tickets", ticketHandler.ListMine)
		authed.GET("/tickets/:id", ticketHandler.Get)
		authed.POST("/tickets/:id/messages", ticketHandler.AddMessage)
	}

	owner := api.Group("")
	owner.Use(middleware.AuthRequired(&cfg.JWT), middleware.RequireRole(domain.RoleOwner, domain.RoleAdmin))
	{
		owner.POST("/gyms", gymHandler.Create)
		owner.GET("/gyms/mine", gymHandler.ListMine)
		owner.PUT("/gyms/:id", gymHandler.Update)
		owner.DELETE("/gyms/:id", gymHandler.Delete)

		owner.POST("/packages", packageHandler.Create)
		owner.PUT("/packages/:id", packageHandler.Update)
		owner.DELETE("/packages/:id", packageHandler.Delete)

		owner.POST("/discounts", discountHandler.Create)
		owner.GET("/discounts", discountHandler.List)
		owner.PUT("/discounts/:id", discountHandler.Update)
		owner.DELETE("/discounts/:id", discountHandler.Delete)

		owner.POST("/purchases/verify", purchaseHandler.Verify)
		owner.GET("/sales", purchaseHandler.ListSales)

		owner.GET("/wallet", walletHandler.GetMine)
		owner.GET("/wallet/transactions", walletHandler.GetMyTransactions)

		owner.POST("/withdrawals", withdrawalHandler.Create)
		owner.GET("/withdrawals", withdrawalHandler.ListMine)
	}

	// Staff decision endpoint kept at the withdrawals path itself.
	api.PATCH("/withdrawals/:id", middleware.AuthRequired(&cfg.JWT), middleware.StaffRequired(), withdrawalHandler.UpdateStatus)

	staff := api.Group("/admin")
	staff.Use(middleware.AuthRequired(&cfg.JWT), middleware.StaffRequired())
	{
		staff.GET("/wallets", walletHandler.ListWallets)
		staff.GET("/wallet", walletHandler.GetAdminWallet)
		staff.GET("/transactions", walletHandler.ListTransactions)

		staff.GET("/withdrawals", withdrawalHandler.ListAll)

		staff.GET("/tickets", ticketHandler.ListAll)
		staff.PATCH("/tickets/:id", ticketHandler.UpdateStatus)
	}

	return r
}
