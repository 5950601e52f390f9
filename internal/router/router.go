// Package router assembles the gin engine: middleware, swagger and the
// /api/v1 routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "brewbooks/internal/docs" // registers the swagger template

	apperrors "brewbooks/internal/errors"
	"brewbooks/internal/handlers"
	"brewbooks/internal/middleware"
	"brewbooks/internal/services"
	"brewbooks/internal/storage"
)

// Services bundles the business services the routes depend on.
type Services struct {
	Users        services.UserServicer
	Accounts     services.AccountServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Transfers    services.TransferServicer
	Attachments  services.AttachmentServicer
}

// NewServices builds every service over one database and file store.
func NewServices(db *gorm.DB, store storage.FileStore, maxAttachmentBytes int64) Services {
	transfers := services.NewTransferService(db, store)
	return Services{
		Users:        services.NewUserService(db),
		Accounts:     services.NewAccountService(db),
		Categories:   services.NewCategoryService(db),
		Transactions: services.NewTransactionService(db, store, transfers),
		Transfers:    transfers,
		Attachments:  services.NewAttachmentService(db, store, maxAttachmentBytes),
	}
}

// New returns the configured engine.
func New(svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users)
	accountHandler := handlers.NewAccountHandler(svc.Accounts)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	transactionHandler := handlers.NewTransactionHandler(svc.Transactions, svc.Transfers)
	attachmentHandler := handlers.NewAttachmentHandler(svc.Attachments)
	reportHandler := handlers.NewReportHandler(svc.Transactions, svc.Users)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors())

	router.NoRoute(func(c *gin.Context) {
		middleware.RespondError(c, apperrors.ErrNotFound)
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)
	protected.POST("/auth/logout", authHandler.Logout)

	accounts := protected.Group("/accounts")
	accounts.GET("", accountHandler.ListAccounts)
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("/:id", categoryHandler.GetCategory)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	transactions := protected.Group("/transactions")
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.POST("/transfer", transactionHandler.CreateTransfer)
	transactions.GET("/:id", transactionHandler.GetTransaction)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)
	transactions.GET("/:id/attachments", attachmentHandler.ListAttachments)
	transactions.POST("/:id/attachments", attachmentHandler.UploadAttachment)

	protected.GET("/transactions-statistics", transactionHandler.GetStatistics)

	attachments := protected.Group("/attachments")
	attachments.GET("/:id", attachmentHandler.DownloadAttachment)
	attachments.DELETE("/:id", attachmentHandler.DeleteAttachment)

	protected.GET("/reports/transactions", reportHandler.TransactionsReport)

	return router
}

func cors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
