package routes

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/saldomental/saldo/config"
	"github.com/saldomental/saldo/controllers"
	"github.com/saldomental/saldo/middleware"
	"github.com/saldomental/saldo/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-App-Launcher"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	quizController := controllers.NewQuizController(db)
	checkinController := controllers.NewCheckinController(db)
	goalsController := controllers.NewGoalsController(db)
	dashboardController := controllers.NewDashboardController(db)
	progressController := controllers.NewProgressController(db)
	chatController := controllers.NewChatController()
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/captcha", authController.Captcha)
	authGroup.GET("/oauth/google/login", authController.OAuthRedirect)
	authGroup.GET("/oauth/google/callback", authController.OAuthCallback)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Public stats endpoint
	api.GET("/stats", statsController.GetStats)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	quizGroup := protected.Group("/quiz")
	quizGroup.GET("/state", quizController.State)
	quizGroup.POST("/answer", quizController.Answer)
	quizGroup.POST("/back", quizController.Back)
	quizGroup.POST("/restart", quizController.Restart)
	quizGroup.POST("/advance", quizController.Advance)
	quizGroup.POST("/offer/accept", quizController.AcceptOffer)
	quizGroup.POST("/offer/decline", quizController.DeclineOffer)
	quizGroup.POST("/payment/complete", quizController.CompletePayment)
	quizGroup.POST("/finalize", quizController.Finalize)
	quizGroup.GET("/results", quizController.Results)

	checkinGroup := protected.Group("/checkin")
	checkinGroup.POST("", checkinController.Trigger)
	checkinGroup.GET("/status", checkinController.Status)

	goalsGroup := protected.Group("/goals")
	goalsGroup.GET("", goalsController.List)
	goalsGroup.POST("", goalsController.Create)
	goalsGroup.DELETE("/:id", goalsController.Delete)

	protected.GET("/dashboard", dashboardController.Dashboard)
	protected.PATCH("/mood", dashboardController.UpdateMood)
	protected.POST("/balance/add", dashboardController.AddCustomAmount)
	protected.POST("/balance/reset", dashboardController.ResetBalance)

	protected.GET("/progress", progressController.Progress)

	chatGroup := protected.Group("/chat")
	chatGroup.GET("/greeting", chatController.Greeting)
	chatGroup.POST("/message", chatController.Message)

	return r
}
