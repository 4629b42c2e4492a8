package main

import (
	"context"
	"log"
	"os"
	"time"

	"summit-registration/config"
	"summit-registration/internal/auth"
	"summit-registration/internal/cache"
	"summit-registration/internal/database"
	"summit-registration/internal/gateway"
	"summit-registration/internal/handler"
	"summit-registration/internal/mailer"
	"summit-registration/internal/model"
	"summit-registration/internal/repository"
	"summit-registration/internal/service"
	"summit-registration/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cfg := config.LoadConfig()

	pool, err := database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer pool.Close()

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	defer rdb.Close()

	// Repositories
	regRepo := repository.NewRegistrationRepository(pool)
	payRepo := repository.NewPaymentRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	voucherRepo := repository.NewVoucherRepository(pool)
	pricingRepo := repository.NewPricingRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)

	if err := seedAdminUser(adminRepo); err != nil {
		log.Fatalf("Failed to seed admin user: %v", err)
	}

	// Infrastructure
	priceCache := cache.NewRedisPriceCache(rdb)
	loginAttempts := cache.NewRedisLoginAttemptStore(rdb)
	gatewayClient := gateway.NewClient(cfg.Gateway, cfg.Server)
	mail := mailer.NewSMTPMailer(cfg.SMTP)

	// Services
	pricingService := service.NewPricingService(pricingRepo, priceCache)
	voucherService := service.NewVoucherService(voucherRepo)
	registrationService := service.NewRegistrationService(
		pool, regRepo, payRepo, ticketRepo, voucherRepo,
		voucherService, pricingService, gatewayClient, cfg.Server)
	reconciliationService := service.NewReconciliationService(
		pool, regRepo, payRepo, ticketRepo, mail)
	ticketService := service.NewTicketService(
		pool, ticketRepo, regRepo, payRepo, mail)
	authService := service.NewAuthService(adminRepo, loginAttempts, cfg.Auth)
	adminService := service.NewAdminService(regRepo, payRepo, ticketRepo, voucherRepo)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	adminOnly := auth.RequireRole(cfg.Auth.JWTSecret, model.RoleAdmin)
	staffOrAdmin := auth.RequireRole(cfg.Auth.JWTSecret, model.RoleAdmin, model.RoleStaff)

	handler.NewRegistrationHandler(registrationService).RegisterRoutes(router)
	handler.NewPaymentHandler(reconciliationService, cfg.Server).RegisterRoutes(router, adminOnly)
	handler.NewTicketHandler(ticketService, reconciliationService).RegisterRoutes(router, adminOnly, staffOrAdmin)
	handler.NewVoucherHandler(voucherService).RegisterRoutes(router, adminOnly)
	handler.NewAdminHandler(authService, adminService, registrationService, pricingService, cfg.Auth).
		RegisterRoutes(router, adminOnly)

	logger.WithComponent("server").Info("server starting",
		zap.String("port", cfg.Server.Port),
		zap.String("environment", cfg.Server.Environment))

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}

// seedAdminUser makes sure the account from ADMIN_USERNAME /
// ADMIN_PASSWORD exists before the server starts taking logins.
func seedAdminUser(repo repository.AdminRepository) error {
	username := os.Getenv("ADMIN_USERNAME")
	password := os.Getenv("ADMIN_PASSWORD")
	if username == "" || password == "" {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return repo.EnsureUser(ctx, username, string(hash), model.RoleAdmin)
}
