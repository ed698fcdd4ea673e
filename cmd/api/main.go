package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-sukem-pos/internal/handler"
	"go-sukem-pos/internal/mail"
	"go-sukem-pos/internal/middleware"
	"go-sukem-pos/internal/model"
	"go-sukem-pos/internal/repository"
	"go-sukem-pos/internal/service"
	"go-sukem-pos/internal/ws"
	"go-sukem-pos/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.AuditLog{},
		&model.Invoice{},
		&model.InvoiceItem{},
		&model.Coupon{},
		&model.Promotion{},
	)

	// 3. Seed default manager account
	seedManager(db)

	// 4. WebSocket hub for stock/sale events
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection (wiring layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	couponRepo := repository.NewCouponRepo(db)
	promotionRepo := repository.NewPromotionRepo(db)

	mailer := mail.NewLogMailer()

	authService := service.NewAuthService(userRepo, mailer)
	productService := service.NewProductService(productRepo, auditRepo, wsHub)
	couponService := service.NewCouponService(couponRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, productRepo, couponService, db, wsHub)
	promotionService := service.NewPromotionService(promotionRepo, productRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	couponHandler := handler.NewCouponHandler(couponService)
	promotionHandler := handler.NewPromotionHandler(promotionService)
	auditHandler := handler.NewAuditHandler(auditRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sukem Store POS v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	api := app.Group("/api")

	// ============ PUBLIC ROUTES ============
	authen := api.Group("/authen")
	authen.Post("/register", authHandler.Register)
	authen.Post("/login", authHandler.Login)
	authen.Post("/forgot-password", authHandler.ForgotPassword)
	authen.Post("/verify-reset-code", authHandler.VerifyResetCode)
	authen.Post("/reset-password", authHandler.ResetPassword)

	// ============ PROTECTED ROUTES ============
	requireAuth := middleware.RequireAuth()
	requireManager := middleware.RequireRole(model.RoleManager)

	authen.Get("/verify-token", requireAuth, authHandler.VerifyToken)
	authen.Get("/users", requireAuth, requireManager, authHandler.GetUsers)
	authen.Put("/users/:id/role", requireAuth, requireManager, authHandler.UpdateUserRole)
	authen.Put("/promote/:id", requireAuth, requireManager, authHandler.PromoteToManager)

	products := api.Group("/products", requireAuth)
	products.Get("/", productHandler.GetProducts)
	products.Post("/", requireManager, productHandler.CreateProduct)
	products.Put("/:id/storage", requireManager, productHandler.ReceiveStock)
	products.Put("/:id", requireManager, productHandler.UpdateProduct)
	products.Delete("/:id", requireManager, productHandler.DeleteProduct)

	promotions := api.Group("/promotions", requireAuth)
	promotions.Get("/", promotionHandler.GetPromotions)
	promotions.Get("/product/:productId", promotionHandler.GetPromotionByProduct)
	promotions.Post("/", requireManager, promotionHandler.CreatePromotion)
	promotions.Put("/:id", requireManager, promotionHandler.UpdatePromotion)
	promotions.Delete("/:id", requireManager, promotionHandler.DeletePromotion)

	coupons := api.Group("/coupons", requireAuth)
	coupons.Get("/", couponHandler.GetCoupons)
	coupons.Post("/apply", couponHandler.ApplyCoupon)
	coupons.Get("/:code", couponHandler.GetCouponByCode)
	coupons.Delete("/:id", requireManager, couponHandler.DeleteCoupon)

	invoices := api.Group("/invoices", requireAuth)
	invoices.Post("/", invoiceHandler.CreateInvoice)
	invoices.Get("/", invoiceHandler.GetInvoices)
	invoices.Get("/:id", invoiceHandler.GetInvoice)
	invoices.Delete("/", requireManager, invoiceHandler.DeleteInvoices)

	audit := api.Group("/audit", requireAuth)
	audit.Get("/", auditHandler.GetAuditLogs)
	audit.Delete("/", requireManager, auditHandler.DeleteAuditLogs)

	// WebSocket route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedManager creates the default manager account if it doesn't exist
func seedManager(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("SEED_MANAGER_EMAIL")
	if email == "" {
		email = "manager@sukem.local"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("SEED_MANAGER_PASSWORD")
	if password == "" {
		password = "manager123"
	}

	manager := &model.User{
		Name:  "Store Manager",
		Email: email,
		Role:  model.RoleManager,
	}
	manager.CreatedBy = "system"
	manager.UpdatedBy = "system"

	if err := manager.SetPassword(password); err != nil {
		log.Printf("Warning: failed to hash manager password: %v", err)
		return
	}

	if err := userRepo.Create(manager); err != nil {
		log.Printf("Warning: failed to create manager user: %v", err)
	} else {
		log.Printf("Manager user created: %s", email)
	}
}
