package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-wms/internal/handler"
	"go-warehouse-wms/internal/middleware"
	"go-warehouse-wms/internal/model"
	"go-warehouse-wms/internal/repository"
	"go-warehouse-wms/internal/service"
	"go-warehouse-wms/internal/ws"
	"go-warehouse-wms/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	if err := db.AutoMigrate(
		&model.Product{}, &model.Unit{}, &model.StockEntry{}, &model.Transaction{},
		&model.User{}, &model.Privilege{}, &model.Role{},
	); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}
	if err := repository.MigrateSequences(db); err != nil {
		log.Fatal("Failed to create sequences table: ", err)
	}

	// 3. Seed default privileges, roles, and admin user
	seedRolesAndAdmin(db)

	// 4. WebSocket hub for live stock updates
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency injection
	productRepo := repository.NewProductRepo(db)
	unitRepo := repository.NewUnitRepo(db)
	stockRepo := repository.NewStockRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	seqRepo := repository.NewSequenceRepo(db)
	txRunner := repository.GormTxRunner(db)

	catalogService := service.NewCatalogService(productRepo, unitRepo, stockRepo, seqRepo, txRunner, wsHub)
	unitService := service.NewUnitService(unitRepo, productRepo, stockRepo, userRepo, seqRepo, txRunner)
	stockService := service.NewStockService(stockRepo, txRepo, wsHub)
	reportService := service.NewReportService(unitRepo, stockRepo, txRepo, userRepo)
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo, unitRepo, roleRepo)

	catalogHandler := handler.NewCatalogHandler(catalogService)
	unitHandler := handler.NewUnitHandler(unitService, reportService)
	stockHandler := handler.NewStockHandler(stockService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse WMS v1.0",
	})

	app.Use(logger.New())
	app.Use(recover.New())
	app.Use(cors.New())

	// 7. Routes
	api := app.Group("/api/v1")

	// Public
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/validate-token", authHandler.ValidateToken)

	// Authenticated
	protected := api.Group("", middleware.RequireAuth(userRepo))
	protected.Post("/auth/change-password", authHandler.ChangePassword)

	// Catalog (admin creates; everyone authenticated can read)
	protected.Get("/products", middleware.RequirePrivilege("product:view"), catalogHandler.GetProducts)
	protected.Get("/products/categories", middleware.RequirePrivilege("product:view"), catalogHandler.GetCategories)
	protected.Get("/products/:code", middleware.RequirePrivilege("product:view"), catalogHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), catalogHandler.CreateProduct)

	// Warehouse units
	protected.Get("/units", middleware.RequirePrivilege("unit:view"), unitHandler.GetUnits)
	protected.Get("/units/:code", middleware.RequirePrivilege("report:unit"), unitHandler.GetUnit)
	protected.Post("/units", middleware.RequirePrivilege("unit:create"), unitHandler.CreateUnit)
	protected.Delete("/units/:code", middleware.RequirePrivilege("unit:delete"), unitHandler.DeleteUnit)

	// Stock ledger and transaction log (scoped to one unit per request)
	scoped := protected.Group("", middleware.UnitScope())
	scoped.Get("/stock", middleware.RequirePrivilege("stock:view"), stockHandler.GetStock)
	scoped.Get("/stock/:product", middleware.RequirePrivilege("stock:view"), stockHandler.GetProductDetails)
	scoped.Post("/stock/sell", middleware.RequirePrivilege("stock:sell"), stockHandler.Sell)
	scoped.Post("/stock/purchase", middleware.RequirePrivilege("stock:purchase"), stockHandler.Purchase)
	scoped.Get("/transactions", middleware.RequirePrivilege("transaction:view"), stockHandler.GetTransactions)

	// Reports
	scoped.Get("/reports/unit", middleware.RequirePrivilege("report:unit"), reportHandler.GetUnitReport)
	scoped.Get("/reports/employees/:username", middleware.RequirePrivilege("report:unit"), reportHandler.GetEmployeePerformance)
	protected.Get("/reports/company", middleware.RequirePrivilege("report:company"), reportHandler.GetCompanySummary)
	protected.Get("/reports/employees", middleware.RequirePrivilege("report:company"), reportHandler.GetEmployeeRanking)
	protected.Get("/reports/monthly-sales", middleware.RequirePrivilege("report:company"), reportHandler.GetMonthlySales)

	// Staff management
	scoped.Get("/staff", middleware.RequirePrivilege("staff:view"), userHandler.GetStaff)
	protected.Post("/staff", middleware.RequirePrivilege("staff:create"), userHandler.CreateStaff)
	protected.Delete("/staff/:username", middleware.RequirePrivilege("staff:delete"), userHandler.DeleteStaff)
	protected.Put("/staff/:username/password", middleware.RequirePrivilege("staff:update"), userHandler.SetStaffPassword)
	protected.Get("/supervisors", middleware.RequirePrivilege("report:company"), userHandler.GetSupervisors)

	// Privileges listing (for role assignment UIs)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

	// WebSocket endpoint
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

	// 8. Graceful shutdown
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

// seedRolesAndAdmin creates default privileges, roles, and the admin account
// if they don't exist yet.
func seedRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)
	userRepo := repository.NewUserRepo(db)

	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets every privilege
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		if err := roleRepo.AssignPrivileges(adminRole, allPrivileges); err != nil {
			log.Printf("Warning: Failed to assign admin privileges: %v", err)
		}
	}

	// SUPERVISOR and EMPLOYEE get their configured subsets
	for roleCode, codes := range model.RolePrivileges {
		role, err := roleRepo.FindByCode(roleCode)
		if err != nil || len(role.Privileges) > 0 {
			continue
		}
		privileges, err := privilegeRepo.FindByCodes(codes)
		if err != nil {
			log.Printf("Warning: Failed to load privileges for %s: %v", roleCode, err)
			continue
		}
		if err := roleRepo.AssignPrivileges(role, privileges); err != nil {
			log.Printf("Warning: Failed to assign privileges to %s: %v", roleCode, err)
		}
	}

	// Default admin account
	if _, err := userRepo.FindByUsername("admin"); err != nil {
		adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
		if err != nil {
			log.Printf("Warning: Admin role missing, skipping admin user seed: %v", err)
			return
		}

		admin := &model.User{
			Username:   "admin",
			Name:       "System",
			Surname:    "Administrator",
			RoleID:     &adminRole.ID,
			IsActive:   true,
			Privileges: adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin / admin123")
		}
	}
}
