package router

import (
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/SmekensRuben/HotelSuite/internal/config"
	"github.com/SmekensRuben/HotelSuite/internal/docstore"
	"github.com/SmekensRuben/HotelSuite/internal/handler"
	"github.com/SmekensRuben/HotelSuite/internal/middleware"
	"github.com/SmekensRuben/HotelSuite/internal/search"
	"github.com/SmekensRuben/HotelSuite/internal/service"
	"github.com/SmekensRuben/HotelSuite/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Store ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, searchClient *search.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000)) // 1000 req/min per IP

	// ── Store and queue ──────────────────────────────────────────────────────
	store := docstore.NewGormStore(db)
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	userSvc := service.NewUserService(store)
	authSvc := service.NewAuthService(userSvc, cfg)
	productSvc := service.NewProductService(store, dispatcher, searchClient, cfg.MeiliIndex, service.VariantPricePolicy(cfg.VariantPricePolicy))
	importSvc := service.NewImportService(store, dispatcher)
	supplierSvc := service.NewSupplierService(store)
	orderSvc := service.NewOrderService(store)
	roleSvc := service.NewRoleService(store)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	productsH := handler.NewProductsHandler(productSvc, importSvc)
	suppliersH := handler.NewSuppliersHandler(supplierSvc)
	ordersH := handler.NewOrdersHandler(orderSvc)
	usersH := handler.NewUsersHandler(userSvc)
	rolesH := handler.NewRolesHandler(roleSvc)
	mailH := handler.NewMailHandler(dispatcher)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb, searchClient))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes, all scoped to one hotel
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	hotel := r.Group("/v1/hotels/:hotelUid", jwtMW, middleware.HotelScope())
	{
		guard := func(feature, action string) gin.HandlerFunc {
			return middleware.RequirePermission(roleSvc, feature, action)
		}

		catalog := hotel.Group("/catalogproducts")
		{
			catalog.GET("", guard("catalogproducts", "read"), productsH.ListCatalog)
			catalog.GET("/search", guard("catalogproducts", "read"), productsH.SearchCatalog)
			catalog.GET("/:id", guard("catalogproducts", "read"), productsH.GetCatalog)
			catalog.POST("", guard("catalogproducts", "create"), productsH.CreateCatalog)
			catalog.POST("/import", guard("catalogproducts", "create"), productsH.ImportCatalog)
			catalog.PUT("/:id", guard("catalogproducts", "update"), productsH.UpdateCatalog)
			catalog.DELETE("/:id", guard("catalogproducts", "delete"), productsH.DeleteCatalog)
		}

		supplierProducts := hotel.Group("/supplierproducts")
		{
			supplierProducts.GET("", guard("supplierproducts", "read"), productsH.ListSupplier)
			supplierProducts.GET("/:id", guard("supplierproducts", "read"), productsH.GetSupplier)
			supplierProducts.POST("", guard("supplierproducts", "create"), productsH.CreateSupplier)
			supplierProducts.POST("/import", guard("supplierproducts", "create"), productsH.ImportSupplier)
			supplierProducts.PUT("/:id", guard("supplierproducts", "update"), productsH.UpdateSupplier)
			supplierProducts.DELETE("/:id", guard("supplierproducts", "delete"), productsH.DeleteSupplier)
		}

		suppliers := hotel.Group("/suppliers")
		{
			suppliers.GET("", guard("suppliers", "read"), suppliersH.List)
			suppliers.GET("/:id", guard("suppliers", "read"), suppliersH.Get)
			suppliers.POST("", guard("suppliers", "create"), suppliersH.Create)
			suppliers.PUT("/:id", guard("suppliers", "update"), suppliersH.Update)
			suppliers.DELETE("/:id", guard("suppliers", "delete"), suppliersH.Delete)
		}

		orders := hotel.Group("/orders")
		{
			orders.GET("", guard("orders", "read"), ordersH.List)
			orders.POST("", guard("orders", "create"), ordersH.Create)
		}

		roles := hotel.Group("/roles", guard("settings", "read"))
		{
			roles.GET("", rolesH.List)
			roles.POST("", guard("settings", "create"), rolesH.Create)
			roles.PUT("/:id", guard("settings", "update"), rolesH.Update)
			roles.DELETE("/:id", guard("settings", "delete"), rolesH.Delete)
		}

		hotel.GET("/permissions", rolesH.PermissionCatalog)
		hotel.GET("/permissions/check", rolesH.CheckPermission)

		users := hotel.Group("/users", guard("users", "read"))
		{
			users.GET("", usersH.List)
			users.GET("/:id", usersH.Get)
			users.GET("/:id/displayname", usersH.DisplayName)
			users.PUT("/:id", guard("users", "update"), usersH.Update)
			users.PUT("/:id/permissions", guard("users", "update"), usersH.UpdatePermissions)
		}

		hotel.POST("/mail", guard("settings", "update"), mailH.Send)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
