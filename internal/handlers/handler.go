package handlers

import (
	"password_vault/internal/logger"
	"password_vault/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "password_vault/docs"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies. A nil logger
// discards output.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerAuthRoutes(router)
	h.registerAdminRoutes(router)
	h.registerPasswordRoutes(router)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", h.login)
	}
}

func (h *Handler) registerAdminRoutes(r *gin.Engine) {
	admin := r.Group("/admin")
	{
		// first-admin bootstrap is open; it refuses once an admin exists
		admin.POST("/users", h.bootstrapAdmin)
		admin.GET("/users", h.adminMiddleware, h.listUsers)
		admin.DELETE("/users/:id", h.adminMiddleware, h.deleteUser)
	}
}

func (h *Handler) registerPasswordRoutes(r *gin.Engine) {
	passwords := r.Group("/passwords", h.authMiddleware)
	{
		passwords.POST("", h.createPassword)
		passwords.GET("", h.listPasswords)
		passwords.GET("/:id", h.getPassword)
		passwords.PUT("/:id", h.updatePassword)
		passwords.DELETE("/:id", h.deletePassword)
	}
}
