package handlers

import (
	"github.com/Yurchenkopi/job4j-auth/internal/logger"
	"github.com/Yurchenkopi/job4j-auth/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger) *Handler {
	return &Handler{services: services, log: log}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestID, h.requestLog)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	h.registerPersonRoutes(router)

	return router
}

func (h *Handler) registerPersonRoutes(r *gin.Engine) {
	person := r.Group("/person")
	{
		person.GET("/", h.listPersons)
		person.GET("/:id", h.getPersonByID)
		person.POST("/", h.createPerson)
		person.POST("/sign-up", h.createPerson)
		person.POST("/sign-in", h.signIn)
		person.PUT("/", h.updatePerson)
		person.PATCH("/", h.patchPerson)
		person.DELETE("/:id", h.deletePerson)
	}
}
