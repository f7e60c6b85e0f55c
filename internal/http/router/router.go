package router

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"tracker.app/api-server/core/observability"
	"tracker.app/api-server/internal/http/handler"
	"tracker.app/api-server/internal/http/middleware"
	"tracker.app/api-server/internal/model"
	"tracker.app/api-server/internal/service"
)

// Handlers bundles everything New needs to assemble the route tree.
type Handlers struct {
	Auth     *handler.AuthHandler
	Release  *handler.ReleaseHandler
	WorkItem *handler.WorkItemHandler
	User     *handler.UserHandler
	Activity *handler.ActivityHandler
	Search   *handler.SearchHandler
}

func New(authService service.AuthService, h Handlers, tracing bool) *gin.Engine {
	engine := gin.New()
	// The span must open before Recovery so panics are still recorded.
	if tracing {
		engine.Use(otelgin.Middleware(observability.ServiceName))
	}
	engine.Use(gin.Recovery())

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	AuthRouter(api.Group("/auth"), authService, h.Auth)

	authed := api.Group("", middleware.RequireSession(authService))
	ReleaseRouter(authed.Group("/releases"), h.Release, h.WorkItem)
	UserRouter(authed.Group("/users"), h.User)
	ActivityRouter(authed.Group("/activities"), h.Activity)
	SearchRouter(authed.Group("/search"), h.Search)

	return engine
}

func AuthRouter(rg *gin.RouterGroup, authService service.AuthService, h *handler.AuthHandler) {
	rg.POST("/login", h.Login)
	rg.POST("/logout", h.Logout)
	rg.GET("/me", middleware.RequireSession(authService), h.Me)
}

func ReleaseRouter(rg *gin.RouterGroup, h *handler.ReleaseHandler, wi *handler.WorkItemHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/publish", h.Publish)

	rg.POST("/:id/work-items", wi.Create)
	rg.PUT("/:id/work-items/:itemID", wi.Update)
	rg.DELETE("/:id/work-items/:itemID", wi.Delete)
	rg.GET("/:id/work-items/parent-candidates", wi.ParentCandidates)
}

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Deactivate)
}

func ActivityRouter(rg *gin.RouterGroup, h *handler.ActivityHandler) {
	rg.GET("", h.List)
	rg.GET("/stats", middleware.RequireRole(model.RoleSuperAdmin), h.Stats)
}

func SearchRouter(rg *gin.RouterGroup, h *handler.SearchHandler) {
	rg.GET("", h.Search)
}
