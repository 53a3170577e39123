package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/taskpad/taskpad/internal/middleware"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Profile    *ProfileHandler
	Todos      *TodoHandler
	Resolver   middleware.IdentityResolver
	BasePath   string
	CORSOrigin string
}

// NewRouter builds the gin engine. The auth endpoints live at fixed
// paths; everything else hangs off the configurable base path behind
// the auth guard.
func NewRouter(deps RouterDeps) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CORS(deps.CORSOrigin))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	engine.POST("/signup", deps.Auth.Signup)
	engine.POST("/login", deps.Auth.Login)
	engine.POST("/logout", deps.Auth.Logout)

	base := engine.Group(deps.BasePath)
	base.Use(middleware.Auth(deps.Resolver))
	base.GET("/todos", deps.Todos.List)
	base.POST("/todo/new", deps.Todos.Create)
	base.DELETE("/todo/delete/:id", deps.Todos.Delete)
	base.GET("/todo/complete/:id", deps.Todos.ToggleComplete)
	base.GET("/current-user", deps.Profile.CurrentUser)
	base.PUT("/edit-profile", deps.Profile.EditProfile)

	return engine
}
