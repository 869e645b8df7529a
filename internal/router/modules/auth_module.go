package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/internal/container"
	handlers "github.com/oksasatya/plantify/internal/interface/http"
	"github.com/oksasatya/plantify/internal/interface/middleware"
)

// AuthModule serves /auth.
// Public: register, login, google, refresh. Protected: logout, me.
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     middleware.AccessVerifier
}

func NewAuthModule(h *handlers.AuthHandler, jwt middleware.AccessVerifier) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	credLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)   // 10 req/min per IP
	refreshLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIPAndPath(), nil) // 60 req/min per IP

	g := rg.Group("/auth")
	g.POST("/register", credLimiter, m.Handler.Register)
	g.POST("/login", credLimiter, m.Handler.Login)
	g.POST("/google", credLimiter, m.Handler.Google)
	g.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := g.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/me", m.Handler.Me)
	}
}
