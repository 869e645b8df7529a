package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/internal/container"
	handlers "github.com/oksasatya/plantify/internal/interface/http"
	"github.com/oksasatya/plantify/internal/interface/middleware"
)

// PlantModule serves the caller's own plants. Every route is protected.
type PlantModule struct {
	Handler *handlers.PlantHandler
	JWT     middleware.AccessVerifier
}

func NewPlantModule(h *handlers.PlantHandler, jwt middleware.AccessVerifier) *PlantModule {
	return &PlantModule{Handler: h, JWT: jwt}
}

func (m *PlantModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/plants")
	g.Use(
		middleware.Auth(m.JWT),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		g.GET("", m.Handler.List)
		g.POST("", m.Handler.Create)
		g.GET("/:id", m.Handler.Get)
		g.PUT("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
		g.POST("/:id/water", m.Handler.Water)
		g.POST("/:id/image", m.Handler.UploadImage)
	}
}
