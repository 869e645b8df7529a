package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/internal/container"
	handlers "github.com/oksasatya/plantify/internal/interface/http"
	"github.com/oksasatya/plantify/internal/interface/middleware"
)

// ExploreModule serves the public catalog. Seeding is restricted to
// private networks.
type ExploreModule struct {
	Handler *handlers.ExploreHandler
}

func NewExploreModule(h *handlers.ExploreHandler) *ExploreModule {
	return &ExploreModule{Handler: h}
}

func (m *ExploreModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), nil)

	g := rg.Group("/explore")
	g.GET("/plants", rl, m.Handler.ListPlants)
	g.GET("/plants/:id", rl, m.Handler.GetPlant)
	g.GET("/problems", rl, m.Handler.ListProblems)
	g.GET("/problems/:id", rl, m.Handler.GetProblem)
	g.POST("/seed", middleware.RequireAllowed(middleware.AllowPrivateIP()), m.Handler.Seed)
}
