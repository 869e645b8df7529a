package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/plantify/internal/container"
	"github.com/oksasatya/plantify/internal/interface/middleware"
)

// RegisterDebug exposes expvar at /debug/vars, rate-limited per IP.
// Private networks skip the limit.
func RegisterDebug(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())
	rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
}
