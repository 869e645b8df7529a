package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type pingModule struct{ registered int }

func (m *pingModule) Register(rg *gin.RouterGroup) {
	m.registered++
	rg.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("mw")) })
}

func TestRegistryMountsModulesUnderAPI(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := NewRegistry(gin.New())
	reg.Use(func(c *gin.Context) { c.Set("mw", "applied"); c.Next() })
	mod := &pingModule{}
	reg.Add(mod, nil, ModuleFunc(func(rg *gin.RouterGroup) {
		rg.GET("/fn", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	}))
	reg.RegisterAll()
	reg.RegisterAll()

	if mod.registered != 1 {
		t.Fatalf("expected one registration, got %d", mod.registered)
	}
	w := httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	if w.Code != http.StatusOK || w.Body.String() != "applied" {
		t.Fatalf("expected middleware applied under /api, got %d %q", w.Code, w.Body.String())
	}
	w = httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/fn", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected ModuleFunc route, got %d", w.Code)
	}
	w = httptest.NewRecorder()
	reg.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected routes outside /api to 404, got %d", w.Code)
	}
}
