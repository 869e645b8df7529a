package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/internal/application"
	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/pkg/response"
)

// ExploreUseCase is the part of *application.ExploreService the handler needs.
type ExploreUseCase interface {
	ListPlants(ctx context.Context, category, search string) ([]entity.CatalogPlant, error)
	GetPlant(ctx context.Context, id string) (*entity.CatalogPlant, error)
	ListProblems(ctx context.Context, category, search string) ([]entity.Problem, error)
	GetProblem(ctx context.Context, id string) (*entity.Problem, error)
	Seed(ctx context.Context) (application.SeedResult, error)
}

type ExploreHandler struct {
	Svc    ExploreUseCase
	Logger *logrus.Logger
}

func NewExploreHandler(svc ExploreUseCase, logger *logrus.Logger) *ExploreHandler {
	return &ExploreHandler{Svc: svc, Logger: logger}
}

func (h *ExploreHandler) ListPlants(c *gin.Context) {
	plants, err := h.Svc.ListPlants(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plants": plants}, "explore plants", map[string]any{"count": len(plants)})
}

func (h *ExploreHandler) GetPlant(c *gin.Context) {
	p, err := h.Svc.GetPlant(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"plant": p}, "explore plant", nil)
}

func (h *ExploreHandler) ListProblems(c *gin.Context) {
	problems, err := h.Svc.ListProblems(c.Request.Context(), c.Query("category"), c.Query("search"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"problems": problems}, "plant problems", map[string]any{"count": len(problems)})
}

func (h *ExploreHandler) GetProblem(c *gin.Context) {
	p, err := h.Svc.GetProblem(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"problem": p}, "plant problem", nil)
}

func (h *ExploreHandler) Seed(c *gin.Context) {
	res, err := h.Svc.Seed(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, res, "Explore catalog seeded", nil)
}
