package repository

import (
	"context"

	"github.com/oksasatya/plantify/internal/domain/entity"
)

// CatalogFilter narrows catalog listings. Empty fields mean no filter.
type CatalogFilter struct {
	Category string
	Search   string
}

// ExploreRepository reads the public catalog; only active rows are returned.
type ExploreRepository interface {
	ListPlants(ctx context.Context, f CatalogFilter) ([]entity.CatalogPlant, error)
	GetPlant(ctx context.Context, id string) (*entity.CatalogPlant, error)
	GetPlantsByIDs(ctx context.Context, ids []string) ([]entity.CatalogPlant, error)
	ListProblems(ctx context.Context, f CatalogFilter) ([]entity.Problem, error)
	GetProblem(ctx context.Context, id string) (*entity.Problem, error)

	CountPlants(ctx context.Context) (int, error)
	CountProblems(ctx context.Context) (int, error)
	InsertPlants(ctx context.Context, plants []entity.CatalogPlant) ([]entity.CatalogPlant, error)
	InsertProblems(ctx context.Context, problems []entity.Problem) error
}
