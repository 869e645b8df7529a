package repository

import (
	"context"

	"github.com/oksasatya/plantify/internal/domain/entity"
)

// PlantRepository persists user plants. Every read and write is scoped to
// the owner; a plant owned by someone else is reported as ErrNotFound.
type PlantRepository interface {
	ListByUser(ctx context.Context, userID string) ([]entity.Plant, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Plant, error)
	Create(ctx context.Context, p *entity.Plant) error
	Update(ctx context.Context, p *entity.Plant) error
	Delete(ctx context.Context, id, userID string) error
}
