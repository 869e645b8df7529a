package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/domain/repository"
)

const plantColumns = `id, user_id, name, type, care_instructions, watering_frequency,
	last_watered, next_watering, image_url, created_at, updated_at`

type PlantRepository struct {
	pool *pgxpool.Pool
}

func NewPlantRepository(pool *pgxpool.Pool) *PlantRepository {
	return &PlantRepository{pool: pool}
}

func (r *PlantRepository) ListByUser(ctx context.Context, userID string) ([]entity.Plant, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, mapError(rows.Err())
}

func (r *PlantRepository) GetByID(ctx context.Context, id, userID string) (*entity.Plant, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+plantColumns+`
		FROM plants
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	p, err := scanPlant(row)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *PlantRepository) Create(ctx context.Context, p *entity.Plant) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO plants (user_id, name, type, care_instructions, watering_frequency,
			last_watered, next_watering, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, p.UserID, p.Name, p.Type, nullable(p.CareInstructions), p.WateringFrequency,
		p.LastWatered, p.NextWatering, nullable(p.ImageURL))

	return mapError(row.Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt))
}

func (r *PlantRepository) Update(ctx context.Context, p *entity.Plant) error {
	row := r.pool.QueryRow(ctx, `
		UPDATE plants
		SET name = $3, type = $4, care_instructions = $5, watering_frequency = $6,
			last_watered = $7, next_watering = $8, image_url = $9, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`, p.ID, p.UserID, p.Name, p.Type, nullable(p.CareInstructions), p.WateringFrequency,
		p.LastWatered, p.NextWatering, nullable(p.ImageURL))

	return mapError(row.Scan(&p.UpdatedAt))
}

func (r *PlantRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM plants WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanPlant(row pgx.Row) (*entity.Plant, error) {
	var (
		p        entity.Plant
		care     *string
		imageURL *string
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.Type, &care, &p.WateringFrequency,
		&p.LastWatered, &p.NextWatering, &imageURL, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.CareInstructions = deref(care)
	p.ImageURL = deref(imageURL)
	return &p, nil
}

var _ repository.PlantRepository = (*PlantRepository)(nil)
