package postgres

import (
	"context"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/plantify/internal/domain/entity"
	"github.com/oksasatya/plantify/internal/domain/repository"
)

const (
	catalogPlantColumns = `id, name, scientific_name, category, difficulty, light, water, description,
	tags, icon, image_url, is_active, created_at, updated_at`
	problemColumns = `id, name, category, description, severity, treatment_difficulty, common_causes,
	solutions, prevention, affected_plants, icon, color, is_active, created_at, updated_at`
)

type ExploreRepository struct {
	pool *pgxpool.Pool
}

func NewExploreRepository(pool *pgxpool.Pool) *ExploreRepository {
	return &ExploreRepository{pool: pool}
}

// whereClause builds the active/category/search predicate. searchExprs are
// SQL snippets containing %s where the search placeholder goes.
func whereClause(f repository.CatalogFilter, searchExprs []string) (string, []any) {
	conds := []string{"is_active"}
	args := make([]any, 0, 2)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, "category = $"+strconv.Itoa(len(args)))
	}
	if strings.TrimSpace(f.Search) != "" {
		args = append(args, likePattern(f.Search))
		ph := "$" + strconv.Itoa(len(args))
		ors := make([]string, 0, len(searchExprs))
		for _, e := range searchExprs {
			ors = append(ors, strings.ReplaceAll(e, "%s", ph))
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

var (
	plantSearchExprs = []string{
		"name ILIKE %s",
		"scientific_name ILIKE %s",
		"description ILIKE %s",
		"EXISTS (SELECT 1 FROM unnest(tags) t WHERE t ILIKE %s)",
	}
	problemSearchExprs = []string{
		"name ILIKE %s",
		"description ILIKE %s",
		"category ILIKE %s",
		"EXISTS (SELECT 1 FROM unnest(common_causes) c WHERE c ILIKE %s)",
		"EXISTS (SELECT 1 FROM unnest(solutions) s WHERE s ILIKE %s)",
	}
)

func (r *ExploreRepository) ListPlants(ctx context.Context, f repository.CatalogFilter) ([]entity.CatalogPlant, error) {
	where, args := whereClause(f, plantSearchExprs)
	rows, err := r.pool.Query(ctx, `SELECT `+catalogPlantColumns+` FROM explore_plants`+where+` ORDER BY name ASC`, args...)
	if err != nil {
		return nil, mapError(err)
	}
	return collectCatalogPlants(rows)
}

func (r *ExploreRepository) GetPlant(ctx context.Context, id string) (*entity.CatalogPlant, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+catalogPlantColumns+` FROM explore_plants WHERE id = $1 AND is_active`, id)
	p, err := scanCatalogPlant(row)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

// GetPlantsByIDs returns active plants for ids, sorted by name.
func (r *ExploreRepository) GetPlantsByIDs(ctx context.Context, ids []string) ([]entity.CatalogPlant, error) {
	if len(ids) == 0 {
		return []entity.CatalogPlant{}, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT `+catalogPlantColumns+`
		FROM explore_plants
		WHERE id = ANY($1::uuid[]) AND is_active
		ORDER BY name ASC
	`, ids)
	if err != nil {
		return nil, mapError(err)
	}
	return collectCatalogPlants(rows)
}

func (r *ExploreRepository) ListProblems(ctx context.Context, f repository.CatalogFilter) ([]entity.Problem, error) {
	where, args := whereClause(f, problemSearchExprs)
	rows, err := r.pool.Query(ctx, `SELECT `+problemColumns+` FROM problems`+where+` ORDER BY name ASC`, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	out := make([]entity.Problem, 0)
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, mapError(rows.Err())
}

func (r *ExploreRepository) GetProblem(ctx context.Context, id string) (*entity.Problem, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+problemColumns+` FROM problems WHERE id = $1 AND is_active`, id)
	p, err := scanProblem(row)
	if err != nil {
		return nil, mapError(err)
	}
	return p, nil
}

func (r *ExploreRepository) CountPlants(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM explore_plants`).Scan(&n)
	return n, mapError(err)
}

func (r *ExploreRepository) CountProblems(ctx context.Context) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM problems`).Scan(&n)
	return n, mapError(err)
}

// InsertPlants inserts all plants in one transaction and returns them with
// their generated ids and timestamps.
func (r *ExploreRepository) InsertPlants(ctx context.Context, plants []entity.CatalogPlant) ([]entity.CatalogPlant, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	out := make([]entity.CatalogPlant, 0, len(plants))
	for _, p := range plants {
		if p.Tags == nil {
			p.Tags = []string{}
		}
		err := tx.QueryRow(ctx, `
			INSERT INTO explore_plants (name, scientific_name, category, difficulty, light, water,
				description, tags, icon, image_url, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, created_at, updated_at
		`, p.Name, p.ScientificName, p.Category, p.Difficulty, p.Light, p.Water,
			p.Description, p.Tags, nullable(p.Icon), nullable(p.ImageURL), p.IsActive,
		).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, mapError(err)
		}
		out = append(out, p)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ExploreRepository) InsertProblems(ctx context.Context, problems []entity.Problem) error {
	batch := &pgx.Batch{}
	for _, p := range problems {
		batch.Queue(`
			INSERT INTO problems (name, category, description, severity, treatment_difficulty,
				common_causes, solutions, prevention, affected_plants, icon, color, is_active)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, p.Name, p.Category, p.Description, p.Severity, p.TreatmentDifficulty,
			nonNil(p.CommonCauses), nonNil(p.Solutions), p.Prevention, nonNil(p.AffectedPlants),
			nullable(p.Icon), nullable(p.Color), p.IsActive)
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return mapError(err)
	}
	return tx.Commit(ctx)
}

func collectCatalogPlants(rows pgx.Rows) ([]entity.CatalogPlant, error) {
	defer rows.Close()
	out := make([]entity.CatalogPlant, 0)
	for rows.Next() {
		p, err := scanCatalogPlant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, mapError(rows.Err())
}

func scanCatalogPlant(row pgx.Row) (*entity.CatalogPlant, error) {
	var (
		p        entity.CatalogPlant
		icon     *string
		imageURL *string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.ScientificName, &p.Category, &p.Difficulty, &p.Light,
		&p.Water, &p.Description, &p.Tags, &icon, &imageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Icon = deref(icon)
	p.ImageURL = deref(imageURL)
	return &p, nil
}

func scanProblem(row pgx.Row) (*entity.Problem, error) {
	var (
		p     entity.Problem
		icon  *string
		color *string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.Severity, &p.TreatmentDifficulty,
		&p.CommonCauses, &p.Solutions, &p.Prevention, &p.AffectedPlants, &icon, &color, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Icon = deref(icon)
	p.Color = deref(color)
	return &p, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.ExploreRepository = (*ExploreRepository)(nil)
