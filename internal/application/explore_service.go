package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/plantify/internal/domain/entity"
	repo "github.com/oksasatya/plantify/internal/domain/repository"
	"github.com/oksasatya/plantify/pkg/apperror"
	"github.com/oksasatya/plantify/pkg/helpers"
)

var (
	ErrCatalogPlantNotFound = apperror.New(apperror.CodeNotFound, "Plant not found")
	ErrProblemNotFound      = apperror.New(apperror.CodeNotFound, "Problem not found")
)

// CatalogSearcher is a full-text index over catalog plants.
type CatalogSearcher interface {
	// SearchPlants returns matching plant ids; order is not significant.
	SearchPlants(ctx context.Context, f repo.CatalogFilter) ([]string, error)
	IndexPlants(ctx context.Context, plants []entity.CatalogPlant) error
}

// ListCache stores serialized list results.
type ListCache interface {
	Get(ctx context.Context, key string) (json.RawMessage, bool, error)
	Set(ctx context.Context, key string, value json.RawMessage) error
	Invalidate(ctx context.Context) error
}

type ExploreService struct {
	Repo repo.ExploreRepository
	// Search and Cache are optional.
	Search CatalogSearcher
	Cache  ListCache
	Logger *logrus.Logger
}

func NewExploreService(r repo.ExploreRepository, search CatalogSearcher, cache ListCache, logger *logrus.Logger) *ExploreService {
	return &ExploreService{Repo: r, Search: search, Cache: cache, Logger: logger}
}

// SeedResult reports how many rows Seed inserted.
type SeedResult struct {
	Plants   int `json:"plants"`
	Problems int `json:"problems"`
}

// NewCatalogFilter trims the inputs and treats "All" as no category.
func NewCatalogFilter(category, search string) repo.CatalogFilter {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	return repo.CatalogFilter{Category: category, Search: strings.TrimSpace(search)}
}

func cacheKey(kind string, f repo.CatalogFilter) string {
	return kind + ":" + f.Category + ":" + strings.ToLower(f.Search)
}

func (s *ExploreService) ListPlants(ctx context.Context, category, search string) ([]entity.CatalogPlant, error) {
	f := NewCatalogFilter(category, search)
	var out []entity.CatalogPlant
	if s.fromCache(ctx, cacheKey("plants", f), &out) {
		return out, nil
	}

	out, err := s.searchPlants(ctx, f)
	if err != nil {
		return nil, s.fail("list catalog plants", err)
	}
	s.toCache(ctx, cacheKey("plants", f), out)
	return out, nil
}

// searchPlants serves text searches from the index when there is one and
// falls back to the database when the index fails or finds nothing.
func (s *ExploreService) searchPlants(ctx context.Context, f repo.CatalogFilter) ([]entity.CatalogPlant, error) {
	if s.Search != nil && f.Search != "" {
		ids, err := s.Search.SearchPlants(ctx, f)
		switch {
		case err != nil:
			helpers.LogWarn(s.Logger, "catalog search failed, using database", err, nil)
		case len(ids) > 0:
			return s.Repo.GetPlantsByIDs(ctx, ids)
		}
	}
	return s.Repo.ListPlants(ctx, f)
}

func (s *ExploreService) GetPlant(ctx context.Context, id string) (*entity.CatalogPlant, error) {
	p, err := s.Repo.GetPlant(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrCatalogPlantNotFound
		}
		return nil, s.fail("get catalog plant", err)
	}
	return p, nil
}

func (s *ExploreService) ListProblems(ctx context.Context, category, search string) ([]entity.Problem, error) {
	f := NewCatalogFilter(category, search)
	var out []entity.Problem
	if s.fromCache(ctx, cacheKey("problems", f), &out) {
		return out, nil
	}
	out, err := s.Repo.ListProblems(ctx, f)
	if err != nil {
		return nil, s.fail("list problems", err)
	}
	s.toCache(ctx, cacheKey("problems", f), out)
	return out, nil
}

func (s *ExploreService) GetProblem(ctx context.Context, id string) (*entity.Problem, error) {
	p, err := s.Repo.GetProblem(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrProblemNotFound
		}
		return nil, s.fail("get problem", err)
	}
	return p, nil
}

// Seed inserts the default catalog into empty tables. Tables that already
// hold rows are left alone, so calling it again is a no-op.
func (s *ExploreService) Seed(ctx context.Context) (SeedResult, error) {
	var res SeedResult

	n, err := s.Repo.CountPlants(ctx)
	if err != nil {
		return res, s.fail("count catalog plants", err)
	}
	if n == 0 {
		plants := defaultCatalogPlants()
		for i := range plants {
			plants[i].IsActive = true
		}
		inserted, err := s.Repo.InsertPlants(ctx, plants)
		if err != nil {
			return res, s.fail("insert catalog plants", err)
		}
		res.Plants = len(inserted)
		if s.Search != nil {
			if err := s.Search.IndexPlants(ctx, inserted); err != nil {
				helpers.LogWarn(s.Logger, "index catalog plants failed", err, nil)
			}
		}
	}

	n, err = s.Repo.CountProblems(ctx)
	if err != nil {
		return res, s.fail("count problems", err)
	}
	if n == 0 {
		problems := defaultProblems()
		for i := range problems {
			problems[i].IsActive = true
		}
		if err := s.Repo.InsertProblems(ctx, problems); err != nil {
			return res, s.fail("insert problems", err)
		}
		res.Problems = len(problems)
	}

	if (res.Plants > 0 || res.Problems > 0) && s.Cache != nil {
		if err := s.Cache.Invalidate(ctx); err != nil {
			helpers.LogWarn(s.Logger, "invalidate explore cache failed", err, nil)
		}
	}
	helpers.LogInfo(s.Logger, "explore catalog seeded", logrus.Fields{"plants": res.Plants, "problems": res.Problems})
	return res, nil
}

// Reindex pushes every active catalog plant to the search index.
func (s *ExploreService) Reindex(ctx context.Context) (int, error) {
	if s.Search == nil {
		return 0, nil
	}
	plants, err := s.Repo.ListPlants(ctx, repo.CatalogFilter{})
	if err != nil {
		return 0, s.fail("list catalog plants", err)
	}
	if len(plants) == 0 {
		return 0, nil
	}
	if err := s.Search.IndexPlants(ctx, plants); err != nil {
		return 0, s.fail("index catalog plants", err)
	}
	return len(plants), nil
}

func (s *ExploreService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.Cache == nil {
		return false
	}
	raw, ok, err := s.Cache.Get(ctx, key)
	if err != nil {
		helpers.LogWarn(s.Logger, "explore cache read failed", err, logrus.Fields{"key": key})
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		helpers.LogWarn(s.Logger, "explore cache entry corrupt", err, logrus.Fields{"key": key})
		return false
	}
	return true
}

func (s *ExploreService) toCache(ctx context.Context, key string, v any) {
	if s.Cache == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, key, b); err != nil {
		helpers.LogWarn(s.Logger, "explore cache write failed", err, logrus.Fields{"key": key})
	}
}

func (s *ExploreService) fail(op string, err error) error {
	helpers.LogError(s.Logger, "explore service failure", err, logrus.Fields{"op": op})
	return apperror.Wrap(apperror.CodeInternal, apperror.ErrInternal.Message, err)
}
