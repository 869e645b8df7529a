package router

import (
	"github.com/oksasatya/plantify/internal/application"
	"github.com/oksasatya/plantify/internal/container"
	"github.com/oksasatya/plantify/internal/infrastructure/cache"
	pginfra "github.com/oksasatya/plantify/internal/infrastructure/postgres"
	"github.com/oksasatya/plantify/internal/infrastructure/search"
	handlers "github.com/oksasatya/plantify/internal/interface/http"
	"github.com/oksasatya/plantify/internal/router/modules"
	"github.com/oksasatya/plantify/pkg/helpers"
)

// BuildAuthService wires the auth orchestrator from the container.
// Account emails are only queued when a publisher exists and sending is enabled.
func BuildAuthService() *application.AuthService {
	cfg := container.GetConfig()

	var verifier application.IdentityVerifier = &helpers.GoogleVerifier{ClientID: cfg.GoogleClientID}
	if v := container.GetGoogleVerifier(); v != nil {
		verifier = v
	}
	var mail application.JobPublisher
	if pub := container.GetRabbitPub(); pub != nil && cfg.MailSendEnabled {
		mail = pub
	}

	return application.NewAuthService(
		pginfra.NewUserRepository(container.GetPGPool()),
		container.GetJWT(),
		verifier,
		mail,
		container.GetLogger(),
		cfg.MaxRefreshTokens,
	)
}

func BuildPlantService() *application.PlantService {
	cfg := container.GetConfig()

	var images application.ImageStore
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		images = &helpers.GCSBucket{Client: gcs, Bucket: cfg.GCSBucket}
	}
	return application.NewPlantService(pginfra.NewPlantRepository(container.GetPGPool()), images, container.GetLogger())
}

// BuildExploreService wires the catalog with its optional search index and list cache.
func BuildExploreService() *application.ExploreService {
	cfg := container.GetConfig()

	var idx application.CatalogSearcher
	if es := container.GetES(); es != nil {
		idx = search.NewCatalogIndex(es, cfg.ESCatalogIndex)
	}
	var lc application.ListCache
	if rdb := container.GetRedis(); rdb != nil && cfg.ExploreCacheTTL > 0 {
		lc = cache.NewExploreCache(rdb, cfg.ExploreCacheTTL)
	}
	return application.NewExploreService(pginfra.NewExploreRepository(container.GetPGPool()), idx, lc, container.GetLogger())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	logger := container.GetLogger()
	jwt := container.GetJWT()

	r.Add(
		modules.NewHealthModule(handlers.NewHealthHandler(container.GetPGPool())),
		modules.NewAuthModule(handlers.NewAuthHandler(BuildAuthService(), logger), jwt),
		modules.NewPlantModule(handlers.NewPlantHandler(BuildPlantService(), logger), jwt),
		modules.NewExploreModule(handlers.NewExploreHandler(BuildExploreService(), logger)),
	)
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(ModuleFunc(modules.RegisterDebug))
	}
}
