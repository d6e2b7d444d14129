package app

import (
	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/platform/openai"
	"github.com/wearly/shopagent-backend/internal/platform/prefstore"
	"github.com/wearly/shopagent-backend/internal/services"
)

type Services struct {
	Catalog         services.CatalogService
	Profile         services.ProfileService
	WebSearch       services.WebSearchService
	Search          services.SearchService
	Recommendations services.RecommendationService
}

// wireServices constructs the service graph. Missing credentials
// degrade the corresponding feature instead of failing startup: no
// OpenAI key means web fallback returns nothing, no preference store
// means personalization and tracking are off.
func wireServices(log *logger.Logger, reposet Repos) Services {
	aiClient, err := openai.NewClient(log)
	if err != nil {
		log.Warn("Web search agent unavailable", "error", err)
		aiClient = nil
	}

	prefClient, err := prefstore.NewClient(log)
	if err != nil {
		log.Warn("Preference store unavailable", "error", err)
		prefClient = nil
	}

	catalog := services.NewCatalogService(reposet.Products, log)
	profile := services.NewProfileService(prefClient, log)
	web := services.NewWebSearchService(aiClient, log)

	return Services{
		Catalog:         catalog,
		Profile:         profile,
		WebSearch:       web,
		Search:          services.NewSearchService(catalog, web, profile, log),
		Recommendations: services.NewRecommendationService(reposet.Products, profile, log),
	}
}
