package modules

import (
	"github.com/surfyhou/Dota2Analyzer/api/cache"
	"github.com/surfyhou/Dota2Analyzer/api/handlers"
	"github.com/surfyhou/Dota2Analyzer/api/repositories"
	"github.com/surfyhou/Dota2Analyzer/api/services/analysis"
)

func initializeAnalysisHandler(deps *ModuleDependencies) *handlers.AnalysisHandler {
	// Initialize the cache layers and the analysis service.
	cacheRepository := repositories.NewCacheRepository(deps.DB)
	freshnessCache := cache.NewFreshnessCache(deps.Redis, cacheRepository, deps.Logger)
	catalog := cache.NewCatalogLoader(deps.Client, freshnessCache, deps.Logger, deps.Config.CacheOnly)

	analysisDeps := &analysis.AnalysisServiceDeps{
		Client:                  deps.Client,
		Cache:                   freshnessCache,
		Catalog:                 catalog,
		Logger:                  deps.Logger,
		CacheOnly:               deps.Config.CacheOnly,
		DisableBenchmarks:       deps.Config.DisableBenchmarks,
		AvoidExternalWhenCached: deps.Config.AvoidExternalWhenCached,
	}

	analysisService := analysis.NewAnalysisService(analysisDeps)

	analysisHandlerDeps := &handlers.AnalysisHandlerDependencies{
		AnalysisService: analysisService,
	}

	return handlers.NewAnalysisHandler(analysisHandlerDeps)
}
