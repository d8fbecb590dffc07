package modules

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/surfyhou/Dota2Analyzer/api/handlers"
	"github.com/surfyhou/Dota2Analyzer/fetcher/opendota"
	"github.com/surfyhou/Dota2Analyzer/pkg/config"
	"github.com/surfyhou/Dota2Analyzer/pkg/logger"
	"github.com/surfyhou/Dota2Analyzer/pkg/redis"
)

// Module containing the necessary handlers.
type Module struct {
	Router          *gin.Engine
	AnalysisHandler *handlers.AnalysisHandler
}

// Shared dependencies for the handler initializers.
type ModuleDependencies struct {
	DB     *gorm.DB
	Redis  *redis.RedisClient
	Client opendota.Client
	Logger *logger.Logger
	Config config.AnalysisConfiguration
}

// Create a new module with all the necessary handlers initialized.
func NewModule(deps *ModuleDependencies) *Module {
	router := gin.Default()

	analysisHandler := initializeAnalysisHandler(deps)

	return &Module{
		Router:          router,
		AnalysisHandler: analysisHandler,
	}
}
