package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/surfyhou/Dota2Analyzer/api/handlers"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.AnalysisHandler:
			r.registerAnalysisHandler(handler)
		}
	}
}

// Register the analysis handler.
func (r *Router) registerAnalysisHandler(handler *handlers.AnalysisHandler) {
	players := r.api.Group("/players")
	{
		players.GET("/:accountId/analysis", handler.GetRecentAnalysis)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
