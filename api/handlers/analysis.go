package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/surfyhou/Dota2Analyzer/api/filters"
	"github.com/surfyhou/Dota2Analyzer/api/services/analysis"
)

// Analysis handler.
type AnalysisHandler struct {
	analysisService *analysis.AnalysisService
}

type AnalysisHandlerDependencies struct {
	AnalysisService *analysis.AnalysisService
}

// Create a new instance of the analysis handler.
func NewAnalysisHandler(deps *AnalysisHandlerDependencies) *AnalysisHandler {
	return &AnalysisHandler{
		analysisService: deps.AnalysisService,
	}
}

// Handler for analyzing the recent matches of an account.
func (h *AnalysisHandler) GetRecentAnalysis(c *gin.Context) {
	accountID, err := strconv.ParseInt(c.Param("accountId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid account id"})
		return
	}

	var qp filters.AnalysisQueryParams
	if err := c.ShouldBindQuery(&qp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	qp.Normalize()

	results, err := h.analysisService.AnalyzeRecentMatches(
		c.Request.Context(), accountID, qp.Count, qp.FetchLimit, qp.RequestParse, qp.OnlyPos1,
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": results})
}
