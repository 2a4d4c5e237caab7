package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapedtime/wsindex/internal/classify"
)

// ClassifyRequest is a single file name to classify
type ClassifyRequest struct {
	FileName    string `json:"file_name" binding:"required"`
	SeriesTitle string `json:"series_title"`
}

// ClassifyResponse reports whether an episode marker was found
type ClassifyResponse struct {
	Matched bool                        `json:"matched"`
	Episode *classify.ParsedEpisodeInfo `json:"episode,omitempty"`
}

// classifyFile parses season/episode, quality, language and title
// POST /api/classify
func (s *Server) classifyFile(c *gin.Context) {
	var req ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	info := classify.Classify(req.FileName, req.SeriesTitle)
	if info == nil {
		s.metrics.ObserveClassification("")
		c.JSON(http.StatusOK, ClassifyResponse{Matched: false})
		return
	}
	s.metrics.ObserveClassification(info.Pattern)

	tagged := info.WithLanguage(classify.DetectLanguage(req.FileName))
	c.JSON(http.StatusOK, ClassifyResponse{
		Matched: true,
		Episode: &tagged,
	})
}
