package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shapedtime/wsindex/internal/series"
)

// OrganizeRequest is one search response to fold into a series tree
type OrganizeRequest struct {
	Query string        `json:"query" binding:"required"`
	Files []FileRequest `json:"files" binding:"dive"`
}

// FileRequest is a search result file
type FileRequest struct {
	Ident    string `json:"ident" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Size     int64  `json:"size"`
	Password bool   `json:"password"`
}

// SeriesResponse is the organized season/episode tree
type SeriesResponse struct {
	Title      string           `json:"title"`
	Seasons    []SeasonResponse `json:"seasons"`
	Standalone []FileResponse   `json:"standalone"`
}

// SeasonResponse contains the episodes of one season in ascending order
type SeasonResponse struct {
	Season   int               `json:"season"`
	Episodes []EpisodeResponse `json:"episodes"`
}

// EpisodeResponse contains all releases of one episode
type EpisodeResponse struct {
	Episode int            `json:"episode"`
	Label   string         `json:"label"`
	Title   *string        `json:"title,omitempty"`
	Files   []FileResponse `json:"files"`
}

// FileResponse is a file with its classification, if any
type FileResponse struct {
	Ident    string  `json:"ident"`
	Name     string  `json:"name"`
	Size     int64   `json:"size"`
	Password bool    `json:"password,omitempty"`
	Kind     string  `json:"kind,omitempty"`
	Quality  *string `json:"quality,omitempty"`
	Language *string `json:"language,omitempty"`
	Title    *string `json:"title,omitempty"`
}

// organizeSeries groups search results into seasons and episodes
// POST /api/series/organize
func (s *Server) organizeSeries(c *gin.Context) {
	var req OrganizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	files := make([]series.FileEntry, len(req.Files))
	for i, f := range req.Files {
		files[i] = series.FileEntry{
			Ident:    f.Ident,
			Name:     f.Name,
			Size:     f.Size,
			Password: f.Password,
		}
	}

	result, err := s.organizer.Organize(c.Request.Context(), req.Query, files)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// client went away
			c.Abort()
			return
		}
		slog.Error("Failed to organize search results", "query", req.Query, "error", err)
		errorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, toSeriesResponse(result))
}

func toSeriesResponse(result *series.Result) SeriesResponse {
	resp := SeriesResponse{
		Title:      result.Index.Title,
		Seasons:    make([]SeasonResponse, 0, len(result.Index.Seasons)),
		Standalone: make([]FileResponse, 0, len(result.Standalone)),
	}

	for _, season := range result.Index.SortedSeasons() {
		sr := SeasonResponse{
			Season:   season.Number,
			Episodes: make([]EpisodeResponse, 0, len(season.Episodes)),
		}
		for _, ep := range season.SortedEpisodes() {
			er := EpisodeResponse{
				Episode: ep.Number,
				Label:   ep.Label(),
				Title:   ep.CommonTitle,
				Files:   make([]FileResponse, 0, len(ep.Files)),
			}
			for _, f := range ep.Files {
				er.Files = append(er.Files, toFileResponse(f.File))
			}
			sr.Episodes = append(sr.Episodes, er)
		}
		resp.Seasons = append(resp.Seasons, sr)
	}

	for _, f := range result.Standalone {
		resp.Standalone = append(resp.Standalone, toFileResponse(f))
	}

	return resp
}

func toFileResponse(f series.FileEntry) FileResponse {
	resp := FileResponse{
		Ident:    f.Ident,
		Name:     f.Name,
		Size:     f.Size,
		Password: f.Password,
		Kind:     string(f.Kind),
	}
	if a := f.Annotation; a != nil {
		resp.Quality = a.Quality
		resp.Language = a.Language
		resp.Title = a.Title
	}
	return resp
}
