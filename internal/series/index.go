// Package series folds classified Webshare files into a season/episode tree.
package series

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/shapedtime/wsindex/internal/classify"
)

// Index is the organized view of one series for the current result set.
//
// An Index has a single writer: AddEpisodeFile must not be called
// concurrently. Classification may run in parallel, see Organizer.
type Index struct {
	Title   string
	Seasons map[int]*Season
}

// NewIndex creates an empty index for title
func NewIndex(title string) *Index {
	return &Index{
		Title:   title,
		Seasons: make(map[int]*Season),
	}
}

// AddEpisodeFile attaches file to the episode described by parsed.
//
// Seasons and episodes are created on first use, a new episode taking the
// parsed title as its common title. A file whose Ident is already attached
// to the episode is ignored. After an insert the common title is replaced
// when it is blank and the new title is not, or when the new title is
// non-blank and strictly longer.
func (idx *Index) AddEpisodeFile(parsed classify.ParsedEpisodeInfo, file FileEntry, seriesQuery string) {
	season, ok := idx.Seasons[parsed.Season]
	if !ok {
		season = &Season{
			Number:   parsed.Season,
			Episodes: make(map[int]*Episode),
		}
		idx.Seasons[parsed.Season] = season
	}

	episode, ok := season.Episodes[parsed.Episode]
	if !ok {
		episode = &Episode{
			Season:      parsed.Season,
			Number:      parsed.Episode,
			CommonTitle: parsed.Title,
		}
		season.Episodes[parsed.Episode] = episode
	}

	if episode.hasFile(file.Ident) {
		return
	}

	file.Annotation = &Annotation{
		Series:   seriesQuery,
		Season:   parsed.Season,
		Episode:  parsed.Episode,
		Quality:  parsed.Quality,
		Language: parsed.Language,
		Title:    parsed.Title,
	}
	episode.Files = append(episode.Files, EpisodeFile{
		File:     file,
		Quality:  parsed.Quality,
		Language: parsed.Language,
	})

	if adoptTitle(episode.CommonTitle, parsed.Title) {
		episode.CommonTitle = parsed.Title
	}
}

// adoptTitle implements the "best non-blank, longest" rule
func adoptTitle(current, candidate *string) bool {
	if isBlank(candidate) {
		return false
	}
	if isBlank(current) {
		return true
	}
	return utf8.RuneCountInString(*candidate) > utf8.RuneCountInString(*current)
}

func isBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

// SortedSeasons returns the seasons by ascending number
func (idx *Index) SortedSeasons() []*Season {
	seasons := make([]*Season, 0, len(idx.Seasons))
	for _, s := range idx.Seasons {
		seasons = append(seasons, s)
	}
	sort.Slice(seasons, func(i, j int) bool {
		return seasons[i].Number < seasons[j].Number
	})
	return seasons
}

// SortedEpisodes returns the episodes of season number, ascending.
// Unknown seasons yield nil.
func (idx *Index) SortedEpisodes(season int) []*Episode {
	s, ok := idx.Seasons[season]
	if !ok {
		return nil
	}
	return s.SortedEpisodes()
}

// Episode looks up a single episode
func (idx *Index) Episode(season, episode int) (*Episode, bool) {
	s, ok := idx.Seasons[season]
	if !ok {
		return nil, false
	}
	ep, ok := s.Episodes[episode]
	return ep, ok
}

// EpisodeCount returns the number of distinct episodes across all seasons
func (idx *Index) EpisodeCount() int {
	n := 0
	for _, s := range idx.Seasons {
		n += len(s.Episodes)
	}
	return n
}

// FileCount returns the number of attached files
func (idx *Index) FileCount() int {
	n := 0
	for _, s := range idx.Seasons {
		for _, ep := range s.Episodes {
			n += len(ep.Files)
		}
	}
	return n
}

// Reset drops all seasons, e.g. when a new search starts
func (idx *Index) Reset(title string) {
	idx.Title = title
	idx.Seasons = make(map[int]*Season)
}
