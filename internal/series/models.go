package series

import (
	"sort"

	"github.com/shapedtime/wsindex/internal/classify"
	"github.com/shapedtime/wsindex/internal/common"
)

// FileEntry is a file as returned by a Webshare search or listing.
// The index only reads it; Annotation is filled on the copy it stores.
type FileEntry struct {
	Ident      string            `json:"ident"`
	Name       string            `json:"name"`
	Size       int64             `json:"size"`
	Password   bool              `json:"password,omitempty"`
	Kind       classify.FileKind `json:"kind,omitempty"` // set by the Organizer
	Annotation *Annotation       `json:"annotation,omitempty"`
}

// Annotation records where a file landed in the series tree
type Annotation struct {
	Series   string  `json:"series"`
	Season   int     `json:"season"`
	Episode  int     `json:"episode"`
	Quality  *string `json:"quality,omitempty"`
	Language *string `json:"language,omitempty"`
	Title    *string `json:"title,omitempty"`
}

// EpisodeFile is one release of an episode
type EpisodeFile struct {
	File     FileEntry
	Quality  *string
	Language *string
}

// Episode groups all releases of one episode number
type Episode struct {
	Season      int
	Number      int
	CommonTitle *string

	// insertion order, unique by FileEntry.Ident
	Files []EpisodeFile
}

// Season holds the episodes of one season keyed by episode number
type Season struct {
	Number   int
	Episodes map[int]*Episode
}

// SortedEpisodes returns the season's episodes by ascending number
func (s *Season) SortedEpisodes() []*Episode {
	episodes := make([]*Episode, 0, len(s.Episodes))
	for _, ep := range s.Episodes {
		episodes = append(episodes, ep)
	}
	sort.Slice(episodes, func(i, j int) bool {
		return episodes[i].Number < episodes[j].Number
	})
	return episodes
}

// Label returns the SxxEyy label of the episode
func (e *Episode) Label() string {
	return "S" + common.PadZero(e.Season, 2) + "E" + common.PadZero(e.Number, 2)
}

// hasFile reports whether a file with ident is already attached
func (e *Episode) hasFile(ident string) bool {
	for _, f := range e.Files {
		if f.File.Ident == ident {
			return true
		}
	}
	return false
}
