// Package classify turns uploader file names into season/episode, quality
// and language information.
package classify

import (
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Video file extensions
var videoExtensions = map[string]bool{
	".mkv": true, ".mp4": true, ".avi": true, ".wmv": true,
	".mov": true, ".m4v": true, ".webm": true, ".ts": true,
	".m2ts": true, ".vob": true, ".flv": true, ".divx": true,
}

// Subtitle file extensions
var subtitleExtensions = map[string]bool{
	".srt": true, ".sub": true, ".ass": true, ".ssa": true,
	".vtt": true, ".idx": true, ".smi": true,
}

// Classify extracts season, episode, quality and a leftover episode title
// from fileName. seriesTitle is removed from the title residue.
//
// Returns nil when no season/episode pattern matches, even if a quality
// token was found. Language is left nil; see DetectLanguage.
func Classify(fileName, seriesTitle string) *ParsedEpisodeInfo {
	quality, qualitySpan := detectQuality(fileName)

	for _, ep := range episodePatterns {
		m := ep.pattern.FindStringSubmatchIndex(fileName)
		if m == nil {
			continue
		}

		season, err := strconv.Atoi(fileName[m[4]:m[5]])
		if err != nil {
			return nil
		}
		episode, err := strconv.Atoi(fileName[m[6]:m[7]])
		if err != nil {
			return nil
		}

		return &ParsedEpisodeInfo{
			Season:  season,
			Episode: episode,
			Quality: quality,
			Title:   extractTitle(fileName, seriesTitle, span{m[2], m[3]}, qualitySpan),
			Pattern: ep.name,
		}
	}

	return nil
}

// span is a byte range [start, end) of a file name. The zero span is empty.
type span struct {
	start, end int
}

// DetectQuality returns the upper-cased quality token of fileName, or nil.
func DetectQuality(fileName string) *string {
	q, _ := detectQuality(fileName)
	return q
}

// detectQuality also returns where the token was matched so exactly that
// occurrence can be cut from the title residue
func detectQuality(fileName string) (*string, span) {
	for _, qp := range qualityPatterns {
		if m := qp.pattern.FindStringSubmatchIndex(fileName); m != nil {
			return strPtr(strings.ToUpper(fileName[m[2]:m[3]])), span{m[2], m[3]}
		}
	}
	return nil, span{}
}

// DetectLanguage scans fileName for dubbing/subtitle language markers.
// Returns nil when nothing is recognised.
func DetectLanguage(fileName string) *string {
	for _, lp := range languagePatterns {
		if lp.pattern.MatchString(fileName) {
			return strPtr(lp.language)
		}
	}
	return nil
}

// extractTitle cuts the matched episode marker and quality token out of
// fileName, removes the series title and cleans up what is left. Never
// fails; an empty residue is reported as nil.
func extractTitle(fileName, seriesTitle string, marker, quality span) *string {
	residue := cutSpans(fileName, marker, quality)

	if re := seriesTitlePattern(seriesTitle); re != nil {
		residue = re.ReplaceAllLiteralString(residue, " ")
	}
	residue = trimMediaExtension(residue)
	residue = separatorRun.ReplaceAllLiteralString(residue, " ")
	residue = strings.Trim(residue, " -.")

	if residue == "" {
		return nil
	}
	return &residue
}

// cutSpans replaces each non-empty span of s with a single space.
// Overlapping spans are merged; cutting runs from the end so earlier
// offsets stay valid.
func cutSpans(s string, spans ...span) string {
	cuts := make([]span, 0, len(spans))
	for _, sp := range spans {
		if sp.end > sp.start {
			cuts = append(cuts, sp)
		}
	}
	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start < cuts[j].start })

	merged := cuts[:0]
	for _, sp := range cuts {
		if n := len(merged); n > 0 && sp.start <= merged[n-1].end {
			merged[n-1].end = max(merged[n-1].end, sp.end)
			continue
		}
		merged = append(merged, sp)
	}

	for i := len(merged) - 1; i >= 0; i-- {
		s = s[:merged[i].start] + " " + s[merged[i].end:]
	}
	return s
}

// seriesTitlePattern matches seriesTitle case-insensitively with any run of
// separators between its words, so "Star Trek" also matches "star.trek".
func seriesTitlePattern(seriesTitle string) *regexp.Regexp {
	words := strings.FieldsFunc(seriesTitle, isTitleSeparator)
	if len(words) == 0 {
		return nil
	}
	for i, w := range words {
		words[i] = regexp.QuoteMeta(w)
	}
	re, err := regexp.Compile(`(?i)` + strings.Join(words, titleSeparators))
	if err != nil {
		return nil
	}
	return re
}

func isTitleSeparator(r rune) bool {
	return r == '.' || r == '_' || r == '-' || unicode.IsSpace(r)
}

func trimMediaExtension(s string) string {
	for _, ext := range mediaExtensions {
		if len(s) >= len(ext) && strings.EqualFold(s[len(s)-len(ext):], ext) {
			return s[:len(s)-len(ext)]
		}
	}
	return s
}

// FileKind is the media kind of a file, judged by its extension
type FileKind string

const (
	KindVideo    FileKind = "video"
	KindSubtitle FileKind = "subtitle"
	KindOther    FileKind = "other"
)

// KindOf returns the media kind of path
func KindOf(path string) FileKind {
	switch {
	case IsVideoFile(path):
		return KindVideo
	case IsSubtitleFile(path):
		return KindSubtitle
	default:
		return KindOther
	}
}

// IsVideoFile checks if the file is a video file based on extension
func IsVideoFile(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// IsSubtitleFile checks if the file is a subtitle file based on extension
func IsSubtitleFile(path string) bool {
	return subtitleExtensions[strings.ToLower(filepath.Ext(path))]
}
