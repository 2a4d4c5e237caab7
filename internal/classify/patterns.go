package classify

import "regexp"

// Token boundaries. Go regexp has no lookaround, so boundaries are consumed
// and the interesting part is captured.
const (
	pre  = `(?:^|[^\pL\pN])`
	post = `(?:[^\pL\pN]|$)`
)

// qualityPattern captures the quality token in group 1
type qualityPattern struct {
	name    string
	pattern *regexp.Regexp
}

// qualityPatterns are probed in order; the first match wins.
var qualityPatterns = []qualityPattern{
	{"2160p", regexp.MustCompile(`(?i)` + pre + `(4K|2160p)` + post)},
	{"1080p", regexp.MustCompile(`(?i)` + pre + `(1080p|FullHD)` + post)},
	{"720p", regexp.MustCompile(`(?i)` + pre + `(720p|HD)` + post)},
	{"SD", regexp.MustCompile(`(?i)` + pre + `(DVDRip|SD|480p|576p)` + post)},
	{"WEB", regexp.MustCompile(`(?i)` + pre + `(WEB-DL|WEBDL|WEB)` + post)},
	{"BluRay", regexp.MustCompile(`(?i)` + pre + `(BluRay|BRRip|BDRip)` + post)},
	{"HDTV", regexp.MustCompile(`(?i)` + pre + `(HDTV|PDTV)` + post)},
	{"REMUX", regexp.MustCompile(`(?i)` + pre + `(REMUX)` + post)},
	{"HDR", regexp.MustCompile(`(?i)` + pre + `(HDR)` + post)},
	{"DV", regexp.MustCompile(`(?i)` + pre + `(DV|Dolby[ ._-]?Vision)` + post)},
}

// episodePattern captures the removable marker in group 1, the season in
// group 2 and the episode in group 3.
type episodePattern struct {
	name    string
	pattern *regexp.Regexp
}

// episodePatterns go from most to least specific. The order is load-bearing:
// the bare N-M form would otherwise claim resolutions, years and ranges.
var episodePatterns = []episodePattern{
	// S01E02, s1e2, S01.E02
	{"SxxEyy", regexp.MustCompile(`(?i)(S(\d{1,3})[ ._]?E(\d{1,3}))`)},
	// 1x01
	{"NxM", regexp.MustCompile(`(?i)` + pre + `((\d{1,2})x(\d{1,3}))` + post)},
	// Season 1 Episode 2
	{"Season N Episode M", regexp.MustCompile(`(?i)(Season[ ._-]*(\d{1,3})[ ._-]*Episode[ ._-]*(\d{1,3}))`)},
	// Série 1 Epizoda 2, Séria 1 Epizóda 2
	{"Serie N Epizoda M", regexp.MustCompile(`(?i)(S[eé]ri[eai][ ._-]*(\d{1,3})[ ._-]*Epiz[oó]d[ay]?[ ._-]*(\d{1,3}))`)},
	// 1.série-2.díl
	{"N.serie-M.dil", regexp.MustCompile(`(?i)((\d{1,3})\.?[ ._-]*s[eé]ri[eai][ ._-]*(\d{1,3})\.?[ ._-]*d[ií]l)`)},
	// [1.02]
	{"[N.M]", regexp.MustCompile(`(\[(\d{1,3})\.(\d{1,3})\])`)},
	// 1-02
	{"N-M", regexp.MustCompile(pre + `((\d{1,2})-(\d{1,3}))` + post)},
}

// languagePattern maps a name token to a language label
type languagePattern struct {
	pattern  *regexp.Regexp
	language string
}

// languagePatterns are probed in order; dubbing and subtitle markers come
// before bare language codes so "CZ tit" is not read as a CZ dub.
var languagePatterns = []languagePattern{
	{regexp.MustCompile(`(?i)` + pre + `(?:cz|cze|czech)[ ._-]?(?:tit(?:ulky)?|subs?)` + post), "CZ tit"},
	{regexp.MustCompile(`(?i)` + pre + `(?:sk|slo|slovak)[ ._-]?(?:tit(?:ulky)?|subs?)` + post), "SK tit"},
	{regexp.MustCompile(`(?i)` + pre + `(?:en|eng|english)[ ._-]?(?:tit(?:ulky)?|subs?)` + post), "EN tit"},
	{regexp.MustCompile(`(?i)` + pre + `(?:cz|cze|czech)[ ._-]?dab(?:ing)?` + post), "CZ"},
	{regexp.MustCompile(`(?i)` + pre + `(?:sk|slo|slovak)[ ._-]?dab(?:ing)?` + post), "SK"},
	{regexp.MustCompile(`(?i)` + pre + `titulky` + post), "CZ tit"},
	{regexp.MustCompile(`(?i)` + pre + `(?:cz|cze|czech|cesky|česky|český)` + post), "CZ"},
	{regexp.MustCompile(`(?i)` + pre + `(?:sk|slo|slovak|slovensky|slovenský)` + post), "SK"},
	{regexp.MustCompile(`(?i)` + pre + `(?:en|eng|english)` + post), "EN"},
	{regexp.MustCompile(`(?i)` + pre + `(?:multi|multilang)` + post), "MULTI"},
}

// mediaExtensions are stripped from the tail of the title residue
var mediaExtensions = []string{".mkv", ".avi", ".mp4", ".srt"}

// separatorRun collapses title separators into a single space
var separatorRun = regexp.MustCompile(`[._\-\s]+`)

// titleSeparators sit between words of a series title inside a file name
const titleSeparators = `[ ._\-]+`
