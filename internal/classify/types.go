package classify

// ParsedEpisodeInfo is the result of classifying a single file name.
// A nil *ParsedEpisodeInfo means the name carried no season/episode marker.
type ParsedEpisodeInfo struct {
	Season   int     `json:"season"`
	Episode  int     `json:"episode"`
	Quality  *string `json:"quality,omitempty"`
	Language *string `json:"language,omitempty"`
	Title    *string `json:"title,omitempty"`
	Pattern  string  `json:"pattern"` // name of the season/episode rule that matched
}

// WithLanguage returns a copy of p with the language set.
func (p ParsedEpisodeInfo) WithLanguage(lang *string) ParsedEpisodeInfo {
	p.Language = lang
	return p
}

// Deref returns the string behind p, or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func strPtr(s string) *string {
	return &s
}
