package feed

import "strings"

// NoTitle is used when an entry has neither a title nor a link.
const NoTitle = "[No title]"

// Generic handles plain RSS 2.0 and Atom feeds.
type Generic struct{}

func (Generic) Name() string { return "generic" }

// ExtractLink tries the direct link, the alternate links, the feedburner
// alias, the GUID and finally the first anchor of the summary body.
// Relative candidates are resolved against base. A GUID is resolved only when
// it is a path; opaque ids such as tag: URIs are never links.
func (Generic) ExtractLink(e Entry, base string) string {
	candidates := make([]string, 0, len(e.Links)+3)
	candidates = append(candidates, e.Link)
	candidates = append(candidates, e.Links...)
	candidates = append(candidates, e.OrigLink)

	for _, c := range candidates {
		if u := resolve(c, base); isAbsolute(u) {
			return u
		}
	}

	if guid := strings.TrimSpace(e.GUID); isAbsolute(guid) {
		return guid
	} else if isPath(guid) {
		if u := resolve(guid, base); isAbsolute(u) {
			return u
		}
	}

	if u := resolve(firstAnchor(summaryHTML(e)), base); isAbsolute(u) {
		return u
	}
	return ""
}

func (Generic) NormalizeTitle(e Entry, link string) string {
	if t := strings.TrimSpace(e.Title); t != "" {
		return t
	}
	if l := strings.TrimSpace(link); l != "" {
		return l
	}
	return NoTitle
}

func (Generic) ExtractSummaryFields(e Entry, _ string, maxLen int) Summary {
	raw := summaryHTML(e)
	return Summary{
		Text: Truncate(CleanHTML(raw), maxLen),
		HTML: raw,
	}
}

func isPath(raw string) bool {
	return strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "./") || strings.HasPrefix(raw, "../")
}

// summaryHTML prefers the description and falls back to the full content.
func summaryHTML(e Entry) string {
	if strings.TrimSpace(e.Description) != "" {
		return e.Description
	}
	if strings.TrimSpace(e.Content) != "" {
		return e.Content
	}
	return ""
}
