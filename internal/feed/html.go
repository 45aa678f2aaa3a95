package feed

import (
	"net/url"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Ellipsis marks text cut by Truncate.
const Ellipsis = "…"

// CleanHTML converts an HTML fragment to one line of plain text. Entities are
// decoded, script and style blocks dropped, every tag boundary becomes a
// space and whitespace runs collapse to a single space.
func CleanHTML(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.Join(strings.Fields(s), " ")
	}
	doc.Find("script, style, noscript").Remove()

	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
}

func collectText(n *html.Node, parts *[]string) {
	if n.Type == html.TextNode {
		*parts = append(*parts, n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Truncate cuts s to at most maxLen runes, trims trailing whitespace and
// appends Ellipsis. maxLen <= 0 disables truncation.
func Truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return strings.TrimRightFunc(string(runes[:maxLen]), unicode.IsSpace) + Ellipsis
}

// firstAnchor returns the first non-empty href in an HTML body.
func firstAnchor(body string) string {
	if !strings.Contains(body, "href") {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	var href string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		v, _ := a.Attr("href")
		href = strings.TrimSpace(v)
		return href == ""
	})
	return href
}

func isAbsolute(raw string) bool {
	raw = strings.ToLower(strings.TrimSpace(raw))
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}

// resolve makes raw absolute against base. The result is not guaranteed to
// be absolute; callers check with isAbsolute.
func resolve(raw, base string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || isAbsolute(raw) || base == "" {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	b, err := url.Parse(strings.TrimSpace(base))
	if err != nil {
		return raw
	}
	return b.ResolveReference(ref).String()
}
