package feed

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/yzhyun/NextPicker/internal/domain"
)

var publisherSuffix = regexp.MustCompile(`\s+-\s+[^-]{2,40}$`)

// GoogleNews handles news.google.com aggregate feeds, whose links go through
// a redirector and whose descriptions are lists of related coverage.
type GoogleNews struct {
	Generic
}

func (GoogleNews) Name() string { return "google_news" }

func (g GoogleNews) ExtractLink(e Entry, base string) string {
	return preferOriginal(g.Generic.ExtractLink(e, base))
}

// NormalizeTitle drops the " - Publisher" tail Google appends to titles.
func (g GoogleNews) NormalizeTitle(e Entry, link string) string {
	title := g.Generic.NormalizeTitle(e, link)
	if strings.TrimSpace(e.Title) == "" {
		return title
	}
	if stripped := strings.TrimSpace(publisherSuffix.ReplaceAllString(title, "")); stripped != "" {
		return stripped
	}
	return title
}

func (g GoogleNews) ExtractSummaryFields(e Entry, base string, maxLen int) Summary {
	s := g.Generic.ExtractSummaryFields(e, base, maxLen)
	s.Related = relatedItems(s.HTML, base)
	return s
}

// relatedItems reads <li><a href>title</a> <font>source</font></li> blocks.
func relatedItems(body, base string) []domain.RelatedItem {
	if !strings.Contains(body, "<li") {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	var items []domain.RelatedItem
	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		if a.Length() == 0 {
			return
		}
		href, _ := a.Attr("href")
		href = preferOriginal(resolve(href, base))
		if href == "" {
			return
		}
		items = append(items, domain.RelatedItem{
			Title:  strings.Join(strings.Fields(a.Text()), " "),
			Source: strings.Join(strings.Fields(li.Find("font").First().Text()), " "),
			URL:    href,
		})
	})
	return items
}

// preferOriginal unwraps the url= or u= parameter of a news.google.com link.
func preferOriginal(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || !strings.HasSuffix(strings.ToLower(u.Hostname()), "news.google.com") {
		return raw
	}
	q := u.Query()
	for _, key := range []string{"url", "u"} {
		if v := q.Get(key); isAbsolute(v) {
			return v
		}
	}
	return raw
}
