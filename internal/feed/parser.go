// Package feed turns raw RSS/Atom bytes into fixed-shape entries and hosts
// the per-publisher strategies that pull links, titles and summaries out of
// them.
package feed

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// Entry is one feed item reduced to the fields the normalizer reads.
// Nothing past this package sees gofeed types.
type Entry struct {
	Title       string
	Link        string
	Links       []string
	OrigLink    string
	GUID        string
	Description string
	Content     string

	Published string
	Updated   string
	DCDate    string

	PublishedParsed *time.Time
	UpdatedParsed   *time.Time
}

// Document is a parsed feed with its entries in feed order.
type Document struct {
	Title   string
	BaseURL string
	Entries []Entry
}

// Parse decodes an RSS or Atom payload. At most maxEntries entries are kept
// when maxEntries > 0.
func Parse(body []byte, feedURL string, maxEntries int) (*Document, error) {
	f, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := f.Items
	if maxEntries > 0 && len(items) > maxEntries {
		items = items[:maxEntries]
	}

	doc := &Document{
		Title:   strings.TrimSpace(f.Title),
		BaseURL: feedURL,
		Entries: make([]Entry, 0, len(items)),
	}
	if isAbsolute(f.Link) {
		doc.BaseURL = strings.TrimSpace(f.Link)
	}

	for _, item := range items {
		if item == nil {
			continue
		}
		doc.Entries = append(doc.Entries, toEntry(item))
	}

	return doc, nil
}

func toEntry(item *gofeed.Item) Entry {
	e := Entry{
		Title:           item.Title,
		Link:            strings.TrimSpace(item.Link),
		Links:           item.Links,
		GUID:            strings.TrimSpace(item.GUID),
		Description:     item.Description,
		Content:         item.Content,
		Published:       strings.TrimSpace(item.Published),
		Updated:         strings.TrimSpace(item.Updated),
		PublishedParsed: item.PublishedParsed,
		UpdatedParsed:   item.UpdatedParsed,
		OrigLink:        origLink(item),
	}
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Date) > 0 {
		e.DCDate = strings.TrimSpace(item.DublinCoreExt.Date[0])
	}
	return e
}

// origLink reads the feedburner alias that proxied feeds put next to the
// redirecting <link>.
func origLink(item *gofeed.Item) string {
	ns, ok := item.Extensions["feedburner"]
	if !ok {
		return ""
	}
	for _, key := range []string{"origLink", "origlink"} {
		for _, ext := range ns[key] {
			if v := strings.TrimSpace(ext.Value); v != "" {
				return v
			}
		}
	}
	return ""
}
