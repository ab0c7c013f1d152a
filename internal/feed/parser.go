package feed

import (
	"fmt"
	"io"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/pders01/trss/internal/storage"
)

type Parser struct {
	parser *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		parser: gofeed.NewParser(),
	}
}

// Parse reads an RSS, Atom or JSON feed. Source and Read are left for the
// store to stamp when it merges the candidates.
func (p *Parser) Parse(reader io.Reader) ([]*storage.Item, error) {
	feed, err := p.parser.Parse(reader)
	if err != nil {
		return nil, fmt.Errorf("parsing feed: %w", err)
	}

	items := make([]*storage.Item, 0, len(feed.Items))
	for _, entry := range feed.Items {
		item := &storage.Item{
			Link:    itemLink(entry),
			Title:   strings.TrimSpace(entry.Title),
			Summary: getContent(entry),
		}

		if entry.UpdatedParsed != nil {
			item.Updated = *entry.UpdatedParsed
		} else if entry.PublishedParsed != nil {
			item.Updated = *entry.PublishedParsed
		}

		items = append(items, item)
	}

	return items, nil
}

func getContent(entry *gofeed.Item) string {
	if entry.Content != "" {
		return entry.Content
	}
	return entry.Description
}

// itemLink falls back to a permalink-style GUID when the entry has no link.
func itemLink(entry *gofeed.Item) string {
	if link := strings.TrimSpace(entry.Link); link != "" {
		return link
	}
	guid := strings.TrimSpace(entry.GUID)
	if strings.HasPrefix(guid, "http://") || strings.HasPrefix(guid, "https://") {
		return guid
	}
	return ""
}
