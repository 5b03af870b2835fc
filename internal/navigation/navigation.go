package navigation

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"upkeep-server/internal/catalog"
	"upkeep-server/internal/records/domain"
)

var ErrRouteNotFound = errors.New("route not found")

// RecordLookup tells whether a record exists.
type RecordLookup interface {
	GetRecord(ctx context.Context, entity string, id domain.ID) (domain.Record, error)
}

// Match is the outcome of resolving a dashboard path. When Redirect is set
// the path named a detail record that does not exist and the caller should
// go to the page's list route instead.
type Match struct {
	Page     catalog.Page
	Route    string
	ID       domain.ID
	Redirect string
}

type MenuEntry struct {
	Section string
	Title   string
	Path    string
	Entity  string
}

type Navigator struct {
	pages   map[string]catalog.Page
	details map[string]catalog.Page
	menu    []MenuEntry
	records RecordLookup
}

func NewNavigator(pages []catalog.Page, records RecordLookup) *Navigator {
	n := &Navigator{
		pages:   make(map[string]catalog.Page, len(pages)),
		details: make(map[string]catalog.Page),
		menu:    make([]MenuEntry, 0, len(pages)),
		records: records,
	}

	for _, p := range pages {
		n.pages[p.Path] = p
		if p.DetailPath != "" {
			n.details[p.Path] = p
		}
		n.menu = append(n.menu, MenuEntry{
			Section: p.Section,
			Title:   p.Schema.DisplayNamePlural,
			Path:    p.Path,
			Entity:  p.Schema.Name,
		})
	}
	sort.SliceStable(n.menu, func(i, j int) bool {
		return n.menu[i].Section < n.menu[j].Section
	})

	return n
}

func (n *Navigator) Menu() []MenuEntry {
	return append([]MenuEntry(nil), n.menu...)
}

// Resolve maps a dashboard path to its page. List routes match exactly;
// detail routes are the list route plus one id segment and only exist for
// pages that declare a detail view.
func (n *Navigator) Resolve(ctx context.Context, raw string) (Match, error) {
	cleaned := clean(raw)

	if p, ok := n.pages[cleaned]; ok {
		return Match{Page: p, Route: p.Path}, nil
	}

	parent, id := path.Split(cleaned)
	parent = strings.TrimSuffix(parent, "/")
	p, ok := n.details[parent]
	if !ok || id == "" {
		return Match{}, fmt.Errorf("%w: %s", ErrRouteNotFound, raw)
	}

	match := Match{Page: p, Route: p.DetailPath, ID: domain.ID(id)}
	_, err := n.records.GetRecord(ctx, p.Schema.Name, domain.ID(id))
	if errors.Is(err, domain.ErrRecordNotFound) {
		match.Redirect = p.Path
		return match, nil
	}
	if err != nil {
		return Match{}, fmt.Errorf("looking up %s %s: %w", p.Schema.Name, id, err)
	}

	return match, nil
}

func clean(raw string) string {
	if raw == "" {
		return "/"
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return path.Clean(raw)
}
