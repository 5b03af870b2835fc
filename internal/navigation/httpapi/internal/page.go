package internal

import (
	"upkeep-server/internal/navigation"
)

type PageResponse struct {
	Route    string `json:"route"`
	Path     string `json:"path"`
	Section  string `json:"section"`
	Title    string `json:"title"`
	Entity   string `json:"entity"`
	RecordID string `json:"record_id,omitempty"`
	Detail   bool   `json:"has_detail"`
}

func ToPageResponse(m navigation.Match) PageResponse {
	return PageResponse{
		Route:    m.Route,
		Path:     m.Page.Path,
		Section:  m.Page.Section,
		Title:    m.Page.Schema.DisplayNamePlural,
		Entity:   m.Page.Schema.Name,
		RecordID: string(m.ID),
		Detail:   m.Page.DetailPath != "",
	}
}

type MenuItemResponse struct {
	Title  string `json:"title"`
	Path   string `json:"path"`
	Entity string `json:"entity"`
}

type MenuSectionResponse struct {
	Section string             `json:"section"`
	Items   []MenuItemResponse `json:"items"`
}

// ToMenuResponse groups consecutive entries of the same section, keeping
// the order of the menu.
func ToMenuResponse(entries []navigation.MenuEntry) []MenuSectionResponse {
	sections := make([]MenuSectionResponse, 0)
	for _, e := range entries {
		if len(sections) == 0 || sections[len(sections)-1].Section != e.Section {
			sections = append(sections, MenuSectionResponse{Section: e.Section})
		}
		last := &sections[len(sections)-1]
		last.Items = append(last.Items, MenuItemResponse{Title: e.Title, Path: e.Path, Entity: e.Entity})
	}
	return sections
}
