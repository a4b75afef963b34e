package ui

import (
	"github.com/charmbracelet/bubbles/list"

	"github.com/lacroixthomas/spotify-app/internal/api"
)

// playlistItem adapts an [api.PlaylistItem] to the bubbles list component.
type playlistItem struct {
	item api.PlaylistItem
}

func (p playlistItem) FilterValue() string { return p.item.Name }

func (p playlistItem) Title() string { return p.item.Name }

func (p playlistItem) Description() string {
	if p.item.OwnerName == "" {
		return p.item.URI
	}
	return "by " + p.item.OwnerName
}

func newPlaylistList(items []api.PlaylistItem, width, height int) list.Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	entries := make([]list.Item, 0, len(items))
	for _, it := range items {
		entries = append(entries, playlistItem{item: it})
	}

	l := list.New(entries, list.NewDefaultDelegate(), width, height)
	l.Title = "Playlists"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return l
}
