package ui

import (
	"strings"
	"testing"

	"github.com/lacroixthomas/spotify-app/internal/api"
)

func TestProgressLine(t *testing.T) {
	t.Run("Renders Position And Duration", func(t *testing.T) {
		line := progressLine(60000, 240000, 20)
		if !strings.HasPrefix(line, "1:00 [") {
			t.Errorf("expected position prefix, got %q", line)
		}
		if !strings.HasSuffix(line, "] 4:00") {
			t.Errorf("expected duration suffix, got %q", line)
		}
		if !strings.Contains(line, "=====---------------") {
			t.Errorf("expected quarter-filled bar, got %q", line)
		}
	})

	t.Run("Clamps Position To Duration", func(t *testing.T) {
		line := progressLine(300000, 240000, 10)
		if !strings.Contains(line, "==========") {
			t.Errorf("expected full bar, got %q", line)
		}
	})

	t.Run("Handles Unknown Duration", func(t *testing.T) {
		if got := progressLine(61000, 0, 10); got != "1:01" {
			t.Errorf("expected bare position, got %q", got)
		}
	})
}

func TestFormatDuration(t *testing.T) {
	cases := map[int]string{
		0:      "0:00",
		-5:     "0:00",
		1000:   "0:01",
		59999:  "0:59",
		60000:  "1:00",
		754000: "12:34",
	}

	for ms, want := range cases {
		if got := formatDuration(ms); got != want {
			t.Errorf("formatDuration(%d) = %q, want %q", ms, got, want)
		}
	}
}

func TestSamePlaylists(t *testing.T) {
	base := []api.PlaylistItem{
		{ID: "p1", Name: "Focus", URI: "spotify:playlist:p1"},
		{ID: "p2", Name: "Gym", URI: "spotify:playlist:p2"},
	}

	t.Run("Identical Sets Match", func(t *testing.T) {
		same := []api.PlaylistItem{
			{ID: "p1", Name: "Focus", URI: "spotify:playlist:p1"},
			{ID: "p2", Name: "Gym", URI: "spotify:playlist:p2"},
		}
		if !samePlaylists(base, same) {
			t.Error("expected identical sets to match")
		}
	})

	t.Run("Renamed Entry Differs", func(t *testing.T) {
		renamed := []api.PlaylistItem{
			{ID: "p1", Name: "Deep Focus", URI: "spotify:playlist:p1"},
			{ID: "p2", Name: "Gym", URI: "spotify:playlist:p2"},
		}
		if samePlaylists(base, renamed) {
			t.Error("expected rename with unchanged count to differ")
		}
	})

	t.Run("Reordered Entries Differ", func(t *testing.T) {
		reordered := []api.PlaylistItem{base[1], base[0]}
		if samePlaylists(base, reordered) {
			t.Error("expected reordered set to differ")
		}
	})

	t.Run("Different Lengths Differ", func(t *testing.T) {
		if samePlaylists(base, base[:1]) {
			t.Error("expected shorter set to differ")
		}
	})

	t.Run("Empty Sets Match", func(t *testing.T) {
		if !samePlaylists(nil, []api.PlaylistItem{}) {
			t.Error("expected empty sets to match")
		}
	})
}

func TestPlaylistItem(t *testing.T) {
	item := playlistItem{item: api.PlaylistItem{
		Name:      "Focus",
		OwnerName: "thomas",
		URI:       "spotify:playlist:abc",
	}}

	if item.Title() != "Focus" || item.FilterValue() != "Focus" {
		t.Errorf("unexpected title %q / filter %q", item.Title(), item.FilterValue())
	}

	if item.Description() != "by thomas" {
		t.Errorf("unexpected description %q", item.Description())
	}

	t.Run("Falls Back To URI Without Owner", func(t *testing.T) {
		anon := playlistItem{item: api.PlaylistItem{URI: "spotify:playlist:xyz"}}
		if anon.Description() != "spotify:playlist:xyz" {
			t.Errorf("unexpected description %q", anon.Description())
		}
	})
}
