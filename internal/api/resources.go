package api

import (
	"encoding/json"
	"fmt"
)

// User is the current user's profile as exposed by the backend.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ImageURL    string `json:"imageUrl"`
}

// Player is the now-playing state. Artists is never nil after normalization.
type Player struct {
	ID          string   `json:"id"`
	IsPlaying   bool     `json:"isPlaying"`
	AlbumName   string   `json:"albumName"`
	MusicName   string   `json:"musicName"`
	Artists     []string `json:"artists"`
	ReleaseDate string   `json:"releaseDate"`
	Progress    int      `json:"progress"`
	Duration    int      `json:"duration"`
}

// PlaylistItem is one playlist in the user's collection.
type PlaylistItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OwnerName string `json:"ownerName"`
	ImageURL  string `json:"imageUrl"`
	URI       string `json:"uri"`
}

// NormalizeUser maps the backend's /user payload onto [User].
func NormalizeUser(data []byte) (User, error) {
	var raw struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Image string `json:"image"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return User{}, fmt.Errorf("failed to decode user payload: %w", err)
	}

	return User{ID: raw.ID, DisplayName: raw.Name, ImageURL: raw.Image}, nil
}

// NormalizePlayer maps the backend's /player payload onto [Player].
//
// Two response shapes exist historically: a flat one carrying album_name,
// music_name and artists_name, and one nesting track details under item.
// Fields missing from the flat shape are filled from item; every optional
// field has a default and artists normalize to an empty slice.
func NormalizePlayer(data []byte) (Player, error) {
	var raw struct {
		ID          string   `json:"id"`
		LegacyID    string   `json:"ID"`
		IsPlaying   bool     `json:"is_playing"`
		AlbumName   string   `json:"album_name"`
		MusicName   string   `json:"music_name"`
		ArtistsName []string `json:"artists_name"`
		ReleaseDate string   `json:"release_date"`
		Progress    int      `json:"progress"`
		ProgressMS  int      `json:"progress_ms"`
		Duration    int      `json:"duration"`
		Item        *struct {
			ID         string `json:"id"`
			Name       string `json:"name"`
			DurationMS int    `json:"duration_ms"`
			Artists    []struct {
				Name string `json:"name"`
			} `json:"artists"`
			Album struct {
				Name        string `json:"name"`
				ReleaseDate string `json:"release_date"`
			} `json:"album"`
		} `json:"item"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Player{}, fmt.Errorf("failed to decode player payload: %w", err)
	}

	player := Player{
		ID:          raw.ID,
		IsPlaying:   raw.IsPlaying,
		AlbumName:   raw.AlbumName,
		MusicName:   raw.MusicName,
		Artists:     raw.ArtistsName,
		ReleaseDate: raw.ReleaseDate,
		Progress:    raw.Progress,
		Duration:    raw.Duration,
	}

	if player.ID == "" {
		player.ID = raw.LegacyID
	}
	if player.Progress == 0 {
		player.Progress = raw.ProgressMS
	}

	if raw.Item != nil {
		if player.ID == "" {
			player.ID = raw.Item.ID
		}
		if player.MusicName == "" {
			player.MusicName = raw.Item.Name
		}
		if player.AlbumName == "" {
			player.AlbumName = raw.Item.Album.Name
		}
		if player.ReleaseDate == "" {
			player.ReleaseDate = raw.Item.Album.ReleaseDate
		}
		if player.Duration == 0 {
			player.Duration = raw.Item.DurationMS
		}
		if len(player.Artists) == 0 {
			for _, artist := range raw.Item.Artists {
				player.Artists = append(player.Artists, artist.Name)
			}
		}
	}

	if player.Artists == nil {
		player.Artists = []string{}
	}

	return player, nil
}

// NormalizePlaylists maps the backend's /playlist payload onto a
// [PlaylistItem] sequence, preserving server order.
func NormalizePlaylists(data []byte) ([]PlaylistItem, error) {
	var raw []struct {
		ID        string `json:"ID"`
		Name      string `json:"name"`
		OwnerName string `json:"owner_name"`
		Image     string `json:"image"`
		URI       string `json:"uri"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode playlist payload: %w", err)
	}

	playlists := []PlaylistItem{}
	for _, item := range raw {
		playlists = append(playlists, PlaylistItem{
			ID:        item.ID,
			Name:      item.Name,
			OwnerName: item.OwnerName,
			ImageURL:  item.Image,
			URI:       item.URI,
		})
	}

	return playlists, nil
}
