package state

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/lacroixthomas/spotify-app/internal/api"
)

// Store aggregates one slice per remote resource kind plus the playback
// operations that write back to the backend.
type Store struct {
	User      *Slice[api.User]
	Player    *Slice[api.Player]
	Playlists *Slice[[]api.PlaylistItem]
}

// NewStore creates the three resource slices over a shared backend client.
func NewStore(client *api.Client, logger *log.Logger) *Store {
	return &Store{
		User:      NewSlice("user", api.PathUser, client, api.NormalizeUser, logger),
		Player:    NewSlice("player", api.PathPlayer, client, api.NormalizePlayer, logger),
		Playlists: NewSlice("playlist", api.PathPlaylist, client, api.NormalizePlaylists, logger),
	}
}

// ResetAll resets every slice to its empty value. Invoked when the credential
// becomes absent.
func (s *Store) ResetAll() {
	s.User.Reset()
	s.Player.Reset()
	s.Playlists.Reset()
}

// FetchAll refreshes every slice once. Each slice resolves independently;
// the first error is returned.
func (s *Store) FetchAll(ctx context.Context, credential string) error {
	var first error
	if err := s.User.Fetch(ctx, credential); err != nil && first == nil {
		first = err
	}
	if err := s.Player.Fetch(ctx, credential); err != nil && first == nil {
		first = err
	}
	if err := s.Playlists.Fetch(ctx, credential); err != nil && first == nil {
		first = err
	}
	return first
}

// Play resumes playback, or starts the context named by uri when non-empty.
// The local isPlaying flag flips optimistically before the server confirms;
// the next poll corrects it if the command did not take.
func (s *Store) Play(ctx context.Context, credential, uri string) error {
	payload := map[string]string{}
	if uri != "" {
		payload["uri"] = uri
	}

	s.Player.Mutate(func(p *api.Player) { p.IsPlaying = true })
	return s.Player.Command(ctx, credential, api.PathPlayerPlay, payload)
}

// Pause pauses playback with the same optimistic local update as [Store.Play].
func (s *Store) Pause(ctx context.Context, credential string) error {
	s.Player.Mutate(func(p *api.Player) { p.IsPlaying = false })
	return s.Player.Command(ctx, credential, api.PathPlayerPause, nil)
}

// TogglePlayback plays or pauses depending on the current local state.
func (s *Store) TogglePlayback(ctx context.Context, credential string) error {
	player, _ := s.Player.Snapshot()
	if player.IsPlaying {
		return s.Pause(ctx, credential)
	}
	return s.Play(ctx, credential, "")
}

// Next skips to the next track. No optimistic update; the next poll picks up
// the new track.
func (s *Store) Next(ctx context.Context, credential string) error {
	return s.Player.Command(ctx, credential, api.PathPlayerNext, nil)
}

// Previous skips to the previous track.
func (s *Store) Previous(ctx context.Context, credential string) error {
	return s.Player.Command(ctx, credential, api.PathPlayerPrev, nil)
}

// StartPlaylist starts playback of the playlist identified by uri.
func (s *Store) StartPlaylist(ctx context.Context, credential, uri string) error {
	return s.Play(ctx, credential, uri)
}
