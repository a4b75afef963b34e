package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/lacroixthomas/spotify-app/internal/api"
	"github.com/lacroixthomas/spotify-app/internal/session"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"github.com/lacroixthomas/spotify-app/internal/state"
)

// ViewState selects which screen the model renders.
type ViewState int

const (
	ViewAuth ViewState = iota
	ViewPlayer
	ViewPlaylists
)

type (
	credentialMsg string
	tickMsg       time.Time
	fetchedMsg    struct{ err error }
)

const tickInterval = time.Second

// Model binds the terminal views to the session manager and resource store.
type Model struct {
	ctx     context.Context
	session *session.Manager
	store   *state.Store
	poller  *state.Poller
	handle  *state.Handle

	credential string
	updates    <-chan string
	loginURL   string
	view       ViewState

	playlists     list.Model
	playlistItems []api.PlaylistItem
	help          help.Model
	keys          keyMap

	width  int
	height int

	logger *log.Logger
	err    error
}

func NewModel(ctx context.Context, sess *session.Manager, store *state.Store, poller *state.Poller, loginURL string, logger *log.Logger) Model {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	m := Model{
		ctx:       ctx,
		session:   sess,
		store:     store,
		poller:    poller,
		updates:   sess.Subscribe(),
		loginURL:  loginURL,
		view:      ViewAuth,
		playlists: newPlaylistList(nil, 0, 0),
		help:      help.New(),
		keys:      newKeyMap(),
		logger:    logger,
	}

	if credential := sess.Credential(); credential != "" {
		m.credential = credential
		m.view = ViewPlayer
	}

	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForCredential(), tick()}
	if m.credential != "" {
		// Route the restored credential through the update loop so the poll
		// handle lands on the model bubbletea keeps.
		credential := m.credential
		cmds = append(cmds, func() tea.Msg { return credentialMsg(credential) })
	}
	return tea.Batch(cmds...)
}

// waitForCredential blocks on the session subscription and forwards the next
// published value into the update loop.
func (m Model) waitForCredential() tea.Cmd {
	updates := m.updates
	return func() tea.Msg {
		return credentialMsg(<-updates)
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// startSession begins polling the player and refreshes every slice once so
// the first render has data.
func (m *Model) startSession() tea.Cmd {
	m.handle = m.poller.Start(m.ctx, m.credential)

	ctx, credential := m.ctx, m.credential
	store := m.store
	return func() tea.Msg {
		return fetchedMsg{err: store.FetchAll(ctx, credential)}
	}
}

func (m *Model) endSession() {
	m.poller.Stop(m.handle)
	m.handle = nil
	m.store.ResetAll()
	m.credential = ""
	m.view = ViewAuth
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.playlists.SetSize(msg.Width-4, msg.Height-6)
		return m, nil

	case credentialMsg:
		return m.updateCredential(string(msg))

	case tickMsg:
		m.syncPlaylists()
		return m, tick()

	case fetchedMsg:
		if msg.err != nil {
			m.logger.Warnf("fetch failed %v", msg.err)
		}
		m.err = msg.err
		m.syncPlaylists()
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateCredential(credential string) (tea.Model, tea.Cmd) {
	if credential == "" {
		m.endSession()
		return m, m.waitForCredential()
	}

	m.credential = credential
	m.view = ViewPlayer
	m.err = nil
	return m, tea.Batch(m.startSession(), m.waitForCredential())
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// List filtering owns the keyboard while active.
	if m.view == ViewPlaylists && m.playlists.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.playlists, cmd = m.playlists.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.tab):
		if m.credential == "" {
			return m, nil
		}
		if m.view == ViewPlayer {
			m.view = ViewPlaylists
		} else {
			m.view = ViewPlayer
		}
		return m, nil

	case key.Matches(msg, m.keys.logout):
		if m.credential == "" {
			return m, nil
		}
		if err := m.session.LogOut(); err != nil {
			m.err = err
		}
		return m, nil

	case key.Matches(msg, m.keys.toggle):
		return m, m.dispatch(func(ctx context.Context, credential string) error {
			return m.store.TogglePlayback(ctx, credential)
		})

	case key.Matches(msg, m.keys.next):
		return m, m.dispatch(m.store.Next)

	case key.Matches(msg, m.keys.prev):
		return m, m.dispatch(m.store.Previous)

	case key.Matches(msg, m.keys.enter):
		if m.view != ViewPlaylists {
			return m, nil
		}
		item, ok := m.playlists.SelectedItem().(playlistItem)
		if !ok || item.item.URI == "" {
			return m, nil
		}
		uri := item.item.URI
		return m, m.dispatch(func(ctx context.Context, credential string) error {
			return m.store.StartPlaylist(ctx, credential, uri)
		})
	}

	if m.view == ViewPlaylists {
		var cmd tea.Cmd
		m.playlists, cmd = m.playlists.Update(msg)
		return m, cmd
	}

	return m, nil
}

// dispatch runs a playback command off the update loop and reports its error.
func (m Model) dispatch(command func(context.Context, string) error) tea.Cmd {
	if m.credential == "" {
		return nil
	}
	ctx, credential := m.ctx, m.credential
	return func() tea.Msg {
		return fetchedMsg{err: command(ctx, credential)}
	}
}

// syncPlaylists mirrors the playlists slice into the list component whenever
// its contents change. A poll returning an identical set never rebuilds the
// list, so the selection survives refreshes.
func (m *Model) syncPlaylists() {
	items, _ := m.store.Playlists.Snapshot()
	if samePlaylists(items, m.playlistItems) {
		return
	}
	selected := m.playlists.Index()
	m.playlists = newPlaylistList(items, m.width-4, m.height-6)
	m.playlistItems = items
	if selected < len(items) {
		m.playlists.Select(selected)
	}
}

func samePlaylists(a, b []api.PlaylistItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (m Model) View() string {
	var body string
	switch m.view {
	case ViewAuth:
		body = m.viewAuth()
	case ViewPlaylists:
		body = m.playlists.View()
	default:
		body = m.viewPlayer()
	}

	var b strings.Builder
	b.WriteString(body)
	if m.err != nil {
		b.WriteString("\n" + styles.err.Render(m.err.Error()))
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m Model) viewAuth() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Spotify") + "\n")
	b.WriteString("Not logged in. Open the link below to authorize:\n\n")
	b.WriteString(styles.ok.Render(m.loginURL) + "\n")
	return b.String()
}

func (m Model) viewPlayer() string {
	player, status := m.store.Player.Snapshot()
	user, _ := m.store.User.Snapshot()

	var b strings.Builder
	title := "Now Playing"
	if user.DisplayName != "" {
		title = fmt.Sprintf("Now Playing · %s", user.DisplayName)
	}
	b.WriteString(styles.title.Render(title) + "\n")

	switch status {
	case state.StatusLoading:
		b.WriteString(styles.warn.Render("Loading player state...") + "\n")
		return b.String()
	case state.StatusFailed:
		b.WriteString(styles.err.Render("Player state unavailable") + "\n")
		return b.String()
	}

	if player.MusicName == "" {
		b.WriteString(styles.help.Render("Nothing playing") + "\n")
		return b.String()
	}

	b.WriteString(styles.ok.Render(player.MusicName) + "\n")
	if len(player.Artists) > 0 {
		b.WriteString(strings.Join(player.Artists, ", ") + "\n")
	}
	if player.AlbumName != "" {
		album := player.AlbumName
		if player.ReleaseDate != "" {
			album = fmt.Sprintf("%s (%s)", album, player.ReleaseDate)
		}
		b.WriteString(styles.help.Render(album) + "\n")
	}

	marker := "⏸"
	if player.IsPlaying {
		marker = "▶"
	}
	b.WriteString(fmt.Sprintf("\n%s %s\n", marker, progressLine(player.Progress, player.Duration, 30)))
	return b.String()
}

// progressLine renders "mm:ss [=====-----] mm:ss" for a track position.
func progressLine(progress, duration, width int) string {
	if duration <= 0 {
		return formatDuration(progress)
	}
	if progress < 0 {
		progress = 0
	}
	if progress > duration {
		progress = duration
	}
	filled := progress * width / duration
	bar := strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
	return fmt.Sprintf("%s [%s] %s", formatDuration(progress), bar, formatDuration(duration))
}

func formatDuration(ms int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
