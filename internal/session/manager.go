package session

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lacroixthomas/spotify-app/internal/shared"
	"golang.org/x/oauth2"
)

// tokenParam is the fragment parameter carrying the credential in an
// implicit-grant redirect.
const tokenParam = "access_token"

// Manager owns the current credential. It is the only component that mutates
// it; every other component receives the credential as an explicit value or
// observes changes through [Manager.Subscribe].
type Manager struct {
	store  Store
	logger *log.Logger

	mu         sync.Mutex
	credential string
	subs       []chan string
}

// NewManager creates a session manager backed by the given [Store].
func NewManager(store Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{store: store, logger: logger}
}

// Acquire establishes the session credential at startup.
//
// The redirect fragment is consulted first: if it carries an access token the
// token is adopted and persisted so a later reload is idempotent. The caller
// is responsible for clearing the fragment from the visible location exactly
// once when Acquire reports it was consumed. A fragment without the expected
// parameter shape never errors; Acquire falls through to the store. When
// neither source yields a credential the session is unauthenticated and
// Acquire returns "".
func (m *Manager) Acquire(fragment string) (string, error) {
	if token := ParseFragment(fragment)[tokenParam]; token != "" {
		if err := m.Adopt(token); err != nil {
			return "", err
		}
		m.logger.Info("session established from redirect fragment")
		return token, nil
	}

	token, err := m.store.Load()
	if err != nil {
		return "", fmt.Errorf("failed to load stored credential: %w", err)
	}
	if token != "" {
		m.publish(token)
		m.logger.Debug("session restored from store")
	}
	return token, nil
}

// Adopt persists the credential and publishes it to subscribers.
func (m *Manager) Adopt(credential string) error {
	if credential == "" {
		return shared.ErrInvalidInput
	}
	if err := m.store.Save(credential); err != nil {
		return fmt.Errorf("failed to persist credential: %w", err)
	}
	m.publish(credential)
	return nil
}

// LogOut clears the persisted credential and publishes the empty credential.
// Dependent resources observe the change and reset.
func (m *Manager) LogOut() error {
	if err := m.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear credential: %w", err)
	}
	m.publish("")
	m.logger.Info("session cleared")
	return nil
}

// Credential returns the current credential value. Reading never blocks on
// I/O and never fails; "" means no session.
func (m *Manager) Credential() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.credential
}

// Subscribe returns a channel receiving credential changes. The channel holds
// only the latest value: an unread stale value is replaced rather than
// blocking the writer.
func (m *Manager) Subscribe() <-chan string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan string, 1)
	m.subs = append(m.subs, ch)
	return ch
}

func (m *Manager) publish(credential string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.credential = credential
	for _, ch := range m.subs {
		select {
		case <-ch:
		default:
		}
		ch <- credential
	}
}

// AuthorizeURL builds the identity provider's implicit-grant authorization
// URL. The state parameter must be validated when the redirect returns.
func AuthorizeURL(cfg shared.SpotifyConfig, state string) string {
	oc := &oauth2.Config{
		ClientID:    cfg.ClientID,
		RedirectURL: cfg.RedirectURI,
		Scopes:      cfg.Scopes,
		Endpoint:    oauth2.Endpoint{AuthURL: cfg.AuthURL},
	}

	// Implicit grant: the token comes back in the redirect fragment instead
	// of an authorization code.
	return oc.AuthCodeURL(state, oauth2.SetAuthURLParam("response_type", "token"))
}
