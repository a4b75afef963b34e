package server

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/lacroixthomas/spotify-app/internal/session"
	"github.com/lacroixthomas/spotify-app/internal/shared"
)

// TokenResult contains the outcome of an implicit-grant authorization flow.
type TokenResult struct {
	Credential string
	err        error
}

func (t *TokenResult) Error() error {
	return t.err
}

// ImplicitHandler completes the implicit-grant redirect.
//
// /callback serves the page the identity provider redirects to; its script
// clears the URL fragment from the visible location and forwards it to
// /token, where the fragment is parsed, the state validated, and the
// credential sent through the result channel. Only the first capture is
// processed.
type ImplicitHandler struct {
	state      string
	resultChan chan TokenResult
	once       sync.Once
	captureHit bool
	mu         sync.Mutex
}

// NewImplicitHandler creates a handler expecting the given state token. The
// state should be cryptographically random for CSRF protection.
func NewImplicitHandler(state string) *ImplicitHandler {
	return &ImplicitHandler{
		state:      state,
		resultChan: make(chan TokenResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *ImplicitHandler) Routes() []string {
	return []string{"/callback", "/token"}
}

// ServeHTTP dispatches between the callback page and the token capture.
func (h *ImplicitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/callback":
		h.serveCallbackPage(w)
	case "/token":
		h.captureToken(w, r)
	default:
		http.NotFound(w, r)
	}
}

// captureToken receives the forwarded fragment and resolves the flow.
func (h *ImplicitHandler) captureToken(w http.ResponseWriter, r *http.Request) {
	// Only handle the capture once
	h.mu.Lock()
	if h.captureHit {
		h.mu.Unlock()
		http.Error(w, "Authorization already processed", http.StatusBadRequest)
		return
	}
	h.captureHit = true
	h.mu.Unlock()

	params := session.ParseFragment(r.URL.Query().Get("fragment"))

	if state := params["state"]; h.state != "" && state != h.state {
		h.Send(TokenResult{err: shared.ErrStateMismatch})
		http.Error(w, "Invalid state parameter", http.StatusBadRequest)
		return
	}

	token := params["access_token"]
	if token == "" {
		errParam := params["error"]
		h.Send(TokenResult{err: fmt.Errorf("%w: %s", shared.ErrAuthFailed, errParam)})
		http.Error(w, "Authorization failed", http.StatusBadRequest)
		return
	}

	h.Send(TokenResult{Credential: token})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `{"status":"ok"}`)
}

// serveCallbackPage serves the redirect landing page. The script strips the
// fragment from the location before forwarding it, so a reload of the page
// cannot re-trigger adoption.
func (h *ImplicitHandler) serveCallbackPage(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `
<!DOCTYPE html>
<html>
<head>
    <title>Authorization</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: #1DB954; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Authorization</h1>
        <p id="msg">Completing login...</p>
    </div>
    <script>
        (function () {
            var fragment = window.location.hash.substring(1);
            history.replaceState(null, "", window.location.pathname);
            fetch("/token?fragment=" + encodeURIComponent(fragment))
                .then(function (resp) {
                    document.getElementById("msg").textContent = resp.ok
                        ? "You can close this window and return to the terminal."
                        : "Authorization failed.";
                })
                .catch(function () {
                    document.getElementById("msg").textContent = "Authorization failed.";
                });
        })();
    </script>
</body>
</html>
`)
}

// Send sends the token result through the channel (only once).
func (h *ImplicitHandler) Send(result TokenResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

// Result returns the result channel for receiving flow completion.
//
// Channel will receive exactly one result and then be closed.
func (h *ImplicitHandler) Result() <-chan TokenResult {
	return h.resultChan
}
