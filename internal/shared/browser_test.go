package shared

import (
	"strings"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	setRuntime := func(t *testing.T, goos string) {
		t.Helper()
		previous := getRuntime
		getRuntime = func() string { return goos }
		t.Cleanup(func() { getRuntime = previous })
	}

	cases := map[string]struct {
		name string
		args []string
	}{
		"darwin":  {name: "open", args: []string{"http://example.com"}},
		"linux":   {name: "xdg-open", args: []string{"http://example.com"}},
		"windows": {name: "cmd", args: []string{"/c", "start", "http://example.com"}},
	}

	for goos, want := range cases {
		t.Run(goos, func(t *testing.T) {
			setRuntime(t, goos)

			name, args, err := browserCommand("http://example.com")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if name != want.name {
				t.Errorf("expected launcher %q, got %q", want.name, name)
			}
			if len(args) != len(want.args) {
				t.Fatalf("expected args %v, got %v", want.args, args)
			}
			for i := range args {
				if args[i] != want.args[i] {
					t.Errorf("expected args %v, got %v", want.args, args)
				}
			}
		})
	}

	t.Run("Unsupported Platform", func(t *testing.T) {
		setRuntime(t, "plan9")

		if _, _, err := browserCommand("http://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		} else if !strings.Contains(err.Error(), "plan9") {
			t.Errorf("expected platform in error, got %v", err)
		}
	})

	t.Run("OpenBrowser Propagates Platform Error", func(t *testing.T) {
		setRuntime(t, "plan9")

		if err := OpenBrowser("http://example.com"); err == nil {
			t.Error("expected error for unsupported platform")
		}
	})
}
