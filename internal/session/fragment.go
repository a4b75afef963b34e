// package session owns the credential lifecycle: redirect-fragment parsing,
// durable storage, and the single writer publishing credential changes.
package session

import (
	"net/url"
	"strings"
)

// ParseFragment extracts key/value parameters from a URL fragment (the string
// after "#") as delivered by an implicit-grant authorization redirect.
//
// Fields are separated by "&" and split on the first "=". Values are
// URL-decoded; a value that fails to decode is kept raw. Fields without "="
// are ignored and duplicate keys resolve to the last occurrence. An empty
// fragment yields an empty map.
func ParseFragment(fragment string) map[string]string {
	params := map[string]string{}

	for _, field := range strings.Split(fragment, "&") {
		if field == "" {
			continue
		}

		key, value, found := strings.Cut(field, "=")
		if !found || key == "" {
			continue
		}

		if decoded, err := url.QueryUnescape(value); err == nil {
			value = decoded
		}
		params[key] = value
	}

	return params
}
