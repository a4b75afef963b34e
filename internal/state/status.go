// package state holds the last-known value of each remote resource and
// orchestrates the fetch/command lifecycle around the backend client.
package state

// Status is the fetch lifecycle state of a resource slice. Exactly one status
// holds at any time.
type Status string

const (
	// StatusIdle means the slice holds the last successful value (or its
	// empty value) and no fetch is in flight.
	StatusIdle Status = "idle"

	// StatusLoading means a fetch has been issued and not yet resolved.
	StatusLoading Status = "loading"

	// StatusFailed means the most recent fetch resolved with an error; the
	// previous value is retained.
	StatusFailed Status = "failed"
)

// String returns the string representation of the Status
func (s Status) String() string {
	return string(s)
}
