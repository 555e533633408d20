// Package credentials abstracts where the trade-site session token comes
// from. The process cannot mint one itself; it has to be handed in from a
// browser session.
package credentials

// Store looks up a credential by site origin and token name.
type Store interface {
	Lookup(origin, name string) (string, bool)
}

// Static serves a single token loaded at startup (from the environment via
// config). An empty token reads as absent.
type Static struct {
	origin string
	name   string
	token  string
}

func NewStatic(origin, name, token string) Static {
	return Static{
		origin: origin,
		name:   name,
		token:  token,
	}
}

func (s Static) Lookup(origin, name string) (string, bool) {
	if origin != s.origin || name != s.name || s.token == "" {
		return "", false
	}

	return s.token, true
}
