package httpx

import (
	"fmt"
	"net/http"
)

type credentialStore interface {
	Lookup(origin, name string) (string, bool)
}

// SessionCookieRoundTripper attaches a session cookie from the credential
// store to every outgoing request. Requests go out without the cookie when the
// store has no value; endpoints that require it handle that themselves.
type SessionCookieRoundTripper struct {
	next       http.RoundTripper
	store      credentialStore
	origin     string
	cookieName string
}

func NewSessionCookieRoundTripper(
	next http.RoundTripper,
	store credentialStore,
	origin string,
	cookieName string,
) SessionCookieRoundTripper {
	return SessionCookieRoundTripper{
		next:       next,
		store:      store,
		origin:     origin,
		cookieName: cookieName,
	}
}

func (rt SessionCookieRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, ok := rt.store.Lookup(rt.origin, rt.cookieName); ok {
		req.AddCookie(&http.Cookie{Name: rt.cookieName, Value: token})
	}

	resp, err := rt.next.RoundTrip(req)
	if err != nil {
		return nil, fmt.Errorf("next.RoundTrip: %w", err)
	}

	return resp, nil
}
