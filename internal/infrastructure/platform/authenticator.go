package platform

import "context"

// staticAuthenticator satisfies httpx's authenticator with a fixed API
// key; there is no token exchange on this platform.
type staticAuthenticator struct {
	token string
}

func newStaticAuthenticator(token string) staticAuthenticator {
	return staticAuthenticator{token: token}
}

func (staticAuthenticator) Authenticate(context.Context) error { return nil }

func (a staticAuthenticator) BearerToken() string { return a.token }
